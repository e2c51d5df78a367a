// Package finance manages the community fund ledger. Administrators record
// income and expenses; every account can read the ledger and its summary.
package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"laporrt/backend/internal/analysis"
	"laporrt/backend/internal/apperr"
	"laporrt/backend/internal/auth"
	"laporrt/backend/internal/export"
	"laporrt/backend/internal/localization"
	"laporrt/backend/internal/models"
	"laporrt/backend/internal/storage"
)

// Draft is the input of Create and the full replacement of Update.
type Draft struct {
	Type        models.EntryType       `json:"type"`
	Category    models.FinanceCategory `json:"category"`
	Amount      int64                  `json:"amount"`
	Description string                 `json:"description"`
	Date        time.Time              `json:"date"`
}

// Report is everything the finance page shows besides the entry list.
type Report struct {
	analysis.Summary
	ByCategory []analysis.CategoryAmount `json:"byCategory"`
	Monthly    []analysis.MonthTotal     `json:"monthly"`
	Trend      []analysis.BalancePoint   `json:"trend"`
	Year       int                       `json:"year"`
}

type Service struct {
	Storage storage.Storage
	Labels  *localization.Localizer
	// Unit is printed in the export title, e.g. "RT 01 / RW 05".
	Unit string
	now  func() time.Time
}

func NewService(s storage.Storage, labels *localization.Localizer, unit string) *Service {
	return &Service{Storage: s, Labels: labels, Unit: unit, now: time.Now}
}

func validate(d *Draft) error {
	d.Description = strings.TrimSpace(d.Description)
	switch {
	case !d.Type.Valid():
		return apperr.Validation("unknown entry type %q", d.Type)
	case !d.Type.Allows(d.Category):
		return fmt.Errorf("%w: %q is not a %s category", apperr.ErrInvalidCategory, d.Category, d.Type)
	case d.Amount <= 0:
		return apperr.Validation("amount must be positive")
	case d.Description == "":
		return apperr.Validation("description is required")
	case d.Date.IsZero():
		return apperr.Validation("date is required")
	}
	return nil
}

// Create records a new entry on behalf of actor.
func (s *Service) Create(ctx context.Context, actor *models.Account, d Draft) (*models.LedgerEntry, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validate(&d); err != nil {
		return nil, err
	}
	e := &models.LedgerEntry{
		ID:            models.GenerateID("FIN"),
		Type:          d.Type,
		Category:      d.Category,
		Amount:        d.Amount,
		Description:   d.Description,
		Date:          models.Day(d.Date),
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
		CreatedAt:     s.now(),
	}
	if err := s.Storage.CreateLedgerEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("create ledger entry: %w", err)
	}
	return e, nil
}

// Update replaces the editable fields of an entry. The creator is kept.
func (s *Service) Update(ctx context.Context, actor *models.Account, id string, d Draft) (*models.LedgerEntry, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validate(&d); err != nil {
		return nil, err
	}
	e, err := s.Storage.UpdateLedgerEntry(ctx, id, models.Fields{
		"type":        d.Type,
		"category":    d.Category,
		"amount":      d.Amount,
		"description": d.Description,
		"date":        models.Day(d.Date),
	})
	if err != nil {
		return nil, fmt.Errorf("update ledger entry %s: %w", id, err)
	}
	if e == nil {
		return nil, apperr.NotFound("ledger entry", id)
	}
	return e, nil
}

// Delete removes an entry. Deleting a missing id succeeds.
func (s *Service) Delete(ctx context.Context, actor *models.Account, id string) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}
	return s.Storage.DeleteLedgerEntry(ctx, id)
}

// List returns the entries, newest first, optionally limited to one type.
func (s *Service) List(ctx context.Context, typ models.EntryType) ([]models.LedgerEntry, error) {
	entries, err := s.Storage.ListLedgerEntries(ctx)
	if err != nil {
		return nil, err
	}
	if typ == "" {
		return entries, nil
	}
	out := make([]models.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out, nil
}

// Summary aggregates the whole ledger. Monthly totals cover the year of now.
func (s *Service) Summary(ctx context.Context) (*Report, error) {
	entries, err := s.Storage.ListLedgerEntries(ctx)
	if err != nil {
		return nil, err
	}
	year := s.now().Year()
	return &Report{
		Summary:    analysis.Totals(entries),
		ByCategory: analysis.ExpenseByCategory(entries),
		Monthly:    analysis.MonthlyTotals(entries, year),
		Trend:      analysis.RunningBalance(entries),
		Year:       year,
	}, nil
}

// ExportCSV renders the ledger spreadsheet and its download name.
func (s *Service) ExportCSV(ctx context.Context) (string, []byte, error) {
	entries, err := s.Storage.ListLedgerEntries(ctx)
	if err != nil {
		return "", nil, err
	}
	now := s.now()
	data, err := export.LedgerCSV(entries, s.Unit, now, s.Labels)
	if err != nil {
		return "", nil, fmt.Errorf("render ledger export: %w", err)
	}
	return export.LedgerFilename(now), data, nil
}
