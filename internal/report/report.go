// Package report runs the incident report lifecycle: residents file reports,
// administrators respond and move them through baru, proses, selesai and
// ditolak, and the unit chair may delete them.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"laporrt/backend/internal/apperr"
	"laporrt/backend/internal/auth"
	"laporrt/backend/internal/config"
	"laporrt/backend/internal/models"
	"laporrt/backend/internal/storage"
)

// Draft is the input of Create.
type Draft struct {
	Title       string                `json:"title"`
	Category    models.ReportCategory `json:"category"`
	Description string                `json:"description"`
	Location    string                `json:"location"`
	IsAnonymous bool                  `json:"isAnonymous"`
	Images      []string              `json:"images"`
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	Category models.ReportCategory
	Status   models.ReportStatus
	Query    string
}

// Stats are the report counters shown on the dashboard.
type Stats struct {
	Total   int `json:"total"`
	Baru    int `json:"baru"`
	Proses  int `json:"proses"`
	Selesai int `json:"selesai"`
	Ditolak int `json:"ditolak"`
}

type Service struct {
	Storage storage.Storage
	now     func() time.Time
}

func NewService(s storage.Storage) *Service {
	return &Service{Storage: s, now: time.Now}
}

// Create files a new report in status baru. Anonymous reports drop the
// reporter identity here and can never be linked back to it.
func (s *Service) Create(ctx context.Context, actor *models.Account, d Draft) (*models.IncidentReport, error) {
	if actor == nil {
		return nil, apperr.ErrForbidden
	}
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	switch {
	case d.Title == "":
		return nil, apperr.Validation("title is required")
	case d.Description == "":
		return nil, apperr.Validation("description is required")
	case !d.Category.Valid():
		return nil, fmt.Errorf("%w: %q", apperr.ErrInvalidCategory, d.Category)
	case len(d.Images) > config.MaxReportImages:
		return nil, apperr.Validation("at most %d images are allowed", config.MaxReportImages)
	}

	now := s.now()
	r := &models.IncidentReport{
		ID:          models.GenerateID("RPT"),
		Title:       d.Title,
		Category:    d.Category,
		Description: d.Description,
		Location:    strings.TrimSpace(d.Location),
		Status:      models.ReportBaru,
		IsAnonymous: d.IsAnonymous,
		Images:      append([]string{}, d.Images...),
		Responses:   []models.Response{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if d.IsAnonymous {
		r.UserName = models.AnonymousName
	} else {
		id := actor.ID
		r.UserID = &id
		r.UserName = actor.Name
	}

	if err := s.Storage.CreateReport(ctx, r); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.IncidentReport, error) {
	r, err := s.Storage.GetReportByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperr.NotFound("report", id)
	}
	return r, nil
}

// List returns matching reports, newest first. Query matches title and
// description case-insensitively.
func (s *Service) List(ctx context.Context, f Filter) ([]models.IncidentReport, error) {
	all, err := s.Storage.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]models.IncidentReport, 0, len(all))
	for _, r := range all {
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(r.Title), q) && !strings.Contains(strings.ToLower(r.Description), q) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Mine returns the reports filed by the actor under their own name.
func (s *Service) Mine(ctx context.Context, actor *models.Account) ([]models.IncidentReport, error) {
	if actor == nil {
		return nil, apperr.ErrForbidden
	}
	all, err := s.Storage.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.IncidentReport, 0)
	for _, r := range all {
		if r.UserID != nil && *r.UserID == actor.ID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Respond appends an administrator response. The first response on a new
// report also moves it to proses in the same write.
func (s *Service) Respond(ctx context.Context, actor *models.Account, id, message string) (*models.IncidentReport, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperr.Validation("message is required")
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	response := models.Response{
		ID:            models.GenerateID(""),
		Message:       message,
		ResponderID:   actor.ID,
		ResponderName: actor.Name,
		ResponderRole: actor.Role,
		CreatedAt:     s.now(),
	}
	fields := models.Fields{"responses": append(r.Responses, response)}
	if r.Status == models.ReportBaru {
		fields["status"] = models.ReportProses
	}
	return s.update(ctx, id, fields)
}

// SetStatus overwrites the status. Any of the four states may follow any other.
func (s *Service) SetStatus(ctx context.Context, actor *models.Account, id string, status models.ReportStatus) (*models.IncidentReport, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", apperr.ErrInvalidStatus, status)
	}
	return s.update(ctx, id, models.Fields{"status": status})
}

// Delete removes a report. Deleting a missing id succeeds.
func (s *Service) Delete(ctx context.Context, actor *models.Account, id string) error {
	if err := auth.RequireKetuaRT(actor); err != nil {
		return err
	}
	return s.Storage.DeleteReport(ctx, id)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	all, err := s.Storage.ListReports(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Total: len(all)}
	for _, r := range all {
		switch r.Status {
		case models.ReportBaru:
			st.Baru++
		case models.ReportProses:
			st.Proses++
		case models.ReportSelesai:
			st.Selesai++
		case models.ReportDitolak:
			st.Ditolak++
		}
	}
	return st, nil
}

func (s *Service) update(ctx context.Context, id string, fields models.Fields) (*models.IncidentReport, error) {
	r, err := s.Storage.UpdateReport(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("update report %s: %w", id, err)
	}
	if r == nil {
		return nil, apperr.NotFound("report", id)
	}
	return r, nil
}
