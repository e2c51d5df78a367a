package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"laporrt/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func translateError(err error) error {
	if isUniqueConstraintError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}

func withStamp(cols []string, col string) []string {
	if slices.Contains(cols, col) {
		return cols
	}
	return append(cols, col)
}

// --- accounts ---

func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var rows []accountRow
	if err := s.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		log.Printf("ERROR: Failed to list accounts: %v", err)
		return nil, err
	}
	accounts := make([]models.Account, 0, len(rows))
	for _, r := range rows {
		accounts = append(accounts, accountFromRow(r))
	}
	return accounts, nil
}

func (s *Service) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	return findAccount(s.DB.WithContext(ctx), "id = ?", id)
}

func (s *Service) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return findAccount(s.DB.WithContext(ctx), "email = ?", NormalizeEmail(email))
}

func findAccount(tx *gorm.DB, query string, arg any) (*models.Account, error) {
	var row accountRow
	err := tx.Where(query, arg).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	account := accountFromRow(row)
	return &account, nil
}

func (s *Service) CreateAccount(ctx context.Context, account *models.Account) error {
	account.Email = NormalizeEmail(account.Email)
	row := accountToRow(*account)
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return translateError(err)
	}
	*account = accountFromRow(row)
	return nil
}

func (s *Service) UpdateAccount(ctx context.Context, id string, fields models.Fields) (*models.Account, error) {
	keys := fields.Keys()
	if err := accountFields.validate(keys); err != nil {
		return nil, err
	}

	var updated *models.Account
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findAccount(tx, "id = ?", id)
		if err != nil || current == nil {
			return err
		}
		if err := models.ApplyFields(current, fields); err != nil {
			return err
		}
		current.Email = NormalizeEmail(current.Email)

		if len(keys) > 0 {
			row := accountToRow(*current)
			if err := tx.Model(&row).Select(accountFields.columns(keys)).Updates(&row).Error; err != nil {
				return translateError(err)
			}
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Where("id = ?", id).Delete(&accountRow{}).Error
}

// --- reports ---

func withResponses(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Responses", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (s *Service) ListReports(ctx context.Context) ([]models.IncidentReport, error) {
	var rows []reportRow
	if err := withResponses(s.DB.WithContext(ctx)).Order("created_at DESC").Find(&rows).Error; err != nil {
		log.Printf("ERROR: Failed to list reports: %v", err)
		return nil, err
	}
	reports := make([]models.IncidentReport, 0, len(rows))
	for _, r := range rows {
		reports = append(reports, reportFromRow(r))
	}
	return reports, nil
}

func (s *Service) GetReportByID(ctx context.Context, id string) (*models.IncidentReport, error) {
	return findReport(s.DB.WithContext(ctx), id)
}

func findReport(tx *gorm.DB, id string) (*models.IncidentReport, error) {
	var row reportRow
	err := withResponses(tx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	report := reportFromRow(row)
	return &report, nil
}

// CreateReport inserts the report together with any responses it already carries.
func (s *Service) CreateReport(ctx context.Context, report *models.IncidentReport) error {
	row := reportToRow(*report)
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return translateError(err)
	}
	*report = reportFromRow(row)
	return nil
}

// UpdateReport rewrites the touched columns and, when responses are part of
// the update, inserts the responses not yet stored, in one transaction.
func (s *Service) UpdateReport(ctx context.Context, id string, fields models.Fields) (*models.IncidentReport, error) {
	keys := fields.Keys()
	if err := reportFields.validate(keys); err != nil {
		return nil, err
	}

	var updated *models.IncidentReport
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findReport(tx, id)
		if err != nil || current == nil {
			return err
		}
		if err := models.ApplyFields(current, fields); err != nil {
			return err
		}
		current.UpdatedAt = time.Now()

		row := reportToRow(*current)
		responses := row.Responses
		row.Responses = nil

		cols := withStamp(reportFields.columns(keys), "updated_at")
		if err := tx.Model(&row).Select(cols).Updates(&row).Error; err != nil {
			return translateError(err)
		}
		if _, ok := fields["responses"]; ok && len(responses) > 0 {
			// Stored responses are immutable; only the new tail is written.
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&responses).Error; err != nil {
				return err
			}
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) DeleteReport(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&responseRow{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&reportRow{}).Error
	})
}

// --- ledger ---

func (s *Service) ListLedgerEntries(ctx context.Context) ([]models.LedgerEntry, error) {
	var rows []ledgerRow
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		log.Printf("ERROR: Failed to list ledger entries: %v", err)
		return nil, err
	}
	entries := make([]models.LedgerEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, ledgerFromRow(r))
	}
	return entries, nil
}

func (s *Service) GetLedgerEntryByID(ctx context.Context, id string) (*models.LedgerEntry, error) {
	return findLedgerEntry(s.DB.WithContext(ctx), id)
}

func findLedgerEntry(tx *gorm.DB, id string) (*models.LedgerEntry, error) {
	var row ledgerRow
	err := tx.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	entry := ledgerFromRow(row)
	return &entry, nil
}

func (s *Service) CreateLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error {
	row := ledgerToRow(*entry)
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return translateError(err)
	}
	*entry = ledgerFromRow(row)
	return nil
}

// UpdateLedgerEntry applies a partial update. Ledger entries carry no updatedAt.
func (s *Service) UpdateLedgerEntry(ctx context.Context, id string, fields models.Fields) (*models.LedgerEntry, error) {
	keys := fields.Keys()
	if err := ledgerFields.validate(keys); err != nil {
		return nil, err
	}

	var updated *models.LedgerEntry
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findLedgerEntry(tx, id)
		if err != nil || current == nil {
			return err
		}
		if err := models.ApplyFields(current, fields); err != nil {
			return err
		}
		current.Date = models.Day(current.Date)

		if len(keys) > 0 {
			row := ledgerToRow(*current)
			if err := tx.Model(&row).Select(ledgerFields.columns(keys)).Updates(&row).Error; err != nil {
				return translateError(err)
			}
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) DeleteLedgerEntry(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Where("id = ?", id).Delete(&ledgerRow{}).Error
}

// --- documents ---

func (s *Service) ListDocuments(ctx context.Context) ([]models.DocumentRequest, error) {
	var rows []documentRow
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		log.Printf("ERROR: Failed to list documents: %v", err)
		return nil, err
	}
	docs := make([]models.DocumentRequest, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, documentFromRow(r))
	}
	return docs, nil
}

func (s *Service) GetDocumentByID(ctx context.Context, id string) (*models.DocumentRequest, error) {
	return findDocument(s.DB.WithContext(ctx), id)
}

func findDocument(tx *gorm.DB, id string) (*models.DocumentRequest, error) {
	var row documentRow
	err := tx.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	doc := documentFromRow(row)
	return &doc, nil
}

func (s *Service) CreateDocument(ctx context.Context, doc *models.DocumentRequest) error {
	row := documentToRow(*doc)
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return translateError(err)
	}
	*doc = documentFromRow(row)
	return nil
}

func (s *Service) UpdateDocument(ctx context.Context, id string, fields models.Fields) (*models.DocumentRequest, error) {
	keys := fields.Keys()
	if err := documentFields.validate(keys); err != nil {
		return nil, err
	}

	var updated *models.DocumentRequest
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findDocument(tx, id)
		if err != nil || current == nil {
			return err
		}
		if err := models.ApplyFields(current, fields); err != nil {
			return err
		}
		current.UpdatedAt = time.Now()

		row := documentToRow(*current)
		cols := withStamp(documentFields.columns(keys), "updated_at")
		if err := tx.Model(&row).Select(cols).Updates(&row).Error; err != nil {
			return translateError(err)
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Where("id = ?", id).Delete(&documentRow{}).Error
}
