package storage

import (
	"context"
	"errors"
	"strings"

	"laporrt/backend/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateKey is returned when a create or update violates a unique key (id or email).
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnknownField is returned when a partial update names a field the record does not have.
	ErrUnknownField = errors.New("unknown field")
	// ErrImmutableField is returned when a partial update tries to change id or createdAt.
	ErrImmutableField = errors.New("immutable field")
)

// Storage is the persistence contract shared by the local and the PostgreSQL backends.
//
// Lookups return (nil, nil) when the record is absent. Updates return
// (nil, nil) for a missing id and stamp updatedAt where the record has one.
// Deletes are idempotent.
type Storage interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	CreateAccount(ctx context.Context, account *models.Account) error
	UpdateAccount(ctx context.Context, id string, fields models.Fields) (*models.Account, error)
	DeleteAccount(ctx context.Context, id string) error

	ListReports(ctx context.Context) ([]models.IncidentReport, error)
	GetReportByID(ctx context.Context, id string) (*models.IncidentReport, error)
	CreateReport(ctx context.Context, report *models.IncidentReport) error
	UpdateReport(ctx context.Context, id string, fields models.Fields) (*models.IncidentReport, error)
	DeleteReport(ctx context.Context, id string) error

	ListLedgerEntries(ctx context.Context) ([]models.LedgerEntry, error)
	GetLedgerEntryByID(ctx context.Context, id string) (*models.LedgerEntry, error)
	CreateLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error
	UpdateLedgerEntry(ctx context.Context, id string, fields models.Fields) (*models.LedgerEntry, error)
	DeleteLedgerEntry(ctx context.Context, id string) error

	ListDocuments(ctx context.Context) ([]models.DocumentRequest, error)
	GetDocumentByID(ctx context.Context, id string) (*models.DocumentRequest, error)
	CreateDocument(ctx context.Context, doc *models.DocumentRequest) error
	UpdateDocument(ctx context.Context, id string, fields models.Fields) (*models.DocumentRequest, error)
	DeleteDocument(ctx context.Context, id string) error
}

// Service is the PostgreSQL implementation of Storage.
type Service struct {
	DB *gorm.DB
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Migrate creates or updates the tables of every collection.
func (s *Service) Migrate() error {
	return s.DB.AutoMigrate(
		&accountRow{},
		&reportRow{},
		&responseRow{},
		&ledgerRow{},
		&documentRow{},
	)
}

// NormalizeEmail is the canonical form under which emails are stored and looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "SQLSTATE 23505")
}
