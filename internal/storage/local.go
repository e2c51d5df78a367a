package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"

	"laporrt/backend/internal/models"
)

// Keys of the local key/value file.
const (
	KeyUsers       = "rtrw_users"
	KeyCurrentUser = "rtrw_current_user"
	KeyReports     = "rtrw_reports"
	KeyFinances    = "rtrw_finances"
	KeyDocuments   = "rtrw_documents"
)

// LocalStore is the single-process implementation of Storage. All data lives
// in one JSON object on disk whose keys hold the record arrays. Every call
// reads the file, applies its change and rewrites the file atomically.
type LocalStore struct {
	path string
	mu   sync.Mutex
}

// NewLocalStore returns a store backed by the file at path. The file is
// created on the first write.
func NewLocalStore(path string) *LocalStore {
	return &LocalStore{path: path}
}

// Path returns the backing file location.
func (l *LocalStore) Path() string { return l.path }

type document map[string]json.RawMessage

func (l *LocalStore) load() (document, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read local store: %w", err)
	}
	if len(data) == 0 {
		return document{}, nil
	}
	doc := document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse local store %s: %w", l.path, err)
	}
	return doc, nil
}

func (l *LocalStore) save(doc document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode local store: %w", err)
	}
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".laporrt-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return os.Rename(tmp.Name(), l.path)
}

// view runs fn against a fresh read of the file.
func (l *LocalStore) view(ctx context.Context, fn func(document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	doc, err := l.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// mutate runs fn and persists the document when fn reports a change.
func (l *LocalStore) mutate(ctx context.Context, fn func(document) (bool, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	doc, err := l.load()
	if err != nil {
		return err
	}
	changed, err := fn(doc)
	if err != nil || !changed {
		return err
	}
	return l.save(doc)
}

// ReadKey returns the raw value stored under key, or nil when unset.
func (l *LocalStore) ReadKey(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := l.view(ctx, func(doc document) error {
		if raw, ok := doc[key]; ok && string(raw) != "null" {
			value = append([]byte(nil), raw...)
		}
		return nil
	})
	return value, err
}

// WriteKey stores a JSON value under key.
func (l *LocalStore) WriteKey(ctx context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %s is not valid JSON", key)
	}
	return l.mutate(ctx, func(doc document) (bool, error) {
		doc[key] = json.RawMessage(value)
		return true, nil
	})
}

// RemoveKey deletes key. Removing an absent key is not an error.
func (l *LocalStore) RemoveKey(ctx context.Context, key string) error {
	return l.mutate(ctx, func(doc document) (bool, error) {
		if _, ok := doc[key]; !ok {
			return false, nil
		}
		delete(doc, key)
		return true, nil
	})
}

// collection describes how one record array is stored in the file.
type collection[T any] struct {
	key     string
	fields  fieldMap
	prepend bool
	id      func(*T) string
	// conflict reports whether two records may not coexist.
	conflict func(a, b *T) bool
	// stamp sets updatedAt; nil for records without one.
	stamp func(*T, time.Time)
}

func decode[T any](doc document, key string) ([]T, error) {
	raw, ok := doc[key]
	if !ok || string(raw) == "null" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

func encode[T any](doc document, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	doc[key] = raw
	return nil
}

func (c collection[T]) list(ctx context.Context, l *LocalStore) ([]T, error) {
	var items []T
	err := l.view(ctx, func(doc document) error {
		var err error
		items, err = decode[T](doc, c.key)
		return err
	})
	return items, err
}

func (c collection[T]) find(ctx context.Context, l *LocalStore, match func(*T) bool) (*T, error) {
	var found *T
	err := l.view(ctx, func(doc document) error {
		items, err := decode[T](doc, c.key)
		if err != nil {
			return err
		}
		for i := range items {
			if match(&items[i]) {
				found = &items[i]
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (c collection[T]) create(ctx context.Context, l *LocalStore, record *T) error {
	return l.mutate(ctx, func(doc document) (bool, error) {
		items, err := decode[T](doc, c.key)
		if err != nil {
			return false, err
		}
		for i := range items {
			if c.conflict(&items[i], record) {
				return false, fmt.Errorf("%w: %s %s", ErrDuplicateKey, c.key, c.id(record))
			}
		}
		if c.prepend {
			items = append([]T{*record}, items...)
		} else {
			items = append(items, *record)
		}
		return true, encode(doc, c.key, items)
	})
}

func (c collection[T]) update(ctx context.Context, l *LocalStore, id string, fields models.Fields) (*T, error) {
	if err := c.fields.validate(fields.Keys()); err != nil {
		return nil, err
	}
	var updated *T
	err := l.mutate(ctx, func(doc document) (bool, error) {
		items, err := decode[T](doc, c.key)
		if err != nil {
			return false, err
		}
		idx := -1
		for i := range items {
			if c.id(&items[i]) == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false, nil
		}
		next := items[idx]
		if err := models.ApplyFields(&next, fields); err != nil {
			return false, err
		}
		if c.stamp != nil {
			c.stamp(&next, time.Now())
		}
		for i := range items {
			if i != idx && c.conflict(&items[i], &next) {
				return false, fmt.Errorf("%w: %s %s", ErrDuplicateKey, c.key, id)
			}
		}
		items[idx] = next
		updated = &next
		return true, encode(doc, c.key, items)
	})
	return updated, err
}

func (c collection[T]) delete(ctx context.Context, l *LocalStore, id string) error {
	return l.mutate(ctx, func(doc document) (bool, error) {
		items, err := decode[T](doc, c.key)
		if err != nil {
			return false, err
		}
		kept := items[:0]
		for i := range items {
			if c.id(&items[i]) != id {
				kept = append(kept, items[i])
			}
		}
		if len(kept) == len(items) {
			return false, nil
		}
		return true, encode(doc, c.key, kept)
	})
}

func sameID[T any](id func(*T) string) func(a, b *T) bool {
	return func(a, b *T) bool { return id(a) == id(b) }
}

var (
	accountID  = func(a *models.Account) string { return a.ID }
	reportID   = func(r *models.IncidentReport) string { return r.ID }
	ledgerID   = func(e *models.LedgerEntry) string { return e.ID }
	documentID = func(d *models.DocumentRequest) string { return d.ID }

	accountStore = collection[models.Account]{
		key:    KeyUsers,
		fields: accountFields,
		id:     accountID,
		conflict: func(a, b *models.Account) bool {
			return a.ID == b.ID || NormalizeEmail(a.Email) == NormalizeEmail(b.Email)
		},
	}
	reportStore = collection[models.IncidentReport]{
		key:      KeyReports,
		fields:   reportFields,
		prepend:  true,
		id:       reportID,
		conflict: sameID(reportID),
		stamp:    func(r *models.IncidentReport, now time.Time) { r.UpdatedAt = now },
	}
	ledgerStore = collection[models.LedgerEntry]{
		key:      KeyFinances,
		fields:   ledgerFields,
		prepend:  true,
		id:       ledgerID,
		conflict: sameID(ledgerID),
	}
	documentStore = collection[models.DocumentRequest]{
		key:      KeyDocuments,
		fields:   documentFields,
		prepend:  true,
		id:       documentID,
		conflict: sameID(documentID),
		stamp:    func(d *models.DocumentRequest, now time.Time) { d.UpdatedAt = now },
	}
)

func byID[T any](id func(*T) string, want string) func(*T) bool {
	return func(r *T) bool { return id(r) == want }
}

func stampCreated(created *time.Time, updated *time.Time) {
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	if updated != nil && updated.IsZero() {
		*updated = *created
	}
}

func (l *LocalStore) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return accountStore.list(ctx, l)
}

func (l *LocalStore) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	return accountStore.find(ctx, l, byID(accountID, id))
}

func (l *LocalStore) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	want := NormalizeEmail(email)
	return accountStore.find(ctx, l, func(a *models.Account) bool {
		return NormalizeEmail(a.Email) == want
	})
}

func (l *LocalStore) CreateAccount(ctx context.Context, account *models.Account) error {
	account.Email = NormalizeEmail(account.Email)
	stampCreated(&account.CreatedAt, nil)
	return accountStore.create(ctx, l, account)
}

func (l *LocalStore) UpdateAccount(ctx context.Context, id string, fields models.Fields) (*models.Account, error) {
	if email, ok := fields["email"].(string); ok {
		fields = maps.Clone(fields)
		fields["email"] = NormalizeEmail(email)
	}
	return accountStore.update(ctx, l, id, fields)
}

func (l *LocalStore) DeleteAccount(ctx context.Context, id string) error {
	return accountStore.delete(ctx, l, id)
}

func (l *LocalStore) ListReports(ctx context.Context) ([]models.IncidentReport, error) {
	return reportStore.list(ctx, l)
}

func (l *LocalStore) GetReportByID(ctx context.Context, id string) (*models.IncidentReport, error) {
	return reportStore.find(ctx, l, byID(reportID, id))
}

func (l *LocalStore) CreateReport(ctx context.Context, report *models.IncidentReport) error {
	stampCreated(&report.CreatedAt, &report.UpdatedAt)
	return reportStore.create(ctx, l, report)
}

func (l *LocalStore) UpdateReport(ctx context.Context, id string, fields models.Fields) (*models.IncidentReport, error) {
	return reportStore.update(ctx, l, id, fields)
}

func (l *LocalStore) DeleteReport(ctx context.Context, id string) error {
	return reportStore.delete(ctx, l, id)
}

func (l *LocalStore) ListLedgerEntries(ctx context.Context) ([]models.LedgerEntry, error) {
	return ledgerStore.list(ctx, l)
}

func (l *LocalStore) GetLedgerEntryByID(ctx context.Context, id string) (*models.LedgerEntry, error) {
	return ledgerStore.find(ctx, l, byID(ledgerID, id))
}

func (l *LocalStore) CreateLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error {
	entry.Date = models.Day(entry.Date)
	stampCreated(&entry.CreatedAt, nil)
	return ledgerStore.create(ctx, l, entry)
}

func (l *LocalStore) UpdateLedgerEntry(ctx context.Context, id string, fields models.Fields) (*models.LedgerEntry, error) {
	return ledgerStore.update(ctx, l, id, fields)
}

func (l *LocalStore) DeleteLedgerEntry(ctx context.Context, id string) error {
	return ledgerStore.delete(ctx, l, id)
}

func (l *LocalStore) ListDocuments(ctx context.Context) ([]models.DocumentRequest, error) {
	return documentStore.list(ctx, l)
}

func (l *LocalStore) GetDocumentByID(ctx context.Context, id string) (*models.DocumentRequest, error) {
	return documentStore.find(ctx, l, byID(documentID, id))
}

func (l *LocalStore) CreateDocument(ctx context.Context, doc *models.DocumentRequest) error {
	stampCreated(&doc.CreatedAt, &doc.UpdatedAt)
	return documentStore.create(ctx, l, doc)
}

func (l *LocalStore) UpdateDocument(ctx context.Context, id string, fields models.Fields) (*models.DocumentRequest, error) {
	return documentStore.update(ctx, l, id, fields)
}

func (l *LocalStore) DeleteDocument(ctx context.Context, id string) error {
	return documentStore.delete(ctx, l, id)
}

var (
	_ Storage = (*LocalStore)(nil)
	_ Storage = (*Service)(nil)
)
