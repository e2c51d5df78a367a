package storage

import (
	"fmt"
	"slices"
)

// fieldMap is the bidirectional translation between the camelCase field
// names of a record and the snake_case columns of its Mode B table.
type fieldMap struct {
	toColumn  map[string]string
	toField   map[string]string
	immutable []string
}

func newFieldMap(immutable []string, pairs ...[2]string) fieldMap {
	m := fieldMap{
		toColumn:  make(map[string]string, len(pairs)),
		toField:   make(map[string]string, len(pairs)),
		immutable: immutable,
	}
	for _, p := range pairs {
		m.toColumn[p[0]] = p[1]
		m.toField[p[1]] = p[0]
	}
	return m
}

// responsesTable marks a field stored as child rows instead of a column.
const responsesTable = "report_responses"

var (
	accountFields = newFieldMap([]string{"id", "createdAt"},
		[2]string{"id", "id"},
		[2]string{"name", "name"},
		[2]string{"email", "email"},
		[2]string{"password", "password"},
		[2]string{"phone", "phone"},
		[2]string{"address", "address"},
		[2]string{"role", "role"},
		[2]string{"createdAt", "created_at"},
	)

	reportFields = newFieldMap([]string{"id", "createdAt"},
		[2]string{"id", "id"},
		[2]string{"title", "title"},
		[2]string{"category", "category"},
		[2]string{"description", "description"},
		[2]string{"location", "location"},
		[2]string{"status", "status"},
		[2]string{"isAnonymous", "is_anonymous"},
		[2]string{"userId", "user_id"},
		[2]string{"userName", "user_name"},
		[2]string{"images", "images"},
		[2]string{"responses", responsesTable},
		[2]string{"createdAt", "created_at"},
		[2]string{"updatedAt", "updated_at"},
	)

	responseFields = newFieldMap([]string{"id", "createdAt"},
		[2]string{"id", "id"},
		[2]string{"message", "message"},
		[2]string{"responderId", "responder_id"},
		[2]string{"responderName", "responder_name"},
		[2]string{"responderRole", "responder_role"},
		[2]string{"createdAt", "created_at"},
	)

	ledgerFields = newFieldMap([]string{"id", "createdAt"},
		[2]string{"id", "id"},
		[2]string{"type", "type"},
		[2]string{"category", "category"},
		[2]string{"amount", "amount"},
		[2]string{"description", "description"},
		[2]string{"date", "date"},
		[2]string{"createdBy", "created_by"},
		[2]string{"createdByName", "created_by_name"},
		[2]string{"createdAt", "created_at"},
	)

	documentFields = newFieldMap([]string{"id", "createdAt"},
		[2]string{"id", "id"},
		[2]string{"type", "type"},
		[2]string{"purpose", "purpose"},
		[2]string{"status", "status"},
		[2]string{"requesterId", "requester_id"},
		[2]string{"requesterName", "requester_name"},
		[2]string{"requesterAddress", "requester_address"},
		[2]string{"supportingDocs", "supporting_docs"},
		[2]string{"requesterSignature", "requester_signature"},
		[2]string{"approverSignature", "approver_signature"},
		[2]string{"approvedBy", "approved_by"},
		[2]string{"approverName", "approver_name"},
		[2]string{"approvedAt", "approved_at"},
		[2]string{"notes", "notes"},
		[2]string{"createdAt", "created_at"},
		[2]string{"updatedAt", "updated_at"},
	)
)

// validate rejects partial updates naming unknown or immutable fields.
func (m fieldMap) validate(keys []string) error {
	for _, k := range keys {
		if _, ok := m.toColumn[k]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, k)
		}
		if slices.Contains(m.immutable, k) {
			return fmt.Errorf("%w: %q", ErrImmutableField, k)
		}
	}
	return nil
}

// columns translates field names into the columns an UPDATE must touch.
// Fields kept outside the parent table are skipped.
func (m fieldMap) columns(keys []string) []string {
	cols := make([]string, 0, len(keys))
	for _, k := range keys {
		col := m.toColumn[k]
		if col == responsesTable {
			continue
		}
		cols = append(cols, col)
	}
	return cols
}
