// Package document runs the letter request workflow. Residents submit
// requests; the unit chair takes them into processing and approves or
// rejects them. Approved requests can be rendered as a letter.
package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"laporrt/backend/internal/apperr"
	"laporrt/backend/internal/auth"
	"laporrt/backend/internal/models"
	"laporrt/backend/internal/storage"
)

var (
	ErrSignatureRequired       = errors.New("approver signature is required")
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	ErrNotApproved             = errors.New("document is not approved")
)

// Decision is the outcome chosen by the unit chair.
type Decision string

const (
	Approve Decision = "approve"
	Reject  Decision = "reject"
)

// Draft is the input of Create.
type Draft struct {
	Type               models.DocumentType `json:"type"`
	Purpose            string              `json:"purpose"`
	SupportingDocs     []string            `json:"supportingDocs"`
	RequesterSignature string              `json:"requesterSignature"`
}

// Stats are the document counters shown on the dashboard.
type Stats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Done    int `json:"done"`
}

type Service struct {
	Storage storage.Storage
	now     func() time.Time
}

func NewService(s storage.Storage) *Service {
	return &Service{Storage: s, now: time.Now}
}

// Create submits a request on behalf of actor.
func (s *Service) Create(ctx context.Context, actor *models.Account, d Draft) (*models.DocumentRequest, error) {
	if actor == nil {
		return nil, apperr.ErrForbidden
	}
	if !d.Type.Valid() {
		return nil, apperr.Validation("unknown document type %q", d.Type)
	}
	d.Purpose = strings.TrimSpace(d.Purpose)
	if d.Purpose == "" {
		return nil, apperr.Validation("purpose is required")
	}

	now := s.now()
	doc := &models.DocumentRequest{
		ID:                 models.GenerateID("DOC"),
		Type:               d.Type,
		Purpose:            d.Purpose,
		Status:             models.DocumentDiajukan,
		RequesterID:        actor.ID,
		RequesterName:      actor.Name,
		RequesterAddress:   actor.Address,
		SupportingDocs:     append([]string{}, d.SupportingDocs...),
		RequesterSignature: d.RequesterSignature,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.Storage.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}

// Get returns a request. Residents may only read their own.
func (s *Service) Get(ctx context.Context, actor *models.Account, id string) (*models.DocumentRequest, error) {
	if actor == nil {
		return nil, apperr.ErrForbidden
	}
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.IsAdmin(actor) && doc.RequesterID != actor.ID {
		return nil, apperr.NotFound("document", id)
	}
	return doc, nil
}

// List returns the requests visible to actor, newest first.
func (s *Service) List(ctx context.Context, actor *models.Account) ([]models.DocumentRequest, error) {
	if actor == nil {
		return nil, apperr.ErrForbidden
	}
	all, err := s.Storage.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	if auth.IsAdmin(actor) {
		return all, nil
	}
	own := make([]models.DocumentRequest, 0)
	for _, d := range all {
		if d.RequesterID == actor.ID {
			own = append(own, d)
		}
	}
	return own, nil
}

// MarkProcessing moves a submitted request to proses.
func (s *Service) MarkProcessing(ctx context.Context, actor *models.Account, id string) (*models.DocumentRequest, error) {
	if err := auth.RequireKetuaRT(actor); err != nil {
		return nil, err
	}
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status != models.DocumentDiajukan {
		return nil, fmt.Errorf("%w: %s is %s", apperr.ErrInvalidTransition, id, doc.Status)
	}
	return s.update(ctx, id, models.Fields{"status": models.DocumentProses})
}

// Decide approves or rejects an open request. Approval needs the approver's
// signature; rejection needs the reason in notes. Both outcomes are final.
func (s *Service) Decide(ctx context.Context, actor *models.Account, id string, decision Decision, notes, signature string) (*models.DocumentRequest, error) {
	if err := auth.RequireKetuaRT(actor); err != nil {
		return nil, err
	}
	notes = strings.TrimSpace(notes)
	fields := models.Fields{
		"approvedBy":   actor.ID,
		"approverName": actor.Name,
		"approvedAt":   s.now(),
		"notes":        notes,
	}
	switch decision {
	case Approve:
		if strings.TrimSpace(signature) == "" {
			return nil, ErrSignatureRequired
		}
		fields["status"] = models.DocumentSelesai
		fields["approverSignature"] = signature
	case Reject:
		if notes == "" {
			return nil, ErrRejectionReasonRequired
		}
		fields["status"] = models.DocumentDitolak
		fields["approverSignature"] = ""
	default:
		return nil, apperr.Validation("unknown decision %q", decision)
	}

	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status.Final() {
		return nil, fmt.Errorf("%w: %s is %s", apperr.ErrInvalidTransition, id, doc.Status)
	}
	return s.update(ctx, id, fields)
}

func (s *Service) Stats(ctx context.Context, actor *models.Account) (Stats, error) {
	docs, err := s.List(ctx, actor)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Total: len(docs)}
	for _, d := range docs {
		if d.Status.Final() {
			st.Done++
		} else {
			st.Pending++
		}
	}
	return st, nil
}

func (s *Service) find(ctx context.Context, id string) (*models.DocumentRequest, error) {
	doc, err := s.Storage.GetDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperr.NotFound("document", id)
	}
	return doc, nil
}

func (s *Service) update(ctx context.Context, id string, fields models.Fields) (*models.DocumentRequest, error) {
	doc, err := s.Storage.UpdateDocument(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("update document %s: %w", id, err)
	}
	if doc == nil {
		return nil, apperr.NotFound("document", id)
	}
	return doc, nil
}
