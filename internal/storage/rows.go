package storage

import (
	"time"

	"laporrt/backend/internal/models"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Mode B row types. Columns follow the mapping tables in mapping.go.

type accountRow struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;uniqueIndex;not null"`
	Password  string    `gorm:"column:password;not null"`
	Phone     string    `gorm:"column:phone"`
	Address   string    `gorm:"column:address"`
	Role      string    `gorm:"column:role;not null;default:warga"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (accountRow) TableName() string { return "users" }

type reportRow struct {
	ID          string         `gorm:"column:id;primaryKey"`
	Title       string         `gorm:"column:title;not null"`
	Category    string         `gorm:"column:category;not null"`
	Description string         `gorm:"column:description"`
	Location    string         `gorm:"column:location"`
	Status      string         `gorm:"column:status;not null;index"`
	IsAnonymous bool           `gorm:"column:is_anonymous"`
	UserID      *string        `gorm:"column:user_id"`
	UserName    string         `gorm:"column:user_name"`
	Images      pq.StringArray `gorm:"column:images;type:text[]"`
	CreatedAt   time.Time      `gorm:"column:created_at;index"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`

	Responses []responseRow `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
}

func (reportRow) TableName() string { return "reports" }

type responseRow struct {
	ReportID      string    `gorm:"column:report_id;primaryKey"`
	ID            string    `gorm:"column:id;primaryKey"`
	Position      int       `gorm:"column:position"`
	Message       string    `gorm:"column:message;not null"`
	ResponderID   string    `gorm:"column:responder_id"`
	ResponderName string    `gorm:"column:responder_name"`
	ResponderRole string    `gorm:"column:responder_role"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (responseRow) TableName() string { return "report_responses" }

type ledgerRow struct {
	ID            string         `gorm:"column:id;primaryKey"`
	Type          string         `gorm:"column:type;not null"`
	Category      string         `gorm:"column:category;not null"`
	Amount        int64          `gorm:"column:amount;not null"`
	Description   string         `gorm:"column:description"`
	Date          datatypes.Date `gorm:"column:date;type:date"`
	CreatedBy     string         `gorm:"column:created_by"`
	CreatedByName string         `gorm:"column:created_by_name"`
	CreatedAt     time.Time      `gorm:"column:created_at;index"`
}

func (ledgerRow) TableName() string { return "finances" }

type documentRow struct {
	ID                 string         `gorm:"column:id;primaryKey"`
	Type               string         `gorm:"column:type;not null"`
	Purpose            string         `gorm:"column:purpose"`
	Status             string         `gorm:"column:status;not null;index"`
	RequesterID        string         `gorm:"column:requester_id;index"`
	RequesterName      string         `gorm:"column:requester_name"`
	RequesterAddress   string         `gorm:"column:requester_address"`
	SupportingDocs     pq.StringArray `gorm:"column:supporting_docs;type:text[]"`
	RequesterSignature string         `gorm:"column:requester_signature"`
	ApproverSignature  string         `gorm:"column:approver_signature"`
	ApprovedBy         string         `gorm:"column:approved_by"`
	ApproverName       string         `gorm:"column:approver_name"`
	ApprovedAt         *time.Time     `gorm:"column:approved_at"`
	Notes              string         `gorm:"column:notes"`
	CreatedAt          time.Time      `gorm:"column:created_at;index"`
	UpdatedAt          time.Time      `gorm:"column:updated_at"`
}

func (documentRow) TableName() string { return "documents" }

func accountToRow(a models.Account) accountRow {
	return accountRow{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Password:  a.Password,
		Phone:     a.Phone,
		Address:   a.Address,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
	}
}

func accountFromRow(r accountRow) models.Account {
	return models.Account{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Phone:     r.Phone,
		Address:   r.Address,
		Role:      models.Role(r.Role),
		CreatedAt: r.CreatedAt,
	}
}

func reportToRow(r models.IncidentReport) reportRow {
	row := reportRow{
		ID:          r.ID,
		Title:       r.Title,
		Category:    string(r.Category),
		Description: r.Description,
		Location:    r.Location,
		Status:      string(r.Status),
		IsAnonymous: r.IsAnonymous,
		UserID:      r.UserID,
		UserName:    r.UserName,
		Images:      pq.StringArray(r.Images),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	row.Responses = responsesToRows(r.ID, r.Responses)
	return row
}

func reportFromRow(r reportRow) models.IncidentReport {
	report := models.IncidentReport{
		ID:          r.ID,
		Title:       r.Title,
		Category:    models.ReportCategory(r.Category),
		Description: r.Description,
		Location:    r.Location,
		Status:      models.ReportStatus(r.Status),
		IsAnonymous: r.IsAnonymous,
		UserID:      r.UserID,
		UserName:    r.UserName,
		Images:      nonNil([]string(r.Images)),
		Responses:   make([]models.Response, 0, len(r.Responses)),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	for _, rr := range r.Responses {
		report.Responses = append(report.Responses, responseFromRow(rr))
	}
	return report
}

func responsesToRows(reportID string, responses []models.Response) []responseRow {
	rows := make([]responseRow, 0, len(responses))
	for i, resp := range responses {
		rows = append(rows, responseRow{
			ReportID:      reportID,
			ID:            resp.ID,
			Position:      i,
			Message:       resp.Message,
			ResponderID:   resp.ResponderID,
			ResponderName: resp.ResponderName,
			ResponderRole: string(resp.ResponderRole),
			CreatedAt:     resp.CreatedAt,
		})
	}
	return rows
}

func responseFromRow(r responseRow) models.Response {
	return models.Response{
		ID:            r.ID,
		Message:       r.Message,
		ResponderID:   r.ResponderID,
		ResponderName: r.ResponderName,
		ResponderRole: models.Role(r.ResponderRole),
		CreatedAt:     r.CreatedAt,
	}
}

func ledgerToRow(e models.LedgerEntry) ledgerRow {
	return ledgerRow{
		ID:            e.ID,
		Type:          string(e.Type),
		Category:      string(e.Category),
		Amount:        e.Amount,
		Description:   e.Description,
		Date:          datatypes.Date(models.Day(e.Date)),
		CreatedBy:     e.CreatedBy,
		CreatedByName: e.CreatedByName,
		CreatedAt:     e.CreatedAt,
	}
}

func ledgerFromRow(r ledgerRow) models.LedgerEntry {
	return models.LedgerEntry{
		ID:            r.ID,
		Type:          models.EntryType(r.Type),
		Category:      models.FinanceCategory(r.Category),
		Amount:        r.Amount,
		Description:   r.Description,
		Date:          models.Day(time.Time(r.Date)),
		CreatedBy:     r.CreatedBy,
		CreatedByName: r.CreatedByName,
		CreatedAt:     r.CreatedAt,
	}
}

func documentToRow(d models.DocumentRequest) documentRow {
	return documentRow{
		ID:                 d.ID,
		Type:               string(d.Type),
		Purpose:            d.Purpose,
		Status:             string(d.Status),
		RequesterID:        d.RequesterID,
		RequesterName:      d.RequesterName,
		RequesterAddress:   d.RequesterAddress,
		SupportingDocs:     pq.StringArray(d.SupportingDocs),
		RequesterSignature: d.RequesterSignature,
		ApproverSignature:  d.ApproverSignature,
		ApprovedBy:         d.ApprovedBy,
		ApproverName:       d.ApproverName,
		ApprovedAt:         d.ApprovedAt,
		Notes:              d.Notes,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

func documentFromRow(r documentRow) models.DocumentRequest {
	return models.DocumentRequest{
		ID:                 r.ID,
		Type:               models.DocumentType(r.Type),
		Purpose:            r.Purpose,
		Status:             models.DocumentStatus(r.Status),
		RequesterID:        r.RequesterID,
		RequesterName:      r.RequesterName,
		RequesterAddress:   r.RequesterAddress,
		SupportingDocs:     nonNil([]string(r.SupportingDocs)),
		RequesterSignature: r.RequesterSignature,
		ApproverSignature:  r.ApproverSignature,
		ApprovedBy:         r.ApprovedBy,
		ApproverName:       r.ApproverName,
		ApprovedAt:         r.ApprovedAt,
		Notes:              r.Notes,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
