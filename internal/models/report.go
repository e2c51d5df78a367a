package models

import "time"

type ReportStatus string

const (
	ReportBaru    ReportStatus = "baru"
	ReportProses  ReportStatus = "proses"
	ReportSelesai ReportStatus = "selesai"
	ReportDitolak ReportStatus = "ditolak"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportBaru, ReportProses, ReportSelesai, ReportDitolak:
		return true
	}
	return false
}

type ReportCategory string

const (
	CategoryInfrastruktur ReportCategory = "infrastruktur"
	CategoryKeamanan      ReportCategory = "keamanan"
	CategoryKebersihan    ReportCategory = "kebersihan"
	CategorySosial        ReportCategory = "sosial"
	CategoryLainnya       ReportCategory = "lainnya"
)

func (c ReportCategory) Valid() bool {
	switch c {
	case CategoryInfrastruktur, CategoryKeamanan, CategoryKebersihan, CategorySosial, CategoryLainnya:
		return true
	}
	return false
}

// AnonymousName replaces the reporter name on anonymous reports.
const AnonymousName = "Anonim"

// IncidentReport is a citizen-filed issue together with its administrator responses.
type IncidentReport struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Category    ReportCategory `json:"category"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Status      ReportStatus   `json:"status"`
	IsAnonymous bool           `json:"isAnonymous"`
	UserID      *string        `json:"userId"`
	UserName    string         `json:"userName"`
	Images      []string       `json:"images"`
	Responses   []Response     `json:"responses"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Response is an append-only administrator note on a report.
type Response struct {
	ID            string    `json:"id"`
	Message       string    `json:"message"`
	ResponderID   string    `json:"responderId"`
	ResponderName string    `json:"responderName"`
	ResponderRole Role      `json:"responderRole"`
	CreatedAt     time.Time `json:"createdAt"`
}
