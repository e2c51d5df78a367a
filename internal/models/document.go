package models

import "time"

type DocumentStatus string

const (
	DocumentDiajukan DocumentStatus = "diajukan"
	DocumentProses   DocumentStatus = "proses"
	DocumentSelesai  DocumentStatus = "selesai"
	DocumentDitolak  DocumentStatus = "ditolak"
)

func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentDiajukan, DocumentProses, DocumentSelesai, DocumentDitolak:
		return true
	}
	return false
}

// Final reports whether no further transition is defined from s.
func (s DocumentStatus) Final() bool {
	return s == DocumentSelesai || s == DocumentDitolak
}

type DocumentType string

const (
	DocSuratPengantar     DocumentType = "surat_pengantar"
	DocSuratDomisili      DocumentType = "surat_domisili"
	DocSuratTidakMampu    DocumentType = "surat_tidak_mampu"
	DocSuratIzinKeramaian DocumentType = "surat_izin_keramaian"
	DocSuratUsaha         DocumentType = "surat_usaha"
	DocLainnya            DocumentType = "lainnya"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocSuratPengantar, DocSuratDomisili, DocSuratTidakMampu,
		DocSuratIzinKeramaian, DocSuratUsaha, DocLainnya:
		return true
	}
	return false
}

// DocumentRequest is a resident's request for an administrative letter.
type DocumentRequest struct {
	ID                 string         `json:"id"`
	Type               DocumentType   `json:"type"`
	Purpose            string         `json:"purpose"`
	Status             DocumentStatus `json:"status"`
	RequesterID        string         `json:"requesterId"`
	RequesterName      string         `json:"requesterName"`
	RequesterAddress   string         `json:"requesterAddress"`
	SupportingDocs     []string       `json:"supportingDocs"`
	RequesterSignature string         `json:"requesterSignature"`
	ApproverSignature  string         `json:"approverSignature"`
	ApprovedBy         string         `json:"approvedBy"`
	ApproverName       string         `json:"approverName"`
	ApprovedAt         *time.Time     `json:"approvedAt"`
	Notes              string         `json:"notes"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}
