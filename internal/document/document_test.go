package document_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"laporrt/backend/internal/apperr"
	"laporrt/backend/internal/document"
	"laporrt/backend/internal/localization"
	"laporrt/backend/internal/models"
	"laporrt/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ketua = &models.Account{ID: "USR-001", Name: "Budi Santoso", Role: models.RoleKetuaRT}
	admin = &models.Account{ID: "USR-002", Name: "Siti Rahayu", Role: models.RoleAdmin}
	warga = &models.Account{ID: "USR-003", Name: "Ahmad Wijaya", Address: "RT 01/RW 05, No. 15", Role: models.RoleWarga}
	other = &models.Account{ID: "USR-009", Name: "Rina", Role: models.RoleWarga}
)

var unit = document.Unit{RT: "RT 01", RW: "RW 05", Kelurahan: "Kelurahan XYZ"}

func newService(t *testing.T) *document.Service {
	t.Helper()
	return document.NewService(storage.NewLocalStore(filepath.Join(t.TempDir(), "laporrt.json")))
}

func submit(t *testing.T, svc *document.Service) *models.DocumentRequest {
	t.Helper()
	doc, err := svc.Create(context.Background(), warga, document.Draft{
		Type:    models.DocSuratDomisili,
		Purpose: "Persyaratan membuka rekening bank",
	})
	require.NoError(t, err)
	return doc
}

func TestCreate_Submitted(t *testing.T) {
	svc := newService(t)

	doc := submit(t, svc)

	assert.Regexp(t, `^DOC-[0-9A-Z]+$`, doc.ID)
	assert.Equal(t, models.DocumentDiajukan, doc.Status)
	assert.Equal(t, "USR-003", doc.RequesterID)
	assert.Equal(t, "Ahmad Wijaya", doc.RequesterName)
	assert.Equal(t, "RT 01/RW 05, No. 15", doc.RequesterAddress)
	assert.Empty(t, doc.ApproverSignature)
}

func TestCreate_Validation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, warga, document.Draft{Type: "surat_nikah", Purpose: "x"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.Create(ctx, warga, document.Draft{Type: models.DocSuratUsaha})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestMarkProcessing(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	doc := submit(t, svc)

	_, err := svc.MarkProcessing(ctx, admin, doc.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	doc, err = svc.MarkProcessing(ctx, ketua, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DocumentProses, doc.Status)

	_, err = svc.MarkProcessing(ctx, ketua, doc.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	_, err = svc.MarkProcessing(ctx, ketua, "DOC-404")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDecide_ApproveRequiresSignature(t *testing.T) {
	// Arrange
	svc := newService(t)
	ctx := context.Background()
	doc := submit(t, svc)

	// Act
	_, err := svc.Decide(ctx, ketua, doc.ID, document.Approve, "", "")

	// Assert
	assert.ErrorIs(t, err, document.ErrSignatureRequired)
	unchanged, err := svc.Get(ctx, ketua, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DocumentDiajukan, unchanged.Status)
}

func TestDecide_Approve(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	doc := submit(t, svc)

	doc, err := svc.Decide(ctx, ketua, doc.ID, document.Approve, "Lengkap", "ttd-ketua.png")

	require.NoError(t, err)
	assert.Equal(t, models.DocumentSelesai, doc.Status)
	assert.Equal(t, "ttd-ketua.png", doc.ApproverSignature)
	assert.Equal(t, "USR-001", doc.ApprovedBy)
	assert.Equal(t, "Budi Santoso", doc.ApproverName)
	assert.Equal(t, "Lengkap", doc.Notes)
	require.NotNil(t, doc.ApprovedAt)
}

func TestDecide_RejectRequiresReason(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	doc := submit(t, svc)

	_, err := svc.Decide(ctx, ketua, doc.ID, document.Reject, "  ", "ttd.png")
	assert.ErrorIs(t, err, document.ErrRejectionReasonRequired)

	doc, err = svc.Decide(ctx, ketua, doc.ID, document.Reject, "KTP belum dilampirkan", "ttd.png")
	require.NoError(t, err)
	assert.Equal(t, models.DocumentDitolak, doc.Status)
	assert.Empty(t, doc.ApproverSignature)
	assert.Equal(t, "KTP belum dilampirkan", doc.Notes)
	assert.Equal(t, "USR-001", doc.ApprovedBy)
}

func TestDecide_FinalStatesAreTerminal(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	doc := submit(t, svc)
	_, err := svc.Decide(ctx, ketua, doc.ID, document.Reject, "Tidak lengkap", "")
	require.NoError(t, err)

	_, err = svc.Decide(ctx, ketua, doc.ID, document.Approve, "", "ttd.png")
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	_, err = svc.MarkProcessing(ctx, ketua, doc.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	_, err = svc.Decide(ctx, admin, doc.ID, document.Approve, "", "ttd.png")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = svc.Decide(ctx, ketua, doc.ID, "maybe", "x", "y")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestListAndGet_ResidentSeesOwnOnly(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	doc := submit(t, svc)
	_, err := svc.Create(ctx, other, document.Draft{Type: models.DocSuratUsaha, Purpose: "Warung"})
	require.NoError(t, err)

	own, err := svc.List(ctx, warga)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, doc.ID, own[0].ID)

	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.Get(ctx, other, doc.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	stats, err := svc.Stats(ctx, ketua)
	require.NoError(t, err)
	assert.Equal(t, document.Stats{Total: 2, Pending: 2}, stats)
}

func TestRenderLetter_NotApproved(t *testing.T) {
	for _, status := range []models.DocumentStatus{models.DocumentDiajukan, models.DocumentProses, models.DocumentDitolak} {
		doc := &models.DocumentRequest{ID: "DOC-1", Status: status}
		_, _, err := document.RenderLetter(doc, unit, localization.Default())
		assert.ErrorIs(t, err, document.ErrNotApproved, status)
	}
}

func TestRenderLetter_Template(t *testing.T) {
	// Arrange
	approvedAt := time.Date(2024, time.November, 20, 14, 0, 0, 0, time.UTC)
	doc := &models.DocumentRequest{
		ID:               "DOC-001",
		Type:             models.DocSuratPengantar,
		Purpose:          "Pembuatan KTP baru",
		Status:           models.DocumentSelesai,
		RequesterName:    "Ahmad  Wijaya",
		RequesterAddress: "RT 01/RW 05, No. 15",
		ApproverName:     "Budi Santoso",
		ApprovedAt:       &approvedAt,
	}
	rule := strings.Repeat("=", 80)
	sign := strings.Repeat(" ", 44)

	// Act
	name, body, err := document.RenderLetter(doc, unit, localization.Default())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Surat-DOC-001-Ahmad__Wijaya.txt", name)
	want := strings.Join([]string{
		"",
		rule,
		strings.Repeat(" ", 28) + "SURAT PENGANTAR RT",
		strings.Repeat(" ", 25) + "RT 01 / RW 05 Kelurahan XYZ",
		rule,
		"",
		"Nomor Surat    : DOC-001",
		"Tanggal        : 20 November 2024",
		"",
		"Yang bertanda tangan di bawah ini, Ketua RT 01 RW 05, menerangkan bahwa:",
		"",
		"Nama           : Ahmad  Wijaya",
		"Alamat         : RT 01/RW 05, No. 15",
		"",
		"Adalah benar warga RT 01 RW 05 dan bermaksud untuk:",
		"Pembuatan KTP baru",
		"",
		"Jenis Dokumen  : Surat Pengantar RT",
		"Status         : DISETUJUI",
		"",
		"Demikian surat pengantar ini dibuat untuk dipergunakan sebagaimana mestinya.",
		"",
		sign + "Yang Menyetujui,",
		sign + "Ketua RT 01",
		"",
		"",
		sign + "Budi Santoso",
		"",
		rule,
		strings.Repeat(" ", 20) + "Dokumen ini dikeluarkan secara resmi oleh Sistem LaporRT",
		rule,
		"",
	}, "\n")
	assert.Equal(t, want, body)
}

func TestScenario_DomicileLetterApproved(t *testing.T) {
	// Arrange
	svc := newService(t)
	ctx := context.Background()
	doc := submit(t, svc)

	// Act
	doc, err := svc.MarkProcessing(ctx, ketua, doc.ID)
	require.NoError(t, err)
	require.Equal(t, models.DocumentProses, doc.Status)
	doc, err = svc.Decide(ctx, ketua, doc.ID, document.Approve, "", "data:image/png;base64,AAAA")
	require.NoError(t, err)
	_, body, err := document.RenderLetter(doc, unit, localization.Default())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.DocumentSelesai, doc.Status)
	assert.NotEmpty(t, doc.ApproverSignature)
	assert.Contains(t, body, "Jenis Dokumen  : Surat Keterangan Domisili")
	assert.Contains(t, body, "Nama           : Ahmad Wijaya")
}
