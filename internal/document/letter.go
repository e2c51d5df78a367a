package document

import (
	"regexp"
	"strings"

	"laporrt/backend/internal/idfmt"
	"laporrt/backend/internal/localization"
	"laporrt/backend/internal/models"
)

// Unit names the community on the letterhead.
type Unit struct {
	RT        string
	RW        string
	Kelurahan string
}

var rule = strings.Repeat("=", 80)

var whitespace = regexp.MustCompile(`\s`)

// LetterFilename is the download name of the letter for doc.
func LetterFilename(doc *models.DocumentRequest) string {
	return "Surat-" + doc.ID + "-" + whitespace.ReplaceAllString(doc.RequesterName, "_") + ".txt"
}

// RenderLetter returns the download name and plain-text body of the cover
// letter for an approved request. Other statuses yield ErrNotApproved.
func RenderLetter(doc *models.DocumentRequest, unit Unit, labels *localization.Localizer) (string, string, error) {
	if doc.Status != models.DocumentSelesai || doc.ApprovedAt == nil {
		return "", "", ErrNotApproved
	}
	docType := labels.Label(localization.DefaultLang, "document_type", string(doc.Type))
	rtrw := unit.RT + " " + unit.RW
	signBlock := strings.Repeat(" ", 44)

	var b strings.Builder
	line := func(parts ...string) {
		for _, p := range parts {
			b.WriteString(p)
		}
		b.WriteByte('\n')
	}

	line()
	line(rule)
	line(strings.Repeat(" ", 28), "SURAT PENGANTAR RT")
	line(strings.Repeat(" ", 25), unit.RT, " / ", unit.RW, " ", unit.Kelurahan)
	line(rule)
	line()
	line("Nomor Surat    : ", doc.ID)
	line("Tanggal        : ", idfmt.LongDate(*doc.ApprovedAt))
	line()
	line("Yang bertanda tangan di bawah ini, Ketua ", rtrw, ", menerangkan bahwa:")
	line()
	line("Nama           : ", doc.RequesterName)
	line("Alamat         : ", doc.RequesterAddress)
	line()
	line("Adalah benar warga ", rtrw, " dan bermaksud untuk:")
	line(doc.Purpose)
	line()
	line("Jenis Dokumen  : ", docType)
	line("Status         : DISETUJUI")
	line()
	line("Demikian surat pengantar ini dibuat untuk dipergunakan sebagaimana mestinya.")
	line()
	line(signBlock, "Yang Menyetujui,")
	line(signBlock, "Ketua ", unit.RT)
	line()
	line()
	line(signBlock, doc.ApproverName)
	line()
	line(rule)
	line(strings.Repeat(" ", 20), "Dokumen ini dikeluarkan secara resmi oleh Sistem LaporRT")
	line(rule)

	return LetterFilename(doc), b.String(), nil
}
