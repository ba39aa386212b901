package infra

// pdf.go — delivery note ("prijemnica") rendering using go-pdf/fpdf.
// Produces an A5 document with a header, the receipt metadata and a
// signature block for the warehouse clerk and the transporter.

import (
	"bytes"
	"fmt"

	"github.com/Nikjeremic/potrosnjaSmole/internal/model"

	"github.com/go-pdf/fpdf"
)

// PDFGenerator renders printable documents. Stateless and safe to share.
type PDFGenerator struct{}

func NewPDFGenerator() *PDFGenerator { return &PDFGenerator{} }

// ReceiptPDF renders a delivery note for one receipt and returns the
// document bytes.
func (g *PDFGenerator) ReceiptPDF(rec *model.Receipt) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "PRIJEMNICA", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr("Evidencija prijema materijala"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(4)

	// ── Metadata ─────────────────────────────────────────────────────────────
	labelW := contentW * 0.4
	valueW := contentW * 0.6

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(labelW, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(valueW, 6, tr(value), "", 1, "L", false, 0, "")
	}

	row("Broj prijemnice:", rec.ID.String()[:8])
	row("Datum prijema:", rec.ReceiptDate.Format("02.01.2006."))
	row("Vreme prijema:", rec.ReceiptTime)
	row("Materijal:", rec.MaterialName)
	row("Kolicina:", rec.Quantity.StringFixed(3)+" "+rec.Unit)
	row("Prevoznik:", rec.Transporter)
	if rec.Notes != "" {
		row("Napomena:", rec.Notes)
	}
	if rec.Creator != nil {
		row("Primio:", rec.Creator.FirstName+" "+rec.Creator.LastName)
	}

	pdf.Ln(4)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())

	// ── Signatures ───────────────────────────────────────────────────────────
	pdf.Ln(16)
	sigW := contentW / 2
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(sigW, 5, "______________________", "", 0, "C", false, 0, "")
	pdf.CellFormat(sigW, 5, "______________________", "", 1, "C", false, 0, "")
	pdf.CellFormat(sigW, 5, tr("Magacioner"), "", 0, "C", false, 0, "")
	pdf.CellFormat(sigW, 5, tr("Prevoznik"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render delivery note: %w", err)
	}
	return buf.Bytes(), nil
}
