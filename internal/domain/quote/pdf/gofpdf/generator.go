package gofpdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"voicehub/go_backend/internal/domain/quote"
)

type Generator struct {
	Brand string
}

func New(brand string) *Generator {
	if brand == "" {
		brand = "VoiceHub"
	}
	return &Generator{Brand: brand}
}

func (g *Generator) Generate(s quote.Submission) ([]byte, error) {
	r := s.Request

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Quote request "+s.Reference, true)
	// core fonts are cp1252; covers the English and Dutch forms
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Quote request"))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("%s  -  %s", s.Reference, s.ReceivedAt.Format("02.01.2006 15:04"))))
	pdf.Ln(10)

	rows := [][2]string{
		{"Full name", r.FullName},
		{"Company", r.CompanyName},
		{"Business type", r.BusinessType},
		{"Email", r.Email},
		{"Phone", r.Phone},
		{"Language", r.LanguageLabel()},
	}
	for _, row := range rows {
		v := strings.TrimSpace(row[1])
		if v == "" {
			v = "-"
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(45, 7, tr(row[0]))
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 7, tr(trim(v, 80)))
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, tr("Project description"))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, tr(strings.TrimSpace(r.Description)), "", "L", false)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, tr(g.Brand+" - voice agents"))

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("quote pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("quote pdf: output: %w", err)
	}
	return buf.Bytes(), nil
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
