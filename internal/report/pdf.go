package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"finvault/internal/core"
	"finvault/internal/tax"
)

var (
	headerColor       = [3]int{32, 64, 128}
	headerTextColor   = [3]int{255, 255, 255}
	sectionTitleColor = [3]int{32, 64, 128}
	bodyTextColor     = [3]int{40, 40, 40}
	lineColor         = [3]int{200, 200, 200}
)

// The core PDF fonts are cp1252, which has no rupee sign.
func pdfAmount(v interface{ String() string }) string {
	return "Rs. " + v.String()
}

// WriteTaxPDF renders a one page regime comparison for profile.
func WriteTaxPDF(w io.Writer, title string, profile core.TaxProfile, res tax.Result, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  "+title), "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr("  Financial year "+profile.FinancialYear), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	section := func(name string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, name)
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	}
	row := func(label, value string) {
		pdf.CellFormat(95, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, tr(value), "", 1, "R", false, 0, "")
	}

	section("Income and deductions")
	d := profile.Deductions
	row("Gross income", pdfAmount(profile.GrossIncome))
	row("Section 80C", pdfAmount(d.Section80C))
	row("Section 80D", pdfAmount(d.Section80D))
	row("HRA", pdfAmount(d.HRA))
	row("Home loan interest", pdfAmount(d.HomeLoanInterest))
	row("Other", pdfAmount(d.Other))
	row("Total deductions (after caps)", pdfAmount(res.TotalDeductions))
	pdf.Ln(6)

	section("Regime comparison")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 7, "Regime", "B", 0, "L", false, 0, "")
	pdf.CellFormat(70, 7, "Taxable income", "B", 0, "R", false, 0, "")
	pdf.CellFormat(70, 7, "Tax incl. 4% cess", "B", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, r := range []struct {
		name   string
		regime tax.Regime
		result tax.RegimeResult
	}{
		{"Old", tax.RegimeOld, res.Old},
		{"New", tax.RegimeNew, res.New},
	} {
		style := ""
		if r.regime == res.Recommended {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(50, 7, r.name, "", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, pdfAmount(r.result.TaxableIncome), "", 0, "R", false, 0, "")
		pdf.CellFormat(70, 7, pdfAmount(r.result.Tax), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(0, 128, 0)
	pdf.MultiCell(190, 6, tr(fmt.Sprintf("The %s regime is recommended and saves %s.", res.Recommended, pdfAmount(res.Savings))), "", "L", false)

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 10, tr("Generated "+generatedAt.Format("2006-01-02 15:04")), "", 0, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
