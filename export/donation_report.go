package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"zakat-tracker/domain"
	"zakat-tracker/format"
)

const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// Report is a rendered document ready to be served.
type Report struct {
	Filename    string
	ContentType string
	Body        []byte
}

func filename(summary domain.DonationSummary, ext string) string {
	return fmt.Sprintf("donations-%s.%s", summary.LastUpdated.Format("20060102-1504"), ext)
}

// BuildDonationPDF renders the donation summary and ledger as a single-page-per-table PDF.
func BuildDonationPDF(summary domain.DonationSummary) (Report, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Zakat Donation Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", summary.LastUpdated.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Donations: %s", format.Rupiah(summary.TotalDonations)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Zakat Mal: %s", format.Rupiah(summary.ByType[domain.ZakatTypeMal])))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Zakat Fitrah: %s", format.Rupiah(summary.ByType[domain.ZakatTypeFitrah])))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Transactions: %d", summary.TotalTransactions))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Donors: %d", summary.TotalDonors))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(80, 6, "Region", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Donors", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, r := range summary.Distribution {
		pdf.CellFormat(80, 6, r.Region, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", r.Count), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(45, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "User", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, tx := range summary.RecentTransactions {
		pdf.CellFormat(45, 6, tx.Date.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, tx.Type, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, tx.UserID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, format.Rupiah(tx.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Report{}, fmt.Errorf("render pdf: %w", err)
	}
	return Report{
		Filename:    filename(summary, FormatPDF),
		ContentType: ContentTypePDF,
		Body:        buf.Bytes(),
	}, nil
}

// BuildDonationXLSX renders the summary, donor distribution and ledger on separate sheets.
func BuildDonationXLSX(summary domain.DonationSummary) (Report, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "summary"
	regionsSheet := "donors"
	txSheet := "transactions"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return Report{}, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(regionsSheet); err != nil {
		return Report{}, fmt.Errorf("create sheet: %w", err)
	}
	if _, err := f.NewSheet(txSheet); err != nil {
		return Report{}, fmt.Errorf("create sheet: %w", err)
	}

	_ = f.SetCellValue(summarySheet, "A1", "Zakat Donation Report")
	_ = f.SetCellValue(summarySheet, "A3", "Generated")
	_ = f.SetCellValue(summarySheet, "B3", summary.LastUpdated.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A4", "Total Donations")
	_ = f.SetCellValue(summarySheet, "B4", summary.TotalDonations.InexactFloat64())
	_ = f.SetCellValue(summarySheet, "A5", "Zakat Mal")
	_ = f.SetCellValue(summarySheet, "B5", summary.ByType[domain.ZakatTypeMal].InexactFloat64())
	_ = f.SetCellValue(summarySheet, "A6", "Zakat Fitrah")
	_ = f.SetCellValue(summarySheet, "B6", summary.ByType[domain.ZakatTypeFitrah].InexactFloat64())
	_ = f.SetCellValue(summarySheet, "A7", "Transactions")
	_ = f.SetCellValue(summarySheet, "B7", summary.TotalTransactions)
	_ = f.SetCellValue(summarySheet, "A8", "Donors")
	_ = f.SetCellValue(summarySheet, "B8", summary.TotalDonors)

	_ = f.SetCellValue(regionsSheet, "A1", "Region")
	_ = f.SetCellValue(regionsSheet, "B1", "Donors")
	for i, r := range summary.Distribution {
		row := i + 2
		_ = f.SetCellValue(regionsSheet, fmt.Sprintf("A%d", row), r.Region)
		_ = f.SetCellValue(regionsSheet, fmt.Sprintf("B%d", row), r.Count)
	}

	_ = f.SetCellValue(txSheet, "A1", "ID")
	_ = f.SetCellValue(txSheet, "B1", "Date")
	_ = f.SetCellValue(txSheet, "C1", "Type")
	_ = f.SetCellValue(txSheet, "D1", "User")
	_ = f.SetCellValue(txSheet, "E1", "Amount")
	for i, tx := range summary.RecentTransactions {
		row := i + 2
		_ = f.SetCellValue(txSheet, fmt.Sprintf("A%d", row), tx.ID)
		_ = f.SetCellValue(txSheet, fmt.Sprintf("B%d", row), tx.Date.Format(time.RFC3339))
		_ = f.SetCellValue(txSheet, fmt.Sprintf("C%d", row), tx.Type)
		_ = f.SetCellValue(txSheet, fmt.Sprintf("D%d", row), tx.UserID)
		_ = f.SetCellValue(txSheet, fmt.Sprintf("E%d", row), tx.Amount.InexactFloat64())
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return Report{}, fmt.Errorf("render xlsx: %w", err)
	}
	return Report{
		Filename:    filename(summary, FormatXLSX),
		ContentType: ContentTypeXLSX,
		Body:        buf.Bytes(),
	}, nil
}
