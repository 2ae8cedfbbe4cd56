package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/dpa-api/internal/finance"
	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Content types per export format
var ExportContentTypes = map[string]string{
	FormatCSV:  "text/csv",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:  "application/pdf",
}

const exportDateLayout = "2006-01-02"

var statementColumns = []string{"Date", "Description", "Type", "Debit", "Credit"}

// ExportService renders statements as downloadable files
type ExportService struct {
	currency string
}

func NewExportService(currencySymbol string) *ExportService {
	return &ExportService{currency: currencySymbol}
}

// Statement renders stmt in the requested format and returns the body and file name.
func (s *ExportService) Statement(stmt *MemberStatement, format string) ([]byte, string, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return s.StatementCSV(stmt)
	case FormatXLSX:
		return s.StatementXLSX(stmt)
	case FormatPDF:
		return s.StatementPDF(stmt)
	}
	return nil, "", fmt.Errorf("%w: unsupported export format %q", ErrValidation, format)
}

func (s *ExportService) StatementCSV(stmt *MemberStatement) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	for _, row := range s.headerRows(stmt) {
		_ = writer.Write(row)
	}
	_ = writer.Write([]string{""})
	_ = writer.Write(statementColumns)

	for _, tx := range stmt.Transactions {
		debit, credit := splitAmount(tx)
		_ = writer.Write([]string{tx.Date.Format(exportDateLayout), tx.Description, string(tx.Type), debit, credit})
	}
	_ = writer.Write([]string{"", "Total", "", finance.FormatAmount(stmt.TotalDebit), finance.FormatAmount(stmt.TotalCredit)})

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), s.filename(stmt, FormatCSV), nil
}

func (s *ExportService) StatementXLSX(stmt *MemberStatement) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Statement"
	_ = f.SetSheetName("Sheet1", sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4})

	_ = f.SetCellValue(sheet, "A1", "Account Statement")
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	row := 2
	for _, h := range s.headerRows(stmt) {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), h[0])
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), h[1])
		row++
	}
	row++

	for i, col := range statementColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, col)
	}
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), headerStyle)
	row++

	first := row
	for _, tx := range stmt.Transactions {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), tx.Date.Format(exportDateLayout))
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), tx.Description)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(tx.Type))
		amount, _ := tx.Amount.Float64()
		if tx.IsCredit {
			_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), amount)
		} else {
			_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), amount)
		}
		row++
	}

	debit, _ := stmt.TotalDebit.Float64()
	credit, _ := stmt.TotalCredit.Float64()
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Total")
	_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), debit)
	_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), credit)
	_ = f.SetCellStyle(sheet, fmt.Sprintf("D%d", first), fmt.Sprintf("E%d", row), moneyStyle)
	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "B", 40)
	_ = f.SetColWidth(sheet, "C", "E", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), s.filename(stmt, FormatXLSX), nil
}

func (s *ExportService) StatementPDF(stmt *MemberStatement) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Account Statement")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	for _, h := range s.headerRows(stmt) {
		pdf.Cell(40, 6, h[0]+":")
		pdf.Cell(120, 6, tr(h[1]))
		pdf.Ln(6)
	}
	pdf.Ln(6)

	widths := []float64{25, 85, 20, 30, 30}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(224, 224, 224)
	for i, col := range statementColumns {
		align := "L"
		if i >= 3 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, tx := range stmt.Transactions {
		debit, credit := splitAmount(tx)
		pdf.CellFormat(widths[0], 7, tx.Date.Format(exportDateLayout), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, tr(tx.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, string(tx.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, debit, "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, credit, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 8, finance.FormatAmount(stmt.TotalDebit), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 8, finance.FormatAmount(stmt.TotalCredit), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), s.filename(stmt, FormatPDF), nil
}

// headerRows are the label/value pairs printed above the transaction table.
func (s *ExportService) headerRows(stmt *MemberStatement) [][]string {
	period := "All time"
	if stmt.PeriodStart != nil && stmt.PeriodEnd != nil {
		period = fmt.Sprintf("%s (%s to %s)", stmt.Period,
			stmt.PeriodStart.Format(exportDateLayout), stmt.PeriodEnd.Format(exportDateLayout))
	}
	return [][]string{
		{"Member", fmt.Sprintf("%s (%s)", stmt.Member.FullName, stmt.Member.MemberID)},
		{"Email", stmt.Member.Email},
		{"Date", stmt.GeneratedAt.Format(exportDateLayout)},
		{"Period", period},
		{"Category", string(stmt.Category)},
		{"Reference", stmt.Reference},
		{"Total Credit", s.money(stmt.TotalCredit)},
		{"Total Debit", s.money(stmt.TotalDebit)},
	}
}

func (s *ExportService) money(d decimal.Decimal) string {
	return s.currency + finance.FormatAmount(d)
}

func (s *ExportService) filename(stmt *MemberStatement, ext string) string {
	return fmt.Sprintf("statement_%s_%s.%s", stmt.Member.MemberID, stmt.GeneratedAt.Format(exportDateLayout), ext)
}

func splitAmount(tx finance.Transaction) (debit, credit string) {
	if tx.IsCredit {
		return "", finance.FormatAmount(tx.Amount)
	}
	return finance.FormatAmount(tx.Amount), ""
}
