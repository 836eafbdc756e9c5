package payslip

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ankaa/payroll-backend-go/internal/domain/payroll"
	"github.com/ankaa/payroll-backend-go/internal/pkg/money"
)

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"

	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var ErrUnknownFormat = errors.New("unknown payslip format")

// Render builds the payslip of a record in the requested format.
func Render(record payroll.PayrollRecord, format string) (payroll.Payslip, error) {
	var (
		content     []byte
		contentType string
		err         error
	)

	switch strings.ToLower(format) {
	case FormatPDF:
		content, err = BuildPDF(record)
		contentType = ContentTypePDF
	case FormatXLSX:
		content, err = BuildXLSX(record)
		contentType = ContentTypeXLSX
	default:
		return payroll.Payslip{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return payroll.Payslip{}, err
	}

	return payroll.Payslip{
		FileName:    FileName(record, strings.ToLower(format)),
		ContentType: contentType,
		Content:     content,
	}, nil
}

// FileName returns e.g. "payslip-EMP001-2025-01.pdf".
func FileName(record payroll.PayrollRecord, ext string) string {
	who := record.EmployeeID
	if record.EmployeeCode != nil && *record.EmployeeCode != "" {
		who = *record.EmployeeCode
	}
	return fmt.Sprintf("payslip-%s-%s.%s", who, record.Period(), ext)
}

type line struct {
	label  string
	amount decimal.Decimal
}

func earningsLines(in payroll.EarningsInput) []line {
	return []line{
		{"Base remuneration", in.BaseRemuneration},
		{fmt.Sprintf("Overtime 50%% (%s h)", in.Overtime50Hours.String()), in.Overtime50Amount},
		{fmt.Sprintf("Overtime 100%% (%s h)", in.Overtime100Hours.String()), in.Overtime100Amount},
		{fmt.Sprintf("Night differential (%s h)", in.NightDifferentialHours.String()), in.NightDifferentialAmount},
		{fmt.Sprintf("DSR (%d days)", in.DSRDays), in.DSRAmount},
		{"Bonus", in.BonusBaseAmount},
	}
}

func totalLines(s payroll.PayrollSummary) []line {
	return []line{
		{"Gross", s.Gross},
		{"Total gross", s.TotalGross},
		{"Bonus net", s.TotalBonusNet},
		{"Total discounts", s.TotalDiscounts},
		{"Net pay", s.TotalNet},
	}
}

func employeeLabel(record payroll.PayrollRecord) string {
	if record.EmployeeName != nil && *record.EmployeeName != "" {
		return *record.EmployeeName
	}
	return record.EmployeeID
}

// BuildPDF renders a single-page payslip.
func BuildPDF(record payroll.PayrollRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, "Payslip")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Employee: %s", employeeLabel(record)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s", record.Period()))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", record.Status))
	pdf.Ln(5)
	if record.PaidAt != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Paid: %s", record.PaidAt.Format(time.RFC3339)))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	writeAmounts := func(title string, lines []line) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(120, 6, title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, "Amount", "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, l := range lines {
			pdf.CellFormat(120, 6, l.label, "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, money.Fixed(l.amount), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	writeLedger := func(title string, ledger []payroll.DiscountLedgerEntry) {
		if len(ledger) == 0 {
			return
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(90, 6, title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, "Applied", "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, "Balance", "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, e := range ledger {
			pdf.CellFormat(90, 6, e.Description, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, money.Fixed(e.AppliedAmount), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 6, money.Fixed(e.BalanceAfter), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	writeAmounts("Earnings", earningsLines(record.Earnings))
	writeLedger("Bonus discounts", record.Summary.BonusLedger)
	writeLedger("Discounts", record.Summary.GeneralLedger)
	writeAmounts("Totals", totalLines(record.Summary))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildXLSX renders a workbook with a summary sheet and a discounts sheet.
func BuildXLSX(record payroll.PayrollRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "summary"
	discountSheet := "discounts"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(discountSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	_ = f.SetCellValue(summarySheet, "A1", "Payslip")
	_ = f.SetCellValue(summarySheet, "A3", "Employee")
	_ = f.SetCellValue(summarySheet, "B3", employeeLabel(record))
	_ = f.SetCellValue(summarySheet, "A4", "Period")
	_ = f.SetCellValue(summarySheet, "B4", record.Period().String())
	_ = f.SetCellValue(summarySheet, "A5", "Status")
	_ = f.SetCellValue(summarySheet, "B5", string(record.Status))

	row := 7
	for _, l := range append(earningsLines(record.Earnings), totalLines(record.Summary)...) {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), l.label)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), money.Fixed(l.amount))
		row++
	}

	_ = f.SetCellValue(discountSheet, "A1", "Cascade")
	_ = f.SetCellValue(discountSheet, "B1", "Discount")
	_ = f.SetCellValue(discountSheet, "C1", "Applied")
	_ = f.SetCellValue(discountSheet, "D1", "Balance")
	row = 2
	for _, group := range []struct {
		name   string
		ledger []payroll.DiscountLedgerEntry
	}{
		{string(payroll.DiscountScopeBonus), record.Summary.BonusLedger},
		{string(payroll.DiscountScopeGeneral), record.Summary.GeneralLedger},
	} {
		for _, e := range group.ledger {
			_ = f.SetCellValue(discountSheet, fmt.Sprintf("A%d", row), group.name)
			_ = f.SetCellValue(discountSheet, fmt.Sprintf("B%d", row), e.Description)
			_ = f.SetCellValue(discountSheet, fmt.Sprintf("C%d", row), money.Fixed(e.AppliedAmount))
			_ = f.SetCellValue(discountSheet, fmt.Sprintf("D%d", row), money.Fixed(e.BalanceAfter))
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
