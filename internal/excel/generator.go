package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/drelocd/estate-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// SoldProperties writes one sheet listing every sold parcel with its
// sale and buyer.
func (g *Generator) SoldProperties(rows []model.SoldPropertyRow) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Sold Properties"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Title Deed", "Location", "Size", "Price", "Date Sold",
		"Amount Paid", "Discount", "Balance", "Buyer", "Contact",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, row := range rows {
		r := i + 2
		set(fmt.Sprintf("A%d", r), row.TitleDeedNumber)
		set(fmt.Sprintf("B%d", r), row.Location)
		set(fmt.Sprintf("C%d", r), formatFloat(row.Size))
		set(fmt.Sprintf("D%d", r), formatFloat(row.OriginalPrice))
		set(fmt.Sprintf("E%d", r), formatDate(row.DateSold))
		set(fmt.Sprintf("F%d", r), formatFloat(row.TotalAmountPaid))
		set(fmt.Sprintf("G%d", r), formatFloat(row.Discount))
		set(fmt.Sprintf("H%d", r), formatFloat(row.Balance))
		set(fmt.Sprintf("I%d", r), row.BuyerName)
		set(fmt.Sprintf("J%d", r), row.ClientContactInfo)
	}

	_ = file.SetColWidth(sheet, "A", "B", 24)
	_ = file.SetColWidth(sheet, "C", "H", 14)
	_ = file.SetColWidth(sheet, "I", "J", 28)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ServicePayments writes a summary sheet of gross/net revenue per
// bucket plus a detail sheet of individual payment records.
func (g *Generator) ServicePayments(rows []model.ServicePaymentRow, summary []model.SalesSummaryRow) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, summary); err != nil {
		return nil, err
	}

	detailSheet := "Payments"
	file.NewSheet(detailSheet)
	if err := g.writePayments(file, detailSheet, rows); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, summary []model.SalesSummaryRow) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Period")
	set("B1", "Gross (agreed fees)")
	set("C1", "Net (received)")

	totalGross := 0.0
	totalNet := 0.0
	for i, row := range summary {
		r := i + 2
		set(fmt.Sprintf("A%d", r), row.Bucket)
		set(fmt.Sprintf("B%d", r), formatFloat(row.TotalGross))
		set(fmt.Sprintf("C%d", r), formatFloat(row.TotalNet))
		totalGross += row.TotalGross
		totalNet += row.TotalNet
	}

	totalRow := len(summary) + 3
	set(fmt.Sprintf("A%d", totalRow), "Total")
	set(fmt.Sprintf("B%d", totalRow), formatFloat(totalGross))
	set(fmt.Sprintf("C%d", totalRow), formatFloat(totalNet))

	_ = file.SetColWidth(sheet, "A", "A", 16)
	_ = file.SetColWidth(sheet, "B", "C", 20)
	return nil
}

func (g *Generator) writePayments(file *excelize.File, sheet string, rows []model.ServicePaymentRow) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Client", "File", "Job", "Title Number",
		"Fee", "Amount Paid", "Balance", "Last Payment",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, row := range rows {
		r := i + 2
		set(fmt.Sprintf("A%d", r), row.ClientName)
		set(fmt.Sprintf("B%d", r), row.FileName)
		set(fmt.Sprintf("C%d", r), row.JobDescription)
		set(fmt.Sprintf("D%d", r), row.TitleNumber)
		set(fmt.Sprintf("E%d", r), formatFloat(row.Fee))
		set(fmt.Sprintf("F%d", r), formatFloat(row.Amount))
		set(fmt.Sprintf("G%d", r), formatFloat(row.Balance))
		set(fmt.Sprintf("H%d", r), formatDate(row.PaymentDate))
	}

	_ = file.SetColWidth(sheet, "A", "D", 26)
	_ = file.SetColWidth(sheet, "E", "H", 14)
	return nil
}

func formatFloat(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
