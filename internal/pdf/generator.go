package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/drelocd/estate-service/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// SaleReceipt renders an A5 receipt for a recorded property sale.
func (g *Generator) SaleReceipt(receipt model.SaleReceipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "PROPERTY SALE RECEIPT", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Receipt No: %s", receipt.ReceiptNumber), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Date: %s", formatDateTime(receipt.TransactionDate)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	g.labelValue(pdf, "Buyer", receipt.BuyerName)
	g.labelValue(pdf, "Phone", receipt.BuyerPhone)
	pdf.Ln(2)

	g.labelValue(pdf, "Title Deed", receipt.TitleDeedNumber)
	g.labelValue(pdf, "Location", receipt.Location)
	g.labelValue(pdf, "Size", fmt.Sprintf("%.2f acres", receipt.Size))
	pdf.Ln(2)

	headers := []string{"Price", "Discount", "Paid", "Balance"}
	widths := []float64{31, 31, 31, 31}
	g.tableRow(pdf, headers, widths, true)
	g.tableRow(pdf, []string{
		formatAmount(receipt.Price),
		formatAmount(receipt.Discount),
		formatAmount(receipt.AmountPaid),
		formatAmount(receipt.Balance),
	}, widths, false)

	pdf.Ln(4)
	g.labelValue(pdf, "Payment Mode", receipt.PaymentMode)
	g.labelValue(pdf, "Served By", receipt.ServedBy)
	g.labelValue(pdf, "Transaction", fmt.Sprintf("#%d", receipt.TransactionID))

	pdf.Ln(8)
	pdf.SetFont(g.fontName, "", 9)
	pdf.CellFormat(0, 6, "Buyer signature: ______________________", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DispatchNote renders the handover note for a dispatched survey job.
func (g *Generator) DispatchNote(note model.DispatchNote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "DOCUMENT DISPATCH NOTE", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Reference: %s", note.ReferenceNumber), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Dispatch Date: %s", formatDate(note.DispatchDate)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Job", "", 1, "L", false, 0, "")
	g.labelValue(pdf, "Job", fmt.Sprintf("#%d", note.JobID))
	g.labelValue(pdf, "Client", note.ClientName)
	g.labelValue(pdf, "File", note.FileName)
	g.labelValue(pdf, "Description", note.JobDescription)
	g.labelValue(pdf, "Title Name", note.TitleName)
	g.labelValue(pdf, "Title Number", note.TitleNumber)
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Collection", "", 1, "L", false, 0, "")
	g.labelValue(pdf, "Reason", note.ReasonForDispatch)
	g.labelValue(pdf, "Collected By", note.CollectedBy)
	g.labelValue(pdf, "Collector Phone", note.CollectorPhone)

	pdf.Ln(10)
	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, "Collector signature: ______________________", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Released by: ______________________", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) labelValue(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont(g.fontName, "B", 10)
	pdf.CellFormat(38, 6, label+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.MultiCell(0, 6, safeValue(value), "", "L", false)
}

func (g *Generator) tableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(g.fontName, style, 10)
	for i, col := range cols {
		align := "R"
		if header {
			align = "C"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}
