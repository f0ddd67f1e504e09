package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/drelocd/estate-service/internal/model"
)

func TestSoldProperties(t *testing.T) {
	g := NewGenerator()

	content, err := g.SoldProperties([]model.SoldPropertyRow{
		{
			TitleDeedNumber:   "LR-9001",
			Location:          "Westgate",
			Size:              2.5,
			OriginalPrice:     500000,
			TransactionID:     42,
			DateSold:          time.Now(),
			TotalAmountPaid:   200000,
			Discount:          50000,
			Balance:           250000,
			BuyerName:         "P. Njeri",
			ClientContactInfo: "0777000001",
		},
	})
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	deed, err := file.GetCellValue("Sold Properties", "A2")
	require.NoError(t, err)
	assert.Equal(t, "LR-9001", deed)
}

func TestServicePayments(t *testing.T) {
	g := NewGenerator()

	content, err := g.ServicePayments(
		[]model.ServicePaymentRow{
			{
				ClientName:     "S. Wanjiku",
				FileName:       "FILE-001",
				JobDescription: "Boundary survey",
				TitleNumber:    "TN-001",
				Fee:            50000,
				Amount:         20000,
				Balance:        30000,
				PaymentDate:    time.Now(),
			},
		},
		[]model.SalesSummaryRow{
			{Bucket: "2026-08-01", TotalGross: 50000, TotalNet: 20000},
		},
	)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "Payments")
}
