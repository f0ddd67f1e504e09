package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drelocd/estate-service/internal/model"
)

func TestSaleReceipt(t *testing.T) {
	g := NewGenerator()

	content, err := g.SaleReceipt(model.SaleReceipt{
		ReceiptNumber:   "abc-123",
		TransactionID:   42,
		TransactionDate: time.Now(),
		BuyerName:       "P. Njeri",
		BuyerPhone:      "0777000001",
		TitleDeedNumber: "LR-9001",
		Location:        "Westgate",
		Size:            2.5,
		Price:           500000,
		PaymentMode:     "cash",
		AmountPaid:      200000,
		Discount:        50000,
		Balance:         250000,
		ServedBy:        "clerk",
	})
	require.NoError(t, err)
	assert.True(t, len(content) > 0)
	assert.Equal(t, "%PDF", string(content[:4]))
}

func TestDispatchNote(t *testing.T) {
	g := NewGenerator()

	content, err := g.DispatchNote(model.DispatchNote{
		ReferenceNumber:   "dn-001",
		JobID:             7,
		DispatchDate:      time.Now(),
		ClientName:        "S. Wanjiku",
		FileName:          "FILE-001",
		JobDescription:    "Boundary survey",
		TitleName:         "Wanjiku",
		TitleNumber:       "TN-001",
		ReasonForDispatch: "Survey complete",
		CollectedBy:       "S. Wanjiku",
		CollectorPhone:    "0755000001",
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(content[:4]))
}
