package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drelocd/estate-service/internal/model"
)

func TestRecordSaleMarksPropertySold(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := NewTransactionRepository(database)

	propertyID := seedProperty(t, database, model.Property{
		TitleDeedNumber: "LR-6001", Location: "Westgate", Size: 5,
		Owner: "A", TelephoneNumber: "1", Price: 500000,
	})
	clientID := seedClient(t, database, "P. Njeri", "0733000001")

	id, err := repo.RecordSale(ctx, model.Transaction{
		PropertyID:      propertyID,
		ClientID:        clientID,
		PaymentMode:     "cash",
		TotalAmountPaid: 300000,
		Balance:         200000,
		TransactionDate: time.Now(),
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	property, err := NewPropertyRepository(database).GetByID(ctx, propertyID)
	require.NoError(t, err)
	assert.Equal(t, model.PropertyStatusSold, property.Status)

	pending, err := repo.PendingBalance(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 200000.0, pending, 0.0001)
}

func TestRecordSaleRejectsSoldProperty(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := NewTransactionRepository(database)

	propertyID := seedProperty(t, database, model.Property{
		TitleDeedNumber: "LR-6002", Location: "Westgate", Size: 5,
		Owner: "A", TelephoneNumber: "1", Price: 500000,
	})
	clientID := seedClient(t, database, "P. Njeri", "0733000009")

	_, err := repo.RecordSale(ctx, model.Transaction{
		PropertyID: propertyID, ClientID: clientID,
		PaymentMode: "cash", TotalAmountPaid: 500000,
		TransactionDate: time.Now(),
	})
	require.NoError(t, err)

	// The status guard must refuse a second sale and leave no
	// transaction row behind.
	_, err = repo.RecordSale(ctx, model.Transaction{
		PropertyID: propertyID, ClientID: clientID,
		PaymentMode: "cash", TotalAmountPaid: 500000,
		TransactionDate: time.Now(),
	})
	assert.ErrorIs(t, err, ErrPropertyNotAvailable)

	sales, err := repo.ListByProperty(ctx, propertyID)
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestListDetailedFiltersByBalance(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := NewTransactionRepository(database)

	clientID := seedClient(t, database, "P. Njeri", "0733000002")

	paidProperty := seedProperty(t, database, model.Property{
		TitleDeedNumber: "LR-7001", Location: "Westgate", Size: 5,
		Owner: "A", TelephoneNumber: "1",
	})
	_, err := repo.RecordSale(ctx, model.Transaction{
		PropertyID:      paidProperty,
		ClientID:        clientID,
		PaymentMode:     "cash",
		TotalAmountPaid: 500000,
		TransactionDate: time.Now(),
	})
	require.NoError(t, err)

	owingProperty := seedProperty(t, database, model.Property{
		TitleDeedNumber: "LR-7002", Location: "Eastmead", Size: 5,
		Owner: "B", TelephoneNumber: "2",
	})
	_, err = repo.RecordSale(ctx, model.Transaction{
		PropertyID:      owingProperty,
		ClientID:        clientID,
		PaymentMode:     "bank",
		TotalAmountPaid: 100000,
		Balance:         400000,
		TransactionDate: time.Now(),
	})
	require.NoError(t, err)

	complete, err := repo.ListDetailed(ctx, TransactionFilter{Status: "complete"})
	require.NoError(t, err)
	require.Len(t, complete, 1)
	assert.Equal(t, "LR-7001", complete[0].TitleDeedNumber)

	pending, err := repo.ListDetailed(ctx, TransactionFilter{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "LR-7002", pending[0].TitleDeedNumber)

	byMode, err := repo.ListDetailed(ctx, TransactionFilter{PaymentMode: "bank"})
	require.NoError(t, err)
	require.Len(t, byMode, 1)
	assert.Equal(t, "P. Njeri", byMode[0].ClientName)
}
