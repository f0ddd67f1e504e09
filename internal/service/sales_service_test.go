package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
)

func newSalesFixture(t *testing.T) (*SalesService, *repository.PropertyRepository, *repository.ClientRepository, model.Principal) {
	t.Helper()

	database := testDB(t)
	principal := adminPrincipal(t, database)
	properties := repository.NewPropertyRepository(database)
	clients := repository.NewClientRepository(database)
	svc := NewSalesService(
		repository.NewTransactionRepository(database),
		properties,
		clients,
		repository.NewActivityRepository(database),
		stubReceipts{},
	)
	return svc, properties, clients, principal
}

func TestRecordSale(t *testing.T) {
	svc, properties, clients, principal := newSalesFixture(t)
	ctx := context.Background()

	propertyID, err := properties.Create(ctx, model.Property{
		PropertyType:    model.PropertyTypeLot,
		TitleDeedNumber: "LR-9001",
		Location:        "Westgate",
		Size:            2,
		Owner:           "Estate Co",
		TelephoneNumber: "1",
		Price:           500000,
		Status:          model.PropertyStatusAvailable,
	})
	require.NoError(t, err)
	clientID, err := clients.Create(ctx, model.Client{
		Name: "P. Njeri", TelephoneNumber: "0777000001", Status: model.ClientStatusActive,
	})
	require.NoError(t, err)

	result, err := svc.RecordSale(ctx, RecordSaleInput{
		PropertyID:  propertyID,
		ClientID:    clientID,
		PaymentMode: "cash",
		AmountPaid:  200000,
		Discount:    50000,
		Principal:   principal,
	})
	require.NoError(t, err)
	assert.InDelta(t, 250000.0, result.Balance, 0.0001)
	assert.NotEmpty(t, result.ReceiptName)
	assert.Equal(t, []byte("pdf"), result.Receipt)

	property, err := properties.GetByID(ctx, propertyID)
	require.NoError(t, err)
	assert.Equal(t, model.PropertyStatusSold, property.Status)

	// The parcel is no longer available.
	_, err = svc.RecordSale(ctx, RecordSaleInput{
		PropertyID:  propertyID,
		ClientID:    clientID,
		PaymentMode: "cash",
		AmountPaid:  100,
		Principal:   principal,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRecordSaleValidation(t *testing.T) {
	svc, properties, clients, principal := newSalesFixture(t)
	ctx := context.Background()

	propertyID, err := properties.Create(ctx, model.Property{
		PropertyType:    model.PropertyTypeLot,
		TitleDeedNumber: "LR-9002",
		Location:        "Westgate",
		Size:            2,
		Owner:           "Estate Co",
		TelephoneNumber: "1",
		Price:           100000,
		Status:          model.PropertyStatusAvailable,
	})
	require.NoError(t, err)
	clientID, err := clients.Create(ctx, model.Client{
		Name: "P. Njeri", TelephoneNumber: "0777000002", Status: model.ClientStatusActive,
	})
	require.NoError(t, err)

	_, err = svc.RecordSale(ctx, RecordSaleInput{
		PropertyID: propertyID, ClientID: clientID, Principal: principal,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Overpayment leaves a negative balance.
	_, err = svc.RecordSale(ctx, RecordSaleInput{
		PropertyID:  propertyID,
		ClientID:    clientID,
		PaymentMode: "cash",
		AmountPaid:  150000,
		Principal:   principal,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecordSale(ctx, RecordSaleInput{
		PropertyID:  999,
		ClientID:    clientID,
		PaymentMode: "cash",
		Principal:   principal,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
