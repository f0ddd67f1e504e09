package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

func TestTransferExecuteChangesOwner(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := NewTransferRepository(database)

	userID := seedUser(t, database, "registrar")
	propertyID := seedProperty(t, database, model.Property{
		TitleDeedNumber: "LR-8001", Location: "Westgate", Size: 5,
		Owner: "Old Owner", TelephoneNumber: "1",
	})
	buyerID := seedClient(t, database, "New Owner", "0744000001")

	transferID, err := repo.Execute(ctx, model.PropertyTransfer{
		PropertyID:       propertyID,
		ToClientID:       buyerID,
		TransferPrice:    750000,
		TransferDate:     time.Now(),
		ExecutedByUserID: userID,
	}, model.SourceMain)
	require.NoError(t, err)
	assert.NotZero(t, transferID)

	property, err := NewPropertyRepository(database).GetByID(ctx, propertyID)
	require.NoError(t, err)
	assert.Equal(t, "New Owner", property.Owner)

	rows, err := repo.List(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "New Owner", rows[0].ToClientName)
	assert.Equal(t, "registrar", rows[0].ExecutedBy)
}

func TestTransferExecuteUnknownTargets(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := NewTransferRepository(database)

	userID := seedUser(t, database, "registrar")
	propertyID := seedProperty(t, database, model.Property{
		TitleDeedNumber: "LR-8002", Location: "Westgate", Size: 5,
		Owner: "Old Owner", TelephoneNumber: "1",
	})

	// Destination client does not exist.
	_, err := repo.Execute(ctx, model.PropertyTransfer{
		PropertyID:       propertyID,
		ToClientID:       999,
		TransferDate:     time.Now(),
		ExecutedByUserID: userID,
	}, model.SourceMain)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Parcel does not exist; nothing must be written.
	buyerID := seedClient(t, database, "New Owner", "0744000002")
	_, err = repo.Execute(ctx, model.PropertyTransfer{
		PropertyID:       999,
		ToClientID:       buyerID,
		TransferDate:     time.Now(),
		ExecutedByUserID: userID,
	}, model.SourceMain)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	rows, err := repo.List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
