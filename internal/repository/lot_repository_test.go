package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

func TestLotProposeReducesParentSize(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := NewLotRepository(database)

	parentID := seedProperty(t, database, model.Property{
		TitleDeedNumber: "BLK-100",
		Location:        "Northlands",
		Size:            10,
		Owner:           "Estate Co",
		TelephoneNumber: "0700000001",
	})

	lotID, err := repo.Propose(ctx, model.ProposedLot{
		ParentBlockID: parentID,
		Size:          4,
		Location:      "Northlands",
		SurveyorName:  "J. Mwangi",
		CreatedBy:     "clerk",
	})
	require.NoError(t, err)
	assert.NotZero(t, lotID)

	parent, err := NewPropertyRepository(database).GetByID(ctx, parentID)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, parent.Size, 0.0001)
	assert.Equal(t, model.PropertyStatusAvailable, parent.Status)
}

func TestLotProposeExhaustsParent(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := NewLotRepository(database)

	parentID := seedProperty(t, database, model.Property{
		TitleDeedNumber: "BLK-101",
		Location:        "Northlands",
		Size:            5,
		Owner:           "Estate Co",
		TelephoneNumber: "0700000001",
	})

	_, err := repo.Propose(ctx, model.ProposedLot{
		ParentBlockID: parentID,
		Size:          5,
		SurveyorName:  "J. Mwangi",
		CreatedBy:     "clerk",
	})
	require.NoError(t, err)

	parent, err := NewPropertyRepository(database).GetByID(ctx, parentID)
	require.NoError(t, err)
	assert.Equal(t, model.PropertyStatusUnavailable, parent.Status)
}

func TestLotProposeInsufficientSize(t *testing.T) {
	database := testDB(t)
	repo := NewLotRepository(database)

	parentID := seedProperty(t, database, model.Property{
		TitleDeedNumber: "BLK-102",
		Location:        "Northlands",
		Size:            3,
		Owner:           "Estate Co",
		TelephoneNumber: "0700000001",
	})

	_, err := repo.Propose(context.Background(), model.ProposedLot{
		ParentBlockID: parentID,
		Size:          4,
		SurveyorName:  "J. Mwangi",
		CreatedBy:     "clerk",
	})
	assert.ErrorIs(t, err, ErrInsufficientBlockSize)
}

func TestLotProposeGuardsRemainingSize(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := NewLotRepository(database)

	parentID := seedProperty(t, database, model.Property{
		TitleDeedNumber: "BLK-103",
		Location:        "Northlands",
		Size:            10,
		Owner:           "Estate Co",
		TelephoneNumber: "0700000001",
	})

	_, err := repo.Propose(ctx, model.ProposedLot{
		ParentBlockID: parentID,
		Size:          6,
		SurveyorName:  "J. Mwangi",
		CreatedBy:     "clerk",
	})
	require.NoError(t, err)

	// The second proposal must be checked against the decremented
	// size, not the size the block started with.
	_, err = repo.Propose(ctx, model.ProposedLot{
		ParentBlockID: parentID,
		Size:          6,
		SurveyorName:  "J. Mwangi",
		CreatedBy:     "clerk",
	})
	assert.ErrorIs(t, err, ErrInsufficientBlockSize)

	parent, err := NewPropertyRepository(database).GetByID(ctx, parentID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, parent.Size, 0.0001)

	lots, err := repo.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, lots, 1)
}

func TestLotProposeUnknownParent(t *testing.T) {
	repo := NewLotRepository(testDB(t))

	_, err := repo.Propose(context.Background(), model.ProposedLot{
		ParentBlockID: 9999,
		Size:          1,
		SurveyorName:  "J. Mwangi",
		CreatedBy:     "clerk",
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLotConfirmCreatesProperty(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := NewLotRepository(database)

	parentID := seedProperty(t, database, model.Property{
		TitleDeedNumber: "BLK-103",
		Location:        "Northlands",
		Size:            10,
		Owner:           "Estate Co",
		TelephoneNumber: "0700000001",
	})
	lotID, err := repo.Propose(ctx, model.ProposedLot{
		ParentBlockID: parentID,
		Size:          4,
		SurveyorName:  "J. Mwangi",
		CreatedBy:     "clerk",
	})
	require.NoError(t, err)

	propertyID, err := repo.Confirm(ctx, lotID, model.Property{
		TitleDeedNumber: "LOT-103-1",
		Location:        "Northlands",
		Size:            4,
		Owner:           "A. Otieno",
		TelephoneNumber: "0711000001",
		Price:           250000,
	})
	require.NoError(t, err)

	created, err := NewPropertyRepository(database).GetByID(ctx, propertyID)
	require.NoError(t, err)
	assert.Equal(t, model.PropertyTypeLot, created.PropertyType)
	assert.Equal(t, model.PropertyStatusAvailable, created.Status)

	lot, err := repo.GetByID(ctx, lotID)
	require.NoError(t, err)
	assert.Equal(t, model.LotStatusConfirmed, lot.Status)

	// A resolved lot cannot be confirmed again.
	_, err = repo.Confirm(ctx, lotID, model.Property{TitleDeedNumber: "LOT-103-1"})
	assert.ErrorIs(t, err, ErrLotNotProposed)
}

func TestLotRejectReturnsSizeToParent(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := NewLotRepository(database)
	properties := NewPropertyRepository(database)

	parentID := seedProperty(t, database, model.Property{
		TitleDeedNumber: "BLK-104",
		Location:        "Northlands",
		Size:            5,
		Owner:           "Estate Co",
		TelephoneNumber: "0700000001",
	})
	lotID, err := repo.Propose(ctx, model.ProposedLot{
		ParentBlockID: parentID,
		Size:          5,
		SurveyorName:  "J. Mwangi",
		CreatedBy:     "clerk",
	})
	require.NoError(t, err)

	parent, err := properties.GetByID(ctx, parentID)
	require.NoError(t, err)
	require.Equal(t, model.PropertyStatusUnavailable, parent.Status)

	require.NoError(t, repo.Reject(ctx, lotID))

	parent, err = properties.GetByID(ctx, parentID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, parent.Size, 0.0001)
	assert.Equal(t, model.PropertyStatusAvailable, parent.Status)

	lot, err := repo.GetByID(ctx, lotID)
	require.NoError(t, err)
	assert.Equal(t, model.LotStatusRejected, lot.Status)

	assert.ErrorIs(t, repo.Reject(ctx, lotID), ErrLotNotProposed)
}
