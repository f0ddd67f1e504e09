package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
)

func newLotFixture(t *testing.T) (*LotService, *repository.PropertyRepository, model.Principal) {
	t.Helper()

	database := testDB(t)
	principal := adminPrincipal(t, database)
	properties := repository.NewPropertyRepository(database)
	svc := NewLotService(
		repository.NewLotRepository(database),
		properties,
		repository.NewActivityRepository(database),
	)
	return svc, properties, principal
}

func TestProposeLotRequiresBlock(t *testing.T) {
	svc, properties, principal := newLotFixture(t)
	ctx := context.Background()

	lotParcel, err := properties.Create(ctx, model.Property{
		PropertyType:    model.PropertyTypeLot,
		TitleDeedNumber: "LOT-1",
		Location:        "Westgate",
		Size:            2,
		Owner:           "A",
		TelephoneNumber: "1",
		Status:          model.PropertyStatusAvailable,
	})
	require.NoError(t, err)

	_, err = svc.Propose(ctx, ProposeLotInput{
		ParentBlockID: lotParcel,
		Size:          1,
		SurveyorName:  "J. Mwangi",
		Principal:     principal,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Propose(ctx, ProposeLotInput{
		ParentBlockID: 999,
		Size:          1,
		SurveyorName:  "J. Mwangi",
		Principal:     principal,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProposeConfirmRejectFlow(t *testing.T) {
	svc, properties, principal := newLotFixture(t)
	ctx := context.Background()

	blockID, err := properties.Create(ctx, model.Property{
		PropertyType:    model.PropertyTypeBlock,
		TitleDeedNumber: "BLK-1",
		Location:        "Westgate",
		Size:            10,
		Owner:           "Estate Co",
		TelephoneNumber: "1",
		Status:          model.PropertyStatusAvailable,
	})
	require.NoError(t, err)

	lotID, err := svc.Propose(ctx, ProposeLotInput{
		ParentBlockID: blockID,
		Size:          4,
		SurveyorName:  "J. Mwangi",
		Principal:     principal,
	})
	require.NoError(t, err)

	lot, err := svc.Get(ctx, lotID)
	require.NoError(t, err)
	assert.Equal(t, "N/A", lot.TitleDeedNumber)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	propertyID, err := svc.Confirm(ctx, ConfirmLotInput{
		LotID:           lotID,
		TitleDeedNumber: "LOT-BLK-1-1",
		Owner:           "A. Otieno",
		Principal:       principal,
	})
	require.NoError(t, err)
	assert.NotZero(t, propertyID)

	// Confirming again conflicts, the lot is resolved.
	_, err = svc.Confirm(ctx, ConfirmLotInput{
		LotID:           lotID,
		TitleDeedNumber: "LOT-BLK-1-1",
		Owner:           "A. Otieno",
		Principal:       principal,
	})
	assert.ErrorIs(t, err, ErrConflict)

	assert.ErrorIs(t, svc.Reject(ctx, principal, lotID), ErrConflict)

	_, err = svc.Propose(ctx, ProposeLotInput{
		ParentBlockID: blockID,
		Size:          100,
		SurveyorName:  "J. Mwangi",
		Principal:     principal,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
