package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

func TestPropertyCreateAndGet(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := NewPropertyRepository(database)

	userID := seedUser(t, database, "clerk")
	id, err := repo.Create(ctx, model.Property{
		PropertyType:    model.PropertyTypeBlock,
		TitleDeedNumber: "LR-2001",
		Location:        "Westgate",
		Size:            12.5,
		Owner:           "M. Kamau",
		TelephoneNumber: "0722000001",
		Price:           1200000,
		Status:          model.PropertyStatusAvailable,
		AddedByUserID:   &userID,
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "LR-2001", got.TitleDeedNumber)
	assert.Equal(t, "M. Kamau", got.Owner)
	assert.InDelta(t, 12.5, got.Size, 0.0001)

	_, err = repo.GetByID(ctx, id+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPropertyListFilters(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := NewPropertyRepository(database)

	seedProperty(t, database, model.Property{
		TitleDeedNumber: "LR-3001", Location: "Westgate", Size: 5,
		Owner: "A", TelephoneNumber: "1",
	})
	seedProperty(t, database, model.Property{
		TitleDeedNumber: "LR-3002", Location: "Eastmead", Size: 20,
		Owner: "B", TelephoneNumber: "2", Status: model.PropertyStatusSold,
	})

	rows, err := repo.List(ctx, PropertyFilter{Search: "Westgate"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "LR-3001", rows[0].TitleDeedNumber)

	min := 10.0
	rows, err = repo.List(ctx, PropertyFilter{MinSize: &min})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "LR-3002", rows[0].TitleDeedNumber)

	rows, err = repo.List(ctx, PropertyFilter{Status: "Sold"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "LR-3002", rows[0].TitleDeedNumber)

	rows, err = repo.List(ctx, PropertyFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestPropertyUpdateAndDelete(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := NewPropertyRepository(database)

	id := seedProperty(t, database, model.Property{
		TitleDeedNumber: "LR-4001", Location: "Westgate", Size: 5,
		Owner: "A", TelephoneNumber: "1",
	})

	err := repo.Update(ctx, id, map[string]interface{}{
		"price":    900000.0,
		"location": "Westgate Phase II",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Westgate Phase II", got.Location)
	assert.InDelta(t, 900000.0, got.Price, 0.0001)

	assert.ErrorIs(t, repo.Update(ctx, id+100, map[string]interface{}{"price": 1.0}), gorm.ErrRecordNotFound)

	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), gorm.ErrRecordNotFound)
}

func TestPropertyCounts(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := NewPropertyRepository(database)

	seedProperty(t, database, model.Property{
		TitleDeedNumber: "LR-5001", Location: "Westgate", Size: 5,
		Owner: "A", TelephoneNumber: "1",
	})
	seedProperty(t, database, model.Property{
		TitleDeedNumber: "LR-5002", Location: "Westgate", Size: 5,
		Owner: "B", TelephoneNumber: "2", Status: model.PropertyStatusSold,
	})

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	available, err := repo.CountByStatus(ctx, model.PropertyStatusAvailable)
	require.NoError(t, err)
	assert.EqualValues(t, 1, available)
}
