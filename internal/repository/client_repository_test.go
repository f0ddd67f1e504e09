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

func TestClientReactivate(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := NewClientRepository(database)

	id := seedClient(t, database, "P. Njeri", "0766000001")
	require.NoError(t, repo.Deactivate(ctx, id))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.ClientStatusInactive, got.Status)

	require.NoError(t, repo.Reactivate(ctx, id, "P. Njeri-Otieno", "njeri@example.com", nil))

	got, err = repo.GetByPhone(ctx, "0766000001")
	require.NoError(t, err)
	assert.Equal(t, model.ClientStatusActive, got.Status)
	assert.Equal(t, "P. Njeri-Otieno", got.Name)

	_, err = repo.GetByPhone(ctx, "0000000000")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestClientVisits(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	repo := NewClientRepository(database)

	clientID := seedClient(t, database, "P. Njeri", "0766000002")

	visitedAt := time.Now().Add(-time.Hour)
	_, err := repo.AddVisit(ctx, model.ClientVisit{
		ClientID:  clientID,
		Purpose:   "inquiry",
		BroughtBy: "agent",
		VisitedAt: visitedAt,
	})
	require.NoError(t, err)

	rows, err := repo.ListVisits(ctx, nil, nil, "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "inquiry", rows[0].Purpose)

	rows, err = repo.ListVisits(ctx, nil, nil, "viewing")
	require.NoError(t, err)
	assert.Empty(t, rows)

	future := time.Now().Add(time.Hour)
	rows, err = repo.ListVisits(ctx, &future, nil, "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
