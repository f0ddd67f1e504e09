package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/drelocd/estate-service/internal/db"
	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database, "sqlite"))
	return database
}

func adminPrincipal(t *testing.T, database *gorm.DB) model.Principal {
	t.Helper()

	id, err := repository.NewUserRepository(database).Create(context.Background(), model.User{
		Username:     "admin",
		PasswordHash: "x",
		Role:         model.RoleAdmin,
	})
	require.NoError(t, err)
	return model.Principal{UserID: id, Username: "admin", Role: model.RoleAdmin}
}

// stubReceipts satisfies both document generator interfaces with fixed
// bytes so service tests stay off the PDF library.
type stubReceipts struct{}

func (stubReceipts) SaleReceipt(model.SaleReceipt) ([]byte, error)   { return []byte("pdf"), nil }
func (stubReceipts) DispatchNote(model.DispatchNote) ([]byte, error) { return []byte("pdf"), nil }
