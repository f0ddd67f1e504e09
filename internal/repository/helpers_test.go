package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/drelocd/estate-service/internal/db"
	"github.com/drelocd/estate-service/internal/model"
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

func seedUser(t *testing.T, database *gorm.DB, username string) int64 {
	t.Helper()

	id, err := NewUserRepository(database).Create(context.Background(), model.User{
		Username:     username,
		PasswordHash: "x",
		Role:         model.RoleUser,
	})
	require.NoError(t, err)
	return id
}

func seedProperty(t *testing.T, database *gorm.DB, p model.Property) int64 {
	t.Helper()

	if p.PropertyType == "" {
		p.PropertyType = model.PropertyTypeBlock
	}
	if p.Status == "" {
		p.Status = model.PropertyStatusAvailable
	}
	id, err := NewPropertyRepository(database).Create(context.Background(), p)
	require.NoError(t, err)
	return id
}

func seedClient(t *testing.T, database *gorm.DB, name, phone string) int64 {
	t.Helper()

	id, err := NewClientRepository(database).Create(context.Background(), model.Client{
		Name:            name,
		TelephoneNumber: phone,
		Status:          "active",
	})
	require.NoError(t, err)
	return id
}
