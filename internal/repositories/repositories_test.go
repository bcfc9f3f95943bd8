package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vacatio/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Vacation{}, &models.Follower{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		ID:        uuid.NewString(),
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "hashed",
		Role:      models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// day returns today+offset formatted as a storage date
func day(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format(models.DateLayout)
}

func createTestVacation(t *testing.T, db *gorm.DB, destination string, startOffset, endOffset int) *models.Vacation {
	t.Helper()
	vacation := &models.Vacation{
		ID:          uuid.NewString(),
		Destination: destination,
		Description: fmt.Sprintf("A trip to %s", destination),
		StartDate:   models.DateOnly(day(startOffset)),
		EndDate:     models.DateOnly(day(endOffset)),
		Price:       500,
	}
	require.NoError(t, db.Create(vacation).Error)
	return vacation
}
