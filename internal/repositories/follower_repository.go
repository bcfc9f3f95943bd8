package repositories

import (
	"time"

	"github.com/vacatio/backend/internal/models"
	"gorm.io/gorm"
)

// FollowerRepository defines the interface for follow-edge operations
type FollowerRepository interface {
	CreateFollower(userID, vacationID string) error
	DeleteFollower(userID, vacationID string) error
	IsFollowing(userID, vacationID string) (bool, error)
	GetFollowersCount(vacationID string) (int64, error)
}

// PostgresFollowerRepository implements FollowerRepository for PostgreSQL
type PostgresFollowerRepository struct {
	db *gorm.DB
}

// NewPostgresFollowerRepository creates a new PostgresFollowerRepository
func NewPostgresFollowerRepository(db *gorm.DB) *PostgresFollowerRepository {
	return &PostgresFollowerRepository{db: db}
}

// CreateFollower creates a follow edge. The composite primary key rejects a
// racing duplicate at the storage layer.
func (r *PostgresFollowerRepository) CreateFollower(userID, vacationID string) error {
	follower := &models.Follower{
		UserID:     userID,
		VacationID: vacationID,
		FollowedAt: time.Now(),
	}
	return r.db.Create(follower).Error
}

// DeleteFollower removes a follow edge, reporting not-found when absent
func (r *PostgresFollowerRepository) DeleteFollower(userID, vacationID string) error {
	res := r.db.Where("user_id = ? AND vacation_id = ?", userID, vacationID).Delete(&models.Follower{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsFollowing reports whether the user follows the vacation
func (r *PostgresFollowerRepository) IsFollowing(userID, vacationID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follower{}).
		Where("user_id = ? AND vacation_id = ?", userID, vacationID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowersCount returns the live follower count for a vacation
func (r *PostgresFollowerRepository) GetFollowersCount(vacationID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follower{}).
		Where("vacation_id = ?", vacationID).
		Count(&count).Error
	return count, err
}
