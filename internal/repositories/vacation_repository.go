package repositories

import (
	"github.com/google/uuid"
	"github.com/vacatio/backend/internal/models"
	"gorm.io/gorm"
)

// PageSize is the fixed number of vacations per listing page
const PageSize = 10

// ListFilter narrows a vacation listing. NotStarted and Active are mutually
// exclusive; NotStarted wins if both are set. Following restricts results to
// vacations the caller follows.
type ListFilter struct {
	Page       int
	Following  bool
	NotStarted bool
	Active     bool
}

// VacationRepository defines the interface for vacation data operations.
// Read operations annotate every row with its live follower count and
// whether the calling user follows it, computed in the same query.
type VacationRepository interface {
	CreateVacation(vacation *models.Vacation) error
	GetVacationByID(id, callerID string) (*models.VacationView, error)
	ListVacations(callerID, today string, filter ListFilter) ([]models.VacationView, int64, error)
	UpdateVacation(vacation *models.Vacation) error
	DeleteVacation(id string) error
	GetRawVacation(id string) (*models.Vacation, error)
	Report() ([]models.ReportRow, error)
}

// PostgresVacationRepository implements VacationRepository for PostgreSQL
type PostgresVacationRepository struct {
	db *gorm.DB
}

// NewPostgresVacationRepository creates a new PostgresVacationRepository
func NewPostgresVacationRepository(db *gorm.DB) *PostgresVacationRepository {
	return &PostgresVacationRepository{db: db}
}

const annotatedColumns = "vacations.*, " +
	"(SELECT COUNT(*) FROM followers WHERE followers.vacation_id = vacations.vacation_id) AS followers_count, " +
	"(EXISTS(SELECT 1 FROM followers WHERE followers.vacation_id = vacations.vacation_id AND followers.user_id = ?)) AS is_following"

// CreateVacation creates a new vacation, assigning an ID if none is set
func (r *PostgresVacationRepository) CreateVacation(vacation *models.Vacation) error {
	if vacation.ID == "" {
		vacation.ID = uuid.NewString()
	}
	return r.db.Create(vacation).Error
}

// GetVacationByID retrieves one vacation with derived fields for the caller
func (r *PostgresVacationRepository) GetVacationByID(id, callerID string) (*models.VacationView, error) {
	var view models.VacationView
	err := r.db.Model(&models.Vacation{}).
		Select(annotatedColumns, callerID).
		Where("vacations.vacation_id = ?", id).
		First(&view).Error
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// ListVacations returns one page of vacations ordered by start date,
// annotated for the caller, plus the total row count for the filter.
func (r *PostgresVacationRepository) ListVacations(callerID, today string, filter ListFilter) ([]models.VacationView, int64, error) {
	base := r.db.Model(&models.Vacation{})

	if filter.NotStarted {
		base = base.Where("vacations.start_date > ?", today)
	} else if filter.Active {
		base = base.Where("vacations.start_date <= ? AND vacations.end_date >= ?", today, today)
	}

	if filter.Following {
		base = base.Joins(
			"JOIN followers ON followers.vacation_id = vacations.vacation_id AND followers.user_id = ?",
			callerID,
		)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	var views []models.VacationView
	err := base.
		Select(annotatedColumns, callerID).
		Order("vacations.start_date ASC").
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Find(&views).Error
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// UpdateVacation persists all fields of an existing vacation
func (r *PostgresVacationRepository) UpdateVacation(vacation *models.Vacation) error {
	return r.db.Save(vacation).Error
}

// DeleteVacation removes a vacation and its follow edges
func (r *PostgresVacationRepository) DeleteVacation(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vacation_id = ?", id).Delete(&models.Follower{}).Error; err != nil {
			return err
		}
		res := tx.Where("vacation_id = ?", id).Delete(&models.Vacation{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetRawVacation retrieves a vacation without derived fields
func (r *PostgresVacationRepository) GetRawVacation(id string) (*models.Vacation, error) {
	var vacation models.Vacation
	if err := r.db.First(&vacation, "vacation_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vacation, nil
}

// Report returns the follower count per vacation, ordered by destination
func (r *PostgresVacationRepository) Report() ([]models.ReportRow, error) {
	var rows []models.ReportRow
	err := r.db.Model(&models.Vacation{}).
		Select("vacations.destination, (SELECT COUNT(*) FROM followers WHERE followers.vacation_id = vacations.vacation_id) AS followers_count").
		Order("vacations.destination ASC").
		Scan(&rows).Error
	return rows, err
}
