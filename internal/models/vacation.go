package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for vacation dates.
// Dates are date-only strings so range filters compare lexicographically,
// the same on Postgres and SQLite.
const DateLayout = "2006-01-02"

// DateOnly is a calendar date carried as a "2006-01-02" string. The
// Postgres driver scans date columns as time.Time; Scan reformats that
// back into the wire layout so responses never grow a time component.
type DateOnly string

// Scan implements sql.Scanner
func (d *DateOnly) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*d = DateOnly(v.Format(DateLayout))
	case string:
		*d = DateOnly(v)
	case []byte:
		*d = DateOnly(v)
	case nil:
		*d = ""
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", value)
	}
	return nil
}

// Value implements driver.Valuer
func (d DateOnly) Value() (driver.Value, error) {
	return string(d), nil
}

// Vacation represents a vacation offering managed by admins
type Vacation struct {
	ID            string    `json:"vacationId" gorm:"type:uuid;primaryKey;column:vacation_id"`
	Destination   string    `json:"destination" gorm:"size:100;not null"`
	Description   string    `json:"description" gorm:"type:text;not null"`
	StartDate     DateOnly  `json:"startDate" gorm:"type:date;not null;index"`
	EndDate       DateOnly  `json:"endDate" gorm:"type:date;not null"`
	Price         float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageFileName string    `json:"imageFileName,omitempty" gorm:"size:255"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// VacationView is a Vacation annotated with per-query derived fields.
// FollowersCount and IsFollowing are computed by the store on every read,
// never persisted.
type VacationView struct {
	Vacation
	FollowersCount int64 `json:"followersCount"`
	IsFollowing    bool  `json:"isFollowing"`
}

// VacationRequest defines the form fields for creating or updating a vacation
type VacationRequest struct {
	Destination string  `form:"destination" json:"destination" validate:"required,max=100"`
	Description string  `form:"description" json:"description" validate:"required"`
	StartDate   string  `form:"startDate" json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string  `form:"endDate" json:"endDate" validate:"required,datetime=2006-01-02"`
	Price       float64 `form:"price" json:"price" validate:"min=0,max=10000"`
}

// ReportRow is the follower report projection, one row per vacation
type ReportRow struct {
	Destination    string `json:"destination"`
	FollowersCount int64  `json:"followersCount"`
}
