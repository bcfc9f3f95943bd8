package models

import "time"

// Follower represents a user following a vacation. The composite primary
// key makes the (user, vacation) pair unique, so a racing duplicate follow
// is rejected by the storage layer.
type Follower struct {
	UserID     string    `json:"userId" gorm:"type:uuid;primaryKey;column:user_id"`
	VacationID string    `json:"vacationId" gorm:"type:uuid;primaryKey;column:vacation_id"`
	FollowedAt time.Time `json:"followedAt"`
}
