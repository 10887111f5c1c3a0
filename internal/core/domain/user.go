package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// User models a household member. A user belongs to at most one household at
// any instant; HouseholdID is empty for users not currently in one.
type User struct {
	ID          string    `json:"id" bson:"_id"`
	Email       string    `json:"email" bson:"email"`
	HouseholdID string    `json:"household_id,omitempty" bson:"household_id,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
