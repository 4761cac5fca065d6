package models

import "time"

// Meal is a single logged meal. UserID is the owner and never changes after
// creation.
type Meal struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"` // when the meal was eaten, UTC
	IsOnDailyDiet bool      `json:"isOnDailyDiet"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
