package models

import (
	"time"
)

// RSVP response values
const (
	ResponseGoing    = "going"
	ResponseMaybe    = "maybe"
	ResponseNotGoing = "not_going"
)

// IsValidResponse reports whether s is one of the accepted RSVP responses.
func IsValidResponse(s string) bool {
	return s == ResponseGoing || s == ResponseMaybe || s == ResponseNotGoing
}

// RSVP rows are unique per (plan_id, email) and per (plan_id,
// guest_token). Email and GuestToken are pointers so an absent value is
// stored as NULL rather than "": NULLs stay distinct under the unique
// keys, so any number of guests without an email can RSVP to one plan.
type RSVP struct {
	ID         string    `json:"id" gorm:"primaryKey;size:191"`
	PlanID     string    `json:"plan_id" gorm:"not null;size:191;uniqueIndex:uk_rsvps_plan_email;uniqueIndex:uk_rsvps_plan_guest"`
	Name       string    `json:"name" gorm:"not null;size:255"`
	Email      *string   `json:"email,omitempty" gorm:"size:255;uniqueIndex:uk_rsvps_plan_email"`
	GuestToken *string   `json:"guest_token,omitempty" gorm:"size:191;uniqueIndex:uk_rsvps_plan_guest"` // dedup key for email-less guests
	Response   string    `json:"response" gorm:"not null;size:20"`
	Notes      string    `json:"notes" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Availability rows are unique per (date_option_id, email); re-voting
// overwrites the existing row.
type Availability struct {
	ID           string    `json:"id" gorm:"primaryKey;size:191"`
	DateOptionID string    `json:"date_option_id" gorm:"not null;size:191;uniqueIndex:uk_availabilities_option_email"`
	Name         string    `json:"name" gorm:"not null;size:255"`
	Email        string    `json:"email" gorm:"not null;size:255;uniqueIndex:uk_availabilities_option_email"`
	IsAvailable  bool      `json:"is_available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
