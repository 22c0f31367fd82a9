package models

import (
	"time"
)

type Plan struct {
	ID              string      `json:"id" gorm:"primaryKey;size:191"`
	Name            string      `json:"name" gorm:"not null;size:255"`
	Date            string      `json:"date" gorm:"not null;size:10"` // YYYY-MM-DD
	Time            string      `json:"time" gorm:"size:8"`           // HH:MM
	ActivityType    string      `json:"activity_type" gorm:"not null;size:100"`
	LocationName    string      `json:"location_name" gorm:"size:255"`
	LocationAddress string      `json:"location_address" gorm:"size:500"`
	Latitude        *float64    `json:"latitude"`
	Longitude       *float64    `json:"longitude"`
	Description     string      `json:"description" gorm:"type:text"`
	ShareCode       string      `json:"share_code" gorm:"uniqueIndex;not null;size:12"`
	CreatorName     string      `json:"creator_name" gorm:"not null;size:255"`
	CreatorEmail    string      `json:"creator_email" gorm:"not null;size:255"`
	ManagePassword  string      `json:"-" gorm:"size:255"` // optional bcrypt hash
	VenueOptions    StringSlice `json:"venue_options" gorm:"type:json"`
	ActivityOptions StringSlice `json:"activity_options" gorm:"type:json"`
	RSVPCount       int         `json:"rsvp_count" gorm:"default:0"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	RSVPs       []RSVP       `json:"rsvps" gorm:"foreignKey:PlanID"`
	DateOptions []DateOption `json:"date_options" gorm:"foreignKey:PlanID"`
}

type DateOption struct {
	ID         string    `json:"id" gorm:"primaryKey;size:191"`
	PlanID     string    `json:"plan_id" gorm:"not null;index;size:191"`
	OptionDate string    `json:"option_date" gorm:"not null;size:10"`
	OptionTime string    `json:"option_time" gorm:"size:8"`
	CreatedAt  time.Time `json:"created_at"`

	Availability []Availability `json:"availability" gorm:"foreignKey:DateOptionID"`
}

// ShareLink builds the public join URL for the plan.
func (p *Plan) ShareLink(baseURL string) string {
	return baseURL + "/join/" + p.ShareCode
}
