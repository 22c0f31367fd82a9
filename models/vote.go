package models

// Vote categories. The consensus score assumes exactly these three.
const (
	CategoryDates      = "dates"
	CategoryVenues     = "venues"
	CategoryActivities = "activities"

	CategoryCount = 3
)

// IsValidCategory reports whether s names a voting category.
func IsValidCategory(s string) bool {
	return s == CategoryDates || s == CategoryVenues || s == CategoryActivities
}

// Vote is a single weighted preference. Votes live in the in-memory
// ledger only; date votes additionally reach the store as Availability rows.
type Vote struct {
	UserID     string `json:"user_id"`
	Category   string `json:"category"`
	ItemID     string `json:"item_id"`
	Weight     int    `json:"weight"`
	IsRequired bool   `json:"is_required"`
}

// ItemResult is the aggregated standing of one item within a category.
type ItemResult struct {
	ItemID   string `json:"item_id"`
	Weight   int    `json:"weight"`
	Progress int    `json:"progress"` // 0-100, relative to the category leader
}

// CategoryResult is the aggregation snapshot for one category.
type CategoryResult struct {
	Category  string       `json:"category"`
	Items     []ItemResult `json:"items"`
	TopChoice *ItemResult  `json:"top_choice"`
	Ephemeral bool         `json:"ephemeral"` // true when votes never reach the store
}

// MinorityReport surfaces a second-place item with meaningful support.
type MinorityReport struct {
	Category string `json:"category"`
	ItemID   string `json:"item_id"`
	Weight   int    `json:"weight"`
}

// DateOptionResult carries the durable availability tally for one date option.
type DateOptionResult struct {
	DateOptionID           string `json:"date_option_id"`
	OptionDate             string `json:"option_date"`
	OptionTime             string `json:"option_time"`
	AvailableCount         int    `json:"available_count"`
	TotalCount             int    `json:"total_count"`
	AvailabilityPercentage int    `json:"availability_percentage"`
	Optimal                bool   `json:"optimal"`
}

// PlanResults is the full aggregation payload for a plan.
type PlanResults struct {
	PlanID          string             `json:"plan_id"`
	Categories      []CategoryResult   `json:"categories"`
	ConsensusScore  int                `json:"consensus_score"`
	MinorityReports []MinorityReport   `json:"minority_reports"`
	DateOptions     []DateOptionResult `json:"date_options"`
}
