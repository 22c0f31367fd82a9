package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"planpal-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Plan{},
		&models.RSVP{},
		&models.DateOption{},
		&models.Availability{},
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Unique keys (plans share_code, rsvps plan+email and plan+guest_token,
	// availabilities option+email) are declared as model index tags so
	// AutoMigrate creates them on MySQL and sqlite alike.
	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Share code is the public lookup key for every join/manage view
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_plans_share_code ON plans(share_code)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for plans share_code: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_rsvps_plan_created ON rsvps(plan_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for rsvps: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_date_options_plan ON date_options(plan_id)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for date_options: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_availabilities_option_email ON availabilities(date_option_id, email)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for availabilities: %v\n", err)
	}

	return nil
}

// SeedData can be used to populate the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	var planCount int64
	db.Model(&models.Plan{}).Count(&planCount)

	if planCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	lat, lng := 40.7359, -73.9911
	testPlan := models.Plan{
		ID:              "plan-1",
		Name:            "Summer Picnic",
		Date:            "2026-07-18",
		Time:            "12:00",
		ActivityType:    "outdoor",
		LocationName:    "Union Square Park",
		LocationAddress: "201 Park Ave S, New York, NY",
		Latitude:        &lat,
		Longitude:       &lng,
		Description:     "Annual team picnic, bring a dish to share.",
		ShareCode:       "PICNIC",
		CreatorName:     "Avery Miles",
		CreatorEmail:    "avery@example.com",
		VenueOptions:    models.StringSlice{"Union Square Park", "Prospect Park", "Hudson River Park"},
		ActivityOptions: models.StringSlice{"frisbee", "board games", "volleyball"},
	}

	if err := db.Create(&testPlan).Error; err != nil {
		fmt.Printf("Warning: Could not create test plan %s: %v\n", testPlan.Name, err)
	}

	testOptions := []models.DateOption{
		{ID: "option-1", PlanID: testPlan.ID, OptionDate: "2026-07-18", OptionTime: "12:00"},
		{ID: "option-2", PlanID: testPlan.ID, OptionDate: "2026-07-25", OptionTime: "12:00"},
	}

	for _, option := range testOptions {
		if err := db.Create(&option).Error; err != nil {
			fmt.Printf("Warning: Could not create test date option %s: %v\n", option.OptionDate, err)
		}
	}

	fmt.Println("Database seeded with test data")
	return nil
}
