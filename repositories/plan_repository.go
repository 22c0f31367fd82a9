package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"planpal-api/models"
	"planpal-api/utils"
)

// Sentinel errors mapped onto the response taxonomy by the controllers.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// CreatePlan persists a plan and its candidate date options in one
// transaction, assigning ids and a collision-checked share code.
func (r *PlanRepository) CreatePlan(plan *models.Plan, dateOptions []models.DateOption) (*models.Plan, error) {
	if plan.Name == "" || plan.Date == "" || plan.ActivityType == "" || plan.CreatorName == "" || plan.CreatorEmail == "" {
		return nil, fmt.Errorf("%w: name, date, activity_type and creator identity are required", ErrValidation)
	}

	plan.ID = uuid.New().String()

	code, err := r.uniqueShareCode()
	if err != nil {
		return nil, err
	}
	plan.ShareCode = code

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plan).Error; err != nil {
			return err
		}

		for i := range dateOptions {
			dateOptions[i].ID = uuid.New().String()
			dateOptions[i].PlanID = plan.ID
			if err := tx.Create(&dateOptions[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	plan.DateOptions = dateOptions
	return plan, nil
}

// uniqueShareCode generates codes until one is free. Collisions on a
// 31^6 space are rare enough that a small retry bound suffices.
func (r *PlanRepository) uniqueShareCode() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code := utils.GenerateShareCode()

		var count int64
		if err := r.db.Model(&models.Plan{}).Where("share_code = ?", code).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check share code: %w", err)
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not allocate a unique share code")
}

// GetPlanByShareCode loads the full plan: RSVPs, date options and
// every availability row, so percentages can be computed from one fetch.
func (r *PlanRepository) GetPlanByShareCode(code string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.Preload("RSVPs").
		Preload("DateOptions").
		Preload("DateOptions.Availability").
		First(&plan, "share_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no plan with share code %s", ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to fetch plan: %w", err)
	}

	return &plan, nil
}

// GetPlanByID loads a bare plan row without nested associations.
func (r *PlanRepository) GetPlanByID(planID string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no plan with id %s", ErrNotFound, planID)
		}
		return nil, fmt.Errorf("failed to fetch plan: %w", err)
	}
	return &plan, nil
}

// SubmitRSVP upserts an RSVP. The dedup key is (plan_id, email) when an
// email is present, else (plan_id, guest_token). Callers must ensure a
// guest token exists when email is withheld. Absent values are stored
// as NULL so the unique keys never bind rows without one.
func (r *PlanRepository) SubmitRSVP(planID string, rsvp *models.RSVP) (*models.RSVP, error) {
	if rsvp.Name == "" || !models.IsValidResponse(rsvp.Response) {
		return nil, fmt.Errorf("%w: name and a valid response are required", ErrValidation)
	}

	email := stringValue(rsvp.Email)
	guestToken := stringValue(rsvp.GuestToken)
	if email == "" && guestToken == "" {
		return nil, fmt.Errorf("%w: either email or guest_token is required", ErrValidation)
	}
	if email == "" {
		rsvp.Email = nil
	}
	if guestToken == "" {
		rsvp.GuestToken = nil
	}

	var existing models.RSVP
	query := r.db.Where("plan_id = ?", planID)
	if email != "" {
		query = query.Where("email = ?", email)
	} else {
		query = query.Where("guest_token = ?", guestToken)
	}

	err := query.First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up rsvp: %w", err)
		}

		rsvp.ID = uuid.New().String()
		rsvp.PlanID = planID
		if err := r.db.Create(rsvp).Error; err != nil {
			return nil, fmt.Errorf("failed to create rsvp: %w", err)
		}

		// Keep the denormalized counter in step
		err := r.db.Model(&models.Plan{}).Where("id = ?", planID).
			UpdateColumn("rsvp_count", gorm.Expr("rsvp_count + ?", 1)).Error
		if err != nil {
			fmt.Printf("Warning: Could not update rsvp count for plan %s: %v\n", planID, err)
		}

		return rsvp, nil
	}

	err = r.db.Model(&existing).Updates(map[string]interface{}{
		"name":       rsvp.Name,
		"response":   rsvp.Response,
		"notes":      rsvp.Notes,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update rsvp: %w", err)
	}

	existing.Name = rsvp.Name
	existing.Response = rsvp.Response
	existing.Notes = rsvp.Notes
	return &existing, nil
}

// UpsertAvailability records one voter's yes/no for a date option,
// keyed by (date_option_id, email). Re-voting overwrites.
func (r *PlanRepository) UpsertAvailability(dateOptionID string, availability *models.Availability) (*models.Availability, error) {
	if availability.Name == "" || availability.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}

	var option models.DateOption
	if err := r.db.First(&option, "id = ?", dateOptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no date option with id %s", ErrNotFound, dateOptionID)
		}
		return nil, fmt.Errorf("failed to fetch date option: %w", err)
	}

	var existing models.Availability
	err := r.db.Where("date_option_id = ? AND email = ?", dateOptionID, availability.Email).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up availability: %w", err)
		}

		availability.ID = uuid.New().String()
		availability.DateOptionID = dateOptionID
		if err := r.db.Create(availability).Error; err != nil {
			return nil, fmt.Errorf("failed to create availability: %w", err)
		}
		return availability, nil
	}

	err = r.db.Model(&existing).Updates(map[string]interface{}{
		"name":         availability.Name,
		"is_available": availability.IsAvailable,
		"updated_at":   time.Now(),
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}

	existing.Name = availability.Name
	existing.IsAvailable = availability.IsAvailable
	return &existing, nil
}

// UpdatePlan applies creator-managed edits to a plan.
func (r *PlanRepository) UpdatePlan(planID string, updates map[string]interface{}) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no plan with id %s", ErrNotFound, planID)
		}
		return nil, fmt.Errorf("failed to fetch plan: %w", err)
	}

	updates["updated_at"] = time.Now()
	if err := r.db.Model(&plan).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	return &plan, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ListPastPlanIDs returns ids of plans whose event date is before the
// cutoff. Used by the ledger cleanup job.
func (r *PlanRepository) ListPastPlanIDs(cutoff time.Time) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Plan{}).
		Where("date < ?", cutoff.Format("2006-01-02")).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list past plans: %w", err)
	}
	return ids, nil
}
