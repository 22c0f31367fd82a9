package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"planpal-api/config"
	"planpal-api/models"
	"planpal-api/repositories"
	"planpal-api/utils"
)

type PlanController struct {
	repo *repositories.PlanRepository
	cfg  *config.Config
}

func NewPlanController(repo *repositories.PlanRepository, cfg *config.Config) *PlanController {
	return &PlanController{repo: repo, cfg: cfg}
}

type DateOptionRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time"`
}

// CreatePlanRequest accepts both the canonical field names and the
// historical aliases (eventName/activityType). Normalize folds the
// aliases onto the canonical fields once, at this boundary.
type CreatePlanRequest struct {
	Name            string   `json:"name"`
	EventName       string   `json:"eventName"` // legacy alias for name
	Date            string   `json:"date" binding:"required"`
	Time            string   `json:"time"`
	ActivityType    string   `json:"activity_type"`
	ActivityTypeAlt string   `json:"activityType"` // legacy alias
	LocationName    string   `json:"location_name"`
	LocationAddress string   `json:"location_address"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Description     string   `json:"description"`
	CreatorName     string   `json:"creator_name" binding:"required"`
	CreatorEmail    string   `json:"creator_email" binding:"required,email"`
	ManagePassword  string   `json:"manage_password"`
	VenueOptions    []string `json:"venue_options"`
	ActivityOptions []string `json:"activity_options"`

	DateOptions []DateOptionRequest `json:"date_options"`
}

// Normalize maps legacy aliases onto canonical fields.
func (req *CreatePlanRequest) Normalize() {
	if req.Name == "" {
		req.Name = req.EventName
	}
	if req.ActivityType == "" {
		req.ActivityType = req.ActivityTypeAlt
	}
}

type CreatePlanResponse struct {
	Plan        *models.Plan `json:"plan"`
	ShareLink   string       `json:"share_link"`
	ManageToken string       `json:"manage_token"`
}

func (pc *PlanController) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	req.Normalize()

	if req.Name == "" {
		utils.SendValidationError(c, "name is required")
		return
	}
	if req.ActivityType == "" {
		utils.SendValidationError(c, "activity_type is required")
		return
	}
	if !utils.IsValidDate(req.Date) {
		utils.SendValidationError(c, "date must be YYYY-MM-DD")
		return
	}
	if req.Latitude != nil && !utils.IsValidLatitude(*req.Latitude) {
		utils.SendValidationError(c, "invalid latitude")
		return
	}
	if req.Longitude != nil && !utils.IsValidLongitude(*req.Longitude) {
		utils.SendValidationError(c, "invalid longitude")
		return
	}

	plan := &models.Plan{
		Name:            req.Name,
		Date:            req.Date,
		Time:            req.Time,
		ActivityType:    req.ActivityType,
		LocationName:    req.LocationName,
		LocationAddress: req.LocationAddress,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Description:     req.Description,
		CreatorName:     req.CreatorName,
		CreatorEmail:    req.CreatorEmail,
		VenueOptions:    models.StringSlice(req.VenueOptions),
		ActivityOptions: models.StringSlice(req.ActivityOptions),
	}

	if req.ManagePassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.ManagePassword), bcrypt.DefaultCost)
		if err != nil {
			utils.SendStorageError(c, "Failed to secure manage password")
			return
		}
		plan.ManagePassword = string(hashed)
	}

	var dateOptions []models.DateOption
	for _, opt := range req.DateOptions {
		if !utils.IsValidDate(opt.Date) {
			utils.SendValidationError(c, "date options must be YYYY-MM-DD")
			return
		}
		dateOptions = append(dateOptions, models.DateOption{
			OptionDate: opt.Date,
			OptionTime: opt.Time,
		})
	}

	created, err := pc.repo.CreatePlan(plan, dateOptions)
	if err != nil {
		if errors.Is(err, repositories.ErrValidation) {
			utils.SendValidationError(c, err.Error())
			return
		}
		utils.SendStorageError(c, "Failed to create plan")
		return
	}

	token, err := pc.issueManageToken(created)
	if err != nil {
		utils.SendStorageError(c, "Failed to issue manage token")
		return
	}

	c.JSON(http.StatusCreated, CreatePlanResponse{
		Plan:        created,
		ShareLink:   created.ShareLink(pc.cfg.AppBaseURL),
		ManageToken: token,
	})
}

func (pc *PlanController) GetPlan(c *gin.Context) {
	code := c.Param("code")

	plan, err := pc.repo.GetPlanByShareCode(code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.SendNotFound(c, "No plan matches this share code")
			return
		}
		utils.SendStorageError(c, "Failed to fetch plan")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plan":       plan,
		"share_link": plan.ShareLink(pc.cfg.AppBaseURL),
	})
}

type UpdatePlanRequest struct {
	Name            string   `json:"name"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	ActivityType    string   `json:"activity_type"`
	LocationName    string   `json:"location_name"`
	LocationAddress string   `json:"location_address"`
	Description     string   `json:"description"`
	VenueOptions    []string `json:"venue_options"`
	ActivityOptions []string `json:"activity_options"`
}

// UpdatePlan applies creator edits. ManageAuth has already verified the
// token and pinned the plan id on the context.
func (pc *PlanController) UpdatePlan(c *gin.Context) {
	planID := c.GetString("plan_id")
	code := c.Param("code")

	plan, err := pc.repo.GetPlanByShareCode(code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.SendNotFound(c, "No plan matches this share code")
			return
		}
		utils.SendStorageError(c, "Failed to fetch plan")
		return
	}
	if plan.ID != planID {
		utils.SendError(c, http.StatusForbidden, "Manage token does not match this plan")
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Date != "" {
		if !utils.IsValidDate(req.Date) {
			utils.SendValidationError(c, "date must be YYYY-MM-DD")
			return
		}
		updates["date"] = req.Date
	}
	if req.Time != "" {
		updates["time"] = req.Time
	}
	if req.ActivityType != "" {
		updates["activity_type"] = req.ActivityType
	}
	if req.LocationName != "" {
		updates["location_name"] = req.LocationName
	}
	if req.LocationAddress != "" {
		updates["location_address"] = req.LocationAddress
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.VenueOptions != nil {
		updates["venue_options"] = models.StringSlice(req.VenueOptions)
	}
	if req.ActivityOptions != nil {
		updates["activity_options"] = models.StringSlice(req.ActivityOptions)
	}

	if len(updates) == 0 {
		utils.SendValidationError(c, "no updatable fields provided")
		return
	}

	updated, err := pc.repo.UpdatePlan(plan.ID, updates)
	if err != nil {
		utils.SendStorageError(c, "Failed to update plan")
		return
	}

	utils.SendSuccess(c, "Plan updated successfully", updated)
}

type ManageTokenRequest struct {
	CreatorEmail   string `json:"creator_email" binding:"required,email"`
	ManagePassword string `json:"manage_password"`
}

// ManageToken re-issues a manage token for the plan creator. The email
// check alone is a convenience gate; plans created with a manage
// password additionally require it.
func (pc *PlanController) ManageToken(c *gin.Context) {
	code := c.Param("code")

	plan, err := pc.repo.GetPlanByShareCode(code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.SendNotFound(c, "No plan matches this share code")
			return
		}
		utils.SendStorageError(c, "Failed to fetch plan")
		return
	}

	var req ManageTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if req.CreatorEmail != plan.CreatorEmail {
		utils.SendError(c, http.StatusForbidden, "Creator email does not match")
		return
	}

	if plan.ManagePassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(plan.ManagePassword), []byte(req.ManagePassword)); err != nil {
			utils.SendError(c, http.StatusForbidden, "Invalid manage password")
			return
		}
	}

	token, err := pc.issueManageToken(plan)
	if err != nil {
		utils.SendStorageError(c, "Failed to issue manage token")
		return
	}

	utils.SendSuccess(c, "Manage token issued", gin.H{"manage_token": token})
}

func (pc *PlanController) issueManageToken(plan *models.Plan) (string, error) {
	claims := jwt.MapClaims{
		"plan_id":       plan.ID,
		"creator_email": plan.CreatorEmail,
		"iat":           time.Now().Unix(),
		"exp":           time.Now().Add(30 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(pc.cfg.JWTSecret))
}
