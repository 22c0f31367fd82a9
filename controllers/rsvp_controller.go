package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"planpal-api/models"
	"planpal-api/repositories"
	"planpal-api/utils"
)

type RSVPController struct {
	repo *repositories.PlanRepository
}

func NewRSVPController(repo *repositories.PlanRepository) *RSVPController {
	return &RSVPController{repo: repo}
}

type SubmitRSVPRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email"`
	GuestToken string `json:"guest_token"`
	Response   string `json:"response" binding:"required"`
	Notes      string `json:"notes"`
}

// SubmitRSVP upserts an RSVP for the plan behind the share code.
// Without an email a guest token is the dedup key; one is generated
// and returned when the caller supplies neither, so repeat submissions
// from the same client can update instead of duplicate.
func (rc *RSVPController) SubmitRSVP(c *gin.Context) {
	code := c.Param("code")

	plan, err := rc.repo.GetPlanByShareCode(code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.SendNotFound(c, "No plan matches this share code")
			return
		}
		utils.SendStorageError(c, "Failed to fetch plan")
		return
	}

	var req SubmitRSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !models.IsValidResponse(req.Response) {
		utils.SendValidationError(c, "response must be going, maybe or not_going")
		return
	}
	if req.Email != "" && !utils.IsValidEmail(req.Email) {
		utils.SendValidationError(c, "invalid email address")
		return
	}

	if req.Email == "" && req.GuestToken == "" {
		req.GuestToken = uuid.New().String()
	}

	rsvp := &models.RSVP{
		Name:     req.Name,
		Response: req.Response,
		Notes:    req.Notes,
	}
	if req.Email != "" {
		rsvp.Email = &req.Email
	}
	if req.GuestToken != "" {
		rsvp.GuestToken = &req.GuestToken
	}

	saved, err := rc.repo.SubmitRSVP(plan.ID, rsvp)
	if err != nil {
		if errors.Is(err, repositories.ErrValidation) {
			utils.SendValidationError(c, err.Error())
			return
		}
		utils.SendStorageError(c, "Failed to save RSVP")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "RSVP recorded",
		"rsvp":    saved,
	})
}
