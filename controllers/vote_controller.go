package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"planpal-api/models"
	"planpal-api/repositories"
	"planpal-api/services"
	"planpal-api/utils"
)

type VoteController struct {
	repo        *repositories.PlanRepository
	voteService *services.VoteService
}

func NewVoteController(repo *repositories.PlanRepository, voteService *services.VoteService) *VoteController {
	return &VoteController{repo: repo, voteService: voteService}
}

type AddVoteRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	Category   string `json:"category" binding:"required"`
	ItemID     string `json:"item_id" binding:"required"`
	Weight     *int   `json:"weight"`
	IsRequired bool   `json:"is_required"`
}

// AddVote records a ledger vote in any category. Venue and activity
// votes stay in the ledger only; use SubmitDateVote for votes that
// must reach the store.
func (vc *VoteController) AddVote(c *gin.Context) {
	code := c.Param("code")

	plan, err := vc.repo.GetPlanByShareCode(code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.SendNotFound(c, "No plan matches this share code")
			return
		}
		utils.SendStorageError(c, "Failed to fetch plan")
		return
	}

	var req AddVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !models.IsValidCategory(req.Category) {
		utils.SendValidationError(c, "category must be dates, venues or activities")
		return
	}

	weight := 1
	if req.Weight != nil {
		if *req.Weight < 0 {
			utils.SendValidationError(c, "weight must not be negative")
			return
		}
		weight = *req.Weight
	}

	vc.voteService.AddVote(plan.ID, req.UserID, req.Category, req.ItemID, weight, req.IsRequired)

	c.JSON(http.StatusOK, gin.H{
		"message": "Vote recorded",
		"weight":  vc.voteService.GetVoteWeight(plan.ID, req.Category, req.ItemID),
	})
}

type SubmitDateVoteRequest struct {
	DateOptionID string `json:"date_option_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	IsAvailable  *bool  `json:"is_available" binding:"required"`
}

// SubmitDateVote is the availability voting bridge: it upserts the
// durable Availability row, mirrors the vote into the ledger, then
// re-fetches the plan so every percentage reflects the new vote.
// An upsert failure surfaces as a storage error and leaves only the
// ledger mirror behind.
func (vc *VoteController) SubmitDateVote(c *gin.Context) {
	code := c.Param("code")

	plan, err := vc.repo.GetPlanByShareCode(code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.SendNotFound(c, "No plan matches this share code")
			return
		}
		utils.SendStorageError(c, "Failed to fetch plan")
		return
	}

	var req SubmitDateVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	// The option must belong to this plan
	found := false
	for _, option := range plan.DateOptions {
		if option.ID == req.DateOptionID {
			found = true
			break
		}
	}
	if !found {
		utils.SendNotFound(c, "Date option does not belong to this plan")
		return
	}

	weight := 0
	if *req.IsAvailable {
		weight = 1
	}
	vc.voteService.AddVote(plan.ID, req.Email, models.CategoryDates, req.DateOptionID, weight, false)

	availability := &models.Availability{
		Name:        req.Name,
		Email:       req.Email,
		IsAvailable: *req.IsAvailable,
	}

	if _, err := vc.repo.UpsertAvailability(req.DateOptionID, availability); err != nil {
		if errors.Is(err, repositories.ErrValidation) {
			utils.SendValidationError(c, err.Error())
			return
		}
		if errors.Is(err, repositories.ErrNotFound) {
			utils.SendNotFound(c, "Date option not found")
			return
		}
		utils.SendStorageError(c, "Failed to save date vote")
		return
	}

	refreshed, err := vc.repo.GetPlanByShareCode(code)
	if err != nil {
		utils.SendStorageError(c, "Vote saved but failed to refresh plan")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Date vote recorded",
		"results": vc.voteService.Results(refreshed),
	})
}

// GetResults returns the full aggregation snapshot for a plan.
func (vc *VoteController) GetResults(c *gin.Context) {
	code := c.Param("code")

	plan, err := vc.repo.GetPlanByShareCode(code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.SendNotFound(c, "No plan matches this share code")
			return
		}
		utils.SendStorageError(c, "Failed to fetch plan")
		return
	}

	c.JSON(http.StatusOK, vc.voteService.Results(plan))
}
