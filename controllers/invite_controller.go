package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"planpal-api/config"
	"planpal-api/models"
	"planpal-api/repositories"
	"planpal-api/services"
	"planpal-api/utils"
)

type InviteController struct {
	repo         *repositories.PlanRepository
	emailService *services.EmailService
	smsService   *services.SMSService
	cfg          *config.Config
}

func NewInviteController(repo *repositories.PlanRepository, emailService *services.EmailService, smsService *services.SMSService, cfg *config.Config) *InviteController {
	return &InviteController{
		repo:         repo,
		emailService: emailService,
		smsService:   smsService,
		cfg:          cfg,
	}
}

type EmailInviteRequest struct {
	Recipients []string `json:"recipients" binding:"required,min=1"`
}

// SendEmailInvites mails the share link to each recipient. Send
// failures are per-recipient and never touch the plan itself.
func (ic *InviteController) SendEmailInvites(c *gin.Context) {
	plan, ok := ic.managedPlan(c)
	if !ok {
		return
	}

	var req EmailInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	for _, email := range req.Recipients {
		if !utils.IsValidEmail(email) {
			utils.SendValidationError(c, "invalid recipient email: "+email)
			return
		}
	}

	summary := ic.emailService.SendBatchInvites(req.Recipients, plan, plan.ShareLink(ic.cfg.AppBaseURL))

	if summary.Successful == 0 && summary.Total > 0 {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "All invite emails failed to send",
			"summary": summary,
		})
		return
	}

	utils.SendSuccess(c, "Invites sent", summary)
}

type SMSInviteRequest struct {
	PhoneNumbers []string `json:"phone_numbers" binding:"required,min=1"`
	Message      string   `json:"message"`
	CountryCode  string   `json:"country_code"`
}

// SendSMSInvites texts the share link, one provider call per number,
// and returns the per-number result list with totals.
func (ic *InviteController) SendSMSInvites(c *gin.Context) {
	plan, ok := ic.managedPlan(c)
	if !ok {
		return
	}

	var req SMSInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	message := req.Message
	if message == "" {
		message = plan.CreatorName + " invited you to " + plan.Name + ". RSVP: " + plan.ShareLink(ic.cfg.AppBaseURL)
	}

	summary := ic.smsService.SendBatch(req.PhoneNumbers, message, req.CountryCode)

	if summary.Successful == 0 && summary.Total > 0 {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "All invite texts failed to send",
			"summary": summary,
		})
		return
	}

	utils.SendSuccess(c, "Invites sent", summary)
}

// managedPlan resolves the plan behind the share code and checks it
// against the manage token that ManageAuth validated.
func (ic *InviteController) managedPlan(c *gin.Context) (*models.Plan, bool) {
	code := c.Param("code")
	planID := c.GetString("plan_id")

	p, err := ic.repo.GetPlanByShareCode(code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.SendNotFound(c, "No plan matches this share code")
			return nil, false
		}
		utils.SendStorageError(c, "Failed to fetch plan")
		return nil, false
	}

	if p.ID != planID {
		utils.SendError(c, http.StatusForbidden, "Manage token does not match this plan")
		return nil, false
	}

	return p, true
}
