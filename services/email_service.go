package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"planpal-api/config"
	"planpal-api/models"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

// InviteResult reports the outcome for a single recipient in a batch.
type InviteResult struct {
	Email   string `json:"email"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BatchInviteSummary totals a batch invite send.
type BatchInviteSummary struct {
	Total      int            `json:"total"`
	Successful int            `json:"successful"`
	Failed     int            `json:"failed"`
	Results    []InviteResult `json:"results"`
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

// SendInviteEmail sends one event invitation. A failure here never
// invalidates the plan itself; callers surface it and move on.
func (es *EmailService) SendInviteEmail(to string, plan *models.Plan, shareLink string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("You're invited: %s", plan.Name))

	when := plan.Date
	if plan.Time != "" {
		when = fmt.Sprintf("%s at %s", plan.Date, plan.Time)
	}

	where := plan.LocationName
	if plan.LocationAddress != "" {
		where = fmt.Sprintf("%s, %s", plan.LocationName, plan.LocationAddress)
	}
	if where == "" {
		where = "To be decided: vote on the plan page!"
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>You're Invited</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #6c5ce7; color: white; padding: 20px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .details { background: #e9ecef; padding: 20px; border-radius: 8px; margin: 20px 0; }
        .btn { display: inline-block; background: #6c5ce7; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🎉 You're Invited!</h1>
            <p>%s is planning something</p>
        </div>
        <div class="content">
            <h2>%s</h2>
            <div class="details">
                <p><strong>When:</strong> %s</p>
                <p><strong>Where:</strong> %s</p>
                <p>%s</p>
            </div>

            <p>RSVP and vote on dates, venues and activities:</p>
            <p><a class="btn" href="%s">Open the plan</a></p>
            <p>Or paste this link into your browser: %s</p>
        </div>
        <div class="footer">
            <p>Sent via PlanPal on behalf of %s.</p>
            <p>This is an automated email, please do not reply.</p>
        </div>
    </div>
</body>
</html>`, plan.CreatorName, plan.Name, when, where, plan.Description, shareLink, shareLink, plan.CreatorName)

	textBody := fmt.Sprintf(`
You're invited!

%s is planning: %s

When: %s
Where: %s

%s

RSVP and vote on dates, venues and activities:
%s

Sent via PlanPal on behalf of %s.
This is an automated email, please do not reply.
    `, plan.CreatorName, plan.Name, when, where, plan.Description, shareLink, plan.CreatorName)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send invite email: %w", err)
	}

	return nil
}

// SendBatchInvites sends the invitation to every recipient
// individually, so one bad address never blocks the rest.
func (es *EmailService) SendBatchInvites(recipients []string, plan *models.Plan, shareLink string) BatchInviteSummary {
	summary := BatchInviteSummary{
		Total:   len(recipients),
		Results: make([]InviteResult, 0, len(recipients)),
	}

	for _, to := range recipients {
		result := InviteResult{Email: to}

		if err := es.SendInviteEmail(to, plan, shareLink); err != nil {
			result.Error = err.Error()
			summary.Failed++
		} else {
			result.Success = true
			summary.Successful++
		}

		summary.Results = append(summary.Results, result)
	}

	return summary
}
