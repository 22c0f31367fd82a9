package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"planpal-api/config"
)

// SMSService sends invite texts through a JSON HTTP provider, one
// request per number, and reports per-number outcomes.
type SMSService struct {
	config *config.Config
	client *http.Client
}

type SMSResult struct {
	PhoneNumber string `json:"phone_number"`
	Normalized  string `json:"normalized"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

type SMSSummary struct {
	Total      int         `json:"total"`
	Successful int         `json:"successful"`
	Failed     int         `json:"failed"`
	Results    []SMSResult `json:"results"`
}

type smsProviderRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type smsProviderResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id"`
	Error     string `json:"error"`
}

func NewSMSService(cfg *config.Config) *SMSService {
	return &SMSService{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// NormalizePhoneNumber converts a raw number to E.164. Numbers with a
// leading + pass through cleaned; bare numbers get countryCode, falling
// back to the configured default when countryCode is empty. A bare
// number with no country code anywhere is a validation error rather
// than a guess.
func (s *SMSService) NormalizePhoneNumber(raw, countryCode string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '+' {
			return r
		}
		return -1
	}, raw)

	if cleaned == "" || cleaned == "+" {
		return "", errors.New("phone number contains no digits")
	}

	if strings.HasPrefix(cleaned, "+") {
		if strings.Contains(cleaned[1:], "+") {
			return "", errors.New("phone number has a misplaced +")
		}
		return cleaned, nil
	}

	prefix := countryCode
	if prefix == "" {
		prefix = s.config.DefaultCountryCode
	}
	if prefix == "" {
		return "", errors.New("no country code provided and no default configured")
	}
	if !strings.HasPrefix(prefix, "+") {
		prefix = "+" + prefix
	}

	return prefix + cleaned, nil
}

// SendBatch texts every number individually and totals the outcomes.
// Numbers that fail normalization are counted as failures without
// touching the provider.
func (s *SMSService) SendBatch(phoneNumbers []string, message, countryCode string) SMSSummary {
	summary := SMSSummary{
		Total:   len(phoneNumbers),
		Results: make([]SMSResult, 0, len(phoneNumbers)),
	}

	for _, number := range phoneNumbers {
		result := SMSResult{PhoneNumber: number}

		normalized, err := s.NormalizePhoneNumber(number, countryCode)
		if err != nil {
			result.Error = err.Error()
			summary.Failed++
			summary.Results = append(summary.Results, result)
			continue
		}
		result.Normalized = normalized

		if err := s.send(normalized, message); err != nil {
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

func (s *SMSService) send(to, message string) error {
	payload, err := json.Marshal(smsProviderRequest{To: to, Message: message})
	if err != nil {
		return fmt.Errorf("failed to encode sms request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.config.SMSAPIURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.SMSAPIToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	var providerResp smsProviderResponse
	if err := json.NewDecoder(resp.Body).Decode(&providerResp); err != nil {
		return fmt.Errorf("failed to decode sms response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !providerResp.Success {
		msg := providerResp.Error
		if msg == "" {
			msg = fmt.Sprintf("provider returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("sms send failed: %s", msg)
	}

	return nil
}
