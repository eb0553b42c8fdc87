package intake

import (
	"github.com/langpal/langpal-api/internal/models"
	"github.com/langpal/langpal-api/internal/notify"
)

// Consent uses "required" so that an explicit false is rejected like a missing field.

type WaitlistRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Consent bool   `json:"consent" binding:"required"`
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
	Consent bool   `json:"consent" binding:"required"`
}

type TeamApplicationRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required"`
	Phone            string `json:"phone" binding:"required"`
	Position         string `json:"position" binding:"required"`
	MarketingConsent bool   `json:"marketingConsent"`
}

// SubmissionResult describes a stored submission.
type SubmissionResult struct {
	Key          string
	Message      string
	Notification notify.Outcome
}

// ========================================
// Mappers
// ========================================

func ToWaitlistEntryModel(req *WaitlistRequest, timestamp string) *models.WaitlistEntry {
	return &models.WaitlistEntry{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Consent:   req.Consent,
		Timestamp: timestamp,
	}
}

func ToContactMessageModel(req *ContactRequest, timestamp string) *models.ContactMessage {
	return &models.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Consent:   req.Consent,
		Timestamp: timestamp,
	}
}

func ToTeamApplicationModel(req *TeamApplicationRequest, timestamp string) *models.TeamApplication {
	return &models.TeamApplication{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Position:         req.Position,
		MarketingConsent: req.MarketingConsent,
		Timestamp:        timestamp,
	}
}
