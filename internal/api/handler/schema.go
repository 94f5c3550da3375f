package handler

import (
	"time"

	"github.com/hp-grievance/portal/internal/core/domain"
)

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type otpRequest struct {
	Mobile string `json:"mobile" validate:"mobile"`
}

type otpResponse struct {
	ChallengeID string `json:"challengeId"`
	// Code is returned directly because no SMS channel exists.
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type verifyRequest struct {
	ChallengeID string `json:"challengeId" validate:"required"`
	Code        string `json:"code"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Identity  domain.Identity `json:"identity"`
}

type sessionResponse struct {
	Identity domain.Identity `json:"identity"`
}

// --- Grievances ---

type createGrievanceRequest struct {
	District          string   `json:"district"`
	Location          string   `json:"location"`
	Category          string   `json:"category"`
	Subject           string   `json:"subject"`
	Description       string   `json:"description"`
	AttachedFileNames []string `json:"attachedFileNames"`
	IsAnonymized      bool     `json:"isAnonymized"`
}

type replyRequest struct {
	Message string `json:"message"`
}

type grievanceLinks struct {
	Self    string `json:"self"`
	Replies string `json:"replies"`
}

type grievanceResponse struct {
	domain.GrievanceRecord
	Links grievanceLinks `json:"_links"`
}

type grievanceListResponse struct {
	Items []grievanceResponse `json:"items"`
	Count int                 `json:"count"`
}

type referenceResponse struct {
	Districts            []string                 `json:"districts"`
	Categories           []string                 `json:"categories"`
	Statuses             []domain.GrievanceStatus `json:"statuses"`
	MaxAttachments       int                      `json:"maxAttachments"`
	MaxDescriptionLength int                      `json:"maxDescriptionLength"`
}

// --- Triage ---

type officerActionRequest struct {
	Status        string `json:"status" validate:"required"`
	Remarks       string `json:"remarks"`
	NotifyCitizen bool   `json:"notifyCitizen"`
}

type triageListResponse struct {
	Bucket domain.TriageBucket      `json:"bucket"`
	Items  []domain.GrievanceRecord `json:"items"`
	Count  int                      `json:"count"`
}

type actionReportResponse struct {
	GrievanceID    string                 `json:"grievanceId"`
	PreviousStatus domain.GrievanceStatus `json:"previousStatus"`
	NewStatus      domain.GrievanceStatus `json:"newStatus"`
	Remarks        string                 `json:"remarks"`
	NotifyCitizen  bool                   `json:"notifyCitizen"`
	Officer        string                 `json:"officer"`
	SubmittedAt    time.Time              `json:"submittedAt"`
	// Persisted is always false: officer actions are not applied to records.
	Persisted bool `json:"persisted"`
}
