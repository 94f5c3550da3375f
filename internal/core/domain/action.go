package domain

import "time"

// ActionReport describes an officer's Action Taken Report. It is not applied
// to any stored record.
type ActionReport struct {
	GrievanceID   string
	PreviousState GrievanceStatus
	NewStatus     GrievanceStatus
	Remarks       string
	NotifyCitizen bool
	Officer       string
	SubmittedAt   time.Time
}

// Notification is a message to the citizen who filed a grievance.
type Notification struct {
	GrievanceID string
	Subject     string
	Status      GrievanceStatus
	Message     string
	CreatedAt   time.Time
}
