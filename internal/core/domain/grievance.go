package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// GrievanceStatus represents the lifecycle state of a grievance. It is a closed
// set: decoding rejects any value not listed below.
type GrievanceStatus string

const (
	StatusSubmitted   GrievanceStatus = "Submitted"
	StatusUnderReview GrievanceStatus = "Under Review"
	StatusInProgress  GrievanceStatus = "In Progress"
	StatusPending     GrievanceStatus = "Pending"
	StatusResolved    GrievanceStatus = "Resolved"
	StatusReopened    GrievanceStatus = "Reopened"
)

var allStatuses = []GrievanceStatus{
	StatusSubmitted,
	StatusUnderReview,
	StatusInProgress,
	StatusPending,
	StatusResolved,
	StatusReopened,
}

// validTransitions is enforced only on officer actions. Records are created
// directly in StatusUnderReview.
var validTransitions = map[GrievanceStatus][]GrievanceStatus{
	StatusSubmitted:   {StatusUnderReview, StatusInProgress, StatusPending, StatusResolved},
	StatusUnderReview: {StatusInProgress, StatusPending, StatusResolved},
	StatusInProgress:  {StatusPending, StatusResolved},
	StatusPending:     {StatusInProgress, StatusResolved},
	StatusResolved:    {StatusReopened},
	StatusReopened:    {StatusUnderReview, StatusInProgress, StatusPending, StatusResolved},
}

// Statuses returns every known status in display order.
func Statuses() []GrievanceStatus {
	out := make([]GrievanceStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus converts s into a GrievanceStatus.
func ParseStatus(s string) (GrievanceStatus, error) {
	for _, st := range allStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func (s GrievanceStatus) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// CanTransitionTo reports whether a transition from current status to next is
// valid. Keeping the current status is always allowed, so an action report
// can add remarks without moving the grievance.
func (s GrievanceStatus) CanTransitionTo(next GrievanceStatus) bool {
	if s == next && s.Valid() {
		return true
	}
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s GrievanceStatus) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
	}
	return json.Marshal(string(s))
}

func (s *GrievanceStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// TriageBucket groups statuses for the officer dashboard tabs.
type TriageBucket string

const (
	BucketNew      TriageBucket = "new"
	BucketPending  TriageBucket = "pending"
	BucketResolved TriageBucket = "resolved"
)

// ParseBucket converts s into a TriageBucket. An empty string selects BucketNew.
func ParseBucket(s string) (TriageBucket, error) {
	switch TriageBucket(s) {
	case "", BucketNew:
		return BucketNew, nil
	case BucketPending, BucketResolved:
		return TriageBucket(s), nil
	}
	return "", NewValidationError("bucket", "must be one of: new pending resolved")
}

// Contains reports whether a record with status s is listed under b.
// Under Review and In Progress belong to no bucket.
func (b TriageBucket) Contains(s GrievanceStatus) bool {
	switch b {
	case BucketNew:
		return s == StatusSubmitted
	case BucketPending:
		return s == StatusPending || s == StatusReopened
	case BucketResolved:
		return s == StatusResolved
	}
	return false
}

// TimelineMarker is the tri-state marker of a timeline entry.
type TimelineMarker string

func (m TimelineMarker) Valid() bool {
	switch m {
	case MarkerCompleted, MarkerPending, MarkerCurrent:
		return true
	}
	return false
}

const (
	MarkerCompleted TimelineMarker = "completed"
	MarkerPending   TimelineMarker = "pending"
	MarkerCurrent   TimelineMarker = "current"
)

func (m *TimelineMarker) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if !TimelineMarker(raw).Valid() {
		return fmt.Errorf("unknown timeline marker %q", raw)
	}
	*m = TimelineMarker(raw)
	return nil
}

// TimelineEntry is a labelled milestone in a grievance's history.
type TimelineEntry struct {
	Label  string         `json:"label" bson:"label" yaml:"label"`
	Date   time.Time      `json:"date" bson:"date" yaml:"date"`
	Status TimelineMarker `json:"status" bson:"status" yaml:"status"`
}

// Reply is a single message in a grievance's thread.
type Reply struct {
	Author  string    `json:"author" bson:"author" yaml:"author"`
	Message string    `json:"message" bson:"message" yaml:"message"`
	Date    time.Time `json:"date" bson:"date" yaml:"date"`
}

// GrievanceRecord is a citizen complaint and its full lifecycle history.
type GrievanceRecord struct {
	ID                string          `json:"id" yaml:"id"`
	Subject           string          `json:"subject" yaml:"subject"`
	Description       string          `json:"description" yaml:"description"`
	Location          string          `json:"location" yaml:"location"`
	District          string          `json:"district" yaml:"district"`
	Category          string          `json:"category" yaml:"category"`
	DateFiled         time.Time       `json:"dateFiled" yaml:"dateFiled"`
	LastUpdated       time.Time       `json:"lastUpdated" yaml:"lastUpdated"`
	Status            GrievanceStatus `json:"status" yaml:"status"`
	AttachedFileNames []string        `json:"attachedFileNames" yaml:"attachedFileNames"`
	ActionTakenReport string          `json:"actionTakenReport,omitempty" yaml:"actionTakenReport,omitempty"`
	IsAnonymized      bool            `json:"isAnonymized" yaml:"isAnonymized"`
	Timeline          []TimelineEntry `json:"timeline" yaml:"timeline"`
	Replies           []Reply         `json:"replies" yaml:"replies"`
}

// Clone returns a deep copy so callers can mutate slices without aliasing a
// stored list.
func (g GrievanceRecord) Clone() GrievanceRecord {
	out := g
	out.AttachedFileNames = cloneSlice(g.AttachedFileNames)
	out.Timeline = cloneSlice(g.Timeline)
	out.Replies = cloneSlice(g.Replies)
	return out
}

// cloneSlice copies s, keeping an empty non-nil slice non-nil so it still
// encodes as [] rather than null.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// InitialTimeline returns the three entries seeded on every new grievance.
func InitialTimeline(at time.Time) []TimelineEntry {
	return []TimelineEntry{
		{Label: "Submitted", Date: at, Status: MarkerCompleted},
		{Label: "Assigned to Department", Date: at, Status: MarkerCompleted},
		{Label: "Under Review", Date: at, Status: MarkerCurrent},
	}
}
