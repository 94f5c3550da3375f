package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	for _, raw := range []string{"", "resolved", "Rejected", "Forwarded"} {
		_, err := ParseStatus(raw)
		assert.ErrorIs(t, err, ErrInvalidStatus, raw)
	}
}

func TestGrievanceStatus_JSON(t *testing.T) {
	b, err := json.Marshal(StatusUnderReview)
	require.NoError(t, err)
	assert.Equal(t, `"Under Review"`, string(b))

	var s GrievanceStatus
	require.NoError(t, json.Unmarshal([]byte(`"In Progress"`), &s))
	assert.Equal(t, StatusInProgress, s)

	err = json.Unmarshal([]byte(`"Closed"`), &s)
	assert.True(t, errors.Is(err, ErrInvalidStatus))

	_, err = json.Marshal(GrievanceStatus("bogus"))
	assert.Error(t, err)
}

func TestGrievanceStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to GrievanceStatus
		want     bool
	}{
		{StatusSubmitted, StatusUnderReview, true},
		{StatusSubmitted, StatusResolved, true},
		{StatusUnderReview, StatusInProgress, true},
		{StatusPending, StatusInProgress, true},
		{StatusResolved, StatusReopened, true},
		{StatusReopened, StatusResolved, true},
		{StatusResolved, StatusSubmitted, false},
		{StatusResolved, StatusPending, false},
		{StatusInProgress, StatusSubmitted, false},
		{StatusPending, StatusPending, true},
		{StatusResolved, StatusResolved, true},
		{StatusSubmitted, StatusSubmitted, true},
		{GrievanceStatus("Rejected"), GrievanceStatus("Rejected"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestParseBucket(t *testing.T) {
	b, err := ParseBucket("")
	require.NoError(t, err)
	assert.Equal(t, BucketNew, b)

	b, err = ParseBucket("resolved")
	require.NoError(t, err)
	assert.Equal(t, BucketResolved, b)

	_, err = ParseBucket("all")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTriageBucket_Contains(t *testing.T) {
	assert.True(t, BucketNew.Contains(StatusSubmitted))
	assert.True(t, BucketPending.Contains(StatusPending))
	assert.True(t, BucketPending.Contains(StatusReopened))
	assert.True(t, BucketResolved.Contains(StatusResolved))

	for _, b := range []TriageBucket{BucketNew, BucketPending, BucketResolved} {
		assert.False(t, b.Contains(StatusUnderReview), b)
		assert.False(t, b.Contains(StatusInProgress), b)
	}
}

func TestTimelineMarker_UnmarshalJSON(t *testing.T) {
	var m TimelineMarker
	require.NoError(t, json.Unmarshal([]byte(`"current"`), &m))
	assert.Equal(t, MarkerCurrent, m)
	assert.Error(t, json.Unmarshal([]byte(`"done"`), &m))
}

func sampleRecord() GrievanceRecord {
	at := time.Date(2024, 5, 18, 9, 30, 0, 0, time.UTC)
	return GrievanceRecord{
		ID:                "HPG-1716024600000",
		Subject:           "Potholes on Shimla Bypass",
		Description:       "Dangerous potholes near the tunnel.",
		Location:          "Shimla",
		District:          "Shimla",
		Category:          "Roads & Transport",
		DateFiled:         at,
		LastUpdated:       at.Add(24 * time.Hour),
		Status:            StatusResolved,
		AttachedFileNames: []string{"road.jpg"},
		ActionTakenReport: "Potholes filled.",
		IsAnonymized:      false,
		Timeline:          InitialTimeline(at),
		Replies: []Reply{
			{Author: OfficerDisplayName, Message: "Team dispatched.", Date: at.Add(time.Hour)},
		},
	}
}

func TestGrievanceRecord_JSONRoundTrip(t *testing.T) {
	in := []GrievanceRecord{sampleRecord(), sampleRecord()}
	in[1].ID = "HPG-1716024600001"
	in[1].AttachedFileNames = []string{}
	in[1].Replies = []Reply{}
	in[1].ActionTakenReport = ""

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out []GrievanceRecord
	require.NoError(t, json.Unmarshal(raw, &out))
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGrievanceRecord_JSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(sampleRecord())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, k := range []string{"id", "subject", "description", "location", "district", "category",
		"dateFiled", "lastUpdated", "status", "attachedFileNames", "isAnonymized", "timeline", "replies"} {
		assert.Contains(t, m, k)
	}
}

func TestGrievanceRecord_Clone(t *testing.T) {
	orig := sampleRecord()
	c := orig.Clone()
	c.Replies[0].Message = "changed"
	c.AttachedFileNames[0] = "other.jpg"
	c.Timeline[0].Label = "changed"

	assert.Equal(t, "Team dispatched.", orig.Replies[0].Message)
	assert.Equal(t, "road.jpg", orig.AttachedFileNames[0])
	assert.Equal(t, "Submitted", orig.Timeline[0].Label)

	empty := GrievanceRecord{Replies: []Reply{}}.Clone()
	assert.NotNil(t, empty.Replies)
	assert.Nil(t, empty.Timeline)
}

func TestIdentity(t *testing.T) {
	c := NewCitizen("9876543210")
	assert.Equal(t, "9876543210", c.ID)
	assert.Equal(t, "9876543210", c.GrievanceKey())
	assert.True(t, c.Role.Valid())
	assert.False(t, Role("ADMIN").Valid())

	raw, err := json.Marshal(NewOfficer())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"admin","name":"Nodal Officer","role":"GRO","mobile":"9999999999"}`, string(raw))
}

func TestDraftReferenceLists(t *testing.T) {
	assert.Len(t, Districts, 12)
	assert.Len(t, Categories, 8)
	assert.True(t, IsDistrict("Lahaul and Spiti"))
	assert.False(t, IsDistrict("shimla"))
	assert.True(t, IsCategory("Police & Law"))
	assert.False(t, IsCategory("Other"))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("mobile", "must be 10 digits")
	assert.Equal(t, "mobile: must be 10 digits", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
}
