// Package fixtures embeds the seed data served on the officer dashboard.
package fixtures

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hp-grievance/portal/internal/core/domain"
)

//go:embed triage.yaml
var triageYAML []byte

// LoadTriage decodes the embedded triage records.
func LoadTriage() ([]domain.GrievanceRecord, error) {
	return ParseTriage(triageYAML)
}

// ParseTriage decodes a YAML list of grievance records and rejects unknown
// statuses or timeline markers.
func ParseTriage(data []byte) ([]domain.GrievanceRecord, error) {
	var records []domain.GrievanceRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("fixtures: decode triage: %w", err)
	}

	seen := make(map[string]struct{}, len(records))
	for i := range records {
		r := &records[i]
		if r.ID == "" {
			return nil, fmt.Errorf("fixtures: record %d has no id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("fixtures: duplicate id %s", r.ID)
		}
		seen[r.ID] = struct{}{}

		if !r.Status.Valid() {
			return nil, fmt.Errorf("fixtures: %s: %w: %q", r.ID, domain.ErrInvalidStatus, r.Status)
		}
		for _, e := range r.Timeline {
			if !e.Status.Valid() {
				return nil, fmt.Errorf("fixtures: %s: unknown timeline marker %q", r.ID, e.Status)
			}
		}
		if r.AttachedFileNames == nil {
			r.AttachedFileNames = []string{}
		}
		if r.Timeline == nil {
			r.Timeline = []domain.TimelineEntry{}
		}
		if r.Replies == nil {
			r.Replies = []domain.Reply{}
		}
	}
	return records, nil
}
