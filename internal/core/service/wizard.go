package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/hp-grievance/portal/internal/core/domain"
	"github.com/hp-grievance/portal/internal/core/ports"
	"github.com/hp-grievance/portal/internal/pkg/validation"
)

// WizardStep is a page of the grievance wizard.
type WizardStep int

const (
	StepLocationCategory WizardStep = iota + 1
	StepDetailsEvidence
	StepReviewSubmit
)

func (s WizardStep) String() string {
	switch s {
	case StepLocationCategory:
		return "Location & Category"
	case StepDetailsEvidence:
		return "Details & Evidence"
	case StepReviewSubmit:
		return "Review & Submit"
	}
	return "unknown"
}

// fields validated when leaving each step.
var stepFields = map[WizardStep][]string{
	StepLocationCategory: {"District", "Location", "Category"},
	StepDetailsEvidence:  {"Subject", "Description", "AttachedFileNames"},
}

// Wizard collects a grievance draft across ordered steps and hands it to the
// lifecycle manager on submit. Back never validates; Cancel discards the
// draft without persisting anything.
type Wizard struct {
	grievances ports.GrievanceService
	validate   *validator.Validate
	step       WizardStep
	draft      domain.GrievanceDraft
}

// NewWizard starts a wizard on the first step. A nil validate uses
// validation.New().
func NewWizard(grievances ports.GrievanceService, validate *validator.Validate) *Wizard {
	if validate == nil {
		validate = validation.New()
	}
	return &Wizard{grievances: grievances, validate: validate, step: StepLocationCategory}
}

func (w *Wizard) Step() WizardStep { return w.step }

func (w *Wizard) Draft() domain.GrievanceDraft { return w.draft }

// Update edits the draft in place. It does not change the step.
func (w *Wizard) Update(fn func(d *domain.GrievanceDraft)) {
	fn(&w.draft)
}

// Next validates the current step and advances. On the review step it is a
// no-op.
func (w *Wizard) Next() error {
	if w.step >= StepReviewSubmit {
		return nil
	}
	if err := w.validate.StructPartial(w.draft, stepFields[w.step]...); err != nil {
		return validation.Translate(err)
	}
	w.step++
	return nil
}

func (w *Wizard) Back() {
	if w.step > StepLocationCategory {
		w.step--
	}
}

func (w *Wizard) Cancel() {
	w.draft = domain.GrievanceDraft{}
	w.step = StepLocationCategory
}

// Submit files the draft. It is only allowed from the review step; on success
// the wizard is reset.
func (w *Wizard) Submit(ctx context.Context, identity domain.Identity, idempotencyKey string) (*domain.GrievanceRecord, error) {
	if w.step != StepReviewSubmit {
		return nil, domain.ErrWizardIncomplete
	}
	if err := w.validate.Struct(w.draft); err != nil {
		return nil, validation.Translate(err)
	}

	rec, err := w.grievances.Create(ctx, identity, ports.CreateGrievanceInput{
		Draft:          w.draft,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return nil, err
	}
	w.Cancel()
	return rec, nil
}

// Complete runs a whole draft through every step and submits it. It stops at
// the first step that fails validation.
func (w *Wizard) Complete(ctx context.Context, identity domain.Identity, draft domain.GrievanceDraft, idempotencyKey string) (*domain.GrievanceRecord, error) {
	w.Cancel()
	w.Update(func(d *domain.GrievanceDraft) { *d = draft })
	for w.step < StepReviewSubmit {
		if err := w.Next(); err != nil {
			return nil, err
		}
	}
	return w.Submit(ctx, identity, idempotencyKey)
}
