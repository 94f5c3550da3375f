package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/hp-grievance/portal/internal/core/domain"
	"github.com/hp-grievance/portal/internal/core/ports"
)

type stubGrievanceService struct {
	createFn func(ctx context.Context, identity domain.Identity, input ports.CreateGrievanceInput) (*domain.GrievanceRecord, error)
	listFn   func(ctx context.Context, identity domain.Identity) ([]domain.GrievanceRecord, error)
	getFn    func(ctx context.Context, identity domain.Identity, id string) (*domain.GrievanceRecord, error)
	replyFn  func(ctx context.Context, identity domain.Identity, id, message string) (*domain.GrievanceRecord, error)
}

func (s *stubGrievanceService) Create(ctx context.Context, identity domain.Identity, input ports.CreateGrievanceInput) (*domain.GrievanceRecord, error) {
	return s.createFn(ctx, identity, input)
}

func (s *stubGrievanceService) List(ctx context.Context, identity domain.Identity) ([]domain.GrievanceRecord, error) {
	return s.listFn(ctx, identity)
}

func (s *stubGrievanceService) Get(ctx context.Context, identity domain.Identity, id string) (*domain.GrievanceRecord, error) {
	return s.getFn(ctx, identity, id)
}

func (s *stubGrievanceService) AppendReply(ctx context.Context, identity domain.Identity, id, message string) (*domain.GrievanceRecord, error) {
	return s.replyFn(ctx, identity, id, message)
}

var filed = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

func sampleRecord(id string) domain.GrievanceRecord {
	return domain.GrievanceRecord{
		ID:                id,
		Subject:           "No water for 3 days",
		Description:       "Supply has been cut since Monday.",
		Location:          "Mall Road",
		District:          "Shimla",
		Category:          "Water Supply",
		DateFiled:         filed,
		LastUpdated:       filed,
		Status:            domain.StatusUnderReview,
		AttachedFileNames: []string{},
		Timeline:          domain.InitialTimeline(filed),
		Replies:           []domain.Reply{},
	}
}

const shimlaBody = `{
	"district": "Shimla",
	"location": "Mall Road",
	"category": "Water Supply",
	"subject": "No water for 3 days",
	"description": "Supply has been cut since Monday.",
	"attachedFileNames": ["tap.jpg"]
}`

func TestGrievanceHandler_Create(t *testing.T) {
	e := newEcho()
	h := NewGrievanceHandler(&stubGrievanceService{
		createFn: func(_ context.Context, identity domain.Identity, in ports.CreateGrievanceInput) (*domain.GrievanceRecord, error) {
			if identity != citizen {
				t.Fatalf("unexpected identity %+v", identity)
			}
			if in.IdempotencyKey != "key-1" {
				t.Fatalf("expected idempotency key, got %q", in.IdempotencyKey)
			}
			if in.Draft.District != "Shimla" || len(in.Draft.AttachedFileNames) != 1 {
				t.Fatalf("unexpected draft %+v", in.Draft)
			}
			rec := sampleRecord("HPG-1716199200000")
			rec.AttachedFileNames = in.Draft.AttachedFileNames
			return &rec, nil
		},
	}, nil)

	c, rec := newContext(e, http.MethodPost, "/v1/grievances", shimlaBody)
	c.Request().Header.Set("Idempotency-Key", "key-1")
	authenticate(c, citizen, "s1")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusCreated)

	if loc := rec.Header().Get("Location"); loc != "/v1/grievances/HPG-1716199200000" {
		t.Fatalf("unexpected Location %q", loc)
	}

	var resp map[string]any
	decode(t, rec, &resp)
	if resp["id"] != "HPG-1716199200000" || resp["status"] != "Under Review" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	links, ok := resp["_links"].(map[string]any)
	if !ok || links["replies"] != "/v1/grievances/HPG-1716199200000/replies" {
		t.Fatalf("unexpected links: %+v", resp["_links"])
	}
}

func TestGrievanceHandler_Create_InvalidDraft(t *testing.T) {
	e := newEcho()
	h := NewGrievanceHandler(&stubGrievanceService{
		createFn: func(context.Context, domain.Identity, ports.CreateGrievanceInput) (*domain.GrievanceRecord, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}, nil)

	c, _ := newContext(e, http.MethodPost, "/v1/grievances", `{"district":"Shimla","location":"Mall Road"}`)
	authenticate(c, citizen, "s1")
	err := h.Create(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "category" {
		t.Fatalf("expected category validation error, got %v", err)
	}
}

func TestGrievanceHandler_Create_Unauthenticated(t *testing.T) {
	e := newEcho()
	h := NewGrievanceHandler(&stubGrievanceService{}, nil)

	c, _ := newContext(e, http.MethodPost, "/v1/grievances", shimlaBody)
	if err := h.Create(c); err == nil {
		t.Fatal("expected error without identity")
	}
}

func TestGrievanceHandler_ListAndGet(t *testing.T) {
	e := newEcho()
	h := NewGrievanceHandler(&stubGrievanceService{
		listFn: func(context.Context, domain.Identity) ([]domain.GrievanceRecord, error) {
			return []domain.GrievanceRecord{sampleRecord("HPG-2"), sampleRecord("HPG-1")}, nil
		},
		getFn: func(_ context.Context, _ domain.Identity, id string) (*domain.GrievanceRecord, error) {
			if id != "HPG-1" {
				return nil, domain.ErrGrievanceNotFound
			}
			r := sampleRecord(id)
			return &r, nil
		},
	}, nil)

	c, rec := newContext(e, http.MethodGet, "/v1/grievances", "")
	authenticate(c, citizen, "s1")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
	var list grievanceListResponse
	decode(t, rec, &list)
	if list.Count != 2 || list.Items[0].ID != "HPG-2" || list.Items[1].Links.Self != "/v1/grievances/HPG-1" {
		t.Fatalf("unexpected list: %+v", list)
	}

	c, rec = newContext(e, http.MethodGet, "/v1/grievances/HPG-1", "")
	c.SetParamNames("id")
	c.SetParamValues("HPG-1")
	authenticate(c, citizen, "s1")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	c, _ = newContext(e, http.MethodGet, "/v1/grievances/HPG-9", "")
	c.SetParamNames("id")
	c.SetParamValues("HPG-9")
	authenticate(c, citizen, "s1")
	if err := h.Get(c); !errors.Is(err, domain.ErrGrievanceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGrievanceHandler_List_EmptyIsArray(t *testing.T) {
	e := newEcho()
	h := NewGrievanceHandler(&stubGrievanceService{
		listFn: func(context.Context, domain.Identity) ([]domain.GrievanceRecord, error) {
			return nil, nil
		},
	}, nil)

	c, rec := newContext(e, http.MethodGet, "/v1/grievances", "")
	authenticate(c, citizen, "s1")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "{\"items\":[],\"count\":0}\n" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestGrievanceHandler_Reply(t *testing.T) {
	e := newEcho()
	h := NewGrievanceHandler(&stubGrievanceService{
		replyFn: func(_ context.Context, identity domain.Identity, id, message string) (*domain.GrievanceRecord, error) {
			r := sampleRecord(id)
			r.Replies = append(r.Replies, domain.Reply{Author: identity.DisplayName, Message: message, Date: filed})
			return &r, nil
		},
	}, nil)

	c, rec := newContext(e, http.MethodPost, "/v1/grievances/HPG-1/replies", `{"message":"Any update?"}`)
	c.SetParamNames("id")
	c.SetParamValues("HPG-1")
	authenticate(c, citizen, "s1")
	if err := h.Reply(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var resp grievanceResponse
	decode(t, rec, &resp)
	if len(resp.Replies) != 1 || resp.Replies[0].Message != "Any update?" || resp.Replies[0].Author != domain.CitizenDisplayName {
		t.Fatalf("unexpected replies: %+v", resp.Replies)
	}
}

func TestReference(t *testing.T) {
	e := newEcho()
	c, rec := newContext(e, http.MethodGet, "/v1/reference", "")
	if err := Reference(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var resp referenceResponse
	decode(t, rec, &resp)
	if len(resp.Districts) != len(domain.Districts) || resp.MaxAttachments != domain.MaxAttachments {
		t.Fatalf("unexpected reference data: %+v", resp)
	}
	if len(resp.Statuses) != len(domain.Statuses()) {
		t.Fatalf("unexpected statuses: %v", resp.Statuses)
	}
}
