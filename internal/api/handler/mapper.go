package handler

import (
	"github.com/hp-grievance/portal/internal/core/domain"
	"github.com/hp-grievance/portal/internal/core/ports"
)

// --- Request → domain ---

func toDraft(req createGrievanceRequest) domain.GrievanceDraft {
	return domain.GrievanceDraft{
		District:          req.District,
		Location:          req.Location,
		Category:          req.Category,
		Subject:           req.Subject,
		Description:       req.Description,
		AttachedFileNames: req.AttachedFileNames,
		IsAnonymized:      req.IsAnonymized,
	}
}

func toActionInput(id string, status domain.GrievanceStatus, req officerActionRequest) ports.OfficerActionInput {
	return ports.OfficerActionInput{
		GrievanceID:   id,
		NewStatus:     status,
		Remarks:       req.Remarks,
		NotifyCitizen: req.NotifyCitizen,
	}
}

// --- Domain → HTTP response ---

func toGrievanceResponse(r domain.GrievanceRecord) grievanceResponse {
	return grievanceResponse{
		GrievanceRecord: r,
		Links: grievanceLinks{
			Self:    "/v1/grievances/" + r.ID,
			Replies: "/v1/grievances/" + r.ID + "/replies",
		},
	}
}

func toGrievanceList(records []domain.GrievanceRecord) grievanceListResponse {
	items := make([]grievanceResponse, 0, len(records))
	for _, r := range records {
		items = append(items, toGrievanceResponse(r))
	}
	return grievanceListResponse{Items: items, Count: len(items)}
}

func toLoginResponse(r *ports.LoginResult) loginResponse {
	return loginResponse{Token: r.Token, ExpiresAt: r.ExpiresAt.UTC(), Identity: r.Identity}
}

func toActionReportResponse(r *domain.ActionReport) actionReportResponse {
	return actionReportResponse{
		GrievanceID:    r.GrievanceID,
		PreviousStatus: r.PreviousState,
		NewStatus:      r.NewStatus,
		Remarks:        r.Remarks,
		NotifyCitizen:  r.NotifyCitizen,
		Officer:        r.Officer,
		SubmittedAt:    r.SubmittedAt.UTC(),
	}
}
