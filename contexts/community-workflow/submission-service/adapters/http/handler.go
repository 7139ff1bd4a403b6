package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"warden/contexts/community-workflow/submission-service/application/commands"
	"warden/contexts/community-workflow/submission-service/application/queries"
	"warden/contexts/community-workflow/submission-service/domain/entities"
	domainerrors "warden/contexts/community-workflow/submission-service/domain/errors"
	httptransport "warden/contexts/community-workflow/submission-service/transport/http"
)

type Handler struct {
	Create      commands.CreateSubmissionUseCase
	Decide      commands.DecideSubmissionUseCase
	Recruitment commands.RecruitmentUseCase
	UserSubs    queries.UserSubmissionsQuery
	Activity    queries.ActivitySummaryQuery
	Logger      *slog.Logger
}

func (h Handler) CreateSubmissionHandler(
	ctx context.Context,
	submitterID string,
	req httptransport.CreateSubmissionRequest,
) (httptransport.SubmissionResponse, error) {
	fields := make([]entities.Field, 0, len(req.Fields))
	for _, f := range req.Fields {
		fields = append(fields, entities.Field{Label: f.Label, Value: f.Value})
	}

	submission, err := h.Create.Execute(ctx, commands.CreateSubmissionCommand{
		SubmitterID:     submitterID,
		DisplayName:     req.DisplayName,
		Category:        entities.Category(req.Category),
		Scope:           entities.Scope(req.Scope),
		ApplicationRole: entities.ApplicationRole(req.ApplicationRole),
		Title:           req.Title,
		Fields:          fields,
	})
	if err != nil {
		return httptransport.SubmissionResponse{}, err
	}

	resp := httptransport.SubmissionResponse{Status: "success"}
	resp.Data.Submission = toSubmissionDTO(submission)
	return resp, nil
}

func (h Handler) DecideSubmissionHandler(
	ctx context.Context,
	category, submissionID, reviewerID string,
	capabilities []entities.Capability,
	req httptransport.DecideSubmissionRequest,
) (httptransport.DecisionResponse, error) {
	result, err := h.Decide.Execute(ctx, commands.DecideSubmissionCommand{
		Category:     entities.Category(category),
		SubmissionID: submissionID,
		Action:       entities.Action(req.Action),
		ReviewerID:   reviewerID,
		Capabilities: capabilities,
		Reason:       req.Reason,
	})
	if err != nil {
		return httptransport.DecisionResponse{}, err
	}

	resp := httptransport.DecisionResponse{Status: "success"}
	resp.Data.Submission = toSubmissionDTO(result.Submission)
	resp.Data.PointsAwarded = result.PointsAwarded
	resp.Data.RolesGranted = result.RolesGranted
	for _, failure := range result.Failures {
		resp.Data.Failures = append(resp.Data.Failures, failure.String())
	}
	return resp, nil
}

func (h Handler) UserSubmissionsHandler(ctx context.Context, userID string) (httptransport.UserSubmissionsResponse, error) {
	grouped, err := h.UserSubs.Execute(ctx, userID)
	if err != nil {
		return httptransport.UserSubmissionsResponse{}, err
	}

	resp := httptransport.UserSubmissionsResponse{Status: "success"}
	resp.Data.UserID = userID
	resp.Data.Submissions = make(map[string][]httptransport.SubmissionDTO, len(grouped))
	for category, submissions := range grouped {
		dtos := make([]httptransport.SubmissionDTO, 0, len(submissions))
		for _, submission := range submissions {
			dtos = append(dtos, toSubmissionDTO(submission))
		}
		resp.Data.Submissions[string(category)] = dtos
	}
	return resp, nil
}

func (h Handler) ActivitySummaryHandler(ctx context.Context, userID string) (httptransport.ActivitySummaryResponse, error) {
	summary, err := h.Activity.Execute(ctx, userID)
	if err != nil {
		return httptransport.ActivitySummaryResponse{}, err
	}

	resp := httptransport.ActivitySummaryResponse{Status: "success"}
	resp.Data.UserID = summary.UserID
	resp.Data.Balance = summary.Balance
	resp.Data.Counts = make(map[string]int, len(summary.Counts))
	for category, count := range summary.Counts {
		resp.Data.Counts[string(category)] = count
	}
	return resp, nil
}

func (h Handler) SetPositionHandler(
	ctx context.Context,
	position string,
	req httptransport.SetPositionRequest,
) (httptransport.PositionsResponse, error) {
	err := h.Recruitment.SetPositionOpen(ctx, entities.ApplicationRole(position), req.Open)
	if err != nil {
		return httptransport.PositionsResponse{}, err
	}
	return h.ListPositionsHandler(ctx)
}

func (h Handler) ListPositionsHandler(ctx context.Context) (httptransport.PositionsResponse, error) {
	positions, err := h.Recruitment.ListPositions(ctx)
	if err != nil {
		return httptransport.PositionsResponse{}, err
	}

	resp := httptransport.PositionsResponse{Status: "success"}
	for _, p := range positions {
		resp.Data.Positions = append(resp.Data.Positions, httptransport.PositionDTO{
			Position: string(p.Position),
			Open:     p.Open,
		})
	}
	return resp, nil
}

func (h Handler) RejectionTemplatesHandler(category string) (httptransport.RejectionTemplatesResponse, error) {
	parsed, ok := entities.ParseCategory(category)
	if !ok {
		return httptransport.RejectionTemplatesResponse{}, domainerrors.ErrInvalidRequest
	}

	resp := httptransport.RejectionTemplatesResponse{Status: "success"}
	resp.Data.Category = string(parsed)
	resp.Data.Templates = entities.RejectionTemplates(parsed)
	return resp, nil
}

func (h Handler) PublishPanelHandler(
	ctx context.Context,
	req httptransport.PublishPanelRequest,
) (httptransport.StatusOnlyResponse, error) {
	err := h.Recruitment.PublishPanel(ctx, req.ChannelRef, commands.PanelKind(req.Panel))
	if err != nil {
		return httptransport.StatusOnlyResponse{}, err
	}
	return httptransport.StatusOnlyResponse{Status: "success"}, nil
}

func toSubmissionDTO(submission entities.Submission) httptransport.SubmissionDTO {
	dto := httptransport.SubmissionDTO{
		SubmissionID:    submission.SubmissionID,
		Category:        string(submission.Category),
		Scope:           string(submission.Scope),
		ApplicationRole: string(submission.ApplicationRole),
		SubmitterID:     submission.SubmitterID,
		DisplayName:     submission.DisplayName,
		Title:           submission.Title,
		ThreadRef:       submission.ThreadRef,
		Status:          string(submission.Status),
		DecisionReason:  submission.DecisionReason,
		DecidedByID:     submission.DecidedByID,
		CreatedAt:       submission.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, f := range submission.Fields {
		dto.Fields = append(dto.Fields, httptransport.FieldDTO{Label: f.Label, Value: f.Value})
	}
	return dto
}
