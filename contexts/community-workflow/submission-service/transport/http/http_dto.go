package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type FieldDTO struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type CreateSubmissionRequest struct {
	Category        string     `json:"category"`
	Scope           string     `json:"scope"`
	ApplicationRole string     `json:"application_role,omitempty"`
	DisplayName     string     `json:"display_name"`
	Title           string     `json:"title"`
	Fields          []FieldDTO `json:"fields"`
}

type SubmissionDTO struct {
	SubmissionID    string     `json:"submission_id"`
	Category        string     `json:"category"`
	Scope           string     `json:"scope"`
	ApplicationRole string     `json:"application_role,omitempty"`
	SubmitterID     string     `json:"submitter_id"`
	DisplayName     string     `json:"display_name"`
	Title           string     `json:"title"`
	Fields          []FieldDTO `json:"fields,omitempty"`
	ThreadRef       string     `json:"thread_ref"`
	Status          string     `json:"status"`
	DecisionReason  string     `json:"decision_reason,omitempty"`
	DecidedByID     string     `json:"decided_by_id,omitempty"`
	CreatedAt       string     `json:"created_at"`
}

type SubmissionResponse struct {
	Status string `json:"status"`
	Data   struct {
		Submission SubmissionDTO `json:"submission"`
	} `json:"data"`
}

type DecideSubmissionRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
}

type DecisionResponse struct {
	Status string `json:"status"`
	Data   struct {
		Submission    SubmissionDTO `json:"submission"`
		PointsAwarded int           `json:"points_awarded"`
		RolesGranted  []string      `json:"roles_granted,omitempty"`
		Failures      []string      `json:"failures,omitempty"`
	} `json:"data"`
}

type UserSubmissionsResponse struct {
	Status string `json:"status"`
	Data   struct {
		UserID      string                     `json:"user_id"`
		Submissions map[string][]SubmissionDTO `json:"submissions"`
	} `json:"data"`
}

type ActivitySummaryResponse struct {
	Status string `json:"status"`
	Data   struct {
		UserID  string         `json:"user_id"`
		Counts  map[string]int `json:"counts"`
		Balance int            `json:"balance"`
	} `json:"data"`
}

type SetPositionRequest struct {
	Open bool `json:"open"`
}

type PositionDTO struct {
	Position string `json:"position"`
	Open     bool   `json:"open"`
}

type PositionsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Positions []PositionDTO `json:"positions"`
	} `json:"data"`
}

type RejectionTemplatesResponse struct {
	Status string `json:"status"`
	Data   struct {
		Category  string   `json:"category"`
		Templates []string `json:"templates"`
	} `json:"data"`
}

type PublishPanelRequest struct {
	ChannelRef string `json:"channel_ref"`
	Panel      string `json:"panel"`
}

type StatusOnlyResponse struct {
	Status string `json:"status"`
}
