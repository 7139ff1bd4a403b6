package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreatePollRequest struct {
	AnchorID string   `json:"anchor_id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type CastVoteRequest struct {
	Option int `json:"option"`
}

type OptionTallyDTO struct {
	Label  string   `json:"label"`
	Count  int      `json:"count"`
	Voters []string `json:"voters"`
}

type PollDTO struct {
	AnchorID string           `json:"anchor_id"`
	Question string           `json:"question"`
	AuthorID string           `json:"author_id"`
	Options  []OptionTallyDTO `json:"options"`
	Voters   int              `json:"voters"`
}

type PollResponse struct {
	Status string `json:"status"`
	Data   struct {
		Poll PollDTO `json:"poll"`
	} `json:"data"`
}
