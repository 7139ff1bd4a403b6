package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AdjustRequest struct {
	Amount int    `json:"amount"`
	Mode   string `json:"mode"`
}

type BalanceResponse struct {
	Status string `json:"status"`
	Data   struct {
		UserID string `json:"user_id"`
		Points int    `json:"points"`
	} `json:"data"`
}

type AdjustResponse struct {
	Status string `json:"status"`
	Data   struct {
		UserID  string `json:"user_id"`
		Balance int    `json:"balance"`
	} `json:"data"`
}

type LeaderboardEntryDTO struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Points int    `json:"points"`
}

type LeaderboardResponse struct {
	Status string `json:"status"`
	Data   struct {
		Leaderboard []LeaderboardEntryDTO `json:"leaderboard"`
	} `json:"data"`
}
