package models

type EventRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
	ItemID int64 `json:"item_id" binding:"required"`
}

type EventResponse struct {
	UserID int64  `json:"user_id"`
	ItemID int64  `json:"item_id"`
	Status string `json:"status"`
}

type RateLimitInfo struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}
