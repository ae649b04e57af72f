package domain

import "time"

// SavedFoundation is a shade a user bookmarked
type SavedFoundation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Brand     string    `json:"brand"`
	ShadeName string    `json:"shadeName"`
	CreatedAt time.Time `json:"createdAt"`
}

// SaveRequest is the body for saving or removing a bookmark
type SaveRequest struct {
	Brand     string `json:"brand" binding:"required"`
	ShadeName string `json:"shadeName" binding:"required"`
}
