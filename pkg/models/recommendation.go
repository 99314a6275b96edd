package models

import "time"

// ScoredItem pairs an item with the similarity score used for ranking.
// Scores order candidates internally and are never exposed in responses.
type ScoredItem struct {
	ItemID int64   `json:"item_id"`
	Score  float64 `json:"score"`
}

type RecommendationResponse struct {
	UserID      int64     `json:"user_id"`
	Recs        []int64   `json:"recs"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`
}
