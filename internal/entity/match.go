package entity

import "time"

// MatchResult is the immutable archive record of a finished game.
type MatchResult struct {
	ID         string    `json:"id"`
	SessionID  int       `json:"session_id"`
	Winner     string    `json:"winner"`
	P1Score    int       `json:"p1_score"`
	P2Score    int       `json:"p2_score"`
	FinishedAt time.Time `json:"finished_at"`
}
