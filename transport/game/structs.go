package game

import "github.com/rocketscienceinc/linepoint-backend/internal/entity"

// Request verbs understood by the connection handler. Anything else is
// parsed as a "<row>,<col>" move.
const (
	requestGet   = "get"
	requestReset = "reset"
)

// Response carries the full session snapshot sent back after every
// request, no-ops included. Accepted is false when a move was rejected
// by validation; the snapshot is then the unchanged state.
type Response struct {
	Accepted bool         `json:"accepted"`
	Game     *entity.Game `json:"game"`
}
