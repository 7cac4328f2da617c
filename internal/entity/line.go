package entity

// Line kinds understood by the rendering client.
const (
	LineVertical     = "vertical"
	LineHorizontal   = "horizontal"
	LineAscDiagonal  = "asc-diagonal"
	LineDescDiagonal = "desc-diagonal"
)

// Line describes a scored line for rendering: the family tag, the
// anchor cell of its segment, and the player whose move completed it.
// Completed lines are append-only and never re-evaluated.
type Line struct {
	Kind  string `json:"kind"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Owner Player `json:"owner"`
}
