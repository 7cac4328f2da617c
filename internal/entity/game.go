package entity

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"

	WinnerPlayerOne = "1"
	WinnerPlayerTwo = "2"
	WinnerTie       = "-"
)

// Game is one player-vs-player match: the board, turn order, scores,
// scored lines and lifecycle status. Status waiting means the second
// player slot is still empty; ongoing means both slots are occupied and
// moves are accepted; finished means the board is full and the outcome
// is set.
type Game struct {
	ID      int    `json:"id"`
	Board   *Board `json:"board"`
	Turn    Player `json:"player_turn"`
	P1Score int    `json:"p1_score"`
	P2Score int    `json:"p2_score"`
	Winner  string `json:"winner,omitempty"`
	Status  string `json:"status"`
	Lines   []Line `json:"lines"`
}

func NewGame(id, boardSize int) *Game {
	return &Game{
		ID:     id,
		Board:  NewBoard(boardSize),
		Turn:   PlayerOne,
		Status: StatusWaiting,
		Lines:  []Line{},
	}
}

// MarkReady - flips the session into play once the second player joins.
// The pairing persists across resets, so this happens once per session.
func (that *Game) MarkReady() {
	that.Status = StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// Score - returns the given player's score.
func (that *Game) Score(player Player) int {
	if player == PlayerOne {
		return that.P1Score
	}

	return that.P2Score
}

// AddScore - credits points to the given player. Scores only grow
// within a game; they drop back to zero on reset.
func (that *Game) AddScore(player Player, points int) {
	if player == PlayerOne {
		that.P1Score += points
		return
	}

	that.P2Score += points
}

// Clone - returns a deep copy so snapshots can be serialized outside
// the session lock.
func (that *Game) Clone() *Game {
	clone := *that
	clone.Board = that.Board.Clone()
	clone.Lines = make([]Line, len(that.Lines))
	copy(clone.Lines, that.Lines)

	return &clone
}
