package linegame

import (
	"fmt"

	"github.com/rocketscienceinc/linepoint-backend/internal/apperror"
	"github.com/rocketscienceinc/linepoint-backend/internal/entity"
)

// ApplyMove - validates and applies one move for the given player. On
// acceptance it scores every line family newly completed by the played
// cell, flips the turn, and finishes the game once the board is full.
// A rejected move leaves the game untouched.
func ApplyMove(game *entity.Game, player entity.Player, row, col int) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if game.IsWaiting() {
		return apperror.ErrGameNotReady
	}

	if err := validateMove(game, player, row, col); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	game.Board.Place(row, col, player)
	scoreCompletedLines(game, player, row, col)

	game.Turn = player.Opponent()

	if game.Board.IsFull() {
		finishGame(game)
	}

	return nil
}

// validateMove - checks bounds, turn order and occupancy.
func validateMove(game *entity.Game, player entity.Player, row, col int) error {
	if !game.Board.InBounds(row, col) {
		return fmt.Errorf("%w: %d,%d", apperror.ErrInvalidCell, row, col)
	}

	if game.Turn != player {
		return apperror.ErrNotYourTurn
	}

	if game.Board.IsOccupied(row, col) {
		return apperror.ErrCellOccupied
	}

	return nil
}

// scoreCompletedLines - runs the four family checks through the cell
// just played. A segment can only transition to complete on the move
// that fills its last empty cell, so each line is scored exactly once
// per game without rescanning the whole board. Several families may
// complete on the same move; each is scored independently, crediting
// the mover one point per own cell along that segment.
func scoreCompletedLines(game *entity.Game, player entity.Player, row, col int) {
	board := game.Board

	if seg := board.ColSegment(col); seg.Complete(board) {
		game.AddScore(player, seg.Count(board, player))
		game.Lines = append(game.Lines, entity.Line{Kind: entity.LineVertical, Row: seg.Row, Col: seg.Col, Owner: player})
	}

	if seg := board.RowSegment(row); seg.Complete(board) {
		game.AddScore(player, seg.Count(board, player))
		game.Lines = append(game.Lines, entity.Line{Kind: entity.LineHorizontal, Row: seg.Row, Col: seg.Col, Owner: player})
	}

	if seg := board.AscSegment(row, col); seg.Complete(board) {
		game.AddScore(player, seg.Count(board, player))
		game.Lines = append(game.Lines, entity.Line{Kind: entity.LineAscDiagonal, Row: seg.Row, Col: seg.Col, Owner: player})
	}

	if seg := board.DescSegment(row, col); seg.Complete(board) {
		game.AddScore(player, seg.Count(board, player))
		game.Lines = append(game.Lines, entity.Line{Kind: entity.LineDescDiagonal, Row: seg.Row, Col: seg.Col, Owner: player})
	}
}

// finishGame - compares final scores once the board is full. The
// outcome is set exactly once per game.
func finishGame(game *entity.Game) {
	switch {
	case game.P1Score > game.P2Score:
		game.Winner = entity.WinnerPlayerOne
	case game.P2Score > game.P1Score:
		game.Winner = entity.WinnerPlayerTwo
	default:
		game.Winner = entity.WinnerTie
	}

	game.Status = entity.StatusFinished
}

// Reset - reinitializes the match in place regardless of prior outcome.
// The pairing persists, so a finished session goes straight back into
// play; a session still waiting for its second player keeps waiting.
func Reset(game *entity.Game) {
	game.Board = entity.NewBoard(game.Board.Size)
	game.Turn = entity.PlayerOne
	game.P1Score = 0
	game.P2Score = 0
	game.Winner = ""
	game.Lines = []entity.Line{}

	if game.Status == entity.StatusFinished {
		game.Status = entity.StatusOngoing
	}
}
