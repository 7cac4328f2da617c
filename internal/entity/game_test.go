package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// Given: a new session created for the first player of a pair
	game := NewGame(3, 7)

	// Then: the game waits for its second player with a fresh board
	expected := &Game{
		ID:     3,
		Board:  NewBoard(7),
		Turn:   PlayerOne,
		Status: StatusWaiting,
		Lines:  []Line{},
	}

	require.Equal(t, expected, game)
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsWaiting returns true before the second player joins", func(t *testing.T) {
		game := NewGame(0, 3)

		assert.True(t, game.IsWaiting())
		assert.False(t, game.IsOngoing())
	})

	t.Run("MarkReady flips the session into play", func(t *testing.T) {
		// Given: a waiting session
		game := NewGame(0, 3)

		// When: the second player joins
		game.MarkReady()

		// Then: the session is ongoing
		assert.True(t, game.IsOngoing())
	})

	t.Run("IsFinished returns true when the outcome is set", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.True(t, game.IsFinished())
	})
}

func TestGame_Scores(t *testing.T) {
	// Given: a fresh game
	game := NewGame(0, 3)

	// When: crediting points to both players
	game.AddScore(PlayerOne, 3)
	game.AddScore(PlayerTwo, 1)
	game.AddScore(PlayerOne, 2)

	// Then: the scores accumulate per player
	assert.Equal(t, 5, game.Score(PlayerOne))
	assert.Equal(t, 1, game.Score(PlayerTwo))
}

func TestGame_Clone(t *testing.T) {
	// Given: an ongoing game with a mark and a scored line
	game := NewGame(0, 3)
	game.MarkReady()
	game.Board.Place(0, 0, PlayerOne)
	game.Lines = append(game.Lines, Line{Kind: LineHorizontal, Row: 0, Col: 0, Owner: PlayerOne})

	// When: cloning and mutating the clone
	clone := game.Clone()
	clone.Board.Place(1, 1, PlayerTwo)
	clone.Lines = append(clone.Lines, Line{Kind: LineVertical, Col: 1, Owner: PlayerTwo})
	clone.AddScore(PlayerTwo, 2)

	// Then: the original game is unaffected
	assert.Equal(t, PlayerNone, game.Board.Cells[1][1])
	assert.Len(t, game.Lines, 1)
	assert.Equal(t, 0, game.Score(PlayerTwo))
}

func TestPlayer_Opponent(t *testing.T) {
	assert.Equal(t, PlayerTwo, PlayerOne.Opponent())
	assert.Equal(t, PlayerOne, PlayerTwo.Opponent())
}
