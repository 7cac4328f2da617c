package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/linepoint-backend/internal/apperror"
	"github.com/rocketscienceinc/linepoint-backend/internal/entity"
	"github.com/rocketscienceinc/linepoint-backend/internal/linegame"
)

type snapshotRepo interface {
	Save(ctx context.Context, game *entity.Game) error
	DeleteByID(ctx context.Context, id int) error
}

type archiveRepo interface {
	SaveResult(ctx context.Context, result *entity.MatchResult) error
}

// session couples a game with the lock that serializes the two peer
// connections' requests against it.
type session struct {
	mu   sync.Mutex
	game *entity.Game
}

// SessionManager owns every live session. Connection handlers keep only
// a session id and resolve it through the manager on every request, so
// a reset or removal by the peer is always observed on the next call.
type SessionManager struct {
	logger       *slog.Logger
	snapshotRepo snapshotRepo
	archiveRepo  archiveRepo

	boardSize int

	mu       sync.Mutex
	nextID   int
	waiting  *session
	sessions map[int]*session
}

func NewSessionManager(logger *slog.Logger, snapshotRepo snapshotRepo, archiveRepo archiveRepo, boardSize int) *SessionManager {
	return &SessionManager{
		logger:       logger.With("component", "sessions"),
		snapshotRepo: snapshotRepo,
		archiveRepo:  archiveRepo,
		boardSize:    boardSize,
		sessions:     make(map[int]*session),
	}
}

// Assign - pairs connections in FIFO order. The first player of a pair
// opens a new session as slot 1; the next arrival joins it as slot 2
// and the match becomes ready. Counter read, pairing decision and
// registry mutation all happen under one lock so concurrent accepts
// cannot split a pair.
func (that *SessionManager) Assign(ctx context.Context) (int, entity.Player) {
	log := that.logger.With("method", "Assign")

	that.mu.Lock()

	if that.waiting != nil {
		sess := that.waiting
		that.waiting = nil

		sess.mu.Lock()
		sess.game.MarkReady()
		game := sess.game.Clone()
		sess.mu.Unlock()
		that.mu.Unlock()

		that.mirror(ctx, game)
		log.Info("session ready", "sessionID", game.ID)

		return game.ID, entity.PlayerTwo
	}

	id := that.nextID
	that.nextID++

	sess := &session{game: entity.NewGame(id, that.boardSize)}
	that.sessions[id] = sess
	that.waiting = sess
	game := sess.game.Clone()
	that.mu.Unlock()

	that.mirror(ctx, game)
	log.Info("session created", "sessionID", id)

	return id, entity.PlayerOne
}

// Snapshot - returns a copy of the session state. Idempotent: clients
// may poll arbitrarily often without changing state.
func (that *SessionManager) Snapshot(_ context.Context, id int) (*entity.Game, error) {
	sess, ok := that.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", apperror.ErrSessionNotFound, id)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.game.Clone(), nil
}

// ApplyMove - applies one move under the session lock. Validation
// failures come back together with the unchanged snapshot so the
// transport can answer the rejection without tearing the connection
// down.
func (that *SessionManager) ApplyMove(ctx context.Context, id int, player entity.Player, row, col int) (*entity.Game, error) {
	sess, ok := that.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", apperror.ErrSessionNotFound, id)
	}

	sess.mu.Lock()
	moveErr := linegame.ApplyMove(sess.game, player, row, col)
	game := sess.game.Clone()
	sess.mu.Unlock()

	if moveErr != nil {
		return game, moveErr
	}

	that.mirror(ctx, game)

	if game.IsFinished() {
		that.archive(ctx, game)
	}

	return game, nil
}

// Reset - reinitializes the match in place; the pairing persists.
// Resending reset is idempotent since it always reinitializes.
func (that *SessionManager) Reset(ctx context.Context, id int) (*entity.Game, error) {
	sess, ok := that.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", apperror.ErrSessionNotFound, id)
	}

	sess.mu.Lock()
	linegame.Reset(sess.game)
	game := sess.game.Clone()
	sess.mu.Unlock()

	that.mirror(ctx, game)

	return game, nil
}

// Remove - drops the session when either peer disconnects. The
// remaining peer's next request fails its registry lookup, which tears
// that connection down too. A removed id may be reused only through the
// pairing counter, never resurrected.
func (that *SessionManager) Remove(ctx context.Context, id int) {
	log := that.logger.With("method", "Remove", "sessionID", id)

	that.mu.Lock()
	sess, ok := that.sessions[id]
	if ok {
		delete(that.sessions, id)
		if that.waiting == sess {
			that.waiting = nil
		}
	}
	that.mu.Unlock()

	if !ok {
		return
	}

	if err := that.snapshotRepo.DeleteByID(ctx, id); err != nil {
		log.Error("failed to delete session snapshot", "error", err)
	}

	log.Info("session removed")
}

func (that *SessionManager) lookup(id int) (*session, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	sess, ok := that.sessions[id]

	return sess, ok
}

// mirror - best-effort copy of the live snapshot for the REST surface.
// The in-memory session stays authoritative; a mirror failure is logged
// and never fails the request.
func (that *SessionManager) mirror(ctx context.Context, game *entity.Game) {
	if err := that.snapshotRepo.Save(ctx, game); err != nil {
		that.logger.Error("failed to mirror session snapshot", "sessionID", game.ID, "error", err)
	}
}

// archive - records the final score line of a finished game.
func (that *SessionManager) archive(ctx context.Context, game *entity.Game) {
	result := &entity.MatchResult{
		ID:         uuid.NewString(),
		SessionID:  game.ID,
		Winner:     game.Winner,
		P1Score:    game.P1Score,
		P2Score:    game.P2Score,
		FinishedAt: time.Now().UTC(),
	}

	if err := that.archiveRepo.SaveResult(ctx, result); err != nil {
		that.logger.Error("failed to archive match result", "sessionID", game.ID, "error", err)
	}
}
