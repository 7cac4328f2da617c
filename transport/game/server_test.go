package game

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/linepoint-backend/internal/apperror"
	"github.com/rocketscienceinc/linepoint-backend/internal/entity"
	"github.com/rocketscienceinc/linepoint-backend/internal/usecase"
)

type stubSnapshotRepo struct {
	mu sync.Mutex
}

func (that *stubSnapshotRepo) Save(_ context.Context, _ *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()
	return nil
}

func (that *stubSnapshotRepo) DeleteByID(_ context.Context, _ int) error {
	that.mu.Lock()
	defer that.mu.Unlock()
	return nil
}

type stubArchiveRepo struct{}

func (that *stubArchiveRepo) SaveResult(_ context.Context, _ *entity.MatchResult) error {
	return nil
}

func newTestServer(boardSize int) (*Server, *usecase.SessionManager) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	manager := usecase.NewSessionManager(logger, &stubSnapshotRepo{}, &stubArchiveRepo{}, boardSize)

	return New(logger, manager), manager
}

// dialSession wires one simulated client into a running connection
// handler and returns the client end plus its assigned slot.
func dialSession(t *testing.T, ctx context.Context, srv *Server, manager *usecase.SessionManager) (net.Conn, entity.Player) {
	t.Helper()

	client, server := net.Pipe()
	t.Cleanup(func() {
		client.Close()
	})

	sessionID, slot := manager.Assign(ctx)
	go srv.handleConnection(ctx, server, sessionID, slot)

	// first frame announces the player slot
	payload, err := readFrame(client)
	require.NoError(t, err)
	require.Equal(t, strconv.Itoa(int(slot)), string(payload))

	return client, slot
}

func request(t *testing.T, conn net.Conn, body string) *Response {
	t.Helper()

	require.NoError(t, writeFrame(conn, []byte(body)))

	payload, err := readFrame(conn)
	require.NoError(t, err)

	var response Response
	require.NoError(t, json.Unmarshal(payload, &response))
	require.NotNil(t, response.Game)

	return &response
}

func TestHandleConnection_GetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	srv, manager := newTestServer(3)

	// Given: a paired session
	p1, _ := dialSession(t, ctx, srv, manager)
	dialSession(t, ctx, srv, manager)

	// When: polling twice with no move in between
	first := request(t, p1, "get")
	second := request(t, p1, "get")

	// Then: both responses carry the identical ongoing snapshot
	assert.True(t, first.Accepted)
	assert.Equal(t, entity.StatusOngoing, first.Game.Status)
	assert.Equal(t, first, second)
}

func TestHandleConnection_WaitingSnapshot(t *testing.T) {
	ctx := context.Background()
	srv, manager := newTestServer(3)

	// Given: only the first player connected
	p1, slot := dialSession(t, ctx, srv, manager)
	require.Equal(t, entity.PlayerOne, slot)

	// When: the lone player polls
	response := request(t, p1, "get")

	// Then: the snapshot still reports waiting
	assert.Equal(t, entity.StatusWaiting, response.Game.Status)
}

func TestHandleConnection_Moves(t *testing.T) {
	ctx := context.Background()
	srv, manager := newTestServer(3)

	p1, _ := dialSession(t, ctx, srv, manager)
	p2, _ := dialSession(t, ctx, srv, manager)

	t.Run("Accepted move flips the turn", func(t *testing.T) {
		// When: player one plays the center
		response := request(t, p1, "1,1")

		// Then: the move is accepted and replicated in the snapshot
		assert.True(t, response.Accepted)
		assert.Equal(t, entity.PlayerOne, response.Game.Board.Cells[1][1])
		assert.Equal(t, entity.PlayerTwo, response.Game.Turn)
	})

	t.Run("Out-of-turn move is answered, not fatal", func(t *testing.T) {
		// When: player one tries to move again
		response := request(t, p1, "0,0")

		// Then: the response flags the rejection with unchanged state
		assert.False(t, response.Accepted)
		assert.Equal(t, entity.PlayerNone, response.Game.Board.Cells[0][0])
		assert.Equal(t, entity.PlayerTwo, response.Game.Turn)
	})

	t.Run("Occupied cell is rejected for the peer", func(t *testing.T) {
		response := request(t, p2, "1,1")

		assert.False(t, response.Accepted)
		assert.Equal(t, entity.PlayerOne, response.Game.Board.Cells[1][1])
	})

	t.Run("Out-of-range coordinates are rejected", func(t *testing.T) {
		response := request(t, p2, "9,9")

		assert.False(t, response.Accepted)
	})
}

func TestHandleConnection_Reset(t *testing.T) {
	ctx := context.Background()
	srv, manager := newTestServer(1)

	p1, _ := dialSession(t, ctx, srv, manager)
	dialSession(t, ctx, srv, manager)

	// Given: the single-cell game is already over
	finished := request(t, p1, "0,0")
	require.True(t, finished.Accepted)
	require.Equal(t, entity.StatusFinished, finished.Game.Status)

	// When: the client requests a reset
	response := request(t, p1, "reset")

	// Then: the match restarts in place
	assert.True(t, response.Accepted)
	assert.Equal(t, entity.StatusOngoing, response.Game.Status)
	assert.Equal(t, 0, response.Game.P1Score)
	assert.Empty(t, response.Game.Winner)
}

func TestHandleConnection_MalformedRequestClosesConnection(t *testing.T) {
	ctx := context.Background()
	srv, manager := newTestServer(3)

	p1, _ := dialSession(t, ctx, srv, manager)
	dialSession(t, ctx, srv, manager)

	// When: the client sends garbage
	require.NoError(t, writeFrame(p1, []byte("bogus")))

	// Then: the handler drops the connection instead of answering
	_, err := readFrame(p1)
	require.Error(t, err)
}

func TestHandleConnection_DisconnectRemovesSession(t *testing.T) {
	ctx := context.Background()
	srv, manager := newTestServer(3)

	p1, _ := dialSession(t, ctx, srv, manager)
	p2, _ := dialSession(t, ctx, srv, manager)

	snapshot := request(t, p2, "get")
	sessionID := snapshot.Game.ID

	// When: player one disconnects
	require.NoError(t, p1.Close())

	// Then: the session disappears from the registry, invalidating the peer
	require.Eventually(t, func() bool {
		_, err := manager.Snapshot(ctx, sessionID)
		return err != nil
	}, time.Second, 10*time.Millisecond)

	_, err := manager.Snapshot(ctx, sessionID)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}
