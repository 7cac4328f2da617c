package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/linepoint-backend/internal/apperror"
	"github.com/rocketscienceinc/linepoint-backend/internal/entity"
)

var ErrMalformedRequest = errors.New("malformed request")

// sessionManager is the slice of the session registry the transport
// needs: pairing, per-request state access and teardown.
type sessionManager interface {
	Assign(ctx context.Context) (int, entity.Player)
	Snapshot(ctx context.Context, id int) (*entity.Game, error)
	ApplyMove(ctx context.Context, id int, player entity.Player, row, col int) (*entity.Game, error)
	Reset(ctx context.Context, id int) (*entity.Game, error)
	Remove(ctx context.Context, id int)
}

type Server struct {
	logger   *slog.Logger
	sessions sessionManager
}

func New(logger *slog.Logger, sessions sessionManager) *Server {
	return &Server{
		logger:   logger.With("component", "game-server"),
		sessions: sessions,
	}
}

// Start - accepts connections until the context is canceled. Each
// accepted connection is assigned its (session, slot) pair and served
// by its own goroutine; a broken connection never stops the listener.
func (that *Server) Start(ctx context.Context, port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", port, err)
	}

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("listener closed: %w", err)
			}

			that.logger.Error("failed to accept connection", "error", err)

			continue
		}

		sessionID, slot := that.sessions.Assign(ctx)
		go that.handleConnection(ctx, conn, sessionID, slot)
	}
}

// handleConnection - runs the per-connection request loop. The first
// frame tells the client its slot; afterwards every request is answered
// with a full snapshot. Any error is fatal to this connection only: the
// session is deregistered, which also invalidates the peer.
func (that *Server) handleConnection(ctx context.Context, conn net.Conn, sessionID int, slot entity.Player) {
	log := that.logger.With("method", "handleConnection", "sessionID", sessionID, "slot", slot)

	defer func() {
		that.sessions.Remove(ctx, sessionID)
		conn.Close()
		log.Info("connection closed")
	}()

	if err := writeFrame(conn, []byte(strconv.Itoa(int(slot)))); err != nil {
		log.Error("failed to send slot assignment", "error", err)
		return
	}

	log.Info("player connected", "remote", conn.RemoteAddr().String())

	for {
		payload, err := readFrame(conn)
		if err != nil {
			log.Info("read failed, leaving session", "error", err)
			return
		}

		response, err := that.handleRequest(ctx, sessionID, slot, string(payload))
		if err != nil {
			log.Error("failed to handle request", "error", err)
			return
		}

		body, err := json.Marshal(response)
		if err != nil {
			log.Error("failed to marshal snapshot", "error", err)
			return
		}

		if err = writeFrame(conn, body); err != nil {
			log.Error("failed to write snapshot", "error", err)
			return
		}
	}
}

// handleRequest - dispatches one request. Move rejections produce a
// response with Accepted=false; only transport-level problems (missing
// session, malformed request) come back as errors and end the
// connection.
func (that *Server) handleRequest(ctx context.Context, sessionID int, slot entity.Player, request string) (*Response, error) {
	switch request {
	case requestGet:
		game, err := that.sessions.Snapshot(ctx, sessionID)
		if err != nil {
			return nil, err
		}

		return &Response{Accepted: true, Game: game}, nil

	case requestReset:
		game, err := that.sessions.Reset(ctx, sessionID)
		if err != nil {
			return nil, err
		}

		return &Response{Accepted: true, Game: game}, nil

	default:
		row, col, err := parseMove(request)
		if err != nil {
			return nil, err
		}

		game, moveErr := that.sessions.ApplyMove(ctx, sessionID, slot, row, col)
		if isRejection(moveErr) {
			return &Response{Accepted: false, Game: game}, nil
		}

		if moveErr != nil {
			return nil, moveErr
		}

		return &Response{Accepted: true, Game: game}, nil
	}
}

// isRejection - invalid moves are answered, not fatal.
func isRejection(err error) bool {
	return errors.Is(err, apperror.ErrNotYourTurn) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrInvalidCell) ||
		errors.Is(err, apperror.ErrGameNotReady) ||
		errors.Is(err, apperror.ErrGameFinished)
}

// parseMove - parses a "<row>,<col>" move request.
func parseMove(request string) (int, int, error) {
	rowPart, colPart, ok := strings.Cut(request, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedRequest, request)
	}

	row, err := strconv.Atoi(strings.TrimSpace(rowPart))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedRequest, request)
	}

	col, err := strconv.Atoi(strings.TrimSpace(colPart))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedRequest, request)
	}

	return row, col, nil
}
