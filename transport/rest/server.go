package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/linepoint-backend/internal/entity"
)

type snapshotRepo interface {
	List(ctx context.Context) ([]*entity.Game, error)
}

type archiveRepo interface {
	ListRecent(ctx context.Context, limit int) ([]entity.MatchResult, error)
}

// Server exposes the read-only observability endpoints: liveness, the
// live session mirror, and the archive of finished matches.
type Server struct {
	logger    *slog.Logger
	snapshots snapshotRepo
	archive   archiveRepo
}

func New(logger *slog.Logger, snapshots snapshotRepo, archive archiveRepo) *Server {
	return &Server{
		logger:    logger.With("component", "rest-server"),
		snapshots: snapshots,
		archive:   archive,
	}
}

func (that *Server) Start(port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", that.pingHandler)
	mux.HandleFunc("/sessions", that.sessionsHandler)
	mux.HandleFunc("/results", that.resultsHandler)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
