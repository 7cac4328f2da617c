package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketscienceinc/linepoint-backend/internal/entity"
)

// ArchiveRepository stores the final score line of every finished game
// in SQLite. Records outlive the sessions that produced them.
type ArchiveRepository interface {
	SaveResult(ctx context.Context, result *entity.MatchResult) error
	ListRecent(ctx context.Context, limit int) ([]entity.MatchResult, error)
}

type dbArchive struct {
	conn *sql.DB
}

func NewArchiveRepository(conn *sql.DB) ArchiveRepository {
	return &dbArchive{
		conn: conn,
	}
}

func (that *dbArchive) SaveResult(ctx context.Context, result *entity.MatchResult) error {
	query := `INSERT INTO match_results (id, session_id, winner, p1_score, p2_score, finished_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		result.ID,
		result.SessionID,
		result.Winner,
		result.P1Score,
		result.P2Score,
		result.FinishedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert match result: %w", err)
	}

	return nil
}

func (that *dbArchive) ListRecent(ctx context.Context, limit int) ([]entity.MatchResult, error) {
	query := `SELECT id, session_id, winner, p1_score, p2_score, finished_at
		FROM match_results ORDER BY finished_at DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query match results: %w", err)
	}
	defer rows.Close()

	var results []entity.MatchResult

	for rows.Next() {
		var result entity.MatchResult
		var finishedAt string

		if err = rows.Scan(&result.ID, &result.SessionID, &result.Winner, &result.P1Score, &result.P2Score, &finishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match result: %w", err)
		}

		result.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse finished_at: %w", err)
		}

		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate match results: %w", err)
	}

	return results, nil
}
