package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS archived_games (
	id          TEXT PRIMARY KEY,
	game_id     TEXT NOT NULL,
	archived_at INTEGER NOT NULL -- unix nanoseconds
);
CREATE INDEX IF NOT EXISTS idx_archived_games_game ON archived_games(game_id);
CREATE TABLE IF NOT EXISTS archived_moves (
	archive_id TEXT    NOT NULL REFERENCES archived_games(id) ON DELETE CASCADE,
	ply        INTEGER NOT NULL,
	from_sq    TEXT    NOT NULL,
	to_sq      TEXT    NOT NULL,
	piece      TEXT    NOT NULL,
	captured   TEXT    NOT NULL DEFAULT '',
	notation   TEXT    NOT NULL,
	PRIMARY KEY (archive_id, ply)
);`

type sqliteArchive struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a sqlite archive at path.
func OpenSQLite(path string) (Archive, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &sqliteArchive{db: db}, nil
}

func (s *sqliteArchive) Save(ctx context.Context, g ArchivedGame) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM archived_moves WHERE archive_id = ?`, g.ID); err != nil {
		return fmt.Errorf("clear moves: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO archived_games (id, game_id, archived_at) VALUES (?,?,?)
		 ON CONFLICT(id) DO UPDATE SET game_id = excluded.game_id, archived_at = excluded.archived_at`,
		g.ID, g.GameID, g.ArchivedAt.UnixNano()); err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	for ply, m := range g.Moves {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO archived_moves (archive_id, ply, from_sq, to_sq, piece, captured, notation)
			 VALUES (?,?,?,?,?,?,?)`,
			g.ID, ply, m.From, m.To, m.Piece, m.Captured, m.Notation); err != nil {
			return fmt.Errorf("insert move %d: %w", ply, err)
		}
	}
	return tx.Commit()
}

func (s *sqliteArchive) List(ctx context.Context, gameID string) ([]ArchivedGame, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, archived_at FROM archived_games WHERE game_id = ? ORDER BY archived_at, id`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	games := make([]ArchivedGame, 0)
	for rows.Next() {
		var (
			g  ArchivedGame
			at int64
		)
		if err := rows.Scan(&g.ID, &at); err != nil {
			rows.Close()
			return nil, err
		}
		g.GameID = gameID
		g.ArchivedAt = time.Unix(0, at).UTC()
		games = append(games, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range games {
		if games[i].Moves, err = s.moves(ctx, games[i].ID); err != nil {
			return nil, err
		}
	}
	return games, nil
}

func (s *sqliteArchive) moves(ctx context.Context, archiveID string) ([]ArchivedMove, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT from_sq, to_sq, piece, captured, notation FROM archived_moves
		 WHERE archive_id = ? ORDER BY ply`, archiveID)
	if err != nil {
		return nil, fmt.Errorf("query moves: %w", err)
	}
	defer rows.Close()

	moves := make([]ArchivedMove, 0)
	for rows.Next() {
		var m ArchivedMove
		if err := rows.Scan(&m.From, &m.To, &m.Piece, &m.Captured, &m.Notation); err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

func (s *sqliteArchive) Close() error {
	return s.db.Close()
}
