// Package store persists finished games to SQLite so win and guess rates
// can be tracked across runs. In-game knowledge is never persisted; only
// the move trace and the outcome.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// GameRecord is one finished game.
type GameRecord struct {
	ID        string
	Seed      int64
	Width     int
	Height    int
	Mines     int
	Won       bool
	Exploded  bool
	Guesses   int
	StartedAt time.Time
	EndedAt   time.Time
	Moves     []MoveRecord
}

// MoveRecord is one move within a game, in play order.
type MoveRecord struct {
	Ordinal  int
	Row      int
	Col      int
	Strategy string
	Guess    bool
}

// Stats aggregates the recorded games.
type Stats struct {
	Games      int
	Wins       int
	Explosions int
	Moves      int
	Guesses    int
}

// WinRate is the fraction of recorded games that were won.
func (s Stats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// GuessRate is the fraction of moves that were guesses.
func (s Stats) GuessRate() float64 {
	if s.Moves == 0 {
		return 0
	}
	return float64(s.Guesses) / float64(s.Moves)
}

// Open opens (and if needed creates) the database at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	st := &Store{db: db}
	if err := st.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return st, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		mines INTEGER NOT NULL,
		won INTEGER NOT NULL DEFAULT 0,
		exploded INTEGER NOT NULL DEFAULT 0,
		guesses INTEGER NOT NULL DEFAULT 0,
		started_at DATETIME NOT NULL,
		ended_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS moves (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		ordinal INTEGER NOT NULL,
		cell_row INTEGER NOT NULL,
		cell_col INTEGER NOT NULL,
		strategy TEXT NOT NULL,
		guess INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (game_id) REFERENCES games(id)
	);

	CREATE INDEX IF NOT EXISTS idx_moves_game ON moves(game_id, ordinal);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// RecordGame inserts a finished game and its moves in one transaction.
func (s *Store) RecordGame(g GameRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO games (id, seed, width, height, mines, won, exploded, guesses, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Seed, g.Width, g.Height, g.Mines, g.Won, g.Exploded, g.Guesses,
		g.StartedAt, g.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}

	for _, m := range g.Moves {
		_, err = tx.Exec(
			`INSERT INTO moves (game_id, ordinal, cell_row, cell_col, strategy, guess)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			g.ID, m.Ordinal, m.Row, m.Col, m.Strategy, m.Guess,
		)
		if err != nil {
			return fmt.Errorf("insert move %d: %w", m.Ordinal, err)
		}
	}

	return tx.Commit()
}

// Game loads one game (without its moves) by id.
func (s *Store) Game(id string) (GameRecord, error) {
	var g GameRecord
	err := s.db.QueryRow(
		`SELECT id, seed, width, height, mines, won, exploded, guesses, started_at, ended_at
		 FROM games WHERE id = ?`, id,
	).Scan(&g.ID, &g.Seed, &g.Width, &g.Height, &g.Mines, &g.Won, &g.Exploded,
		&g.Guesses, &g.StartedAt, &g.EndedAt)
	if err != nil {
		return GameRecord{}, fmt.Errorf("load game %s: %w", id, err)
	}
	return g, nil
}

// Moves loads the move trace of a game in play order.
func (s *Store) Moves(gameID string) ([]MoveRecord, error) {
	rows, err := s.db.Query(
		`SELECT ordinal, cell_row, cell_col, strategy, guess
		 FROM moves WHERE game_id = ? ORDER BY ordinal`, gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("load moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(&m.Ordinal, &m.Row, &m.Col, &m.Strategy, &m.Guess); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// Stats aggregates every recorded game.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(won), 0),
		        COALESCE(SUM(exploded), 0),
		        COALESCE(SUM(guesses), 0)
		 FROM games`,
	).Scan(&st.Games, &st.Wins, &st.Explosions, &st.Guesses)
	if err != nil {
		return Stats{}, fmt.Errorf("aggregate games: %w", err)
	}

	err = s.db.QueryRow(`SELECT COUNT(*) FROM moves`).Scan(&st.Moves)
	if err != nil {
		return Stats{}, fmt.Errorf("count moves: %w", err)
	}
	return st, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
