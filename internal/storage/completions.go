package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Completion records one solved level.
type Completion struct {
	ID        int64
	SessionID uuid.UUID // Play session that solved the level
	LevelID   string
	Drags     int
	Resets    int
	Duration  time.Duration
	CreatedAt time.Time
}

// SaveCompletion records a solved level. A zero SessionID is replaced with a
// fresh random one. Returns the ID of the inserted record.
func (s *Store) SaveCompletion(c Completion) (int64, error) {
	if c.SessionID == uuid.Nil {
		c.SessionID = uuid.New()
	}

	result, err := s.db.Exec(
		`INSERT INTO completions (session_id, level_id, drags, resets, duration_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		c.SessionID.String(), c.LevelID, c.Drags, c.Resets, c.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestCompletion returns the completion with the fewest drags for a level,
// the fastest one among equals. ok is false when the level was never solved.
func (s *Store) BestCompletion(levelID string) (c Completion, ok bool, err error) {
	row := s.db.QueryRow(
		`SELECT id, session_id, level_id, drags, resets, duration_ms, created_at
		 FROM completions
		 WHERE level_id = ?
		 ORDER BY drags ASC, duration_ms ASC, id ASC
		 LIMIT 1`,
		levelID,
	)

	c, err = scanCompletion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Completion{}, false, nil
	}
	if err != nil {
		return Completion{}, false, fmt.Errorf("storage: cannot query best completion: %w", err)
	}
	return c, true, nil
}

// SessionCompletions returns every completion recorded by a play session,
// oldest first.
func (s *Store) SessionCompletions(sessionID uuid.UUID) ([]Completion, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, level_id, drags, resets, duration_ms, created_at
		 FROM completions
		 WHERE session_id = ?
		 ORDER BY id ASC`,
		sessionID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompletion(r rowScanner) (Completion, error) {
	var (
		c          Completion
		sessionID  string
		durationMS int64
		createdAt  any
	)
	if err := r.Scan(&c.ID, &sessionID, &c.LevelID, &c.Drags, &c.Resets, &durationMS, &createdAt); err != nil {
		return Completion{}, err
	}

	id, err := uuid.Parse(sessionID)
	if err != nil {
		return Completion{}, fmt.Errorf("session id %q: %w", sessionID, err)
	}
	c.SessionID = id
	c.Duration = time.Duration(durationMS) * time.Millisecond
	c.CreatedAt = parseTime(createdAt)
	return c, nil
}
