package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session sources.
const (
	SourcePlay   = "play"
	SourceMirror = "mirror"
	SourceReplay = "replay"
)

// Session represents a viewing session in the database.
type Session struct {
	SessionID    string
	StartedAt    time.Time
	EndedAt      *time.Time
	DurationMs   *int64
	Source       string
	StartState   string
	EndState     *string
	HighestPhase *string
	Notes        *string
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db  *DB
	now func() time.Time
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db, now: time.Now}
}

// Create creates a new session starting from the encoded cube state and
// returns its ID.
func (r *SessionRepository) Create(source, startState, notes string) (string, error) {
	id := uuid.New().String()
	startedAt := r.now().UTC()

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, started_at, source, start_state, notes)
		VALUES (?, ?, ?, ?, ?)
	`, id, startedAt.Format(time.RFC3339Nano), source, startState, notesPtr)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return id, nil
}

// End marks a session as complete with its final state and highest phase.
func (r *SessionRepository) End(sessionID, endState, highestPhase string) error {
	endedAt := r.now().UTC()

	var startedAtStr string
	err := r.db.QueryRow("SELECT started_at FROM sessions WHERE session_id = ?", sessionID).Scan(&startedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get session start time: %w", err)
	}

	startedAt, err := time.Parse(time.RFC3339Nano, startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to parse start time: %w", err)
	}

	_, err = r.db.Exec(`
		UPDATE sessions
		SET ended_at = ?, duration_ms = ?, end_state = ?, highest_phase = ?
		WHERE session_id = ?
	`, endedAt.Format(time.RFC3339Nano), endedAt.Sub(startedAt).Milliseconds(), endState, highestPhase, sessionID)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	return nil
}

const sessionColumns = `session_id, started_at, ended_at, duration_ms, source, start_state, end_state, highest_phase, notes`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var s Session
	var startedAtStr string
	var endedAtStr sql.NullString

	err := row.Scan(
		&s.SessionID, &startedAtStr, &endedAtStr, &s.DurationMs,
		&s.Source, &s.StartState, &s.EndState, &s.HighestPhase, &s.Notes,
	)
	if err != nil {
		return Session{}, err
	}

	s.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAtStr)
	if endedAtStr.Valid {
		t, _ := time.Parse(time.RFC3339Nano, endedAtStr.String)
		s.EndedAt = &t
	}
	return s, nil
}

// Get retrieves a session by ID. A missing session returns ErrNotFound.
func (r *SessionRepository) Get(sessionID string) (*Session, error) {
	s, err := scanSession(r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`, sessionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// GetLast retrieves the most recent session.
func (r *SessionRepository) GetLast() (*Session, error) {
	s, err := scanSession(r.db.QueryRow(`SELECT ` + sessionColumns + ` FROM sessions ORDER BY started_at DESC, rowid DESC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last session: %w", err)
	}
	return &s, nil
}

// List retrieves recent sessions, newest first. A limit of zero or less
// lists every session.
func (r *SessionRepository) List(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.Query(`
		SELECT `+sessionColumns+`
		FROM sessions
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Delete deletes a session and all related data (cascading).
func (r *SessionRepository) Delete(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// GetTurnCount returns the number of turns in a session.
func (r *SessionRepository) GetTurnCount(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM turns WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get turn count: %w", err)
	}
	return count, nil
}
