package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SeamusWaldron/gocube3d/internal/cube"
)

// TurnRecord represents a committed turn in the database.
type TurnRecord struct {
	TurnID    int64
	SessionID string
	TurnIndex int
	TsMs      int64
	Face      string
	Direction int
	Notation  string
}

// Turn converts the record back to a cube turn.
func (r TurnRecord) Turn() (cube.Turn, error) {
	face, err := cube.ParseFace(r.Face)
	if err != nil {
		return cube.Turn{}, err
	}
	t := cube.Turn{Face: face, Dir: cube.Direction(r.Direction)}
	if err := t.Validate(); err != nil {
		return cube.Turn{}, fmt.Errorf("turn %d of %s: %w", r.TurnIndex, r.SessionID, err)
	}
	return t, nil
}

// TurnRepository provides CRUD operations for turns.
type TurnRepository struct {
	db *DB
}

// NewTurnRepository creates a new turn repository.
func NewTurnRepository(db *DB) *TurnRepository {
	return &TurnRepository{db: db}
}

// Create stores a turn and returns its ID.
func (r *TurnRepository) Create(sessionID string, turnIndex int, at time.Time, t cube.Turn) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO turns (session_id, turn_index, ts_ms, face, direction, notation)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sessionID, turnIndex, at.UnixMilli(), t.Face.String(), int(t.Dir), t.Notation())
	if err != nil {
		return 0, fmt.Errorf("failed to create turn: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get turn ID: %w", err)
	}

	return id, nil
}

// CreateBatch stores several turns in a single transaction.
func (r *TurnRepository) CreateBatch(sessionID string, turns []cube.Turn, startIndex int, at time.Time) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, t := range turns {
			_, err := tx.Exec(`
				INSERT INTO turns (session_id, turn_index, ts_ms, face, direction, notation)
				VALUES (?, ?, ?, ?, ?, ?)
			`, sessionID, startIndex+i, at.UnixMilli(), t.Face.String(), int(t.Dir), t.Notation())
			if err != nil {
				return fmt.Errorf("failed to create turn %d: %w", startIndex+i, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves all turns of a session in order.
func (r *TurnRepository) GetBySession(sessionID string) ([]TurnRecord, error) {
	rows, err := r.db.Query(`
		SELECT turn_id, session_id, turn_index, ts_ms, face, direction, notation
		FROM turns
		WHERE session_id = ?
		ORDER BY turn_index
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get turns: %w", err)
	}
	defer rows.Close()

	var turns []TurnRecord
	for rows.Next() {
		var t TurnRecord
		err := rows.Scan(&t.TurnID, &t.SessionID, &t.TurnIndex, &t.TsMs, &t.Face, &t.Direction, &t.Notation)
		if err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}

	return turns, rows.Err()
}

// GetNextIndex returns the next turn index for a session.
func (r *TurnRepository) GetNextIndex(sessionID string) (int, error) {
	var maxIndex int
	err := r.db.QueryRow(`
		SELECT COALESCE(MAX(turn_index), -1) FROM turns WHERE session_id = ?
	`, sessionID).Scan(&maxIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to get max turn index: %w", err)
	}
	return maxIndex + 1, nil
}

// ToTurns converts records to cube turns.
func ToTurns(records []TurnRecord) ([]cube.Turn, error) {
	turns := make([]cube.Turn, len(records))
	for i, r := range records {
		t, err := r.Turn()
		if err != nil {
			return nil, err
		}
		turns[i] = t
	}
	return turns, nil
}
