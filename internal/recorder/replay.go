package recorder

import (
	"fmt"

	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/storage"
)

// Recording is a stored session ready to be replayed.
type Recording struct {
	Session storage.Session
	Start   cube.Cube
	Turns   []cube.Turn
}

// Final returns the cube after every recorded turn.
func (r Recording) Final() (cube.Cube, error) {
	return r.Start.ApplyAll(r.Turns...)
}

// Load reads a session and its turns. An empty id loads the most recent
// session.
func Load(db *storage.DB, sessionID string) (Recording, error) {
	sessions := storage.NewSessionRepository(db)
	if sessionID == "" {
		last, err := sessions.GetLast()
		if err != nil {
			return Recording{}, err
		}
		sessionID = last.SessionID
	}
	return load(sessions, storage.NewTurnRepository(db), sessionID)
}

func load(sessions *storage.SessionRepository, turns *storage.TurnRepository, sessionID string) (Recording, error) {
	sess, err := sessions.Get(sessionID)
	if err != nil {
		return Recording{}, err
	}

	start, err := cube.Decode(sess.StartState)
	if err != nil {
		return Recording{}, fmt.Errorf("session %s start state: %w", sessionID, err)
	}

	records, err := turns.GetBySession(sessionID)
	if err != nil {
		return Recording{}, err
	}
	seq, err := storage.ToTurns(records)
	if err != nil {
		return Recording{}, err
	}

	return Recording{Session: *sess, Start: start, Turns: seq}, nil
}
