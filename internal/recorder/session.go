package recorder

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/gocube3d/internal/anim"
	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/storage"
)

var (
	ErrSessionActive   = errors.New("recorder: session already in progress")
	ErrNoSession       = errors.New("recorder: no session in progress")
	ErrSessionFinished = errors.New("recorder: session already ended")
)

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session records committed turns of one viewing session.
type Session struct {
	stateFile *StateFile
	log       logrus.FieldLogger
	now       func() time.Time

	mu        sync.RWMutex
	state     SessionState
	sessionID string
	startTime time.Time
	turnIndex int
	tracker   *cube.Tracker

	// Repositories
	sessionRepo *storage.SessionRepository
	turnRepo    *storage.TurnRepository
	phaseRepo   *storage.PhaseRepository

	// Callbacks
	onPhase func(cube.Phase)
}

// NewSession creates a new session manager. stateFile and log may be nil.
func NewSession(db *storage.DB, stateFile *StateFile, log logrus.FieldLogger) *Session {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Session{
		stateFile:   stateFile,
		log:         log,
		now:         time.Now,
		state:       StateIdle,
		sessionRepo: storage.NewSessionRepository(db),
		turnRepo:    storage.NewTurnRepository(db),
		phaseRepo:   storage.NewPhaseRepository(db),
	}
}

// SetPhaseCallback sets the callback for newly reached phases.
func (s *Session) SetPhaseCallback(cb func(cube.Phase)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPhase = cb
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SessionID returns the current session ID.
func (s *Session) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// TurnCount returns the number of turns recorded so far.
func (s *Session) TurnCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turnIndex
}

// HighestPhase returns the best phase reached in this session.
func (s *Session) HighestPhase() cube.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tracker == nil {
		return cube.PhaseScrambled
	}
	return s.tracker.HighestPhase()
}

// ElapsedMs returns the elapsed time since session start in milliseconds.
func (s *Session) ElapsedMs() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateRecording {
		return 0
	}
	return s.now().Sub(s.startTime).Milliseconds()
}

func newTracker(start cube.Cube) *cube.Tracker {
	// Starting solved means the phases are still to be earned.
	if start.IsSolved() {
		return cube.NewTracker()
	}
	return cube.NewTrackerFrom(start, nil)
}

// Start starts a new session from the given cube.
func (s *Session) Start(source string, start cube.Cube, notes string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", ErrSessionActive
	}

	sessionID, err := s.sessionRepo.Create(source, start.Encode(), notes)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.sessionID = sessionID
	s.startTime = s.now()
	s.turnIndex = 0
	s.tracker = newTracker(start)
	s.state = StateRecording

	if s.stateFile != nil {
		if err := s.stateFile.SetActiveSession(sessionID); err != nil {
			s.log.WithError(err).Warn("failed to update state file")
		}
	}
	s.log.WithFields(logrus.Fields{"session": sessionID, "source": source}).Info("session started")

	return sessionID, nil
}

// Record stores a committed turn and any phase it completes. Events
// arriving outside a session are ignored.
func (s *Session) Record(ev anim.Event) error {
	s.mu.Lock()
	if s.state != StateRecording {
		s.mu.Unlock()
		return nil
	}

	at := s.now()
	if _, err := s.turnRepo.Create(s.sessionID, s.turnIndex, at, ev.Turn); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to store turn: %w", err)
	}
	s.turnIndex++

	before := s.tracker.HighestPhase()
	s.tracker.Sync(ev.Cube)
	reached := s.tracker.HighestPhase()

	var marks []cube.Phase
	for p := before + 1; p <= reached; p++ {
		if _, err := s.phaseRepo.CreatePhaseMark(s.sessionID, at, p.String(), s.turnIndex); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("failed to mark phase: %w", err)
		}
		marks = append(marks, p)
	}
	cb := s.onPhase
	s.mu.Unlock()

	for _, p := range marks {
		s.log.WithField("phase", p.String()).Info("phase reached")
		if cb != nil {
			cb(p)
		}
	}
	return nil
}

// Hook returns a commit callback that records every event and logs
// failures.
func (s *Session) Hook() func(anim.Event) {
	return func(ev anim.Event) {
		if err := s.Record(ev); err != nil {
			s.log.WithError(err).WithField("turn", ev.Turn.Notation()).Error("failed to record turn")
		}
	}
}

// End ends the current session.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNoSession
	}

	final := s.tracker.Cube().Encode()
	highest := s.tracker.HighestPhase().String()
	if err := s.sessionRepo.End(s.sessionID, final, highest); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	s.state = StateEnded

	if s.stateFile != nil {
		if err := s.stateFile.ClearActiveSession(final); err != nil {
			s.log.WithError(err).Warn("failed to update state file")
		}
	}
	s.log.WithFields(logrus.Fields{
		"session": s.sessionID,
		"turns":   s.turnIndex,
		"highest": highest,
	}).Info("session ended")

	return nil
}

// Resume continues an interrupted session. It returns the cube state the
// session had reached.
func (s *Session) Resume(sessionID string) (cube.Cube, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return cube.Cube{}, ErrSessionActive
	}

	loaded, err := load(s.sessionRepo, s.turnRepo, sessionID)
	if err != nil {
		return cube.Cube{}, err
	}
	if loaded.Session.EndedAt != nil {
		return cube.Cube{}, fmt.Errorf("session %s: %w", sessionID, ErrSessionFinished)
	}

	current, err := loaded.Start.ApplyAll(loaded.Turns...)
	if err != nil {
		return cube.Cube{}, err
	}

	s.sessionID = sessionID
	s.startTime = loaded.Session.StartedAt
	s.turnIndex = len(loaded.Turns)
	s.tracker = newTracker(loaded.Start)
	for _, t := range loaded.Turns {
		if err := s.tracker.Apply(t); err != nil {
			return cube.Cube{}, err
		}
	}
	s.state = StateRecording

	s.log.WithFields(logrus.Fields{"session": sessionID, "turns": s.turnIndex}).Info("session resumed")
	return current, nil
}
