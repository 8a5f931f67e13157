package recorder

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube3d/internal/anim"
	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/storage"
)

func setup(t *testing.T) (*storage.DB, *StateFile) {
	t.Helper()
	dir := t.TempDir()
	db, err := storage.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sf, err := NewStateFile(DefaultStatePath(dir))
	require.NoError(t, err)
	return db, sf
}

// drive runs turns through a controller wired to the session, the same
// way the viewer does.
func drive(t *testing.T, s *Session, start cube.Cube, notation string) cube.Cube {
	t.Helper()
	turns, err := cube.ParseTurns(notation)
	require.NoError(t, err)

	ctrl := anim.New(start, anim.WithPolicy(anim.Reject))
	ctrl.OnCommit(s.Hook())
	for _, turn := range turns {
		require.NoError(t, ctrl.Request(turn))
		_, ok := ctrl.Finish()
		require.True(t, ok)
	}
	return ctrl.Cube()
}

func TestRecordAndLoad(t *testing.T) {
	db, sf := setup(t)
	s := NewSession(db, sf, nil)

	start, err := cube.Scramble("F2 L")
	require.NoError(t, err)
	id, err := s.Start(storage.SourcePlay, start, "")
	require.NoError(t, err)
	assert.Equal(t, StateRecording, s.State())
	assert.Equal(t, id, sf.ActiveSessionID())

	final := drive(t, s, start, "R U R' U'")
	assert.Equal(t, 4, s.TurnCount())
	require.NoError(t, s.End())
	assert.Equal(t, StateEnded, s.State())
	assert.False(t, sf.HasActiveSession())
	assert.Equal(t, final.Encode(), sf.State().LastCube)

	rec, err := Load(db, id)
	require.NoError(t, err)
	assert.Equal(t, start, rec.Start)
	assert.Equal(t, "R U R' U'", cube.FormatTurns(rec.Turns))
	got, err := rec.Final()
	require.NoError(t, err)
	assert.Equal(t, final, got)

	last, err := Load(db, "")
	require.NoError(t, err)
	assert.Equal(t, id, last.Session.SessionID)
}

func TestPhasesMarkedOnce(t *testing.T) {
	db, sf := setup(t)
	s := NewSession(db, sf, nil)
	var reached []cube.Phase
	s.SetPhaseCallback(func(p cube.Phase) { reached = append(reached, p) })

	id, err := s.Start(storage.SourcePlay, cube.New(), "")
	require.NoError(t, err)

	// Scramble and undo twice; the second solve reports nothing new.
	drive(t, s, cube.New(), "R U R' U' U R U' R' R U R' U' U R U' R'")
	require.NoError(t, s.End())

	assert.Equal(t, cube.PhaseSolved, s.HighestPhase())
	require.NotEmpty(t, reached)
	assert.Equal(t, cube.PhaseSolved, reached[len(reached)-1])
	seen := map[cube.Phase]bool{}
	for _, p := range reached {
		assert.False(t, seen[p], "phase %v reported twice", p)
		seen[p] = true
	}

	marks, err := storage.NewPhaseRepository(db).GetPhaseMarks(id)
	require.NoError(t, err)
	assert.Len(t, marks, len(reached))

	sess, err := storage.NewSessionRepository(db).Get(id)
	require.NoError(t, err)
	require.NotNil(t, sess.HighestPhase)
	assert.Equal(t, "solved", *sess.HighestPhase)
}

func TestSessionStateErrors(t *testing.T) {
	db, _ := setup(t)
	s := NewSession(db, nil, nil)

	assert.ErrorIs(t, s.End(), ErrNoSession)
	assert.NoError(t, s.Record(anim.Event{}), "events outside a session are ignored")

	_, err := s.Start(storage.SourcePlay, cube.New(), "")
	require.NoError(t, err)
	_, err = s.Start(storage.SourcePlay, cube.New(), "")
	assert.ErrorIs(t, err, ErrSessionActive)
}

func TestResume(t *testing.T) {
	db, sf := setup(t)
	first := NewSession(db, sf, nil)
	id, err := first.Start(storage.SourceMirror, cube.New(), "")
	require.NoError(t, err)
	want := drive(t, first, cube.New(), "F B'")

	// A new process picks the session up from the state file.
	sf2, err := NewStateFile(sf.path)
	require.NoError(t, err)
	require.True(t, sf2.HasActiveSession())

	second := NewSession(db, sf2, nil)
	got, err := second.Resume(sf2.ActiveSessionID())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 2, second.TurnCount())

	drive(t, second, got, "D")
	require.NoError(t, second.End())

	rec, err := Load(db, id)
	require.NoError(t, err)
	assert.Equal(t, "F B' D", cube.FormatTurns(rec.Turns))

	_, err = NewSession(db, nil, nil).Resume(id)
	assert.ErrorIs(t, err, ErrSessionFinished)
}

func TestResumeEarnsRemainingPhases(t *testing.T) {
	db, sf := setup(t)
	first := NewSession(db, sf, nil)
	id, err := first.Start(storage.SourcePlay, cube.New(), "")
	require.NoError(t, err)
	mid := drive(t, first, cube.New(), "R U")

	second := NewSession(db, sf, nil)
	got, err := second.Resume(id)
	require.NoError(t, err)
	require.Equal(t, mid, got)
	drive(t, second, got, "U' R'")
	require.NoError(t, second.End())

	marks, err := storage.NewPhaseRepository(db).GetPhaseMarks(id)
	require.NoError(t, err)
	require.NotEmpty(t, marks)
	keys := map[string]bool{}
	for _, m := range marks {
		assert.False(t, keys[m.PhaseKey], "phase %s marked twice", m.PhaseKey)
		keys[m.PhaseKey] = true
	}
	assert.True(t, keys[cube.PhaseSolved.String()])
}

func TestHookLogsFailures(t *testing.T) {
	db, _ := setup(t)
	logger, hook := test.NewNullLogger()
	s := NewSession(db, nil, logger)
	_, err := s.Start(storage.SourcePlay, cube.New(), "")
	require.NoError(t, err)

	db.Close()
	s.Hook()(anim.Event{Turn: cube.Turn{Face: cube.R, Dir: cube.CW}, Cube: cube.New()})
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "failed to record turn", hook.LastEntry().Message)
}

func TestStateFileDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "state.json")
	sf, err := NewStateFile(path)
	require.NoError(t, err)
	require.NoError(t, sf.SetLastDevice("AA:BB", "GoCube_1"))

	again, err := NewStateFile(path)
	require.NoError(t, err)
	assert.Equal(t, "AA:BB", again.LastDeviceAddress())
	assert.Equal(t, "GoCube_1", again.State().LastDeviceName)
}
