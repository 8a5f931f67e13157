package cube

// Tracker follows a cube through a sequence of turns and reports newly
// reached layer-by-layer phases.
type Tracker struct {
	cube          Cube
	table         *Table
	turns         int
	lastPhase     Phase
	highestPhase  Phase // monotonic, never goes backwards
	phaseCallback func(phase Phase)
}

// NewTracker creates a tracker starting from a solved state with no phase
// reached yet, so the first solve reports every phase.
func NewTracker() *Tracker {
	t := &Tracker{table: DefaultTable()}
	t.Reset()
	return t
}

// NewTrackerFrom creates a tracker starting from an arbitrary state. Phases
// the state already satisfies count as reached.
func NewTrackerFrom(c Cube, table *Table) *Tracker {
	if table == nil {
		table = DefaultTable()
	}
	p := c.DetectPhase()
	return &Tracker{cube: c, table: table, lastPhase: p, highestPhase: p}
}

// SetPhaseCallback sets a callback fired when a new highest phase is reached.
func (t *Tracker) SetPhaseCallback(cb func(phase Phase)) {
	t.phaseCallback = cb
}

// Reset returns the tracker to a solved cube. The highest phase restarts at
// Scrambled so the next solve reports every phase again.
func (t *Tracker) Reset() {
	t.cube = New()
	t.turns = 0
	t.lastPhase = PhaseSolved
	t.highestPhase = PhaseScrambled
}

// Apply applies a turn and checks for phase transitions. An invalid turn
// leaves the tracker unchanged.
func (t *Tracker) Apply(turn Turn) error {
	next, err := t.table.Apply(t.cube, turn)
	if err != nil {
		return err
	}
	t.cube = next
	t.turns++
	t.checkPhaseTransition()
	return nil
}

// Sync replaces the tracked state, e.g. after the viewer applied a turn on
// its own copy.
func (t *Tracker) Sync(c Cube) {
	t.cube = c
	t.turns++
	t.checkPhaseTransition()
}

func (t *Tracker) checkPhaseTransition() {
	current := t.cube.DetectPhase()
	t.lastPhase = current

	if current > t.highestPhase {
		t.highestPhase = current
		if t.phaseCallback != nil {
			t.phaseCallback(current)
		}
	}
}

// CurrentPhase returns the phase of the current state. It may go backwards.
func (t *Tracker) CurrentPhase() Phase {
	return t.lastPhase
}

// HighestPhase returns the highest phase reached.
func (t *Tracker) HighestPhase() Phase {
	return t.highestPhase
}

// Turns returns how many turns have been applied since the last reset.
func (t *Tracker) Turns() int {
	return t.turns
}

// Cube returns the tracked state.
func (t *Tracker) Cube() Cube {
	return t.cube
}
