package gocube3d

// Script feeds a fixed turn sequence to a viewer one turn at a time, so
// every turn gets its own animation.
type Script struct {
	cmds []TurnCommand
	next int
}

// NewScript creates a script over cmds.
func NewScript(cmds []TurnCommand) *Script {
	return &Script{cmds: append([]TurnCommand(nil), cmds...)}
}

// Append adds turns to the end of the script.
func (s *Script) Append(cmds ...TurnCommand) {
	s.cmds = append(s.cmds, cmds...)
}

// Clear drops every turn not yet started.
func (s *Script) Clear() {
	s.cmds = s.cmds[:s.next]
}

// Feed starts the next turn when the viewer is idle. Call it once per tick
// before Tick. It reports whether a turn was started.
func (s *Script) Feed(v *Viewer) (bool, error) {
	if s.Done() || v.Animating() {
		return false, nil
	}
	cmd := s.cmds[s.next]
	s.next++
	if err := v.Turn(cmd); err != nil {
		return false, err
	}
	return true, nil
}

// Done reports whether every turn has been started.
func (s *Script) Done() bool {
	return s.next >= len(s.cmds)
}

// Remaining returns the number of turns not yet started.
func (s *Script) Remaining() int {
	return len(s.cmds) - s.next
}

// Run feeds and ticks until every turn has committed. It returns the number
// of ticks taken.
func (s *Script) Run(v *Viewer) (int, error) {
	ticks := 0
	for !s.Done() || v.Animating() {
		if _, err := s.Feed(v); err != nil {
			return ticks, err
		}
		v.Tick()
		ticks++
	}
	return ticks, nil
}
