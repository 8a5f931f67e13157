// Package anim drives face turns as smooth rotations.
//
// A Controller is a two-state machine. While Idle it accepts a turn and
// starts animating it; every Step advances the rotation of the moving layer
// by at most the configured speed, and once the remaining angle is within
// epsilon of zero the turn is committed to the cube state exactly once.
// At most one turn animates at a time.
package anim

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/geom"
)

// ErrAnimationConflict is returned when a turn is requested while another
// is in flight and the policy cannot accept it.
var ErrAnimationConflict = errors.New("anim: animation conflict")

// State is the controller state.
type State int

const (
	Idle State = iota
	Animating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	default:
		return "unknown"
	}
}

// Policy decides what happens to a turn requested mid-animation.
type Policy int

const (
	// Reject refuses the turn with ErrAnimationConflict.
	Reject Policy = iota
	// QueueOne keeps a single pending turn and starts it after the current
	// one commits. Further requests are refused.
	QueueOne
)

func (p Policy) String() string {
	switch p {
	case Reject:
		return "reject"
	case QueueOne:
		return "queue"
	default:
		return "unknown"
	}
}

// ParsePolicy parses "reject" or "queue".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "reject":
		return Reject, nil
	case "queue", "queue_one":
		return QueueOne, nil
	}
	return Reject, fmt.Errorf("anim: unknown queue policy %q", s)
}

// Defaults.
const (
	DefaultSpeed   = 9.0  // degrees per step
	DefaultEpsilon = 0.01 // degrees
)

// Active describes the turn in flight.
type Active struct {
	Turn      cube.Turn
	Axis      geom.Vec3 // outward normal of the turning face
	Total     float64   // degrees, signed
	Remaining float64   // degrees, signed
	Rotation  geom.Mat3 // accumulated rotation of the moving layer
}

// Angle returns how far the layer has turned so far.
func (a Active) Angle() float64 {
	return a.Total - a.Remaining
}

// Event reports a committed turn.
type Event struct {
	Turn cube.Turn
	// Cube is the state after the turn.
	Cube cube.Cube
	// Rotation is the exact final rotation of the moving layer.
	Rotation geom.Mat3
}

// Option configures a Controller.
type Option func(*Controller)

// WithSpeed sets the step size in degrees. Non-positive values are ignored.
func WithSpeed(deg float64) Option {
	return func(c *Controller) {
		if deg > 0 {
			c.speed = deg
		}
	}
}

// WithEpsilon sets the commit threshold in degrees.
func WithEpsilon(deg float64) Option {
	return func(c *Controller) {
		if deg > 0 {
			c.epsilon = deg
		}
	}
}

// WithPolicy sets the conflict policy.
func WithPolicy(p Policy) Option {
	return func(c *Controller) {
		c.policy = p
	}
}

// WithTable sets the permutation table used at commit.
func WithTable(t *cube.Table) Option {
	return func(c *Controller) {
		if t != nil {
			c.table = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller owns the logical cube state and the single in-flight turn.
// It is not safe for concurrent use; drive it from one loop.
type Controller struct {
	speed   float64
	epsilon float64
	policy  Policy
	table   *cube.Table
	log     logrus.FieldLogger

	state    cube.Cube
	active   *Active
	pending  *cube.Turn
	onCommit []func(Event)
}

// New creates an idle controller holding state.
func New(state cube.Cube, opts ...Option) *Controller {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Controller{
		speed:   DefaultSpeed,
		epsilon: DefaultEpsilon,
		policy:  QueueOne,
		table:   cube.DefaultTable(),
		log:     discard,
		state:   state,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnCommit registers a callback fired after every commit.
func (c *Controller) OnCommit(fn func(Event)) {
	c.onCommit = append(c.onCommit, fn)
}

// State returns Idle or Animating.
func (c *Controller) State() State {
	if c.active != nil {
		return Animating
	}
	return Idle
}

// Cube returns the committed cube state. It never includes a turn in flight.
func (c *Controller) Cube() cube.Cube {
	return c.state
}

// Active returns the turn in flight, if any.
func (c *Controller) Active() (Active, bool) {
	if c.active == nil {
		return Active{}, false
	}
	return *c.active, true
}

// Pending returns the queued turn, if any.
func (c *Controller) Pending() (cube.Turn, bool) {
	if c.pending == nil {
		return cube.Turn{}, false
	}
	return *c.pending, true
}

// Request asks for a turn. An idle controller starts animating it at once.
// While animating, the turn is queued or refused according to the policy.
// An invalid turn is refused without any state change.
func (c *Controller) Request(t cube.Turn) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if c.active == nil {
		c.start(t)
		return nil
	}
	if c.policy == QueueOne && c.pending == nil {
		c.pending = &t
		c.log.WithField("turn", t.Notation()).Debug("turn queued")
		return nil
	}

	c.log.WithFields(logrus.Fields{
		"turn":   t.Notation(),
		"active": c.active.Turn.Notation(),
		"policy": c.policy.String(),
	}).Warn("turn refused while animating")
	return fmt.Errorf("%w: %v requested while %v in flight", ErrAnimationConflict, t, c.active.Turn)
}

func (c *Controller) start(t cube.Turn) {
	angle := t.Angle()
	c.active = &Active{
		Turn:      t,
		Axis:      geom.Vec3(t.Face.Normal()),
		Total:     angle,
		Remaining: angle,
		Rotation:  geom.Identity(),
	}
	c.log.WithField("turn", t.Notation()).Debug("turn started")
}

// Step advances the turn in flight by one step. It returns the commit event
// when this step completed the turn. Stepping an idle controller does
// nothing.
func (c *Controller) Step() (Event, bool) {
	a := c.active
	if a == nil {
		return Event{}, false
	}

	delta := math.Copysign(math.Min(c.speed, math.Abs(a.Remaining)), a.Remaining)
	a.Rotation = geom.Compose(geom.RotationMatrix(a.Axis, delta), a.Rotation)
	a.Remaining -= delta

	if math.Abs(a.Remaining) >= c.epsilon {
		return Event{}, false
	}
	return c.commit(), true
}

// Finish completes the turn in flight immediately. The queued turn, if any,
// is started but not finished.
func (c *Controller) Finish() (Event, bool) {
	if c.active == nil {
		return Event{}, false
	}
	c.active.Rotation = geom.RotationMatrix(c.active.Axis, c.active.Total)
	c.active.Remaining = 0
	return c.commit(), true
}

func (c *Controller) commit() Event {
	a := c.active
	next, err := c.table.Apply(c.state, a.Turn)
	if err != nil {
		// Turns are validated on request, so this means a broken table.
		c.log.WithError(err).Error("commit failed")
		c.active = nil
		return Event{Turn: a.Turn, Cube: c.state, Rotation: geom.Identity()}
	}

	c.state = next
	ev := Event{
		Turn:     a.Turn,
		Cube:     next,
		Rotation: geom.SnapRotation(a.Rotation),
	}
	c.active = nil
	c.log.WithField("turn", a.Turn.Notation()).Debug("turn committed")

	for _, fn := range c.onCommit {
		fn(ev)
	}

	if c.pending != nil {
		t := *c.pending
		c.pending = nil
		c.start(t)
	}
	return ev
}

// Abort discards the turn in flight and any queued turn. The committed
// state is left untouched. It reports whether anything was discarded.
func (c *Controller) Abort() bool {
	if c.active == nil && c.pending == nil {
		return false
	}
	fields := logrus.Fields{}
	if c.active != nil {
		fields["turn"] = c.active.Turn.Notation()
		fields["angle"] = c.active.Angle()
	}
	c.active = nil
	c.pending = nil
	c.log.WithFields(fields).Info("animation aborted")
	return true
}

// Reset aborts any animation and replaces the committed state.
func (c *Controller) Reset(state cube.Cube) {
	c.Abort()
	c.state = state
}
