package gocube3d

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/gocube3d/internal/anim"
	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/geom"
	"github.com/SeamusWaldron/gocube3d/internal/render"
)

// Viewer ties the cube state, the turn animation and the camera together.
// Feed it TurnCommand and CameraDelta input, call Tick once per frame and
// draw the polygons returned by Frame.
type Viewer struct {
	mu sync.Mutex

	ctrl     *anim.Controller
	renderer *render.Renderer
	log      logrus.FieldLogger

	home    render.Camera
	cam     render.Camera
	cubeRot geom.Quat

	// Callbacks
	cbMu     sync.RWMutex
	onCommit []func(Event)
}

// New creates a viewer. Without options it starts from a solved cube seen
// from the default camera, with the built-in permutation table.
func New(opts ...Option) (*Viewer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.log = l
	}
	if cfg.table == nil {
		cfg.table = cube.DefaultTable()
	}
	if err := cfg.table.Verify(); err != nil {
		return nil, fmt.Errorf("permutation table: %w", err)
	}
	if cfg.speed <= 0 {
		return nil, fmt.Errorf("turn speed must be positive, got %v", cfg.speed)
	}

	home := render.NewCamera(cfg.pitch, cfg.yaw)
	v := &Viewer{
		renderer: render.New(cfg.render, cfg.log),
		log:      cfg.log,
		home:     home,
		cam:      home,
		cubeRot:  geom.Quat{W: 1},
	}
	v.ctrl = anim.New(cfg.state,
		anim.WithSpeed(cfg.speed),
		anim.WithEpsilon(cfg.eps),
		anim.WithPolicy(cfg.policy),
		anim.WithTable(cfg.table),
		anim.WithLogger(cfg.log),
	)
	return v, nil
}

// OnCommit sets a callback fired once per committed turn, outside the
// viewer lock.
func (v *Viewer) OnCommit(fn func(Event)) {
	v.cbMu.Lock()
	defer v.cbMu.Unlock()
	v.onCommit = append(v.onCommit, fn)
}

// Turn requests a face turn. It returns ErrInvalidFace for an unknown face
// and ErrAnimationConflict when the turn can neither start nor be queued.
func (v *Viewer) Turn(cmd TurnCommand) error {
	t, err := cmd.Turn()
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ctrl.Request(t)
}

// Rotate turns the camera by d.
func (v *Viewer) Rotate(d CameraDelta) {
	if d.IsZero() {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cam = v.cam.Rotate(render.Delta{Pitch: d.Pitch, Yaw: d.Yaw})
}

// SnapCamera turns the camera to the nearest axis-aligned view.
func (v *Viewer) SnapCamera() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cam = v.cam.Snap()
}

// ResetCamera returns the camera to its starting view.
func (v *Viewer) ResetCamera() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cam = v.home
}

// SetCubeOrientation sets the physical orientation of the cube, e.g. as
// reported by a smart cube. It is applied on top of the camera.
func (v *Viewer) SetCubeOrientation(q geom.Quat) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cubeRot = q
}

// SetViewport changes the output size in screen units.
func (v *Viewer) SetViewport(width, height float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.renderer.SetViewport(geom.Viewport{Width: width, Height: height})
}

// Tick advances the turn in flight by one step. It returns the commit event
// when this tick completed a turn.
func (v *Viewer) Tick() (Event, bool) {
	v.mu.Lock()
	ev, ok := v.ctrl.Step()
	v.mu.Unlock()

	if ok {
		v.notify(ev)
	}
	return ev, ok
}

// Finish completes the turn in flight at once.
func (v *Viewer) Finish() (Event, bool) {
	v.mu.Lock()
	ev, ok := v.ctrl.Finish()
	v.mu.Unlock()

	if ok {
		v.notify(ev)
	}
	return ev, ok
}

func (v *Viewer) notify(ev Event) {
	v.cbMu.RLock()
	callbacks := v.onCommit
	v.cbMu.RUnlock()
	for _, fn := range callbacks {
		fn(ev)
	}
}

// Frame renders the current state. The frame is complete even when the
// error wraps ErrDegenerateProjection.
func (v *Viewer) Frame() (Frame, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	var active *anim.Active
	if a, ok := v.ctrl.Active(); ok {
		active = &a
	}
	return v.renderer.Render(v.ctrl.Cube(), v.camera(), active)
}

func (v *Viewer) camera() render.Camera {
	if v.cubeRot == (geom.Quat{W: 1}) {
		return v.cam
	}
	return v.cam.WithCubeRotation(v.cubeRot)
}

// Camera returns the effective camera, including the cube orientation.
func (v *Viewer) Camera() render.Camera {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.camera()
}

// Cube returns the committed cube state.
func (v *Viewer) Cube() cube.Cube {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ctrl.Cube()
}

// Animating reports whether a turn is in flight.
func (v *Viewer) Animating() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ctrl.State() == anim.Animating
}

// Active returns the turn in flight, if any.
func (v *Viewer) Active() (anim.Active, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ctrl.Active()
}

// Progress returns the layer-by-layer progress of the committed state.
func (v *Viewer) Progress() cube.Progress {
	return v.Cube().Progress()
}

// Abort discards the turn in flight and any queued turn.
func (v *Viewer) Abort() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ctrl.Abort()
}

// Reset aborts any animation and returns to a solved cube.
func (v *Viewer) Reset() {
	v.ResetTo(cube.New())
}

// ResetTo aborts any animation and replaces the committed state.
func (v *Viewer) ResetTo(c cube.Cube) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ctrl.Reset(c)
	v.log.Info("cube reset")
}
