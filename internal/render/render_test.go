package render

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/gocube3d/internal/anim"
	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/geom"
)

// The permutation table is built from adjacency strips; this checks it
// against the geometry by rotating every sticker of the turning layer about
// the face normal and looking where it lands.
func TestTableMatchesGeometry(t *testing.T) {
	for _, face := range cube.Faces {
		for _, dir := range []cube.Direction{cube.CW, cube.CCW, cube.Half} {
			turn := cube.Turn{Face: face, Dir: dir}
			perm, err := cube.DefaultTable().Perm(turn)
			require.NoError(t, err)

			axis := geom.Vec3(face.Normal())
			for slot := 0; slot < cube.NumFacelets; slot++ {
				if !inLayer(CubiePosition(slot), face) {
					assert.Equal(t, slot, perm[slot], "%v moves slot %d outside its layer", turn, slot)
					continue
				}
				dst := perm[slot]
				center := geom.SnapVec(geom.RotatePoint(StickerCenter(slot).Mul(2), axis, turn.Angle())).Mul(0.5)
				normal := geom.SnapVec(geom.RotatePoint(StickerNormal(slot), axis, turn.Angle()))
				assert.Equal(t, StickerCenter(dst), center, "%v slot %d", turn, slot)
				assert.Equal(t, StickerNormal(dst), normal, "%v slot %d", turn, slot)
			}
		}
	}
}

func TestCubies(t *testing.T) {
	cubies := Cubies(cube.New(), nil)
	require.Len(t, cubies, 26)

	bySize := map[int]int{}
	total := 0
	for _, cb := range cubies {
		bySize[len(cb.Stickers)]++
		total += len(cb.Stickers)
		assert.Equal(t, geom.Identity(), cb.Orientation)
		assert.False(t, cb.Moving)
		for _, s := range cb.Stickers {
			assert.Equal(t, cb.Position, CubiePosition(s.Slot))
		}
	}
	assert.Equal(t, cube.NumFacelets, total)
	assert.Equal(t, map[int]int{1: 6, 2: 12, 3: 8}, bySize)
}

func TestCubiesCarryActiveRotation(t *testing.T) {
	rot := geom.RotationMatrix(geom.AxisX, -30)
	active := &anim.Active{Turn: cube.Turn{Face: cube.R, Dir: cube.CW}, Rotation: rot}
	moving := 0
	for _, cb := range Cubies(cube.New(), active) {
		if cb.Position[0] == 1 {
			moving++
			assert.True(t, cb.Moving)
			assert.Equal(t, rot, cb.Orientation)
		} else {
			assert.False(t, cb.Moving)
		}
	}
	assert.Equal(t, 9, moving)
}

func countKinds(f Frame) (bodies, stickers int) {
	for _, p := range f.Polygons {
		if p.Kind == KindBody {
			bodies++
		} else {
			stickers++
		}
	}
	return bodies, stickers
}

func TestRenderDefaultViewShowsThreeFaces(t *testing.T) {
	r := New(DefaultConfig(), nil)
	frame, err := r.Render(cube.New(), DefaultCamera(), nil)
	require.NoError(t, err)

	_, stickers := countKinds(frame)
	assert.Equal(t, 27, stickers)

	seen := map[cube.Face]int{}
	for _, p := range frame.Polygons {
		if p.Kind == KindSticker {
			f, _, _ := cube.Position(p.Slot)
			seen[f]++
		}
	}
	assert.Equal(t, map[cube.Face]int{cube.U: 9, cube.F: 9, cube.R: 9}, seen)
}

func TestRenderIsDepthSorted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BackfaceCulling = false
	frame, err := New(cfg, nil).Render(cube.New(), DefaultCamera().Rotate(Delta{Pitch: 12, Yaw: 77}), nil)
	require.NoError(t, err)
	require.NotEmpty(t, frame.Polygons)
	for i := 1; i < len(frame.Polygons); i++ {
		assert.GreaterOrEqual(t, frame.Polygons[i-1].Depth, frame.Polygons[i].Depth)
	}
}

func TestRenderWithoutCulling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BackfaceCulling = false
	r := New(cfg, nil)

	frame, err := r.Render(cube.New(), DefaultCamera(), nil)
	require.NoError(t, err)
	bodies, stickers := countKinds(frame)
	assert.Equal(t, 54, stickers)
	assert.Equal(t, 54, bodies)

	// A turning layer uncovers 9 faces on its own side of the cut and 8 on
	// the other; the hidden core has no cubie.
	active := &anim.Active{
		Turn:     cube.Turn{Face: cube.F, Dir: cube.CW},
		Rotation: geom.RotationMatrix(geom.AxisZ, -45),
	}
	frame, err = r.Render(cube.New(), DefaultCamera(), active)
	require.NoError(t, err)
	bodies, stickers = countKinds(frame)
	assert.Equal(t, 54, stickers)
	assert.Equal(t, 54+17, bodies)
}

func stickerKeys(t *testing.T, f Frame) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, p := range f.Polygons {
		if p.Kind != KindSticker {
			continue
		}
		// A turned quad lists the same corners starting elsewhere.
		corners := make([]string, 0, 4)
		for _, v := range p.Vertices {
			corners = append(corners, fmt.Sprintf("(%.4f,%.4f)", v[0], v[1]))
		}
		sort.Strings(corners)
		out[strings.Join(corners, "")] = p.Color.Hex()
	}
	return out
}

func TestFullyTurnedLayerMatchesCommittedState(t *testing.T) {
	r := New(DefaultConfig(), nil)
	cam := DefaultCamera()

	for _, face := range cube.Faces {
		turn := cube.Turn{Face: face, Dir: cube.CW}
		active := &anim.Active{
			Turn:     turn,
			Rotation: geom.RotationMatrix(geom.Vec3(face.Normal()), turn.Angle()),
		}
		start, err := cube.Scramble("R U F' D2 L B'")
		require.NoError(t, err)
		animated, err := r.Render(start, cam, active)
		require.NoError(t, err)

		committed, err := start.Apply(turn)
		require.NoError(t, err)
		still, err := r.Render(committed, cam, nil)
		require.NoError(t, err)

		assert.Equal(t, stickerKeys(t, still), stickerKeys(t, animated), "%v", turn)
	}
}

func TestBackfaceCullingMatchesNormals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shading = false
	cam := DefaultCamera().Rotate(Delta{Pitch: -50, Yaw: 100})
	frame, err := New(cfg, nil).Render(cube.New(), cam, nil)
	require.NoError(t, err)

	eye := geom.Vec3{0, 0, (cfg.FocalLength + cfg.DepthOffset) / cfg.Scale}
	for _, p := range frame.Polygons {
		if p.Kind != KindSticker {
			continue
		}
		c := cam.toCamera(StickerCenter(p.Slot))
		n := cam.toCamera(StickerNormal(p.Slot))
		assert.Greater(t, n.Dot(eye.Sub(c)), 0.0, "slot %d drawn while facing away", p.Slot)
	}
}

func TestRenderUnshadedUsesPalette(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shading = false
	frame, err := New(cfg, nil).Render(cube.New(), DefaultCamera(), nil)
	require.NoError(t, err)
	for _, p := range frame.Polygons {
		if p.Kind == KindBody {
			assert.Equal(t, cfg.Palette.Body, p.Color)
			continue
		}
		f, _, _ := cube.Position(p.Slot)
		assert.Equal(t, cfg.Palette.Color(f.SolvedColor()), p.Color)
	}
}

func TestRenderDegenerateProjection(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	cfg := DefaultConfig()
	cfg.FocalLength = 50
	cfg.DepthOffset = 0
	cfg.BackfaceCulling = false
	frame, err := New(cfg, logger).Render(cube.New(), DefaultCamera(), nil)
	assert.ErrorIs(t, err, geom.ErrDegenerateProjection)
	assert.NotEmpty(t, frame.Polygons)
	assert.Positive(t, frame.Clamped)
	for _, p := range frame.Polygons {
		for _, v := range p.Vertices {
			assert.False(t, math.IsNaN(v[0]) || math.IsInf(v[0], 0))
		}
	}
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "projection clamped", hook.LastEntry().Message)
}

func TestCamera(t *testing.T) {
	cam := DefaultCamera()
	assert.Equal(t, cam, cam.Rotate(Delta{}))
	assert.True(t, geom.IsRotation(cam.Orientation, 1e-9))

	full := cam
	for i := 0; i < 4; i++ {
		full = full.Rotate(Delta{Yaw: 90})
	}
	assert.True(t, geom.ApproxEqualMat(full.Orientation, cam.Orientation, 1e-9))

	snapped := cam.Rotate(Delta{Pitch: -25, Yaw: 40}).Snap()
	assert.Equal(t, geom.Identity(), snapped.Orientation)

	q := geom.Quat{W: math.Sqrt(0.5), V: geom.Vec3{0, math.Sqrt(0.5), 0}}
	turned := NewCamera(0, 0).WithCubeRotation(q)
	assert.True(t, geom.ApproxEqualMat(turned.Orientation, geom.RotationMatrix(geom.AxisY, 90), 1e-9))
}

func TestPaletteOverrides(t *testing.T) {
	p, err := DefaultPalette().WithOverrides(map[string]string{"White": "#eeeeee", "body": "#000000"})
	require.NoError(t, err)
	assert.Equal(t, "#eeeeee", p.Hex(cube.White))
	assert.Equal(t, "#000000", p.Body.Hex())
	assert.Equal(t, DefaultPalette().Hex(cube.Red), p.Hex(cube.Red))

	_, err = DefaultPalette().WithOverrides(map[string]string{"purple": "#ff00ff"})
	assert.Error(t, err)
	_, err = DefaultPalette().WithOverrides(map[string]string{"red": "nope"})
	assert.Error(t, err)
}
