// Package gocube3d provides an animated 3D Rubik's cube viewer core.
//
// It keeps the logical facelet state of a 3x3x3 cube, animates face turns
// one step per frame and produces depth-sorted screen polygons that any
// drawing backend can paint in order.
//
// # Features
//
//   - Facelet cube model with a verified permutation table
//   - Turn animation with a reject or queue-one policy
//   - Perspective projection with painter's ordering and backface culling
//   - Free camera with snap to the nearest axis-aligned view
//   - Layer-by-layer progress detection
//
// # Quick Start
//
// Drive a viewer from an input loop:
//
//	v, err := gocube3d.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v.OnCommit(func(ev gocube3d.Event) {
//	    fmt.Println("Turn:", ev.Turn.Notation())
//	})
//
//	_ = v.Turn(gocube3d.TurnCommand{Face: gocube3d.Front, Clockwise: true})
//
//	for {
//	    v.Rotate(gocube3d.CameraDelta{Yaw: 1})
//	    v.Tick()
//	    frame, _ := v.Frame()
//	    draw(frame.Polygons)
//	}
//
// # Predefined Turns
//
// The package provides predefined turn commands for convenience:
//
//	gocube3d.R      // Right clockwise
//	gocube3d.RPrime // Right counter-clockwise
//	gocube3d.R2     // Right 180
//	// ... and similarly for L, U, D, F, B
//
// # Errors
//
// Turn returns ErrInvalidFace for an unknown face and ErrAnimationConflict
// when a turn is already in flight and no queue slot is free. Frame returns a
// complete frame together with ErrDegenerateProjection when a vertex had to
// be clamped.
package gocube3d
