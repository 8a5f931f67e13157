package cube

import "fmt"

// Perm is a facelet permutation: Perm[i] is the slot the facelet in slot i
// moves to.
type Perm [NumFacelets]int

// IdentityPerm returns the permutation that moves nothing.
func IdentityPerm() Perm {
	var p Perm
	for i := range p {
		p[i] = i
	}
	return p
}

// Apply returns c with its facelets moved by p.
func (p Perm) Apply(c Cube) Cube {
	var out Cube
	for i, dst := range p {
		out.facelets[dst] = c.facelets[i]
	}
	return out
}

// Inverse returns the permutation that undoes p.
func (p Perm) Inverse() Perm {
	var inv Perm
	for i, dst := range p {
		inv[dst] = i
	}
	return inv
}

// Then returns the permutation p followed by q.
func (p Perm) Then(q Perm) Perm {
	var out Perm
	for i, dst := range p {
		out[i] = q[dst]
	}
	return out
}

// IsBijection reports whether every slot is hit exactly once.
func (p Perm) IsBijection() bool {
	var seen [NumFacelets]bool
	for _, dst := range p {
		if dst < 0 || dst >= NumFacelets || seen[dst] {
			return false
		}
		seen[dst] = true
	}
	return true
}

// strip is a row or column of three facelets on one face.
type strip struct {
	face Face
	idx  [3]int
}

// adjacency lists, per face, the four neighbouring strips in the order a
// clockwise turn carries them: strip k moves onto strip k+1. Entries line up
// element by element, so some strips are listed in reverse.
var adjacency = [6][4]strip{
	U: {{F, [3]int{0, 1, 2}}, {L, [3]int{0, 1, 2}}, {B, [3]int{0, 1, 2}}, {R, [3]int{0, 1, 2}}},
	D: {{F, [3]int{6, 7, 8}}, {R, [3]int{6, 7, 8}}, {B, [3]int{6, 7, 8}}, {L, [3]int{6, 7, 8}}},
	F: {{U, [3]int{6, 7, 8}}, {R, [3]int{0, 3, 6}}, {D, [3]int{2, 1, 0}}, {L, [3]int{8, 5, 2}}},
	B: {{U, [3]int{2, 1, 0}}, {L, [3]int{0, 3, 6}}, {D, [3]int{6, 7, 8}}, {R, [3]int{8, 5, 2}}},
	R: {{U, [3]int{2, 5, 8}}, {B, [3]int{6, 3, 0}}, {D, [3]int{2, 5, 8}}, {F, [3]int{2, 5, 8}}},
	L: {{U, [3]int{0, 3, 6}}, {F, [3]int{0, 3, 6}}, {D, [3]int{0, 3, 6}}, {B, [3]int{8, 5, 2}}},
}

// clockwisePerm builds the quarter-turn permutation for a face from the face
// rotation pattern (row, col) -> (col, 2-row) and the adjacency strips.
func clockwisePerm(face Face) Perm {
	p := IdentityPerm()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			p[Index(face, row, col)] = Index(face, col, 2-row)
		}
	}
	strips := adjacency[face]
	for k, s := range strips {
		next := strips[(k+1)%4]
		for j := 0; j < 3; j++ {
			p[int(s.face)*9+s.idx[j]] = int(next.face)*9 + next.idx[j]
		}
	}
	return p
}

// Table holds the quarter-turn permutations for every face. It is built once
// and read-only afterwards.
type Table struct {
	cw  [6]Perm
	ccw [6]Perm
}

// NewTable builds the permutation table from the face rotation pattern and
// the adjacency strips.
func NewTable() *Table {
	t := &Table{}
	for _, face := range Faces {
		t.cw[face] = clockwisePerm(face)
		t.ccw[face] = t.cw[face].Inverse()
	}
	return t
}

// newTableFromPerms builds a table from externally supplied clockwise and
// counter-clockwise permutations and verifies it.
func newTableFromPerms(cw, ccw [6]Perm) (*Table, error) {
	t := &Table{cw: cw, ccw: ccw}
	if err := t.Verify(); err != nil {
		return nil, err
	}
	return t, nil
}

var defaultTable = NewTable()

// DefaultTable returns the shared geometric table.
func DefaultTable() *Table {
	return defaultTable
}

// Quarter returns the single quarter-turn permutation for a face and a CW or
// CCW direction.
func (t *Table) Quarter(face Face, dir Direction) (Perm, error) {
	if !face.Valid() {
		return Perm{}, fmt.Errorf("%w: %d", ErrInvalidFace, int(face))
	}
	switch dir {
	case CW:
		return t.cw[face], nil
	case CCW:
		return t.ccw[face], nil
	}
	return Perm{}, fmt.Errorf("%w: %v is not a quarter turn", ErrInvalidDirection, dir)
}

// Perm returns the full permutation of a turn. A half turn is the clockwise
// quarter turn applied twice.
func (t *Table) Perm(turn Turn) (Perm, error) {
	if err := turn.Validate(); err != nil {
		return Perm{}, err
	}
	if turn.Dir == Half {
		return t.cw[turn.Face].Then(t.cw[turn.Face]), nil
	}
	return t.Quarter(turn.Face, turn.Dir)
}

// Apply returns the state after turn. The input is not modified; on error
// the input is returned unchanged.
func (t *Table) Apply(c Cube, turn Turn) (Cube, error) {
	if err := turn.Validate(); err != nil {
		return c, err
	}
	if turn.Dir == Half {
		p := t.cw[turn.Face]
		return p.Apply(p.Apply(c)), nil
	}
	p, err := t.Quarter(turn.Face, turn.Dir)
	if err != nil {
		return c, err
	}
	return p.Apply(c), nil
}

// Verify checks the table invariants: every entry is a bijection, each
// counter-clockwise entry inverts its clockwise entry and four clockwise
// turns are the identity.
func (t *Table) Verify() error {
	id := IdentityPerm()
	for _, face := range Faces {
		cw, ccw := t.cw[face], t.ccw[face]
		if !cw.IsBijection() {
			return fmt.Errorf("%w: %v is not a bijection", ErrInvalidTable, face)
		}
		if !ccw.IsBijection() {
			return fmt.Errorf("%w: %v' is not a bijection", ErrInvalidTable, face)
		}
		if cw.Then(ccw) != id || ccw.Then(cw) != id {
			return fmt.Errorf("%w: %v' does not invert %v", ErrInvalidTable, face, face)
		}
		if cw.Then(cw).Then(cw).Then(cw) != id {
			return fmt.Errorf("%w: %v has order other than 4", ErrInvalidTable, face)
		}
	}
	return nil
}

// Equal reports whether two tables hold the same permutations.
func (t *Table) Equal(o *Table) bool {
	return t.cw == o.cw && t.ccw == o.ccw
}

// Apply applies a turn using the default table.
func (c Cube) Apply(turn Turn) (Cube, error) {
	return defaultTable.Apply(c, turn)
}

// ApplyAll applies turns in order using the default table. On error the
// state reached so far is discarded and the receiver is returned.
func (c Cube) ApplyAll(turns ...Turn) (Cube, error) {
	out := c
	for i, t := range turns {
		next, err := out.Apply(t)
		if err != nil {
			return c, fmt.Errorf("turn %d: %w", i, err)
		}
		out = next
	}
	return out, nil
}

// Scramble applies a notation string to a solved cube.
func Scramble(notation string) (Cube, error) {
	turns, err := ParseTurns(notation)
	if err != nil {
		return Cube{}, err
	}
	return New().ApplyAll(turns...)
}
