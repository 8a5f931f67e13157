package cube

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// The move-table file maps a move name (F, F', F2, ...) to a list of 54
// destination slots: entry i is where the facelet in slot i moves. It is
// derived data and can always be regenerated with WriteTable.

// indexList marshals as a flow sequence so each move fits on one line.
type indexList []int

func (l indexList) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range l {
		n.Content = append(n.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: strconv.Itoa(v),
		})
	}
	return n, nil
}

// moveNames returns every move the file holds, in table order.
func moveNames() []Turn {
	turns := make([]Turn, 0, 18)
	for _, face := range Faces {
		for _, dir := range []Direction{CW, CCW, Half} {
			turns = append(turns, Turn{Face: face, Dir: dir})
		}
	}
	return turns
}

// WriteTable writes t in move-table file format.
func WriteTable(w io.Writer, t *Table) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, turn := range moveNames() {
		p, err := t.Perm(turn)
		if err != nil {
			return err
		}
		var val yaml.Node
		if err := val.Encode(indexList(p[:])); err != nil {
			return fmt.Errorf("encode %v: %w", turn, err)
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: turn.Notation()},
			&val,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return enc.Close()
}

// ReadTable reads a move-table file. Every quarter turn must be present and
// the result must pass Verify. Half-turn entries are optional but must agree
// with their quarter turns when present. A table that differs from the
// geometric one is rejected.
func ReadTable(r io.Reader) (*Table, error) {
	raw := map[string][]int{}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	parsed := make(map[Turn]Perm, len(raw))
	for name, list := range raw {
		turn, err := ParseTurn(name)
		if err != nil || turn.Notation() != name {
			return nil, fmt.Errorf("%w: unknown move %q", ErrInvalidTable, name)
		}
		if len(list) != NumFacelets {
			return nil, fmt.Errorf("%w: %s has %d entries, want %d", ErrInvalidTable, name, len(list), NumFacelets)
		}
		var p Perm
		copy(p[:], list)
		if !p.IsBijection() {
			return nil, fmt.Errorf("%w: %s is not a bijection", ErrInvalidTable, name)
		}
		parsed[turn] = p
	}

	var cw, ccw [6]Perm
	for _, face := range Faces {
		var ok bool
		if cw[face], ok = parsed[Turn{face, CW}]; !ok {
			return nil, fmt.Errorf("%w: missing %v", ErrInvalidTable, face)
		}
		if ccw[face], ok = parsed[Turn{face, CCW}]; !ok {
			return nil, fmt.Errorf("%w: missing %v'", ErrInvalidTable, face)
		}
	}

	t, err := newTableFromPerms(cw, ccw)
	if err != nil {
		return nil, err
	}
	for _, face := range Faces {
		if half, ok := parsed[Turn{face, Half}]; ok && half != cw[face].Then(cw[face]) {
			return nil, fmt.Errorf("%w: %v2 is not %v applied twice", ErrInvalidTable, face, face)
		}
	}
	if !t.Equal(defaultTable) {
		return nil, fmt.Errorf("%w: does not match the cube geometry", ErrInvalidTable)
	}
	return t, nil
}

// LoadTableFile reads a move-table file from disk.
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()
	return ReadTable(f)
}
