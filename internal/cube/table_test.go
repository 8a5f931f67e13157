package cube

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultTableVerifies(t *testing.T) {
	require.NoError(t, DefaultTable().Verify())
}

func TestQuarterTurnPermutations(t *testing.T) {
	id := IdentityPerm()
	for _, face := range Faces {
		cw, err := DefaultTable().Quarter(face, CW)
		require.NoError(t, err)
		ccw, err := DefaultTable().Quarter(face, CCW)
		require.NoError(t, err)

		assert.True(t, cw.IsBijection())
		assert.Equal(t, id, cw.Then(ccw), "%v %v'", face, face)
		assert.Equal(t, id, cw.Then(cw).Then(cw).Then(cw), "%v^4", face)
		assert.NotEqual(t, id, cw.Then(cw), "%v^2", face)

		moved := 0
		for i, dst := range cw {
			if i != dst {
				moved++
			}
		}
		assert.Equal(t, 20, moved, "%v moves 8 face and 12 strip facelets", face)
	}
}

func TestCounterClockwiseFacePattern(t *testing.T) {
	// (row, col) -> (2-col, row)
	for _, face := range Faces {
		p, err := DefaultTable().Quarter(face, CCW)
		require.NoError(t, err)
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				assert.Equal(t, Index(face, 2-col, row), p[Index(face, row, col)])
			}
		}
	}
}

func TestQuarterRejectsHalf(t *testing.T) {
	_, err := DefaultTable().Quarter(R, Half)
	assert.ErrorIs(t, err, ErrInvalidDirection)
	_, err = DefaultTable().Quarter(Face(6), CW)
	assert.ErrorIs(t, err, ErrInvalidFace)
}

func TestVerifyCatchesBrokenTable(t *testing.T) {
	tbl := NewTable()
	tbl.cw[R][0], tbl.cw[R][1] = tbl.cw[R][1], tbl.cw[R][0]
	assert.ErrorIs(t, tbl.Verify(), ErrInvalidTable)

	tbl = NewTable()
	tbl.cw[U][3] = tbl.cw[U][4]
	assert.ErrorIs(t, tbl.Verify(), ErrInvalidTable)
}

func TestWriteReadTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, DefaultTable()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "U: ["), out[:20])
	assert.Contains(t, out, "\nF': [")
	assert.Contains(t, out, "\nL2: [")

	got, err := ReadTable(strings.NewReader(out))
	require.NoError(t, err)
	assert.True(t, got.Equal(DefaultTable()))
}

func TestLoadTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moves.yml")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteTable(f, DefaultTable()))
	require.NoError(t, f.Close())

	got, err := LoadTableFile(path)
	require.NoError(t, err)
	assert.True(t, got.Equal(DefaultTable()))

	_, err = LoadTableFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func tableYAML(t *testing.T, edit func(m map[string][]int)) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, DefaultTable()))
	m := map[string][]int{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &m))
	edit(m)
	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	return string(out)
}

func TestReadTableRejects(t *testing.T) {
	tests := []struct {
		name string
		edit func(m map[string][]int)
	}{
		{"missing quarter turn", func(m map[string][]int) { delete(m, "B'") }},
		{"unknown move", func(m map[string][]int) { m["X"] = m["R"] }},
		{"short list", func(m map[string][]int) { m["R"] = m["R"][:10] }},
		{"not a bijection", func(m map[string][]int) { m["R"][0] = m["R"][1] }},
		{"inconsistent inverse", func(m map[string][]int) { m["R'"] = m["L'"] }},
		{"bad half turn", func(m map[string][]int) { m["U2"] = m["U"] }},
		{"swapped faces", func(m map[string][]int) {
			m["R"], m["L"] = m["L"], m["R"]
			m["R'"], m["L'"] = m["L'"], m["R'"]
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable(strings.NewReader(tableYAML(t, tt.edit)))
			assert.ErrorIs(t, err, ErrInvalidTable)
		})
	}
}

func TestReadTableHalfTurnsOptional(t *testing.T) {
	src := tableYAML(t, func(m map[string][]int) {
		for _, face := range Faces {
			delete(m, fmt.Sprintf("%v2", face))
		}
	})
	_, err := ReadTable(strings.NewReader(src))
	assert.NoError(t, err)
}

func TestReadTableMalformed(t *testing.T) {
	_, err := ReadTable(strings.NewReader("R: [1, 2\n"))
	assert.ErrorIs(t, err, ErrInvalidTable)
}
