package cube

import "fmt"

// Encode returns the facelets as a 54-character string of color letters in
// slot order, e.g. "WWWWWWWWWYYY...".
func (c Cube) Encode() string {
	b := make([]byte, NumFacelets)
	for i, col := range c.facelets {
		b[i] = col.String()[0]
	}
	return string(b)
}

// Decode parses a string produced by Encode.
func Decode(s string) (Cube, error) {
	if len(s) != NumFacelets {
		return Cube{}, fmt.Errorf("%w: encoded cube has %d facelets", ErrInvalidColor, len(s))
	}
	var f [NumFacelets]Color
	for i := 0; i < NumFacelets; i++ {
		col, ok := colorByLetter(s[i])
		if !ok {
			return Cube{}, fmt.Errorf("%w: %q at slot %d", ErrInvalidColor, s[i], i)
		}
		f[i] = col
	}
	return Cube{facelets: f}, nil
}

func colorByLetter(b byte) (Color, bool) {
	for c := Empty; c <= Orange; c++ {
		if c.String()[0] == b {
			return c, true
		}
	}
	return Empty, false
}
