package analysis

import (
	"slices"
	"sort"

	"github.com/SeamusWaldron/gocube3d/internal/cube"
)

// NGram represents a repeated turn sequence.
type NGram struct {
	N           int               `json:"n"`
	Sequence    string            `json:"sequence"`
	Tokens      []uint8           `json:"-"`
	Count       int               `json:"count"`
	Occurrences []NGramOccurrence `json:"occurrences,omitempty"`
}

// NGramOccurrence represents where an n-gram was found.
type NGramOccurrence struct {
	SessionID  string `json:"session_id,omitempty"`
	StartIndex int    `json:"start_index"`
	TsMs       int64  `json:"ts_ms"`
}

// NGramReport contains the results of n-gram mining.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"` // Keyed by n
}

// maxOccurrences caps the sample occurrences kept per n-gram.
const maxOccurrences = 10

var directions = [3]cube.Direction{cube.CW, cube.CCW, cube.Half}

// Token packs a turn into 0..17.
func Token(t cube.Turn) uint8 {
	d := slices.Index(directions[:], t.Dir)
	return uint8(int(t.Face)*3 + d)
}

// TurnFromToken reverses Token.
func TurnFromToken(tok uint8) cube.Turn {
	return cube.Turn{Face: cube.Face(tok / 3), Dir: directions[tok%3]}
}

// RollingHash implements Rabin-Karp rolling hash for n-gram detection.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1) for removal
	window []uint8
	n      int
}

// NewRollingHash creates a new rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   31,
		n:      n,
		window: make([]uint8, 0, n),
	}
	rh.pow = 1
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}
	return rh
}

// Roll adds a token, dropping the oldest once the window is full.
func (rh *RollingHash) Roll(token uint8) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, token)
		rh.hash = rh.hash*rh.base + uint64(token)
		return
	}

	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(token)
	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = token
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []uint8 {
	return slices.Clone(rh.window)
}

// Ready returns true if the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

type ngramEntry struct {
	tokens      []uint8
	count       int
	occurrences []NGramOccurrence
}

// MineNGrams finds the top-k most frequent n-grams for each n in
// [minN, maxN]. Only sequences seen at least twice are reported. A topK of
// zero or less means no limit.
func MineNGrams(turns []TimedTurn, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{TopNGrams: make(map[int][]NGram)}

	tokens := make([]uint8, len(turns))
	for i, t := range turns {
		tokens[i] = Token(t.Turn)
	}

	for n := minN; n <= maxN && n <= len(turns); n++ {
		if ngrams := mineN(tokens, turns, n, topK); len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}
	return report
}

func mineN(tokens []uint8, turns []TimedTurn, n, topK int) []NGram {
	// Hash collisions chain into a slice per hash.
	counts := make(map[uint64][]*ngramEntry)
	var order []*ngramEntry
	rh := NewRollingHash(n)

	for i, tok := range tokens {
		rh.Roll(tok)
		if !rh.Ready() {
			continue
		}

		start := i - n + 1
		occ := NGramOccurrence{StartIndex: start, TsMs: turns[start].TsMs}
		window := rh.Window()

		var entry *ngramEntry
		for _, e := range counts[rh.Hash()] {
			if slices.Equal(e.tokens, window) {
				entry = e
				break
			}
		}
		if entry == nil {
			entry = &ngramEntry{tokens: window}
			counts[rh.Hash()] = append(counts[rh.Hash()], entry)
			order = append(order, entry)
		}
		entry.count++
		if len(entry.occurrences) < maxOccurrences {
			entry.occurrences = append(entry.occurrences, occ)
		}
	}

	var repeated []*ngramEntry
	for _, e := range order {
		if e.count >= 2 {
			repeated = append(repeated, e)
		}
	}
	sort.SliceStable(repeated, func(i, j int) bool {
		return repeated[i].count > repeated[j].count
	})
	if topK > 0 && len(repeated) > topK {
		repeated = repeated[:topK]
	}

	result := make([]NGram, len(repeated))
	for i, e := range repeated {
		result[i] = NGram{
			N:           n,
			Sequence:    sequence(e.tokens),
			Tokens:      e.tokens,
			Count:       e.count,
			Occurrences: e.occurrences,
		}
	}
	return result
}

func sequence(tokens []uint8) string {
	turns := make([]cube.Turn, len(tokens))
	for i, tok := range tokens {
		turns[i] = TurnFromToken(tok)
	}
	return cube.FormatTurns(turns)
}

// MergeReports aggregates per-session reports, keyed by session ID. topK
// limits each length as in MineNGrams.
func MergeReports(reports map[string]*NGramReport, topK int) *NGramReport {
	out := &NGramReport{TopNGrams: make(map[int][]NGram)}

	ids := make([]string, 0, len(reports))
	for id := range reports {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	byN := make(map[int]map[string]*NGram)
	for _, id := range ids {
		for n, ngrams := range reports[id].TopNGrams {
			if byN[n] == nil {
				byN[n] = make(map[string]*NGram)
			}
			for _, ng := range ngrams {
				agg, ok := byN[n][ng.Sequence]
				if !ok {
					agg = &NGram{N: n, Sequence: ng.Sequence, Tokens: ng.Tokens}
					byN[n][ng.Sequence] = agg
				}
				agg.Count += ng.Count
				for _, occ := range ng.Occurrences {
					if len(agg.Occurrences) < maxOccurrences {
						occ.SessionID = id
						agg.Occurrences = append(agg.Occurrences, occ)
					}
				}
			}
		}
	}

	for n, m := range byN {
		ngrams := make([]NGram, 0, len(m))
		for _, ng := range m {
			ngrams = append(ngrams, *ng)
		}
		sort.Slice(ngrams, func(i, j int) bool {
			if ngrams[i].Count != ngrams[j].Count {
				return ngrams[i].Count > ngrams[j].Count
			}
			return ngrams[i].Sequence < ngrams[j].Sequence
		})
		if topK > 0 && len(ngrams) > topK {
			ngrams = ngrams[:topK]
		}
		out.TopNGrams[n] = ngrams
	}
	return out
}
