// Package analysis computes statistics over recorded sessions.
package analysis

import (
	"sort"

	"github.com/SeamusWaldron/gocube3d/internal/cube"
	"github.com/SeamusWaldron/gocube3d/internal/protocol"
	"github.com/SeamusWaldron/gocube3d/internal/storage"
)

// PauseThresholdMs is the gap between turns counted as a pause.
const PauseThresholdMs = 1500

// TimedTurn is a committed turn with its wall-clock time.
type TimedTurn struct {
	Turn cube.Turn
	TsMs int64
}

// FromRecords converts stored turns.
func FromRecords(records []storage.TurnRecord) ([]TimedTurn, error) {
	out := make([]TimedTurn, len(records))
	for i, r := range records {
		t, err := r.Turn()
		if err != nil {
			return nil, err
		}
		out[i] = TimedTurn{Turn: t, TsMs: r.TsMs}
	}
	return out, nil
}

// SessionSummary contains statistics for a single session.
type SessionSummary struct {
	SessionID         string       `json:"session_id"`
	StartedAt         string       `json:"started_at"`
	DurationMs        int64        `json:"duration_ms"`
	TotalTurns        int          `json:"total_turns"`
	MergedTurns       int          `json:"merged_turns"`
	TPS               float64      `json:"tps"`
	LongestPauseMs    int64        `json:"longest_pause_ms"`
	PauseCount        int          `json:"pause_count_over_1500ms"`
	AvgTurnDurationMs float64      `json:"avg_turn_duration_ms"`
	Phases            []PhaseSplit `json:"phases,omitempty"`
	Profile           *Profile     `json:"profile"`
}

// PhaseSplit is the moment a session first reached a phase.
type PhaseSplit struct {
	PhaseKey    string `json:"phase_key"`
	DisplayName string `json:"display_name"`
	AtMs        int64  `json:"at_ms"` // since the session started
	TurnCount   int    `json:"turn_count"`
}

// Summarize builds the summary of a session.
func Summarize(sess storage.Session, turns []TimedTurn, marks []storage.PhaseMark) *SessionSummary {
	start := sess.StartedAt.UnixMilli()

	s := &SessionSummary{
		SessionID:         sess.SessionID,
		StartedAt:         sess.StartedAt.Format("2006-01-02 15:04:05"),
		TotalTurns:        len(turns),
		MergedTurns:       len(protocol.MergeTurns(plain(turns))),
		LongestPauseMs:    FindLongestPause(turns),
		PauseCount:        CountPausesOver(turns, PauseThresholdMs),
		AvgTurnDurationMs: CalculateAvgTurnDuration(turns),
		Profile:           AnalyzeProfile(turns),
	}

	switch {
	case sess.DurationMs != nil:
		s.DurationMs = *sess.DurationMs
	case len(turns) > 0:
		s.DurationMs = turns[len(turns)-1].TsMs - start
	}
	s.TPS = CalculateTPS(turns, s.DurationMs)

	for _, m := range marks {
		name := m.PhaseKey
		if p, ok := cube.ParsePhase(m.PhaseKey); ok {
			name = p.DisplayName()
		}
		s.Phases = append(s.Phases, PhaseSplit{
			PhaseKey:    m.PhaseKey,
			DisplayName: name,
			AtMs:        m.TsMs - start,
			TurnCount:   m.TurnCount,
		})
	}
	return s
}

func plain(turns []TimedTurn) []cube.Turn {
	out := make([]cube.Turn, len(turns))
	for i, t := range turns {
		out[i] = t.Turn
	}
	return out
}

// CalculateTPS calculates turns per second.
func CalculateTPS(turns []TimedTurn, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(len(turns)) / (float64(durationMs) / 1000.0)
}

// CalculateAvgTurnDuration calculates the average time between turns.
func CalculateAvgTurnDuration(turns []TimedTurn) float64 {
	if len(turns) < 2 {
		return 0
	}
	totalGap := turns[len(turns)-1].TsMs - turns[0].TsMs
	return float64(totalGap) / float64(len(turns)-1)
}

// FindLongestPause finds the longest gap between turns.
func FindLongestPause(turns []TimedTurn) int64 {
	var longest int64
	for i := 1; i < len(turns); i++ {
		if gap := turns[i].TsMs - turns[i-1].TsMs; gap > longest {
			longest = gap
		}
	}
	return longest
}

// CountPausesOver counts gaps over a threshold.
func CountPausesOver(turns []TimedTurn, thresholdMs int64) int {
	count := 0
	for i := 1; i < len(turns); i++ {
		if turns[i].TsMs-turns[i-1].TsMs > thresholdMs {
			count++
		}
	}
	return count
}

// Profile counts how often each face and direction is turned.
type Profile struct {
	FaceCounts   map[string]int `json:"face_counts"`
	DirCounts    map[string]int `json:"direction_counts"`
	MostUsedFace string         `json:"most_used_face"`
	// FacePairs counts consecutive turns of two faces, e.g. "RU".
	FacePairs map[string]int `json:"face_pairs"`
}

// AnalyzeProfile analyzes which faces and directions are most used.
func AnalyzeProfile(turns []TimedTurn) *Profile {
	p := &Profile{
		FaceCounts: make(map[string]int),
		DirCounts:  make(map[string]int),
		FacePairs:  make(map[string]int),
	}

	for i, t := range turns {
		p.FaceCounts[t.Turn.Face.String()]++
		p.DirCounts[t.Turn.Dir.String()]++
		if i > 0 {
			p.FacePairs[turns[i-1].Turn.Face.String()+t.Turn.Face.String()]++
		}
	}

	// Ties go to the earlier face in U D F B R L order.
	most := 0
	for _, f := range cube.Faces {
		if n := p.FaceCounts[f.String()]; n > most {
			most = n
			p.MostUsedFace = f.String()
		}
	}
	return p
}

// TopPairs returns the k most frequent face pairs, most frequent first.
// k <= 0 returns every pair.
func (p *Profile) TopPairs(k int) []string {
	pairs := make([]string, 0, len(p.FacePairs))
	for pair := range p.FacePairs {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if p.FacePairs[pairs[i]] != p.FacePairs[pairs[j]] {
			return p.FacePairs[pairs[i]] > p.FacePairs[pairs[j]]
		}
		return pairs[i] < pairs[j]
	})
	if k > 0 && len(pairs) > k {
		pairs = pairs[:k]
	}
	return pairs
}
