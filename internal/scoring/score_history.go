package scoring

import (
	"sort"
)

// ScoreHistory holds stored scores sorted from best to worst.
type ScoreHistory struct {
	Entries []int
}

// NewScoreHistory copies and sorts scores.
func NewScoreHistory(scores []int) ScoreHistory {
	entries := make([]int, len(scores))
	copy(entries, scores)
	sort.Sort(sort.Reverse(sort.IntSlice(entries)))
	return ScoreHistory{Entries: entries}
}

// GetHighScore returns the best score, or 0 when there is none.
func (sh ScoreHistory) GetHighScore() int {
	if len(sh.Entries) == 0 {
		return 0
	}
	return sh.Entries[0]
}

// GetNScoreEntries returns at most the top n scores.
func (sh ScoreHistory) GetNScoreEntries(n int) []int {
	if len(sh.Entries) < n {
		return sh.Entries
	}
	return sh.Entries[:n]
}

// GotHighScore reports whether score beats every stored score.
func (sh ScoreHistory) GotHighScore(score int) bool {
	return score > 0 && score > sh.GetHighScore()
}
