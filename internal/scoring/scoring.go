package scoring

import (
	"fmt"
	"sort"
)

// Per-cell drop rewards.
const (
	SoftDropCell = 1
	HardDropCell = 2
)

// DisplayLimit is how many scores the high-score table shows.
const DisplayLimit = 10

// lineClearTable holds the NES base points for clearing 0-4 lines at once.
var lineClearTable = [...]int{0, 40, 100, 300, 1200}

// LineClearPoints returns the points for clearing lines rows in one lock at
// the given level.
func LineClearPoints(lines, level int) int {
	if lines <= 0 {
		return 0
	}
	if lines >= len(lineClearTable) {
		lines = len(lineClearTable) - 1
	}
	return lineClearTable[lines] * (level + 1)
}

// Load returns every stored score in descending order. Storage failures
// yield an empty history along with the error.
func Load(storage ScoreStorage) (ScoreHistory, error) {
	scores, err := storage.LoadAll()
	if err != nil {
		return ScoreHistory{}, fmt.Errorf("could not load score history: %w", err)
	}
	return NewScoreHistory(scores), nil
}

// Record merges score into the stored list and rewrites it sorted
// descending. Scores of zero or less are not persisted.
func Record(storage ScoreStorage, score int) (bool, error) {
	if score <= 0 {
		return false, nil
	}

	scores, err := storage.LoadAll()
	if err != nil {
		return false, fmt.Errorf("could not load scores for saving: %w", err)
	}

	scores = append(scores, score)
	sort.Sort(sort.Reverse(sort.IntSlice(scores)))

	if err := storage.SaveAll(scores); err != nil {
		return false, fmt.Errorf("could not save scores: %w", err)
	}
	return true, nil
}

// Top returns at most n stored scores, best first. A failing store yields
// no scores.
func Top(storage ScoreStorage, n int) []int {
	history, err := Load(storage)
	if err != nil {
		return nil
	}
	return history.GetNScoreEntries(n)
}

// HighScore returns the best stored score, or 0 when there is none or the
// store cannot be read.
func HighScore(storage ScoreStorage) int {
	history, _ := Load(storage)
	return history.GetHighScore()
}
