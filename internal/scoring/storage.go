package scoring

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ScoreStorage defines the interface for loading and saving score data.
// This allows for mocking the storage layer during tests.
type ScoreStorage interface {
	// LoadAll loads every stored score. Order is not guaranteed.
	LoadAll() ([]int, error)
	// SaveAll replaces the stored scores with the given slice.
	SaveAll(scores []int) error
}

// TextFileStorage is an implementation of ScoreStorage that keeps one
// decimal score per line.
type TextFileStorage struct {
	path string
}

// NewTextFileStorage creates storage backed by the file at path.
func NewTextFileStorage(path string) *TextFileStorage {
	return &TextFileStorage{path: path}
}

// DefaultScorePath returns the scores file location under the user's
// config directory.
func DefaultScorePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "go-tetris", "highscore.txt"), nil
}

func (tfs *TextFileStorage) Path() string {
	return tfs.path
}

// LoadAll reads every parsable score from the file. Lines that are not
// non-negative integers are skipped.
func (tfs *TextFileStorage) LoadAll() ([]int, error) {
	file, err := os.Open(tfs.path)
	// If the file doesn't exist, it's not an error; return an empty slice.
	if os.IsNotExist(err) {
		return []int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error opening scores file for reading: %w", err)
	}
	defer file.Close()

	scores := make([]int, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if score, ok := parseScore(scanner.Text()); ok {
			scores = append(scores, score)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading scores file: %w", err)
	}

	return scores, nil
}

// SaveAll writes all scores to the file, one per line.
func (tfs *TextFileStorage) SaveAll(scores []int) error {
	// Ensure the directory exists.
	dir := filepath.Dir(tfs.path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating scores directory: %w", err)
		}
	}

	file, err := os.OpenFile(tfs.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error opening scores file for writing: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, score := range scores {
		if _, err := writer.WriteString(strconv.Itoa(score) + "\n"); err != nil {
			return fmt.Errorf("error writing score: %w", err)
		}
	}

	return writer.Flush()
}

func parseScore(s string) (int, bool) {
	score, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || score < 0 {
		return 0, false
	}
	return score, true
}
