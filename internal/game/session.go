package game

import (
	"context"
	"log/slog"
	"sync"

	"go-tetris/internal/scoring"
	"go-tetris/internal/state"
)

// Session is one game bound to a score store. The high score is read when
// the session is created and the final score is recorded once the game ends.
type Session struct {
	Game    *Game
	Storage scoring.ScoreStorage
	History scoring.ScoreHistory

	logger     *slog.Logger
	finishOnce sync.Once
	saved      bool
}

// NewSession loads the score history and builds an idle game. A failing
// store is logged and treated as empty.
func NewSession(renderer Renderer, storage scoring.ScoreStorage, logger *slog.Logger, opts state.Options) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Session{
		Storage: storage,
		logger:  logger.With("component", "session"),
	}

	if storage != nil {
		history, err := scoring.Load(storage)
		if err != nil {
			s.logger.Warn("could not load high scores", "error", err)
		}
		s.History = history
	}

	s.Game = NewGame(renderer, logger, opts)
	return s
}

// HighScore is the best score recorded before this session started.
func (s *Session) HighScore() int {
	return s.History.GetHighScore()
}

// Run plays the game and records the score on game over. An abandoned game
// is not recorded.
func (s *Session) Run(ctx context.Context, input InputSource) error {
	if err := s.Game.Run(ctx, input); err != nil {
		return err
	}
	s.Finish()
	return nil
}

// Finish records the final score. Only the first call has any effect.
func (s *Session) Finish() {
	s.finishOnce.Do(func() {
		if s.Storage == nil {
			return
		}
		score := s.Game.Snapshot().Score
		saved, err := scoring.Record(s.Storage, score)
		if err != nil {
			s.logger.Error("could not save score", "score", score, "error", err)
			return
		}
		s.saved = saved
		if saved {
			s.logger.Info("score saved", "score", score)
		}
	})
}

// Saved reports whether Finish stored the score.
func (s *Session) Saved() bool {
	return s.saved
}

// GotHighScore reports whether the final score beats the previous best.
func (s *Session) GotHighScore() bool {
	return s.History.GotHighScore(s.Game.Snapshot().Score)
}
