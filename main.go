package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go-tetris/internal/config"
	"go-tetris/internal/game"
	"go-tetris/internal/scoring"
	"go-tetris/internal/state"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenMenu screen = iota
	screenPlaying
	screenGameOver
	screenScores
	screenInstructions
)

var menuItems = []string{"Start Game", "High Scores", "Instructions", "Exit"}

const flashInterval = 50 * time.Millisecond

type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var menuKeys = menuKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "exit")),
}

// frameMsg carries a snapshot from the game goroutines into the UI.
type frameMsg state.Snapshot

type flashMsg struct {
	id   int
	step int
}

type gameEndedMsg struct {
	err error
}

// programRenderer forwards engine frames to the bubbletea program.
type programRenderer struct {
	program *tea.Program
}

func (r programRenderer) Render(snap state.Snapshot) error {
	if r.program == nil {
		return errors.New("no program attached")
	}
	r.program.Send(frameMsg(snap))
	return nil
}

type LocalState struct {
	Program *tea.Program
	Storage scoring.ScoreStorage
	Logger  *slog.Logger

	Session *game.Session
	input   *game.KeyQueue
	cancel  context.CancelFunc

	screen       screen
	cursor       int
	frame        state.Snapshot
	flash        *state.Snapshot
	flashID      int
	flashStep    int
	finalScore   int
	newHighScore bool
	topScores    []int

	keys     game.KeyMap
	menuKeys menuKeyMap
	help     help.Model

	width, height int
}

func initialModel(storage scoring.ScoreStorage, logger *slog.Logger) *LocalState {
	return &LocalState{
		Storage:  storage,
		Logger:   logger,
		keys:     game.DefaultKeyMap(),
		menuKeys: menuKeys,
		help:     help.New(),
	}
}

func flashCmd(id, step int) tea.Cmd {
	return tea.Tick(flashInterval, func(time.Time) tea.Msg {
		return flashMsg{id: id, step: step}
	})
}

func (s *LocalState) Init() tea.Cmd {
	return nil
}

func (s *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.help.Width = msg.Width
	case frameMsg:
		if s.screen != screenPlaying {
			return s, nil
		}
		snap := state.Snapshot(msg)
		s.frame = snap
		if len(snap.Clearing) > 0 {
			s.flash = &snap
			s.flashID++
			s.flashStep = 0
			return s, flashCmd(s.flashID, 0)
		}
	case flashMsg:
		if msg.id != s.flashID || s.flash == nil {
			return s, nil
		}
		if msg.step+1 >= len(flashColors) {
			s.flash = nil
			return s, nil
		}
		s.flashStep = msg.step + 1
		return s, flashCmd(msg.id, s.flashStep)
	case gameEndedMsg:
		s.endGame(msg.err)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *LocalState) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch s.screen {
	case screenPlaying:
		if key.Matches(msg, s.keys.Quit) {
			s.stopGame()
			return s, nil
		}
		if s.input != nil {
			s.input.Push(msg.String())
		}
	case screenMenu:
		switch {
		case key.Matches(msg, s.menuKeys.Quit):
			return s, tea.Quit
		case key.Matches(msg, s.menuKeys.Up):
			s.cursor = (s.cursor + len(menuItems) - 1) % len(menuItems)
		case key.Matches(msg, s.menuKeys.Down):
			s.cursor = (s.cursor + 1) % len(menuItems)
		case key.Matches(msg, s.menuKeys.Select):
			return s.selectMenu()
		}
	default:
		if msg.String() == "ctrl+c" {
			return s, tea.Quit
		}
		s.screen = screenMenu
	}
	return s, nil
}

func (s *LocalState) selectMenu() (tea.Model, tea.Cmd) {
	switch s.cursor {
	case 0:
		return s, s.startGame()
	case 1:
		s.topScores = scoring.Top(s.Storage, scoring.DisplayLimit)
		s.screen = screenScores
	case 2:
		s.screen = screenInstructions
	default:
		return s, tea.Quit
	}
	return s, nil
}

// startGame creates a session and runs it off the UI goroutine.
func (s *LocalState) startGame() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.input = game.NewKeyQueue()
	s.Session = game.NewSession(programRenderer{program: s.Program}, s.Storage, s.Logger, state.Options{})
	s.frame = s.Session.Game.Snapshot()
	s.flash = nil
	s.screen = screenPlaying

	sess, input := s.Session, s.input
	return func() tea.Msg {
		return gameEndedMsg{err: sess.Run(ctx, input)}
	}
}

// stopGame abandons the running game. The session reports back with
// gameEndedMsg.
func (s *LocalState) stopGame() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *LocalState) endGame(err error) {
	s.stopGame()
	s.cancel = nil
	s.input = nil
	s.flash = nil

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.Logger.Error("game stopped", "error", err)
		}
		s.screen = screenMenu
		return
	}

	snap := s.Session.Game.Snapshot()
	s.frame = snap
	s.finalScore = snap.Score
	s.newHighScore = s.Session.GotHighScore()
	s.screen = screenGameOver
}

type logLevelFlag string

func (l *logLevelFlag) String() string {
	return string(*l)
}

func (l *logLevelFlag) Set(s string) error {
	c := config.Config{LogLevel: s}
	if err := c.Validate(); err != nil {
		return err
	}
	*l = logLevelFlag(s)
	return nil
}

func initLogger(conf *config.Config) (*slog.Logger, func(), error) {
	discard := slog.New(slog.DiscardHandler)
	if !conf.Logging() {
		return discard, func() {}, nil
	}

	level, err := conf.SlogLevel()
	if err != nil {
		return discard, func() {}, err
	}
	path, err := conf.LogPath()
	if err != nil {
		return discard, func() {}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return discard, func() {}, fmt.Errorf("could not create log directory: %w", err)
	}

	f, err := tea.LogToFile(path, "tetris")
	if err != nil {
		return discard, func() {}, fmt.Errorf("could not open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}

func initStorage(conf *config.Config, logger *slog.Logger) (scoring.ScoreStorage, func()) {
	if conf.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		rs, err := scoring.NewRedisStorage(ctx, conf.Redis.Addr, conf.Redis.Key)
		if err == nil {
			logger.Info("using redis score store", "addr", conf.Redis.Addr, "key", conf.Redis.Key)
			return rs, func() { _ = rs.Close() }
		}
		logger.Warn("redis unavailable, using score file", "error", err)
	}

	path := conf.ScoreFile
	if path == "" {
		p, err := scoring.DefaultScorePath()
		if err != nil {
			logger.Warn("no home directory, keeping scores in the working directory", "error", err)
			p = "highscore.txt"
		}
		path = p
	}
	logger.Info("using score file", "path", path)
	return scoring.NewTextFileStorage(path), func() {}
}

func main() {
	var configPath string
	var scoreFile string
	var logFile string
	var logLevel logLevelFlag
	var redisAddr string

	flag.StringVar(&configPath, "config", config.DefaultPath(), "Path to the YAML config file")
	flag.StringVar(&configPath, "c", config.DefaultPath(), "Path to the YAML config file (shorthand)")

	flag.StringVar(&scoreFile, "scores", "", "High score file")
	flag.StringVar(&scoreFile, "s", "", "High score file (shorthand)")

	flag.StringVar(&logFile, "log", "", "Log file")
	flag.Var(&logLevel, "log-level", "Log level: debug, info, warn, error or off")

	flag.StringVar(&redisAddr, "redis", "", "Keep scores in Redis at host:port")
	flag.StringVar(&redisAddr, "r", "", "Keep scores in Redis at host:port (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fmt.Fprintf(os.Stderr, "   -c, --config=PATH       YAML config file (default %s)\n", config.DefaultPath())
		fmt.Fprintf(os.Stderr, "   -s, --scores=PATH       High score file\n")
		fmt.Fprintf(os.Stderr, "       --log=PATH          Log file\n")
		fmt.Fprintf(os.Stderr, "       --log-level=LEVEL   debug, info, warn, error or off\n")
		fmt.Fprintf(os.Stderr, "   -r, --redis=HOST:PORT   Keep scores in Redis\n")
		fmt.Fprintf(os.Stderr, "    -h, --help             Show this help message\n")
		fmt.Fprintf(os.Stderr, "\n%s\n", config.Usage())
	}

	flag.Parse()

	conf, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags win over the file and the environment.
	if scoreFile != "" {
		conf.ScoreFile = scoreFile
	}
	if logFile != "" {
		conf.LogFile = logFile
	}
	if logLevel != "" {
		conf.LogLevel = string(logLevel)
	}
	if redisAddr != "" {
		conf.Redis.Addr = redisAddr
	}

	logger, closeLog, err := initLogger(conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging disabled: %v\n", err)
	}
	defer closeLog()

	storage, closeStorage := initStorage(conf, logger)
	defer closeStorage()

	model := initialModel(storage, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.Program = p

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error starting the program: %v\n", err)
	}
	model.stopGame()
}
