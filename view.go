package main

import (
	"fmt"
	"strings"

	"go-tetris/internal/board"
	"go-tetris/internal/game"
	"go-tetris/internal/piece"
	"go-tetris/internal/scoring"
	"go-tetris/internal/state"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	greenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	greyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boldStyle  = lipgloss.NewStyle().Bold(true)

	emptyCell = greyStyle.Render(" ·")

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("8"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1).
			Width(18)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)
)

var titleArt = []string{
	` _____ _____ _____ _____ _____ _____ `,
	`|_   _|  ___|_   _|  _  |_   _|  ___|`,
	`  | | | |__   | | | | | | | | | |__  `,
	`  | | |  __|  | | | | | | | | |  __| `,
	`  | | | |___  | | \ \_/ / | | | |___ `,
	`  \_/ \____/  \_/  \___/  \_/ \____/ `,
}

var titleColors = []string{"9", "10", "11", "12", "13", "14"}

// flashColors cycle over rows being cleared.
var flashColors = []string{"15", "11", "9", "15", "11", "9"}

var medals = []string{"🥇", "🥈", "🥉"}

func cellStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func renderTitle() string {
	lines := make([]string, len(titleArt))
	for i, line := range titleArt {
		lines[i] = cellStyle(titleColors[i%len(titleColors)]).Render(line)
	}
	return strings.Join(lines, "\n")
}

// RenderBoard draws the grid. Rows listed in clearing are painted with
// flashColor.
func RenderBoard(grid board.Grid, clearing []int, flashColor string) string {
	var marked [board.Height]bool
	for _, y := range clearing {
		if y >= 0 && y < board.Height {
			marked[y] = true
		}
	}

	rows := make([]string, board.Height)
	for y := 0; y < board.Height; y++ {
		var b strings.Builder
		for x := 0; x < board.Width; x++ {
			cell := grid[y][x]
			switch {
			case cell == 0:
				b.WriteString(emptyCell)
			case marked[y]:
				b.WriteString(cellStyle(flashColor).Render("██"))
			default:
				b.WriteString(cellStyle(piece.ColorFor(cell)).Render("██"))
			}
		}
		rows[y] = b.String()
	}
	return boardStyle.Render(strings.Join(rows, "\n"))
}

// RenderPreview draws a piece mask in a 4x4 box.
func RenderPreview(v state.PieceView) string {
	style := cellStyle(v.Color)
	rows := make([]string, piece.Size)
	for y := 0; y < piece.Size; y++ {
		var b strings.Builder
		for x := 0; x < piece.Size; x++ {
			if v.Mask[y][x] != 0 {
				b.WriteString(style.Render("██"))
			} else {
				b.WriteString("  ")
			}
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}

func renderControls(keys game.KeyMap) string {
	var b strings.Builder
	for _, group := range keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "%-6s %s\n", h.Key, greyStyle.Render(h.Desc))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *LocalState) renderPlaying() string {
	snap := s.frame
	grid, clearing, flashColor := snap.Grid, []int(nil), ""
	if s.flash != nil {
		grid, clearing = s.flash.Grid, s.flash.Clearing
		flashColor = flashColors[s.flashStep%len(flashColors)]
	}

	highScore := 0
	if s.Session != nil {
		highScore = max(s.Session.HighScore(), snap.Score)
	}

	panel := strings.Join([]string{
		boldStyle.Render("NEXT"),
		RenderPreview(snap.Next),
		"",
		fmt.Sprintf("SCORE  %s", scoreStyle.Render(fmt.Sprint(snap.Score))),
		fmt.Sprintf("LEVEL  %s", scoreStyle.Render(fmt.Sprint(snap.Level))),
		fmt.Sprintf("LINES  %s", scoreStyle.Render(fmt.Sprint(snap.Lines))),
		fmt.Sprintf("HIGH   %s", scoreStyle.Render(fmt.Sprint(highScore))),
		"",
		renderControls(s.keys),
	}, "\n")

	display := boldStyle.Render("TETRIS") + "   " + greyStyle.Render("P: Pause") + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, RenderBoard(grid, clearing, flashColor), panelStyle.Render(panel))

	if snap.Paused {
		display += "\n" + boldStyle.Render("GAME PAUSED - Press P to continue")
	}
	return display
}

func (s *LocalState) renderMenu() string {
	var b strings.Builder
	b.WriteString(renderTitle())
	b.WriteString("\n\nSelect an ")
	b.WriteString(greenStyle.Render("option"))
	b.WriteString(":\n\n")
	for i, item := range menuItems {
		if i == s.cursor {
			b.WriteString(greenStyle.Render("> " + item))
		} else {
			b.WriteString("  " + item)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + s.help.ShortHelpView([]key.Binding{s.menuKeys.Up, s.menuKeys.Down, s.menuKeys.Select, s.menuKeys.Quit}))
	return b.String()
}

// HighScoreTable builds the ranked table for the top scores.
func HighScoreTable(scores []int) table.Model {
	rows := make([]table.Row, len(scores))
	for i, score := range scores {
		rank := fmt.Sprint(i + 1)
		if i < len(medals) {
			rank = medals[i]
		}
		rows[i] = table.Row{rank, fmt.Sprint(score)}
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)
	return t
}

func (s *LocalState) renderScores() string {
	display := renderTitle() + "\n\n" + scoreStyle.Render("HIGH SCORES") + "\n\n"

	if len(s.topScores) == 0 {
		display += scoreStyle.Render("No high scores yet!")
	} else {
		display += boxStyle.Padding(0, 1).Render(HighScoreTable(s.topScores).View())
	}
	return display + "\n\n" + greyStyle.Render("Press any key to return to the menu")
}

func (s *LocalState) renderInstructions() string {
	text := "Tetris is a classic puzzle game where you must arrange falling tetrominos.\n" +
		"Clear lines by filling all cells in a horizontal row. As you clear more\n" +
		"lines, the level increases and pieces fall faster.\n\n" +
		boldStyle.Render("Controls:") + "\n" +
		s.help.FullHelpView(s.keys.FullHelp()) + "\n\n" +
		boldStyle.Render("Scoring:") + "\n" +
		fmt.Sprintf("1 line: %d × (level + 1) points\n", scoring.LineClearPoints(1, 0)) +
		fmt.Sprintf("2 lines: %d × (level + 1) points\n", scoring.LineClearPoints(2, 0)) +
		fmt.Sprintf("3 lines: %d × (level + 1) points\n", scoring.LineClearPoints(3, 0)) +
		fmt.Sprintf("4 lines (Tetris): %d × (level + 1) points\n", scoring.LineClearPoints(4, 0)) +
		fmt.Sprintf("Soft drop: %d point per cell\n", scoring.SoftDropCell) +
		fmt.Sprintf("Hard drop: %d points per cell", scoring.HardDropCell)

	return renderTitle() + "\n\n" +
		boldStyle.Render("Game Instructions") + "\n" +
		boxStyle.Render(text) + "\n\n" +
		greyStyle.Render("Press any key to return to the menu")
}

func (s *LocalState) renderGameOver() string {
	display := "\n" + redStyle.Bold(true).Render("GAME OVER!") + "\n" +
		fmt.Sprintf("Final Score: %s", scoreStyle.Render(fmt.Sprint(s.finalScore)))
	if s.newHighScore {
		display += "\n" + greenStyle.Bold(true).Render("New High Score!")
	}
	return display + "\n\n" + greyStyle.Render("Press any key to continue")
}

func (s *LocalState) View() string {
	var display string
	switch s.screen {
	case screenPlaying:
		display = s.renderPlaying()
	case screenGameOver:
		display = s.renderGameOver()
	case screenScores:
		display = s.renderScores()
	case screenInstructions:
		display = s.renderInstructions()
	default:
		display = s.renderMenu()
	}

	if s.width > 0 && s.height > 0 {
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, display)
	}
	return display
}
