package client

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/template"

	"columns/columns"
)

const (
	// ASCII colors.
	Red     = "31"
	Green   = "32"
	Yellow  = "33"
	Blue    = "34"
	Magenta = "35"
	Cyan    = "36"
	White   = "37"
	Orange  = "38;5;214"

	resetPos    = "\033[H"        // Reset cursor position to 0,0
	clearScreen = "\033[2J\033[H" // Clear and reset cursor position
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[columns.Color]string{
	"S": Red,
	"T": Orange,
	"V": Yellow,
	"W": Green,
	"X": Blue,
	"Y": Magenta,
	"Z": Cyan,
}

type templateData struct {
	Local *columns.Snapshot
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	*templateData
}

func newRender(l *slog.Logger) (*render, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &render{
		writer:       os.Stdout,
		logger:       l,
		template:     tmp,
		templateData: &templateData{},
	}, nil
}

func (r *render) reset() {
	fmt.Fprint(r.writer, clearScreen)
}

func (r *render) local(s *columns.Snapshot) {
	r.templateData.Local = s
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, r.templateData); err != nil {
		r.logger.Error("unable to execute template in local()", slog.String("error", err.Error()))
	}
}

func (r *render) lobby() {
	fmt.Fprint(r.writer, "\033[6;24H+--------------------------------+")
	fmt.Fprint(r.writer, "\033[7;24H|      Welcome to  COLUMNS!      |")
	fmt.Fprint(r.writer, "\033[8;24H|                                |")
	fmt.Fprint(r.writer, "\033[9;24H|   spacebar to play   q to quit |")
	fmt.Fprint(r.writer, "\033[10;24H+--------------------------------+")
}

func (r *render) gameOver() {
	fmt.Fprint(r.writer, "\033[6;24H+--------------------------------+")
	fmt.Fprint(r.writer, "\033[7;24H|           GAME  OVER           |")
	fmt.Fprint(r.writer, "\033[8;24H|                                |")
	fmt.Fprint(r.writer, "\033[9;24H|  spacebar to play   q to quit  |")
	fmt.Fprint(r.writer, "\033[10;24H+--------------------------------+")
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"board":      board,
		"nextFaller": nextFaller,
		"score":      score,
		"highScore":  highScore,
	}

	// the console runs raw, so new lines don't imply a carriage return.
	layout = strings.ReplaceAll(layout, "\n", "\r\n")
	layout = strings.ReplaceAll(layout, "COLUMNS!", "\033[1mCOLUMNS!\033[0m")
	return template.New("layout").Funcs(funcMap).Parse(layout)
}

func board(t *templateData) [columns.VisibleRows][columns.Cols]string {
	rendered := [columns.VisibleRows][columns.Cols]string{}
	for row := range columns.VisibleRows {
		for col := range columns.Cols {
			rendered[row][col] = "  "
			if t.Local == nil {
				continue
			}
			rendered[row][col] = renderCell(t.Local.Board[row][col])
		}
	}
	return rendered
}

// renderCell picks the glyph for one cell: settled jewels are solid
// blocks, the faller is drawn hollow, a landed faller fills in, and
// matching jewels flash white before they clear.
func renderCell(c columns.CellView) string {
	switch c.Type {
	case columns.CellJewel:
		return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", colorMap[c.Color])
	case columns.CellFaller:
		return fmt.Sprintf("\x1b[%sm()\x1b[0m", colorMap[c.Color])
	case columns.CellLanded:
		return fmt.Sprintf("\x1b[7m\x1b[%sm()\x1b[0m", colorMap[c.Color])
	case columns.CellMatching:
		return fmt.Sprintf("\x1b[7m\x1b[%sm**\x1b[0m", White)
	default:
		return "  "
	}
}

func nextFaller(t *templateData) []string {
	rendered := make([]string, columns.FallerLength)
	for i := range rendered {
		rendered[i] = "  "
		if t.Local == nil {
			continue
		}
		rendered[i] = fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", colorMap[t.Local.NextColors[i]])
	}
	return rendered
}

func score(t *templateData) int {
	if t.Local == nil {
		return 0
	}
	return t.Local.Score
}

func highScore(t *templateData) int {
	if t.Local == nil {
		return 0
	}
	return t.Local.HighScore
}
