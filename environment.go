package asciify

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/term"
)

// Environment supplies the terminal facts the pipeline needs when the
// caller does not fix the output size.
type Environment interface {
	// TerminalSize returns the terminal size in character cells.
	TerminalSize() (cols, rows int, err error)
	// FontAspectRatio returns the height/width ratio of one cell.
	FontAspectRatio() float64
}

// StaticEnvironment reports fixed values.
type StaticEnvironment struct {
	Cols, Rows int
	FontAspect float64
}

// TerminalSize implements Environment.
func (e StaticEnvironment) TerminalSize() (int, int, error) {
	if e.Cols <= 0 || e.Rows <= 0 {
		return 0, 0, fmt.Errorf("static terminal size %dx%d is not positive", e.Cols, e.Rows)
	}
	return e.Cols, e.Rows, nil
}

// FontAspectRatio implements Environment.
func (e StaticEnvironment) FontAspectRatio() float64 {
	return e.FontAspect
}

// Fallback terminal size when neither the tty nor COLUMNS/LINES answer.
const (
	DefaultTerminalCols = 80
	DefaultTerminalRows = 24
)

// SystemEnvironment queries the terminal attached to a file descriptor.
// The font aspect is measured once from Go Mono since the real terminal
// font cannot be queried portably.
type SystemEnvironment struct {
	fd         int
	fontAspect float64
}

// NewSystemEnvironment returns an environment for stdout.
func NewSystemEnvironment() (*SystemEnvironment, error) {
	aspect, err := MeasureFontAspect(gomono.TTF, DefaultFontSize)
	if err != nil {
		return nil, err
	}
	return &SystemEnvironment{fd: int(os.Stdout.Fd()), fontAspect: aspect}, nil
}

// TerminalSize implements Environment. It falls back to the COLUMNS and
// LINES variables, then to 80×24.
func (e *SystemEnvironment) TerminalSize() (int, int, error) {
	if term.IsTerminal(e.fd) {
		cols, rows, err := term.GetSize(e.fd)
		if err == nil && cols > 0 && rows > 0 {
			return cols, rows, nil
		}
		Logger().Debug("terminal size query failed", "err", err)
	}
	cols := envInt("COLUMNS", DefaultTerminalCols)
	rows := envInt("LINES", DefaultTerminalRows)
	return cols, rows, nil
}

// FontAspectRatio implements Environment.
func (e *SystemEnvironment) FontAspectRatio() float64 {
	return e.fontAspect
}

func envInt(name string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(name))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
