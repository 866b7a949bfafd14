// =============================================================================
// HFM Metadata Compare - Logging
// =============================================================================
//
// Console logging for a comparison run. Every line carries the level and a
// timestamp:
//
//   INFO: 2024-01-15 14:30:22: Separating sections of ABTPROD_Metadata.app
//   WARNING: 2024-01-15 14:30:23: ICP Members doesn't exist in ...
//
// Warnings and errors are coloured when the output is a terminal.
//
// =============================================================================

package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Logger is the logging interface used by every pipeline stage.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// =============================================================================
// LEVELS
// =============================================================================

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a config value ("debug", "info", "warn", "error") into
// a Level. Unknown values fall back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// =============================================================================
// CONSOLE LOGGER
// =============================================================================

// Console writes timestamped log lines to an io.Writer.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
	now   func() time.Time

	warn *color.Color
	err  *color.Color
	dbg  *color.Color
}

// NewConsole creates a console logger writing to w at the given level.
func NewConsole(w io.Writer, level string) *Console {
	return &Console{
		out:   w,
		level: ParseLevel(level),
		now:   time.Now,
		warn:  color.New(color.FgYellow, color.Bold),
		err:   color.New(color.FgRed, color.Bold),
		dbg:   color.New(color.Faint),
	}
}

// DisableColor turns off colouring for this logger only.
func (c *Console) DisableColor() {
	c.warn.DisableColor()
	c.err.DisableColor()
	c.dbg.DisableColor()
}

func (c *Console) Debug(msg string, args ...interface{}) {
	c.write(LevelDebug, "DEBUG", c.dbg, msg, args...)
}

func (c *Console) Info(msg string, args ...interface{}) {
	c.write(LevelInfo, "INFO", nil, msg, args...)
}

func (c *Console) Warn(msg string, args ...interface{}) {
	c.write(LevelWarn, "WARNING", c.warn, msg, args...)
}

func (c *Console) Error(msg string, args ...interface{}) {
	c.write(LevelError, "ERROR", c.err, msg, args...)
}

func (c *Console) write(level Level, tag string, paint *color.Color, msg string, args ...interface{}) {
	if level < c.level {
		return
	}
	line := fmt.Sprintf("%s: %s: %s", tag, c.now().Format("2006-01-02 15:04:05"), fmt.Sprintf(msg, args...))

	c.mu.Lock()
	defer c.mu.Unlock()
	if paint != nil {
		paint.Fprintln(c.out, line)
		return
	}
	fmt.Fprintln(c.out, line)
}

// =============================================================================
// NOP LOGGER
// =============================================================================

type nop struct{}

func (nop) Debug(string, ...interface{}) {}
func (nop) Info(string, ...interface{})  {}
func (nop) Warn(string, ...interface{})  {}
func (nop) Error(string, ...interface{}) {}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nop{} }
