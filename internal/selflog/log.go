// Copyright 2026 The Selfminer Authors
// This file is part of the selfminer library.
//
// The selfminer library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The selfminer library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the selfminer library. If not, see <http://www.gnu.org/licenses/>.

// Package selflog is a small leveled, structured logger in the shape of
// go-abey's log package: Debug/Info/Warn/Error/Crit, each taking a message
// and an alternating key/value tail.
package selflog

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/go-stack/stack"
	"github.com/mattn/go-colorable"
)

// Level is the severity of a log record, ordered low to high.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelCrit
)

func (lv Level) String() string {
	switch lv {
	case LevelDebug:
		return "DEBU"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "EROR"
	case LevelCrit:
		return "CRIT"
	default:
		return "????"
	}
}

var levelColor = map[Level]*color.Color{
	LevelDebug: color.New(color.FgHiBlack),
	LevelInfo:  color.New(color.FgGreen),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed),
	LevelCrit:  color.New(color.FgHiRed, color.Bold),
}

// Logger writes leveled records to a destination writer. Level tags are
// colorized through fatih/color, which leaves them plain when standard
// output is not a terminal, whatever the destination writer is.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	min    Level
	colors bool
}

var root = New(colorable.NewColorableStderr(), LevelInfo)

// New builds a Logger writing to out, filtering records below min.
func New(out io.Writer, min Level) *Logger {
	return &Logger{out: out, min: min, colors: true}
}

// SetOutput redirects where the root logger writes.
func SetOutput(w io.Writer) { root.mu.Lock(); root.out = w; root.mu.Unlock() }

// SetLevel changes the minimum level the root logger emits.
func SetLevel(lv Level) { root.mu.Lock(); root.min = lv; root.mu.Unlock() }

func Debug(msg string, ctx ...interface{}) { root.log(LevelDebug, msg, ctx) }
func Info(msg string, ctx ...interface{})  { root.log(LevelInfo, msg, ctx) }
func Warn(msg string, ctx ...interface{})  { root.log(LevelWarn, msg, ctx) }
func Error(msg string, ctx ...interface{}) { root.log(LevelError, msg, ctx) }

// Crit logs at the highest level with a captured call frame, then panics.
// Used exclusively for invariant violations (spec: fail fast, unrecoverable).
func Crit(msg string, ctx ...interface{}) {
	root.log(LevelCrit, msg, ctx)
	panic(msg)
}

func (l *Logger) log(lv Level, msg string, ctx []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lv < l.min {
		return
	}
	var b strings.Builder
	ts := time.Now().Format("15:04:05.000")
	c := levelColor[lv]
	if l.colors {
		b.WriteString(c.Sprintf("%s", lv))
	} else {
		b.WriteString(lv.String())
	}
	fmt.Fprintf(&b, "[%s] %s", ts, msg)
	for i := 0; i+1 < len(ctx); i += 2 {
		fmt.Fprintf(&b, " %v=%v", ctx[i], ctx[i+1])
	}
	if lv == LevelCrit {
		frame := stack.Caller(2)
		fmt.Fprintf(&b, " at=%+v", frame)
	}
	fmt.Fprintln(l.out, b.String())
}

// Discard silences the root logger entirely; used by tests that exercise
// Crit paths without wanting console noise.
func Discard() { SetOutput(io.Discard) }
