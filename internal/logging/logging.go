package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// New returns a console logger writing to w at the given level. Colors are
// only used when w is a terminal.
func New(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %v", level, err)
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !IsTerminal(w),
		TimeFormat: time.DateTime,
	}

	return zerolog.New(console).Level(lvl).With().Timestamp().Logger(), nil
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
