package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/leftmike/setsession/parser"
	"github.com/leftmike/setsession/session"
)

const (
	historyFile = ".setsession_history"
)

type lineReader struct {
	line *liner.State
	r    *strings.Reader
}

func (lr *lineReader) ReadRune() (r rune, size int, err error) {
	for {
		if lr.r == nil {
			s, err := lr.line.Prompt("setsession: ")
			if err != nil {
				return 0, 0, err
			}
			lr.line.AppendHistory(s)
			lr.r = strings.NewReader(s + "\n")
		}

		r, sz, err := lr.r.ReadRune()
		if err == io.EOF {
			lr.r = nil
		} else if err != nil {
			return 0, 0, err
		} else {
			return r, sz, nil
		}
	}
}

// Interact runs statements typed at the console against ses until end of input.
func (r *Runner) Interact(ctx context.Context, ses *session.Session) {
	line := liner.NewLiner()
	defer line.Close()

	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	r.ReplSQL(ctx, ses, parser.NewParser(&lineReader{line: line}, "console"), os.Stdout)

	if f, err := os.Create(historyFile); err != nil {
		fmt.Fprintf(os.Stderr, "setsession: error writing history file, %s: %s\n", historyFile,
			err)
	} else {
		line.WriteHistory(f)
		f.Close()
	}
}
