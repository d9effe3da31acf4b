package repl

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/leftmike/setsession/execute"
	"github.com/leftmike/setsession/expr"
	"github.com/leftmike/setsession/parser"
	"github.com/leftmike/setsession/property"
	"github.com/leftmike/setsession/session"
)

// Runner runs parsed statements against a session. Params are bound to the parameters of
// every SET SESSION statement.
type Runner struct {
	Registry *property.Registry
	Executor execute.Executor
	Params   []*expr.Literal
}

// Run executes one statement and writes its result to w.
func (r *Runner) Run(ctx context.Context, ses *session.Session, stmt execute.Stmt,
	w io.Writer) error {

	switch stmt := stmt.(type) {
	case *execute.SetSession:
		err := stmt.Start(ctx, r.Executor, r.Registry, ses, r.Params).Wait(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "SET SESSION")
	case *execute.ResetSession:
		err := stmt.Execute(ctx, r.Registry, ses)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "RESET SESSION")
	case *execute.ShowSession:
		tw := tablewriter.NewWriter(w)
		tw.SetAutoFormatHeaders(false)
		tw.SetAutoWrapText(false)
		tw.SetHeader(stmt.Columns())
		tw.AppendBulk(stmt.Rows(r.Registry, ses))
		tw.Render()
		fmt.Fprintf(w, "(%d rows)\n", tw.NumLines())
	default:
		panic(fmt.Sprintf("unexpected statement: %#v", stmt))
	}
	return nil
}

// ReplSQL parses and runs statements until p returns io.EOF. Errors are written to w and do
// not stop the loop.
func (r *Runner) ReplSQL(ctx context.Context, ses *session.Session, p parser.Parser,
	w io.Writer) {

	for {
		stmt, err := p.Parse()
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}

		err = r.Run(ctx, ses, stmt, w)
		if err != nil {
			fmt.Fprintln(w, err)
		}
	}
}
