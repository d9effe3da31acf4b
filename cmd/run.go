package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leftmike/setsession/execute"
	"github.com/leftmike/setsession/expr"
	"github.com/leftmike/setsession/parser"
	"github.com/leftmike/setsession/repl"
	"github.com/leftmike/setsession/session"
)

var (
	runCmd = &cobra.Command{
		Use:   "run [file ...]",
		Short: "Run statements from the command line and from files",
		RunE:  runRun,
	}

	user      = "startup"
	poolSize  = 0
	sqlArgs   = []string{}
	paramArgs = []string{}
)

func initRunFlags(fs *pflag.FlagSet) {
	fs.StringVar(&user, "user", user, "`user` that owns the session")
	cfgVars["user"] = fs.Lookup("user")

	fs.IntVar(&poolSize, "pool", poolSize,
		"maximum `number` of statements executing at once; 0 for no limit")
	cfgVars["pool"] = fs.Lookup("pool")

	fs.StringSliceVar(&sqlArgs, "sql", sqlArgs, "sql `statement` to execute; multiple allowed")
	fs.StringArrayVar(&paramArgs, "param", paramArgs,
		"constant `expression` bound to the next parameter; multiple allowed")
}

func init() {
	initRunFlags(runCmd.Flags())

	setsessionCmd.AddCommand(runCmd)
}

// parseParams evaluates each argument as a constant expression.
func parseParams(args []string) ([]*expr.Literal, error) {
	var params []*expr.Literal
	for idx, arg := range args {
		p := parser.NewParser(strings.NewReader(arg), fmt.Sprintf("param[%d]", idx))
		e, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		v, err := expr.Eval(e, nil)
		if err != nil {
			return nil, fmt.Errorf("param[%d]: %s", idx, err)
		}
		params = append(params, &expr.Literal{Value: v})
	}
	return params, nil
}

func newRunner() (*repl.Runner, error) {
	params, err := parseParams(paramArgs)
	if err != nil {
		return nil, fmt.Errorf("setsession: %s", err)
	}

	var exec execute.Executor = execute.GoExecutor{}
	if poolSize > 0 {
		exec = execute.NewPoolExecutor(int64(poolSize))
	} else if poolSize < 0 {
		return nil, fmt.Errorf("setsession: got %d for pool; want 0 or more", poolSize)
	}

	return &repl.Runner{
		Registry: registry,
		Executor: exec,
		Params:   params,
	}, nil
}

// interruptContext returns a context which is canceled on ^C.
func interruptContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	go func() {
		select {
		case <-ch:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(ch)
	}()
	return ctx, cancel
}

func runStatements(ctx context.Context, r *repl.Runner, ses *session.Session,
	args []string) error {

	for idx, arg := range sqlArgs {
		r.ReplSQL(ctx, ses, parser.NewParser(strings.NewReader(arg),
			fmt.Sprintf("sql-arg[%d]", idx)), os.Stdout)
	}

	for _, arg := range args {
		f, err := os.Open(arg)
		if err != nil {
			return fmt.Errorf("setsession: sql file: %s", err)
		}
		r.ReplSQL(ctx, ses, parser.NewParser(bufio.NewReader(f), arg), os.Stdout)
		f.Close()
	}
	return nil
}

func runRun(cmd *cobra.Command, args []string) error {
	r, err := newRunner()
	if err != nil {
		return err
	}

	ctx, cancel := interruptContext()
	defer cancel()

	ses := session.NewSession(user, "run", "")
	return runStatements(ctx, r, ses, args)
}
