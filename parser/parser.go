package parser

import (
	"fmt"
	"io"
	"runtime"

	"github.com/leftmike/setsession/execute"
	"github.com/leftmike/setsession/expr"
	"github.com/leftmike/setsession/parser/scanner"
	"github.com/leftmike/setsession/parser/token"
	"github.com/leftmike/setsession/sql"
)

type Parser interface {
	// Parse returns the next statement, or io.EOF if there are no more.
	Parse() (execute.Stmt, error)
	ParseExpr() (expr.Expr, error)
}

type parser struct {
	scanner   scanner.Scanner
	sctx      scanner.ScanCtx
	unscanned bool
	params    int
}

func NewParser(rr io.RuneReader, fn string) Parser {
	var p parser
	p.scanner.Init(rr, fn)
	return &p
}

func (p *parser) Parse() (stmt execute.Stmt, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); ok {
				panic(r)
			}
			err = r.(error)
			stmt = nil
			p.skipStmt()
		}
	}()

	for {
		t := p.scan()
		if t == token.EOF {
			return nil, io.EOF
		} else if t != token.EndOfStatement {
			break
		}
	}
	p.unscan()

	p.params = 0
	stmt = p.parseStmt()
	p.expectEndOfStatement()
	return
}

func (p *parser) ParseExpr() (e expr.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); ok {
				panic(r)
			}
			err = r.(error)
			e = nil
		}
	}()

	p.params = 0
	e = p.parseExpr()
	p.expectEndOfStatement()
	return
}

func (p *parser) error(msg string) {
	panic(fmt.Errorf("parser: %s: %s", p.sctx.Position, msg))
}

func (p *parser) scan() rune {
	if p.unscanned {
		p.unscanned = false
		return p.sctx.Token
	}

	p.scanner.Scan(&p.sctx)
	if p.sctx.Token == token.Error {
		p.error(p.sctx.Error.Error())
	}
	return p.sctx.Token
}

func (p *parser) unscan() {
	p.unscanned = true
}

// skipStmt discards the rest of a statement which failed to parse, so that the next call to
// Parse starts with the following statement.
func (p *parser) skipStmt() {
	p.unscanned = false
	for p.sctx.Token != token.EOF && p.sctx.Token != token.EndOfStatement {
		p.scanner.Scan(&p.sctx)
	}
}

func (p *parser) got() string {
	switch p.sctx.Token {
	case token.Identifier:
		return fmt.Sprintf("identifier %s", p.sctx.Identifier)
	case token.Keyword:
		return fmt.Sprintf("keyword %s", p.sctx.Identifier)
	case token.String:
		return fmt.Sprintf("string %q", p.sctx.String)
	case token.Integer:
		return fmt.Sprintf("integer %d", p.sctx.Integer)
	case token.Float:
		return fmt.Sprintf("float %g", p.sctx.Float)
	}
	return token.Format(p.sctx.Token)
}

func (p *parser) expectKeyword(kws ...string) string {
	if p.scan() == token.Keyword {
		for _, kw := range kws {
			if kw == p.sctx.Identifier {
				return kw
			}
		}
	}

	var msg string
	for i, kw := range kws {
		if i > 0 && i == len(kws)-1 {
			msg += ", or "
		} else if i > 0 {
			msg += ", "
		}
		msg += kw
	}
	p.error(fmt.Sprintf("expected keyword %s got %s", msg, p.got()))
	return ""
}

func (p *parser) optionalKeyword(kw string) bool {
	if p.scan() == token.Keyword && p.sctx.Identifier == kw {
		return true
	}
	p.unscan()
	return false
}

func (p *parser) expectIdentifier(msg string) string {
	if p.scan() != token.Identifier {
		p.error(fmt.Sprintf("%s got %s", msg, p.got()))
	}
	return p.sctx.Identifier
}

func (p *parser) expectToken(r rune) {
	if p.scan() != r {
		p.error(fmt.Sprintf("expected %s got %s", token.Format(r), p.got()))
	}
}

func (p *parser) maybeToken(r rune) bool {
	if p.scan() == r {
		return true
	}
	p.unscan()
	return false
}

func (p *parser) expectEndOfStatement() {
	t := p.scan()
	if t != token.EOF && t != token.EndOfStatement {
		p.error(fmt.Sprintf("expected the end of the statement got %s", p.got()))
	}
}

func (p *parser) parseStmt() execute.Stmt {
	switch p.expectKeyword("SET", "RESET", "SHOW") {
	case "SET":
		// SET SESSION <name> = <expr>
		p.expectKeyword("SESSION")
		stmt := execute.SetSession{Name: p.parseName()}
		p.expectToken(token.Equal)
		stmt.Value = p.parseExpr()
		return &stmt
	case "RESET":
		// RESET SESSION <name>
		p.expectKeyword("SESSION")
		return &execute.ResetSession{Name: p.parseName()}
	case "SHOW":
		// SHOW SESSION [ALL]
		p.expectKeyword("SESSION")
		return &execute.ShowSession{Hidden: p.optionalKeyword("ALL")}
	}
	return nil
}

// <name>: [<catalog> .] <property>
func (p *parser) parseName() sql.QualifiedName {
	parts := []string{p.expectIdentifier("expected a session property name")}
	for p.maybeToken(token.Dot) {
		parts = append(parts, p.expectIdentifier("expected a session property name"))
	}

	qn, err := sql.MakeQualifiedName(parts...)
	if err != nil {
		p.error(err.Error())
	}
	return qn
}

/*
<expr>:
      <literal>
    | ?
    | - <expr>
    | NOT <expr>
    | ( <expr> )
    | <expr> <op> <expr>
    | <ref> [. <ref> ...]
    | <func> ( [<expr> [,...]] )
<op>:
      + - * / % ||
    | = == != <> < <= > >=
    | AND | OR
*/

var binaryOps = map[rune]expr.Op{
	token.BarBar:       expr.ConcatOp,
	token.Equal:        expr.EqualOp,
	token.EqualEqual:   expr.EqualOp,
	token.BangEqual:    expr.NotEqualOp,
	token.Greater:      expr.GreaterThanOp,
	token.GreaterEqual: expr.GreaterEqualOp,
	token.Less:         expr.LessThanOp,
	token.LessEqual:    expr.LessEqualOp,
	token.LessGreater:  expr.NotEqualOp,
	token.Minus:        expr.SubtractOp,
	token.Percent:      expr.ModuloOp,
	token.Plus:         expr.AddOp,
	token.Slash:        expr.DivideOp,
	token.Star:         expr.MultiplyOp,
}

func (p *parser) parseExpr() expr.Expr {
	return p.parseBinary(0)
}

func (p *parser) binaryOp() (expr.Op, bool) {
	t := p.scan()
	if op, ok := binaryOps[t]; ok {
		return op, true
	} else if t == token.Keyword && p.sctx.Identifier == "AND" {
		return expr.AndOp, true
	} else if t == token.Keyword && p.sctx.Identifier == "OR" {
		return expr.OrOp, true
	}
	p.unscan()
	return 0, false
}

// parseBinary parses an expression whose operators all bind tighter than prec; operators
// of the same precedence associate to the left.
func (p *parser) parseBinary(prec int) expr.Expr {
	e := p.parseUnary()
	for {
		op, ok := p.binaryOp()
		if !ok {
			return e
		}
		if op.Precedence() <= prec {
			p.unscan()
			return e
		}
		e = &expr.Binary{Op: op, Left: e, Right: p.parseBinary(op.Precedence())}
	}
}

func (p *parser) parseUnary() expr.Expr {
	t := p.scan()
	switch t {
	case token.Minus:
		e := p.parseBinary(expr.NegateOp.Precedence())
		if l, ok := e.(*expr.Literal); ok {
			switch v := l.Value.(type) {
			case sql.Int64Value:
				return expr.Int64Literal(-int64(v))
			case sql.Float64Value:
				return expr.Float64Literal(-float64(v))
			}
		}
		return &expr.Unary{Op: expr.NegateOp, Expr: e}
	case token.Keyword:
		switch p.sctx.Identifier {
		case "NOT":
			return &expr.Unary{Op: expr.NotOp, Expr: p.parseBinary(expr.NotOp.Precedence())}
		case "TRUE":
			return expr.True()
		case "FALSE":
			return expr.False()
		case "NULL":
			return expr.Nil()
		}
	case token.String:
		return expr.StringLiteral(p.sctx.String)
	case token.Integer:
		return expr.Int64Literal(p.sctx.Integer)
	case token.Float:
		return expr.Float64Literal(p.sctx.Float)
	case token.Parameter:
		e := expr.Param{Num: p.params}
		p.params += 1
		return e
	case token.LParen:
		// ( <expr> )
		e := &expr.Unary{Op: expr.NoOp, Expr: p.parseExpr()}
		if p.scan() != token.RParen {
			p.error(fmt.Sprintf("expected closing parenthesis got %s", p.got()))
		}
		return e
	case token.Identifier:
		id := p.sctx.Identifier
		if p.maybeToken(token.LParen) {
			// <func> ( [<expr> [,...]] )
			c := &expr.Call{Name: id}
			if !p.maybeToken(token.RParen) {
				for {
					c.Args = append(c.Args, p.parseExpr())
					if p.maybeToken(token.RParen) {
						break
					}
					p.expectToken(token.Comma)
				}
			}
			return c
		}

		// <ref> [. <ref> ...]
		ref := expr.Ref{id}
		for p.maybeToken(token.Dot) {
			ref = append(ref, p.expectIdentifier("expected a reference"))
		}
		return ref
	}

	p.error(fmt.Sprintf(
		"expected a string, a number, a parameter, TRUE, FALSE, NULL or a function got %s",
		p.got()))
	return nil
}
