package scanner

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/leftmike/setsession/parser/token"
)

type Position struct {
	Filename string
	Line     int
	Column   int
}

func (pos Position) String() string {
	s := pos.Filename
	if pos.Line > 0 {
		s += fmt.Sprintf(":%d:%d", pos.Line, pos.Column)
	}
	return s
}

// ScanCtx is the result of scanning one token. Identifier is set for Identifier and Keyword
// tokens; unquoted identifiers are folded to lower case, and keywords to upper case.
type ScanCtx struct {
	Token      rune
	Error      error
	Identifier string
	String     string
	Integer    int64
	Float      float64
	Position
}

type Scanner struct {
	initialized bool
	rr          io.RuneReader
	unread      bool
	read        rune
	filename    string
	line        int
	column      int
	buffer      bytes.Buffer
}

func (s *Scanner) Init(rr io.RuneReader, fn string) {
	if s.initialized {
		panic("scanner already initialized")
	}
	s.initialized = true

	s.rr = rr
	s.filename = fn
	s.line = 1
}

func (s *Scanner) Scan(sctx *ScanCtx) {
	s.buffer.Reset()
	sctx.Error = nil
	sctx.Filename = s.filename
	sctx.Token = s.scan(sctx)
}

func (s *Scanner) scan(sctx *ScanCtx) rune {
SkipWhitespace:
	r := s.readRune(sctx)
	for unicode.IsSpace(r) {
		r = s.readRune(sctx)
	}
	sctx.Line = s.line
	sctx.Column = s.column
	if r < 0 {
		return r
	}

	if r == '-' {
		if r2 := s.readRune(sctx); r2 == '-' {
			for r2 != '\n' {
				r2 = s.readRune(sctx)
				if r2 < 0 {
					return r2
				}
			}
			goto SkipWhitespace
		} else if r2 == token.Error {
			return r2
		}
		s.unreadRune()
		return token.Minus
	} else if r == '/' {
		if r2 := s.readRune(sctx); r2 == '*' {
			var prev rune
			r2 = 0
			for prev != '*' || r2 != '/' {
				prev = r2
				r2 = s.readRune(sctx)
				if r2 == token.EOF {
					sctx.Error = fmt.Errorf("scanner: comment missing terminating */")
					return token.Error
				} else if r2 == token.Error {
					return r2
				}
			}
			goto SkipWhitespace
		} else if r2 == token.Error {
			return r2
		}
		s.unreadRune()
		return token.Slash
	}

	switch {
	case r == ';':
		return token.EndOfStatement
	case r == 'e' || r == 'E':
		if s.readRune(sctx) == '\'' {
			return s.scanString(sctx, true)
		}
		s.unreadRune()
		return s.scanIdentifier(sctx, r)
	case unicode.IsLetter(r) || r == '_':
		return s.scanIdentifier(sctx, r)
	case unicode.IsDigit(r):
		return s.scanNumber(sctx, r)
	case r == '"':
		return s.scanQuotedIdentifier(sctx, r)
	case r == '\'':
		return s.scanString(sctx, false)
	case r == '?':
		return token.Parameter
	case token.IsOpRune(r):
		return s.scanOperator(sctx, r)
	case r == '.' || r == ',' || r == '(' || r == ')':
		return r
	}

	sctx.Error = fmt.Errorf("scanner: unexpected character '%c'", r)
	return token.Error
}

func (s *Scanner) readRune(sctx *ScanCtx) rune {
	if s.unread {
		s.unread = false
		return s.read
	}

	var err error
	s.read, _, err = s.rr.ReadRune()
	if err == io.EOF {
		s.read = token.EOF
		return token.EOF
	} else if err != nil {
		sctx.Error = err
		s.read = token.Error
		return token.Error
	}

	if s.read == '\n' {
		s.line += 1
		s.column = 0
	} else {
		s.column += 1
	}

	return s.read
}

func (s *Scanner) unreadRune() {
	s.unread = true
}

func (s *Scanner) scanOperator(sctx *ScanCtx, r rune) rune {
	s.buffer.WriteRune(r)
	r2 := s.readRune(sctx)
	if r2 == token.Error {
		return token.Error
	} else if r2 == '-' || !token.IsOpRune(r2) {
		s.unreadRune()
		if r == token.Bang || r == token.Bar {
			sctx.Error = fmt.Errorf("scanner: unexpected operator %c", r)
			return token.Error
		}
		return r
	}

	s.buffer.WriteRune(r2)
	if op, ok := token.Operators[s.buffer.String()]; ok {
		return op
	}
	sctx.Error = fmt.Errorf("scanner: unexpected operator %s", s.buffer.String())
	return token.Error
}

func (s *Scanner) scanIdentifier(sctx *ScanCtx, r rune) rune {
	for {
		s.buffer.WriteRune(r)
		r = s.readRune(sctx)
		if r == token.Error {
			return token.Error
		} else if r == token.EOF {
			break
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			s.unreadRune()
			break
		}
	}

	id := s.buffer.String()
	if token.IsKeyword(id) {
		sctx.Identifier = strings.ToUpper(id)
		return token.Keyword
	}
	sctx.Identifier = strings.ToLower(id)
	return token.Identifier
}

func (s *Scanner) scanNumber(sctx *ScanCtx, r rune) rune {
	dbl := false
	for {
		s.buffer.WriteRune(r)
		r = s.readRune(sctx)
		if r == token.Error {
			return token.Error
		} else if r == token.EOF {
			break
		}
		if !dbl && r == '.' {
			dbl = true
		} else if !unicode.IsDigit(r) {
			s.unreadRune()
			break
		}
	}

	var err error
	if dbl {
		sctx.Float, err = strconv.ParseFloat(s.buffer.String(), 64)
	} else {
		sctx.Integer, err = strconv.ParseInt(s.buffer.String(), 10, 64)
	}
	if err != nil {
		sctx.Error = fmt.Errorf("scanner: %s", err)
		return token.Error
	}
	if dbl {
		return token.Float
	}
	return token.Integer
}

func (s *Scanner) scanQuotedIdentifier(sctx *ScanCtx, delim rune) rune {
	for {
		r := s.readRune(sctx)
		if r == token.EOF {
			sctx.Error = fmt.Errorf("scanner: quoted identifier missing terminating '%c'", delim)
			return token.Error
		} else if r == token.Error {
			return token.Error
		}
		if r == delim {
			if s.readRune(sctx) != delim {
				s.unreadRune()
				break
			}
		}
		s.buffer.WriteRune(r)
	}

	if s.buffer.Len() == 0 {
		sctx.Error = fmt.Errorf("scanner: zero length quoted identifier")
		return token.Error
	}
	sctx.Identifier = s.buffer.String()
	return token.Identifier
}

func (s *Scanner) scanString(sctx *ScanCtx, esc bool) rune {
	for {
		r := s.readRune(sctx)
		if r == token.EOF {
			sctx.Error = fmt.Errorf("scanner: string missing terminating \"'\"")
			return token.Error
		} else if r == token.Error {
			return token.Error
		}

		if r == '\'' {
			if s.readRune(sctx) != '\'' {
				s.unreadRune()
				break
			}
		} else if r == '\\' && esc {
			switch r = s.readRune(sctx); r {
			case 'n':
				r = '\n'
			case 'r':
				r = '\r'
			case 't':
				r = '\t'
			case '\\', '\'':
			case token.EOF:
				sctx.Error = fmt.Errorf("scanner: incomplete string escape")
				return token.Error
			case token.Error:
				return token.Error
			default:
				sctx.Error = fmt.Errorf("scanner: unknown string escape \\%c", r)
				return token.Error
			}
		}
		s.buffer.WriteRune(r)
	}

	sctx.String = s.buffer.String()
	return token.String
}
