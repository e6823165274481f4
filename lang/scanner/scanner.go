// Package scanner implements the lexical analysis phase of the Lox
// pipeline: it turns source bytes into a sequence of token.Token values.
//
// The byte-at-a-time advance/peek design follows the scanner in
// github.com/mna/nenuphar/lang/scanner, simplified for Lox's much smaller
// token set and single-file source model (no token.FileSet multiplexing).
package scanner

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/mna/loxi/lang/token"
)

// Error is a single lexical error, formatted to match the wire contract in
// the specification: "[line N] Error: message".
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

// Scanner tokenizes a single Lox source file.
type Scanner struct {
	src  []byte
	toks []token.Token
	errs *multierror.Error

	start   int // byte offset of the token currently being scanned
	current int // byte offset of the next unread byte
	line    int
}

// New returns a Scanner ready to tokenize src.
func New(src []byte) *Scanner {
	return &Scanner{src: src, line: 1}
}

// Scan tokenizes the entire source and returns the resulting tokens
// (terminated by a single EOF token) along with any accumulated errors. The
// returned error, if non-nil, aggregates every independent lexical error
// found, not just the first.
func Scan(src []byte) ([]token.Token, error) {
	s := New(src)
	return s.ScanTokens()
}

// ScanTokens runs the scanner to completion.
func (s *Scanner) ScanTokens() ([]token.Token, error) {
	for !s.atEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.toks = append(s.toks, token.Token{
		Kind:  token.EOF,
		Line:  s.line,
		Start: s.current,
		End:   s.current,
	})
	if s.errs == nil {
		return s.toks, nil
	}
	// errors.Join exposes each accumulated error through Unwrap() []error.
	return s.toks, errors.Join(s.errs.Errors...)
}

func (s *Scanner) atEnd() bool { return s.current >= len(s.src) }

func (s *Scanner) advance() byte {
	b := s.src[s.current]
	s.current++
	return b
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

// match consumes the current byte and returns true if it equals want,
// otherwise it leaves the scanner position untouched.
func (s *Scanner) match(want byte) bool {
	if s.atEnd() || s.src[s.current] != want {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) emit(kind token.Kind) {
	s.emitLiteral(kind, nil)
}

func (s *Scanner) emitLiteral(kind token.Kind, literal any) {
	s.toks = append(s.toks, token.Token{
		Kind:    kind,
		Lexeme:  string(s.src[s.start:s.current]),
		Literal: literal,
		Line:    s.line,
		Start:   s.start,
		End:     s.current,
	})
}

func (s *Scanner) errorf(format string, args ...any) {
	s.errs = multierror.Append(s.errs, &Error{Line: s.line, Message: fmt.Sprintf(format, args...)})
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.emit(token.LPAREN)
	case ')':
		s.emit(token.RPAREN)
	case '{':
		s.emit(token.LBRACE)
	case '}':
		s.emit(token.RBRACE)
	case ',':
		s.emit(token.COMMA)
	case '.':
		s.emit(token.DOT)
	case '-':
		s.emit(token.MINUS)
	case '+':
		s.emit(token.PLUS)
	case ';':
		s.emit(token.SEMICOLON)
	case '*':
		s.emit(token.STAR)
	case '!':
		s.emitEitherMatch('=', token.BANG_EQUAL, token.BANG)
	case '=':
		s.emitEitherMatch('=', token.EQUAL_EQUAL, token.EQUAL)
	case '<':
		s.emitEitherMatch('=', token.LESS_EQUAL, token.LESS)
	case '>':
		s.emitEitherMatch('=', token.GREATER_EQUAL, token.GREATER)
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.atEnd() {
				s.advance()
			}
		} else {
			s.emit(token.SLASH)
		}
	case ' ', '\r', '\t':
		// ignore whitespace
	case '\n':
		s.line++
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdentifier()
		default:
			s.errorf("Unexpected character '%c'", c)
		}
	}
}

func (s *Scanner) emitEitherMatch(next byte, ifMatch, otherwise token.Kind) {
	if s.match(next) {
		s.emit(ifMatch)
	} else {
		s.emit(otherwise)
	}
}

func (s *Scanner) scanString() {
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.atEnd() {
		s.errorf("Unterminated string.")
		return
	}
	s.advance() // closing quote
	// lexeme stores the unquoted content, span still covers the quotes.
	value := string(s.src[s.start+1 : s.current-1])
	s.toks = append(s.toks, token.Token{
		Kind:    token.STRING,
		Lexeme:  value,
		Literal: value,
		Line:    s.line,
		Start:   s.start,
		End:     s.current,
	})
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // consume '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	lexeme := string(s.src[s.start:s.current])
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		s.errorf("invalid number literal %q", lexeme)
		return
	}
	s.emitLiteral(token.NUMBER, f)
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	lexeme := string(s.src[s.start:s.current])
	s.emit(token.Lookup(lexeme))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
