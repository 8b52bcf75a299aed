// Package lexer turns SQL text into a token stream. It never fails: anything
// it does not recognize comes out as an ILLEGAL token for the parser to
// reject, so diagnostics stay in one place.
package lexer

import (
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/token"
)

type Lexer struct {
	input []rune

	position     int // index of current rune
	readPosition int // index of next rune
	ch           rune

	line   int
	column int
}

func New(input string) *Lexer {
	l := &Lexer{input: []rune(input), line: 1}
	l.readChar()
	return l
}

// NextToken scans and returns the next token. After the input is exhausted it
// keeps returning EOF tokens.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	var tok token.Token

	switch l.ch {
	case '=':
		tok = l.newToken(token.EQ, "=")
	case '!':
		if l.peekChar() == '=' {
			tok = token.Token{Type: token.NOT_EQ, Literal: "!=", Line: l.line, Column: l.column}
			l.readChar()
		} else {
			tok = l.newToken(token.ILLEGAL, string(l.ch))
		}
	case '<':
		switch l.peekChar() {
		case '=':
			tok = token.Token{Type: token.LTE, Literal: "<=", Line: l.line, Column: l.column}
			l.readChar()
		case '>':
			tok = token.Token{Type: token.NOT_EQ, Literal: "<>", Line: l.line, Column: l.column}
			l.readChar()
		default:
			tok = l.newToken(token.LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			tok = token.Token{Type: token.GTE, Literal: ">=", Line: l.line, Column: l.column}
			l.readChar()
		} else {
			tok = l.newToken(token.GT, ">")
		}
	case '+':
		tok = l.newToken(token.PLUS, "+")
	case '-':
		tok = l.newToken(token.MINUS, "-")
	case '*':
		tok = l.newToken(token.ASTERISK, "*")
	case '/':
		tok = l.newToken(token.SLASH, "/")
	case ',':
		tok = l.newToken(token.COMMA, ",")
	case '(':
		tok = l.newToken(token.LPAREN, "(")
	case ')':
		tok = l.newToken(token.RPAREN, ")")
	case ';':
		tok = l.newToken(token.SEMICOLON, ";")
	case '\'':
		line, column := l.line, l.column
		return token.Token{Type: token.STRING, Literal: l.readString(), Line: line, Column: column}
	case 0:
		tok = token.Token{Type: token.EOF, Literal: "", Line: l.line, Column: l.column}
	default:
		if isLetter(l.ch) {
			line, column := l.line, l.column
			literal := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(literal), Literal: literal, Line: line, Column: column}
		}
		if isDigit(l.ch) {
			line, column := l.line, l.column
			return token.Token{Type: token.INT, Literal: l.readNumber(), Line: line, Column: column}
		}
		tok = l.newToken(token.ILLEGAL, string(l.ch))
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(t token.Type, literal string) token.Token {
	return token.Token{Type: t, Literal: literal, Line: l.line, Column: l.column}
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return string(l.input[start:l.position])
}

func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return string(l.input[start:l.position])
}

// readString consumes a single-quoted literal. The quotes are stripped; an
// unterminated literal runs to EOF. No escape sequences.
func (l *Lexer) readString() string {
	start := l.position + 1
	for {
		l.readChar()
		if l.ch == '\'' || l.ch == 0 {
			break
		}
	}
	s := string(l.input[start:l.position])
	if l.ch == '\'' {
		l.readChar()
	}
	return s
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
