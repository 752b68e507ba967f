package lexer

import (
	"strconv"
	"unicode"

	"github.com/aemlang/aemc/internal/diag"
)

type LexerErrorKind int

const (
	ErrUnterminatedString LexerErrorKind = iota
	ErrUnterminatedBlockComment
	ErrIllegalRune
	ErrMalformedNumber
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnterminatedString:
		return diag.CodeLexerUnterminatedString
	case ErrUnterminatedBlockComment:
		return diag.CodeLexerUnterminatedBlockComment
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	case ErrMalformedNumber:
		return diag.CodeLexerMalformedNumber
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Lexer represents the lexer state
type Lexer struct {
	input      []rune
	pos        int    // index of the current rune
	ch         rune   // current rune (0 = EOF)
	line       int    // current line number (1-based)
	column     int    // current column number (1-based)
	filename   string // attributed to every emitted span
	emitTrivia bool   // whether to emit trivia tokens (comments, whitespace)

	Errors []LexerError
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	span.Filename = l.filename
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// newLexer is the single internal constructor that sets up all lexer state
func newLexer(input string, emitTrivia bool) *Lexer {
	r := []rune(input)
	l := &Lexer{
		input:      r,
		pos:        -1, // start before first rune
		ch:         0,
		line:       1,
		column:     0, // will be 1 after first read()
		emitTrivia: emitTrivia,
	}
	l.read() // move to first character
	return l
}

// New creates a new lexer for the given input (trivia mode disabled)
func New(input string) *Lexer {
	return newLexer(input, false)
}

// NewWithTrivia creates a new lexer that emits trivia tokens
func NewWithTrivia(input string) *Lexer {
	return newLexer(input, true)
}

// SetFilename attributes all subsequently emitted spans to the given filename.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// read advances the lexer to the next character.
// Line/column tracking: line/column always reflect the position of the
// character at pos.
func (l *Lexer) read() {
	l.pos++
	prevPos := l.pos - 1
	inputLen := len(l.input)

	if l.pos >= inputLen {
		// We've moved past the last rune; normalize position to virtual EOF
		if prevPos >= 0 && prevPos < inputLen {
			if l.input[prevPos] == '\n' {
				l.line++
				l.column = 1
			} else {
				l.column++
			}
		} else if prevPos < 0 {
			// Empty input: column should point to the first position
			l.column = 1
		}
		l.ch = 0 // EOF
		return
	}

	l.ch = l.input[l.pos]

	// If the previous character was a newline, we're now on a new line
	if prevPos >= 0 && prevPos < inputLen && l.input[prevPos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// peek returns the next character without advancing
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// currentSpanStart returns the current position for span tracking
func (l *Lexer) currentSpanStart() (line, column, pos int) {
	return l.line, l.column, l.pos
}

// makeToken creates a token with span information
func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos, endPos int, raw, value string) Token {
	return Token{
		Type:  tokType,
		Raw:   raw,
		Value: value,
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    startPos,
			End:      endPos,
		},
	}
}

// twoCharToken consumes two runes and emits a single token for them.
func (l *Lexer) twoCharToken(tokType TokenType, startLine, startColumn, startPos int) Token {
	ch := l.ch
	l.read()
	raw := string(ch) + string(l.ch)
	l.read()
	return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, raw, raw)
}

// oneCharToken consumes the current rune and emits a token for it.
func (l *Lexer) oneCharToken(tokType TokenType, startLine, startColumn, startPos int) Token {
	raw := string(l.ch)
	l.read()
	return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, raw, raw)
}

// skipWhitespace skips whitespace characters, optionally returning a trivia token
func (l *Lexer) skipWhitespace() *Token {
	if !l.emitTrivia {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.read()
		}
		return nil
	}

	startLine, startColumn, startPos := l.currentSpanStart()

	if l.ch == '\n' || l.ch == '\r' {
		raw := string(l.ch)
		l.read()
		if l.ch == '\n' && raw == "\r" {
			raw = "\r\n"
			l.read()
		}
		tok := l.makeToken(NEWLINE, startLine, startColumn, startPos, l.pos, raw, raw)
		return &tok
	}

	if l.ch == ' ' || l.ch == '\t' {
		for l.ch == ' ' || l.ch == '\t' {
			l.read()
		}
		raw := string(l.input[startPos:l.pos])
		tok := l.makeToken(WHITESPACE, startLine, startColumn, startPos, l.pos, raw, raw)
		return &tok
	}

	return nil
}

// skipLineComment reads to the end of line; the leading // is already consumed.
func (l *Lexer) skipLineComment(startLine, startColumn, startPos int) *Token {
	for l.ch != '\n' && l.ch != '\r' && l.ch != 0 {
		l.read()
	}
	raw := string(l.input[startPos:l.pos])

	if l.emitTrivia {
		tok := l.makeToken(LINE_COMMENT, startLine, startColumn, startPos, l.pos, raw, raw)
		return &tok
	}
	return nil
}

// skipBlockComment reads a (nestable) block comment; the leading /* is already
// consumed.
func (l *Lexer) skipBlockComment(startLine, startColumn, startPos int) *Token {
	depth := 1
	for depth > 0 {
		if l.ch == 0 {
			l.addError(
				ErrUnterminatedBlockComment,
				"unterminated block comment",
				Span{Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			break
		}
		if l.ch == '/' && l.peek() == '*' {
			l.read() // consume '/'
			l.read() // consume '*'
			depth++
		} else if l.ch == '*' && l.peek() == '/' {
			l.read() // consume '*'
			l.read() // consume '/'
			depth--
		} else {
			l.read()
		}
	}

	raw := string(l.input[startPos:l.pos])

	if l.emitTrivia {
		tok := l.makeToken(BLOCK_COMMENT, startLine, startColumn, startPos, l.pos, raw, raw)
		return &tok
	}
	return nil
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// readNumber reads a number literal. Integers and floats are distinguished by
// a decimal point or exponent marker; a leading sign is not part of the
// literal, it lexes as a separate operator token. An exponent marker must be
// followed by at least one digit (after an optional sign), otherwise the
// literal is malformed and lexes as ILLEGAL.
func (l *Lexer) readNumber(startLine, startColumn, startPos int) (string, TokenType) {
	tokType := INT

	for isDigit(l.ch) {
		l.read()
	}

	if l.ch == '.' && isDigit(l.peek()) {
		tokType = FLOAT
		l.read() // consume '.'
		for isDigit(l.ch) {
			l.read()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peek()
		if isDigit(next) || next == '+' || next == '-' {
			tokType = FLOAT
			l.read() // consume 'e' or 'E'
			if l.ch == '+' || l.ch == '-' {
				l.read()
			}
			if !isDigit(l.ch) {
				raw := string(l.input[startPos:l.pos])
				l.addError(
					ErrMalformedNumber,
					"exponent has no digits in "+strconv.Quote(raw),
					Span{Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
				)
				return raw, ILLEGAL
			}
			for isDigit(l.ch) {
				l.read()
			}
		}
	}

	return string(l.input[startPos:l.pos]), tokType
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		if triviaTok := l.skipWhitespace(); triviaTok != nil {
			return *triviaTok
		}

		startLine, startColumn, startPos := l.currentSpanStart()

		switch l.ch {
		case 0:
			if startColumn == 0 {
				startColumn = 1
			}
			return l.makeToken(EOF, startLine, startColumn, startPos, startPos, "", "")

		case '=':
			if l.peek() == '=' {
				return l.twoCharToken(EQ, startLine, startColumn, startPos)
			}
			return l.oneCharToken(ASSIGN, startLine, startColumn, startPos)

		case '+':
			return l.oneCharToken(PLUS, startLine, startColumn, startPos)

		case '-':
			if l.peek() == '>' {
				return l.twoCharToken(ARROW, startLine, startColumn, startPos)
			}
			return l.oneCharToken(MINUS, startLine, startColumn, startPos)

		case '!':
			if l.peek() == '=' {
				return l.twoCharToken(NOT_EQ, startLine, startColumn, startPos)
			}
			return l.oneCharToken(BANG, startLine, startColumn, startPos)

		case '*':
			return l.oneCharToken(ASTERISK, startLine, startColumn, startPos)

		case '%':
			return l.oneCharToken(PERCENT, startLine, startColumn, startPos)

		case '&':
			if l.peek() == '&' {
				return l.twoCharToken(AND, startLine, startColumn, startPos)
			}
			return l.illegalToken(startLine, startColumn, startPos)

		case '|':
			if l.peek() == '|' {
				return l.twoCharToken(OR, startLine, startColumn, startPos)
			}
			return l.illegalToken(startLine, startColumn, startPos)

		case '/':
			switch l.peek() {
			case '/':
				l.read() // consume first '/'
				l.read() // consume second '/'
				if triviaTok := l.skipLineComment(startLine, startColumn, startPos); triviaTok != nil {
					return *triviaTok
				}
				continue
			case '*':
				l.read() // consume '/'
				l.read() // consume '*'
				if triviaTok := l.skipBlockComment(startLine, startColumn, startPos); triviaTok != nil {
					return *triviaTok
				}
				continue
			default:
				return l.oneCharToken(SLASH, startLine, startColumn, startPos)
			}

		case '<':
			if l.peek() == '=' {
				return l.twoCharToken(LE, startLine, startColumn, startPos)
			}
			return l.oneCharToken(LT, startLine, startColumn, startPos)

		case '>':
			if l.peek() == '=' {
				return l.twoCharToken(GE, startLine, startColumn, startPos)
			}
			return l.oneCharToken(GT, startLine, startColumn, startPos)

		case ';':
			return l.oneCharToken(SEMICOLON, startLine, startColumn, startPos)

		case ',':
			return l.oneCharToken(COMMA, startLine, startColumn, startPos)

		case ':':
			return l.oneCharToken(COLON, startLine, startColumn, startPos)

		case '"':
			raw, value, terminated := l.readString(startLine, startColumn, startPos)
			if !terminated {
				return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, raw)
			}
			return l.makeToken(STRING, startLine, startColumn, startPos, l.pos, raw, value)

		case '(':
			return l.oneCharToken(LPAREN, startLine, startColumn, startPos)

		case ')':
			return l.oneCharToken(RPAREN, startLine, startColumn, startPos)

		case '{':
			return l.oneCharToken(LBRACE, startLine, startColumn, startPos)

		case '}':
			return l.oneCharToken(RBRACE, startLine, startColumn, startPos)

		default:
			if isLetter(l.ch) {
				literal := l.readIdentifier()
				tokType := LookupIdent(literal)
				return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, literal, literal)
			} else if isDigit(l.ch) {
				literal, tokType := l.readNumber(startLine, startColumn, startPos)
				return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, literal, literal)
			}
			return l.illegalToken(startLine, startColumn, startPos)
		}
	}
}

// illegalToken consumes the offending rune, records a lexer error, and emits
// an ILLEGAL token so the caller can keep scanning for batch reporting.
func (l *Lexer) illegalToken(startLine, startColumn, startPos int) Token {
	raw := string(l.ch)
	l.read()
	tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, raw)
	l.addError(
		ErrIllegalRune,
		"illegal character "+strconv.Quote(raw),
		tok.Span,
	)
	return tok
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}

// readString reads a string literal, handling escape sequences.
// Returns both raw (with escapes) and decoded (without escapes) values,
// along with a flag indicating whether the string was properly terminated.
func (l *Lexer) readString(startLine, startColumn, startPos int) (raw string, value string, terminated bool) {
	var rawRunes []rune
	var decodedRunes []rune

	rawRunes = append(rawRunes, '"') // include opening quote
	l.read()                         // skip opening quote

	for {
		if l.ch == 0 {
			l.addError(
				ErrUnterminatedString,
				"unterminated string literal",
				Span{Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			break
		}
		if l.ch == '"' {
			rawRunes = append(rawRunes, '"') // include closing quote
			l.read()                         // consume closing quote
			return string(rawRunes), string(decodedRunes), true
		}
		if l.ch == '\n' || l.ch == '\r' {
			l.addError(
				ErrUnterminatedString,
				"newline in string literal",
				Span{Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			break
		}
		if l.ch == '\\' {
			rawRunes = append(rawRunes, '\\')
			l.read() // skip '\'
			if l.ch != 0 {
				rawRunes = append(rawRunes, l.ch)
				switch l.ch {
				case 'n':
					decodedRunes = append(decodedRunes, '\n')
				case 't':
					decodedRunes = append(decodedRunes, '\t')
				case 'r':
					decodedRunes = append(decodedRunes, '\r')
				case '\\':
					decodedRunes = append(decodedRunes, '\\')
				case '"':
					decodedRunes = append(decodedRunes, '"')
				default:
					// Unknown escapes keep the backslash and the character
					decodedRunes = append(decodedRunes, '\\')
					decodedRunes = append(decodedRunes, l.ch)
				}
				l.read() // skip escaped char
			}
			continue
		}
		rawRunes = append(rawRunes, l.ch)
		decodedRunes = append(decodedRunes, l.ch)
		l.read()
	}

	// Unterminated (newline or EOF); return what we have so far.
	return string(rawRunes), string(decodedRunes), false
}
