package symbolic

import (
	"fmt"
	"unicode"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenIdentifier

	TokenPlus       // +
	TokenMinus      // -
	TokenStar       // *
	TokenSlash      // /
	TokenPercent    // %
	TokenCaret      // ^
	TokenLeftParen  // (
	TokenRightParen // )
	TokenComma      // ,
)

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Lexer tokenizes a symbolic expression
type Lexer struct {
	input  string
	pos    int
	tokens []Token
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		tokens: make([]Token, 0),
	}
}

// Tokenize converts the input string into tokens terminated by TokenEOF
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]

		if unicode.IsSpace(rune(ch)) {
			l.pos++
			continue
		}

		token, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, token)
	}

	l.tokens = append(l.tokens, Token{Type: TokenEOF, Pos: l.pos})
	return l.tokens, nil
}

func (l *Lexer) nextToken() (Token, error) {
	ch := l.input[l.pos]

	switch ch {
	case '+':
		return l.single(TokenPlus), nil
	case '-':
		return l.single(TokenMinus), nil
	case '*':
		return l.single(TokenStar), nil
	case '/':
		return l.single(TokenSlash), nil
	case '%':
		return l.single(TokenPercent), nil
	case '^':
		return l.single(TokenCaret), nil
	case '(':
		return l.single(TokenLeftParen), nil
	case ')':
		return l.single(TokenRightParen), nil
	case ',':
		return l.single(TokenComma), nil
	}

	if isDigit(ch) || (ch == '.' && isDigit(l.peekAhead(1))) {
		return l.readNumber(), nil
	}

	if unicode.IsLetter(rune(ch)) || ch == '_' {
		return l.readIdentifier(), nil
	}

	return Token{}, fmt.Errorf("%w: unexpected character '%c' at position %d", ErrSyntax, ch, l.pos)
}

func (l *Lexer) single(tokenType TokenType) Token {
	token := Token{Type: tokenType, Value: l.input[l.pos : l.pos+1], Pos: l.pos}
	l.pos++
	return token
}

// readNumber reads digits, an optional fraction and an optional exponent
func (l *Lexer) readNumber() Token {
	start := l.pos

	for l.pos < len(l.input) && (isDigit(l.input[l.pos]) || l.input[l.pos] == '.') {
		l.pos++
	}

	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		next := l.peekAhead(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAhead(2))) {
			l.pos += 2
			for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
				l.pos++
			}
		}
	}

	return Token{Type: TokenNumber, Value: l.input[start:l.pos], Pos: start}
}

func (l *Lexer) readIdentifier() Token {
	start := l.pos

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if !unicode.IsLetter(rune(ch)) && !isDigit(ch) && ch != '_' {
			break
		}
		l.pos++
	}

	return Token{Type: TokenIdentifier, Value: l.input[start:l.pos], Pos: start}
}

func (l *Lexer) peekAhead(n int) byte {
	pos := l.pos + n
	if pos >= len(l.input) {
		return 0
	}
	return l.input[pos]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenNumber:
		return "NUMBER"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenPercent:
		return "%"
	case TokenCaret:
		return "^"
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	case TokenComma:
		return ","
	default:
		return fmt.Sprintf("Token(%d)", int(t))
	}
}
