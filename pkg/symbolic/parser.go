package symbolic

import (
	"fmt"
	"strconv"
)

// Parser builds an Expr from tokens using recursive descent.
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/' | '%') unary)*
//	unary   := ('-' | '+') unary | power
//	power   := primary ('^' unary)?
//	primary := NUMBER | IDENT | IDENT '(' args ')' | '(' expr ')'
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse tokenizes and parses expr
func Parse(expr string) (Expr, error) {
	tokens, err := NewLexer(expr).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// Parse parses the full token stream
func (p *Parser) Parse() (Expr, error) {
	if p.peek().Type == TokenEOF {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}

	expr, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, fmt.Errorf("%w: unexpected %s at position %d", ErrSyntax, tok.Type, tok.Pos)
	}
	return expr, nil
}

func (p *Parser) parseAddSub() (Expr, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == TokenPlus || p.peek().Type == TokenMinus {
		op := p.advance()
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpression{Left: left, Operator: op.Value[0], Right: right}
	}

	return left, nil
}

func (p *Parser) parseMulDiv() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == TokenStar || p.peek().Type == TokenSlash || p.peek().Type == TokenPercent {
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpression{Left: left, Operator: op.Value[0], Right: right}
	}

	return left, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	switch p.peek().Type {
	case TokenMinus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &NegateExpression{Operand: operand}, nil
	case TokenPlus:
		p.advance()
		return p.parseUnary()
	}
	return p.parsePower()
}

// parsePower is right-associative: 2^3^2 = 2^(3^2), and -2^2 = -(2^2)
func (p *Parser) parsePower() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if p.peek().Type != TokenCaret {
		return base, nil
	}
	p.advance()

	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &BinaryExpression{Left: base, Operator: '^', Right: exponent}, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.advance()

	switch tok.Type {
	case TokenNumber:
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %q", ErrSyntax, tok.Value)
		}
		return &NumberLiteral{Value: v}, nil

	case TokenIdentifier:
		if p.peek().Type == TokenLeftParen {
			return p.parseCall(tok.Value)
		}
		return &SymbolRef{Name: tok.Value}, nil

	case TokenLeftParen:
		inner, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, fmt.Errorf("%w: unexpected %s at position %d", ErrSyntax, tok.Type, tok.Pos)
	}
}

func (p *Parser) parseCall(name string) (Expr, error) {
	p.advance() // (

	call := &CallExpression{Name: name, Args: make([]Expr, 0)}
	if p.peek().Type == TokenRightParen {
		p.advance()
		return call, nil
	}

	for {
		arg, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		if p.peek().Type != TokenComma {
			break
		}
		p.advance()
	}

	if err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	return call, nil
}

func (p *Parser) expect(tokenType TokenType) error {
	tok := p.advance()
	if tok.Type != tokenType {
		return fmt.Errorf("%w: expected %s, got %s at position %d", ErrSyntax, tokenType, tok.Type, tok.Pos)
	}
	return nil
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}
