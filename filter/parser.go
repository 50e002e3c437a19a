package filter

import (
	"strings"
)

// Grammar, loosest to tightest binding:
//
//	expr    = and { ("or" | "xor") and }
//	and     = unary { ["and"] unary }        adjacency is an implicit "and"
//	unary   = ("not" | "!") unary | primary
//	primary = "(" expr ")" | term
//	term    = [scope ":"] ( quoted | regex | bare )
//
// Scopes are tag, ingr and unit; a missing scope searches everything. Quoted
// values match exactly, /.../ values as a regular expression, bare values as
// a case-insensitive substring. A leading "~" on a bare value marks the
// substring match explicitly and changes nothing.

// Parse builds an expression tree from a query string.
func Parse(input string) (Expr, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &exprParser{tokens: tokens}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, &SyntaxError{Message: "unexpected " + tok.describe(), Position: tok.pos}
	}
	return expr, nil
}

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenLParen
	tokenRParen
	tokenAnd
	tokenOr
	tokenXor
	tokenNot
	tokenTerm
)

type termKind int

const (
	termBare termKind = iota
	termQuoted
	termRegex
)

type token struct {
	kind  tokenKind
	pos   int
	scope Scope
	term  termKind
	value string
}

func (t token) describe() string {
	switch t.kind {
	case tokenEOF:
		return "end of expression"
	case tokenLParen:
		return `"("`
	case tokenRParen:
		return `")"`
	case tokenAnd:
		return `"and"`
	case tokenOr:
		return `"or"`
	case tokenXor:
		return `"xor"`
	case tokenNot:
		return `"not"`
	default:
		return `term "` + t.value + `"`
	}
}

var scopePrefixes = []struct {
	name  string
	scope Scope
}{
	{"tag:", ScopeTag},
	{"ingr:", ScopeIngredient},
	{"unit:", ScopeUnit},
}

func lex(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenLParen, pos: i})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRParen, pos: i})
			i++
		case c == '&':
			tokens = append(tokens, token{kind: tokenAnd, pos: i})
			i++
		case c == '|':
			tokens = append(tokens, token{kind: tokenOr, pos: i})
			i++
		case c == '^':
			tokens = append(tokens, token{kind: tokenXor, pos: i})
			i++
		case c == '!':
			tokens = append(tokens, token{kind: tokenNot, pos: i})
			i++
		default:
			tok, next, err := lexTerm(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, pos: len(input)})
	return tokens, nil
}

// lexTerm scans one term (or keyword) starting at i.
func lexTerm(input string, i int) (token, int, error) {
	start := i
	scope := ScopeAny
	scoped := false
	for _, prefix := range scopePrefixes {
		if len(input)-i >= len(prefix.name) && strings.EqualFold(input[i:i+len(prefix.name)], prefix.name) {
			scope = prefix.scope
			scoped = true
			i += len(prefix.name)
			break
		}
	}

	if i < len(input) {
		switch input[i] {
		case '"', '\'':
			value, next, err := lexQuoted(input, i)
			if err != nil {
				return token{}, 0, err
			}
			return token{kind: tokenTerm, pos: start, scope: scope, term: termQuoted, value: value}, next, nil
		case '/':
			value, next, err := lexRegex(input, i)
			if err != nil {
				return token{}, 0, err
			}
			return token{kind: tokenTerm, pos: start, scope: scope, term: termRegex, value: value}, next, nil
		}
	}

	fuzzyMarker := false
	if i < len(input) && input[i] == '~' {
		fuzzyMarker = true
		i++
	}

	wordStart := i
	for i < len(input) && !isTermBoundary(input[i]) {
		i++
	}
	word := input[wordStart:i]
	if word == "" {
		return token{}, 0, &SyntaxError{Message: "expected a term value", Position: start}
	}

	if !scoped && !fuzzyMarker {
		switch {
		case strings.EqualFold(word, "and"):
			return token{kind: tokenAnd, pos: start}, i, nil
		case strings.EqualFold(word, "or"):
			return token{kind: tokenOr, pos: start}, i, nil
		case strings.EqualFold(word, "xor"):
			return token{kind: tokenXor, pos: start}, i, nil
		case strings.EqualFold(word, "not"):
			return token{kind: tokenNot, pos: start}, i, nil
		}
	}

	return token{kind: tokenTerm, pos: start, scope: scope, term: termBare, value: word}, i, nil
}

func isTermBoundary(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '(', ')', '&', '|', '^', '"', '\'':
		return true
	}
	return false
}

func lexQuoted(input string, i int) (string, int, error) {
	quote := input[i]
	start := i
	i++
	var b strings.Builder
	for i < len(input) {
		c := input[i]
		if c == '\\' && i+1 < len(input) {
			b.WriteByte(input[i+1])
			i += 2
			continue
		}
		if c == quote {
			return b.String(), i + 1, nil
		}
		b.WriteByte(c)
		i++
	}
	return "", 0, &SyntaxError{Message: "unterminated quoted value", Position: start}
}

func lexRegex(input string, i int) (string, int, error) {
	start := i
	i++
	var b strings.Builder
	for i < len(input) {
		c := input[i]
		if c == '\\' && i+1 < len(input) {
			b.WriteByte(c)
			b.WriteByte(input[i+1])
			i += 2
			continue
		}
		if c == '/' {
			return b.String(), i + 1, nil
		}
		b.WriteByte(c)
		i++
	}
	return "", 0, &SyntaxError{Message: "unterminated regular expression", Position: start}
}

type exprParser struct {
	tokens []token
	pos    int
}

func (p *exprParser) peek() token {
	return p.tokens[p.pos]
}

func (p *exprParser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

// parseExpr handles "or" and "xor", which bind equally and associate left.
func (p *exprParser) parseExpr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokenOr:
			p.next()
			right, err := p.parseAnd()
			if err != nil {
				return nil, err
			}
			left = Or(left, right)
		case tokenXor:
			p.next()
			right, err := p.parseAnd()
			if err != nil {
				return nil, err
			}
			left = Xor(left, right)
		default:
			return left, nil
		}
	}
}

// parseAnd handles explicit "and" and the implicit conjunction of two
// adjacent operands.
func (p *exprParser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		switch tok.kind {
		case tokenAnd:
			p.next()
		case tokenNot, tokenTerm, tokenLParen:
			// adjacency, fall through to parse the right operand
		default:
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = And(left, right)
	}
}

func (p *exprParser) parseUnary() (Expr, error) {
	if p.peek().kind == tokenNot {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not(operand), nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (Expr, error) {
	tok := p.next()
	switch tok.kind {
	case tokenLParen:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		closing := p.next()
		if closing.kind != tokenRParen {
			return nil, &SyntaxError{Message: "expected \")\", got " + closing.describe(), Position: closing.pos}
		}
		return expr, nil
	case tokenTerm:
		return buildTerm(tok)
	default:
		return nil, &SyntaxError{Message: "expected a term, got " + tok.describe(), Position: tok.pos}
	}
}

func buildTerm(tok token) (Expr, error) {
	var matcher Matcher
	switch tok.term {
	case termQuoted:
		matcher = Exact(tok.value)
	case termRegex:
		re, err := Regex(tok.value)
		if err != nil {
			return nil, &SyntaxError{Message: "invalid regular expression: " + err.Error(), Position: tok.pos}
		}
		matcher = re
	default:
		matcher = Fuzzy(tok.value)
	}
	return termExpr{scope: tok.scope, matcher: matcher}, nil
}
