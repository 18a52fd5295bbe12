package sexpr

import "fmt"

// ParseError reports a structural problem with the input. It is only
// produced in strict mode; the default parser tolerates truncated input.
type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
}

// Parser reads one expression at a time from a string. It never copies
// token text; atoms are views into the input.
type Parser struct {
	input  string
	pos    int
	strict bool
}

// NewParser creates a Parser over input. An unterminated list at end of
// input is silently accepted.
func NewParser(input string) *Parser {
	return &Parser{input: input}
}

// NewStrictParser creates a Parser that rejects unterminated lists.
func NewStrictParser(input string) *Parser {
	return &Parser{input: input, strict: true}
}

// Parse consumes and returns the next expression. The parser position
// advances past the expression and any trailing whitespace inside lists,
// so parsing can be restarted from Remaining at any expression boundary.
func (p *Parser) Parse() (Node, error) {
	p.skipWhitespace()
	if p.ch() == '(' {
		p.advance()
		var items List
		for p.ch() != 0 && p.ch() != ')' {
			sub, err := p.Parse()
			if err != nil {
				return nil, err
			}
			items = append(items, sub)
			p.skipWhitespace()
		}
		if p.ch() == ')' {
			p.advance()
		} else if p.strict {
			return nil, &ParseError{Offset: p.pos, Message: "unterminated list at end of input"}
		}
		return items, nil
	}
	return p.parseAtom(), nil
}

// Remaining returns the unconsumed tail of the input.
func (p *Parser) Remaining() string {
	return p.input[p.pos:]
}

// AtEOF reports whether only whitespace is left.
func (p *Parser) AtEOF() bool {
	p.skipWhitespace()
	return p.pos >= len(p.input)
}

// parseAtom scans a single token. A token opening with '|' runs to the
// next '|' inclusive, with no escape handling of interior pipes; any
// other token runs until whitespace or a parenthesis.
func (p *Parser) parseAtom() Atom {
	p.skipWhitespace()
	start := p.pos
	isPipe := p.ch() == '|'
	for p.pos < len(p.input) {
		c := p.ch()
		if isPipe && p.pos > start && c == '|' {
			p.advance()
			break
		}
		if !isPipe && (isWhitespace(c) || c == '(' || c == ')') {
			break
		}
		p.advance()
	}
	return Atom(p.input[start:p.pos])
}

func (p *Parser) skipWhitespace() {
	for isWhitespace(p.ch()) {
		p.advance()
	}
}

// ch returns the current byte, or 0 at end of input.
func (p *Parser) ch() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *Parser) advance() { p.pos++ }

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// ParseAll parses every expression in input. Mostly a convenience for
// tools that want the whole script at once; the driver loop parses
// incrementally instead.
func ParseAll(input string) ([]Node, error) {
	p := NewParser(input)
	var nodes []Node
	for !p.AtEOF() {
		n, err := p.Parse()
		if err != nil {
			return nodes, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
