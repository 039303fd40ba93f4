package syntax

import (
	"fmt"
	"reflect"
)

type ParseFunc[T any] func(*Parser) (T, *Error)

// Parser is a backtracking recursive-descent parser over the tokens of one
// file.
type Parser struct {
	Path   string
	Source string
	tokens []*Token
	index  int

	// One trace per enclosing `ParseOptional`; empty until committed
	commits []string

	memo map[memoKey]memoEntry
}

type memoKey struct {
	f     uintptr
	index int
}

type memoEntry struct {
	end   int
	value any
}

func NewParser(path string, source string) (*Parser, *Error) {
	tokens, err := Tokenize(path, source)
	if err != nil {
		return nil, err
	}

	return &Parser{
		Path:   path,
		Source: source,
		tokens: tokens,
		memo:   map[memoKey]memoEntry{},
	}, nil
}

func (parser *Parser) next() (*Token, bool) {
	if parser.AtEnd() {
		return nil, false
	}

	return parser.tokens[parser.index], true
}

// advance consumes the next token, whatever it is, and returns its text.
func (parser *Parser) advance() string {
	token := parser.tokens[parser.index]
	parser.index++
	return token.value
}

func (parser *Parser) span() Span {
	if token, ok := parser.next(); ok {
		return token.span
	}

	return parser.eofSpan()
}

func (parser *Parser) eofSpan() Span {
	if len(parser.tokens) == 0 {
		return NullSpan()
	}

	return parser.tokens[len(parser.tokens)-1].span
}

// Spanned records the current position; the returned function covers every
// token consumed since.
func (parser *Parser) Spanned() func() Span {
	start := parser.span()

	return func() Span {
		end := parser.eofSpan()
		if parser.index > 0 {
			end = parser.tokens[parser.index-1].span
		}

		return JoinSpans(start, end, parser.Source)
	}
}

func (parser *Parser) Error(message string) *Error {
	return &Error{Message: message, Span: parser.span()}
}

type TokenConfig struct {
	Name   string
	Reason string
}

func (parser *Parser) Token(kind string, configs ...TokenConfig) (string, *Error) {
	config := TokenConfig{Name: tokenNames[kind], Reason: defaultTokenReasons[kind]}
	for _, c := range configs {
		if c.Name != "" {
			config.Name = c.Name
		}

		if c.Reason != "" {
			config.Reason = c.Reason
		}
	}

	token, ok := parser.next()
	if !ok {
		return "", &Error{
			Message: fmt.Sprintf("Expected %s, but found the end of the file", config.Name),
			Reason:  config.Reason,
			Span:    parser.eofSpan(),
		}
	}

	if token.kind != kind {
		return "", &Error{
			Message: fmt.Sprintf("Expected %s, but found %s", config.Name, tokenNames[token.kind]),
			Reason:  config.Reason,
			Span:    token.span,
		}
	}

	return parser.advance(), nil
}

// Peek reports whether the next token has the given kind without consuming
// it.
func (parser *Parser) Peek(kind string) bool {
	token, ok := parser.next()
	return ok && token.kind == kind
}

// Commit marks the innermost `ParseOptional` as committed: errors after this
// point are reported instead of backtracking.
func (parser *Parser) Commit(trace string) {
	if n := len(parser.commits); n > 0 {
		parser.commits[n-1] = trace
	}
}

func (parser *Parser) AtEnd() bool {
	return parser.index >= len(parser.tokens)
}

func (parser *Parser) Finish() *Error {
	if token, ok := parser.next(); ok {
		return parser.Error(fmt.Sprintf("Unexpected %s", tokenNames[token.kind]))
	}

	return nil
}

// ParseCached remembers where `f` succeeded at each position, so alternatives
// that share a prefix don't parse it twice.
func ParseCached[T any](parser *Parser, f ParseFunc[T]) (T, *Error) {
	key := memoKey{f: reflect.ValueOf(f).Pointer(), index: parser.index}
	if entry, ok := parser.memo[key]; ok {
		parser.index = entry.end
		return entry.value.(T), nil
	}

	result, err := f(parser)
	if err != nil {
		return result, err
	}

	parser.memo[key] = memoEntry{end: parser.index, value: result}

	return result, nil
}

// ParseOptional runs `f`, rewinding if it fails before committing.
func ParseOptional[T any](parser *Parser, f ParseFunc[T]) (T, bool, *Error) {
	start := parser.index

	parser.commits = append(parser.commits, "")
	depth := len(parser.commits)
	result, err := f(parser)
	trace := parser.commits[depth-1]
	parser.commits = parser.commits[:depth-1]

	if err == nil {
		return result, true, nil
	}

	if trace != "" {
		err.Committed = trace
	}

	if err.Committed != "" {
		return result, false, err
	}

	parser.index = start
	return result, false, nil
}

// ParseToken consumes a token of the given kind if it's next.
func ParseToken(parser *Parser, kind string) (bool, *Error) {
	_, ok, err := ParseOptional(parser, func(parser *Parser) (string, *Error) {
		return parser.Token(kind)
	})

	return ok, err
}

// parseCommas parses `f` separated by commas and reports whether the list
// ended in a trailing comma.
func parseCommas[T any](parser *Parser, f ParseFunc[T]) ([]T, bool, *Error) {
	var values []T
	for {
		value, ok, err := ParseOptional(parser, f)
		if err != nil {
			return nil, false, err
		}

		if !ok {
			return values, len(values) > 0, nil
		}

		values = append(values, value)

		comma, err := ParseToken(parser, "Comma")
		if err != nil {
			return nil, false, err
		}

		if !comma {
			return values, false, nil
		}
	}
}

// ParseList parses at least `min` comma-separated items, allowing a trailing
// comma.
func ParseList[T any](parser *Parser, min int, f ParseFunc[T]) ([]T, *Error) {
	values, _, err := parseCommas(parser, f)
	if err != nil {
		return nil, err
	}

	if len(values) < min {
		return nil, parser.Error(fmt.Sprintf("Expected at least %d items", min))
	}

	return values, nil
}

// ParseDelimited parses a comma-separated list between `open` and `close`.
func ParseDelimited[T any](parser *Parser, open string, close string, f ParseFunc[T]) ([]T, *Error) {
	if _, err := parser.Token(open); err != nil {
		return nil, err
	}

	values, err := ParseList(parser, 0, f)
	if err != nil {
		return nil, err
	}

	if _, err := parser.Token(close); err != nil {
		return nil, err
	}

	return values, nil
}
