package syntax

import (
	"errors"

	lex "github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

type Token struct {
	kind  string
	value string
	span  Span
}

type tokenRule struct {
	kind          string
	pattern       string
	name          string
	skip          bool
	defaultReason string
	trim          func(s string) string
}

// Keywords come before `Name` so they win ties; longer names still lex as
// names (`forall` vs. `for`, `type` vs. `ty`).
var rules = []tokenRule{
	{kind: "Space", pattern: `[ \t\r\n]+`, skip: true},
	{kind: "Comment", pattern: `//[^\n]*`, skip: true},
	{kind: "PathOperator", pattern: `::`, name: "`::`"},
	{kind: "SubtypeOperator", pattern: `<:`, name: "`<:`"},
	{kind: "ColonOperator", pattern: `:`, name: "`:`"},
	{kind: "EqualOperator", pattern: `=`, name: "`=`"},
	{kind: "NotOperator", pattern: `!`, name: "`!`"},
	{kind: "RefOperator", pattern: `&`, name: "`&`"},
	{kind: "Semicolon", pattern: `;`, name: "`;`", defaultReason: "items end with a semicolon"},
	{kind: "Comma", pattern: `,`, name: "`,`"},
	{kind: "LeftParenthesis", pattern: `\(`, name: "`(`"},
	{kind: "RightParenthesis", pattern: `\)`, name: "`)`"},
	{kind: "LeftBracket", pattern: `\[`, name: "`[`"},
	{kind: "RightBracket", pattern: `\]`, name: "`]`"},
	{kind: "LeftBrace", pattern: `\{`, name: "`{`"},
	{kind: "RightBrace", pattern: `\}`, name: "`}`"},
	{kind: "TraitKeyword", pattern: `trait`, name: "`trait`"},
	{kind: "ImplKeyword", pattern: `impl`, name: "`impl`"},
	{kind: "StructKeyword", pattern: `struct`, name: "`struct`"},
	{kind: "AliasKeyword", pattern: `alias`, name: "`alias`"},
	{kind: "ProveKeyword", pattern: `prove`, name: "`prove`"},
	{kind: "ForallKeyword", pattern: `forall`, name: "`forall`"},
	{kind: "ExistsKeyword", pattern: `exists`, name: "`exists`"},
	{kind: "GivenKeyword", pattern: `given`, name: "`given`"},
	{kind: "WhereKeyword", pattern: `where`, name: "`where`"},
	{kind: "ForKeyword", pattern: `for`, name: "`for`"},
	{kind: "IfKeyword", pattern: `if`, name: "`if`"},
	{kind: "WfKeyword", pattern: `wf`, name: "`wf`"},
	{kind: "MutKeyword", pattern: `mut`, name: "`mut`"},
	{kind: "MaxSizeKeyword", pattern: `max_size`, name: "`max_size`"},
	{kind: "TyKeyword", pattern: `ty`, name: "`ty`"},
	{kind: "LtKeyword", pattern: `lt`, name: "`lt`"},
	{kind: "Number", pattern: `[0-9]+`, name: "a number"},
	{kind: "Lifetime", pattern: `'[A-Za-z_][A-Za-z0-9_]*`, name: "a lifetime", trim: func(s string) string { return s[1:] }},
	{kind: "Name", pattern: `[A-Za-z_][A-Za-z0-9_]*`, name: "a name"},
}

var lexer *lex.Lexer

var tokenIds = make(map[string]int, len(rules))
var tokenKinds = make([]string, 0, len(rules))

func token(name string, trim func(s string) string) lex.Action {
	return func(s *lex.Scanner, m *machines.Match) (any, error) {
		tokenString := string(m.Bytes)
		if trim != nil {
			tokenString = trim(tokenString)
		}

		return s.Token(tokenIds[name], tokenString, m), nil
	}
}

func skip(*lex.Scanner, *machines.Match) (any, error) {
	return nil, nil
}

var tokenNames = make(map[string]string, len(rules))
var defaultTokenReasons = make(map[string]string, len(rules))

func init() {
	lexer = lex.NewLexer()

	for _, rule := range rules {
		f := skip
		if !rule.skip {
			tokenIds[rule.kind] = len(tokenKinds)
			tokenKinds = append(tokenKinds, rule.kind)
			f = token(rule.kind, rule.trim)
		}

		lexer.Add([]byte(rule.pattern), f)
		tokenNames[rule.kind] = rule.name
		defaultTokenReasons[rule.kind] = rule.defaultReason
	}

	err := lexer.CompileNFA()
	if err != nil {
		panic(err)
	}
}

func Tokenize(path string, source string) ([]*Token, *Error) {
	scanner, err := lexer.Scanner([]byte(source))
	if err != nil {
		panic(err)
	}

	var tokens []*Token
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if err != nil {
			span := Span{
				Path:  path,
				Start: Location{Index: scanner.TC, Line: 1, Column: 1},
			}

			var unconsumed *machines.UnconsumedInput
			if errors.As(err, &unconsumed) {
				span.Start = Location{
					Index:  unconsumed.StartTC,
					Line:   unconsumed.StartLine,
					Column: unconsumed.StartColumn,
				}
			}

			span.End = span.Start
			if span.Start.Index < len(source) {
				span.End.Index++
				span.End.Column++
			}
			span.Source = source[span.Start.Index:span.End.Index]

			return nil, &Error{
				Message: "Unexpected character",
				Span:    span,
			}
		}

		token := tok.(*lex.Token)
		startIndex := token.TC
		endIndex := scanner.TC

		tokens = append(tokens, &Token{
			kind:  tokenKinds[token.Type],
			value: token.Value.(string),
			span: Span{
				Path: path,
				Start: Location{
					Index:  startIndex,
					Line:   token.StartLine,
					Column: token.StartColumn,
				},
				End: Location{
					Index:  endIndex,
					Line:   token.EndLine,
					Column: token.EndColumn,
				},
				Source: source[startIndex:endIndex],
			},
		})
	}

	return tokens, nil
}
