package syntax

import "strconv"

func ParseFile(parser *Parser) (*File, *Error) {
	var items []Item
	for !parser.AtEnd() {
		item, err := ParseItem(parser)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return &File{Path: parser.Path, Items: items}, nil
}

// parseAlternatives returns the result of the first of `fs` that parses,
// reporting `expected` if none do.
func parseAlternatives[T any](parser *Parser, expected string, fs ...ParseFunc[T]) (T, *Error) {
	for _, f := range fs {
		result, ok, err := ParseOptional(parser, f)
		if err != nil {
			return result, err
		}
		if ok {
			return result, nil
		}
	}

	var zero T
	return zero, parser.Error(expected)
}

func item[T Item](f ParseFunc[T]) ParseFunc[Item] {
	return func(parser *Parser) (Item, *Error) {
		return f(parser)
	}
}

func ParseItem(parser *Parser) (Item, *Error) {
	return parseAlternatives(parser, "Expected an item",
		item(ParseMaxSizeItem),
		item(ParseTraitItem),
		item(ParseImplItem),
		item(ParseStructItem),
		item(ParseAliasItem),
		item(ParseProveItem),
	)
}

func parseEnd(parser *Parser) *Error {
	_, err := parser.Token("Semicolon")
	return err
}

func ParseMaxSizeItem(parser *Parser) (*MaxSizeItem, *Error) {
	span := parser.Spanned()

	if _, err := parser.Token("MaxSizeKeyword"); err != nil {
		return nil, err
	}

	parser.Commit("in this `max_size` item")

	number, err := parser.Token("Number", TokenConfig{Reason: "the maximum size is a whole number"})
	if err != nil {
		return nil, err
	}

	value, convErr := strconv.Atoi(number)
	if convErr != nil {
		return nil, parser.Error("Maximum size is too large")
	}

	if err := parseEnd(parser); err != nil {
		return nil, err
	}

	return &MaxSizeItem{Value: value, Span: span()}, nil
}

func ParseTraitItem(parser *Parser) (*TraitItem, *Error) {
	span := parser.Spanned()

	if _, err := parser.Token("TraitKeyword"); err != nil {
		return nil, err
	}

	parser.Commit("in this trait declaration")

	name, err := parser.Token("Name", TokenConfig{Name: "a trait name"})
	if err != nil {
		return nil, err
	}

	generics, err := parseOptionalGenerics(parser)
	if err != nil {
		return nil, err
	}

	where, err := parseWhere(parser)
	if err != nil {
		return nil, err
	}

	if err := parseEnd(parser); err != nil {
		return nil, err
	}

	return &TraitItem{
		Name:     name,
		Generics: generics,
		Where:    where,
		Span:     span(),
	}, nil
}

func ParseImplItem(parser *Parser) (*ImplItem, *Error) {
	span := parser.Spanned()

	if _, err := parser.Token("ImplKeyword"); err != nil {
		return nil, err
	}

	parser.Commit("in this impl")

	generics, err := parseOptionalGenerics(parser)
	if err != nil {
		return nil, err
	}

	self, err := ParseTy(parser)
	if err != nil {
		return nil, err
	}

	if _, err := parser.Token("ColonOperator"); err != nil {
		return nil, err
	}

	negative, err := ParseToken(parser, "NotOperator")
	if err != nil {
		return nil, err
	}

	trait, err := ParseTraitRef(parser)
	if err != nil {
		return nil, err
	}

	where, err := parseWhere(parser)
	if err != nil {
		return nil, err
	}

	if err := parseEnd(parser); err != nil {
		return nil, err
	}

	return &ImplItem{
		Generics: generics,
		Self:     self,
		Negative: negative,
		Trait:    trait,
		Where:    where,
		Span:     span(),
	}, nil
}

func ParseStructItem(parser *Parser) (*StructItem, *Error) {
	span := parser.Spanned()

	if _, err := parser.Token("StructKeyword"); err != nil {
		return nil, err
	}

	parser.Commit("in this struct declaration")

	name, err := parser.Token("Name", TokenConfig{Name: "a struct name"})
	if err != nil {
		return nil, err
	}

	generics, err := parseOptionalGenerics(parser)
	if err != nil {
		return nil, err
	}

	where, err := parseWhere(parser)
	if err != nil {
		return nil, err
	}

	if err := parseEnd(parser); err != nil {
		return nil, err
	}

	return &StructItem{
		Name:     name,
		Generics: generics,
		Where:    where,
		Span:     span(),
	}, nil
}

func ParseAliasItem(parser *Parser) (*AliasItem, *Error) {
	span := parser.Spanned()

	if _, err := parser.Token("AliasKeyword"); err != nil {
		return nil, err
	}

	parser.Commit("in this alias declaration")

	generics, err := parseOptionalGenerics(parser)
	if err != nil {
		return nil, err
	}

	alias, err := ParseAliasTy(parser)
	if err != nil {
		return nil, err
	}

	if _, err := parser.Token("EqualOperator"); err != nil {
		return nil, err
	}

	value, err := ParseTy(parser)
	if err != nil {
		return nil, err
	}

	where, err := parseWhere(parser)
	if err != nil {
		return nil, err
	}

	if err := parseEnd(parser); err != nil {
		return nil, err
	}

	return &AliasItem{
		Generics: generics,
		Alias:    alias,
		Value:    value,
		Where:    where,
		Span:     span(),
	}, nil
}

func ParseProveItem(parser *Parser) (*ProveItem, *Error) {
	span := parser.Spanned()

	if _, err := parser.Token("ProveKeyword"); err != nil {
		return nil, err
	}

	parser.Commit("in this query")

	var quantifiers []Quantifier
	for {
		exists := parser.Peek("ExistsKeyword")
		if !exists && !parser.Peek("ForallKeyword") {
			break
		}

		parser.advance()

		generics, err := ParseGenerics(parser)
		if err != nil {
			return nil, err
		}

		quantifiers = append(quantifiers, Quantifier{Exists: exists, Generics: generics})
	}

	var given []Wc
	if parser.Peek("GivenKeyword") {
		parser.advance()

		var err *Error
		given, err = ParseWcBlock(parser)
		if err != nil {
			return nil, err
		}
	}

	goal, err := ParseWcBlock(parser)
	if err != nil {
		return nil, err
	}

	if err := parseEnd(parser); err != nil {
		return nil, err
	}

	return &ProveItem{
		Quantifiers: quantifiers,
		Given:       given,
		Goal:        goal,
		Span:        span(),
	}, nil
}

func parseWhere(parser *Parser) ([]Wc, *Error) {
	if !parser.Peek("WhereKeyword") {
		return nil, nil
	}

	parser.advance()

	return ParseList(parser, 1, ParseWc)
}

func ParseGeneric(parser *Parser) (Generic, *Error) {
	span := parser.Spanned()

	kind, err := parseAlternatives(parser, "Expected `ty` or `lt`",
		func(parser *Parser) (string, *Error) { return parser.Token("TyKeyword") },
		func(parser *Parser) (string, *Error) { return parser.Token("LtKeyword") },
	)
	if err != nil {
		return Generic{}, err
	}

	name, err := parser.Token("Name", TokenConfig{Name: "a parameter name"})
	if err != nil {
		return Generic{}, err
	}

	return Generic{Kind: kind, Name: name, Span: span()}, nil
}

func ParseGenerics(parser *Parser) ([]Generic, *Error) {
	return ParseDelimited(parser, "LeftBracket", "RightBracket", ParseGeneric)
}

func parseOptionalGenerics(parser *Parser) ([]Generic, *Error) {
	if !parser.Peek("LeftBracket") {
		return nil, nil
	}

	return ParseGenerics(parser)
}
