package syntax

func ParseTy(parser *Parser) (Ty, *Error) {
	return ParseCached(parser, func(parser *Parser) (Ty, *Error) {
		return parseAlternatives(parser, "Expected a type",
			ty(ParseLifetimeTy),
			ty(ParseRefTy),
			ty(ParseTupleTy),
			ty(ParseAliasTy),
			ty(ParseNamedTy),
		)
	})
}

func ty[T Ty](f ParseFunc[T]) ParseFunc[Ty] {
	return func(parser *Parser) (Ty, *Error) {
		return f(parser)
	}
}

func ParseLifetimeTy(parser *Parser) (*LifetimeTy, *Error) {
	span := parser.Spanned()

	name, err := parser.Token("Lifetime")
	if err != nil {
		return nil, err
	}

	return &LifetimeTy{Name: name, Span: span()}, nil
}

func ParseRefTy(parser *Parser) (*RefTy, *Error) {
	span := parser.Spanned()

	if _, err := parser.Token("RefOperator"); err != nil {
		return nil, err
	}

	parser.Commit("in this reference type")

	lifetime, err := ParseLifetimeTy(parser)
	if err != nil {
		return nil, err
	}

	mutable, err := ParseToken(parser, "MutKeyword")
	if err != nil {
		return nil, err
	}

	ty, err := ParseTy(parser)
	if err != nil {
		return nil, err
	}

	return &RefTy{
		Lifetime: lifetime,
		Mutable:  mutable,
		Ty:       ty,
		Span:     span(),
	}, nil
}

// ParseTupleTy parses `()`, `(A,)` and `(A, B)`; `(A)` is just `A`.
func ParseTupleTy(parser *Parser) (Ty, *Error) {
	span := parser.Spanned()

	if _, err := parser.Token("LeftParenthesis"); err != nil {
		return nil, err
	}

	parser.Commit("in this tuple type")

	elements, trailing, err := parseCommas(parser, ParseTy)
	if err != nil {
		return nil, err
	}

	if _, err := parser.Token("RightParenthesis"); err != nil {
		return nil, err
	}

	if len(elements) == 1 && !trailing {
		return elements[0], nil
	}

	return &TupleTy{Elements: elements, Span: span()}, nil
}

func ParseAliasTy(parser *Parser) (*AliasTy, *Error) {
	span := parser.Spanned()

	trait, err := parser.Token("Name", TokenConfig{Name: "a trait name"})
	if err != nil {
		return nil, err
	}

	if _, err := parser.Token("PathOperator"); err != nil {
		return nil, err
	}

	parser.Commit("in this alias")

	item, err := parser.Token("Name", TokenConfig{Name: "an associated item name"})
	if err != nil {
		return nil, err
	}

	parameters, err := parseOptionalParameters(parser)
	if err != nil {
		return nil, err
	}

	return &AliasTy{
		Trait:      trait,
		Item:       item,
		Parameters: parameters,
		Span:       span(),
	}, nil
}

func ParseNamedTy(parser *Parser) (*NamedTy, *Error) {
	span := parser.Spanned()

	name, err := parser.Token("Name", TokenConfig{Name: "a type name"})
	if err != nil {
		return nil, err
	}

	parameters, err := parseOptionalParameters(parser)
	if err != nil {
		return nil, err
	}

	return &NamedTy{
		Name:       name,
		Parameters: parameters,
		Span:       span(),
	}, nil
}

func ParseTraitRef(parser *Parser) (TraitRef, *Error) {
	span := parser.Spanned()

	name, err := parser.Token("Name", TokenConfig{Name: "a trait name"})
	if err != nil {
		return TraitRef{}, err
	}

	parameters, err := parseOptionalParameters(parser)
	if err != nil {
		return TraitRef{}, err
	}

	return TraitRef{
		Name:       name,
		Parameters: parameters,
		Span:       span(),
	}, nil
}

func parseOptionalParameters(parser *Parser) ([]Ty, *Error) {
	if !parser.Peek("LeftBracket") {
		return nil, nil
	}

	return ParseDelimited(parser, "LeftBracket", "RightBracket", ParseTy)
}
