package syntax

func ParseWc(parser *Parser) (Wc, *Error) {
	return parseAlternatives(parser, "Expected a where-clause",
		wc(ParseForWc),
		wc(ParseIfWc),
		ParseWfWc,
		ParseTyWc,
	)
}

func wc[T Wc](f ParseFunc[T]) ParseFunc[Wc] {
	return func(parser *Parser) (Wc, *Error) {
		return f(parser)
	}
}

func ParseWcBlock(parser *Parser) ([]Wc, *Error) {
	return ParseDelimited(parser, "LeftBrace", "RightBrace", ParseWc)
}

func ParseForWc(parser *Parser) (*ForWc, *Error) {
	span := parser.Spanned()

	if _, err := parser.Token("ForKeyword"); err != nil {
		return nil, err
	}

	parser.Commit("in this `for` clause")

	generics, err := ParseGenerics(parser)
	if err != nil {
		return nil, err
	}

	body, err := ParseWc(parser)
	if err != nil {
		return nil, err
	}

	return &ForWc{Generics: generics, Wc: body, Span: span()}, nil
}

func ParseIfWc(parser *Parser) (*IfWc, *Error) {
	span := parser.Spanned()

	if _, err := parser.Token("IfKeyword"); err != nil {
		return nil, err
	}

	parser.Commit("in this `if` clause")

	hypotheses, err := ParseWcBlock(parser)
	if err != nil {
		return nil, err
	}

	body, err := ParseWc(parser)
	if err != nil {
		return nil, err
	}

	return &IfWc{Hypotheses: hypotheses, Wc: body, Span: span()}, nil
}

// ParseWfWc parses `wf(P)` and `wf(T: Trait)`.
func ParseWfWc(parser *Parser) (Wc, *Error) {
	span := parser.Spanned()

	if _, err := parser.Token("WfKeyword"); err != nil {
		return nil, err
	}

	parser.Commit("in this well-formedness clause")

	if _, err := parser.Token("LeftParenthesis"); err != nil {
		return nil, err
	}

	ty, err := ParseTy(parser)
	if err != nil {
		return nil, err
	}

	var trait *TraitRef
	if parser.Peek("ColonOperator") {
		parser.advance()

		traitRef, err := ParseTraitRef(parser)
		if err != nil {
			return nil, err
		}

		trait = &traitRef
	}

	if _, err := parser.Token("RightParenthesis"); err != nil {
		return nil, err
	}

	if trait != nil {
		return &WfTraitWc{Self: ty, Trait: *trait, Span: span()}, nil
	}

	return &WfWc{Ty: ty, Span: span()}, nil
}

// ParseTyWc parses the clauses that start with a type: `A = B`, `A <: B`,
// `A: 'b`, `A: Trait` and `A: !Trait`.
func ParseTyWc(parser *Parser) (Wc, *Error) {
	span := parser.Spanned()

	left, err := ParseTy(parser)
	if err != nil {
		return nil, err
	}

	parser.Commit("in this where-clause")

	switch {
	case parser.Peek("EqualOperator"), parser.Peek("SubtypeOperator"):
		operator := parser.advance()

		right, err := ParseTy(parser)
		if err != nil {
			return nil, err
		}

		return &RelationWc{Operator: operator, Left: left, Right: right, Span: span()}, nil
	case parser.Peek("ColonOperator"):
		parser.advance()

		if parser.Peek("Lifetime") {
			right, err := ParseLifetimeTy(parser)
			if err != nil {
				return nil, err
			}

			return &RelationWc{Operator: ":", Left: left, Right: right, Span: span()}, nil
		}

		negative, err := ParseToken(parser, "NotOperator")
		if err != nil {
			return nil, err
		}

		trait, err := ParseTraitRef(parser)
		if err != nil {
			return nil, err
		}

		return &PredicateWc{Self: left, Negative: negative, Trait: trait, Span: span()}, nil
	default:
		return nil, parser.Error("Expected `=`, `<:` or `:` after this type")
	}
}
