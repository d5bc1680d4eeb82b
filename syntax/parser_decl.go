package syntax

// ParseSource parses a sequence of declarations
func ParseSource(input string) ([]Decl, error) {
	p := NewParser(input)
	var decls []Decl
	for p.current.Type != TOKEN_EOF {
		d, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func (p *Parser) parseDecl() (Decl, error) {
	start := p.current.Position
	switch p.current.Type {
	case TOKEN_TYPEDEF:
		return p.parseTypedef()
	case TOKEN_WIRE, TOKEN_TRI:
		return p.parseNetDecl()
	case TOKEN_NETTYPE:
		return p.parseNettype()
	case TOKEN_PARAMETER, TOKEN_LOCALPARAM:
		return p.parseParam()
	case TOKEN_CLASS:
		return p.parseClass()
	case TOKEN_COVERGROUP:
		return p.parseCovergroup()
	}

	quals := p.parseQualifiers()
	switch p.current.Type {
	case TOKEN_FUNCTION:
		return p.parseFunction(start, quals)
	case TOKEN_CONSTRAINT:
		return p.parseConstraint(start)
	}
	typ, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	decls, err := p.parseDeclarators()
	if err != nil {
		return nil, err
	}
	return &VarDecl{Span: p.span(start), Qualifiers: quals, Type: typ, Declarators: decls}, nil
}

func (p *Parser) parseQualifiers() Qualifiers {
	var q Qualifiers
	for {
		switch p.current.Type {
		case TOKEN_CONST:
			q.Const = true
		case TOKEN_STATIC:
			q.Static = true
		case TOKEN_AUTOMATIC:
			q.Automatic = true
		case TOKEN_LOCAL:
			q.Local = true
		case TOKEN_PROTECTED:
			q.Protected = true
		case TOKEN_RAND:
			q.Rand = true
		case TOKEN_RANDC:
			q.RandC = true
		default:
			return q
		}
		p.nextToken()
	}
}

func (p *Parser) parseSigning() Signing {
	switch p.current.Type {
	case TOKEN_SIGNED:
		p.nextToken()
		return SigningSigned
	case TOKEN_UNSIGNED:
		p.nextToken()
		return SigningUnsigned
	}
	return SigningDefault
}

func (p *Parser) parseDataType() (DataType, error) {
	start := p.current.Position
	switch p.current.Type {
	case TOKEN_LOGIC, TOKEN_BIT, TOKEN_REG, TOKEN_BYTE, TOKEN_SHORTINT, TOKEN_INT,
		TOKEN_LONGINT, TOKEN_INTEGER, TOKEN_STRING_KW, TOKEN_EVENT, TOKEN_VOID:
		kw := p.current.Type
		p.nextToken()
		signing := p.parseSigning()
		dims, err := p.parsePackedDims()
		if err != nil {
			return nil, err
		}
		return &BuiltinType{Span: p.span(start), Keyword: kw, Signing: signing, Packed: dims}, nil

	case TOKEN_IDENTIFIER:
		name := p.current.Value
		p.nextToken()
		dims, err := p.parsePackedDims()
		if err != nil {
			return nil, err
		}
		return &NamedType{Span: p.span(start), Name: name, Packed: dims}, nil

	case TOKEN_STRUCT, TOKEN_UNION:
		return p.parseStructType()

	case TOKEN_ENUM:
		return p.parseEnumType()
	}
	return nil, p.errorf("expected a data type, found '%s'", describe(p.current))
}

func (p *Parser) parseStructType() (DataType, error) {
	start := p.current.Position
	st := &StructType{Union: p.current.Type == TOKEN_UNION}
	p.nextToken()
	for done := false; !done; {
		switch p.current.Type {
		case TOKEN_TAGGED:
			st.Tagged = true
			p.nextToken()
		case TOKEN_PACKED:
			st.Packed = true
			p.nextToken()
		case TOKEN_SIGNED, TOKEN_UNSIGNED:
			st.Signing = p.parseSigning()
		default:
			done = true
		}
	}
	if _, err := p.expect(TOKEN_LBRACE); err != nil {
		return nil, err
	}
	for p.current.Type != TOKEN_RBRACE {
		mstart := p.current.Position
		quals := p.parseQualifiers()
		typ, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		decls, err := p.parseDeclarators()
		if err != nil {
			return nil, err
		}
		st.Members = append(st.Members, &MemberDecl{Span: p.span(mstart), Qualifiers: quals, Type: typ, Declarators: decls})
	}
	p.nextToken() // consume '}'
	dims, err := p.parsePackedDims()
	if err != nil {
		return nil, err
	}
	st.Dims = dims
	st.Span = p.span(start)
	return st, nil
}

func (p *Parser) parseEnumType() (DataType, error) {
	start := p.current.Position
	p.nextToken() // consume 'enum'
	et := &EnumType{}
	if p.current.Type != TOKEN_LBRACE {
		base, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		et.Base = base
	}
	if _, err := p.expect(TOKEN_LBRACE); err != nil {
		return nil, err
	}
	for {
		tok, err := p.expect(TOKEN_IDENTIFIER)
		if err != nil {
			return nil, err
		}
		item := &EnumItem{Name: tok.Value}
		if p.current.Type == TOKEN_ASSIGN {
			p.nextToken()
			if item.Value, err = p.ParseExpression(precedenceLowest); err != nil {
				return nil, err
			}
		}
		item.Span = p.span(tok.Position)
		et.Items = append(et.Items, item)
		if p.current.Type != TOKEN_COMMA {
			break
		}
		p.nextToken()
	}
	if _, err := p.expect(TOKEN_RBRACE); err != nil {
		return nil, err
	}
	dims, err := p.parsePackedDims()
	if err != nil {
		return nil, err
	}
	et.Dims = dims
	et.Span = p.span(start)
	return et, nil
}

func (p *Parser) parsePackedDims() ([]*Dimension, error) {
	var dims []*Dimension
	for p.current.Type == TOKEN_LBRACKET {
		start := p.current.Position
		p.nextToken()
		left, err := p.ParseExpression(precedenceLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_COLON); err != nil {
			return nil, err
		}
		right, err := p.ParseExpression(precedenceLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_RBRACKET); err != nil {
			return nil, err
		}
		dims = append(dims, &Dimension{Span: p.span(start), Kind: DimRange, Left: left, Right: right})
	}
	return dims, nil
}

func (p *Parser) parseUnpackedDims() ([]*Dimension, error) {
	var dims []*Dimension
	for p.current.Type == TOKEN_LBRACKET {
		start := p.current.Position
		p.nextToken()
		dim := &Dimension{}
		switch {
		case p.current.Type == TOKEN_RBRACKET:
			dim.Kind = DimDynamic
		case p.current.Type == TOKEN_STAR:
			dim.Kind = DimWildcard
			p.nextToken()
		case p.current.Type == TOKEN_DOLLAR:
			dim.Kind = DimQueue
			p.nextToken()
			if p.current.Type == TOKEN_COLON {
				p.nextToken()
				bound, err := p.ParseExpression(precedenceLowest)
				if err != nil {
					return nil, err
				}
				dim.Left = bound
			}
		case p.isTypeStart():
			typ, err := p.parseDataType()
			if err != nil {
				return nil, err
			}
			dim.Kind = DimAssoc
			dim.Index = typ
		default:
			left, err := p.ParseExpression(precedenceLowest)
			if err != nil {
				return nil, err
			}
			dim.Kind = DimSize
			dim.Left = left
			if p.current.Type == TOKEN_COLON {
				p.nextToken()
				if dim.Right, err = p.ParseExpression(precedenceLowest); err != nil {
					return nil, err
				}
				dim.Kind = DimRange
			}
		}
		if _, err := p.expect(TOKEN_RBRACKET); err != nil {
			return nil, err
		}
		dim.Span = p.span(start)
		dims = append(dims, dim)
	}
	return dims, nil
}

// isTypeStart reports whether the current token begins a keyword type.
// Named index types of associative arrays must use a keyword type.
func (p *Parser) isTypeStart() bool {
	switch p.current.Type {
	case TOKEN_LOGIC, TOKEN_BIT, TOKEN_REG, TOKEN_BYTE, TOKEN_SHORTINT, TOKEN_INT,
		TOKEN_LONGINT, TOKEN_INTEGER, TOKEN_STRING_KW, TOKEN_STRUCT, TOKEN_UNION, TOKEN_ENUM:
		return true
	}
	return false
}

// parseDeclarators parses name [dims] [= init] {, ...} ;
func (p *Parser) parseDeclarators() ([]*Declarator, error) {
	var decls []*Declarator
	for {
		tok, err := p.expect(TOKEN_IDENTIFIER)
		if err != nil {
			return nil, err
		}
		d := &Declarator{Name: tok.Value}
		if d.Dims, err = p.parseUnpackedDims(); err != nil {
			return nil, err
		}
		if p.current.Type == TOKEN_ASSIGN {
			p.nextToken()
			if d.Init, err = p.ParseExpression(precedenceLowest); err != nil {
				return nil, err
			}
		}
		d.Span = p.span(tok.Position)
		decls = append(decls, d)
		if p.current.Type != TOKEN_COMMA {
			break
		}
		p.nextToken()
	}
	if _, err := p.expect(TOKEN_SEMICOLON); err != nil {
		return nil, err
	}
	return decls, nil
}

func (p *Parser) parseTypedef() (Decl, error) {
	start := p.current.Position
	p.nextToken() // consume 'typedef'
	typ, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	dims, err := p.parseUnpackedDims()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_SEMICOLON); err != nil {
		return nil, err
	}
	return &TypedefDecl{Span: p.span(start), Type: typ, Name: name.Value, Dims: dims}, nil
}

func (p *Parser) parseNetDecl() (Decl, error) {
	start := p.current.Position
	nd := &NetDecl{NetKind: p.current.Type}
	p.nextToken()
	switch p.current.Type {
	case TOKEN_VECTORED:
		nd.Vectored = true
		p.nextToken()
	case TOKEN_SCALARED:
		p.nextToken()
	}
	// wire [7:0] w; has an implicit logic type
	if p.current.Type == TOKEN_LBRACKET || p.current.Type == TOKEN_SIGNED || p.current.Type == TOKEN_UNSIGNED {
		tstart := p.current.Position
		signing := p.parseSigning()
		dims, err := p.parsePackedDims()
		if err != nil {
			return nil, err
		}
		nd.Type = &BuiltinType{Span: p.span(tstart), Keyword: TOKEN_LOGIC, Signing: signing, Packed: dims}
	} else if !p.atBareDeclarator() {
		typ, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		nd.Type = typ
	}
	decls, err := p.parseDeclarators()
	if err != nil {
		return nil, err
	}
	nd.Declarators = decls
	nd.Span = p.span(start)
	return nd, nil
}

// atBareDeclarator reports whether the current identifier is a declared
// name rather than a type name
func (p *Parser) atBareDeclarator() bool {
	if p.current.Type != TOKEN_IDENTIFIER {
		return false
	}
	switch p.peek.Type {
	case TOKEN_SEMICOLON, TOKEN_COMMA, TOKEN_ASSIGN, TOKEN_LBRACKET:
		return true
	}
	return false
}

func (p *Parser) parseNettype() (Decl, error) {
	start := p.current.Position
	p.nextToken() // consume 'nettype'
	typ, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	nt := &NettypeDecl{Type: typ, Name: name.Value}
	if p.current.Type == TOKEN_WITH {
		p.nextToken()
		res, err := p.expect(TOKEN_IDENTIFIER)
		if err != nil {
			return nil, err
		}
		nt.Resolver = res.Value
	}
	if _, err := p.expect(TOKEN_SEMICOLON); err != nil {
		return nil, err
	}
	nt.Span = p.span(start)
	return nt, nil
}

func (p *Parser) parseParam() (Decl, error) {
	start := p.current.Position
	pd := &ParamDecl{Local: p.current.Type == TOKEN_LOCALPARAM}
	p.nextToken()
	if !(p.current.Type == TOKEN_IDENTIFIER && p.peek.Type == TOKEN_ASSIGN) {
		typ, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		pd.Type = typ
	}
	decls, err := p.parseDeclarators()
	if err != nil {
		return nil, err
	}
	for _, d := range decls {
		if d.Init == nil {
			return nil, &ParseError{Pos: d.Pos, Msg: "parameter " + d.Name + " requires a value"}
		}
	}
	pd.Declarators = decls
	pd.Span = p.span(start)
	return pd, nil
}

func (p *Parser) parseFunction(start Position, quals Qualifiers) (Decl, error) {
	p.nextToken() // consume 'function'
	fd := &FunctionDecl{Qualifiers: quals}
	if p.current.Type == TOKEN_AUTOMATIC || p.current.Type == TOKEN_STATIC {
		p.nextToken()
	}
	if !(p.current.Type == TOKEN_IDENTIFIER && (p.peek.Type == TOKEN_LPAREN || p.peek.Type == TOKEN_SEMICOLON)) {
		ret, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		fd.ReturnType = ret
	}
	name, err := p.expect(TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	fd.Name = name.Value
	if p.current.Type == TOKEN_LPAREN {
		p.nextToken()
		for p.current.Type != TOKEN_RPAREN {
			astart := p.current.Position
			typ, err := p.parseDataType()
			if err != nil {
				return nil, err
			}
			arg, err := p.expect(TOKEN_IDENTIFIER)
			if err != nil {
				return nil, err
			}
			fd.Args = append(fd.Args, &ArgDecl{Span: p.span(astart), Type: typ, Name: arg.Value})
			if p.current.Type != TOKEN_COMMA {
				break
			}
			p.nextToken()
		}
		if _, err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TOKEN_SEMICOLON); err != nil {
		return nil, err
	}
	for p.current.Type != TOKEN_ENDFUNCTION {
		if p.current.Type == TOKEN_EOF {
			return nil, p.errorf("missing 'endfunction' for %s", fd.Name)
		}
		p.nextToken()
	}
	p.nextToken()
	fd.Span = p.span(start)
	return fd, nil
}

func (p *Parser) parseConstraint(start Position) (Decl, error) {
	p.nextToken() // consume 'constraint'
	name, err := p.expect(TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if err := p.skipBraces(); err != nil {
		return nil, err
	}
	return &ConstraintDecl{Span: p.span(start), Name: name.Value}, nil
}

// skipBraces skips a balanced { ... } block
func (p *Parser) skipBraces() error {
	if _, err := p.expect(TOKEN_LBRACE); err != nil {
		return err
	}
	depth := 1
	for depth > 0 {
		switch p.current.Type {
		case TOKEN_EOF:
			return p.errorf("unbalanced '{'")
		case TOKEN_LBRACE:
			depth++
		case TOKEN_RBRACE:
			depth--
		}
		p.nextToken()
	}
	return nil
}

func (p *Parser) parseClass() (Decl, error) {
	start := p.current.Position
	p.nextToken() // consume 'class'
	name, err := p.expect(TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	cd := &ClassDecl{Name: name.Value}
	if p.current.Type == TOKEN_EXTENDS {
		p.nextToken()
		base, err := p.expect(TOKEN_IDENTIFIER)
		if err != nil {
			return nil, err
		}
		cd.Extends = base.Value
	}
	if _, err := p.expect(TOKEN_SEMICOLON); err != nil {
		return nil, err
	}
	for p.current.Type != TOKEN_ENDCLASS {
		if p.current.Type == TOKEN_EOF {
			return nil, p.errorf("missing 'endclass' for %s", cd.Name)
		}
		item, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		cd.Items = append(cd.Items, item)
	}
	p.nextToken()
	cd.Span = p.span(start)
	return cd, nil
}

func (p *Parser) parseCovergroup() (Decl, error) {
	start := p.current.Position
	p.nextToken() // consume 'covergroup'
	name, err := p.expect(TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_SEMICOLON); err != nil {
		return nil, err
	}
	cg := &CovergroupDecl{Name: name.Value}
	for p.current.Type != TOKEN_ENDGROUP {
		if p.current.Type == TOKEN_EOF {
			return nil, p.errorf("missing 'endgroup' for %s", cg.Name)
		}
		item, err := p.parseCoverageItem()
		if err != nil {
			return nil, err
		}
		cg.Items = append(cg.Items, item)
	}
	p.nextToken()
	cg.Span = p.span(start)
	return cg, nil
}

func (p *Parser) parseCoverageItem() (Decl, error) {
	start := p.current.Position
	if p.current.Type == TOKEN_IDENTIFIER && p.current.Value == "option" && p.peek.Type == TOKEN_DOT {
		p.nextToken()
		p.nextToken()
		name, err := p.expect(TOKEN_IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_ASSIGN); err != nil {
			return nil, err
		}
		v, err := p.ParseExpression(precedenceLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_SEMICOLON); err != nil {
			return nil, err
		}
		return &OptionDecl{Span: p.span(start), Name: name.Value, Value: v}, nil
	}

	label, err := p.expect(TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_COLON); err != nil {
		return nil, err
	}
	switch p.current.Type {
	case TOKEN_COVERPOINT:
		p.nextToken()
		expr, err := p.ParseExpression(precedenceLowest)
		if err != nil {
			return nil, err
		}
		cp := &CoverpointDecl{Name: label.Value, Expr: expr}
		if p.current.Type == TOKEN_LBRACE {
			p.nextToken()
			for p.current.Type == TOKEN_BINS {
				bstart := p.current.Position
				p.nextToken()
				bin, err := p.expect(TOKEN_IDENTIFIER)
				if err != nil {
					return nil, err
				}
				for p.current.Type != TOKEN_SEMICOLON {
					if p.current.Type == TOKEN_EOF {
						return nil, p.errorf("missing ';' after bins %s", bin.Value)
					}
					p.nextToken()
				}
				p.nextToken()
				cp.Bins = append(cp.Bins, &BinsDecl{Span: p.span(bstart), Name: bin.Value})
			}
			if _, err := p.expect(TOKEN_RBRACE); err != nil {
				return nil, err
			}
		} else if _, err := p.expect(TOKEN_SEMICOLON); err != nil {
			return nil, err
		}
		cp.Span = p.span(start)
		return cp, nil

	case TOKEN_CROSS:
		p.nextToken()
		cr := &CrossDecl{Name: label.Value}
		for {
			tgt, err := p.expect(TOKEN_IDENTIFIER)
			if err != nil {
				return nil, err
			}
			cr.Targets = append(cr.Targets, tgt.Value)
			if p.current.Type != TOKEN_COMMA {
				break
			}
			p.nextToken()
		}
		if _, err := p.expect(TOKEN_SEMICOLON); err != nil {
			return nil, err
		}
		cr.Span = p.span(start)
		return cr, nil
	}
	return nil, p.errorf("expected 'coverpoint' or 'cross', found '%s'", describe(p.current))
}
