// Package parser implements the out-of-core-scope lexer/parser collaborator
// (spec §6) well enough to drive the compiler end to end from .fol text. It
// produces the untyped parse tree in internal/fast.
package parser

import (
	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/fast"
	"github.com/folidity-lang/folidity/internal/lexer"
	"github.com/folidity-lang/folidity/internal/source"
)

type parser struct {
	toks []lexer.Token
	pos  int
	bus  *diag.Bus
}

// Parse tokenizes and parses src, reporting lexer and parser diagnostics on
// bus. It returns a partial tree even when diagnostics were recorded,
// matching the teacher's "may return a completed parse even if it has
// errors" contract (cue/internal/core/compile.Files).
func Parse(src string, bus *diag.Bus) *fast.Source {
	toks := lexer.New(src, bus).All()
	p := &parser{toks: toks, bus: bus}
	return p.parseSource()
}

func (p *parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *parser) atEnd() bool       { return p.cur().Kind == lexer.EOF }

func (p *parser) advance() lexer.Token {
	t := p.cur()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *parser) check(k lexer.Kind) bool { return p.cur().Kind == k }

func (p *parser) match(k lexer.Kind) (lexer.Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}
	return lexer.Token{}, false
}

func (p *parser) expect(k lexer.Kind, what string) lexer.Token {
	if t, ok := p.match(k); ok {
		return t
	}
	t := p.cur()
	p.bus.Push(diag.ParserError(t.Span, "expected %s, found %q", what, t.Text))
	return t
}

func (p *parser) identTok() fast.Identifier {
	t := p.expect(lexer.Ident, "identifier")
	return fast.Identifier{Span: t.Span, Name: t.Text}
}

func (p *parser) parseSource() *fast.Source {
	src := &fast.Source{}
	for !p.atEnd() {
		before := p.pos
		d := p.parseDeclaration()
		if d != nil {
			src.Declarations = append(src.Declarations, d)
		}
		if p.pos == before {
			// guarantee forward progress on malformed input
			p.advance()
		}
	}
	return src
}

func (p *parser) parseDeclaration() fast.Declaration {
	switch {
	case p.checkIdent("enum"):
		return p.parseEnum()
	case p.checkIdent("struct"):
		return p.parseStruct()
	case p.checkIdent("model"):
		return p.parseModel()
	case p.checkIdent("state"):
		return p.parseState()
	case p.checkIdent("fn") || p.checkIdent("pub") || p.checkIdent("view") || p.checkIdent("init"):
		return p.parseFunction()
	default:
		t := p.cur()
		p.bus.Push(diag.ParserError(t.Span, "expected declaration, found %q", t.Text))
		return nil
	}
}

func (p *parser) checkIdent(name string) bool {
	return p.check(lexer.Ident) && p.cur().Text == name
}

func (p *parser) matchIdent(name string) bool {
	if p.checkIdent(name) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) parseEnum() *fast.EnumDecl {
	start := p.advance().Span // 'enum'
	name := p.identTok()
	p.expect(lexer.LBrace, "{")
	var variants []fast.Identifier
	for !p.check(lexer.RBrace) && !p.atEnd() {
		variants = append(variants, p.identTok())
		if _, ok := p.match(lexer.Comma); !ok {
			break
		}
	}
	end := p.expect(lexer.RBrace, "}")
	return &fast.EnumDecl{SourceSpan: start.Union(end.Span), Name: name, Variants: variants}
}

func (p *parser) parseStruct() *fast.StructDecl {
	start := p.advance().Span // 'struct'
	name := p.identTok()
	fields, end := p.parseFieldBlock()
	return &fast.StructDecl{SourceSpan: start.Union(end), Name: name, Fields: fields}
}

func (p *parser) parseFieldBlock() ([]*fast.FieldDecl, source.Span) {
	p.expect(lexer.LBrace, "{")
	var fields []*fast.FieldDecl
	for !p.check(lexer.RBrace) && !p.atEnd() {
		fields = append(fields, p.parseField())
		if _, ok := p.match(lexer.Comma); !ok {
			break
		}
	}
	end := p.expect(lexer.RBrace, "}")
	return fields, end.Span
}

func (p *parser) parseField() *fast.FieldDecl {
	start := p.cur().Span
	mut := p.matchIdent("mut")
	name := p.identTok()
	p.expect(lexer.Colon, ":")
	ty := p.parseTypeRef()
	return &fast.FieldDecl{SourceSpan: start.Union(ty.Span()), Name: name, Type: ty, IsMut: mut}
}

func (p *parser) parseTypeRef() *fast.TypeRef {
	start := p.cur().Span
	if p.matchIdent("list") {
		p.expect(lexer.LAngle, "<")
		elem := p.parseTypeRef()
		end := p.expect(lexer.RAngle, ">")
		return &fast.TypeRef{SourceSpan: start.Union(end.Span), Name: "list", Element: elem}
	}
	if p.matchIdent("set") {
		p.expect(lexer.LAngle, "<")
		elem := p.parseTypeRef()
		end := p.expect(lexer.RAngle, ">")
		return &fast.TypeRef{SourceSpan: start.Union(end.Span), Name: "set", Element: elem}
	}
	if p.matchIdent("mapping") {
		p.expect(lexer.LAngle, "<")
		from := p.parseTypeRef()
		p.expect(lexer.Comma, ",")
		to := p.parseTypeRef()
		relation := ""
		if _, ok := p.match(lexer.Comma); ok {
			relation = p.identTok().Name
		}
		end := p.expect(lexer.RAngle, ">")
		return &fast.TypeRef{SourceSpan: start.Union(end.Span), Name: "mapping", MapFrom: from, MapTo: to, Relation: relation}
	}
	id := p.identTok()
	return &fast.TypeRef{SourceSpan: id.Span, Name: id.Name}
}

func (p *parser) parseModel() *fast.ModelDecl {
	start := p.advance().Span // 'model'
	name := p.identTok()
	var parent *fast.Identifier
	if _, ok := p.match(lexer.Colon); ok {
		id := p.identTok()
		parent = &id
	}
	fields, bodyEnd := p.parseFieldBlock()
	bounds, end := p.parseOptionalBounds(bodyEnd)
	return &fast.ModelDecl{SourceSpan: start.Union(end), Name: name, Parent: parent, Fields: fields, Bounds: bounds}
}

// parseOptionalBounds parses a trailing `st [ expr, ... ]` block into its
// comma-separated bound expressions; the brackets are required, so a bare
// single expression after `st` is a parse error (spec §4.6).
func (p *parser) parseOptionalBounds(fallback source.Span) ([]fast.Expr, source.Span) {
	if !p.matchIdent("st") {
		return nil, fallback
	}
	p.expect(lexer.LBracket, "[")
	var bounds []fast.Expr
	for !p.check(lexer.RBracket) && !p.atEnd() {
		bounds = append(bounds, p.parseExpr())
		if _, ok := p.match(lexer.Comma); !ok {
			break
		}
	}
	end := p.expect(lexer.RBracket, "]")
	return bounds, end.Span
}

func (p *parser) parseState() *fast.StateDecl {
	start := p.advance().Span // 'state'
	name := p.identTok()

	var from, fromBind *fast.Identifier
	if _, ok := p.match(lexer.Colon); ok {
		id := p.identTok()
		from = &id
		if p.check(lexer.Ident) {
			b := p.identTok()
			fromBind = &b
		}
	}

	decl := &fast.StateDecl{Name: name, From: from, FromBind: fromBind}
	bodyEnd := name.Span
	switch {
	case p.check(lexer.Assign):
		p.advance()
		id := p.identTok()
		decl.BodyKind = fast.StateBodyModelRef
		decl.ModelRef = &id
		bodyEnd = id.Span
	case p.check(lexer.LBrace):
		fields, end := p.parseFieldBlock()
		decl.BodyKind = fast.StateBodyRaw
		decl.Fields = fields
		bodyEnd = end
	default:
		decl.BodyKind = fast.StateBodyNone
	}

	bounds, end := p.parseOptionalBounds(bodyEnd)
	decl.Bounds = bounds
	decl.SourceSpan = start.Union(end)
	return decl
}

func (p *parser) parseFunction() *fast.FunctionDecl {
	start := p.cur().Span
	isInit := p.matchIdent("init")

	vis := fast.VisPriv
	var viewState, viewBind *fast.Identifier
	switch {
	case p.matchIdent("pub"):
		vis = fast.VisPub
	case p.matchIdent("view"):
		vis = fast.VisView
		p.expect(lexer.LParen, "(")
		s := p.identTok()
		viewState = &s
		if p.check(lexer.Ident) {
			b := p.identTok()
			viewBind = &b
		}
		p.expect(lexer.RParen, ")")
	}

	p.expect(lexer.Ident, "fn") // the identifier in the 'fn' position; its text is not compared with "fn"
	retTy := p.parseTypeRef()
	name := p.identTok()

	p.expect(lexer.LParen, "(")
	var params []*fast.FieldDecl
	for !p.check(lexer.RParen) && !p.atEnd() {
		params = append(params, p.parseField())
		if _, ok := p.match(lexer.Comma); !ok {
			break
		}
	}
	p.expect(lexer.RParen, ")")

	var stateBound *fast.StateBound
	if p.matchIdent("when") {
		stateBound = p.parseStateBound()
	}

	var access []fast.Expr
	for p.check(lexer.At) {
		p.advance()
		p.expect(lexer.LParen, "(")
		access = append(access, p.parseExpr())
		for {
			if _, ok := p.match(lexer.Pipe); !ok {
				break
			}
			access = append(access, p.parseExpr())
		}
		p.expect(lexer.RParen, ")")
	}

	bounds, _ := p.parseOptionalBounds(name.Span)

	p.expect(lexer.LBrace, "{")
	var body []fast.Stmt
	for !p.check(lexer.RBrace) && !p.atEnd() {
		body = append(body, p.parseStmt())
	}
	end := p.expect(lexer.RBrace, "}")

	return &fast.FunctionDecl{
		SourceSpan: start.Union(end.Span),
		Name:       name,
		IsInit:     isInit,
		Vis:        vis,
		ViewState:  viewState,
		ViewBind:   viewBind,
		ReturnType: retTy,
		Params:     params,
		StateBound: stateBound,
		Access:     access,
		Bounds:     bounds,
		Body:       body,
	}
}

func (p *parser) parseStateBound() *fast.StateBound {
	start := p.cur().Span
	sb := &fast.StateBound{}
	p.expect(lexer.LParen, "(")
	if !p.check(lexer.RParen) {
		id := p.identTok()
		sb.From = &id
		if p.check(lexer.Ident) {
			b := p.identTok()
			sb.FromBind = &b
		}
	}
	p.expect(lexer.RParen, ")")
	p.expect(lexer.Arrow, "->")
	p.expect(lexer.LParen, "(")
	for !p.check(lexer.RParen) && !p.atEnd() {
		id := p.identTok()
		sb.To = append(sb.To, id)
		if p.check(lexer.Ident) {
			b := p.identTok()
			sb.ToBind = append(sb.ToBind, &b)
		} else {
			sb.ToBind = append(sb.ToBind, nil)
		}
		if _, ok := p.match(lexer.Comma); !ok {
			break
		}
	}
	end := p.expect(lexer.RParen, ")")
	sb.SourceSpan = start.Union(end.Span)
	return sb
}

// --- statements ---

func (p *parser) parseStmt() fast.Stmt {
	switch {
	case p.check(lexer.LBrace):
		return p.parseBlock()
	case p.matchIdent("let"):
		return p.parseVariableStmt()
	case p.matchIdent("if"):
		return p.parseIfElse()
	case p.matchIdent("for"):
		return p.parseForOrIterator()
	case p.matchIdent("return"):
		start := p.toks[p.pos-1].Span
		if p.check(lexer.Semicolon) {
			end := p.advance().Span
			return &fast.ReturnStmt{Base: fast.AtSpan(start.Union(end))}
		}
		v := p.parseExpr()
		p.match(lexer.Semicolon)
		return &fast.ReturnStmt{Base: fast.AtSpan(start.Union(v.Span())), Value: v}
	case p.check(lexer.Arrow):
		return p.parseStateTransition()
	default:
		start := p.cur().Span
		e := p.parseExpr()
		p.match(lexer.Semicolon)
		return &fast.ExprStmt{Base: fast.AtSpan(start.Union(e.Span())), Value: e}
	}
}

func (p *parser) parseBlock() *fast.BlockStmt {
	start := p.expect(lexer.LBrace, "{").Span
	var stmts []fast.Stmt
	for !p.check(lexer.RBrace) && !p.atEnd() {
		stmts = append(stmts, p.parseStmt())
	}
	end := p.expect(lexer.RBrace, "}").Span
	return &fast.BlockStmt{Base: fast.AtSpan(start.Union(end)), Statements: stmts}
}

func (p *parser) parseBlockStmts() []fast.Stmt {
	return p.parseBlock().Statements
}

func (p *parser) parseVariableStmt() *fast.VariableStmt {
	start := p.toks[p.pos-1].Span
	mut := p.matchIdent("mut")
	var names []fast.Identifier
	names = append(names, p.identTok())
	for {
		if _, ok := p.match(lexer.Comma); !ok {
			break
		}
		names = append(names, p.identTok())
	}
	var ty *fast.TypeRef
	if _, ok := p.match(lexer.Colon); ok {
		ty = p.parseTypeRef()
	}
	var val fast.Expr
	if _, ok := p.match(lexer.Assign); ok {
		val = p.parseExpr()
	}
	end := start
	if val != nil {
		end = val.Span()
	} else if ty != nil {
		end = ty.Span()
	}
	p.match(lexer.Semicolon)
	return &fast.VariableStmt{Base: fast.AtSpan(start.Union(end)), Names: names, Mut: mut, Type: ty, Value: val}
}

func (p *parser) parseIfElse() *fast.IfElseStmt {
	start := p.toks[p.pos-1].Span
	cond := p.parseExpr()
	body := p.parseBlockStmts()
	var elsePart fast.Stmt
	end := cond.Span()
	if p.matchIdent("else") {
		if p.matchIdent("if") {
			elsePart = p.parseIfElse()
		} else {
			elsePart = p.parseBlock()
		}
		end = elsePart.Span()
	}
	return &fast.IfElseStmt{Base: fast.AtSpan(start.Union(end)), Condition: cond, Body: body, Else: elsePart}
}

func (p *parser) parseForOrIterator() fast.Stmt {
	start := p.toks[p.pos-1].Span
	// iterator: `for x in list { }` ; for-loop: `for let i = 0; i < n; i = i+1 { }`
	if p.check(lexer.Ident) {
		save := p.pos
		name := p.identTok()
		var names []fast.Identifier
		names = append(names, name)
		for {
			if _, ok := p.match(lexer.Comma); !ok {
				break
			}
			names = append(names, p.identTok())
		}
		if p.matchIdent("in") {
			list := p.parseExpr()
			body := p.parseBlockStmts()
			return &fast.IteratorStmt{Base: fast.AtSpan(start.Union(list.Span())), Names: names, List: list, Body: body}
		}
		p.pos = save
	}
	p.matchIdent("let")
	init := p.parseVariableStmt()
	cond := p.parseExpr()
	p.match(lexer.Semicolon)
	post := p.parseExpr()
	body := p.parseBlockStmts()
	return &fast.ForLoopStmt{Base: fast.AtSpan(start.Union(post.Span())), Init: init, Condition: cond, Post: post, Body: body}
}

func (p *parser) parseStateTransition() *fast.StateTransitionStmt {
	start := p.expect(lexer.Arrow, "->").Span
	name := p.identTok()
	var args []fast.Expr
	if _, ok := p.match(lexer.LParen); ok {
		for !p.check(lexer.RParen) && !p.atEnd() {
			args = append(args, p.parseExpr())
			if _, ok := p.match(lexer.Comma); !ok {
				break
			}
		}
		p.expect(lexer.RParen, ")")
	}
	p.match(lexer.Semicolon)
	return &fast.StateTransitionStmt{Base: fast.AtSpan(start.Union(name.Span)), Target: name, Args: args}
}

// --- expressions (precedence climbing) ---

func (p *parser) parseExpr() fast.Expr { return p.parsePipe() }

func (p *parser) parsePipe() fast.Expr {
	left := p.parseOr()
	for p.check(lexer.PipeArrow) {
		p.advance()
		right := p.parseOr()
		left = &fast.PipeExpr{Base: fast.AtSpan(left.Span().Union(right.Span())), Left: left, Right: right}
	}
	return left
}

func (p *parser) parseOr() fast.Expr {
	left := p.parseAnd()
	for p.check(lexer.Or) {
		p.advance()
		right := p.parseAnd()
		left = &fast.BinaryExpr{Base: fast.AtSpan(left.Span().Union(right.Span())), Op: fast.OpOr, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseAnd() fast.Expr {
	left := p.parseComparison()
	for p.check(lexer.And) {
		p.advance()
		right := p.parseComparison()
		left = &fast.BinaryExpr{Base: fast.AtSpan(left.Span().Union(right.Span())), Op: fast.OpAnd, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseComparison() fast.Expr {
	left := p.parseAdditive()
	for {
		var op fast.BinOp
		switch {
		case p.check(lexer.Eq):
			op = fast.OpEq
		case p.check(lexer.Ne):
			op = fast.OpNe
		case p.check(lexer.Le):
			op = fast.OpLe
		case p.check(lexer.Ge):
			op = fast.OpGe
		case p.check(lexer.LAngle):
			op = fast.OpLt
		case p.check(lexer.RAngle):
			op = fast.OpGt
		case p.checkIdent("in"):
			op = fast.OpIn
		default:
			return left
		}
		p.advance()
		right := p.parseAdditive()
		left = &fast.BinaryExpr{Base: fast.AtSpan(left.Span().Union(right.Span())), Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseAdditive() fast.Expr {
	left := p.parseMultiplicative()
	for p.check(lexer.Plus) || p.check(lexer.Minus) {
		op := fast.OpAdd
		if p.check(lexer.Minus) {
			op = fast.OpSub
		}
		p.advance()
		right := p.parseMultiplicative()
		left = &fast.BinaryExpr{Base: fast.AtSpan(left.Span().Union(right.Span())), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseMultiplicative() fast.Expr {
	left := p.parseUnary()
	for p.check(lexer.Star) || p.check(lexer.Slash) || p.check(lexer.Percent) {
		var op fast.BinOp
		switch {
		case p.check(lexer.Star):
			op = fast.OpMul
		case p.check(lexer.Slash):
			op = fast.OpDiv
		default:
			op = fast.OpMod
		}
		p.advance()
		right := p.parseUnary()
		left = &fast.BinaryExpr{Base: fast.AtSpan(left.Span().Union(right.Span())), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseUnary() fast.Expr {
	if p.check(lexer.Not) {
		start := p.advance().Span
		operand := p.parseUnary()
		return &fast.NotExpr{Base: fast.AtSpan(start.Union(operand.Span())), Operand: operand}
	}
	if p.check(lexer.Minus) {
		start := p.advance().Span
		operand := p.parseUnary()
		return &fast.NegExpr{Base: fast.AtSpan(start.Union(operand.Span())), Operand: operand}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() fast.Expr {
	e := p.parsePrimary()
	for p.check(lexer.Dot) {
		p.advance()
		member := p.identTok()
		e = &fast.MemberAccessExpr{Base: fast.AtSpan(e.Span().Union(member.Span)), Target: e, Member: member}
	}
	return e
}

func (p *parser) parsePrimary() fast.Expr {
	t := p.cur()
	switch t.Kind {
	case lexer.Number:
		p.advance()
		return &fast.IntExpr{Base: fast.AtSpan(t.Span), Text: t.Text}
	case lexer.Float:
		p.advance()
		return &fast.FloatExpr{Base: fast.AtSpan(t.Span), Text: t.Text}
	case lexer.StringLit:
		p.advance()
		return &fast.StringExpr{Base: fast.AtSpan(t.Span), Value: t.Text}
	case lexer.CharLit:
		p.advance()
		r := rune(0)
		if len(t.Text) > 0 {
			r = []rune(t.Text)[0]
		}
		return &fast.CharExpr{Base: fast.AtSpan(t.Span), Value: r}
	case lexer.HexLit:
		p.advance()
		return &fast.HexExpr{Base: fast.AtSpan(t.Span), Text: t.Text}
	case lexer.AddressLit:
		p.advance()
		return &fast.AddressExpr{Base: fast.AtSpan(t.Span), Text: t.Text}
	case lexer.LBracket:
		return p.parseList()
	case lexer.LParen:
		p.advance()
		e := p.parseExpr()
		p.expect(lexer.RParen, ")")
		return e
	case lexer.Ident:
		switch t.Text {
		case "true", "false":
			p.advance()
			return &fast.BoolExpr{Base: fast.AtSpan(t.Span), Value: t.Text == "true"}
		}
		return p.parseIdentLed()
	default:
		p.bus.Push(diag.ParserError(t.Span, "expected expression, found %q", t.Text))
		p.advance()
		return &fast.VariableExpr{Base: fast.AtSpan(t.Span), Name: "<error>"}
	}
}

func (p *parser) parseIdentLed() fast.Expr {
	name := p.identTok()
	switch {
	case p.check(lexer.LParen):
		p.advance()
		var args []fast.Expr
		for !p.check(lexer.RParen) && !p.atEnd() {
			args = append(args, p.parseExpr())
			if _, ok := p.match(lexer.Comma); !ok {
				break
			}
		}
		end := p.expect(lexer.RParen, ")")
		return &fast.FunctionCallExpr{Base: fast.AtSpan(name.Span.Union(end.Span)), Name: name, Args: args}
	case p.check(lexer.LBrace):
		p.advance()
		var args []fast.Expr
		var auto *fast.Identifier
		for !p.check(lexer.RBrace) && !p.atEnd() {
			if _, ok := p.match(lexer.DotDot); ok {
				id := p.identTok()
				auto = &id
				break
			}
			args = append(args, p.parseExpr())
			if _, ok := p.match(lexer.Comma); !ok {
				break
			}
		}
		end := p.expect(lexer.RBrace, "}")
		return &fast.StructInitExpr{Base: fast.AtSpan(name.Span.Union(end.Span)), Name: name, Args: args, AutoObject: auto}
	default:
		return &fast.VariableExpr{Base: fast.AtSpan(name.Span), Name: name.Name}
	}
}

func (p *parser) parseList() fast.Expr {
	start := p.expect(lexer.LBracket, "[").Span
	var elems []fast.Expr
	for !p.check(lexer.RBracket) && !p.atEnd() {
		elems = append(elems, p.parseExpr())
		if _, ok := p.match(lexer.Comma); !ok {
			break
		}
	}
	end := p.expect(lexer.RBracket, "]")
	return &fast.ListExpr{Base: fast.AtSpan(start.Union(end.Span)), Elements: elems}
}

