package parser

const maxArgs = 255

// Parse translates a token stream into a statement list. Syntax errors do not
// stop the parse: after each one the parser skips to the next statement
// boundary and continues, so a single pass reports every independent error.
// When the returned error is non-nil it is an ErrorList and the statements
// must not be executed.
func Parse(tokens []Token) ([]Stmt, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		var pos Position
		if len(tokens) > 0 {
			pos = tokens[len(tokens)-1].Pos
		}
		tokens = append(tokens[:len(tokens):len(tokens)], Token{Type: EOF, Pos: pos})
	}
	p := &parser{tokens: tokens}
	stmts := p.parseProgram()
	return stmts, p.errs.Err()
}

type parser struct {
	tokens  []Token
	current int
	errs    ErrorList

	loopDepth int
	funcDepth int
}

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) expect(tt TokenType, msg string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, newTokenError(p.peek(), msg)
}

// report records an error that does not require resynchronisation.
func (p *parser) report(tok Token, msg string) {
	p.errs.add(newTokenError(tok, msg))
}

func (p *parser) parseProgram() []Stmt {
	var stmts []Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// declaration parses one declaration or statement, recovering from a syntax
// error by recording it and skipping ahead. It returns nil after an error.
func (p *parser) declaration() Stmt {
	stmt, err := p.parseDeclaration()
	if err != nil {
		if perr, ok := err.(*Error); ok {
			p.errs.add(perr)
		} else {
			p.errs.add(newTokenError(p.peek(), err.Error()))
		}
		p.synchronize()
		return nil
	}
	return stmt
}

// synchronize discards tokens until a likely statement boundary.
func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == Semicolon {
			return
		}
		switch p.peek().Type {
		case Fun, Var, For, If, While, Print, Return, Break:
			return
		}
		p.advance()
	}
}

func (p *parser) parseDeclaration() (Stmt, error) {
	switch {
	case p.match(Fun):
		return p.parseFunction()
	case p.match(Var):
		return p.parseVarDecl()
	default:
		return p.parseStatement()
	}
}

func (p *parser) parseFunction() (Stmt, error) {
	name, err := p.expect(Identifier, "Expect function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LeftParen, "Expect '(' after function name."); err != nil {
		return nil, err
	}
	var params []Token
	if !p.check(RightParen) {
		for {
			if len(params) >= maxArgs {
				p.report(p.peek(), "Can't have more than 255 parameters.")
			}
			param, err := p.expect(Identifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(Comma) {
				break
			}
		}
	}
	if _, err := p.expect(RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.expect(LeftBrace, "Expect '{' before function body."); err != nil {
		return nil, err
	}

	enclosingLoops := p.loopDepth
	p.loopDepth = 0
	p.funcDepth++
	defer func() {
		p.loopDepth = enclosingLoops
		p.funcDepth--
	}()

	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{
		Name:   name,
		Params: params,
		Body:   body,
	}, nil
}

func (p *parser) parseVarDecl() (Stmt, error) {
	name, err := p.expect(Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var init Expr
	if p.match(Equal) {
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{
		Name: name,
		Init: init,
	}, nil
}

func (p *parser) parseStatement() (Stmt, error) {
	switch {
	case p.match(For):
		return p.parseForStmt()
	case p.match(If):
		return p.parseIfStmt()
	case p.match(Print):
		return p.parsePrintStmt()
	case p.match(Return):
		return p.parseReturnStmt()
	case p.match(Break):
		return p.parseBreakStmt()
	case p.match(While):
		return p.parseWhileStmt()
	case p.match(LeftBrace):
		brace := p.previous()
		stmts, err := p.parseBlockBody()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{
			Stmts: stmts,
			Posn:  brace.Pos,
		}, nil
	default:
		return p.parseExprStmt()
	}
}

// parseBlockBody parses declarations up to the closing brace. The opening
// brace has already been consumed.
func (p *parser) parseBlockBody() ([]Stmt, error) {
	var stmts []Stmt
	for !p.check(RightBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.expect(RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parseForStmt desugars a C-style for loop into a while loop wrapped in
// blocks for the initializer and the increment.
func (p *parser) parseForStmt() (Stmt, error) {
	forTok := p.previous()
	if _, err := p.expect(LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var (
		init Stmt
		err  error
	)
	switch {
	case p.match(Semicolon):
	case p.match(Var):
		init, err = p.parseVarDecl()
	default:
		init, err = p.parseExprStmt()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if !p.check(Semicolon) {
		if cond, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var incr Expr
	if !p.check(RightParen) {
		if incr, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.parseLoopBody()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		body = &BlockStmt{
			Stmts: []Stmt{body, &ExprStmt{Expr: incr}},
			Posn:  body.Pos(),
		}
	}
	if cond == nil {
		cond = &LiteralExpr{Value: true, Posn: forTok.Pos}
	}
	var loop Stmt = &WhileStmt{
		Cond: cond,
		Body: body,
		Posn: forTok.Pos,
	}
	if init != nil {
		loop = &BlockStmt{
			Stmts: []Stmt{init, loop},
			Posn:  forTok.Pos,
		}
	}
	return loop, nil
}

func (p *parser) parseLoopBody() (Stmt, error) {
	p.loopDepth++
	defer func() { p.loopDepth-- }()
	return p.parseStatement()
}

func (p *parser) parseIfStmt() (Stmt, error) {
	ifTok := p.previous()
	if _, err := p.expect(LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	thenBranch, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var elseBranch Stmt
	if p.match(Else) {
		if elseBranch, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}
	return &IfStmt{
		Cond: cond,
		Then: thenBranch,
		Else: elseBranch,
		Posn: ifTok.Pos,
	}, nil
}

func (p *parser) parsePrintStmt() (Stmt, error) {
	keyword := p.previous()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &PrintStmt{
		Expr:    value,
		Keyword: keyword,
	}, nil
}

func (p *parser) parseReturnStmt() (Stmt, error) {
	keyword := p.previous()
	if p.funcDepth == 0 {
		p.report(keyword, "Can't return from top-level code.")
	}
	var value Expr
	if !p.check(Semicolon) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value = expr
	}
	if _, err := p.expect(Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ReturnStmt{
		Keyword: keyword,
		Value:   value,
	}, nil
}

func (p *parser) parseBreakStmt() (Stmt, error) {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.report(keyword, "Can't use 'break' outside of a loop.")
	}
	if _, err := p.expect(Semicolon, "Expect ';' after 'break'."); err != nil {
		return nil, err
	}
	return &BreakStmt{Keyword: keyword}, nil
}

func (p *parser) parseWhileStmt() (Stmt, error) {
	whileTok := p.previous()
	if _, err := p.expect(LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.parseLoopBody()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{
		Cond: cond,
		Body: body,
		Posn: whileTok.Pos,
	}, nil
}

func (p *parser) parseExprStmt() (Stmt, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr}, nil
}

func (p *parser) parseExpression() (Expr, error) {
	return p.parseAssignment()
}

func (p *parser) parseAssignment() (Expr, error) {
	expr, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.match(Equal) {
		equals := p.previous()
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		if v, ok := expr.(*VariableExpr); ok {
			return &AssignExpr{
				Name:  v.Name,
				Value: value,
			}, nil
		}
		p.report(equals, "Invalid assignment target.")
	}
	return expr, nil
}

func (p *parser) parseLogicalOr() (Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.match(Or) {
		op := p.previous()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{
			Left:  left,
			Op:    op,
			Right: right,
		}
	}
	return left, nil
}

func (p *parser) parseLogicalAnd() (Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.match(And) {
		op := p.previous()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{
			Left:  left,
			Op:    op,
			Right: right,
		}
	}
	return left, nil
}

// parseBinary folds a left-deep tree for one precedence level.
func (p *parser) parseBinary(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:  left,
			Op:    op,
			Right: right,
		}
	}
	return left, nil
}

func (p *parser) parseEquality() (Expr, error) {
	return p.parseBinary(p.parseComparison, BangEqual, EqualEqual)
}

func (p *parser) parseComparison() (Expr, error) {
	return p.parseBinary(p.parseTerm, Greater, GreaterEqual, Less, LessEqual)
}

func (p *parser) parseTerm() (Expr, error) {
	return p.parseBinary(p.parseFactor, Minus, Plus)
}

func (p *parser) parseFactor() (Expr, error) {
	return p.parseBinary(p.parseUnary, Slash, Star)
}

func (p *parser) parseUnary() (Expr, error) {
	if p.match(Bang, Minus) {
		op := p.previous()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{
			Op:    op,
			Right: right,
		}, nil
	}
	return p.parseCall()
}

func (p *parser) parseCall() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.match(LeftParen) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *parser) finishCall(callee Expr) (Expr, error) {
	var args []Expr
	if !p.check(RightParen) {
		for {
			if len(args) >= maxArgs {
				p.report(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(Comma) {
				break
			}
		}
	}
	paren, err := p.expect(RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &CallExpr{
		Callee: callee,
		Paren:  paren,
		Args:   args,
	}, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch {
	case p.match(False):
		return &LiteralExpr{Value: false, Posn: tok.Pos}, nil
	case p.match(True):
		return &LiteralExpr{Value: true, Posn: tok.Pos}, nil
	case p.match(Nil):
		return &LiteralExpr{Value: nil, Posn: tok.Pos}, nil
	case p.match(Number, String):
		return &LiteralExpr{Value: tok.Literal, Posn: tok.Pos}, nil
	case p.match(Identifier):
		return &VariableExpr{Name: tok}, nil
	case p.match(LeftParen):
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &GroupingExpr{
			Expr: expr,
			Posn: tok.Pos,
		}, nil
	default:
		return nil, newTokenError(tok, "Expect expression.")
	}
}
