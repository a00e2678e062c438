package pyast

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/alexaandru/go-sitter-forest/python"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// Sentinel errors for parsing.
var (
	// ErrMalformedInput reports source that does not parse as Python at
	// all. No translation is attempted for such input.
	ErrMalformedInput = errors.New("pyast: malformed input")

	errNoRootNode = errors.New("pyast: no root node")
)

// pyLanguage initializes the tree-sitter Python grammar once per process.
var pyLanguage = sync.OnceValue(func() *sitter.Language {
	return sitter.NewLanguage(python.GetLanguage())
})

// Parse lowers Python source into a Module. It fails only when the source
// does not parse as Python; constructs outside the supported subset lower
// to BadStmt/BadExpr placeholders instead.
func Parse(ctx context.Context, src []byte) (*Module, error) {
	tsParser := sitter.NewParser()
	tsParser.SetLanguage(pyLanguage())

	tree, err := tsParser.ParseString(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("pyast: parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, errNoRootNode
	}

	if badLine := firstSyntaxError(root); badLine > 0 {
		return nil, fmt.Errorf("%w: invalid syntax near line %d", ErrMalformedInput, badLine)
	}

	low := &lowerer{src: src, comments: make(map[int]string)}
	body := low.lowerBlock(root)

	return &Module{Body: body, Comments: low.comments}, nil
}

// firstSyntaxError returns the line of the first ERROR node, or 0 when
// the tree is clean.
func firstSyntaxError(n sitter.Node) int {
	if n.Type() == "ERROR" {
		return startLine(n)
	}

	for i := range n.NamedChildCount() {
		if line := firstSyntaxError(n.NamedChild(i)); line > 0 {
			return line
		}
	}

	return 0
}

// lowerer carries per-invocation lowering state. Nothing here outlives a
// single Parse call.
type lowerer struct {
	src      []byte
	comments map[int]string
}

func (l *lowerer) text(n sitter.Node) string {
	return string(l.src[n.StartByte():n.EndByte()])
}

func startLine(n sitter.Node) int { return int(n.StartPoint().Row) + 1 }
func endLine(n sitter.Node) int   { return int(n.EndPoint().Row) + 1 }

// lowerBlock lowers the named children of a module or block node,
// harvesting comment nodes into the comment table along the way.
func (l *lowerer) lowerBlock(n sitter.Node) []Stmt {
	var body []Stmt

	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)

		if child.Type() == "comment" {
			l.recordComment(child)
			continue
		}

		if stmt := l.lowerStmt(child); stmt != nil {
			body = append(body, stmt)
		}
	}

	return body
}

func (l *lowerer) recordComment(n sitter.Node) {
	text := strings.TrimSpace(strings.TrimPrefix(l.text(n), "#"))
	if text == "" {
		return
	}

	line := startLine(n)
	if _, seen := l.comments[line]; !seen {
		l.comments[line] = text
	}
}

func (l *lowerer) lowerStmt(n sitter.Node) Stmt {
	switch n.Type() {
	case "expression_statement":
		return l.lowerExprStatement(n)
	case "if_statement":
		return l.lowerIf(n)
	case "while_statement":
		return &While{
			Ln:    startLine(n),
			EndLn: endLine(n),
			Test:  l.lowerExpr(n.ChildByFieldName("condition")),
			Body:  l.lowerBlock(n.ChildByFieldName("body")),
		}
	case "for_statement":
		return l.lowerFor(n)
	case "function_definition":
		return l.lowerFunctionDef(n)
	case "break_statement":
		return &Break{Ln: startLine(n)}
	case "continue_statement":
		return &Continue{Ln: startLine(n)}
	case "import_from_statement":
		return l.lowerImportFrom(n)
	case "import_statement":
		return l.lowerImport(n)
	case "pass_statement":
		return nil
	default:
		return &BadStmt{Ln: startLine(n), Kind: n.Type()}
	}
}

// lowerExprStatement unwraps assignments hidden inside an
// expression_statement node; everything else becomes an ExprStmt.
func (l *lowerer) lowerExprStatement(n sitter.Node) Stmt {
	if n.NamedChildCount() == 0 {
		return &BadStmt{Ln: startLine(n), Kind: n.Type()}
	}

	inner := n.NamedChild(0)

	switch inner.Type() {
	case "assignment":
		return l.lowerAssign(inner)
	case "augmented_assignment":
		return l.lowerAugAssign(inner)
	default:
		return &ExprStmt{Ln: startLine(n), Value: l.lowerExpr(inner)}
	}
}

// lowerAssign reduces an assignment (including a = b = v chains) to a
// single-target Assign on the first target. Non-identifier targets are
// outside the subset.
func (l *lowerer) lowerAssign(n sitter.Node) Stmt {
	left := n.ChildByFieldName("left")
	if left.IsNull() || left.Type() != "identifier" {
		return &BadStmt{Ln: startLine(n), Kind: "assignment"}
	}

	right := n.ChildByFieldName("right")
	for !right.IsNull() && right.Type() == "assignment" {
		right = right.ChildByFieldName("right")
	}

	if right.IsNull() {
		return &BadStmt{Ln: startLine(n), Kind: "assignment"}
	}

	return &Assign{Ln: startLine(n), Target: l.text(left), Value: l.lowerExpr(right)}
}

func (l *lowerer) lowerAugAssign(n sitter.Node) Stmt {
	left := n.ChildByFieldName("left")
	opNode := n.ChildByFieldName("operator")
	right := n.ChildByFieldName("right")

	if left.IsNull() || left.Type() != "identifier" || opNode.IsNull() || right.IsNull() {
		return &BadStmt{Ln: startLine(n), Kind: "augmented_assignment"}
	}

	op := binOpFromToken(strings.TrimSuffix(l.text(opNode), "="))
	if op == OpInvalid {
		return &BadStmt{Ln: startLine(n), Kind: "augmented_assignment"}
	}

	return &AugAssign{Ln: startLine(n), Target: l.text(left), Op: op, Value: l.lowerExpr(right)}
}

func (l *lowerer) lowerIf(n sitter.Node) Stmt {
	stmt := &If{
		Ln:    startLine(n),
		EndLn: endLine(n),
		Test:  l.lowerExpr(n.ChildByFieldName("condition")),
		Body:  l.lowerBlock(n.ChildByFieldName("consequence")),
	}

	// Fold the elif/else chain into nested If nodes.
	cur := stmt

	for i := range n.NamedChildCount() {
		clause := n.NamedChild(i)

		switch clause.Type() {
		case "elif_clause":
			next := &If{
				Ln:    startLine(clause),
				EndLn: endLine(clause),
				Test:  l.lowerExpr(clause.ChildByFieldName("condition")),
				Body:  l.lowerBlock(clause.ChildByFieldName("consequence")),
			}
			cur.Else = []Stmt{next}
			cur = next
		case "else_clause":
			cur.Else = l.lowerBlock(clause.ChildByFieldName("body"))
		}
	}

	return stmt
}

// lowerFor supports only counted iteration over range(end) and
// range(start, end). Anything else degrades to a placeholder.
func (l *lowerer) lowerFor(n sitter.Node) Stmt {
	target := n.ChildByFieldName("left")
	iter := n.ChildByFieldName("right")

	if target.IsNull() || target.Type() != "identifier" || iter.IsNull() {
		return &BadStmt{Ln: startLine(n), Kind: "for_statement"}
	}

	if iter.Type() != "call" {
		return &BadStmt{Ln: startLine(n), Kind: "for_statement"}
	}

	callee := iter.ChildByFieldName("function")
	if callee.IsNull() || callee.Type() != "identifier" || l.text(callee) != "range" {
		return &BadStmt{Ln: startLine(n), Kind: "for_statement"}
	}

	args := l.callArgs(iter)

	var start, end Expr

	switch len(args) {
	case 1:
		start = &Literal{Ln: startLine(n), Kind: LitInt, Raw: "0"}
		end = args[0]
	case 2:
		start, end = args[0], args[1]
	default:
		// A step argument (or no argument) is a deliberate scope
		// limitation, not an omission.
		return &BadStmt{Ln: startLine(n), Kind: "for_statement"}
	}

	return &ForRange{
		Ln:    startLine(n),
		EndLn: endLine(n),
		Var:   l.text(target),
		Start: start,
		End:   end,
		Body:  l.lowerBlock(n.ChildByFieldName("body")),
	}
}

func (l *lowerer) lowerFunctionDef(n sitter.Node) Stmt {
	name := n.ChildByFieldName("name")
	if name.IsNull() {
		return &BadStmt{Ln: startLine(n), Kind: "function_definition"}
	}

	var params []string

	if plist := n.ChildByFieldName("parameters"); !plist.IsNull() {
		for i := range plist.NamedChildCount() {
			if p := l.paramName(plist.NamedChild(i)); p != "" {
				params = append(params, p)
			}
		}
	}

	return &FunctionDef{
		Ln:     startLine(n),
		EndLn:  endLine(n),
		Name:   l.text(name),
		Params: params,
		Body:   l.lowerBlock(n.ChildByFieldName("body")),
	}
}

// paramName extracts the identifier from a parameter node, looking
// through typed and defaulted forms.
func (l *lowerer) paramName(n sitter.Node) string {
	if n.Type() == "identifier" {
		return l.text(n)
	}

	if name := n.ChildByFieldName("name"); !name.IsNull() && name.Type() == "identifier" {
		return l.text(name)
	}

	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)
		if child.Type() == "identifier" {
			return l.text(child)
		}
	}

	return ""
}

func (l *lowerer) lowerImportFrom(n sitter.Node) Stmt {
	module := n.ChildByFieldName("module_name")
	if module.IsNull() {
		return &BadStmt{Ln: startLine(n), Kind: "import_from_statement"}
	}

	imp := &Import{Ln: startLine(n), Module: l.text(module), From: true}

	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)
		if child.StartByte() == module.StartByte() {
			continue
		}

		switch child.Type() {
		case "dotted_name", "identifier":
			imp.Names = append(imp.Names, l.text(child))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); !name.IsNull() {
				imp.Names = append(imp.Names, l.text(name))
			}
		}
	}

	return imp
}

func (l *lowerer) lowerImport(n sitter.Node) Stmt {
	imp := &Import{Ln: startLine(n)}

	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)

		switch child.Type() {
		case "dotted_name":
			imp.Module = l.text(child)
		case "aliased_import":
			if name := child.ChildByFieldName("name"); !name.IsNull() {
				imp.Module = l.text(name)
			}
		}

		if imp.Module != "" {
			break
		}
	}

	return imp
}

// ---- Expressions ----

func (l *lowerer) lowerExpr(n sitter.Node) Expr {
	if n.IsNull() {
		return &BadExpr{From: "missing"}
	}

	switch n.Type() {
	case "parenthesized_expression":
		if n.NamedChildCount() > 0 {
			return l.lowerExpr(n.NamedChild(0))
		}

		return &BadExpr{Ln: startLine(n), From: n.Type()}
	case "binary_operator":
		return l.lowerBinary(n)
	case "boolean_operator":
		return l.lowerBoolean(n)
	case "comparison_operator":
		return l.lowerComparison(n)
	case "not_operator":
		if arg := n.ChildByFieldName("argument"); !arg.IsNull() {
			return &UnaryOp{Ln: startLine(n), Op: OpNot, Operand: l.lowerExpr(arg)}
		}

		return &BadExpr{Ln: startLine(n), From: n.Type()}
	case "unary_operator":
		return l.lowerUnary(n)
	case "call":
		return l.lowerCall(n)
	case "attribute":
		return l.lowerAttribute(n)
	case "identifier":
		return &Name{Ln: startLine(n), ID: l.text(n)}
	case "integer":
		return &Literal{Ln: startLine(n), Kind: LitInt, Raw: l.text(n)}
	case "float":
		return &Literal{Ln: startLine(n), Kind: LitFloat, Raw: l.text(n)}
	case "string":
		return &Literal{Ln: startLine(n), Kind: LitString, Raw: l.stringContent(n)}
	case "true":
		return &Literal{Ln: startLine(n), Kind: LitBool, Raw: "True"}
	case "false":
		return &Literal{Ln: startLine(n), Kind: LitBool, Raw: "False"}
	case "none":
		return &Literal{Ln: startLine(n), Kind: LitNone, Raw: "None"}
	default:
		return &BadExpr{Ln: startLine(n), From: n.Type()}
	}
}

func (l *lowerer) lowerBinary(n sitter.Node) Expr {
	left := n.ChildByFieldName("left")
	opNode := n.ChildByFieldName("operator")
	right := n.ChildByFieldName("right")

	if left.IsNull() || opNode.IsNull() || right.IsNull() {
		return &BadExpr{Ln: startLine(n), From: n.Type()}
	}

	op := binOpFromToken(l.text(opNode))
	if op == OpInvalid {
		return &BadExpr{Ln: startLine(n), From: n.Type()}
	}

	return &BinaryOp{Ln: startLine(n), Op: op, Left: l.lowerExpr(left), Right: l.lowerExpr(right)}
}

func (l *lowerer) lowerBoolean(n sitter.Node) Expr {
	left := n.ChildByFieldName("left")
	opNode := n.ChildByFieldName("operator")
	right := n.ChildByFieldName("right")

	if left.IsNull() || opNode.IsNull() || right.IsNull() {
		return &BadExpr{Ln: startLine(n), From: n.Type()}
	}

	op := OpAnd
	if l.text(opNode) == "or" {
		op = OpOr
	}

	return &BooleanOp{Ln: startLine(n), Op: op, Left: l.lowerExpr(left), Right: l.lowerExpr(right)}
}

// lowerComparison keeps the first operator and comparator of a chain,
// matching the single-pair contract of the translator.
func (l *lowerer) lowerComparison(n sitter.Node) Expr {
	var (
		operands []sitter.Node
		opToken  string
	)

	for i := range n.ChildCount() {
		child := n.Child(i)
		if child.IsNamed() {
			operands = append(operands, child)
		} else if opToken == "" {
			opToken = l.text(child)
		}
	}

	const pair = 2
	if len(operands) < pair {
		return &BadExpr{Ln: startLine(n), From: n.Type()}
	}

	op := cmpOpFromToken(opToken)
	if op == OpInvalid {
		return &BadExpr{Ln: startLine(n), From: n.Type()}
	}

	return &Comparison{
		Ln:    startLine(n),
		Op:    op,
		Left:  l.lowerExpr(operands[0]),
		Right: l.lowerExpr(operands[1]),
	}
}

func (l *lowerer) lowerUnary(n sitter.Node) Expr {
	opNode := n.ChildByFieldName("operator")
	arg := n.ChildByFieldName("argument")

	if opNode.IsNull() || arg.IsNull() {
		return &BadExpr{Ln: startLine(n), From: n.Type()}
	}

	var op Op

	switch l.text(opNode) {
	case "-":
		op = OpNeg
	case "+":
		op = OpPos
	default:
		return &BadExpr{Ln: startLine(n), From: n.Type()}
	}

	return &UnaryOp{Ln: startLine(n), Op: op, Operand: l.lowerExpr(arg)}
}

func (l *lowerer) lowerCall(n sitter.Node) Expr {
	callee := n.ChildByFieldName("function")
	if callee.IsNull() {
		return &BadExpr{Ln: startLine(n), From: n.Type()}
	}

	return &Call{Ln: startLine(n), Func: l.lowerExpr(callee), Args: l.callArgs(n)}
}

func (l *lowerer) callArgs(call sitter.Node) []Expr {
	argList := call.ChildByFieldName("arguments")
	if argList.IsNull() {
		return nil
	}

	var args []Expr

	for i := range argList.NamedChildCount() {
		child := argList.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}

		args = append(args, l.lowerExpr(child))
	}

	return args
}

func (l *lowerer) lowerAttribute(n sitter.Node) Expr {
	object := n.ChildByFieldName("object")
	attr := n.ChildByFieldName("attribute")

	if object.IsNull() || attr.IsNull() {
		return &BadExpr{Ln: startLine(n), From: n.Type()}
	}

	return &Attribute{Ln: startLine(n), Receiver: l.lowerExpr(object), Name: l.text(attr)}
}

// stringContent returns the unquoted content of a string node with
// escape sequences interpreted, so the renderer can re-quote it for the
// target language.
func (l *lowerer) stringContent(n sitter.Node) string {
	var sb strings.Builder

	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)

		switch child.Type() {
		case "string_content":
			sb.WriteString(l.text(child))
		case "escape_sequence":
			raw := l.text(child)
			if unquoted, err := strconv.Unquote(`"` + raw + `"`); err == nil {
				sb.WriteString(unquoted)
			} else {
				sb.WriteString(raw)
			}
		}
	}

	return sb.String()
}

// binOpFromToken maps a Python arithmetic token to its operator kind.
// Both division tokens map to OpDiv.
func binOpFromToken(tok string) Op {
	switch tok {
	case "+":
		return OpAdd
	case "-":
		return OpSub
	case "*":
		return OpMul
	case "/", "//":
		return OpDiv
	case "%":
		return OpMod
	case "**":
		return OpPow
	default:
		return OpInvalid
	}
}

func cmpOpFromToken(tok string) Op {
	switch tok {
	case "==":
		return OpEq
	case "!=":
		return OpNe
	case "<":
		return OpLt
	case "<=":
		return OpLe
	case ">":
		return OpGt
	case ">=":
		return OpGe
	default:
		return OpInvalid
	}
}
