// Package pyast defines the Python-subset syntax tree consumed by the
// transpiler and a tree-sitter based parser that lowers Python source into
// it. The tree is immutable once built; downstream stages only read it.
package pyast

// Op identifies an abstract operator, independent of source or target
// token spelling.
type Op int

// Operator kinds. Floor division lowers to OpDiv: the target language has
// no distinct integer-division operator.
const (
	OpInvalid Op = iota

	// Arithmetic.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow

	// Comparison.
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe

	// Boolean.
	OpAnd
	OpOr

	// Unary.
	OpNot
	OpNeg
	OpPos
)

// LitKind classifies a Literal.
type LitKind int

// Literal kinds.
const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitBool
	LitNone
)

// Node is the common interface of all syntax-tree nodes.
type Node interface {
	// Line returns the 1-based source line the node starts on.
	Line() int
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Module is the root of a parsed source file.
type Module struct {
	Body []Stmt

	// Comments maps a 1-based source line to the human-readable comment
	// text found on that line, with the leading marker stripped.
	Comments map[int]string
}

// ---- Expressions ----

// Name is a bare identifier reference.
type Name struct {
	Ln int
	ID string
}

// Literal is a numeric, string, boolean or none constant. For strings,
// Raw holds the unquoted content; for everything else the source text.
type Literal struct {
	Ln   int
	Kind LitKind
	Raw  string
}

// BinaryOp is an arithmetic operation over two operands.
type BinaryOp struct {
	Ln          int
	Op          Op
	Left, Right Expr
}

// UnaryOp is a prefix operation over a single operand.
type UnaryOp struct {
	Ln      int
	Op      Op
	Operand Expr
}

// BooleanOp is a short-circuit and/or. Chains nest to the right.
type BooleanOp struct {
	Ln          int
	Op          Op
	Left, Right Expr
}

// Comparison keeps only the first operator and comparator of a chain.
type Comparison struct {
	Ln          int
	Op          Op
	Left, Right Expr
}

// Call is a function or method invocation.
type Call struct {
	Ln   int
	Func Expr
	Args []Expr
}

// Attribute is a dotted access such as receiver.name.
type Attribute struct {
	Ln       int
	Receiver Expr
	Name     string
}

// BadExpr stands in for an expression outside the supported subset.
type BadExpr struct {
	Ln   int
	From string
}

// ---- Statements ----

// Assign is a single-target assignment. Multi-target chains are reduced
// to the first target during lowering.
type Assign struct {
	Ln     int
	Target string
	Value  Expr
}

// AugAssign is an in-place operator assignment such as x += 1.
type AugAssign struct {
	Ln     int
	Target string
	Op     Op
	Value  Expr
}

// ExprStmt is a bare expression used as a statement.
type ExprStmt struct {
	Ln    int
	Value Expr
}

// If is a conditional with an optional else branch. An elif chain lowers
// to a nested If as the sole statement of Else.
type If struct {
	Ln    int
	EndLn int
	Test  Expr
	Body  []Stmt
	Else  []Stmt
}

// While is a pre-test loop.
type While struct {
	Ln    int
	EndLn int
	Test  Expr
	Body  []Stmt
}

// ForRange is a counted loop over the half-open interval [Start, End).
type ForRange struct {
	Ln         int
	EndLn      int
	Var        string
	Start, End Expr
	Body       []Stmt
}

// FunctionDef is a top-level procedure definition.
type FunctionDef struct {
	Ln     int
	EndLn  int
	Name   string
	Params []string
	Body   []Stmt
}

// Break terminates the innermost loop.
type Break struct {
	Ln int
}

// Continue resumes the innermost loop.
type Continue struct {
	Ln int
}

// Import records an import statement. From is true for the
// "from M import a, b" form, which is the only form that contributes
// an include and registers constructible names.
type Import struct {
	Ln     int
	Module string
	Names  []string
	From   bool
}

// BadStmt stands in for a statement outside the supported subset. It
// renders as a placeholder so the surrounding block keeps its structure.
type BadStmt struct {
	Ln   int
	Kind string
}

// Line implementations.

func (n *Name) Line() int        { return n.Ln }
func (n *Literal) Line() int     { return n.Ln }
func (n *BinaryOp) Line() int    { return n.Ln }
func (n *UnaryOp) Line() int     { return n.Ln }
func (n *BooleanOp) Line() int   { return n.Ln }
func (n *Comparison) Line() int  { return n.Ln }
func (n *Call) Line() int        { return n.Ln }
func (n *Attribute) Line() int   { return n.Ln }
func (n *BadExpr) Line() int     { return n.Ln }
func (n *Assign) Line() int      { return n.Ln }
func (n *AugAssign) Line() int   { return n.Ln }
func (n *ExprStmt) Line() int    { return n.Ln }
func (n *If) Line() int          { return n.Ln }
func (n *While) Line() int       { return n.Ln }
func (n *ForRange) Line() int    { return n.Ln }
func (n *FunctionDef) Line() int { return n.Ln }
func (n *Break) Line() int       { return n.Ln }
func (n *Continue) Line() int    { return n.Ln }
func (n *Import) Line() int      { return n.Ln }
func (n *BadStmt) Line() int     { return n.Ln }

// Marker methods.

func (*Name) exprNode()       {}
func (*Literal) exprNode()    {}
func (*BinaryOp) exprNode()   {}
func (*UnaryOp) exprNode()    {}
func (*BooleanOp) exprNode()  {}
func (*Comparison) exprNode() {}
func (*Call) exprNode()       {}
func (*Attribute) exprNode()  {}
func (*BadExpr) exprNode()    {}

func (*Assign) stmtNode()      {}
func (*AugAssign) stmtNode()   {}
func (*ExprStmt) stmtNode()    {}
func (*If) stmtNode()          {}
func (*While) stmtNode()       {}
func (*ForRange) stmtNode()    {}
func (*FunctionDef) stmtNode() {}
func (*Break) stmtNode()       {}
func (*Continue) stmtNode()    {}
func (*Import) stmtNode()      {}
func (*BadStmt) stmtNode()     {}
