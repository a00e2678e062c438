// Package header introspects Arduino library C++ headers: it extracts
// class declarations with their constructors and methods, infers simple
// Python parameter types, and generates Python stub modules. The class
// names it reports feed the transpiler's constructible-type registry.
package header

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/alexaandru/go-sitter-forest/cpp"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// errNoRootNode reports an empty parse result.
var errNoRootNode = errors.New("header: no root node")

// cppLanguage initializes the tree-sitter C++ grammar once per process.
var cppLanguage = sync.OnceValue(func() *sitter.Language {
	return sitter.NewLanguage(cpp.GetLanguage())
})

// Param is one method parameter with its inferred Python type.
type Param struct {
	Name   string
	PyType string
}

// Method is one constructor or member function. Overloads appear as
// separate entries with the same name.
type Method struct {
	Name   string
	Params []Param
}

// Class is one class definition found in a header.
type Class struct {
	Name    string
	Methods []Method
}

// Extract parses a C++ header and returns its class definitions. The
// walk is best effort: declarations it cannot interpret are skipped.
func Extract(ctx context.Context, src []byte) ([]Class, error) {
	tsParser := sitter.NewParser()
	tsParser.SetLanguage(cppLanguage())

	tree, err := tsParser.ParseString(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("header: parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, errNoRootNode
	}

	ex := &extractor{src: src}
	ex.walk(root)

	return ex.classes, nil
}

// ClassNames returns the names of the extracted classes, in order.
func ClassNames(classes []Class) []string {
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.Name
	}

	return names
}

type extractor struct {
	src     []byte
	classes []Class
}

func (ex *extractor) text(n sitter.Node) string {
	return string(ex.src[n.StartByte():n.EndByte()])
}

func (ex *extractor) walk(n sitter.Node) {
	if n.Type() == "class_specifier" {
		ex.extractClass(n)
		return
	}

	for i := range n.NamedChildCount() {
		ex.walk(n.NamedChild(i))
	}
}

func (ex *extractor) extractClass(n sitter.Node) {
	name := n.ChildByFieldName("name")
	body := n.ChildByFieldName("body")

	// Forward declarations have no body and declare nothing usable.
	if name.IsNull() || body.IsNull() {
		return
	}

	cls := Class{Name: ex.text(name)}

	for i := range body.NamedChildCount() {
		member := body.NamedChild(i)

		switch member.Type() {
		case "field_declaration", "function_definition", "declaration":
			if m, ok := ex.extractMethod(member); ok {
				cls.Methods = append(cls.Methods, m)
			}
		}
	}

	ex.classes = append(ex.classes, cls)
}

// extractMethod interprets a class member as a constructor or method.
// Destructors, operators and plain data members are skipped.
func (ex *extractor) extractMethod(n sitter.Node) (Method, bool) {
	fn := findDescendant(n, "function_declarator")
	if fn.IsNull() {
		return Method{}, false
	}

	nameNode := fn.ChildByFieldName("declarator")
	if nameNode.IsNull() {
		return Method{}, false
	}

	name := ex.text(nameNode)
	if strings.HasPrefix(name, "~") || strings.Contains(name, "operator") {
		return Method{}, false
	}

	method := Method{Name: name}

	if params := fn.ChildByFieldName("parameters"); !params.IsNull() {
		for i := range params.NamedChildCount() {
			p := params.NamedChild(i)
			if p.Type() != "parameter_declaration" {
				continue
			}

			method.Params = append(method.Params, ex.extractParam(p, len(method.Params)))
		}
	}

	return method, true
}

func (ex *extractor) extractParam(n sitter.Node, index int) Param {
	cppType := ""
	if typeNode := n.ChildByFieldName("type"); !typeNode.IsNull() {
		cppType = ex.text(typeNode)
	}

	name := ""

	if decl := n.ChildByFieldName("declarator"); !decl.IsNull() {
		if decl.Type() == "pointer_declarator" {
			cppType += "*"
		}

		if id := findDescendant(decl, "identifier"); !id.IsNull() {
			name = ex.text(id)
		}
	}

	if name == "" {
		name = "arg" + strconv.Itoa(index)
	}

	return Param{Name: name, PyType: pyTypeFor(cppType)}
}

// findDescendant returns the first named descendant of the given type,
// or a null node.
func findDescendant(n sitter.Node, typ string) sitter.Node {
	if n.Type() == typ {
		return n
	}

	for i := range n.NamedChildCount() {
		if found := findDescendant(n.NamedChild(i), typ); !found.IsNull() {
			return found
		}
	}

	return sitter.Node{}
}

// pyTypeFor maps a C++ parameter type to a simple Python annotation.
func pyTypeFor(cppType string) string {
	switch cppType {
	case "int", "long", "short", "unsigned int", "uint8_t":
		return "int"
	case "float", "double":
		return "float"
	case "bool":
		return "bool"
	case "char*":
		return "str"
	default:
		return "Any"
	}
}
