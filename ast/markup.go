package ast

import "github.com/packagefactory/componentengine/token"

// Child is a node that can be a child of a tag.
type Child interface {
	Node
	isChild()
}

// AttributeValue is the value of an attribute: a string literal or an
// embedded expression.
type AttributeValue interface {
	Node
	isAttributeValue()
}

// Text is literal text between tags.
type Text struct {
	Value string
	rng   token.Range
}

// NewText creates a new text node.
func NewText(value string, rng token.Range) *Text {
	return &Text{value, rng}
}

func (t *Text) Range() token.Range { return t.rng }
func (*Text) isChild()             {}

// Embedded is an expression between braces inside a tag, an attribute or a
// template literal.
type Embedded struct {
	Expr Expr
	rng  token.Range
}

// NewEmbedded creates a new embedded expression. The range includes the
// delimiters.
func NewEmbedded(expr Expr, rng token.Range) (*Embedded, error) {
	if err := within(rng, expr); err != nil {
		return nil, err
	}
	return &Embedded{expr, rng}, nil
}

func (e *Embedded) Range() token.Range { return e.rng }
func (*Embedded) isChild()             {}
func (*Embedded) isAttributeValue()    {}
func (*Embedded) isTemplateSpan()      {}

// Attribute is a single attribute of a tag. Bare attributes have no value.
type Attribute struct {
	Name  *Identifier
	Value AttributeValue
	rng   token.Range
}

// NewAttribute creates a new attribute. value may be nil.
func NewAttribute(name *Identifier, value AttributeValue, rng token.Range) (*Attribute, error) {
	children := []Node{name}
	if value != nil {
		children = append(children, value)
	}

	if err := within(rng, children...); err != nil {
		return nil, err
	}
	return &Attribute{name, value, rng}, nil
}

func (a *Attribute) Range() token.Range { return a.rng }

// Tag is a markup element.
type Tag struct {
	Name        *Identifier
	Attributes  []*Attribute
	Children    []Child
	SelfClosing bool
	rng         token.Range
}

// NewTag creates a new tag. closing is the name of the closing tag, which
// must be nil for self closing tags and the same as name otherwise.
// Attribute names cannot be repeated.
func NewTag(name, closing *Identifier, attrs []*Attribute, children []Child, rng token.Range) (*Tag, error) {
	selfClosing := closing == nil
	if selfClosing && len(children) > 0 {
		return nil, structuralError(rng, "The self closing tag %q cannot have children.", name.Name)
	}

	if !selfClosing && closing.Name != name.Name {
		return nil, structuralError(
			closing.Range(),
			"I was expecting the closing tag of %q, but I found %q instead.",
			name.Name, closing.Name,
		)
	}

	names := make([]*Identifier, len(attrs))
	nodes := []Node{name}
	for i, a := range attrs {
		names[i] = a.Name
		nodes = append(nodes, a)
	}

	if err := uniqueNames("Attribute", names); err != nil {
		return nil, err
	}

	for _, c := range children {
		nodes = append(nodes, c)
	}

	if !selfClosing {
		nodes = append(nodes, closing)
	}

	if err := within(rng, nodes...); err != nil {
		return nil, err
	}

	return &Tag{name, attrs, children, selfClosing, rng}, nil
}

func (t *Tag) Range() token.Range { return t.rng }
func (*Tag) isExpr()              {}
func (*Tag) isChild()             {}

// Attribute returns the attribute with the given name, or nil.
func (t *Tag) Attribute(name string) *Attribute {
	for _, a := range t.Attributes {
		if a.Name.Name == name {
			return a
		}
	}
	return nil
}
