package ast

import "github.com/packagefactory/componentengine/token"

// Declaration is a top level declaration of a module.
type Declaration interface {
	Node
	// DeclName returns the name being declared.
	DeclName() *Identifier
	isDecl()
}

// TypeExpr is a type written in the source.
type TypeExpr interface {
	Node
	isTypeExpr()
}

// NamedType references a type by name.
type NamedType struct {
	Name *Identifier
}

// NewNamedType creates a new named type.
func NewNamedType(name *Identifier) *NamedType {
	return &NamedType{name}
}

func (t *NamedType) Range() token.Range { return t.Name.Range() }
func (*NamedType) isTypeExpr()          {}

// OptionalType is "T?", a type that can also be null.
type OptionalType struct {
	Inner TypeExpr
	rng   token.Range
}

// NewOptionalType creates a new optional type.
func NewOptionalType(inner TypeExpr, rng token.Range) (*OptionalType, error) {
	if err := within(rng, inner); err != nil {
		return nil, err
	}
	return &OptionalType{inner, rng}, nil
}

func (t *OptionalType) Range() token.Range { return t.rng }
func (*OptionalType) isTypeExpr()          {}

// UnionType is "A | B", a type that can be any of its members.
type UnionType struct {
	Members []TypeExpr
	rng     token.Range
}

// NewUnionType creates a new union type of at least two members.
func NewUnionType(members []TypeExpr) (*UnionType, error) {
	if len(members) < 2 {
		var rng token.Range
		if len(members) == 1 {
			rng = members[0].Range()
		}
		return nil, structuralError(rng, "A union type needs at least two members.")
	}

	rng := token.Span(members[0].Range(), members[len(members)-1].Range())
	return &UnionType{members, rng}, nil
}

func (t *UnionType) Range() token.Range { return t.rng }
func (*UnionType) isTypeExpr()          {}

// EnumValueKind is the kind of the values of the members of an enum.
type EnumValueKind byte

const (
	// IntegerValues is the kind of enums whose members have integer values
	// or no value at all.
	IntegerValues EnumValueKind = iota
	// StringValues is the kind of enums whose members have string values.
	StringValues
)

func (k EnumValueKind) String() string {
	if k == StringValues {
		return "string"
	}
	return "integer"
}

// EnumMember is a member of an enum, with an optional value that is either an
// *IntegerLiteral or a *StringLiteral.
type EnumMember struct {
	Name  *Identifier
	Value Expr
	rng   token.Range
}

// NewEnumMember creates a new enum member. value may be nil.
func NewEnumMember(name *Identifier, value Expr, rng token.Range) (*EnumMember, error) {
	children := []Node{name}
	switch value.(type) {
	case nil:
	case *IntegerLiteral, *StringLiteral:
		children = append(children, value)
	default:
		return nil, structuralError(value.Range(), "The value of enum member %q must be an integer or a string literal.", name.Name)
	}

	if err := within(rng, children...); err != nil {
		return nil, err
	}
	return &EnumMember{name, value, rng}, nil
}

func (m *EnumMember) Range() token.Range { return m.rng }

// kind returns the kind of the value of the member and whether it has one.
func (m *EnumMember) kind() (EnumValueKind, bool) {
	switch m.Value.(type) {
	case *StringLiteral:
		return StringValues, true
	case *IntegerLiteral:
		return IntegerValues, true
	}
	return IntegerValues, false
}

// EnumDeclaration declares an enumeration.
type EnumDeclaration struct {
	Name    *Identifier
	Members []*EnumMember
	Kind    EnumValueKind
	rng     token.Range
}

// NewEnumDeclaration creates a new enum. It needs at least one member, no
// repeated member names, and all member values of the same kind. Members
// without a value are integers.
func NewEnumDeclaration(name *Identifier, members []*EnumMember, rng token.Range) (*EnumDeclaration, error) {
	if len(members) == 0 {
		return nil, structuralError(rng, "The enum %q needs at least one member.", name.Name)
	}

	names := make([]*Identifier, len(members))
	nodes := []Node{name}
	for i, m := range members {
		names[i] = m.Name
		nodes = append(nodes, m)
	}

	if err := uniqueNames("Enum member", names); err != nil {
		return nil, err
	}

	first, _ := members[0].kind()
	for _, m := range members[1:] {
		if k, _ := m.kind(); k != first {
			return nil, structuralError(
				m.Range(),
				"The member %q of enum %q has a %s value, but the enum has %s values.",
				m.Name.Name, name.Name, k, first,
			)
		}
	}

	if err := within(rng, nodes...); err != nil {
		return nil, err
	}

	return &EnumDeclaration{name, members, first, rng}, nil
}

func (d *EnumDeclaration) Range() token.Range    { return d.rng }
func (d *EnumDeclaration) DeclName() *Identifier { return d.Name }
func (*EnumDeclaration) isDecl()                 {}

// Field is a named and typed field of a struct or an interface.
type Field struct {
	Name *Identifier
	Type TypeExpr
	rng  token.Range
}

// NewField creates a new field.
func NewField(name *Identifier, typ TypeExpr, rng token.Range) (*Field, error) {
	if err := within(rng, name, typ); err != nil {
		return nil, err
	}
	return &Field{name, typ, rng}, nil
}

func (f *Field) Range() token.Range { return f.rng }

func checkFields(rng token.Range, name *Identifier, fields []*Field) error {
	names := make([]*Identifier, len(fields))
	nodes := []Node{name}
	for i, f := range fields {
		names[i] = f.Name
		nodes = append(nodes, f)
	}

	if err := uniqueNames("Field", names); err != nil {
		return err
	}
	return within(rng, nodes...)
}

// StructDeclaration declares a struct type.
type StructDeclaration struct {
	Name   *Identifier
	Fields []*Field
	rng    token.Range
}

// NewStructDeclaration creates a new struct. Field names cannot be repeated.
func NewStructDeclaration(name *Identifier, fields []*Field, rng token.Range) (*StructDeclaration, error) {
	if err := checkFields(rng, name, fields); err != nil {
		return nil, err
	}
	return &StructDeclaration{name, fields, rng}, nil
}

func (d *StructDeclaration) Range() token.Range    { return d.rng }
func (d *StructDeclaration) DeclName() *Identifier { return d.Name }
func (*StructDeclaration) isDecl()                 {}

// InterfaceDeclaration declares an interface type.
type InterfaceDeclaration struct {
	Name   *Identifier
	Fields []*Field
	rng    token.Range
}

// NewInterfaceDeclaration creates a new interface. Field names cannot be
// repeated.
func NewInterfaceDeclaration(name *Identifier, fields []*Field, rng token.Range) (*InterfaceDeclaration, error) {
	if err := checkFields(rng, name, fields); err != nil {
		return nil, err
	}
	return &InterfaceDeclaration{name, fields, rng}, nil
}

func (d *InterfaceDeclaration) Range() token.Range    { return d.rng }
func (d *InterfaceDeclaration) DeclName() *Identifier { return d.Name }
func (*InterfaceDeclaration) isDecl()                 {}

// Parameter is a parameter of a component, with an optional default value.
type Parameter struct {
	Name    *Identifier
	Type    TypeExpr
	Default Expr
	rng     token.Range
}

// NewParameter creates a new parameter. def may be nil.
func NewParameter(name *Identifier, typ TypeExpr, def Expr, rng token.Range) (*Parameter, error) {
	children := []Node{name, typ}
	if def != nil {
		children = append(children, def)
	}

	if err := within(rng, children...); err != nil {
		return nil, err
	}
	return &Parameter{name, typ, def, rng}, nil
}

func (p *Parameter) Range() token.Range { return p.rng }

// ComponentDeclaration declares a component: a function from its parameters
// to its body.
type ComponentDeclaration struct {
	Name   *Identifier
	Params []*Parameter
	// Result is the declared type of the body, if any.
	Result TypeExpr
	Body   Expr
	rng    token.Range
}

// NewComponentDeclaration creates a new component. Parameter names cannot be
// repeated. result may be nil.
func NewComponentDeclaration(
	name *Identifier,
	params []*Parameter,
	result TypeExpr,
	body Expr,
	rng token.Range,
) (*ComponentDeclaration, error) {
	names := make([]*Identifier, len(params))
	nodes := []Node{name}
	for i, p := range params {
		names[i] = p.Name
		nodes = append(nodes, p)
	}

	if err := uniqueNames("Parameter", names); err != nil {
		return nil, err
	}

	if result != nil {
		nodes = append(nodes, result)
	}

	if err := within(rng, append(nodes, body)...); err != nil {
		return nil, err
	}

	return &ComponentDeclaration{name, params, result, body, rng}, nil
}

func (d *ComponentDeclaration) Range() token.Range    { return d.rng }
func (d *ComponentDeclaration) DeclName() *Identifier { return d.Name }
func (*ComponentDeclaration) isDecl()                 {}

// Param returns the parameter with the given name, or nil.
func (d *ComponentDeclaration) Param(name string) *Parameter {
	for _, p := range d.Params {
		if p.Name.Name == name {
			return p
		}
	}
	return nil
}
