package types

import "strings"

// Type represents a type in the AEM type system.
type Type interface {
	String() string
	// IsType is a marker method to ensure type safety.
	IsType()
}

// PrimitiveKind represents the kind of a primitive type.
type PrimitiveKind string

const (
	Int    PrimitiveKind = "int"
	Float  PrimitiveKind = "float"
	Bool   PrimitiveKind = "bool"
	String PrimitiveKind = "string"
	Void   PrimitiveKind = "void"
)

// Primitive represents a primitive type.
type Primitive struct {
	Kind PrimitiveKind
}

func (p *Primitive) String() string { return string(p.Kind) }
func (p *Primitive) IsType()        {}

// Common primitive instances. Resolution compares these by identity, so all
// lookups must go through Lookup rather than constructing fresh values.
var (
	TypeInt    = &Primitive{Kind: Int}
	TypeFloat  = &Primitive{Kind: Float}
	TypeBool   = &Primitive{Kind: Bool}
	TypeString = &Primitive{Kind: String}
	TypeVoid   = &Primitive{Kind: Void}
)

var primitives = map[string]*Primitive{
	"int":    TypeInt,
	"float":  TypeFloat,
	"bool":   TypeBool,
	"string": TypeString,
	"void":   TypeVoid,
}

// Lookup returns the primitive type named by name, or nil if the name does
// not denote a type.
func Lookup(name string) Type {
	if p, ok := primitives[name]; ok {
		return p
	}
	return nil
}

// Function represents a function type.
type Function struct {
	Params []Type
	Return Type // TypeVoid for value-less functions
}

func (f *Function) String() string {
	var params []string
	for _, p := range f.Params {
		params = append(params, p.String())
	}
	ret := "void"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return "function(" + strings.Join(params, ", ") + ") -> " + ret
}
func (f *Function) IsType() {}

// Equals reports whether two types are structurally equal.
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}

	switch at := a.(type) {
	case *Primitive:
		bt, ok := b.(*Primitive)
		return ok && at.Kind == bt.Kind
	case *Function:
		bt, ok := b.(*Function)
		if !ok || len(at.Params) != len(bt.Params) {
			return false
		}
		for i := range at.Params {
			if !Equals(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return Equals(at.Return, bt.Return)
	default:
		return false
	}
}

// AssignableTo reports whether a value of type from may be used where type to
// is expected. The only implicit coercion is the widening of int to float.
func AssignableTo(from, to Type) bool {
	if Equals(from, to) {
		return true
	}
	return Equals(from, TypeInt) && Equals(to, TypeFloat)
}

// IsNumeric reports whether t supports arithmetic operators.
func IsNumeric(t Type) bool {
	return Equals(t, TypeInt) || Equals(t, TypeFloat)
}
