// Package discover walks documentation trees and collects the objects
// whose doc text carries runnable examples.
package discover

import "strings"

// Kind classifies a documented object.
type Kind int

const (
	KindPackage Kind = iota
	KindFunc
	KindType
	KindMethod
	KindValue
)

func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindFunc:
		return "func"
	case KindType:
		return "type"
	case KindMethod:
		return "method"
	case KindValue:
		return "value"
	}
	return "object"
}

// Object is a node in a documentation tree: a package, a type with its
// methods, or a standalone function or value.
type Object struct {
	// Name is the qualified report name, e.g. "numtol.Close".
	Name string
	// ID identifies the object regardless of the path it was reached
	// by, so an object visible under several names is collected once.
	ID string
	// Kind classifies the object.
	Kind Kind
	// Doc is the documentation text that may contain examples.
	Doc string
	// Filename and Line locate the doc text, when known.
	Filename string
	Line     int
	// Deprecated objects are excluded from the public API walk.
	Deprecated bool
	// Members are the contained objects: a package's declarations or a
	// type's methods.
	Members []*Object
	// Bases are the types this type embeds. Their methods are part of
	// the type's surface.
	Bases []*Object
	// Public is the declared public name list of a package. Nil means
	// undeclared and the exported-name fallback applies.
	Public []string
}

// Lookup finds a direct member by its unqualified name.
func (o *Object) Lookup(name string) *Object {
	for _, m := range o.Members {
		if baseName(m.Name) == name {
			return m
		}
	}
	return nil
}

// PublicNames returns the declared public list, falling back to all
// exported member names when none is declared.
func (o *Object) PublicNames() []string {
	if o.Public != nil {
		return o.Public
	}
	var names []string
	for _, m := range o.Members {
		if isExported(baseName(m.Name)) {
			names = append(names, baseName(m.Name))
		}
	}
	return names
}

func baseName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

func isExported(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c >= 'A' && c <= 'Z'
}
