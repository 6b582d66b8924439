package discover

import (
	"github.com/numdoc/numdoc/internal/config"
	"github.com/numdoc/numdoc/internal/errors"
)

// Strategy selects how the documentation tree is walked.
type Strategy string

const (
	// StrategyDefault collects every documented object reachable from
	// the root, public or not.
	StrategyDefault Strategy = "default"
	// StrategyAPI collects only the declared public surface and fails
	// hard when a declared name does not resolve.
	StrategyAPI Strategy = "api"
)

// Finder collects documented objects from a tree according to a
// strategy, deduplicates them by identity, and applies the skiplist.
type Finder struct {
	cfg      *config.Config
	strategy Strategy
}

// NewFinder builds a finder. An empty strategy means the default one.
func NewFinder(cfg *config.Config, strategy Strategy) *Finder {
	if strategy == "" {
		strategy = StrategyDefault
	}
	return &Finder{cfg: cfg, strategy: strategy}
}

// Find walks the tree rooted at root and returns the collected
// objects in walk order.
func (f *Finder) Find(root *Object) ([]*Object, error) {
	seen := map[string]bool{}
	var out []*Object

	var err error
	switch f.strategy {
	case StrategyAPI:
		err = f.findAPI(root, seen, &out)
	default:
		f.findAll(root, seen, &out)
	}
	if err != nil {
		return nil, err
	}
	return f.applySkipList(out), nil
}

// FindObjects collects an explicit list of objects without a recursive
// namespace walk: a package contributes only its own doc, a type
// contributes its methods and the methods of its embedded types.
func (f *Finder) FindObjects(objects []*Object) ([]*Object, error) {
	seen := map[string]bool{}
	var out []*Object
	for _, obj := range objects {
		switch obj.Kind {
		case KindPackage:
			collect(obj, seen, &out)
		default:
			f.collectShallow(obj, seen, &out)
		}
	}
	return f.applySkipList(out), nil
}

// findAll is the default walk: everything documented, recursively.
func (f *Finder) findAll(obj *Object, seen map[string]bool, out *[]*Object) {
	if !collect(obj, seen, out) {
		return
	}
	for _, m := range obj.Members {
		f.findAll(m, seen, out)
	}
}

// findAPI walks the declared public surface. The root's own doc is
// included. Member packages are separate surfaces and are excluded.
// A declared name that does not resolve is a configuration error, not
// a silent gap.
func (f *Finder) findAPI(root *Object, seen map[string]bool, out *[]*Object) error {
	collect(root, seen, out)

	public := root.Public
	if public == nil {
		public = f.cfg.PublicNames[root.Name]
	}
	if public == nil {
		public = root.PublicNames()
	}

	for _, name := range public {
		m := root.Lookup(name)
		if m == nil {
			return errors.Discoveryf("public name %q not found in %s", name, root.Name)
		}
		if m.Kind == KindPackage || m.Deprecated {
			continue
		}
		f.collectShallow(m, seen, out)
	}
	return nil
}

// collectShallow takes an object and its non-package members, one
// level of nesting deep plus embedded bases for types.
func (f *Finder) collectShallow(obj *Object, seen map[string]bool, out *[]*Object) {
	if !collect(obj, seen, out) {
		return
	}
	for _, m := range obj.Members {
		if m.Kind != KindPackage && !m.Deprecated {
			collect(m, seen, out)
		}
	}
	for _, base := range obj.Bases {
		f.collectShallow(base, seen, out)
	}
}

// collect appends obj unless its identity was already taken. It
// reports whether the object was new.
func collect(obj *Object, seen map[string]bool, out *[]*Object) bool {
	id := obj.ID
	if id == "" {
		id = obj.Name
	}
	if seen[id] {
		return false
	}
	seen[id] = true
	*out = append(*out, obj)
	return true
}

// applySkipList drops collected objects by report name. The skiplist
// runs after deduplication so an object skipped under one name does
// not reappear under another.
func (f *Finder) applySkipList(objects []*Object) []*Object {
	out := objects[:0]
	for _, obj := range objects {
		if !f.cfg.InSkipList(obj.Name) {
			out = append(out, obj)
		}
	}
	return out
}
