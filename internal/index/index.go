package index

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/oxhq/apidex/internal/core"
)

// wellKnownLibstd is the required set of spec §3: std, core, and alloc, in
// that order, present when available.
var wellKnownLibstd = []string{"std", "core", "alloc"}

// Index is the crate-scoped corpus plus the scope registry of spec §3/§4.3.
// It holds all CrateIndex entries and named crate-key sets behind a single
// sync.RWMutex: readers (Search calls) never block each other, and a
// writer (Ingest, DefineSet) is serialised against other writers — the
// single-writer/many-reader discipline spec §5 requires, grounded on the
// teacher's internal/registry.Registry.
type Index struct {
	mu     sync.RWMutex
	crates map[string]*core.CrateIndex // "name:version"
	latest map[string]string           // name -> most recent version
	sets   map[string][]string         // set name -> ordered crate keys ("name:version")
}

// New creates an empty Index.
func New() *Index {
	return &Index{
		crates: make(map[string]*core.CrateIndex),
		latest: make(map[string]string),
		sets:   make(map[string][]string),
	}
}

// Ingest parses a documentation-tool JSON document for a crate, extracts
// every public function-shaped item, and replaces any previous entry for
// the same (name, version). It returns the number of items ingested.
func (idx *Index) Ingest(name, version string, docJSON []byte) (int, error) {
	var doc Document
	if err := json.Unmarshal(docJSON, &doc); err != nil {
		return 0, &core.IngestError{Crate: name, Version: version, Reason: err.Error()}
	}

	ids := make([]string, 0, len(doc.Index))
	for id := range doc.Index {
		ids = append(ids, id)
	}
	sort.Strings(ids) // deterministic iteration over the JSON map

	items := make([]core.IndexedItem, 0, len(ids))
	nextID := 1
	for _, id := range ids {
		di := doc.Index[id]
		fn, tag, ok := di.functionDoc()
		if !ok {
			continue // non-function item, skipped per spec §4.3
		}
		summary := doc.Paths[id]
		item := core.IndexedItem{
			ID:        nextID,
			Name:      di.Name,
			Path:      summary.Path,
			Link:      summary.Link,
			Docstring: di.Docs,
			Signature: translateSignature(fn.Decl),
			Kind:      itemKindOf(tag),
		}
		items = append(items, item)
		nextID++
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	key := crateKey(name, version)
	idx.crates[key] = &core.CrateIndex{Name: name, Version: version, Items: items}
	idx.latest[name] = version
	return len(items), nil
}

// ListCrates returns every ingested crate's (name, version) pair.
func (idx *Index) ListCrates() []CrateRef {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	refs := make([]CrateRef, 0, len(idx.crates))
	for _, c := range idx.crates {
		refs = append(refs, CrateRef{Name: c.Name, Version: c.Version})
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Name != refs[j].Name {
			return refs[i].Name < refs[j].Name
		}
		return refs[i].Version < refs[j].Version
	})
	return refs
}

// CrateRef names one ingested crate.
type CrateRef struct {
	Name    string
	Version string
}

// DefineSet registers or replaces a named set mapping to an ordered list of
// crate keys (spec §4.3 define_set). Each member may be given either as
// "name" (resolved to that crate's latest ingested version at lookup time)
// or "name:version". Absent member crates are silently dropped at lookup
// time, not at definition time (spec §4.3).
func (idx *Index) DefineSet(setName string, members []string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	cp := make([]string, len(members))
	copy(cp, members)
	idx.sets[setName] = cp
}

// ResolveScope resolves a scope string ("crate:<name>", "crate:<name>:<version>",
// or "set:<name>") to an ordered list of crate keys, per spec §4.3. It
// returns *core.UnknownScope when nothing in the registry matches.
func (idx *Index) ResolveScope(scope string) ([]string, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	switch {
	case hasPrefix(scope, "crate:"):
		return idx.resolveCrateScope(scope[len("crate:"):])
	case hasPrefix(scope, "set:"):
		return idx.resolveSetScope(scope[len("set:"):])
	default:
		return nil, &core.UnknownScope{Scope: scope}
	}
}

func (idx *Index) resolveCrateScope(rest string) ([]string, error) {
	name, version, hasVersion := splitNameVersion(rest)
	if !hasVersion {
		latest, ok := idx.latest[name]
		if !ok {
			return nil, &core.UnknownScope{Scope: "crate:" + rest}
		}
		version = latest
	}
	key := crateKey(name, version)
	if _, ok := idx.crates[key]; !ok {
		return nil, &core.UnknownScope{Scope: "crate:" + rest}
	}
	return []string{key}, nil
}

func (idx *Index) resolveSetScope(setName string) ([]string, error) {
	if setName == "libstd" {
		if _, explicit := idx.sets["libstd"]; !explicit {
			return idx.libstdKeys(), nil
		}
	}
	members, ok := idx.sets[setName]
	if !ok {
		return nil, &core.UnknownScope{Scope: "set:" + setName}
	}
	keys := make([]string, 0, len(members))
	for _, m := range members {
		name, version, hasVersion := splitNameVersion(m)
		if !hasVersion {
			latest, ok := idx.latest[name]
			if !ok {
				continue // absent member silently dropped, spec §4.3
			}
			version = latest
		}
		key := crateKey(name, version)
		if _, ok := idx.crates[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// libstdKeys builds the required set:libstd lazily from whichever of
// std/core/alloc are currently registered (SPEC_FULL §11, a decided Open
// Question), in the fixed order the spec requires.
func (idx *Index) libstdKeys() []string {
	var keys []string
	for _, name := range wellKnownLibstd {
		if version, ok := idx.latest[name]; ok {
			keys = append(keys, crateKey(name, version))
		}
	}
	return keys
}

// ListScopes returns every registered "crate:..." and "set:..." key, in
// lexicographic order (spec §6.3).
func (idx *Index) ListScopes() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	scopes := make([]string, 0, len(idx.crates)+len(idx.sets)+1)
	for _, c := range idx.crates {
		scopes = append(scopes, fmt.Sprintf("crate:%s:%s", c.Name, c.Version))
		if idx.latest[c.Name] == c.Version {
			scopes = append(scopes, "crate:"+c.Name)
		}
	}
	for name := range idx.sets {
		scopes = append(scopes, "set:"+name)
	}
	if _, explicit := idx.sets["libstd"]; !explicit && len(idx.libstdKeys()) > 0 {
		scopes = append(scopes, "set:libstd")
	}
	sort.Strings(scopes)
	return scopes
}

// Items returns the items of the crate identified by key ("name:version"),
// in ingest order. The returned slice must not be mutated by the caller.
func (idx *Index) Items(key string) []core.IndexedItem {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	c, ok := idx.crates[key]
	if !ok {
		return nil
	}
	return c.Items
}

func crateKey(name, version string) string { return name + ":" + version }

func splitNameVersion(s string) (name, version string, hasVersion bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
