// Package search implements the ranking pipeline of spec §4.5: resolve a
// scope to a crate set, evaluate every item's similarity to a parsed
// query, filter by threshold, sort, truncate, and render hits.
package search

import (
	"sort"

	"github.com/oxhq/apidex/internal/core"
	"github.com/oxhq/apidex/internal/index"
	"github.com/oxhq/apidex/internal/parser"
)

// Defaults from spec §6.2.
const (
	DefaultLimit     = 30
	MaxLimit         = 500
	DefaultThreshold = 0.4
)

// Hit is one ranked search result (spec §6.2 Response).
type Hit struct {
	ID        int
	Name      string
	Path      []string
	Link      string
	Docstring string
	Signature string
	Distance  int
}

// scored pairs a candidate item with its distance and provenance, used
// internally to keep the stable per-crate insertion-order tie-break of
// spec §4.5 before the final sort.
type scored struct {
	item     core.IndexedItem
	distance int
	order    int // global sequence across the whole scope, for stability
}

// Request bundles the parameters of spec §6.2.
type Request struct {
	Query     string
	Scope     string
	Limit     int
	Threshold float64
}

// Normalize fills in the defaults of spec §6.2 and clamps Limit to
// [1, MaxLimit].
func (r Request) Normalize() Request {
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	if r.Threshold <= 0 {
		r.Threshold = DefaultThreshold
	}
	return r
}

// Search executes the pipeline of spec §4.5 against idx.
func Search(idx *index.Index, req Request) ([]Hit, error) {
	req = req.Normalize()

	q, err := parser.New().Parse(req.Query)
	if err != nil {
		return nil, err
	}

	keys, err := idx.ResolveScope(req.Scope)
	if err != nil {
		return nil, err
	}

	var candidates []scored
	seq := 0
	for _, key := range keys {
		for _, item := range idx.Items(key) {
			d, ok := core.Match(q, item)
			if !ok {
				continue // Reject: silently excluded, never surfaced (spec §7)
			}
			if !withinThreshold(d, req.Threshold) {
				continue
			}
			candidates = append(candidates, scored{item: item, distance: d, order: seq})
			seq++
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].order < candidates[j].order
	})

	if len(candidates) > req.Limit {
		candidates = candidates[:req.Limit]
	}

	hits := make([]Hit, len(candidates))
	for i, c := range candidates {
		hits[i] = Hit{
			ID:        c.item.ID,
			Name:      c.item.Name,
			Path:      c.item.Path,
			Link:      c.item.Link,
			Docstring: c.item.Docstring,
			Signature: core.RenderSignature(c.item.Name, c.item.Signature),
			Distance:  c.distance,
		}
	}
	return hits, nil
}

// withinThreshold converts distance d to a [0,1] score via
// score = d / (d + core.ScoreK) and reports whether it clears threshold
// (spec §4.5 "Threshold semantics").
func withinThreshold(d int, threshold float64) bool {
	if threshold >= 1 {
		return true
	}
	if d == 0 {
		return true
	}
	score := float64(d) / float64(d+core.ScoreK)
	return score <= threshold
}
