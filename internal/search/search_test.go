package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/apidex/internal/index"
)

const i32Doc = `{
  "format_version": 1,
  "index": {
    "1": {"name": "saturating_add", "docs": "", "inner": {"assoc_fn": {"decl": {
      "inputs": [{"name": "self", "type": {"primitive": "i32"}}, {"name": "rhs", "type": {"primitive": "i32"}}],
      "output": {"primitive": "i32"}
    }}}},
    "2": {"name": "wrapping_add", "docs": "", "inner": {"assoc_fn": {"decl": {
      "inputs": [{"name": "self", "type": {"primitive": "i32"}}, {"name": "rhs", "type": {"primitive": "i32"}}],
      "output": {"primitive": "i32"}
    }}}},
    "3": {"name": "checked_add", "docs": "", "inner": {"assoc_fn": {"decl": {
      "inputs": [{"name": "self", "type": {"primitive": "i32"}}, {"name": "rhs", "type": {"primitive": "i32"}}],
      "output": {"resolved_path": {"path": "Option", "args": [{"primitive": "i32"}]}}
    }}}},
    "4": {"name": "saturating_add", "docs": "", "inner": {"assoc_fn": {"decl": {
      "inputs": [{"name": "self", "type": {"primitive": "u64"}}, {"name": "rhs", "type": {"primitive": "u64"}}],
      "output": {"primitive": "u64"}
    }}}}
  },
  "paths": {
    "1": {"path": ["i32"], "link": "i32#method.saturating_add"},
    "2": {"path": ["i32"], "link": "i32#method.wrapping_add"},
    "3": {"path": ["i32"], "link": "i32#method.checked_add"},
    "4": {"path": ["u64"], "link": "u64#method.saturating_add"}
  }
}`

func TestSearchFindsI32AddVariants(t *testing.T) {
	idx := index.New()
	_, err := idx.Ingest("core", "1.0.0", []byte(i32Doc))
	require.NoError(t, err)

	hits, err := Search(idx, Request{Query: "fn(i32, i32) -> i32", Scope: "crate:core", Threshold: 0.3})
	require.NoError(t, err)
	names := map[string]bool{}
	for _, h := range hits {
		names[h.Name] = true
	}
	require.True(t, names["saturating_add"])
	require.True(t, names["wrapping_add"])
}

func TestSearchTighterThresholdExcludesU64(t *testing.T) {
	idx := index.New()
	_, err := idx.Ingest("core", "1.0.0", []byte(i32Doc))
	require.NoError(t, err)

	hits, err := Search(idx, Request{Query: "fn(i32, i32) -> i32", Scope: "crate:core", Threshold: 0.1})
	require.NoError(t, err)
	for _, h := range hits {
		require.NotEqual(t, []string{"u64"}, h.Path, "u64 saturating_add must be excluded at a tight threshold")
	}
}

func TestSearchNameGateEmptyResult(t *testing.T) {
	idx := index.New()
	_, err := idx.Ingest("core", "1.0.0", []byte(i32Doc))
	require.NoError(t, err)

	hits, err := Search(idx, Request{Query: "fn foo(T) -> T", Scope: "crate:core", Threshold: 1})
	require.NoError(t, err)
	require.Empty(t, hits)
}

func TestSearchUnknownScope(t *testing.T) {
	idx := index.New()
	_, err := Search(idx, Request{Query: "fn(_) -> _", Scope: "crate:nope"})
	require.Error(t, err)
}

func TestSearchParseError(t *testing.T) {
	idx := index.New()
	_, err := Search(idx, Request{Query: "fn (Option<T -> T", Scope: "set:libstd"})
	require.Error(t, err)
}

func TestSearchStableOrderingAcrossIdenticalRuns(t *testing.T) {
	idx := index.New()
	_, err := idx.Ingest("core", "1.0.0", []byte(i32Doc))
	require.NoError(t, err)

	req := Request{Query: "fn(i32, i32) -> i32", Scope: "crate:core", Threshold: 1}
	first, err := Search(idx, req)
	require.NoError(t, err)
	second, err := Search(idx, req)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

const vecDoc = `{
  "format_version": 1,
  "index": {
    "1": {"name": "push", "docs": "", "inner": {"method": {"decl": {
      "inputs": [{"name": "self", "type": {}}, {"name": "value", "type": {"generic": "T"}}],
      "output": null
    }}}}
  },
  "paths": {
    "1": {"path": ["std", "vec", "Vec"], "link": "std/vec/struct.Vec.html#method.push"}
  }
}`

func TestSearchUnitReturnMatchesVecPush(t *testing.T) {
	idx := index.New()
	_, err := idx.Ingest("core", "1.0.0", []byte(vecDoc))
	require.NoError(t, err)

	hits, err := Search(idx, Request{Query: "fn (Vec<T>, T) -> ()", Scope: "crate:core", Threshold: 1})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "push", hits[0].Name)
	require.LessOrEqual(t, hits[0].Distance, 3)
}

func TestSearchLimitDefaultAndCap(t *testing.T) {
	r := Request{}.Normalize()
	require.Equal(t, DefaultLimit, r.Limit)
	r2 := Request{Limit: 10000}.Normalize()
	require.Equal(t, MaxLimit, r2.Limit)
}

func TestSearchThresholdDefault(t *testing.T) {
	r := Request{}.Normalize()
	require.Equal(t, DefaultThreshold, r.Threshold)
	r2 := Request{Threshold: 0.1}.Normalize()
	require.Equal(t, 0.1, r2.Threshold, "an explicit threshold must not be overridden")
}
