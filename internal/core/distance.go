package core

// ScoreK is the normalisation constant used by the search pipeline to turn
// a distance into a [0,1] score: score = d / (d + ScoreK). Pinned per
// spec §9 Open Questions.
const ScoreK = 4

// namePenalty is the cost contributed when two Resolved types' last
// segments differ by name (spec §4.4 rule 4).
const namePenalty = 1

// unificationTable tracks which indexed Type a query-side Generic has
// first been matched against. It is allocated fresh per (Query, IndexedItem)
// pair and discarded afterwards (spec §4.4 "Unification semantics").
type unificationTable map[string]Type

// Match computes the asymmetric distance from query q to indexed item item,
// per spec §4.4. ok is false when the item is rejected (name or arity
// mismatch, or an unreconcilable kind clash) — Reject is never surfaced as
// an error, only as this boolean.
func Match(q Query, item IndexedItem) (distance int, ok bool) {
	if q.HasName && q.Name != item.Name {
		return 0, false
	}

	qIn := q.Signature.Inputs
	iIn := item.Signature.Inputs
	if len(qIn) != len(iIn) {
		return 0, false
	}

	u := unificationTable{}
	total := 0
	for k := range qIn {
		d, ok := typeDistance(qIn[k].Type, iIn[k].Type, u)
		if !ok {
			return 0, false
		}
		total += d
	}

	d, ok := typeDistance(q.Signature.Output, item.Signature.Output, u)
	if !ok {
		return 0, false
	}
	total += d

	return total, true
}

// typeDistance applies the rules of spec §4.4 in order; the first
// applicable rule wins. It never rejects except for rule 7 (an
// irreconcilable kind mismatch).
func typeDistance(q, i Type, u unificationTable) (int, bool) {
	// Rule 1: wildcard costs nothing. This also covers the lossy-extraction
	// case where the indexed side itself is Unknown (spec §4.3: unsupported
	// type-node kinds, e.g. a &mut self receiver or a reference, translate
	// to Unknown on the indexed item) — those positions must stay
	// non-penalising so the matcher still finds the enclosing function by
	// its other arguments (spec §9 "Lossy extraction").
	if q.Kind == KindUnknown || i.Kind == KindUnknown {
		return 0, true
	}

	// Rule 2: query-side generic, bind-or-reuse.
	if q.Kind == KindGeneric {
		if bound, seen := u[q.GenericName]; seen {
			// A pinned indexed-side generic is compared by name, never
			// looked up again as a query-side placeholder.
			if bound.Kind == KindGeneric {
				if i.Kind == KindGeneric && i.GenericName == bound.GenericName {
					return 0, true
				}
				return namePenalty, true
			}
			return typeDistance(bound, i, u)
		}
		u[q.GenericName] = i
		return 0, true
	}

	// Rule 3: primitive vs primitive.
	if q.Kind == KindPrimitive && i.Kind == KindPrimitive {
		if q.Prim == i.Prim {
			return 0, true
		}
		return primitiveDistance(q.Prim, i.Prim), true
	}

	// Rule 4: resolved vs resolved.
	if q.Kind == KindResolved && i.Kind == KindResolved {
		return resolvedDistance(q, i, u)
	}

	// Rule 5: concrete query type against an abstract indexed slot.
	if q.Kind == KindResolved && i.Kind == KindGeneric {
		return 1, true
	}
	if q.Kind == KindPrimitive && i.Kind == KindGeneric {
		return 1, true
	}

	// Rule 7: everything else is an irreconcilable kind mismatch.
	return 0, false
}

// resolvedDistance implements spec §4.4 rule 4: last-segment name
// comparison, path-prefix comparison, and recursive generic-argument
// comparison.
func resolvedDistance(q, i Type, u unificationTable) (int, bool) {
	qLast := q.LastSegment()
	iLast := i.LastSegment()

	total := 0
	if qLast.Name != iLast.Name {
		total += namePenalty
	}

	total += pathPrefixDistance(q.PrefixNames(), i.PrefixNames())

	qArgs, iArgs := qLast.Args, iLast.Args
	common := len(qArgs)
	if len(iArgs) < common {
		common = len(iArgs)
	}
	if len(qArgs) != len(iArgs) {
		diff := len(qArgs) - len(iArgs)
		if diff < 0 {
			diff = -diff
		}
		total += diff
	}
	for k := 0; k < common; k++ {
		d, ok := typeDistance(qArgs[k], iArgs[k], u)
		if !ok {
			return 0, false
		}
		total += d
	}

	return total, true
}

// pathPrefixDistance: 0 if equal, 1 if one is a suffix of the other, 2
// otherwise (spec §4.4 rule 4).
func pathPrefixDistance(q, i []string) int {
	if stringSlicesEqual(q, i) {
		return 0
	}
	if isSuffix(q, i) || isSuffix(i, q) {
		return 1
	}
	return 2
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if a[idx] != b[idx] {
			return false
		}
	}
	return true
}

// isSuffix reports whether short is a proper suffix of long; slices of
// equal length report false (equality is checked first by the caller).
func isSuffix(short, long []string) bool {
	if len(short) >= len(long) {
		return false
	}
	offset := len(long) - len(short)
	for idx := range short {
		if short[idx] != long[offset+idx] {
			return false
		}
	}
	return true
}

// primitiveFamily groups primitives for the distance table in spec §4.4.
type primitiveFamily int

const (
	familyUnsigned primitiveFamily = iota
	familySigned
	familyFloat
	familyOther
)

var primitiveRank = map[Primitive]struct {
	family primitiveFamily
	width  int
}{
	PrimU8:    {familyUnsigned, 0},
	PrimU16:   {familyUnsigned, 1},
	PrimU32:   {familyUnsigned, 2},
	PrimU64:   {familyUnsigned, 3},
	PrimU128:  {familyUnsigned, 4},
	PrimUsize: {familyUnsigned, 3}, // treated at u64 width
	PrimI8:    {familySigned, 0},
	PrimI16:   {familySigned, 1},
	PrimI32:   {familySigned, 2},
	PrimI64:   {familySigned, 3},
	PrimI128:  {familySigned, 4},
	PrimIsize: {familySigned, 3},
	PrimF32:   {familyFloat, 0},
	PrimF64:   {familyFloat, 1},
}

// primitiveDistance is the small primitive distance matrix of spec §4.4
// (symmetric in its arguments): numeric families are "close enough" in
// proportion to width/signedness, and bool/char/str/never/unit sit at a
// fixed distance from anything else. Results lie in [0, 4].
func primitiveDistance(a, b Primitive) int {
	if a == b {
		return 0
	}
	ra, aOK := primitiveRank[a]
	rb, bOK := primitiveRank[b]

	if aOK && bOK {
		if ra.family == rb.family {
			d := ra.width - rb.width
			if d < 0 {
				d = -d
			}
			return d
		}
		if ra.family == familyFloat || rb.family == familyFloat {
			return 3
		}
		// unsigned vs signed, any width, capped at 4.
		d := ra.width - rb.width
		if d < 0 {
			d = -d
		}
		if 2+d > 4 {
			return 4
		}
		return 2 + d
	}

	return 4
}
