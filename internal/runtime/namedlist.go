package runtime

// ListKind distinguishes an ordered multiset from a deduplicating one
// (spec §3: "list (ordered multiset) vs set (deduplicated)").
type ListKind int

const (
	KindOrderedList ListKind = iota
	KindDedupSet
)

// NamedList is one per-entry named list/set (spec §4.6): populated by block
// sinks during an entry's Executing phase, consumed by `use` chains, and
// reset to empty before the next entry (spec §8 invariant 5).
type NamedList struct {
	Kind   ListKind
	Values []string
	seen   map[string]struct{} // only allocated for KindDedupSet
}

// NewNamedList returns an empty named list of the given kind.
func NewNamedList(kind ListKind) *NamedList {
	nl := &NamedList{Kind: kind}
	if kind == KindDedupSet {
		nl.seen = make(map[string]struct{})
	}
	return nl
}

// Append adds values to the list in order, preserving set semantics (first
// occurrence wins) when Kind is KindDedupSet.
func (nl *NamedList) Append(values []string) {
	for _, v := range values {
		if v == "" {
			continue
		}
		if nl.Kind == KindDedupSet {
			if _, ok := nl.seen[v]; ok {
				continue
			}
			nl.seen[v] = struct{}{}
		}
		nl.Values = append(nl.Values, v)
	}
}

// Reset empties the list in place, reused across entries to avoid
// reallocating the backing slice/map on every one of potentially millions
// of dictionary lines.
func (nl *NamedList) Reset() {
	nl.Values = nl.Values[:0]
	if nl.seen != nil {
		for k := range nl.seen {
			delete(nl.seen, k)
		}
	}
}

// EntryState holds the named lists that evaluating one entry populates
// (spec §4.9); the restart re-entry stack lives in the evaluator. It never persists across entries — a fresh EntryState (or a Reset one) is
// used for each (spec §8 invariant 5: "named lists after evaluating entry e
// are empty when evaluation of entry e+1 begins").
type EntryState struct {
	lists map[string]*NamedList
}

// NewEntryState builds per-entry state with one NamedList per declared name,
// kinds taken from the script's `list`/`set` header declarations.
func NewEntryState(listNames, setNames []string) *EntryState {
	es := &EntryState{lists: make(map[string]*NamedList, len(listNames)+len(setNames))}
	for _, n := range listNames {
		es.lists[n] = NewNamedList(KindOrderedList)
	}
	for _, n := range setNames {
		es.lists[n] = NewNamedList(KindDedupSet)
	}
	return es
}

// List returns the named list n, if declared.
func (es *EntryState) List(n string) (*NamedList, bool) {
	nl, ok := es.lists[n]
	return nl, ok
}

// Reset clears every named list's contents in place, ready for the next
// entry.
func (es *EntryState) Reset() {
	for _, nl := range es.lists {
		nl.Reset()
	}
}
