package ir

// TagKind identifies which payload variant a Tag carries.
//
// Grounded on _examples/original_source/include/acc/itm/tag.h's
// itm_tag_object enum (TO_NONE, TO_INT, TO_EXPR_LIST, TO_USER_PTR).
type TagKind int

const (
	TagNone TagKind = iota
	TagInt
	TagList
	TagPtr
)

// Well-known tag names, matching original_source/src/itm/analyze.c's
// tt_used/tt_endlife/tt_phiable string constants, plus the lowering/
// allocator tags from spec.md §4.4/§4.5.
const (
	TagUsed    = "used"    // TagInt: use count
	TagEndlife = "endlife" // TagList: values whose lifetime ends at this instruction
	TagPhiable = "phiable" // TagNone: alloca slot never escapes
	TagLoc     = "loc"     // TagPtr: firmly assigned target.Location
	TagLocHint = "lochint" // TagPtr: preferred, non-binding target.Location
)

// Tag is a name/payload pair attached as a side-channel annotation to any
// Value. Adding, querying or removing a tag never alters the value's
// semantics.
type Tag struct {
	Name string
	Kind TagKind

	I    int     // valid when Kind == TagInt
	List []Value // valid when Kind == TagList
	Ptr  any     // valid when Kind == TagPtr
}

// Tags is the side-channel map for one Container, keyed by value identity,
// matching the "Cyclic IR graph" design note: tags live in a sparse side
// map, not inside the instruction itself.
type Tags struct {
	m map[Value]map[string]*Tag
}

// NewTags creates an empty tag table.
func NewTags() *Tags {
	return &Tags{m: make(map[Value]map[string]*Tag)}
}

// Get returns the named tag on v, or nil if absent.
func (t *Tags) Get(v Value, name string) *Tag {
	if t == nil {
		return nil
	}
	return t.m[v][name]
}

// Set attaches (or replaces) a tag on v.
func (t *Tags) Set(v Value, tag *Tag) {
	sub, ok := t.m[v]
	if !ok {
		sub = make(map[string]*Tag)
		t.m[v] = sub
	}
	sub[tag.Name] = tag
}

// Remove deletes the named tag from v, if present.
func (t *Tags) Remove(v Value, name string) {
	delete(t.m[v], name)
}

// ClearName removes every value's tag with the given name, used between
// analysis re-runs so stale tags from a previous pass can't leak through
// (original_source's analyze() overwrites tags in place and relies on a
// single compilation pass; SPEC_FULL re-runs analyses after target
// lowering, so tags need an explicit clear -- see DESIGN.md).
func (t *Tags) ClearName(name string) {
	for v, sub := range t.m {
		delete(sub, name)
		if len(sub) == 0 {
			delete(t.m, v)
		}
	}
}

// Used returns the TagUsed count on v (0 if untagged).
func (t *Tags) Used(v Value) int {
	tag := t.Get(v, TagUsed)
	if tag == nil {
		return 0
	}
	return tag.I
}

// Endlife returns the TagEndlife list on v (nil if untagged).
func (t *Tags) Endlife(v Value) []Value {
	tag := t.Get(v, TagEndlife)
	if tag == nil {
		return nil
	}
	return tag.List
}

// Phiable reports whether v carries the TagPhiable marker.
func (t *Tags) Phiable(v Value) bool {
	return t.Get(v, TagPhiable) != nil
}

// Loc returns the firm location tag's payload, or nil.
func (t *Tags) Loc(v Value) any {
	tag := t.Get(v, TagLoc)
	if tag == nil {
		return nil
	}
	return tag.Ptr
}

// LocHint returns the location-hint tag's payload, or nil.
func (t *Tags) LocHint(v Value) any {
	tag := t.Get(v, TagLocHint)
	if tag == nil {
		return nil
	}
	return tag.Ptr
}

// SetLoc attaches a firm location, promoting over/replacing any hint.
func (t *Tags) SetLoc(v Value, loc any) {
	t.Remove(v, TagLocHint)
	t.Set(v, &Tag{Name: TagLoc, Kind: TagPtr, Ptr: loc})
}

// SetLocHint attaches (or replaces) a location hint.
func (t *Tags) SetLocHint(v Value, loc any) {
	t.Set(v, &Tag{Name: TagLocHint, Kind: TagPtr, Ptr: loc})
}

// AddEndlife appends v2 to v's endlife list, creating it if needed.
func (t *Tags) AddEndlife(v Value, v2 Value) {
	tag := t.Get(v, TagEndlife)
	if tag == nil {
		tag = &Tag{Name: TagEndlife, Kind: TagList}
		t.Set(v, tag)
	}
	tag.List = append(tag.List, v2)
}

// IncUsed increments the use count on v, creating the tag if needed.
func (t *Tags) IncUsed(v Value) {
	tag := t.Get(v, TagUsed)
	if tag == nil {
		tag = &Tag{Name: TagUsed, Kind: TagInt}
		t.Set(v, tag)
	}
	tag.I++
}

// SetPhiable marks v as a non-escaping alloca slot.
func (t *Tags) SetPhiable(v Value) {
	t.Set(v, &Tag{Name: TagPhiable, Kind: TagNone})
}
