package runtime

// ObjectHolder is a handle to a Value, plus an "empty" (None) state.
// Go's garbage collector makes a reference-counted Own/Share distinction
// unnecessary for correctness, but both constructors are kept at the API
// level to record provenance: Own signals the holder freshly created the
// value, Share signals it borrows a value whose storage lives elsewhere
// (e.g. returning self from inside a method, or an instance from
// NewInstance).
type ObjectHolder struct {
	value Value
	owns  bool
}

// Own wraps a freshly constructed value in an owning holder.
func Own(v Value) ObjectHolder {
	return ObjectHolder{value: v, owns: true}
}

// Share wraps an existing value in a non-owning holder.
func Share(v Value) ObjectHolder {
	return ObjectHolder{value: v, owns: false}
}

// None returns the empty holder.
func None() ObjectHolder {
	return ObjectHolder{}
}

// IsEmpty reports whether the holder carries no value.
func (h ObjectHolder) IsEmpty() bool {
	return h.value == nil
}

// Value returns the held value, or nil if empty.
func (h ObjectHolder) Value() Value {
	return h.value
}

// Owned reports whether the holder was constructed via Own.
func (h ObjectHolder) Owned() bool {
	return h.owns
}

// TryAsClassInstance returns the held value as *ClassInstance, or
// (nil, false) if the holder is empty or holds a different variant.
func (h ObjectHolder) TryAsClassInstance() (*ClassInstance, bool) {
	ci, ok := h.value.(*ClassInstance)
	return ci, ok
}

// TryAsNumber returns the held value as Number, or (Number{}, false)
// otherwise.
func (h ObjectHolder) TryAsNumber() (Number, bool) {
	n, ok := h.value.(Number)
	return n, ok
}

// TryAsString returns the held value as String, or (String{}, false)
// otherwise.
func (h ObjectHolder) TryAsString() (String, bool) {
	s, ok := h.value.(String)
	return s, ok
}

// TryAsBool returns the held value as Bool, or (Bool{}, false) otherwise.
func (h ObjectHolder) TryAsBool() (Bool, bool) {
	b, ok := h.value.(Bool)
	return b, ok
}

// IsTrue reports a value's truthiness: Number is true iff non-zero,
// String iff non-empty, Bool at face value, every other variant (and the
// empty holder) is false.
func IsTrue(h ObjectHolder) bool {
	switch v := h.value.(type) {
	case Number:
		return v.Value != 0
	case String:
		return v.Value != ""
	case Bool:
		return v.Value
	default:
		return false
	}
}
