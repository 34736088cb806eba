package runtime

import "fmt"

// Equal compares same-variant scalars directly, falls back to a
// ClassInstance LHS's __eq__ dunder, then treats "both empty" as equal as
// a last resort, and errors otherwise.
func Equal(a, b ObjectHolder, ctx *Context) (bool, error) {
	if na, ok := a.TryAsNumber(); ok {
		if nb, ok := b.TryAsNumber(); ok {
			return na.Value == nb.Value, nil
		}
	}
	if sa, ok := a.TryAsString(); ok {
		if sb, ok := b.TryAsString(); ok {
			return sa.Value == sb.Value, nil
		}
	}
	if ba, ok := a.TryAsBool(); ok {
		if bb, ok := b.TryAsBool(); ok {
			return ba.Value == bb.Value, nil
		}
	}
	if ci, ok := a.TryAsClassInstance(); ok && ci.HasMethod("__eq__", 1) {
		result, err := ci.Call("__eq__", []ObjectHolder{b}, ctx)
		if err != nil {
			return false, err
		}
		bv, ok := result.TryAsBool()
		if !ok {
			return false, fmt.Errorf("__eq__ must return a Bool")
		}
		return bv.Value, nil
	}
	if a.IsEmpty() && b.IsEmpty() {
		return true, nil
	}
	return false, fmt.Errorf("Cannot compare objects for equality")
}

// Less compares same-variant scalars directly, falling back to a
// ClassInstance LHS's __lt__ dunder.
func Less(a, b ObjectHolder, ctx *Context) (bool, error) {
	if na, ok := a.TryAsNumber(); ok {
		if nb, ok := b.TryAsNumber(); ok {
			return na.Value < nb.Value, nil
		}
	}
	if sa, ok := a.TryAsString(); ok {
		if sb, ok := b.TryAsString(); ok {
			return sa.Value < sb.Value, nil
		}
	}
	if ba, ok := a.TryAsBool(); ok {
		if bb, ok := b.TryAsBool(); ok {
			return !ba.Value && bb.Value, nil
		}
	}
	if ci, ok := a.TryAsClassInstance(); ok && ci.HasMethod("__lt__", 1) {
		result, err := ci.Call("__lt__", []ObjectHolder{b}, ctx)
		if err != nil {
			return false, err
		}
		bv, ok := result.TryAsBool()
		if !ok {
			return false, fmt.Errorf("__lt__ must return a Bool")
		}
		return bv.Value, nil
	}
	return false, fmt.Errorf("Cannot compare objects for less")
}

// NotEqual is ¬Equal.
func NotEqual(a, b ObjectHolder, ctx *Context) (bool, error) {
	eq, err := Equal(a, b, ctx)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

// Greater is ¬Less ∧ ¬Equal.
func Greater(a, b ObjectHolder, ctx *Context) (bool, error) {
	lt, err := Less(a, b, ctx)
	if err != nil {
		return false, err
	}
	eq, err := Equal(a, b, ctx)
	if err != nil {
		return false, err
	}
	return !lt && !eq, nil
}

// LessOrEqual is Less ∨ Equal.
func LessOrEqual(a, b ObjectHolder, ctx *Context) (bool, error) {
	lt, err := Less(a, b, ctx)
	if err != nil {
		return false, err
	}
	if lt {
		return true, nil
	}
	return Equal(a, b, ctx)
}

// GreaterOrEqual is ¬Less: deliberately NOT ¬Less ∨ Equal. It consults
// Less only, never Equal; this asymmetry is intentional, not a bug.
func GreaterOrEqual(a, b ObjectHolder, ctx *Context) (bool, error) {
	lt, err := Less(a, b, ctx)
	if err != nil {
		return false, err
	}
	return !lt, nil
}
