package runtime

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsTrue(t *testing.T) {
	cases := []struct {
		name string
		h    ObjectHolder
		want bool
	}{
		{"nonzero number", Own(Number{Value: 1}), true},
		{"zero number", Own(Number{Value: 0}), false},
		{"nonempty string", Own(String{Value: "x"}), true},
		{"empty string", Own(String{Value: ""}), false},
		{"true bool", Own(Bool{Value: true}), true},
		{"false bool", Own(Bool{Value: false}), false},
		{"empty holder", None(), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTrue(tc.h); got != tc.want {
				t.Fatalf("IsTrue(%v) = %v, want %v", tc.h, got, tc.want)
			}
		})
	}
}

func TestClassMethodLookupWalksParentChain(t *testing.T) {
	base := &Class{Name: "A", Methods: []Method{{Name: "f", FormalParams: nil}}}
	derived := &Class{Name: "B", Methods: []Method{{Name: "g", FormalParams: []string{"x"}}}, Parent: base}

	if !derived.HasMethod("f", 0) {
		t.Fatalf("expected derived class to inherit f/0 from parent")
	}
	if derived.HasMethod("f", 1) {
		t.Fatalf("arity mismatch should not match")
	}
	if !derived.HasMethod("g", 1) {
		t.Fatalf("expected derived class's own method g/1")
	}
	if derived.HasMethod("missing", 0) {
		t.Fatalf("missing method should not be found")
	}
}

func TestNewInstanceAllocatesFreshFieldClosures(t *testing.T) {
	cls := &Class{Name: "Counter"}
	a := NewClassInstance(cls)
	b := NewClassInstance(cls)

	a.Fields.Define("n", Own(Number{Value: 1}))
	if b.Fields.Has("n") {
		t.Fatalf("two instances of the same class must not share field storage")
	}
}

func TestClassInstancePrintFallsBackToIdentityToken(t *testing.T) {
	cls := &Class{Name: "Plain"}
	inst := NewClassInstance(cls)
	var buf bytes.Buffer
	if err := inst.Print(&buf, NewContext(&buf)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected a non-empty identity token")
	}
}

func TestBoolPrintCanonicalForm(t *testing.T) {
	var buf bytes.Buffer
	_ = Bool{Value: true}.Print(&buf, nil)
	_ = Bool{Value: false}.Print(&buf, nil)
	if diff := cmp.Diff("TrueFalse", buf.String()); diff != "" {
		t.Fatalf("unexpected Bool.Print output (-want +got):\n%s", diff)
	}
}
