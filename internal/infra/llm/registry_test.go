package llm

import "testing"

func TestRegistry_OrdersByRank(t *testing.T) {
	t.Parallel()
	r := NewRegistry(
		Entry{Descriptor: Descriptor{Name: "fallback", Rank: 2}},
		Entry{Descriptor: Descriptor{Name: "primary", Rank: 0}},
		Entry{Descriptor: Descriptor{Name: "local", Rank: 1}},
	)

	order := r.InPriorityOrder()
	want := []string{"primary", "local", "fallback"}
	for i, name := range want {
		if order[i].Descriptor.Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, order[i].Descriptor.Name)
		}
	}
}

func TestRegistry_TiesKeepRegistrationOrder(t *testing.T) {
	t.Parallel()
	r := NewRegistry(
		Entry{Descriptor: Descriptor{Name: "first", Rank: 1}},
		Entry{Descriptor: Descriptor{Name: "second", Rank: 1}},
	)

	order := r.InPriorityOrder()
	if order[0].Descriptor.Name != "first" || order[1].Descriptor.Name != "second" {
		t.Errorf("tie broke registration order: %q, %q",
			order[0].Descriptor.Name, order[1].Descriptor.Name)
	}
}

func TestRegistry_InPriorityOrderReturnsCopy(t *testing.T) {
	t.Parallel()
	r := NewRegistry(Entry{Descriptor: Descriptor{Name: "only", Rank: 0}})

	order := r.InPriorityOrder()
	order[0].Descriptor.Name = "mutated"

	if again := r.InPriorityOrder(); again[0].Descriptor.Name != "only" {
		t.Error("mutating the returned slice changed registry state")
	}
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()
	r := NewRegistry(Entry{Descriptor: Descriptor{Name: "gemini", Rank: 0}})

	if _, ok := r.Lookup("gemini"); !ok {
		t.Error("expected lookup hit for registered provider")
	}
	if _, ok := r.Lookup("unknown"); ok {
		t.Error("expected lookup miss for unregistered provider")
	}
}
