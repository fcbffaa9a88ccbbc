package pageflow

import (
	"strings"
	"testing"
)

func TestRegistryGetOrCreateOnce(t *testing.T) {
	r := NewRegistry[page, msg]()
	builds := 0
	build := func(k page) *PageEntry[msg] {
		builds++
		return &PageEntry[msg]{Component: k.Component()}
	}

	a, created := r.GetOrCreate(home, build)
	if !created || builds != 1 {
		t.Fatalf("first call: created %v builds %d", created, builds)
	}
	b, created := r.GetOrCreate(home, build)
	if created || builds != 1 || a != b {
		t.Errorf("second call: created %v builds %d same %v", created, builds, a == b)
	}
	if a.ID != r.ID(home) {
		t.Errorf("entry id %d, want %d", a.ID, r.ID(home))
	}
}

func TestRegistryIDs(t *testing.T) {
	r := NewRegistry[page, msg]()
	if r.ID(details(1)) != r.ID(details(1)) {
		t.Error("id not stable")
	}
	if r.ID(details(1)) == r.ID(details(2)) {
		t.Error("keys with different payloads share an id")
	}
}

func TestRegistryKeysInCreationOrder(t *testing.T) {
	r := NewRegistry[page, msg]()
	for _, k := range []page{settings, home, profile, home} {
		r.GetOrCreate(k, func(k page) *PageEntry[msg] { return &PageEntry[msg]{} })
	}
	keys := r.Keys()
	if r.Len() != 3 || len(keys) != 3 {
		t.Fatalf("len = %d keys = %v", r.Len(), keys)
	}
	if keys[0] != settings || keys[1] != home || keys[2] != profile {
		t.Errorf("keys = %v", keys)
	}
	if !r.Contains(profile) || r.Contains(details(3)) {
		t.Error("Contains mismatch")
	}
	if _, ok := r.Get(details(3)); ok {
		t.Error("Get returned an entry for a missing key")
	}
}

func TestRegistryLookupMissingPanics(t *testing.T) {
	r := NewRegistry[page, msg]()
	defer func() {
		r := recover()
		s, _ := r.(string)
		if !strings.Contains(s, "should have been initialized") {
			t.Errorf("panic = %v", r)
		}
	}()
	r.Lookup(home)
}

func TestRegistryNilBuildPanics(t *testing.T) {
	r := NewRegistry[page, msg]()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	r.GetOrCreate(home, func(page) *PageEntry[msg] { return nil })
}
