package util

import (
	"regexp"
	"sync"
	"testing"
)

func TestSequence_Format(t *testing.T) {
	s := NewSequence("ORD-")
	if got := s.Next(); got != "ORD-00001" {
		t.Fatalf("first id = %s, want ORD-00001", got)
	}
	if got := s.Next(); got != "ORD-00002" {
		t.Fatalf("second id = %s, want ORD-00002", got)
	}
}

func TestSequence_Seed(t *testing.T) {
	s := NewSequence("ORD-")
	s.Seed(41)
	if got := s.Next(); got != "ORD-00042" {
		t.Fatalf("seeded id = %s, want ORD-00042", got)
	}
	// seeding backwards never rewinds
	s.Seed(5)
	if got := s.Next(); got != "ORD-00043" {
		t.Fatalf("id after backward seed = %s, want ORD-00043", got)
	}
}

func TestSequence_ConcurrentUnique(t *testing.T) {
	s := NewSequence("ORD-")
	const n = 200

	ids := make(chan string, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			ids <- s.Next()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d unique ids, got %d", n, len(seen))
	}
}

func TestNewUserID_Format(t *testing.T) {
	r := regexp.MustCompile(`^USR-[0-9a-f]{8}$`)
	u := NewUserID()
	if !r.MatchString(u) {
		t.Fatalf("user id %s does not match USR-xxxxxxxx", u)
	}
	if NewUserID() == u {
		t.Fatal("expected randomized user ids")
	}
}

func BenchmarkSequence_Next(b *testing.B) {
	s := NewSequence("ORD-")
	for i := 0; i < b.N; i++ {
		_ = s.Next()
	}
}
