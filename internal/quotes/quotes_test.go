package quotes

import (
	"math/rand"
	"testing"
)

func TestPickReturnsKnownQuote(t *testing.T) {
	p := NewWithSource(rand.NewSource(1), All)
	for i := 0; i < 20; i++ {
		q, ok := p.Pick()
		if !ok || q.Author == "" || q.Translation == "" {
			t.Fatalf("unexpected pick: %+v %v", q, ok)
		}
	}
}

func TestPickEmpty(t *testing.T) {
	if _, ok := NewWithSource(rand.NewSource(1), nil).Pick(); ok {
		t.Fatalf("expected no quote from empty set")
	}
}

func TestForWeekCycles(t *testing.T) {
	if ForWeek(1) != All[0] || ForWeek(len(All)+1) != All[0] || ForWeek(0) != All[0] {
		t.Fatalf("expected week quotes to cycle from the first quote")
	}
}
