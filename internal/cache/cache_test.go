package cache

import (
	"sync"
	"testing"
)

func TestMemo_Get(t *testing.T) {
	var m Memo[int, int]
	calls := 0
	fill := func(k int) int {
		calls++
		return k * 2
	}

	if got := m.Get(21, fill); got != 42 {
		t.Errorf("Get(21) = %d, want 42", got)
	}
	if got := m.Get(21, fill); got != 42 {
		t.Errorf("Get(21) = %d, want 42", got)
	}
	if calls != 1 {
		t.Errorf("fill ran %d times, want 1", calls)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestMemo_Concurrent(t *testing.T) {
	var m Memo[int, int]
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k := i % 5
			if got := m.Get(k, func(k int) int { return k * k }); got != k*k {
				t.Errorf("Get(%d) = %d, want %d", k, got, k*k)
			}
		}(i)
	}
	wg.Wait()
	if m.Len() != 5 {
		t.Errorf("Len() = %d, want 5", m.Len())
	}
}
