package pqueue

import (
	"cmp"
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/me/cpusim/pkg/model"
)

func TestQueue_OrdersAscending(t *testing.T) {
	q := New(cmp.Compare[int])
	in := []int{5, 1, 4, 1, 9, 2, 6}
	for _, v := range in {
		q.Push(v)
	}
	if q.Len() != len(in) {
		t.Fatalf("Len() = %d, want %d", q.Len(), len(in))
	}

	want := append([]int(nil), in...)
	sort.Ints(want)
	for i, w := range want {
		peek, err := q.PeekMin()
		if err != nil {
			t.Fatalf("PeekMin #%d: %v", i, err)
		}
		got, err := q.PopMin()
		if err != nil {
			t.Fatalf("PopMin #%d: %v", i, err)
		}
		if peek != got || got != w {
			t.Errorf("pop #%d: peek=%d pop=%d, want %d", i, peek, got, w)
		}
	}
	if !q.Empty() {
		t.Error("queue should be empty")
	}
}

func TestQueue_Empty(t *testing.T) {
	q := New(cmp.Compare[string])
	if _, err := q.PopMin(); !errors.Is(err, model.ErrEmptyQueue) {
		t.Errorf("PopMin on empty queue: got %v, want ErrEmptyQueue", err)
	}
	if _, err := q.PeekMin(); !errors.Is(err, model.ErrEmptyQueue) {
		t.Errorf("PeekMin on empty queue: got %v, want ErrEmptyQueue", err)
	}
}

func TestQueue_PointerElements(t *testing.T) {
	type item struct{ key, tie int }
	q := New(func(a, b *item) int {
		if c := cmp.Compare(a.key, b.key); c != 0 {
			return c
		}
		return cmp.Compare(a.tie, b.tie)
	})

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		q.Push(&item{key: r.Intn(10), tie: i})
	}

	prev, _ := q.PopMin()
	for !q.Empty() {
		cur, err := q.PopMin()
		if err != nil {
			t.Fatalf("PopMin: %v", err)
		}
		if cur.key < prev.key || (cur.key == prev.key && cur.tie < prev.tie) {
			t.Fatalf("out of order: %+v after %+v", cur, prev)
		}
		prev = cur
	}
}
