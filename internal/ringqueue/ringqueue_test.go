package ringqueue

import "testing"

func TestPushPopFIFOOrder(t *testing.T) {
	q := New[int](4)
	for i := 0; i < 4; i++ {
		if !q.Push(i) {
			t.Fatalf("Push(%d) failed unexpectedly", i)
		}
	}
	for i := 0; i < 4; i++ {
		v, ok := q.Pop()
		if !ok || v != i {
			t.Fatalf("Pop() = %d,%v want %d,true", v, ok, i)
		}
	}
}

func TestPushFailsWhenFull(t *testing.T) {
	q := New[int](2)
	if !q.Push(1) || !q.Push(2) {
		t.Fatal("expected first two pushes to succeed")
	}
	if q.Push(3) {
		t.Fatal("expected push into full queue to fail")
	}
}

func TestPopFailsWhenEmpty(t *testing.T) {
	q := New[int](2)
	if _, ok := q.Pop(); ok {
		t.Fatal("expected pop from empty queue to fail")
	}
}

func TestWasEmptyWasFull(t *testing.T) {
	q := New[int](1)
	if !q.WasEmpty() {
		t.Error("new queue should report empty")
	}
	q.Push(1)
	if !q.WasFull() {
		t.Error("queue at capacity should report full")
	}
	q.Pop()
	if !q.WasEmpty() {
		t.Error("drained queue should report empty")
	}
}

func TestPaddedQueuePushPopFIFOOrder(t *testing.T) {
	q := NewPadded[int](4)
	for i := 0; i < 4; i++ {
		if !q.Push(i) {
			t.Fatalf("Push(%d) failed unexpectedly", i)
		}
	}
	for i := 0; i < 4; i++ {
		v, ok := q.Pop()
		if !ok || v != i {
			t.Fatalf("Pop() = %d,%v want %d,true", v, ok, i)
		}
	}
}

func TestPaddedQueueFullAndEmpty(t *testing.T) {
	q := NewPadded[int](1)
	if _, ok := q.Pop(); ok {
		t.Fatal("expected pop from empty queue to fail")
	}
	if !q.Push(7) {
		t.Fatal("expected push into empty queue to succeed")
	}
	if q.Push(8) {
		t.Fatal("expected push into full queue to fail")
	}
}
