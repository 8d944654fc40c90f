package containers_test

import (
	"testing"

	"github.com/drfreeman816/VulkanTest/engine/containers"
)

func TestRingQueueEnqueueDequeue(t *testing.T) {
	rq := containers.NewRingQueue[string](4)

	if !rq.IsEmpty() {
		t.Error("new queue should be empty")
	}
	if err := rq.Enqueue("a"); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if err := rq.Enqueue("b"); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if rq.Len() != 2 {
		t.Errorf("expected length 2, got %d", rq.Len())
	}

	v, err := rq.Dequeue()
	if err != nil {
		t.Fatalf("dequeue failed: %v", err)
	}
	if v != "a" {
		t.Errorf("expected first-in element \"a\", got %q", v)
	}
	v, err = rq.Dequeue()
	if err != nil {
		t.Fatalf("dequeue failed: %v", err)
	}
	if v != "b" {
		t.Errorf("expected \"b\", got %q", v)
	}
	if !rq.IsEmpty() {
		t.Error("queue should be empty after draining")
	}
}

func TestRingQueueWrapAround(t *testing.T) {
	rq := containers.NewRingQueue[int](3)

	for i := 0; i < 3; i++ {
		if err := rq.Enqueue(i); err != nil {
			t.Fatalf("enqueue %d failed: %v", i, err)
		}
	}
	if !rq.IsFull() {
		t.Fatal("queue should be full")
	}
	if err := rq.Enqueue(99); err == nil {
		t.Error("enqueue on a full queue should fail")
	}

	// Free one slot and reuse it; the read order must stay FIFO.
	if _, err := rq.Dequeue(); err != nil {
		t.Fatalf("dequeue failed: %v", err)
	}
	if err := rq.Enqueue(3); err != nil {
		t.Fatalf("enqueue after dequeue failed: %v", err)
	}
	for want := 1; want <= 3; want++ {
		got, err := rq.Dequeue()
		if err != nil {
			t.Fatalf("dequeue failed: %v", err)
		}
		if got != want {
			t.Errorf("expected %d, got %d", want, got)
		}
	}
}

func TestRingQueuePeek(t *testing.T) {
	rq := containers.NewRingQueue[int](2)

	if _, err := rq.Peek(); err == nil {
		t.Error("peek on an empty queue should fail")
	}
	if _, err := rq.Dequeue(); err == nil {
		t.Error("dequeue on an empty queue should fail")
	}

	if err := rq.Enqueue(7); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	v, err := rq.Peek()
	if err != nil {
		t.Fatalf("peek failed: %v", err)
	}
	if v != 7 {
		t.Errorf("expected 7, got %d", v)
	}
	if rq.Len() != 1 {
		t.Error("peek must not consume the element")
	}
}

func TestRingQueueKeepLatest(t *testing.T) {
	rq := containers.NewRingQueue[int](2)

	// The drop-oldest recipe used for bounded histories.
	for i := 0; i < 5; i++ {
		if rq.IsFull() {
			if _, err := rq.Dequeue(); err != nil {
				t.Fatalf("dequeue failed: %v", err)
			}
		}
		if err := rq.Enqueue(i); err != nil {
			t.Fatalf("enqueue %d failed: %v", i, err)
		}
	}
	first, _ := rq.Dequeue()
	second, _ := rq.Dequeue()
	if first != 3 || second != 4 {
		t.Errorf("expected the two most recent elements 3,4, got %d,%d", first, second)
	}
}
