package runtime

import (
	"errors"
	"testing"
	"time"
)

func TestLoopTasksRunInOrder(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	var got []int
	for i := 0; i < 5; i++ {
		n := i
		l.Dispatch(func() { got = append(got, n) })
	}
	l.RunSync(func() {})

	for i, n := range got {
		if n != i {
			t.Fatalf("got = %v, want ascending order", got)
		}
	}
}

func TestRunSyncFromLoopRunsInline(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	done := make(chan bool, 1)
	l.Dispatch(func() {
		ran := false
		l.RunSync(func() { ran = true })
		done <- ran
	})
	select {
	case ran := <-done:
		if !ran {
			t.Fatal("nested RunSync did not run")
		}
	case <-time.After(time.Second):
		t.Fatal("nested RunSync deadlocked")
	}
}

func TestFutureSettlesOnce(t *testing.T) {
	f := NewFuture()
	f.Resolve("first")
	f.Reject(errors.New("late"))

	v, err := f.Result()
	if v != "first" || err != nil {
		t.Fatalf("result = %v, %v, want first, nil", v, err)
	}
}

func TestGoFutureDeliversResult(t *testing.T) {
	f := GoFuture(func() (any, error) {
		return 42, nil
	})
	got := make(chan any, 1)
	f.onSettled(func(v any, err error) { got <- v })

	select {
	case v := <-got:
		if v != 42 {
			t.Fatalf("value = %v, want 42", v)
		}
	case <-time.After(time.Second):
		t.Fatal("future never settled")
	}
}
