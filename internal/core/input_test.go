package core

import "testing"

func TestInputQueueOrder(t *testing.T) {
	q := NewInputQueue(4)
	q.Push(ActionLeft)
	q.Push(ActionNone)
	q.Push(ActionRotate)

	if q.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2 (ActionNone is ignored)", q.Len())
	}
	if a := q.Pop(); a != ActionLeft {
		t.Errorf("first Pop() = %v, expected Left", a)
	}
	if a := q.Pop(); a != ActionRotate {
		t.Errorf("second Pop() = %v, expected Rotate", a)
	}
	if a := q.Pop(); a != ActionNone {
		t.Errorf("Pop() on empty queue = %v, expected None", a)
	}
}

func TestInputQueueLimit(t *testing.T) {
	q := NewInputQueue(2)
	q.Push(ActionLeft)
	q.Push(ActionLeft)
	q.Push(ActionHardDrop)

	if q.Len() != 2 {
		t.Errorf("Len() = %d, expected queue capped at 2", q.Len())
	}

	q.Clear()
	if q.Len() != 0 {
		t.Error("Clear should empty the queue")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionHardDrop, "HardDrop"},
		{ActionQuit, "Quit"},
		{Action(99), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}
