package notify

import "testing"

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	if toasts := r.Drain(); len(toasts) != 0 {
		t.Fatalf("new recorder drained %d toasts", len(toasts))
	}

	r.Success("Order placed successfully!")
	r.Error("Out of stock")

	toasts := r.Drain()
	if len(toasts) != 2 {
		t.Fatalf("toast count = %d, want 2", len(toasts))
	}
	if toasts[0].Level != LevelSuccess || toasts[0].Message != "Order placed successfully!" {
		t.Errorf("toast 0 = %+v", toasts[0])
	}
	if toasts[1].Level != LevelError || toasts[1].Message != "Out of stock" {
		t.Errorf("toast 1 = %+v", toasts[1])
	}
	if toasts[0].ID == "" || toasts[0].ID == toasts[1].ID {
		t.Error("toast IDs must be unique and non-empty")
	}

	// Drain clears the queue.
	if toasts := r.Drain(); len(toasts) != 0 {
		t.Errorf("second drain returned %d toasts", len(toasts))
	}
}
