package updater

import (
	"fmt"
	"testing"
)

func fill(h *History, from, to uint64) {
	for s := from; s <= to; s++ {
		h.Add(s, []byte(fmt.Sprint(s)))
	}
}

func TestHistoryFrames(t *testing.T) {
	h := NewHistory(4)
	fill(h, 1, 6)

	if h.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", h.Len())
	}
	if h.MinSeq() != 3 || h.MaxSeq() != 6 {
		t.Fatalf("bounds = [%d, %d], want [3, 6]", h.MinSeq(), h.MaxSeq())
	}

	tests := []struct {
		after, to uint64
		want      []string
	}{
		{2, 6, []string{"3", "4", "5", "6"}},
		{4, 6, []string{"5", "6"}},
		{3, 4, []string{"4"}},
		{1, 6, nil},
		{5, 7, nil},
		{6, 6, nil},
	}
	for _, tt := range tests {
		got := h.Frames(tt.after, tt.to)
		if len(got) != len(tt.want) {
			t.Errorf("Frames(%d, %d) = %q, want %q", tt.after, tt.to, got, tt.want)
			continue
		}
		for i := range got {
			if string(got[i]) != tt.want[i] {
				t.Errorf("Frames(%d, %d)[%d] = %q, want %q", tt.after, tt.to, i, got[i], tt.want[i])
			}
		}
	}
}

func TestHistoryCanRecover(t *testing.T) {
	h := NewHistory(3)
	if h.CanRecover(0) {
		t.Error("CanRecover(0) on empty history = true, want false")
	}
	fill(h, 1, 5)

	tests := []struct {
		last uint64
		want bool
	}{
		{1, false},
		{2, true},
		{4, true},
		{5, false},
	}
	for _, tt := range tests {
		if got := h.CanRecover(tt.last); got != tt.want {
			t.Errorf("CanRecover(%d) = %v, want %v", tt.last, got, tt.want)
		}
	}
}

func TestHistoryCopiesFrames(t *testing.T) {
	h := NewHistory(2)
	buf := []byte("abc")
	h.Add(1, buf)
	buf[0] = 'z'
	if got := string(h.Frames(0, 1)[0]); got != "abc" {
		t.Errorf("stored frame = %q, want %q", got, "abc")
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(0)
	fill(h, 1, 3)
	h.Clear()
	if h.Len() != 0 || h.MaxSeq() != 0 {
		t.Errorf("after Clear Len() = %d MaxSeq() = %d, want 0 0", h.Len(), h.MaxSeq())
	}
	fill(h, 7, 8)
	if h.MinSeq() != 7 {
		t.Errorf("MinSeq() = %d, want 7", h.MinSeq())
	}
}
