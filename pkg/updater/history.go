package updater

import (
	"sync"
	"time"
)

// HistoryEntry is one published patch frame.
type HistoryEntry struct {
	Seq         uint64
	Frame       []byte // Encoded Patches frame, header included
	PublishedAt time.Time
}

// History is a fixed-size ring of the most recent patch frames. When full,
// adding a frame evicts the oldest one. It is safe for concurrent use.
type History struct {
	mu      sync.RWMutex
	entries []HistoryEntry
	head    int // next write slot
	count   int
}

// NewHistory creates a History holding up to capacity frames.
// A non-positive capacity keeps the default of 100.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = defaultHistorySize
	}
	return &History{entries: make([]HistoryEntry, capacity)}
}

// Add records frame under seq. Sequence numbers must increase by one per
// call; frame is copied.
func (h *History) Add(seq uint64, frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[h.head] = HistoryEntry{
		Seq:         seq,
		Frame:       append([]byte(nil), frame...),
		PublishedAt: time.Now(),
	}
	h.head = (h.head + 1) % len(h.entries)
	if h.count < len(h.entries) {
		h.count++
	}
}

// at returns the i-th oldest entry. Callers hold the lock.
func (h *History) at(i int) HistoryEntry {
	return h.entries[(h.head-h.count+i+len(h.entries))%len(h.entries)]
}

func (h *History) bounds() (lo, hi uint64) {
	if h.count == 0 {
		return 0, 0
	}
	return h.at(0).Seq, h.at(h.count - 1).Seq
}

// Frames returns the frames for sequences (after, to] in order, or nil if
// any of them has been evicted or never existed.
func (h *History) Frames(after, to uint64) [][]byte {
	h.mu.RLock()
	defer h.mu.RUnlock()

	lo, hi := h.bounds()
	if h.count == 0 || after >= to || after+1 < lo || to > hi {
		return nil
	}
	frames := make([][]byte, 0, to-after)
	for i := int(after + 1 - lo); i < h.count; i++ {
		e := h.at(i)
		if e.Seq > to {
			break
		}
		frames = append(frames, e.Frame)
	}
	return frames
}

// CanRecover reports whether every frame after lastSeq is still held.
func (h *History) CanRecover(lastSeq uint64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	lo, hi := h.bounds()
	return h.count > 0 && lastSeq+1 >= lo && lastSeq < hi
}

// MinSeq returns the oldest held sequence number, or 0 when empty.
func (h *History) MinSeq() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	lo, _ := h.bounds()
	return lo
}

// MaxSeq returns the newest held sequence number, or 0 when empty.
func (h *History) MaxSeq() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, hi := h.bounds()
	return hi
}

// Len returns the number of held frames.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Clear drops every frame.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.entries)
	h.head = 0
	h.count = 0
}
