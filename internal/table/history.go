package table

import (
	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/evaluator"
)

// HandRecord is a compact summary of one completed hand, kept in memory for
// spectators and for debugging a live table. It is never persisted and
// never sent over the wire as-is (spec's out-of-scope persistence note);
// the server layer may project it into a client message if it chooses to.
type HandRecord struct {
	DealerSeat int
	Community  []deck.Card
	Winners    map[int]int // seat -> chips won
	Showdown   map[int]evaluator.Score
}

// History is a fixed-capacity ring buffer of the most recent hands played
// at a table, adapted from the teacher's hand-history tracking: newest
// entries overwrite the oldest once the buffer is full.
type History struct {
	entries  []HandRecord
	capacity int
	next     int
	filled   bool
}

func newHistory(capacity int) *History {
	return &History{
		entries:  make([]HandRecord, capacity),
		capacity: capacity,
	}
}

func (h *History) record(r HandRecord) {
	h.entries[h.next] = r
	h.next = (h.next + 1) % h.capacity
	if h.next == 0 {
		h.filled = true
	}
}

// Recent returns completed hands, most recent first.
func (h *History) Recent() []HandRecord {
	var out []HandRecord
	n := h.next
	if h.filled {
		for i := 0; i < h.capacity; i++ {
			idx := (n - 1 - i + h.capacity) % h.capacity
			out = append(out, h.entries[idx])
		}
		return out
	}
	for i := n - 1; i >= 0; i-- {
		out = append(out, h.entries[i])
	}
	return out
}

func (t *Table) snapshotForHistory(won map[int]int, scores map[int]evaluator.Score) HandRecord {
	community := make([]deck.Card, len(t.Hand.Community))
	copy(community, t.Hand.Community)
	return HandRecord{
		DealerSeat: t.Hand.DealerSeat,
		Community:  community,
		Winners:    won,
		Showdown:   scores,
	}
}
