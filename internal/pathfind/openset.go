package pathfind

import "container/heap"

// openItem is one entry of the open set.
type openItem struct {
	cell Handle
	f    float64
	seq  uint64 // Insertion order, breaks f ties
}

// openSet is a binary min-heap of discovered cells keyed by (f, seq), plus a
// position index from handle to heap slot for O(1) membership tests and
// O(log n) priority updates.
type openSet struct {
	items   []openItem
	pos     []int // pos[handle] = heap index, -1 when absent
	nextSeq uint64
}

func newOpenSet(size int) *openSet {
	pos := make([]int, size)
	for i := range pos {
		pos[i] = -1
	}
	return &openSet{pos: pos}
}

// heap.Interface

func (s *openSet) Len() int { return len(s.items) }

func (s *openSet) Less(i, j int) bool {
	if s.items[i].f != s.items[j].f {
		return s.items[i].f < s.items[j].f
	}
	return s.items[i].seq < s.items[j].seq
}

func (s *openSet) Swap(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
	s.pos[s.items[i].cell] = i
	s.pos[s.items[j].cell] = j
}

func (s *openSet) Push(x any) {
	item := x.(openItem)
	s.pos[item.cell] = len(s.items)
	s.items = append(s.items, item)
}

func (s *openSet) Pop() any {
	n := len(s.items)
	item := s.items[n-1]
	s.items = s.items[:n-1]
	s.pos[item.cell] = -1
	return item
}

// contains reports whether h is waiting in the open set.
func (s *openSet) contains(h Handle) bool {
	return s.pos[h] >= 0
}

// insert adds h with priority f. The caller guarantees h is absent.
func (s *openSet) insert(h Handle, f float64) {
	heap.Push(s, openItem{cell: h, f: f, seq: s.nextSeq})
	s.nextSeq++
}

// update changes the priority of h, keeping its original insertion order.
func (s *openSet) update(h Handle, f float64) {
	i := s.pos[h]
	s.items[i].f = f
	heap.Fix(s, i)
}

// popMin removes and returns the cell with the lowest f (earliest inserted on
// ties).
func (s *openSet) popMin() Handle {
	return heap.Pop(s).(openItem).cell
}
