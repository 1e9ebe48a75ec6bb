package search

import "container/heap"

// frontier is the discovered-but-unexpanded set of an uninformed search.
type frontier interface {
	push(n Node)
	pop() Node
	len() int
}

type fifo struct {
	items []Node
	head  int
}

func (q *fifo) push(n Node) { q.items = append(q.items, n) }

func (q *fifo) pop() Node {
	n := q.items[q.head]
	q.items[q.head] = Node{}
	q.head++
	return n
}

func (q *fifo) len() int { return len(q.items) - q.head }

type lifo struct {
	items []Node
}

func (s *lifo) push(n Node) { s.items = append(s.items, n) }

func (s *lifo) pop() Node {
	last := len(s.items) - 1
	n := s.items[last]
	s.items = s.items[:last]
	return n
}

func (s *lifo) len() int { return len(s.items) }

type pqItem struct {
	node     Node
	priority float64
	seq      uint64
}

type pqItems []pqItem

func (p pqItems) Len() int { return len(p) }

func (p pqItems) Less(i, j int) bool {
	if p[i].priority != p[j].priority {
		return p[i].priority < p[j].priority
	}
	return p[i].seq < p[j].seq
}

func (p pqItems) Swap(i, j int) { p[i], p[j] = p[j], p[i] }

func (p *pqItems) Push(x any) { *p = append(*p, x.(pqItem)) }

func (p *pqItems) Pop() any {
	old := *p
	n := len(old)
	it := old[n-1]
	*p = old[:n-1]
	return it
}

// priorityQueue pops the lowest priority first; equal priorities come out in
// insertion order.
type priorityQueue struct {
	items pqItems
	seq   uint64
}

func (q *priorityQueue) push(n Node, priority float64) {
	heap.Push(&q.items, pqItem{node: n, priority: priority, seq: q.seq})
	q.seq++
}

func (q *priorityQueue) pop() Node {
	return heap.Pop(&q.items).(pqItem).node
}

func (q *priorityQueue) len() int { return q.items.Len() }
