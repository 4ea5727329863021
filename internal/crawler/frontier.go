package crawler

// Frontier is the FIFO queue of discovered, not-yet-processed URLs.
// Enqueueing is duplicate-tolerant: the same URL may sit in the queue more
// than once, and the engine deduplicates against the visited set at dequeue
// time. This mirrors breadth-first discovery where a page can be linked
// from several parents before it is first processed.
type Frontier struct {
	items []string
}

// NewFrontier creates a frontier seeded with the given URLs, in order.
func NewFrontier(seeds ...string) *Frontier {
	f := &Frontier{items: make([]string, 0, 64)}
	f.items = append(f.items, seeds...)
	return f
}

// Push appends a URL to the back of the queue.
func (f *Frontier) Push(url string) {
	f.items = append(f.items, url)
}

// Pop removes and returns the URL at the front of the queue. It reports
// false when the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	if len(f.items) == 0 {
		return "", false
	}
	url := f.items[0]
	f.items = f.items[1:]
	return url, true
}

// Len returns the number of queued URLs, duplicates included.
func (f *Frontier) Len() int {
	return len(f.items)
}
