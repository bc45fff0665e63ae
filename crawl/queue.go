package crawl

// frontier is the breadth-first work list of a link crawl. Each URL is
// admitted once, and admission stops once limit URLs are known.
type frontier struct {
	seen  map[string]bool
	order []string
	next  int
	limit int
}

func newFrontier(limit int) *frontier {
	return &frontier{seen: make(map[string]bool), limit: limit}
}

// push admits u. It reports false for a URL already known or when the
// frontier is full.
func (f *frontier) push(u string) bool {
	if f.seen[u] || len(f.order) >= f.limit {
		return false
	}
	f.seen[u] = true
	f.order = append(f.order, u)
	return true
}

// pop returns the oldest URL not yet handed out.
func (f *frontier) pop() (string, bool) {
	if f.next == len(f.order) {
		return "", false
	}
	u := f.order[f.next]
	f.next++
	return u, true
}

// urls returns every admitted URL in admission order.
func (f *frontier) urls() []string {
	return f.order
}
