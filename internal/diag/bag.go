package diag

// Bag collects the diagnostics relevant to one driver iteration.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag holding at most max items; max <= 0 means unbounded.
func NewBag(max int) *Bag {
	capacity := max
	if capacity <= 0 {
		capacity = 8
	}
	return &Bag{
		items: make([]Diagnostic, 0, capacity),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors returns true if at least one diagnostic has an error level.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Level.IsError() {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only slice of the diagnostics.
// Do not modify it: it aliases the bag's storage.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Last returns the most recently added diagnostic.
func (b *Bag) Last() (Diagnostic, bool) {
	if len(b.items) == 0 {
		return Diagnostic{}, false
	}
	return b.items[len(b.items)-1], true
}

// Dedup drops repeated diagnostics with identical rendered text, keeping the first.
// Cargo reports the same message once per target (lib, bin, test) that includes the file.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	newitems := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		if seen[d.Rendered] {
			continue
		}
		seen[d.Rendered] = true
		newitems = append(newitems, d)
	}
	b.items = newitems
}
