package bus

// Dedupe is a bounded set of seen (type, attendant id) keys. Each subscriber
// owns its own instance: a monitor that already showed a welcome card for an
// attendant must ignore a second checked-in event for them. Eviction is FIFO
// so memory stays bounded over long-running displays.
type Dedupe struct {
	seen  map[dedupeKey]struct{}
	order []dedupeKey
	max   int
}

type dedupeKey struct {
	eventType   EventType
	attendantID string
}

func NewDedupe(max int) *Dedupe {
	if max <= 0 {
		max = 1024
	}
	return &Dedupe{
		seen: make(map[dedupeKey]struct{}),
		max:  max,
	}
}

// Seen marks the pair and reports whether it was already marked.
func (d *Dedupe) Seen(t EventType, attendantID string) bool {
	key := dedupeKey{eventType: t, attendantID: attendantID}
	if _, ok := d.seen[key]; ok {
		return true
	}

	if len(d.order) >= d.max {
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.seen, oldest)
	}

	d.seen[key] = struct{}{}
	d.order = append(d.order, key)
	return false
}
