package parser

// Record holds one respondent's answers keyed by question label.
// Keys keep the order in which they were first seen; setting an existing
// key replaces its answer without moving it.
type Record struct {
	keys   []string
	values map[string]string
}

// Set stores answer under key.
func (r *Record) Set(key, answer string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = answer
}

// Get returns the answer for key.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the question keys in first-seen order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of distinct question keys.
func (r *Record) Len() int { return len(r.keys) }
