package record

// Record is one poll entity: a question, an ordered list of choice labels and
// a vote tally over exactly those labels.
//
// The record store owns the durable bytes of every record. Callers always
// receive independent copies and persist mutations by writing a full
// replacement back, never by mutating shared state in place.
type Record struct {
	// ID is the unique identifier, assigned by the allocator and immutable
	// after creation.
	ID uint64 `json:"id"`
	// Question is the non-empty text prompt.
	Question string `json:"question"`
	// Options is the ordered sequence of distinct choice labels.
	Options []string `json:"options"`
	// Tally maps every current option label to its vote count. The key set is
	// exactly the Options set; labels are never removed, only incremented.
	Tally map[string]uint32 `json:"tally"`
	// Owner is the identity of the creator. Empty when ownership is not used.
	Owner string `json:"owner,omitempty"`
	// CreatedAt is the creation time in Unix nanoseconds, set once.
	CreatedAt uint64 `json:"created_at"`
	// UpdatedAt is the time of the last successful mutation in Unix
	// nanoseconds. Nil until the first edit or vote.
	UpdatedAt *uint64 `json:"updated_at,omitempty"`
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	c := r
	c.Options = make([]string, len(r.Options))
	copy(c.Options, r.Options)
	c.Tally = make(map[string]uint32, len(r.Tally))
	for label, count := range r.Tally {
		c.Tally[label] = count
	}
	if r.UpdatedAt != nil {
		ts := *r.UpdatedAt
		c.UpdatedAt = &ts
	}
	return c
}

// HasOption reports whether label is a current member of Options.
func (r Record) HasOption(label string) bool {
	for _, opt := range r.Options {
		if opt == label {
			return true
		}
	}
	return false
}

// ZeroTally returns an all-zero tally over the given labels.
func ZeroTally(options []string) map[string]uint32 {
	tally := make(map[string]uint32, len(options))
	for _, opt := range options {
		tally[opt] = 0
	}
	return tally
}
