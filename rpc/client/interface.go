package client

import "github.com/tallykv/tallykv/lib/record"

// IPollClient is the client-side view of the poll operations. Every method
// performs one RPC round-trip; returned errors carry the server's typed
// return code where the server produced one.
type IPollClient interface {
	// Create creates a new poll with an all-zero tally and returns it.
	// The requester becomes the poll's owner if non-empty.
	Create(question string, options []string) (*record.Record, error)

	// Get returns the poll at id.
	Get(id uint64) (*record.Record, error)

	// List returns every poll in ascending id order.
	List() ([]record.Record, error)

	// Edit replaces question and options of the poll at id and resets
	// its tally.
	Edit(id uint64, question string, options []string) (*record.Record, error)

	// Delete removes the poll at id permanently and returns the removed
	// record.
	Delete(id uint64) (*record.Record, error)

	// Vote casts one vote for choice on the poll at id and returns the
	// updated record.
	Vote(id uint64, choice string) (*record.Record, error)

	// Close shuts down the underlying transport.
	Close() error
}
