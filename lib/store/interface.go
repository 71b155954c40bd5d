package store

import (
	"fmt"

	"github.com/tallykv/tallykv/lib/record"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IRecordStore is the generic interface for the durable ordered map from
// identifier to poll record. All operations are point operations except
// ScanAll. Returned records are independent copies; absence of a key is not
// an error at this layer.
type IRecordStore interface {
	// Insert unconditionally overwrites any existing entry at rec.ID and
	// returns the previous value if one existed. Used both for creation
	// (freshly allocated id, no previous value expected) and for persisting
	// mutations (the previous value is the pre-mutation copy).
	Insert(rec record.Record) (prev *record.Record, err error)
	// Get returns an independent copy of the record at id.
	Get(id uint64) (rec *record.Record, loaded bool, err error)
	// ScanAll returns every live record in ascending id order. A fresh scan
	// reflects the current live set, not a snapshot frozen at a prior point.
	ScanAll() (recs []record.Record, err error)
	// Remove deletes the entry at id and returns the prior value if present.
	Remove(id uint64) (prev *record.Record, err error)
	// Has reports whether a live record exists at id.
	Has(id uint64) (loaded bool, err error)
}

// IAllocator produces unique, monotonically nondecreasing identifiers backed
// by a durable single-value cell.
type IAllocator interface {
	// NextID allocates and persists a fresh identifier. Under single-threaded
	// operation two successive calls never return the same value, and the
	// returned value never collides with a live record, even after external
	// deletions or out-of-band insertions.
	NextID() (id uint64, err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and a human-readable message identifying the offending id or label.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, format string, args ...interface{}) *Error {
	return &Error{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// CodeOf returns the RetCode carried by err, or RetCInternalError if err is
// not a store error. A nil err returns RetCSuccess.
func CodeOf(err error) RetCode {
	if err == nil {
		return RetCSuccess
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return RetCInternalError
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess         RetCode = iota // 0: Operation executed successfully.
	RetCInternalError                  // 1: Operation failed due to an internal error.
	RetCNotFound                       // 2: No record at the requested id, or the record list is empty.
	RetCInvalidChoice                  // 3: Vote label empty or not in the current options.
	RetCNotAuthorized                  // 4: Mutation attempted by a non-owner.
	RetCAllocationFault                // 5: Durable counter read or write failed.
	RetCStorageFault                   // 6: Encoded record exceeds the size bound, or the durable write failed.
)

// String returns the symbolic name of the return code.
func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCNotFound:
		return "NotFound"
	case RetCInvalidChoice:
		return "InvalidChoice"
	case RetCNotAuthorized:
		return "NotAuthorized"
	case RetCAllocationFault:
		return "AllocationFault"
	case RetCStorageFault:
		return "StorageFault"
	default:
		return "Unknown"
	}
}
