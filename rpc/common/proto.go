package common

import (
	"encoding/json"
	"fmt"

	"github.com/tallykv/tallykv/lib/record"
	"github.com/tallykv/tallykv/lib/store"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// Which fields are used depends on the type of message.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// Request fields
	ID        uint64   `json:"id,omitempty"`        // Used for: Get, Edit, Delete, Vote
	Question  string   `json:"question,omitempty"`  // Used for: Create, Edit
	Options   []string `json:"options,omitempty"`   // Used for: Create, Edit
	Choice    string   `json:"choice,omitempty"`    // Used for: Vote
	Requester string   `json:"requester,omitempty"` // Caller identity, checked by the authorizer on Edit/Delete

	// Response fields
	Record  *record.Record  `json:"record,omitempty"`  // Used for: Create, Get, Edit, Delete, Vote responses
	Records []record.Record `json:"records,omitempty"` // Used for: List responses
	Ok      bool            `json:"ok,omitempty"`      // True on success responses
	Err     string          `json:"err,omitempty"`     // Empty if no error, otherwise contains the error message
	ErrCode uint64          `json:"err_code,omitempty"` // store.RetCode of the error, 0 if no error
}

// ErrorOf reconstructs the typed store error carried by a response, or nil.
func (m *Message) ErrorOf() error {
	if m.Err == "" {
		return nil
	}
	return store.NewError(store.RetCode(m.ErrCode), "%s", m.Err)
}

// setErr stores an error on the message, keeping the typed code when the
// error is a store error.
func (m *Message) setErr(err error) {
	if err == nil {
		m.Ok = true
		return
	}
	if e, ok := err.(*store.Error); ok {
		m.Err = e.Msg
		m.ErrCode = uint64(e.Code)
	} else {
		m.Err = err.Error()
		m.ErrCode = uint64(store.RetCInternalError)
	}
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewCreateRequest creates a new Create request
func NewCreateRequest(question string, options []string, requester string) *Message {
	return &Message{
		MsgType:   MsgTPollCreate,
		Question:  question,
		Options:   options,
		Requester: requester,
	}
}

// NewCreateResponse creates a new Create response
func NewCreateResponse(rec *record.Record, err error) *Message {
	msg := &Message{MsgType: MsgTPollCreate, Record: rec}
	msg.setErr(err)
	return msg
}

// NewGetRequest creates a new Get request
func NewGetRequest(id uint64) *Message {
	return &Message{
		MsgType: MsgTPollGet,
		ID:      id,
	}
}

// NewGetResponse creates a new Get response
func NewGetResponse(rec *record.Record, err error) *Message {
	msg := &Message{MsgType: MsgTPollGet, Record: rec}
	msg.setErr(err)
	return msg
}

// NewListRequest creates a new List request
func NewListRequest() *Message {
	return &Message{MsgType: MsgTPollList}
}

// NewListResponse creates a new List response
func NewListResponse(recs []record.Record, err error) *Message {
	msg := &Message{MsgType: MsgTPollList, Records: recs}
	msg.setErr(err)
	return msg
}

// NewEditRequest creates a new Edit request
func NewEditRequest(id uint64, question string, options []string, requester string) *Message {
	return &Message{
		MsgType:   MsgTPollEdit,
		ID:        id,
		Question:  question,
		Options:   options,
		Requester: requester,
	}
}

// NewEditResponse creates a new Edit response
func NewEditResponse(rec *record.Record, err error) *Message {
	msg := &Message{MsgType: MsgTPollEdit, Record: rec}
	msg.setErr(err)
	return msg
}

// NewDeleteRequest creates a new Delete request
func NewDeleteRequest(id uint64, requester string) *Message {
	return &Message{
		MsgType:   MsgTPollDelete,
		ID:        id,
		Requester: requester,
	}
}

// NewDeleteResponse creates a new Delete response
func NewDeleteResponse(rec *record.Record, err error) *Message {
	msg := &Message{MsgType: MsgTPollDelete, Record: rec}
	msg.setErr(err)
	return msg
}

// NewVoteRequest creates a new Vote request
func NewVoteRequest(id uint64, choice string) *Message {
	return &Message{
		MsgType: MsgTPollVote,
		ID:      id,
		Choice:  choice,
	}
}

// NewVoteResponse creates a new Vote response
func NewVoteResponse(rec *record.Record, err error) *Message {
	msg := &Message{MsgType: MsgTPollVote, Record: rec}
	msg.setErr(err)
	return msg
}

// NewErrorResponse creates a new Error response
func NewErrorResponse(err string) *Message {
	return &Message{
		MsgType: MsgTError,
		Err:     err,
		ErrCode: uint64(store.RetCInternalError),
	}
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message used in RPC communication.
type MessageType uint8

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	switch t {
	case MsgTSuccess:
		return "success"
	case MsgTError:
		return "error"
	case MsgTPollCreate:
		return "create"
	case MsgTPollGet:
		return "get"
	case MsgTPollList:
		return "list"
	case MsgTPollEdit:
		return "edit"
	case MsgTPollDelete:
		return "delete"
	case MsgTPollVote:
		return "vote"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
// This allows MessageType to be deserialized from a string in JSON.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	// Convert string back to MessageType
	switch s {
	case "success":
		*t = MsgTSuccess
	case "error":
		*t = MsgTError
	case "create":
		*t = MsgTPollCreate
	case "get":
		*t = MsgTPollGet
	case "list":
		*t = MsgTPollList
	case "edit":
		*t = MsgTPollEdit
	case "delete":
		*t = MsgTPollDelete
	case "vote":
		*t = MsgTPollVote
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	// General message types

	MsgTUnknown MessageType = iota
	MsgTSuccess             // Indicates a successful operation
	MsgTError               // Indicates an error occurred

	// Poll operations

	MsgTPollCreate // Create a new poll
	MsgTPollGet    // Get a poll by id
	MsgTPollList   // List all polls
	MsgTPollEdit   // Replace question and options of a poll
	MsgTPollDelete // Delete a poll permanently
	MsgTPollVote   // Cast a vote for one option
)
