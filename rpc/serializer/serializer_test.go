package serializer

import (
	"reflect"
	"testing"

	"github.com/tallykv/tallykv/lib/record"
	"github.com/tallykv/tallykv/rpc/common"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() IRPCSerializer{
	"JSON": NewJSONSerializer,
	"GOB":  NewGOBSerializer,
}

// testMessages creates a set of test messages with different fields filled
func testMessages() []common.Message {
	updated := uint64(2000)
	rec := record.Record{
		ID:        1,
		Question:  "Pick a color",
		Options:   []string{"red", "blue"},
		Tally:     map[string]uint32{"red": 1, "blue": 0},
		Owner:     "alice",
		CreatedAt: 1000,
		UpdatedAt: &updated,
	}

	return []common.Message{
		// Basic message with just a type
		{MsgType: common.MsgTSuccess},

		// Create request
		{
			MsgType:   common.MsgTPollCreate,
			Question:  "Pick a color",
			Options:   []string{"red", "blue"},
			Requester: "alice",
		},

		// Get response carrying a full record
		{
			MsgType: common.MsgTPollGet,
			Record:  &rec,
			Ok:      true,
		},

		// List response carrying several records
		{
			MsgType: common.MsgTPollList,
			Records: []record.Record{rec, {ID: 2, Question: "q2", Options: []string{"a", "b"}, Tally: map[string]uint32{"a": 0, "b": 0}, CreatedAt: 1500}},
			Ok:      true,
		},

		// Vote request
		{
			MsgType: common.MsgTPollVote,
			ID:      1,
			Choice:  "red",
		},

		// Error response with a typed code
		{
			MsgType: common.MsgTPollDelete,
			Err:     "poll with id=9 not found",
			ErrCode: 2,
		},
	}
}

// TestSerializerRoundTrip tests that messages can be serialized and deserialized correctly
func TestSerializerRoundTrip(t *testing.T) {
	messages := testMessages()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			s := factory()
			for i, msg := range messages {
				data, err := s.Serialize(msg)
				if err != nil {
					t.Fatalf("message %d: Serialize failed: %v", i, err)
				}

				var got common.Message
				if err := s.Deserialize(data, &got); err != nil {
					t.Fatalf("message %d: Deserialize failed: %v", i, err)
				}

				if !reflect.DeepEqual(msg, got) {
					t.Errorf("message %d round trip mismatch:\n  sent: %+v\n  got:  %+v", i, msg, got)
				}
			}
		})
	}
}

// TestDeserializeGarbage tests that invalid input yields an error, not a panic
func TestDeserializeGarbage(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			s := factory()
			var msg common.Message
			if err := s.Deserialize([]byte{0xff, 0x00, 0xba, 0xad}, &msg); err == nil {
				t.Error("expected an error for garbage input")
			}
		})
	}
}
