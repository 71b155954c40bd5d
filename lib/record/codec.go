package record

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
)

// --------------------------------------------------------------------------
// Codec Interface
// --------------------------------------------------------------------------

// ICodec converts records to and from their durable byte representation.
// The wire encoding of records is a pluggable concern: the store only deals
// in bytes and the codec decides the format.
type ICodec interface {
	// Encode serializes a Record into a byte array.
	// It returns the serialized byte array and an error if any.
	Encode(rec Record) ([]byte, error)
	// Decode deserializes a byte array into a Record.
	// It takes a byte array and a pointer to a Record as parameters.
	// It returns an error if any.
	Decode(b []byte, rec *Record) error
}

// --------------------------------------------------------------------------
// JSON Implementation
// --------------------------------------------------------------------------

// NewJSONCodec creates a new codec using json encoding.
func NewJSONCodec() ICodec {
	return &jsonCodecImpl{}
}

type jsonCodecImpl struct{}

func (c jsonCodecImpl) Encode(rec Record) ([]byte, error) {
	return json.Marshal(rec)
}

func (c jsonCodecImpl) Decode(b []byte, rec *Record) error {
	return json.Unmarshal(b, rec)
}

// --------------------------------------------------------------------------
// GOB Implementation
// --------------------------------------------------------------------------

// NewGOBCodec creates a new codec using gob encoding.
func NewGOBCodec() ICodec {
	return &gobCodecImpl{}
}

type gobCodecImpl struct{}

func (c gobCodecImpl) Encode(rec Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c gobCodecImpl) Decode(b []byte, rec *Record) error {
	return gob.NewDecoder(bytes.NewReader(b)).Decode(rec)
}
