package codec

import (
	"bytes"
	"encoding/json"

	gojson "github.com/goccy/go-json"
)

// JSON is the standard-library JSON codec.
//
// Sparse vectors encode in their snapshot shape:
// {"count":n,"keys":[...],"values":[...]}. Decoding rejects unknown fields.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Name returns "json".
func (JSON) Name() string { return "json" }

// GoJSON is a JSON codec backed by github.com/goccy/go-json.
// Its output is interchangeable with JSON and it decodes just as strictly.
type GoJSON struct{}

// Marshal encodes the value to JSON.
func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (GoJSON) Unmarshal(data []byte, v any) error {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Name returns "go-json".
func (GoJSON) Name() string { return "go-json" }
