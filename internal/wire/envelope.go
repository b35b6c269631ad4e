package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the decoded response body of the transactional endpoint.
type Envelope struct {
	Results []Result      `json:"results"`
	Errors  []ServerError `json:"errors"`
}

// Result holds the raw rows produced by one statement.
type Result struct {
	Columns []string `json:"columns"`
	Data    []Row    `json:"data"`
}

// Row is one raw result row, cell order matching Columns.
type Row struct {
	Row []interface{} `json:"row"`
}

// ServerError is a failure reported by the database itself.
type ServerError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeEnvelope parses a transactional endpoint response body.
// Numbers decode as json.Number so entity identities survive as
// integers instead of collapsing to float64.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var env Envelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("unexpected response body: %w", err)
	}
	return &env, nil
}

// DecodeValue parses an arbitrary JSON body from a custom endpoint,
// normalizing numbers on the way out.
func DecodeValue(body []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("unexpected response body: %w", err)
	}
	return normalize(v), nil
}

func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		return NormalizeNumber(val)
	case []interface{}:
		for i, item := range val {
			val[i] = normalize(item)
		}
		return val
	case map[string]interface{}:
		for k, item := range val {
			val[k] = normalize(item)
		}
		return val
	default:
		return v
	}
}

// NormalizeNumber converts a json.Number to int64 when it is integral,
// otherwise to float64.
func NormalizeNumber(n json.Number) interface{} {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// Helper functions for type conversion

// ToInt64 converts an interface{} to int64.
func ToInt64(v interface{}) int64 {
	switch val := v.(type) {
	case json.Number:
		i, _ := val.Int64()
		return i
	case int:
		return int64(val)
	case int64:
		return val
	case float64:
		return int64(val)
	default:
		return 0
	}
}

// ToFloat64 converts an interface{} to float64.
func ToFloat64(v interface{}) float64 {
	switch val := v.(type) {
	case json.Number:
		f, _ := val.Float64()
		return f
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	default:
		return 0
	}
}

// ToString converts an interface{} to string.
func ToString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
