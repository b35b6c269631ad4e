// Package wire handles encoding and decoding of the transactional
// statement endpoint's JSON protocol.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Statement is one parameterized statement in the request payload.
// Parameters travel as their own field; they are never spliced into
// the statement text.
type Statement struct {
	Text   string                 `json:"statement"`
	Params map[string]interface{} `json:"parameters,omitempty"`
}

// payload is the request body of the transactional endpoint.
type payload struct {
	Statements []Statement `json:"statements"`
}

// BuildPayload encodes statements into the transactional endpoint's
// request body. Validation runs before any network activity: every
// statement needs query text and JSON-encodable parameters.
func BuildPayload(stmts []Statement) ([]byte, error) {
	if len(stmts) == 0 {
		return nil, fmt.Errorf("empty statement batch")
	}

	for i, s := range stmts {
		if s.Text == "" {
			return nil, fmt.Errorf("statement %d: missing query text", i)
		}
		if s.Params != nil {
			if _, err := json.Marshal(s.Params); err != nil {
				return nil, fmt.Errorf("statement %d: parameters not encodable: %w", i, err)
			}
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload{Statements: stmts}); err != nil {
		return nil, fmt.Errorf("encoding statement payload: %w", err)
	}
	return buf.Bytes(), nil
}
