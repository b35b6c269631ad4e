package neohttp

import (
	"encoding/json"
	"fmt"

	"github.com/neohttp/neohttp-go/internal/wire"
)

// QueryResult represents the rows produced by one statement.
type QueryResult struct {
	// Columns are the return aliases, in declaration order.
	Columns []string

	// Rows contains the result rows as maps of return alias to value.
	// Values can be: string, int64, float64, bool, nil, *Node,
	// *Relationship, *Path, map, slice. A result is always a slice of
	// maps, even when logically empty.
	Rows []map[string]interface{}
}

// hydrator turns raw wire values into typed graph entities. The wire
// format carries no type tags; entities are recognized by the exact
// field sets the protocol guarantees together.
type hydrator struct {
	// lean strips identity/label/type metadata, leaving bare property
	// maps. It applies at any nesting depth.
	lean bool
}

func (h *hydrator) result(raw wire.Result) *QueryResult {
	result := &QueryResult{
		Columns: raw.Columns,
		Rows:    make([]map[string]interface{}, 0, len(raw.Data)),
	}
	for _, row := range raw.Data {
		result.Rows = append(result.Rows, h.row(raw.Columns, row.Row))
	}
	return result
}

func (h *hydrator) row(columns []string, cells []interface{}) map[string]interface{} {
	row := make(map[string]interface{}, len(cells))
	for i, cell := range cells {
		name := fmt.Sprintf("column_%d", i)
		if i < len(columns) {
			name = columns[i]
		}
		row[name] = h.value(cell)
	}
	return row
}

// value classifies a raw value by structural shape, in priority order:
// relationship, node, path, then opaque. Opaque composites are walked
// so entities nested inside returned arrays and maps still hydrate.
func (h *hydrator) value(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		switch {
		case relationshipShaped(val):
			return h.relationship(val)
		case nodeShaped(val):
			return h.node(val)
		case pathShaped(val):
			return h.path(val)
		}
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = h.value(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = h.value(item)
		}
		return out
	case json.Number:
		return wire.NormalizeNumber(val)
	default:
		return v
	}
}

func (h *hydrator) node(m map[string]interface{}) interface{} {
	props := h.properties(m["properties"])
	if h.lean {
		return props
	}

	node := &Node{
		ID:         wire.ToInt64(m["id"]),
		Properties: props,
	}
	labels, _ := m["labels"].([]interface{})
	for _, l := range labels {
		node.Labels = append(node.Labels, wire.ToString(l))
	}
	return node
}

func (h *hydrator) relationship(m map[string]interface{}) interface{} {
	props := h.properties(m["properties"])
	if h.lean {
		return props
	}

	return &Relationship{
		ID:         wire.ToInt64(m["id"]),
		Type:       wire.ToString(m["type"]),
		StartID:    wire.ToInt64(m["start"]),
		EndID:      wire.ToInt64(m["end"]),
		Properties: props,
	}
}

func (h *hydrator) path(m map[string]interface{}) interface{} {
	nodes, _ := m["nodes"].([]interface{})
	rels, _ := m["relationships"].([]interface{})

	if h.lean {
		// A lean path degrades to a plain alternating sequence of
		// property maps: node, relationship, node, ...
		seq := make([]interface{}, 0, len(nodes)+len(rels))
		for i, n := range nodes {
			seq = append(seq, h.node(n.(map[string]interface{})))
			if i < len(rels) {
				seq = append(seq, h.relationship(rels[i].(map[string]interface{})))
			}
		}
		return seq
	}

	path := &Path{}
	for _, n := range nodes {
		path.Nodes = append(path.Nodes, h.node(n.(map[string]interface{})).(*Node))
	}
	for _, r := range rels {
		path.Relationships = append(path.Relationships, h.relationship(r.(map[string]interface{})).(*Relationship))
	}
	return path
}

func (h *hydrator) properties(v interface{}) map[string]interface{} {
	m, ok := v.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}

	props := make(map[string]interface{}, len(m))
	for k, item := range m {
		props[k] = h.value(item)
	}
	return props
}

// relationshipShaped requires the full relationship signature: identity,
// type, both endpoint references, and a property map.
func relationshipShaped(m map[string]interface{}) bool {
	if !isNumber(m["id"]) || !isNumber(m["start"]) || !isNumber(m["end"]) {
		return false
	}
	if _, ok := m["type"].(string); !ok {
		return false
	}
	_, ok := m["properties"].(map[string]interface{})
	return ok
}

// nodeShaped requires the full node signature. A map that merely
// contains a key named "labels" does not qualify.
func nodeShaped(m map[string]interface{}) bool {
	if !isNumber(m["id"]) {
		return false
	}
	if _, ok := m["labels"].([]interface{}); !ok {
		return false
	}
	if _, ok := m["properties"].(map[string]interface{}); !ok {
		return false
	}
	// Endpoint references mean this is relationship-like, however
	// malformed; never hydrate it as a node.
	_, hasStart := m["start"]
	_, hasEnd := m["end"]
	return !hasStart && !hasEnd
}

// pathShaped requires alternating node/relationship structure: both
// collections present, every element entity-shaped, and one more node
// than relationships.
func pathShaped(m map[string]interface{}) bool {
	nodes, ok := m["nodes"].([]interface{})
	if !ok {
		return false
	}
	rels, ok := m["relationships"].([]interface{})
	if !ok {
		return false
	}
	if len(nodes) != len(rels)+1 {
		return false
	}
	for _, n := range nodes {
		nm, ok := n.(map[string]interface{})
		if !ok || !nodeShaped(nm) {
			return false
		}
	}
	for _, r := range rels {
		rm, ok := r.(map[string]interface{})
		if !ok || !relationshipShaped(rm) {
			return false
		}
	}
	return true
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case json.Number, int, int64, float64:
		return true
	default:
		return false
	}
}
