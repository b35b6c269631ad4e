package neohttp

import (
	"fmt"
	"strings"
)

// Node represents a graph node with labels and properties.
// Nodes are immutable snapshots taken at hydration time; they hold no
// reference back to the client and never refresh from the server.
type Node struct {
	// ID is the server-assigned node identifier. It is only stable
	// within one database instance.
	ID int64

	// Labels are the node's labels, in the order the server returned them.
	Labels []string

	// Properties are the node's key-value properties.
	Properties map[string]interface{}
}

// String returns a string representation of the node.
func (n *Node) String() string {
	labels := strings.Join(n.Labels, ":")
	return fmt.Sprintf("(:%s %v)", labels, n.Properties)
}

// Relationship represents a graph relationship between two nodes.
// It references its endpoints by identity only.
type Relationship struct {
	// ID is the server-assigned relationship identifier.
	ID int64

	// Type is the relationship's type.
	Type string

	// StartID is the ID of the start node.
	StartID int64

	// EndID is the ID of the end node.
	EndID int64

	// Properties are the relationship's key-value properties.
	Properties map[string]interface{}
}

// String returns a string representation of the relationship.
func (r *Relationship) String() string {
	return fmt.Sprintf("-[:%s %v]->", r.Type, r.Properties)
}

// Path represents a sequence of nodes connected by relationships.
type Path struct {
	// Nodes are the nodes along the path.
	Nodes []*Node

	// Relationships connect consecutive nodes.
	Relationships []*Relationship
}

// Length returns the number of relationships in the path.
func (p *Path) Length() int {
	return len(p.Relationships)
}

// String returns a string representation of the path.
func (p *Path) String() string {
	if len(p.Nodes) == 0 {
		return "(empty path)"
	}

	var parts []string
	for i, node := range p.Nodes {
		parts = append(parts, node.String())
		if i < len(p.Relationships) {
			parts = append(parts, p.Relationships[i].String())
		}
	}
	return strings.Join(parts, "")
}
