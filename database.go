package neohttp

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/neohttp/neohttp-go/internal/wire"
)

// Statement is one parameterized query in a batch.
type Statement struct {
	// Text is the query, with $named placeholders for parameters.
	Text string

	// Params are the query parameters. They are transmitted as a wire
	// field separate from Text, never concatenated into it.
	Params map[string]interface{}

	// Lean strips identity/label/type metadata from entities hydrated
	// out of this statement's results.
	Lean bool
}

// Database is a handle on one named database. Handles are cheap, carry
// no state of their own, and are safe for concurrent use.
type Database struct {
	name   string
	client *Client
}

// Name returns the name of the database.
func (d *Database) Name() string {
	return d.name
}

// Query executes a single statement and returns its result. This is
// the fast path for one statement; use Batch for atomic multi-statement
// execution.
//
// Example:
//
//	result, err := db.Database("").Query(ctx,
//		"MATCH (p:Person) WHERE p.age > $minAge RETURN p",
//		&neohttp.QueryOptions{
//			Params: map[string]interface{}{"minAge": 21},
//		},
//	)
func (d *Database) Query(ctx context.Context, text string, options ...*QueryOptions) (*QueryResult, error) {
	var opts *QueryOptions
	if len(options) > 0 {
		opts = options[0]
	}

	stmt := Statement{Text: text}
	var headers map[string]string
	if opts != nil {
		stmt.Params = opts.Params
		stmt.Lean = opts.Lean
		headers = opts.Headers
	}

	results, err := d.run(ctx, []Statement{stmt}, headers)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// Batch executes statements atomically in one round trip: the server
// opens a transaction scope, runs the statements in order, and either
// commits all of them or none. On success the returned slice holds
// exactly one result per statement, index-aligned with the input. On
// any failure no results are returned; the transaction rolled back and
// the error identifies the failing statement where derivable.
//
// Batch never retries: statements may have side effects, so retry
// policy belongs to the caller.
func (d *Database) Batch(ctx context.Context, stmts []Statement, options ...*QueryOptions) ([]*QueryResult, error) {
	var headers map[string]string
	if len(options) > 0 && options[0] != nil {
		headers = options[0].Headers
	}
	return d.run(ctx, stmts, headers)
}

func (d *Database) run(ctx context.Context, stmts []Statement, headers map[string]string) ([]*QueryResult, error) {
	ws := make([]wire.Statement, len(stmts))
	lean := make([]bool, len(stmts))
	for i, s := range stmts {
		ws[i] = wire.Statement{Text: s.Text, Params: s.Params}
		lean[i] = s.Lean
	}

	// Validation failures surface before any network attempt.
	payload, err := wire.BuildPayload(ws)
	if err != nil {
		return nil, protocolError("invalid statement batch", err)
	}

	resp, err := d.client.send(ctx, http.MethodPost, d.commitPath(), payload, headers)
	if err != nil {
		return nil, err
	}

	env, cerr := classifyEnvelope(resp, len(stmts))
	if cerr != nil {
		return nil, cerr
	}
	if len(env.Results) != len(stmts) {
		return nil, protocolError(
			fmt.Sprintf("server returned %d results for %d statements", len(env.Results), len(stmts)), nil)
	}

	results := make([]*QueryResult, len(env.Results))
	for i := range env.Results {
		h := &hydrator{lean: lean[i]}
		results[i] = h.result(env.Results[i])
	}
	return results, nil
}

// commitPath is the auto-commit transactional endpoint for this database.
func (d *Database) commitPath() string {
	return "/db/" + d.name + "/tx/commit"
}

// Explain returns the execution plan for a query without executing it.
func (d *Database) Explain(ctx context.Context, text string, options ...*QueryOptions) (*QueryResult, error) {
	return d.Query(ctx, "EXPLAIN "+text, options...)
}

// Profile executes a query and returns its plan with execution counts.
func (d *Database) Profile(ctx context.Context, text string, options ...*QueryOptions) (*QueryResult, error) {
	return d.Query(ctx, "PROFILE "+text, options...)
}

// === Index Methods ===
// Index and constraint management is plain Cypher on this protocol.

// CreateIndex creates a range index on node properties.
// Example: CREATE INDEX idx FOR (e:Person) ON (e.name)
func (d *Database) CreateIndex(ctx context.Context, name, label string, properties ...string) (*QueryResult, error) {
	query := fmt.Sprintf("CREATE INDEX %s IF NOT EXISTS FOR (e:%s) ON (%s)",
		name, label, propertyList(properties))
	return d.Query(ctx, query)
}

// CreateFulltextIndex creates a fulltext index on node properties.
// Example: CREATE FULLTEXT INDEX idx FOR (e:Person) ON EACH [e.bio]
func (d *Database) CreateFulltextIndex(ctx context.Context, name, label string, properties ...string) (*QueryResult, error) {
	query := fmt.Sprintf("CREATE FULLTEXT INDEX %s IF NOT EXISTS FOR (e:%s) ON EACH [%s]",
		name, label, propertyList(properties))
	return d.Query(ctx, query)
}

// DropIndex drops an index by name.
func (d *Database) DropIndex(ctx context.Context, name string) (*QueryResult, error) {
	return d.Query(ctx, fmt.Sprintf("DROP INDEX %s IF EXISTS", name))
}

// === Constraint Methods ===

// CreateUniqueConstraint requires a node property to be unique per label.
//
// Example:
//
//	db.CreateUniqueConstraint(ctx, "person_email", "Person", "email")
func (d *Database) CreateUniqueConstraint(ctx context.Context, name, label, property string) (*QueryResult, error) {
	query := fmt.Sprintf("CREATE CONSTRAINT %s IF NOT EXISTS FOR (e:%s) REQUIRE e.%s IS UNIQUE",
		name, label, property)
	return d.Query(ctx, query)
}

// CreateExistenceConstraint requires a node property to be present.
func (d *Database) CreateExistenceConstraint(ctx context.Context, name, label, property string) (*QueryResult, error) {
	query := fmt.Sprintf("CREATE CONSTRAINT %s IF NOT EXISTS FOR (e:%s) REQUIRE e.%s IS NOT NULL",
		name, label, property)
	return d.Query(ctx, query)
}

// DropConstraint drops a constraint by name.
func (d *Database) DropConstraint(ctx context.Context, name string) (*QueryResult, error) {
	return d.Query(ctx, fmt.Sprintf("DROP CONSTRAINT %s IF EXISTS", name))
}

// propertyList renders properties as "e.prop1, e.prop2".
func propertyList(properties []string) string {
	parts := make([]string, len(properties))
	for i, p := range properties {
		parts[i] = "e." + p
	}
	return strings.Join(parts, ", ")
}

// String returns a string representation of the database handle.
func (d *Database) String() string {
	return fmt.Sprintf("Database<%s>", d.name)
}
