// Package neohttp provides a Go client for Neo4j-compatible graph
// databases exposed over the HTTP transactional statement endpoint.
//
// # Quick Start
//
// Connect and execute queries:
//
//	ctx := context.Background()
//
//	// Connect to the server
//	client, err := neohttp.Connect(ctx, &neohttp.Options{
//	    URL:      "http://localhost:7474",
//	    Username: "neo4j",
//	    Password: "secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Get a handle on the default database
//	db := client.Database("")
//
//	// Create data
//	_, err = db.Query(ctx, `
//	    CREATE (alice:Person {name: 'Alice', age: 30})
//	    CREATE (bob:Person {name: 'Bob', age: 25})
//	    CREATE (alice)-[:KNOWS]->(bob)
//	`)
//
//	// Query with parameters
//	result, err := db.Query(ctx,
//	    "MATCH (p:Person) WHERE p.age > $minAge RETURN p",
//	    &neohttp.QueryOptions{
//	        Params: map[string]interface{}{"minAge": 20},
//	    },
//	)
//
//	// Process results
//	for _, row := range result.Rows {
//	    node := row["p"].(*neohttp.Node)
//	    fmt.Printf("%s is %d years old\n",
//	        node.Properties["name"], node.Properties["age"])
//	}
//
// # Transactional Batches
//
// [Database.Batch] submits an ordered set of statements in one round
// trip with all-or-nothing commit semantics. On success the results are
// index-aligned with the statements; on any failure the transaction
// rolls back and no results are delivered.
//
// # Data Types
//
// Query results contain Go representations of graph values:
//
//   - [Node]: graph nodes with labels and properties
//   - [Relationship]: typed edges with endpoint identities
//   - [Path]: alternating sequences of nodes and relationships
//
// Lean mode ([QueryOptions.Lean], [Statement.Lean]) strips entity
// metadata and returns bare property maps instead.
//
// # Error Handling
//
// Every failure is an [Error] with exactly one [Kind], so callers can
// branch on transport, timeout, authentication, client-request,
// server-internal, and protocol failures without parsing messages.
//
// # Thread Safety
//
// All types in this package are safe for concurrent use.
package neohttp
