package neohttp_test

import (
	"context"
	"fmt"
	"log"

	neohttp "github.com/neohttp/neohttp-go"
)

func Example() {
	ctx := context.Background()

	// Connect to the server
	client, err := neohttp.Connect(ctx, &neohttp.Options{
		URL:      "http://localhost:7474",
		Username: "neo4j",
		Password: "secret",
	})
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	db := client.Database("")

	// Create nodes and relationships
	_, err = db.Query(ctx, `
		CREATE (alice:Person {name: 'Alice', age: 30})
		CREATE (bob:Person {name: 'Bob', age: 25})
		CREATE (alice)-[:KNOWS]->(bob)
	`)
	if err != nil {
		log.Fatal(err)
	}

	// Query the graph
	result, err := db.Query(ctx, "MATCH (p:Person) RETURN p.name AS name, p.age AS age")
	if err != nil {
		log.Fatal(err)
	}

	for _, row := range result.Rows {
		fmt.Printf("%s is %v years old\n", row["name"], row["age"])
	}
}

func ExampleDatabase_Query_withParams() {
	ctx := context.Background()

	client, _ := neohttp.Connect(ctx, &neohttp.Options{URL: "http://localhost:7474"})
	defer client.Close()

	db := client.Database("")

	// Query with parameters
	result, _ := db.Query(ctx,
		"MATCH (p:Person) WHERE p.age > $minAge RETURN p.name AS name",
		&neohttp.QueryOptions{
			Params: map[string]interface{}{
				"minAge": 21,
			},
		},
	)

	for _, row := range result.Rows {
		fmt.Println(row["name"])
	}
}

func ExampleDatabase_Batch() {
	ctx := context.Background()

	client, _ := neohttp.Connect(ctx, &neohttp.Options{URL: "http://localhost:7474"})
	defer client.Close()

	// All statements commit together or not at all.
	results, err := client.Database("").Batch(ctx, []neohttp.Statement{
		{Text: "CREATE (a:Account {id: $id})", Params: map[string]interface{}{"id": 1}},
		{Text: "CREATE (a:Account {id: $id})", Params: map[string]interface{}{"id": 2}},
		{Text: "MATCH (a:Account) RETURN count(a) AS total"},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(results[2].Rows[0]["total"])
}

func ExampleDatabase_Query_lean() {
	ctx := context.Background()

	client, _ := neohttp.Connect(ctx, &neohttp.Options{URL: "http://localhost:7474"})
	defer client.Close()

	// Lean mode returns bare property maps instead of entities.
	result, _ := client.Database("").Query(ctx,
		"MATCH (p:Person) RETURN p",
		&neohttp.QueryOptions{Lean: true},
	)

	for _, row := range result.Rows {
		props := row["p"].(map[string]interface{})
		fmt.Println(props["name"])
	}
}

func ExampleClient_Do() {
	ctx := context.Background()

	client, _ := neohttp.Connect(ctx, &neohttp.Options{URL: "http://localhost:7474"})
	defer client.Close()

	// Talk to a non-statement endpoint, such as a server plugin.
	body, _ := client.Do(ctx, "GET", "/db/data/labels", nil, nil)
	fmt.Println(body)
}

func ExampleClient_ListDatabases() {
	ctx := context.Background()

	client, _ := neohttp.Connect(ctx, &neohttp.Options{URL: "http://localhost:7474"})
	defer client.Close()

	databases, _ := client.ListDatabases(ctx)
	fmt.Println("Available databases:", databases)
}
