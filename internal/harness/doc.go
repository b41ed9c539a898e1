// Package harness runs query regression scenarios.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: wood_queries
//	description: "Partial and exact wood lookups"
//	inventory: ../inventories/farm.yaml   # or inline under data:
//	queries:
//	  - query: "(wood !stone)"
//	    expect: [Wood, Driftwood, Hardwood]
//	  - query: "{name}~wood"
//	    mode: exact
//	    expect: [Wood]
//	    containers: [Shed Chest]
//	  - query: "{quality}~"
//	    invalid: true
//
// Inline inventories use the same shape as inventory YAML files:
//
//	data:
//	  items:
//	    - {name: Wood, quantity: 5, tags: [wood]}
//	  containers:
//	    - {id: shed, label: Shed Chest, items: [{name: Stone}]}
//
// # Execution
//
// Every query runs twice: through an engine session over the in-memory
// inventory, and as compiled SQL over a fresh in-memory SQLite store holding
// the same inventory. A disagreement between the two is a run error, not an
// assertion failure. Queries that do not parse match nothing.
//
// # Golden Files
//
// RunWithGolden stores each scenario's results under
// testdata/golden/{name}.golden; run the tests with -update to regenerate.
package harness
