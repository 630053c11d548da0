// Package harness runs YAML scenarios against the string service.
//
// A scenario seeds the store with setup values, then runs a flow of
// operations (create, get, delete, list, query). Each step may carry an
// expect clause naming the outcome and, for listings, the count and values
// returned. Assertions are evaluated against the trace and the final store
// contents once the flow completes.
//
// Every run gets a fresh in-memory store and a deterministic clock, so two
// runs of the same scenario produce identical traces. Traces can be compared
// against golden files with RunWithGolden or the snapshot helpers.
//
// Example scenario:
//
//	name: palindrome_listing
//	description: Palindromes are listed in insertion order
//	setup: [racecar, hello world, level]
//	flow:
//	  - op: list
//	    filters: {is_palindrome: true}
//	    expect:
//	      outcome: ok
//	      count: 2
//	      values: [racecar, level]
//	assertions:
//	  - type: final_count
//	    count: 3
package harness
