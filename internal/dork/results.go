package dork

import "github.com/FranksOps/dorkhound/internal/engine"

// ResultSet aggregates per-query results while preserving the order queries
// were first seen. The mapping is keyed by the literal query string, so a
// duplicate query overwrites its earlier entry but keeps its original
// position.
type ResultSet struct {
	order   []string
	results map[string][]engine.Result
}

// NewResultSet creates an empty result set.
func NewResultSet() *ResultSet {
	return &ResultSet{
		results: make(map[string][]engine.Result),
	}
}

// Add records the results for a query, overwriting any previous entry.
func (rs *ResultSet) Add(query string, results []engine.Result) {
	if _, seen := rs.results[query]; !seen {
		rs.order = append(rs.order, query)
	}
	rs.results[query] = results
}

// Queries returns the distinct queries in first-seen order.
func (rs *ResultSet) Queries() []string {
	out := make([]string, len(rs.order))
	copy(out, rs.order)
	return out
}

// Get returns the results for a query.
func (rs *ResultSet) Get(query string) []engine.Result {
	return rs.results[query]
}

// Len returns the number of distinct queries.
func (rs *ResultSet) Len() int {
	return len(rs.order)
}

// Total returns the number of results across all queries.
func (rs *ResultSet) Total() int {
	n := 0
	for _, results := range rs.results {
		n += len(results)
	}
	return n
}

// Map returns a copy of the query-to-results mapping. Mutating the returned
// map does not affect the set.
func (rs *ResultSet) Map() map[string][]engine.Result {
	out := make(map[string][]engine.Result, len(rs.results))
	for query, results := range rs.results {
		out[query] = results
	}
	return out
}
