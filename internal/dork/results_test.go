package dork

import (
	"testing"

	"github.com/FranksOps/dorkhound/internal/engine"
)

func TestResultSet_Total(t *testing.T) {
	rs := NewResultSet()
	rs.Add("a", []engine.Result{{Title: "1"}, {Title: "2"}})
	rs.Add("b", nil)
	rs.Add("c", []engine.Result{{Title: "3"}})

	if rs.Total() != 3 {
		t.Errorf("expected total of 3, got %d", rs.Total())
	}
	if rs.Len() != 3 {
		t.Errorf("expected 3 queries, got %d", rs.Len())
	}
}

func TestResultSet_MapIsACopy(t *testing.T) {
	rs := NewResultSet()
	rs.Add("a", []engine.Result{{Title: "1"}})

	m := rs.Map()
	delete(m, "a")
	m["b"] = nil

	if rs.Len() != 1 || len(rs.Get("a")) != 1 {
		t.Error("mutating the returned map leaked into the set")
	}
}

func TestResultSet_QueriesIsACopy(t *testing.T) {
	rs := NewResultSet()
	rs.Add("a", nil)
	rs.Add("b", nil)

	queries := rs.Queries()
	queries[0] = "mutated"

	if rs.Queries()[0] != "a" {
		t.Error("mutating the returned slice leaked into the set")
	}
}
