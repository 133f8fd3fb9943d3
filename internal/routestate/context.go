// Package routestate implements the Route and Solution State types: the
// ordered per-vehicle step sequence with its prefix/suffix evaluation
// caches, and the collection of routes plus unassigned tasks that a
// construction heuristic or local-search operator mutates (spec §3, §4.2,
// §9 Route caches).
package routestate

import (
	"strconv"

	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/oracle"
)

// Context is the immutable, shared-by-reference data every Route needs
// to evaluate itself: the cost oracle and a task lookup table. It is
// built once per solve and never mutated, so every worker goroutine can
// hold the same pointer without locking (§5 Concurrency).
type Context struct {
	Oracle     *oracle.Oracle
	Tasks      map[uint64]*model.Task
	AmountSize int
}

// NewContext builds a Context from a fully ingested Input.
func NewContext(in *model.Input, o *oracle.Oracle) *Context {
	return &Context{Oracle: o, Tasks: in.TaskByID(), AmountSize: in.AmountSize}
}

func (c *Context) task(id uint64) *model.Task {
	t, ok := c.Tasks[id]
	if !ok {
		panic("routestate: unknown task id " + strconv.FormatUint(id, 10))
	}
	return t
}
