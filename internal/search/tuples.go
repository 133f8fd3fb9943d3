package search

import (
	"github.com/fleetroute/vrpsolver/internal/config"
	"github.com/fleetroute/vrpsolver/internal/model"
)

// candidateTuples is the fixed, priority-ordered pool of heuristic
// parameter tuples the driver draws from (§4.4/§4.7). Earlier entries
// are cheaper, more reliable combinations; later ones trade construction
// cost for a better shot at a structurally different local optimum.
var candidateTuples = []model.HeuristicParameters{
	{Heuristic: model.HeuristicBasic, Init: model.InitNearest, RegretCoeff: 1, Sort: model.SortAvailability},
	{Heuristic: model.HeuristicDynamic, Init: model.InitNone, RegretCoeff: 0, Sort: model.SortAvailability},
	{Heuristic: model.HeuristicBasic, Init: model.InitFurthest, RegretCoeff: 1, Sort: model.SortCost},
	{Heuristic: model.HeuristicBasic, Init: model.InitHigherAmount, RegretCoeff: 2, Sort: model.SortAvailability},
	{Heuristic: model.HeuristicDynamic, Init: model.InitNone, RegretCoeff: 0, Sort: model.SortCost},
	{Heuristic: model.HeuristicBasic, Init: model.InitEarliestDeadline, RegretCoeff: 1, Sort: model.SortAvailability},
	{Heuristic: model.HeuristicBasic, Init: model.InitNearest, RegretCoeff: 0.5, Sort: model.SortCost},
	{Heuristic: model.HeuristicBasic, Init: model.InitHigherAmount, RegretCoeff: 1.5, Sort: model.SortCost},
}

// explorationLevelTuples is the exploration_level_map of §4.7: how many
// entries of candidateTuples a given exploration level L (0..5) draws
// from before the driver clamps K to the configured thread count.
// Level 0 runs a single deterministic construction; level 5 (the
// default) uses the whole pool. There is no authoritative table to
// follow here, so this one is chosen to grow roughly geometrically,
// matching how exploration level is described as a coarse search-effort
// dial rather than a precise parameter.
var explorationLevelTuples = [model.MaxExplorationLevel + 1]int{0: 1, 1: 2, 2: 3, 3: 4, 4: 6, 5: 8}

// Tuples returns the K parameter tuples a run at exploration level
// level should seed, K = min(explorationLevelTuples[level], threads),
// per §4.7. level is clamped into [0, MaxExplorationLevel] and threads
// into [1, len(candidateTuples)].
func Tuples(level, threads int) []model.HeuristicParameters {
	return tuplesFromTable(level, threads, nil)
}

// TuplesFromConfig is Tuples, but consulting cfg.ExplorationLevels first
// and falling back to the built-in table for any level cfg leaves
// unset — a config file overriding level 5 alone still gets the
// built-in counts for levels 0-4.
func TuplesFromConfig(cfg config.SolverConfig, level, threads int) []model.HeuristicParameters {
	return tuplesFromTable(level, threads, cfg.ExplorationLevels)
}

func tuplesFromTable(level, threads int, overrides map[int]int) []model.HeuristicParameters {
	if level < 0 {
		level = 0
	}
	if level > model.MaxExplorationLevel {
		level = model.MaxExplorationLevel
	}
	if threads < 1 {
		threads = 1
	}
	k, ok := overrides[level]
	if !ok {
		k = explorationLevelTuples[level]
	}
	if threads < k {
		k = threads
	}
	if k > len(candidateTuples) {
		k = len(candidateTuples)
	}
	if k < 0 {
		k = 0
	}
	out := make([]model.HeuristicParameters, k)
	copy(out, candidateTuples[:k])
	return out
}
