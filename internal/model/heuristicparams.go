package model

// HeuristicParameters is one (HEURISTIC, INIT, regret_coeff, SORT) tuple
// the search driver assigns to a worker (§4.4).
type HeuristicParameters struct {
	Heuristic   Heuristic
	Init        Init
	RegretCoeff float64
	Sort        Sort
}

// NewInitRoutesParameters builds the parameter tuple reserved for runs
// that must honor user-pinned forced step sequences; Init/RegretCoeff
// are meaningless in that mode.
func NewInitRoutesParameters() HeuristicParameters {
	return HeuristicParameters{Heuristic: HeuristicInitRoutes, Init: InitNone, Sort: SortAvailability}
}
