package config

// MotionBudget caps how many related snippets each axis of a thread context
// may carry. The UI animates one spoke per node, so the budget is a render
// constraint as much as a query constraint.
type MotionBudget struct {
	MaxUpstreamNodes   int
	MaxDownstreamNodes int
	MaxLateralNodes    int
}

// DefaultMotionBudget returns the default per-axis node budget
func DefaultMotionBudget() MotionBudget {
	return MotionBudget{
		MaxUpstreamNodes:   5,
		MaxDownstreamNodes: 5,
		MaxLateralNodes:    5,
	}
}

// DomainConfig holds configurable business rules and constraints
type DomainConfig struct {
	// Snippet constraints
	MaxContentLength int
	MinContentLength int

	// Edge constraints
	AllowSelfLinks      bool
	AllowDuplicateEdges bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxContentLength:    10000,
		MinContentLength:    1,
		AllowSelfLinks:      false,
		AllowDuplicateEdges: false,
	}
}
