package services

import (
	"context"

	"threadline-backend/domain/core/entities"
	"threadline-backend/domain/core/valueobjects"
)

// snippetQuery is one bounded store read producing candidate nodes
type snippetQuery func(ctx context.Context) ([]*entities.Snippet, error)

// matchCount is the unbounded count used only for the truncation flag
type matchCount func(ctx context.Context) (int, error)

// tierOutcome is the result of one two-tier resolution. FellBack is true
// whenever the fallback branch executed, even if it found nothing.
type tierOutcome struct {
	Nodes    []*entities.Snippet
	FellBack bool
	HasMore  bool
}

// resolveTwoTier runs the primary/fallback/count control flow shared by all
// three relation axes: try the primary strategy, fall back only when it
// returns nothing, then compare the true candidate count against the budget.
// The count query runs regardless of which strategy fired.
func resolveTwoTier(ctx context.Context, focusID valueobjects.SnippetID, budget int, primary, fallback snippetQuery, count matchCount) (tierOutcome, error) {
	out := tierOutcome{}

	nodes, err := primary(ctx)
	if err != nil {
		return out, err
	}

	if len(nodes) == 0 {
		out.FellBack = true
		nodes, err = fallback(ctx)
		if err != nil {
			return out, err
		}
	}

	out.Nodes = sanitizeNodes(nodes, focusID, budget)

	total, err := count(ctx)
	if err != nil {
		return out, err
	}
	out.HasMore = total > budget

	return out, nil
}

// sanitizeNodes enforces the relation group invariants regardless of what
// the store returned: the focus never appears in its own group, identifiers
// are unique, and the sequence never exceeds the budget. Store ordering is
// preserved.
func sanitizeNodes(nodes []*entities.Snippet, focusID valueobjects.SnippetID, budget int) []*entities.Snippet {
	if len(nodes) == 0 {
		return []*entities.Snippet{}
	}

	seen := make(map[string]struct{}, len(nodes))
	out := make([]*entities.Snippet, 0, min(len(nodes), budget))
	for _, node := range nodes {
		if node == nil || node.ID().Equals(focusID) {
			continue
		}
		key := node.ID().String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, node)
		if len(out) >= budget {
			break
		}
	}
	return out
}
