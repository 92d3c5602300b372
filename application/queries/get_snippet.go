package queries

import "errors"

// GetSnippetQuery requests a single snippet by ID
type GetSnippetQuery struct {
	UserID    string `json:"user_id"`
	SnippetID string `json:"snippet_id"`
}

// Validate validates the query
func (q GetSnippetQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("userID is required")
	}
	if q.SnippetID == "" {
		return errors.New("snippetID is required")
	}
	return nil
}

// GetSnippetResult is the single-snippet read model
type GetSnippetResult struct {
	SnippetView
}
