package queries

import "errors"

// ListSnippetsQuery requests the user's snippets, newest first
type ListSnippetsQuery struct {
	UserID string `json:"user_id"`
	Limit  int    `json:"limit"`
}

// Validate validates the query
func (q ListSnippetsQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("userID is required")
	}
	if q.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	return nil
}

// ListSnippetsResult is the snippet listing read model
type ListSnippetsResult struct {
	Snippets []SnippetView `json:"snippets"`
	Count    int           `json:"count"`
}
