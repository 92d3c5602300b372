package commands

import "errors"

// CreateSnippetCommand captures a new snippet. The cluster label is not set
// at capture time; the external classifier assigns it asynchronously.
type CreateSnippetCommand struct {
	SnippetID string `json:"snippet_id" validate:"omitempty,uuid"`
	UserID    string `json:"user_id" validate:"required"`
	Content   string `json:"content" validate:"required,min=1,max=10000"`
	Type      string `json:"type" validate:"omitempty,oneof=note goal"`
}

// Validate validates the command
func (c CreateSnippetCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("userID is required")
	}
	if c.Content == "" {
		return errors.New("content is required")
	}
	return nil
}

// CreateSnippetResult carries the identifier of the captured snippet
type CreateSnippetResult struct {
	SnippetID string `json:"snippet_id"`
}
