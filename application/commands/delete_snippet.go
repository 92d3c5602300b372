package commands

import "errors"

// DeleteSnippetCommand removes a snippet and every edge touching it
type DeleteSnippetCommand struct {
	UserID    string `json:"user_id" validate:"required"`
	SnippetID string `json:"snippet_id" validate:"required,uuid"`
}

// Validate validates the command
func (c DeleteSnippetCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("userID is required")
	}
	if c.SnippetID == "" {
		return errors.New("snippetID is required")
	}
	return nil
}
