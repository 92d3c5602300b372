package commands

import "errors"

// LinkSnippetsCommand creates an edge between two snippets. The link is
// structural and unordered; thread resolution infers direction from the
// endpoint timestamps.
type LinkSnippetsCommand struct {
	UserID   string `json:"user_id" validate:"required"`
	SourceID string `json:"source_id" validate:"required,uuid"`
	TargetID string `json:"target_id" validate:"required,uuid"`
}

// Validate validates the command
func (c LinkSnippetsCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("userID is required")
	}
	if c.SourceID == "" || c.TargetID == "" {
		return errors.New("sourceID and targetID are required")
	}
	if c.SourceID == c.TargetID {
		return errors.New("cannot link a snippet to itself")
	}
	return nil
}
