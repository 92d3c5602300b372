package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// SnippetID is a value object representing a unique snippet identifier
// Value objects are immutable and have no identity beyond their value
type SnippetID struct {
	value string
}

// NewSnippetID creates a new random SnippetID
func NewSnippetID() SnippetID {
	return SnippetID{value: uuid.New().String()}
}

// NewSnippetIDFromString creates a SnippetID from an existing string
func NewSnippetIDFromString(id string) (SnippetID, error) {
	if id == "" {
		return SnippetID{}, errors.New("snippet ID cannot be empty")
	}
	if !isValidUUID(id) {
		return SnippetID{}, errors.New("snippet ID must be a valid UUID")
	}
	return SnippetID{value: id}, nil
}

// String returns the string representation of the SnippetID
func (id SnippetID) String() string {
	return id.value
}

// Equals checks if two SnippetIDs are equal
func (id SnippetID) Equals(other SnippetID) bool {
	return id.value == other.value
}

// IsZero checks if the SnippetID is the zero value
func (id SnippetID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id SnippetID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *SnippetID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("SnippetID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}

// isValidUUID validates if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
