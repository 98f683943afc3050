package models

// MutationResult reports the outcome of a single write statement.
// ID is only set by inserts. Changes is the number of rows the statement
// touched; updates and deletes of a missing id report 0 without an error.
type MutationResult struct {
	ID      int64 `json:"id,omitempty" example:"1"`
	Changes int64 `json:"changes" example:"1"`
}
