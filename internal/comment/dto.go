package comment

// CreateRequest is the request body for creating a comment under a board.
type CreateRequest struct {
	BoardID int64  `json:"board_id" validate:"required,gt=0"`
	Content string `json:"content" validate:"required"`
}

// UpdateRequest is the request body for editing a comment.
type UpdateRequest struct {
	Content string `json:"content" validate:"required"`
}
