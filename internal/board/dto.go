package board

// UpsertRequest is the request body for creating or updating a board.
type UpsertRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// DetailResponse is a board together with its comments, newest comment
// first.
type DetailResponse struct {
	Board
	Comments []CommentView `json:"comments"`
}
