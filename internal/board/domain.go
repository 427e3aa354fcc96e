package board

import "time"

// Board is a top-level post. Owner is the username of the creating
// principal and never changes after creation.
type Board struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentView is the nested comment representation embedded in a board
// detail response. Comments are fetched by parent-board-id, not held as a
// live collection on the board.
type CommentView struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
