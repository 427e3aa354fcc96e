package comment

import "time"

// Comment belongs to exactly one board and one owning user. Owner is
// immutable after creation.
type Comment struct {
	ID        int64     `json:"id"`
	BoardID   int64     `json:"board_id"`
	Content   string    `json:"content"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
