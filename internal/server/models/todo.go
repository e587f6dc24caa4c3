package models

// Todo is a task row. OwnerID always references an existing user.
type Todo struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description string
	Priority    int
	Complete    bool
}
