package user

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Patch carries a partial update; nil fields keep their current value.
type Patch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
