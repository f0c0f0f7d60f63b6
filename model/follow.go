package model

// Follow is the directed edge user -> author. A (user, author) pair is stored at most once.
type Follow struct {
	UserId   string `db:"user_id" json:"userId"`
	AuthorId string `db:"author_id" json:"authorId"`
}
