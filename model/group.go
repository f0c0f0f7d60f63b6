package model

type Group struct {
	Id          int64  `db:"id,omitempty" json:"id"`
	Slug        string `db:"slug" json:"slug"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
}
