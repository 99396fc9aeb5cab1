package domain

import "time"

type PostId = int64

type Post struct {
	Id             PostId    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AuthorId       UserId    `json:"author_id"`
	AuthorNickname string    `json:"author_nickname"`
	ImageURL       *string   `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	Views          int64     `json:"views"`
}

// to iterate thru layers: handler -> service -> storage
type PostCreationData struct {
	Title          string
	Content        string
	AuthorId       UserId
	AuthorNickname string
	ImageURL       *string
}

// PostUpdateData is a partial update: a nil ImageURL leaves the stored
// image_url untouched.
type PostUpdateData struct {
	Title    string
	Content  string
	ImageURL *string
}
