package domain

import "time"

type CommentId = int64

type Comment struct {
	Id             CommentId `json:"id"`
	PostId         PostId    `json:"post_id"`
	Content        string    `json:"content"`
	AuthorId       UserId    `json:"author_id"`
	AuthorNickname string    `json:"author_nickname"`
	CreatedAt      time.Time `json:"created_at"`
}

type CommentCreationData struct {
	PostId         PostId
	Content        string
	AuthorId       UserId
	AuthorNickname string
}
