package entity

import "errors"

var ErrPostNotFound = errors.New("post not found")

type Post struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Filename string `json:"filename,omitempty"`
	Filepath string `json:"filepath,omitempty"`
}

func (p *Post) HasAttachment() bool {
	return p.Filename != ""
}
