package domain

import (
	"errors"
	"time"
)

var ErrBlogNotFound = errors.New("blog not found")

type Blog struct {
	ID          string
	Title       string
	Description string
	Content     *string
	ImageURL    *string
	Category    string
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type BlogPatch struct {
	Title       *string
	Description *string
	Content     *string
	ImageURL    *string
	Category    *string
	IsPublished *bool
}
