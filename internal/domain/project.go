package domain

import (
	"errors"
	"time"
)

var ErrProjectNotFound = errors.New("project not found")

type Project struct {
	ID               string
	Title            string
	QuickDescription string
	FullDescription  *string
	YouTubeLink      *string
	ProjectURL       *string
	ImageURL         *string
	Category         string
	IsFeatured       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ProjectPatch carries the fields of a partial update; nil means unchanged.
type ProjectPatch struct {
	Title            *string
	QuickDescription *string
	FullDescription  *string
	YouTubeLink      *string
	ProjectURL       *string
	ImageURL         *string
	Category         *string
	IsFeatured       *bool
}
