package domain

import (
	"errors"
	"time"
)

var (
	ErrContactNotFound   = errors.New("contact response not found")
	ErrContactIncomplete = errors.New("username, email and message are required")
)

// ContactResponse is a message left through the public contact form.
type ContactResponse struct {
	ID         string
	Username   string
	Email      string
	Message    string
	IsArchived bool
	IsRead     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ContactPatch struct {
	IsRead     *bool
	IsArchived *bool
}
