package domain

import "time"

type Social struct {
	Twitter  string `json:"twitter,omitempty"`
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	YouTube  string `json:"youtube,omitempty"`
}

// Profile is the single owner record shown on the public page.
type Profile struct {
	ID        int64
	Name      string
	Bio       *string
	AvatarURL *string
	Social    Social
	CVURL     *string
	Contact   *string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
