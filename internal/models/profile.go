package models

// Profile mirrors the session user. ID is the user id.
type Profile struct {
	ID        string  `json:"id"`
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

// UserMetadata is the free-form metadata the session provider attaches to a user.
type UserMetadata struct {
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// User is the authenticated user resolved from the current session.
type User struct {
	ID       string       `json:"id"`
	Email    string       `json:"email,omitempty"`
	Metadata UserMetadata `json:"user_metadata"`
}

// NewProfile derives a profile row from session metadata. Empty metadata fields become nil.
func NewProfile(u User) Profile {
	p := Profile{ID: u.ID}
	if u.Metadata.FullName != "" {
		name := u.Metadata.FullName
		p.FullName = &name
	}
	if u.Metadata.AvatarURL != "" {
		avatar := u.Metadata.AvatarURL
		p.AvatarURL = &avatar
	}
	return p
}
