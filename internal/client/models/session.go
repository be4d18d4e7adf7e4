package models

import "time"

type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Session is the proof that a user is signed in.
type Session struct {
	AccessToken  string `masq:"secret"`
	RefreshToken string `masq:"secret"`
	ExpiresAt    time.Time
	User         User
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
