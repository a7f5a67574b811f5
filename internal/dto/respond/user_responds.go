// Package respond defines the HTTP response payloads.
// This file holds account and auth views.
package respond

// LoginRespond carries the token pair and the signed-in profile.
type LoginRespond struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         UserRespond `json:"user"`
}

// RefreshTokenRespond carries a fresh access token.
type RefreshTokenRespond struct {
	AccessToken string `json:"accessToken"`
}

// UserRespond is the public profile view.
type UserRespond struct {
	UserId         string   `json:"userId"`
	Email          string   `json:"email"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	DisplayName    string   `json:"displayName"`
	Role           string   `json:"role"`
	Bio            string   `json:"bio,omitempty"`
	Specialization []string `json:"specialization,omitempty"`
}
