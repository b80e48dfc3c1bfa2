package models

import "github.com/golang-jwt/jwt/v5"

// Token is an issued or parsed access token. UserID and Login mirror the
// "sub" and "login" claims so callers never re-read the claim set.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	Login string `json:"login,omitempty"`

	SignedString string `json:"-"`
	UserID       int64  `json:"-"`
}

// Actor returns the identity the token was issued to.
func (t *Token) Actor() Actor {
	return Actor{UserID: t.UserID, Login: t.Login}
}
