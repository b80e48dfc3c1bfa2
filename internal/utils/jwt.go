package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-project-tracker/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenSettings = errors.New("token issuer, duration and sign key are required")
	ErrTokenSubject  = errors.New("token subject is not a user id")
)

// actorClaims is the claim set of every issued token.
type actorClaims struct {
	jwt.RegisteredClaims
	Login string `json:"login,omitempty"`
}

// GenerateJWTToken signs an HS256 token for actor. The subject claim holds
// the user id in decimal and the login travels in a private claim.
//
//	token, err := utils.GenerateJWTToken("tracker", models.Actor{UserID: 42}, time.Hour, "secret")
func GenerateJWTToken(issuer string, actor models.Actor, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, ErrTokenSettings
	}

	issuedAt := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &actorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(actor.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(tokenDuration)),
		},
		Login: actor.Login,
	})

	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("signing token for user %d: %w", actor.UserID, err)
	}

	return models.Token{
		Token:        token,
		SignedString: signed,
		UserID:       actor.UserID,
		Login:        actor.Login,
	}, nil
}

// ValidateAndParseJWTToken checks the signature, algorithm, issuer and expiry
// of tokenString and returns the actor it was issued for.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	var claims actorClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (any, error) { return []byte(tokenSignKey), nil },
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("parsing token: %w", err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return models.Token{}, fmt.Errorf("%w: %q", ErrTokenSubject, claims.Subject)
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: claims.RegisteredClaims,
		SignedString:     tokenString,
		UserID:           userID,
		Login:            claims.Login,
	}, nil
}
