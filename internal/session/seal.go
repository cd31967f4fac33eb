package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sealIssuer = "feedbackgalaxy"

type sealClaims struct {
	Role      string `json:"role"`
	LoginTime string `json:"login"`
	jwt.RegisteredClaims
}

func signSeal(secret []byte, s Session) (string, error) {
	claims := sealClaims{
		Role:      string(s.Role),
		LoginTime: s.LoginTime.Format(time.RFC3339Nano),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   sealIssuer,
			Subject:  s.Username,
			IssuedAt: jwt.NewNumericDate(s.LoginTime),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(secret)
}

// verifySeal checks the seal signature and that it was issued for exactly
// these session fields.
func verifySeal(secret []byte, s Session) error {
	if s.Seal == "" {
		return errors.New("missing seal")
	}
	parsed, err := jwt.ParseWithClaims(s.Seal, &sealClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithIssuer(sealIssuer))
	if err != nil {
		return err
	}
	claims, ok := parsed.Claims.(*sealClaims)
	if !ok || !parsed.Valid {
		return errors.New("invalid seal")
	}
	if claims.Subject != s.Username || claims.Role != string(s.Role) ||
		claims.LoginTime != s.LoginTime.Format(time.RFC3339Nano) {
		return errors.New("seal does not match session")
	}
	return nil
}
