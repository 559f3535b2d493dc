package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims scope a caller to a set of companies. Access checks compare the
// requested company id against CompanyIds.
type Claims struct {
	UserId     int64   `json:"user_id"`
	Username   string  `json:"username"`
	CompanyIds []int64 `json:"company_ids"`
	jwt.RegisteredClaims
}

func (c *Claims) HasCompany(companyID int64) bool {
	for _, id := range c.CompanyIds {
		if id == companyID {
			return true
		}
	}
	return false
}

func GenerateToken(secret []byte, userID int64, username string, companyIDs []int64, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := &Claims{
		UserId:     userID,
		Username:   username,
		CompanyIds: companyIDs,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   username,
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(secret)
	return s, exp, err
}

func ParseToken(secret []byte, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("Invalid Token")
}
