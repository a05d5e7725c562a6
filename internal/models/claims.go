package models

import "github.com/golang-jwt/jwt/v5"

// Claims - полезная нагрузка access-токена.
// Subject содержит email пользователя (как в исходном OAuth2 флоу).
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}
