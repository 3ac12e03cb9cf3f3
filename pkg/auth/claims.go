package auth

import (
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Role   enums.UserRole
	Status enums.UserStatus
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to clients. Role and
// profile status travel in the token so middleware can gate requests without
// a profile read; a status flip takes effect on the next login/refresh.
type AccessTokenClaims struct {
	UserID uuid.UUID        `json:"user_id"`
	Role   enums.UserRole   `json:"role"`
	Status enums.UserStatus `json:"status"`
	jwt.RegisteredClaims
}
