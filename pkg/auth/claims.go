// Package auth provides JWT issuing/validation and the gRPC auth interceptor
// for the contract engine.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the JWT claims for the Meqenet platform.
type Claims struct {
	jwt.RegisteredClaims
	UserID     uuid.UUID `json:"user_id"`
	MerchantID uuid.UUID `json:"merchant_id,omitempty"`
	Roles      []string  `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Role constants.
const (
	RoleAdmin     = "admin"
	RoleOperator  = "operator"
	RoleMerchant  = "merchant"
	RoleCustomer  = "customer"
	RoleAPIClient = "api_client"
)
