// api/model/user.go
package model

// UserClaims carries the identity extracted from a verified bearer token.
type UserClaims struct {
	UserID   string `json:"sub"`
	TenantID string `json:"tid"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
}
