package domain

// Claims is the identity carried by a session token.
type Claims struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Role  string `json:"role"`
}

// ClaimsFor builds the token claims of an account.
func ClaimsFor(a *Account) Claims {
	return Claims{ID: a.ID, Login: a.Login, Role: a.Role}
}

// Authorize allows only when claims are present and carry requiredRole.
func Authorize(claims *Claims, requiredRole string) error {
	if claims == nil || claims.Role != requiredRole {
		return ErrForbidden
	}
	return nil
}

// AuthorizeSelf allows admins and the owner of accountID.
func AuthorizeSelf(claims *Claims, accountID int64) error {
	if claims == nil {
		return ErrForbidden
	}
	if claims.Role == RoleAdmin || claims.ID == accountID {
		return nil
	}
	return ErrForbidden
}
