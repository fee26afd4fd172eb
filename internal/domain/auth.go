package domain

// AuthPayload is the identity carried by a verified bearer token.
type AuthPayload struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
