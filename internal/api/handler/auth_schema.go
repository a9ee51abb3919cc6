package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type signupRequest struct {
	Name     string `json:"name"        validate:"required"`
	Phone    string `json:"phone"       validate:"required,e164"`
	Email    string `json:"email"       validate:"required,email"`
	Password string `json:"password"    validate:"required,min=5"`
	// ProductKey is required when registering with a role other than BUYER.
	ProductKey string `json:"product_key,omitempty"`
}

type signinRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type productKeyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required,oneof=REALTOR ADMIN realtor admin"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type productKeyResponse struct {
	ProductKey string `json:"product_key"`
}

type identityResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
