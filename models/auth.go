package models

// LoginRequest for POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// MessageResponse is the generic success body
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}
