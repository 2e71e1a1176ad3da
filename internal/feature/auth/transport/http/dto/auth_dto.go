// Package dto defines request payloads for the auth endpoints.
package dto

// LoginReq is the request body for POST /login.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
