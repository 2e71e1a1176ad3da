// Package dto defines request payloads for the user-directory endpoints.
package dto

// RegisterReq is the multipart form for POST /register. The avatar
// file part is read separately by the handler.
type RegisterReq struct {
	Name                 string `form:"name" binding:"required"`
	Username             string `form:"username" binding:"required"`
	Email                string `form:"email" binding:"required,email"`
	Password             string `form:"password" binding:"required,min=6,max=254"`
	PasswordConfirmation string `form:"password_confirmation" binding:"required,eqfield=Password"`
}

// UpdateUserReq is the request body for PUT /users/:id.
type UpdateUserReq struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// UpdatePasswordReq is the request body for PATCH /users/:id/update-password.
type UpdatePasswordReq struct {
	Password             string `json:"password" binding:"required,min=6,max=254"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}
