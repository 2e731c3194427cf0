package contract

type SignupRequest struct {
	Username  string `json:"username" form:"username" validate:"required,min=1,max=150,nospaces"`
	Password  string `json:"password" form:"password" validate:"required,max=128"`
	Password2 string `json:"password2" form:"password2" validate:"required,eqfield=Password"`
	FirstName string `json:"first_name" form:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" form:"last_name" validate:"max=150"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// SessionResponse is returned by signup and login: the caller leaves
// authenticated, carrying the session token.
type SessionResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}
