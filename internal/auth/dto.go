package auth

// SignupDTO carries the fields collected by the signup form. ImageURL may be
// empty, in which case the account gets the stock picture.
type SignupDTO struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=2,max=64"`
	Password string `validate:"required,min=6"`
	ImageURL string `validate:"omitempty,url"`
}

// LoginDTO carries the login form credentials.
type LoginDTO struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}
