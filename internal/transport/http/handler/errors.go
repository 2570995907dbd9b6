package handler

const (
	errInternalServer     = "Internal server error"
	errInvalidCredentials = "Invalid email or password"
	errEmailTaken         = "User with this email already exists"
	errTokenInvalid       = "Token is invalid or expired"
	errEmailNotVerified   = "Please verify your email address before logging in"
	errUserNotFound       = "User not found"
	errCityNotFound       = "City not found"
)
