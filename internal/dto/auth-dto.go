package dto

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserPublicDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// LoginResponseDTO answers a successful login; ExpiresIn is the token lifetime in seconds.
type LoginResponseDTO struct {
	Success   bool          `json:"success"`
	Token     string        `json:"token"`
	ExpiresIn int64         `json:"expiresIn"`
	User      UserPublicDTO `json:"user"`
}

type MeResponseDTO struct {
	Success bool          `json:"success"`
	User    UserPublicDTO `json:"user"`
}

