package user

import "time"

const (
	DefaultName   = "Jacques-Yves Cousteau"
	DefaultAbout  = "Explorer"
	DefaultAvatar = "https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png"
)

// User is the outbound profile. It has no password field at all, so no
// response path can leak the hash.
type User struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	About     string    `json:"about"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Credentials is only ever read on the login path.
type Credentials struct {
	ID           string
	PasswordHash string
}

type CreateParams struct {
	Email        string `validate:"required,email"`
	PasswordHash string `validate:"required"`
	Name         string `validate:"min=2,max=30"`
	About        string `validate:"min=2,max=30"`
	Avatar       string `validate:"httpurl"`
}

// WithDefaults fills the optional profile fields.
func (p CreateParams) WithDefaults() CreateParams {
	if p.Name == "" {
		p.Name = DefaultName
	}
	if p.About == "" {
		p.About = DefaultAbout
	}
	if p.Avatar == "" {
		p.Avatar = DefaultAvatar
	}
	return p
}

// nil fields are left untouched
type UpdateParams struct {
	Name   *string `validate:"omitempty,min=2,max=30"`
	About  *string `validate:"omitempty,min=2,max=30"`
	Avatar *string `validate:"omitempty,httpurl"`
}

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"omitempty,min=2,max=30"`
	About    string `json:"about" binding:"omitempty,min=2,max=30"`
	Avatar   string `json:"avatar" binding:"omitempty,httpurl"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=30"`
	About *string `json:"about" binding:"omitempty,min=2,max=30"`
}

type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required,httpurl"`
}
