package model

import "github.com/deppfellow/ads-api/internal/validation"

// User is a row of the users table. Password holds the bcrypt hash.
type User struct {
	ID       int64
	Username string
	Email    string
	Password string
}

// UserResponse is the public projection of a User; the password never leaves the service.
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Public() UserResponse {
	return UserResponse{
		Username: u.Username,
		Email:    u.Email,
	}
}

// CreateUserPayload is the body of POST /user.
//
// bcrypt rejects passwords longer than 72 bytes, hence the byte limit.
type CreateUserPayload struct {
	Username string `json:"username" validate:"required,max=60"`
	Email    string `json:"email" validate:"required,max=100"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

func (p *CreateUserPayload) Validate() error {
	return validation.Struct(p)
}

// UpdateUserPayload is the body of PATCH /user/:id.
type UpdateUserPayload struct {
	ID       int64   `param:"id" json:"-"`
	Username *string `json:"username" validate:"omitempty,max=60"`
	Email    *string `json:"email" validate:"omitempty,max=100"`
	Password *string `json:"password" validate:"omitempty,maxbytes=72"`
}

func (p *UpdateUserPayload) Validate() error {
	return validation.Struct(p)
}

// ApplyTo copies every non-empty field onto u. Absent, null and empty
// values leave the stored value untouched. A new password goes through
// hashPassword before it is stored.
func (p *UpdateUserPayload) ApplyTo(u *User, hashPassword func(string) (string, error)) error {
	if nonEmpty(p.Username) {
		u.Username = *p.Username
	}
	if nonEmpty(p.Email) {
		u.Email = *p.Email
	}
	if nonEmpty(p.Password) {
		hashed, err := hashPassword(*p.Password)
		if err != nil {
			return err
		}
		u.Password = hashed
	}
	return nil
}
