package model

import "time"

type Role string

const (
	RoleFarmer       Role = "farmer"
	RoleLaborer      Role = "laborer"
	RoleTractorOwner Role = "tractor_owner"
)

func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleLaborer, RoleTractorOwner:
		return true
	}
	return false
}

// Profile is a registered participant. ID is the subject issued by the identity provider.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone,omitempty"`
	Role      Role      `json:"user_type"`
	Location  *string   `json:"location,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	RCNumber  *string   `json:"rc_number,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasRCNumber reports whether the profile carries a tractor registration number.
func (p *Profile) HasRCNumber() bool {
	return p.RCNumber != nil && *p.RCNumber != ""
}

// RegisterReq represents profile registration payload
type RegisterReq struct {
	Email     string  `json:"email" validate:"required,email"`
	FullName  string  `json:"full_name" validate:"required"`
	Phone     *string `json:"phone"`
	Role      Role    `json:"user_type" validate:"required,oneof=farmer laborer tractor_owner"`
	Location  *string `json:"location"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
	RCNumber  *string `json:"rc_number"`
}

// UpdateProfileReq carries the owner-editable fields. Role cannot change after registration.
type UpdateProfileReq struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=1"`
	Phone     *string `json:"phone"`
	Location  *string `json:"location"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
	RCNumber  *string `json:"rc_number"`
}
