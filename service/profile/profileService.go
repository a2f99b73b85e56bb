package profilesvc

import (
	"context"
	"strings"

	"agrimarket/model"
	profilerepo "agrimarket/repository/profile"
	"agrimarket/util/errs"
)

type Repo = profilerepo.Repo

// Capabilities are the role-derived action flags handed to the UI.
type Capabilities struct {
	CanCreateListing bool              `json:"can_create_listing"`
	CanBook          bool              `json:"can_book"`
	ListingKind      model.ListingKind `json:"listing_kind,omitempty"`
}

type Service interface {
	// Register creates the profile for an authenticated subject. The role is fixed from here on.
	Register(ctx context.Context, subject string, req model.RegisterReq) (*model.Profile, error)
	Get(ctx context.Context, id string) (*model.Profile, error)
	// Update applies owner edits to the actor's own profile.
	Update(ctx context.Context, actor *model.Profile, req model.UpdateProfileReq) (*model.Profile, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Register(ctx context.Context, subject string, req model.RegisterReq) (*model.Profile, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, errs.Forbidden("unauthenticated")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.FullName)
	if email == "" || name == "" {
		return nil, errs.Validation("email and full_name are required")
	}
	if !req.Role.Valid() {
		return nil, errs.Validation("invalid user_type %q", req.Role)
	}

	p := &model.Profile{
		ID:        subject,
		Email:     email,
		FullName:  name,
		Phone:     trimmed(req.Phone),
		Role:      req.Role,
		Location:  trimmed(req.Location),
		Bio:       trimmed(req.Bio),
		AvatarURL: trimmed(req.AvatarURL),
		RCNumber:  trimmed(req.RCNumber),
	}
	if err := s.r.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (*model.Profile, error) {
	return s.r.ByID(ctx, id)
}

func (s *service) Update(ctx context.Context, actor *model.Profile, req model.UpdateProfileReq) (*model.Profile, error) {
	if actor == nil {
		return nil, errs.Forbidden("profile required")
	}
	p, err := s.r.ByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, errs.Validation("full_name must not be blank")
		}
		p.FullName = name
	}
	if req.Phone != nil {
		p.Phone = trimmed(req.Phone)
	}
	if req.Location != nil {
		p.Location = trimmed(req.Location)
	}
	if req.Bio != nil {
		p.Bio = trimmed(req.Bio)
	}
	if req.AvatarURL != nil {
		p.AvatarURL = trimmed(req.AvatarURL)
	}
	if req.RCNumber != nil {
		p.RCNumber = trimmed(req.RCNumber)
	}
	if err := s.r.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CapabilitiesOf answers "what may this profile do" for the presentation layer.
func CapabilitiesOf(p *model.Profile) Capabilities {
	if p == nil {
		return Capabilities{}
	}
	switch p.Role {
	case model.RoleFarmer:
		return Capabilities{CanBook: true}
	case model.RoleLaborer:
		return Capabilities{CanCreateListing: true, ListingKind: model.KindLabor}
	case model.RoleTractorOwner:
		return Capabilities{CanCreateListing: p.HasRCNumber(), ListingKind: model.KindTractor}
	}
	return Capabilities{}
}

// trimmed maps blank optional strings to nil.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
