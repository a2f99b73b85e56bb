package listingsvc

import (
	"context"
	"log/slog"
	"strings"

	"agrimarket/model"
	lrepo "agrimarket/repository/listing"
	"agrimarket/util/errs"
	"agrimarket/util/notify"
)

type Repo = lrepo.Repo

type LaborInput struct {
	Title           string
	Description     string
	Skills          []string
	DailyRate       float64
	ExperienceYears int
	Location        string
}

type TractorInput struct {
	Title        string
	Description  string
	TractorModel string
	Horsepower   *int
	Year         *int
	HourlyRate   float64
	DailyRate    float64
	Location     string
	ImageURL     *string
}

// Mine is the owner's dashboard view; only the slice matching the owner's role is filled.
type Mine struct {
	Labor    []model.LaborListing   `json:"labor"`
	Tractors []model.TractorListing `json:"tractors"`
}

type Service interface {
	// Search: available listings only, newest first, narrowed by text and location.
	ListLabor(ctx context.Context, q, location string) ([]model.LaborListing, error)
	ListTractors(ctx context.Context, q, location string) ([]model.TractorListing, error)

	GetLabor(ctx context.Context, id string) (*model.LaborListing, error)
	GetTractor(ctx context.Context, id string) (*model.TractorListing, error)

	CreateLabor(ctx context.Context, actor *model.Profile, in LaborInput) (*model.LaborListing, error)
	CreateTractor(ctx context.Context, actor *model.Profile, in TractorInput) (*model.TractorListing, error)

	SetLaborAvailability(ctx context.Context, id string, actor *model.Profile, status model.LaborAvailability) error
	SetTractorAvailability(ctx context.Context, id string, actor *model.Profile, status model.TractorAvailability) error

	DeleteLabor(ctx context.Context, id string, actor *model.Profile) error
	DeleteTractor(ctx context.Context, id string, actor *model.Profile) error

	MyListings(ctx context.Context, actor *model.Profile) (*Mine, error)
}

type service struct {
	r   Repo
	pub notify.Publisher
	log *slog.Logger
}

func New(r Repo, pub notify.Publisher, log *slog.Logger) Service {
	if pub == nil {
		pub = notify.Noop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &service{r: r, pub: pub, log: log}
}

// ----- search -----

func (s *service) ListLabor(ctx context.Context, q, location string) ([]model.LaborListing, error) {
	rows, err := s.r.ListAvailableLabor(ctx)
	if err != nil {
		return nil, err
	}
	q, location = strings.TrimSpace(q), strings.TrimSpace(location)
	out := make([]model.LaborListing, 0, len(rows))
	for _, l := range rows {
		if matchLabor(l, q) && contains(l.Location, location) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *service) ListTractors(ctx context.Context, q, location string) ([]model.TractorListing, error) {
	rows, err := s.r.ListAvailableTractors(ctx)
	if err != nil {
		return nil, err
	}
	q, location = strings.TrimSpace(q), strings.TrimSpace(location)
	out := make([]model.TractorListing, 0, len(rows))
	for _, t := range rows {
		if matchTractor(t, q) && contains(t.Location, location) {
			out = append(out, t)
		}
	}
	return out, nil
}

func matchLabor(l model.LaborListing, q string) bool {
	if q == "" || contains(l.Title, q) || contains(l.Description, q) {
		return true
	}
	for _, skill := range l.Skills {
		if contains(skill, q) {
			return true
		}
	}
	return false
}

func matchTractor(t model.TractorListing, q string) bool {
	return q == "" || contains(t.Title, q) || contains(t.Description, q) || contains(t.TractorModel, q)
}

// contains is a case-insensitive substring test; an empty needle matches everything.
func contains(field, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(needle))
}

func (s *service) GetLabor(ctx context.Context, id string) (*model.LaborListing, error) {
	return s.r.LaborByID(ctx, id)
}

func (s *service) GetTractor(ctx context.Context, id string) (*model.TractorListing, error) {
	return s.r.TractorByID(ctx, id)
}

// ----- create -----

func (s *service) CreateLabor(ctx context.Context, actor *model.Profile, in LaborInput) (*model.LaborListing, error) {
	if actor == nil || actor.Role != model.RoleLaborer {
		return nil, errs.Forbidden("only laborers can create labor listings")
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	if err := required("title", in.Title, "description", in.Description, "location", in.Location); err != nil {
		return nil, err
	}
	if in.DailyRate <= 0 {
		return nil, errs.Validation("daily_rate must be a positive number")
	}
	if in.ExperienceYears < 0 {
		return nil, errs.Validation("experience_years must not be negative")
	}

	l := &model.LaborListing{
		UserID:          actor.ID,
		Title:           in.Title,
		Description:     in.Description,
		Skills:          NormalizeSkills(in.Skills),
		DailyRate:       in.DailyRate,
		ExperienceYears: in.ExperienceYears,
		Location:        in.Location,
	}
	if err := s.r.InsertLabor(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) CreateTractor(ctx context.Context, actor *model.Profile, in TractorInput) (*model.TractorListing, error) {
	if actor == nil || actor.Role != model.RoleTractorOwner {
		return nil, errs.Forbidden("only tractor owners can create tractor listings")
	}
	if !actor.HasRCNumber() {
		return nil, errs.Validation("missing required field: rc_number")
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.TractorModel = strings.TrimSpace(in.TractorModel)
	in.Location = strings.TrimSpace(in.Location)
	if err := required("title", in.Title, "description", in.Description,
		"tractor_model", in.TractorModel, "location", in.Location); err != nil {
		return nil, err
	}
	if in.HourlyRate <= 0 {
		return nil, errs.Validation("hourly_rate must be a positive number")
	}
	if in.DailyRate <= 0 {
		return nil, errs.Validation("daily_rate must be a positive number")
	}
	if in.Horsepower != nil && *in.Horsepower < 0 {
		return nil, errs.Validation("horsepower must not be negative")
	}
	if in.Year != nil && *in.Year < 0 {
		return nil, errs.Validation("year must not be negative")
	}
	if in.ImageURL != nil && strings.TrimSpace(*in.ImageURL) == "" {
		in.ImageURL = nil
	}

	t := &model.TractorListing{
		OwnerID:      actor.ID,
		Title:        in.Title,
		Description:  in.Description,
		TractorModel: in.TractorModel,
		Horsepower:   in.Horsepower,
		Year:         in.Year,
		HourlyRate:   in.HourlyRate,
		DailyRate:    in.DailyRate,
		Location:     in.Location,
		ImageURL:     in.ImageURL,
	}
	if err := s.r.InsertTractor(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// required takes name/value pairs and reports the first blank one.
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return errs.Validation("missing required field: %s", pairs[i])
		}
	}
	return nil
}

// NormalizeSkills trims every tag, splits comma separated entries and drops blanks.
func NormalizeSkills(in []string) []string {
	out := []string{}
	for _, raw := range in {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// ----- owner actions -----

func (s *service) SetLaborAvailability(ctx context.Context, id string, actor *model.Profile, status model.LaborAvailability) error {
	if !status.Valid() {
		return errs.Validation("invalid availability status %q", status)
	}
	l, err := s.r.LaborByID(ctx, id)
	if err != nil {
		return err
	}
	if actor == nil || l.UserID != actor.ID {
		return errs.Forbidden("not the owner of this listing")
	}
	if err := s.r.SetLaborAvailability(ctx, id, status); err != nil {
		return err
	}
	notify.Emit(ctx, s.pub, s.log, notify.Event{
		Type: notify.ListingAvailability, Kind: string(model.KindLabor), ID: id, Status: string(status),
	})
	return nil
}

func (s *service) SetTractorAvailability(ctx context.Context, id string, actor *model.Profile, status model.TractorAvailability) error {
	if !status.Valid() {
		return errs.Validation("invalid availability status %q", status)
	}
	t, err := s.r.TractorByID(ctx, id)
	if err != nil {
		return err
	}
	if actor == nil || t.OwnerID != actor.ID {
		return errs.Forbidden("not the owner of this listing")
	}
	if err := s.r.SetTractorAvailability(ctx, id, status); err != nil {
		return err
	}
	notify.Emit(ctx, s.pub, s.log, notify.Event{
		Type: notify.ListingAvailability, Kind: string(model.KindTractor), ID: id, Status: string(status),
	})
	return nil
}

func (s *service) DeleteLabor(ctx context.Context, id string, actor *model.Profile) error {
	l, err := s.r.LaborByID(ctx, id)
	if err != nil {
		return err
	}
	if actor == nil || l.UserID != actor.ID {
		return errs.Forbidden("not the owner of this listing")
	}
	if err := s.r.DeleteLabor(ctx, id); err != nil {
		return err
	}
	notify.Emit(ctx, s.pub, s.log, notify.Event{Type: notify.ListingDeleted, Kind: string(model.KindLabor), ID: id})
	return nil
}

func (s *service) DeleteTractor(ctx context.Context, id string, actor *model.Profile) error {
	t, err := s.r.TractorByID(ctx, id)
	if err != nil {
		return err
	}
	if actor == nil || t.OwnerID != actor.ID {
		return errs.Forbidden("not the owner of this listing")
	}
	if err := s.r.DeleteTractor(ctx, id); err != nil {
		return err
	}
	notify.Emit(ctx, s.pub, s.log, notify.Event{Type: notify.ListingDeleted, Kind: string(model.KindTractor), ID: id})
	return nil
}

func (s *service) MyListings(ctx context.Context, actor *model.Profile) (*Mine, error) {
	out := &Mine{Labor: []model.LaborListing{}, Tractors: []model.TractorListing{}}
	if actor == nil {
		return nil, errs.Forbidden("profile required")
	}
	var err error
	switch actor.Role {
	case model.RoleLaborer:
		out.Labor, err = s.r.LaborByOwner(ctx, actor.ID)
	case model.RoleTractorOwner:
		out.Tractors, err = s.r.TractorsByOwner(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
