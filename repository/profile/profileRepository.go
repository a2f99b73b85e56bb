package profilerepo

import (
	"context"

	"agrimarket/model"
	"agrimarket/util/database"
)

type Repo interface {
	Create(ctx context.Context, p *model.Profile) error
	ByID(ctx context.Context, id string) (*model.Profile, error)
	Update(ctx context.Context, p *model.Profile) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const cols = `id, email, full_name, phone, user_type, location, bio, avatar_url, rc_number, created_at, updated_at`

func (r *repo) Create(ctx context.Context, p *model.Profile) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO profiles(id, email, full_name, phone, user_type, location, bio, avatar_url, rc_number)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at`,
		p.ID, p.Email, p.FullName, p.Phone, p.Role, p.Location, p.Bio, p.AvatarURL, p.RCNumber,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return database.MapErr(err, "profile")
}

func (r *repo) ByID(ctx context.Context, id string) (*model.Profile, error) {
	p := &model.Profile{}
	err := r.db.Pool.QueryRow(ctx, `SELECT `+cols+` FROM profiles WHERE id = $1`, id).Scan(
		&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Role, &p.Location, &p.Bio, &p.AvatarURL, &p.RCNumber,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapErr(err, "profile")
	}
	return p, nil
}

// Update writes the owner-editable columns. id, email and user_type never change here.
func (r *repo) Update(ctx context.Context, p *model.Profile) error {
	err := r.db.Pool.QueryRow(ctx, `
		UPDATE profiles
		SET full_name = $2, phone = $3, location = $4, bio = $5, avatar_url = $6, rc_number = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID, p.FullName, p.Phone, p.Location, p.Bio, p.AvatarURL, p.RCNumber,
	).Scan(&p.UpdatedAt)
	return database.MapErr(err, "profile")
}
