package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Recruiter is a hiring company. It logs in like a user and owns the jobs it posts.
type Recruiter struct {
	ID                 bson.ObjectID `bson:"_id,omitempty" json:"id"`
	CompanyName        string        `bson:"companyName,omitempty" json:"companyName,omitempty"`
	CompanyDescription string        `bson:"companyDescription,omitempty" json:"companyDescription,omitempty"`
	Address            string        `bson:"address,omitempty" json:"address,omitempty"`
	Email              string        `bson:"email,omitempty" json:"email,omitempty"`
	Credentials        `bson:",inline" json:"-"`
	CreatedAt          time.Time `bson:"createdAt,omitempty" json:"createdAt,omitzero"`
	UpdatedAt          time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitzero"`
}

func (r *Recruiter) AccountID() string        { return r.ID.Hex() }
func (r *Recruiter) AccountEmail() string     { return r.Email }
func (r *Recruiter) AccountKind() AccountKind { return KindRecruiter }
func (r *Recruiter) Role() string             { return RoleRecruiter }
func (r *Recruiter) Creds() *Credentials      { return &r.Credentials }

type RecruiterUpdate struct {
	CompanyName        *string
	CompanyDescription *string
	Address            *string
	Email              *string
}

type RecruiterRepository interface {
	AccountRepository
	Find(ctx context.Context, opts ListOptions) ([]*Recruiter, error)
	Create(ctx context.Context, recruiter *Recruiter) error
	FindByID(ctx context.Context, id string) (*Recruiter, error)
	Update(ctx context.Context, id string, update RecruiterUpdate) (*Recruiter, error)
	Delete(ctx context.Context, id string) (*Recruiter, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type RecruiterUsecase interface {
	ListRecruiters(ctx context.Context, opts ListOptions) ([]*Recruiter, error)
	CreateRecruiter(ctx context.Context, recruiter *Recruiter, plainPassword string) (string, error)
	GetRecruiter(ctx context.Context, id string) (*Recruiter, error)
	UpdateRecruiter(ctx context.Context, p Principal, id string, update RecruiterUpdate) (*Recruiter, error)
	DeleteRecruiter(ctx context.Context, p Principal, id string) (*Recruiter, error)
	DeleteRecruiters(ctx context.Context) (int64, error)
}
