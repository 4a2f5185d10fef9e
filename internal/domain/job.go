package domain

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Common domain errors
var (
	ErrNotFound  = errors.New("resource not found")
	ErrInvalidID = errors.New("invalid id")
)

type Job struct {
	ID             bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	JobTitle       string         `bson:"jobTitle,omitempty" json:"jobTitle,omitempty"`
	JobDescription string         `bson:"jobDescription,omitempty" json:"jobDescription,omitempty"`
	Location       string         `bson:"location,omitempty" json:"location,omitempty"`
	Salary         float64        `bson:"salary" json:"salary"`
	Recruiter      *bson.ObjectID `bson:"recruiter,omitempty" json:"recruiter,omitempty"`
	CreatedAt      time.Time      `bson:"createdAt,omitempty" json:"createdAt,omitzero"`
	UpdatedAt      time.Time      `bson:"updatedAt,omitempty" json:"updatedAt,omitzero"`
}

// OwnerID is the hex id of the posting recruiter, or "" for admin-created jobs.
func (j *Job) OwnerID() string {
	if j.Recruiter == nil {
		return ""
	}
	return j.Recruiter.Hex()
}

type JobUpdate struct {
	JobTitle       *string
	JobDescription *string
	Location       *string
	Salary         *float64
}

type JobRepository interface {
	Find(ctx context.Context, opts ListOptions) ([]*Job, error)
	Create(ctx context.Context, job *Job) error
	FindByID(ctx context.Context, id string) (*Job, error)
	Update(ctx context.Context, id string, update JobUpdate) (*Job, error)
	Delete(ctx context.Context, id string) (*Job, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type JobUsecase interface {
	ListJobs(ctx context.Context, opts ListOptions) ([]*Job, error)
	CreateJob(ctx context.Context, p Principal, job *Job) error
	GetJob(ctx context.Context, id string) (*Job, error)
	UpdateJob(ctx context.Context, p Principal, id string, update JobUpdate) (*Job, error)
	DeleteJob(ctx context.Context, p Principal, id string) (*Job, error)
	DeleteJobs(ctx context.Context) (int64, error)
	// ExportJobs renders every job as an xlsx workbook and returns it with a file name.
	ExportJobs(ctx context.Context) ([]byte, string, error)
}
