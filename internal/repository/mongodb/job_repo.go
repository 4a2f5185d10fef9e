package mongodb

import (
	"context"
	"time"

	"job-board-backend/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

const jobCollection = "jobs"

type jobRepo struct {
	coll *mongo.Collection
}

func NewJobRepository(ctx context.Context, logger *zap.Logger, db *mongo.Database) domain.JobRepository {
	coll := db.Collection(jobCollection)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "recruiter", Value: 1}}},
		{Keys: bson.D{{Key: "jobTitle", Value: 1}}},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Fatal("failed to create job indexes", zap.Error(err))
	}

	return &jobRepo{coll: coll}
}

func (r *jobRepo) Find(ctx context.Context, opts domain.ListOptions) ([]*domain.Job, error) {
	return findMany[domain.Job](ctx, r.coll, bson.M{}, listOptions(opts, nil))
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	id, err := insertOne(ctx, r.coll, job, "job")
	if err != nil {
		return err
	}
	job.ID = id
	return nil
}

func (r *jobRepo) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[domain.Job](ctx, r.coll, bson.M{"_id": oid}, nil)
}

func (r *jobRepo) Update(ctx context.Context, id string, update domain.JobUpdate) (*domain.Job, error) {
	set := bson.M{}
	if update.JobTitle != nil {
		set["jobTitle"] = *update.JobTitle
	}
	if update.JobDescription != nil {
		set["jobDescription"] = *update.JobDescription
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.Salary != nil {
		set["salary"] = *update.Salary
	}
	return updateByID[domain.Job](ctx, r.coll, id, set, nil, "job")
}

func (r *jobRepo) Delete(ctx context.Context, id string) (*domain.Job, error) {
	return deleteByID[domain.Job](ctx, r.coll, id, nil)
}

func (r *jobRepo) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.coll)
}
