package mongodb

import (
	"context"
	"time"

	"job-board-backend/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

const recruiterCollection = "recruiters"

type recruiterRepo struct {
	coll *mongo.Collection
}

func NewRecruiterRepository(ctx context.Context, logger *zap.Logger, db *mongo.Database) domain.RecruiterRepository {
	coll := db.Collection(recruiterCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "companyName", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "resetPasswordToken", Value: 1}},
			Options: options.Index().SetPartialFilterExpression(bson.M{
				"resetPasswordToken": bson.M{"$exists": true},
			}),
		},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Fatal("failed to create recruiter indexes", zap.Error(err))
	}

	return &recruiterRepo{coll: coll}
}

func (r *recruiterRepo) Find(ctx context.Context, opts domain.ListOptions) ([]*domain.Recruiter, error) {
	return findMany[domain.Recruiter](ctx, r.coll, bson.M{}, listOptions(opts, secretFields))
}

func (r *recruiterRepo) Create(ctx context.Context, recruiter *domain.Recruiter) error {
	now := time.Now()
	recruiter.CreatedAt = now
	recruiter.UpdatedAt = now

	id, err := insertOne(ctx, r.coll, recruiter, "recruiter with this company name or email")
	if err != nil {
		return err
	}
	recruiter.ID = id
	return nil
}

func (r *recruiterRepo) FindByID(ctx context.Context, id string) (*domain.Recruiter, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[domain.Recruiter](ctx, r.coll, bson.M{"_id": oid}, secretFields)
}

func (r *recruiterRepo) Update(ctx context.Context, id string, update domain.RecruiterUpdate) (*domain.Recruiter, error) {
	set := bson.M{}
	if update.CompanyName != nil {
		set["companyName"] = *update.CompanyName
	}
	if update.CompanyDescription != nil {
		set["companyDescription"] = *update.CompanyDescription
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	return updateByID[domain.Recruiter](ctx, r.coll, id, set, secretFields, "recruiter with this company name or email")
}

func (r *recruiterRepo) Delete(ctx context.Context, id string) (*domain.Recruiter, error) {
	return deleteByID[domain.Recruiter](ctx, r.coll, id, secretFields)
}

func (r *recruiterRepo) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.coll)
}

func (r *recruiterRepo) FindAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	rec, err := findOne[domain.Recruiter](ctx, r.coll, bson.M{"email": email}, nil)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *recruiterRepo) FindAccountByID(ctx context.Context, id string) (domain.Account, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	rec, err := findOne[domain.Recruiter](ctx, r.coll, bson.M{"_id": oid}, nil)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *recruiterRepo) FindAccountByResetToken(ctx context.Context, digest string, now time.Time) (domain.Account, error) {
	rec, err := findOne[domain.Recruiter](ctx, r.coll, resetTokenFilter(digest, now), nil)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *recruiterRepo) SaveCredentials(ctx context.Context, id string, creds domain.Credentials) error {
	return saveCredentials(ctx, r.coll, id, creds)
}
