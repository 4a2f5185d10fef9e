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

const userCollection = "users"

type userRepo struct {
	coll *mongo.Collection
}

func NewUserRepository(ctx context.Context, logger *zap.Logger, db *mongo.Database) domain.UserRepository {
	coll := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
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
		logger.Fatal("failed to create user indexes", zap.Error(err))
	}

	return &userRepo{coll: coll}
}

func (r *userRepo) Find(ctx context.Context, opts domain.ListOptions) ([]*domain.User, error) {
	return findMany[domain.User](ctx, r.coll, bson.M{}, listOptions(opts, secretFields))
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	id, err := insertOne(ctx, r.coll, user, "user with this email")
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[domain.User](ctx, r.coll, bson.M{"_id": oid}, secretFields)
}

func (r *userRepo) Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	set := bson.M{}
	if update.UserName != nil {
		set["userName"] = *update.UserName
	}
	if update.FirstName != nil {
		set["firstName"] = *update.FirstName
	}
	if update.LastName != nil {
		set["lastName"] = *update.LastName
	}
	if update.Gender != nil {
		set["gender"] = *update.Gender
	}
	if update.Age != nil {
		set["age"] = *update.Age
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Admin != nil {
		set["admin"] = *update.Admin
	}
	return updateByID[domain.User](ctx, r.coll, id, set, secretFields, "user with this email")
}

func (r *userRepo) Delete(ctx context.Context, id string) (*domain.User, error) {
	return deleteByID[domain.User](ctx, r.coll, id, secretFields)
}

func (r *userRepo) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.coll)
}

func (r *userRepo) FindAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	u, err := findOne[domain.User](ctx, r.coll, bson.M{"email": email}, nil)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepo) FindAccountByID(ctx context.Context, id string) (domain.Account, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	u, err := findOne[domain.User](ctx, r.coll, bson.M{"_id": oid}, nil)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepo) FindAccountByResetToken(ctx context.Context, digest string, now time.Time) (domain.Account, error) {
	u, err := findOne[domain.User](ctx, r.coll, resetTokenFilter(digest, now), nil)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepo) SaveCredentials(ctx context.Context, id string, creds domain.Credentials) error {
	return saveCredentials(ctx, r.coll, id, creds)
}
