package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// secretFields are stripped from every read that is not an auth lookup.
var secretFields = []string{"password", "resetPasswordToken", "resetPasswordExpire"}

func objectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, domain.ErrInvalidID
	}
	return oid, nil
}

func exclude(fields []string) bson.D {
	proj := make(bson.D, 0, len(fields))
	for _, f := range fields {
		proj = append(proj, bson.E{Key: f, Value: 0})
	}
	return proj
}

// listOptions turns ListOptions into driver options. An explicit field list
// is an inclusion projection, which already leaves the hidden fields out;
// Mongo rejects mixing the two styles.
func listOptions(opts domain.ListOptions, hidden []string) *options.FindOptionsBuilder {
	fo := options.Find()

	if len(opts.Fields) > 0 {
		proj := make(bson.D, 0, len(opts.Fields))
		for _, f := range opts.Fields {
			proj = append(proj, bson.E{Key: f, Value: 1})
		}
		fo.SetProjection(proj)
	} else if len(hidden) > 0 {
		fo.SetProjection(exclude(hidden))
	}

	if opts.Limit > 0 {
		fo.SetLimit(opts.Limit)
	}
	if opts.SortField != "" {
		order := opts.SortOrder
		if order != domain.SortAsc {
			order = domain.SortDesc
		}
		fo.SetSort(bson.D{{Key: opts.SortField, Value: order}})
	}
	return fo
}

func findMany[T any](ctx context.Context, coll *mongo.Collection, filter any, fo *options.FindOptionsBuilder) ([]*T, error) {
	cursor, err := coll.Find(ctx, filter, fo)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]*T, 0)
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any, hidden []string) (*T, error) {
	opts := options.FindOne()
	if len(hidden) > 0 {
		opts.SetProjection(exclude(hidden))
	}

	var doc T
	if err := coll.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc any, what string) (bson.ObjectID, error) {
	result, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return bson.ObjectID{}, writeError(err, what)
	}
	oid, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.ObjectID{}, errors.New("failed to convert inserted ID to ObjectID")
	}
	return oid, nil
}

// updateByID applies a $set and returns the document as it is after the update.
func updateByID[T any](ctx context.Context, coll *mongo.Collection, id string, set bson.M, hidden []string, what string) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if len(hidden) > 0 {
		opts.SetProjection(exclude(hidden))
	}

	var doc T
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, writeError(err, what)
	}
	return &doc, nil
}

func deleteByID[T any](ctx context.Context, coll *mongo.Collection, id string, hidden []string) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndDelete()
	if len(hidden) > 0 {
		opts.SetProjection(exclude(hidden))
	}

	var doc T
	if err := coll.FindOneAndDelete(ctx, bson.M{"_id": oid}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func deleteAll(ctx context.Context, coll *mongo.Collection) (int64, error) {
	result, err := coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func writeError(err error, what string) error {
	if mongo.IsDuplicateKeyError(err) {
		return apperror.Conflict(fmt.Sprintf("%s already exists", what))
	}
	return err
}

// saveCredentials writes the secret fields of an account. A cleared reset
// token is removed from the document rather than stored empty.
func saveCredentials(ctx context.Context, coll *mongo.Collection, id string, creds domain.Credentials) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	set := bson.M{"updatedAt": time.Now()}
	update := bson.M{}
	if creds.Password != "" {
		set["password"] = creds.Password
	}
	if creds.ResetPasswordToken != "" && creds.ResetPasswordExpire != nil {
		set["resetPasswordToken"] = creds.ResetPasswordToken
		set["resetPasswordExpire"] = *creds.ResetPasswordExpire
	} else {
		update["$unset"] = bson.M{"resetPasswordToken": "", "resetPasswordExpire": ""}
	}
	update["$set"] = set

	result, err := coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func resetTokenFilter(digest string, now time.Time) bson.M {
	return bson.M{
		"resetPasswordToken":  digest,
		"resetPasswordExpire": bson.M{"$gt": now},
	}
}
