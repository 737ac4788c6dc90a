package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Parent is a parent record. childStudentId references a student by id but is
// not enforced as a foreign key.
type Parent struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string        `bson:"name" json:"name"`
	Email          string        `bson:"email" json:"email"`
	PasswordHash   string        `bson:"password" json:"-"`
	Number         string        `bson:"number" json:"number"`
	Relationship   string        `bson:"relationship" json:"relationship"`
	ChildStudentID string        `bson:"childStudentId" json:"childStudentId"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
}

// ParentRepo provides lookups and inserts on the parents collection.
type ParentRepo struct {
	coll *mongo.Collection
}

// FindByEmail returns the first parent with the given email, or (nil, nil)
// when no record matches.
func (r *ParentRepo) FindByEmail(ctx context.Context, email string) (*Parent, error) {
	var p Parent
	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: find parent by email: %w", err)
	}
	return &p, nil
}

// Exists reports whether a parent with the exact composite key
// (email, number, childStudentId) is already registered.
func (r *ParentRepo) Exists(ctx context.Context, email, number, childStudentID string) (bool, error) {
	filter := bson.D{
		{Key: "email", Value: email},
		{Key: "number", Value: number},
		{Key: "childStudentId", Value: childStudentID},
	}
	err := r.coll.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: parent exists: %w", err)
	}
	return true, nil
}

// Insert stores a new parent and returns the assigned id as a hex string.
func (r *ParentRepo) Insert(ctx context.Context, p *Parent) (string, error) {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		if IsDuplicateKey(err) {
			return "", err
		}
		return "", fmt.Errorf("store: insert parent: %w", err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("store: unexpected inserted id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}

func (r *ParentRepo) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "email", Value: 1},
			{Key: "number", Value: 1},
			{Key: "childStudentId", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_email_number_childStudentId"),
	})
	return err
}
