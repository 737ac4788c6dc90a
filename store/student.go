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

// Student is a student record. The password field holds the hash only; a
// plaintext password never reaches this struct.
type Student struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string        `bson:"name" json:"name"`
	Email         string        `bson:"email" json:"email"`
	PasswordHash  string        `bson:"password" json:"-"`
	StudentClass  string        `bson:"studentClass,omitempty" json:"studentClass,omitempty"`
	EducationCode string        `bson:"educationCode" json:"educationCode"`
	Number        string        `bson:"number" json:"number"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
}

// StudentRepo provides lookups and inserts on the students collection.
type StudentRepo struct {
	coll *mongo.Collection
}

// FindByEmail returns the first student with the given email, or (nil, nil)
// when no record matches. Email is not unique on its own; first match wins,
// matching the login flow's behavior.
func (r *StudentRepo) FindByEmail(ctx context.Context, email string) (*Student, error) {
	var s Student
	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: find student by email: %w", err)
	}
	return &s, nil
}

// Exists reports whether a student with the exact composite key
// (email, number, educationCode) is already registered.
func (r *StudentRepo) Exists(ctx context.Context, email, number, educationCode string) (bool, error) {
	filter := bson.D{
		{Key: "email", Value: email},
		{Key: "number", Value: number},
		{Key: "educationCode", Value: educationCode},
	}
	err := r.coll.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: student exists: %w", err)
	}
	return true, nil
}

// Insert stores a new student and returns the assigned id as a hex string.
func (r *StudentRepo) Insert(ctx context.Context, s *Student) (string, error) {
	res, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		if IsDuplicateKey(err) {
			return "", err
		}
		return "", fmt.Errorf("store: insert student: %w", err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("store: unexpected inserted id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}

func (r *StudentRepo) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "email", Value: 1},
			{Key: "number", Value: 1},
			{Key: "educationCode", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_email_number_educationCode"),
	})
	return err
}
