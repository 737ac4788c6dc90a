package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/kbukum/schoolauth/logger"
)

const (
	studentsCollection = "students"
	parentsCollection  = "parents"
)

// Store owns the MongoDB client and exposes the collection repositories.
type Store struct {
	client   *mongo.Client
	db       *mongo.Database
	students *StudentRepo
	parents  *ParentRepo
	log      *logger.Logger
}

// Connect creates the client, verifies the connection with a ping, and
// returns a ready Store.
func Connect(ctx context.Context, cfg *Config, log *logger.Logger) (*Store, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(time.Duration(cfg.ConnectTimeout) * time.Second))
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.ConnectTimeout)*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	db := client.Database(cfg.Database)
	s := &Store{
		client: client,
		db:     db,
		log:    log.WithComponent("store"),
	}
	s.students = &StudentRepo{coll: db.Collection(studentsCollection)}
	s.parents = &ParentRepo{coll: db.Collection(parentsCollection)}

	s.log.Info("Connected to MongoDB", logger.Fields("database", cfg.Database))
	return s, nil
}

// Students returns the student repository.
func (s *Store) Students() *StudentRepo { return s.students }

// Parents returns the parent repository.
func (s *Store) Parents() *ParentRepo { return s.parents }

// EnsureIndexes creates the unique compound indexes that back registration
// de-duplication. The racy check-then-insert in the registration flows is
// thereby closed at the store: concurrent duplicates surface as duplicate-key
// write errors.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if err := s.students.ensureIndexes(ctx); err != nil {
		return fmt.Errorf("store: students indexes: %w", err)
	}
	if err := s.parents.ensureIndexes(ctx); err != nil {
		return fmt.Errorf("store: parents indexes: %w", err)
	}
	s.log.Debug("Indexes ensured")
	return nil
}

// Ping verifies the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	s.log.Info("Disconnecting from MongoDB")
	return s.client.Disconnect(ctx)
}

// IsDuplicateKey reports whether an insert failed on a unique index.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
