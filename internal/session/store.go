package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"restaurant/internal/database"
	"restaurant/internal/models"
)

var ErrNotFound = errors.New("session not found")

// Store persists sessions keyed by token hash.
type Store interface {
	Save(ctx context.Context, s models.Session) error
	Find(ctx context.Context, tokenHash string) (models.Session, error)
	Delete(ctx context.Context, tokenHash string) error
}

// MongoStore keeps sessions in the sessions collection. Expired documents are
// removed by the TTL index; Find also filters on expiry since TTL sweeps lag.
type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(database.SessionsCollection), now: time.Now}
}

func (s *MongoStore) Save(ctx context.Context, sess models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.coll.InsertOne(ctx, sess)
	return err
}

func (s *MongoStore) Find(ctx context.Context, tokenHash string) (models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sess models.Session
	err := s.coll.FindOne(ctx, bson.M{
		"tokenHash": tokenHash,
		"expiresAt": bson.M{"$gt": s.now()},
	}).Decode(&sess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Session{}, ErrNotFound
	}
	return sess, err
}

func (s *MongoStore) Delete(ctx context.Context, tokenHash string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.coll.DeleteOne(ctx, bson.M{"tokenHash": tokenHash})
	return err
}

// MemoryStore is a process-local store for single-instance deployments and tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]models.Session{}, now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.TokenHash] = sess
	return nil
}

func (s *MemoryStore) Find(_ context.Context, tokenHash string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[tokenHash]
	if !ok {
		return models.Session{}, ErrNotFound
	}
	if !s.now().Before(sess.ExpiresAt) {
		delete(s.sessions, tokenHash)
		return models.Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, tokenHash)
	return nil
}

// Len reports the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
