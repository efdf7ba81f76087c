package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/dashboard"
	"github.com/matzehuels/dashgrid/pkg/errors"
)

// MongoCollection is the collection dashboards are stored in.
const MongoCollection = "dashboards"

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI      string
	Database string
}

// MongoStore keeps dashboards in a MongoDB collection. Documents are keyed by
// "<org>/<id>" so dashboard ids only need to be unique per organization.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoDoc is the stored document shape.
type mongoDoc struct {
	Key                 string `bson:"_id"`
	dashboard.Dashboard `bson:",inline"`
}

func mongoKey(org, id string) string {
	return org + "/" + id
}

// NewMongoStore connects to MongoDB and ensures the organization index.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "ping mongo")
	}

	s := &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(MongoCollection),
	}
	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "organization", Value: 1}, {Key: "title", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}
	return s, nil
}

func (s *MongoStore) Get(ctx context.Context, org, id string) (*dashboard.Dashboard, error) {
	if err := validateKey(org, id); err != nil {
		return nil, err
	}
	var doc mongoDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": mongoKey(org, id)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, notFound(org, id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "find dashboard %s", id)
	}
	return &doc.Dashboard, nil
}

func (s *MongoStore) Put(ctx context.Context, d *dashboard.Dashboard) error {
	if err := validateKey(d.Organization, d.ID); err != nil {
		return err
	}
	key := mongoKey(d.Organization, d.ID)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, mongoDoc{Key: key, Dashboard: *d},
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "replace dashboard %s", d.ID)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context, org string) ([]*dashboard.Dashboard, error) {
	cur, err := s.coll.Find(ctx, bson.M{"organization": org},
		options.Find().SetSort(bson.D{{Key: "title", Value: 1}, {Key: "id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "list dashboards of %s", org)
	}
	var docs []mongoDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "decode dashboards of %s", org)
	}

	out := make([]*dashboard.Dashboard, len(docs))
	for i := range docs {
		out[i] = &docs[i].Dashboard
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, org, id string) error {
	if err := validateKey(org, id); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": mongoKey(org, id)})
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "delete dashboard %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(org, id)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
