package store

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/isomer/pkg/errors"
	"github.com/matzehuels/isomer/pkg/report"
)

// Database and collection names used by Mongo.
const (
	DefaultDatabase = "isomer"
	runsCollection  = "runs"
)

// Mongo stores runs in a MongoDB collection, one document per run keyed by
// the run ID.
type Mongo struct {
	client *mongo.Client
	runs   *mongo.Collection
}

// NewMongo connects to uri and uses database db (DefaultDatabase when
// empty). It pings the server and ensures the listing index exists.
func NewMongo(ctx context.Context, uri, db string) (*Mongo, error) {
	if db == "" {
		db = DefaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	runs := client.Database(db).Collection(runsCollection)
	_, err = runs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "solid", Value: 1}, {Key: "started", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &Mongo{client: client, runs: runs}, nil
}

func (m *Mongo) Save(ctx context.Context, run *report.Run) error {
	if run == nil || run.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "run without id")
	}
	_, err := m.runs.ReplaceOne(ctx, bson.M{"_id": run.ID}, run, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

func (m *Mongo) Get(ctx context.Context, id string) (*report.Run, error) {
	var run report.Run
	err := m.runs.FindOne(ctx, bson.M{"_id": id}).Decode(&run)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.ErrCodeNotFound, "run %q not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return &run, nil
}

func (m *Mongo) List(ctx context.Context, solid string, limit int) ([]*report.Run, error) {
	filter, opts := listQuery(solid, limit)
	cur, err := m.runs.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	var runs []*report.Run
	if err := cur.All(ctx, &runs); err != nil {
		return nil, fmt.Errorf("decode runs: %w", err)
	}
	return runs, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// listQuery builds the filter and options for List.
func listQuery(solid string, limit int) (bson.M, *options.FindOptions) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	filter := bson.M{}
	if solid != "" {
		filter["solid"] = solid
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "started", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"levels.entries": 0})
	return filter, opts
}

var _ Store = (*Mongo)(nil)
