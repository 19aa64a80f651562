package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"dropship-store/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore maps collections 1:1 onto a MongoDB database. Transactions
// need a replica set deployment.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func InitMongo(ctx context.Context, config utils.DatabaseConfig) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(config.URL).
		SetMaxPoolSize(uint64(config.MaxConns)).
		SetConnectTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo failed: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(config.Name)}, nil
}

func (s *MongoStore) Driver() string { return "mongo" }

func (s *MongoStore) Collection(name string) Collection {
	if err := checkIdentifier("collection", name); err != nil {
		panic(err)
	}
	return &mongoCollection{coll: s.db.Collection(name), name: name}
}

func (s *MongoStore) CreateCollection(ctx context.Context, name string) error {
	if err := checkIdentifier("collection", name); err != nil {
		return err
	}

	err := s.db.CreateCollection(ctx, name)
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == 48 { // NamespaceExists
		return nil
	}
	if err != nil {
		return fmt.Errorf("create collection %s: %w", name, err)
	}
	return nil
}

func (s *MongoStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type mongoCollection struct {
	coll *mongo.Collection
	name string
}

func (c *mongoCollection) Insert(ctx context.Context, id string, doc any) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return c.wrap("insert", id, err)
	}
	return nil
}

func (c *mongoCollection) FindByID(ctx context.Context, id string, out any) error {
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return c.wrap("find", id, err)
	}
	return nil
}

func (c *mongoCollection) FindOne(ctx context.Context, filter Filter, out any) error {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	err := c.coll.FindOne(ctx, bson.M(filter), opts).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return c.wrap("find one", "", err)
	}
	return nil
}

func (c *mongoCollection) Find(ctx context.Context, q Query, out any) error {
	filter, err := c.filter(q)
	if err != nil {
		return err
	}

	field, desc := q.sortField()
	if err := checkField(field); err != nil {
		return err
	}
	dir := 1
	if desc {
		dir = -1
	}

	opts := options.Find().SetSort(bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit)).SetSkip(int64(q.Offset))
	}

	cursor, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return c.wrap("find", "", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return c.wrap("decode", "", err)
	}
	return nil
}

func (c *mongoCollection) Count(ctx context.Context, q Query) (int64, error) {
	filter, err := c.filter(q)
	if err != nil {
		return 0, err
	}

	count, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, c.wrap("count", "", err)
	}
	return count, nil
}

func (c *mongoCollection) Replace(ctx context.Context, id string, doc any) error {
	result, err := c.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return c.wrap("replace", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *mongoCollection) Delete(ctx context.Context, id string) error {
	result, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return c.wrap("delete", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *mongoCollection) EnsureIndex(ctx context.Context, field string, unique bool) error {
	if err := checkField(field); err != nil {
		return err
	}

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(unique),
	}
	if _, err := c.coll.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("create index %s.%s: %w", c.name, field, err)
	}
	return nil
}

func (c *mongoCollection) filter(q Query) (bson.M, error) {
	filter := bson.M{}
	for k, v := range q.Filter {
		filter[k] = v
	}

	if q.hasSearch() {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(q.Search.Term)), Options: "i"}
		ors := make(bson.A, 0, len(q.Search.Fields))
		for _, field := range q.Search.Fields {
			if err := checkField(field); err != nil {
				return nil, err
			}
			ors = append(ors, bson.M{field: pattern})
		}
		filter["$or"] = ors
	}

	if q.NonEmpty != "" {
		if err := checkField(q.NonEmpty); err != nil {
			return nil, err
		}
		filter[q.NonEmpty+".0"] = bson.M{"$exists": true}
	}

	return filter, nil
}

func (c *mongoCollection) wrap(op, id string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s %s: %w", op, c.name, ErrDuplicate)
	}
	if id != "" {
		return fmt.Errorf("%s %s %s: %w", op, c.name, id, err)
	}
	return fmt.Errorf("%s %s: %w", op, c.name, err)
}
