package docstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on top of a MongoDB database
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to MongoDB and verifies the connection
func NewMongoStore(ctx context.Context, uri, database string, connectTimeout time.Duration) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		db:     client.Database(database),
	}, nil
}

// Collection returns a handle to the named collection
func (s *MongoStore) Collection(name string) Collection {
	return &mongoCollection{coll: s.db.Collection(name)}
}

// Ping verifies the store is reachable
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects from MongoDB
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) Find(ctx context.Context, filter Filter) ([]Document, error) {
	cursor, err := c.coll.Find(ctx, filterToBSON(filter))
	if err != nil {
		return nil, fmt.Errorf("find failed: %w", err)
	}
	defer cursor.Close(ctx)

	docs := make([]Document, 0)
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode failed: %w", err)
		}
		docs = append(docs, fromBSON(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor failed: %w", err)
	}

	return docs, nil
}

func (c *mongoCollection) Get(ctx context.Context, id string) (Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// An unparseable ID cannot reference any document
		return nil, ErrNoDocument
	}

	var raw bson.M
	err = c.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("get failed: %w", err)
	}

	return fromBSON(raw), nil
}

func (c *mongoCollection) Insert(ctx context.Context, doc Document) (string, error) {
	fields := bson.M{}
	for k, v := range doc {
		if k == "id" {
			continue
		}
		fields[k] = v
	}

	result, err := c.coll.InsertOne(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("insert failed: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted ID type %T", result.InsertedID)
	}
	return oid.Hex(), nil
}

func (c *mongoCollection) Merge(ctx context.Context, id string, fields Document) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNoDocument
	}

	set := bson.M{}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		set[k] = v
	}

	if len(set) == 0 {
		// Nothing to change, but the caller still expects an existence check
		err := c.coll.FindOne(ctx, bson.M{"_id": oid}).Err()
		if err == mongo.ErrNoDocuments {
			return ErrNoDocument
		}
		if err != nil {
			return fmt.Errorf("merge failed: %w", err)
		}
		return nil
	}

	result, err := c.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (c *mongoCollection) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNoDocument
	}

	result, err := c.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

var _ Collection = (*mongoCollection)(nil)

// filterToBSON translates a Filter into a MongoDB query document.
// Contains maps to plain field equality: MongoDB matches a scalar against
// array fields element-wise.
func filterToBSON(f Filter) bson.M {
	if len(f.conds) == 0 {
		return bson.M{}
	}
	if len(f.conds) == 1 {
		c := f.conds[0]
		return bson.M{c.field: c.value}
	}

	and := make(bson.A, 0, len(f.conds))
	for _, c := range f.conds {
		and = append(and, bson.M{c.field: c.value})
	}
	return bson.M{"$and": and}
}

// fromBSON converts a decoded BSON document into a Document, mapping the
// ObjectID under _id to a hex string under "id".
func fromBSON(raw bson.M) Document {
	doc := make(Document, len(raw))
	for k, v := range raw {
		if k == "_id" {
			if oid, ok := v.(primitive.ObjectID); ok {
				doc["id"] = oid.Hex()
				continue
			}
			doc["id"] = fmt.Sprintf("%v", v)
			continue
		}
		doc[k] = normalizeValue(v)
	}
	return doc
}

// normalizeValue flattens BSON container types into plain Go maps and slices
// so documents round-trip through JSON the same way regardless of backend.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case bson.M:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = normalizeValue(inner)
		}
		return m
	case primitive.A:
		s := make([]any, len(val))
		for i, inner := range val {
			s[i] = normalizeValue(inner)
		}
		return s
	case primitive.DateTime:
		return val.Time()
	default:
		return v
	}
}
