package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const documentsCollection = "documents"

// mongoRegistry stores records in a MongoDB collection with a unique index
// on content_hash; the index makes Record an atomic insert-if-absent.
type mongoRegistry struct {
	collection *mongo.Collection
}

// NewConnectMongo connects to uri, pings the primary and returns the client.
func NewConnectMongo(ctx context.Context, uri string, log *logger.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error occured during mongodb connection")
		return nil, fmt.Errorf("error occured during mongodb connection: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting mongodb (ping)")
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.Info().Str("func", "NewConnectMongo").Msg("connected to mongodb successfully")

	return client, nil
}

// NewMongoRegistry returns a [Registry] on the documents collection of
// database and makes sure the unique content hash index exists.
func NewMongoRegistry(ctx context.Context, client *mongo.Client, database string) (Registry, error) {
	collection := client.Database(database).Collection(documentsCollection)

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "content_hash", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create documents indexes: %w", err)
	}

	return &mongoRegistry{collection: collection}, nil
}

func (r *mongoRegistry) Exists(ctx context.Context, contentHash string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"content_hash": contentHash}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count > 0, nil
}

func (r *mongoRegistry) Record(ctx context.Context, record models.DocumentRecord) error {
	_, err := r.collection.InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyRegistered
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *mongoRegistry) Lookup(ctx context.Context, contentHash string) (models.DocumentRecord, error) {
	var rec models.DocumentRecord
	err := r.collection.FindOne(ctx, bson.M{"content_hash": contentHash}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DocumentRecord{}, ErrDocumentNotFound
	}
	if err != nil {
		return models.DocumentRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return rec, nil
}

func (r *mongoRegistry) List(ctx context.Context, filter models.DocumentFilter) ([]models.DocumentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "content_hash", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, buildMongoListFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer cursor.Close(ctx)

	records := make([]models.DocumentRecord, 0, 50)
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return records, nil
}

// buildMongoListFilter translates a [models.DocumentFilter] into a query
// document. User text is quoted before it is used as a regular expression.
func buildMongoListFilter(filter models.DocumentFilter) bson.M {
	query := bson.M{}

	if filter.HasCategory() {
		query["category"] = primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(filter.Category) + "$",
			Options: "i",
		}
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"filename": pattern},
			bson.M{"content_hash": pattern},
			bson.M{"mime_type": pattern},
		}
	}

	return query
}
