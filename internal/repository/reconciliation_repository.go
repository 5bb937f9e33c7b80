package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smart-rentals/service-rental/internal/domain/rental"
)

// MongoReconciliationRepository persists detected inconsistency records for
// the out-of-band repair process.
type MongoReconciliationRepository struct {
	coll *mongo.Collection
}

// NewMongoReconciliationRepository creates a new MongoReconciliationRepository.
func NewMongoReconciliationRepository(db *mongo.Database) *MongoReconciliationRepository {
	return &MongoReconciliationRepository{coll: db.Collection(reconciliationsCollection)}
}

// Save persists a reconciliation record.
func (r *MongoReconciliationRepository) Save(ctx context.Context, rec *rental.Reconciliation) error {
	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return rental.NewStoreError("insert reconciliation", err)
	}
	return nil
}
