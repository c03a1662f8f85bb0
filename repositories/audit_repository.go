package repository

import (
	"context"
	"fmt"

	"oceansms/models"
	"oceansms/workflow"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AuditRepository persists sub-contractor due-diligence audits.
type AuditRepository interface {
	Create(ctx context.Context, audit *models.SubContractorAudit) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.SubContractorAudit, error)
	GetAll(ctx context.Context) ([]models.SubContractorAudit, error)
	GetByStatus(ctx context.Context, status workflow.Status) ([]models.SubContractorAudit, error)
	Update(ctx context.Context, id primitive.ObjectID, audit *models.SubContractorAudit) error
	StatusStats(ctx context.Context) ([]bson.M, error)
}

type auditRepository struct {
	collection *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) AuditRepository {
	return &auditRepository{
		collection: db.Collection("subcontractor_audits"),
	}
}

func (r *auditRepository) Create(ctx context.Context, audit *models.SubContractorAudit) error {
	audit.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, audit)
	return err
}

func (r *auditRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SubContractorAudit, error) {
	var audit models.SubContractorAudit
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&audit)
	if err != nil {
		return nil, err
	}

	return &audit, nil
}

func (r *auditRepository) GetAll(ctx context.Context) ([]models.SubContractorAudit, error) {
	return r.find(ctx, bson.M{})
}

func (r *auditRepository) GetByStatus(ctx context.Context, status workflow.Status) ([]models.SubContractorAudit, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *auditRepository) find(ctx context.Context, filter bson.M) ([]models.SubContractorAudit, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var audits []models.SubContractorAudit
	if err = cursor.All(ctx, &audits); err != nil {
		return nil, err
	}

	return audits, nil
}

func (r *auditRepository) Update(ctx context.Context, id primitive.ObjectID, audit *models.SubContractorAudit) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": audit})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no audit found with id %s", id.Hex())
	}

	return nil
}

// StatusStats groups audits by workflow status for the QHSE dashboard.
func (r *auditRepository) StatusStats(ctx context.Context) ([]bson.M, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}
