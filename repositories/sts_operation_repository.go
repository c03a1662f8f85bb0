package repository

import (
	"context"
	"fmt"

	"oceansms/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StsOperationRepository persists versioned STS operation documents.
type StsOperationRepository interface {
	Insert(ctx context.Context, op *models.StsOperation) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.StsOperation, error)
	ListLatest(ctx context.Context) ([]models.StsOperation, error)
	ListByParent(ctx context.Context, parentID primitive.ObjectID) ([]models.StsOperation, error)
	FindHead(ctx context.Context, parentID primitive.ObjectID) (*models.StsOperation, error)
	ReplaceHead(ctx context.Context, parentID primitive.ObjectID, next *models.StsOperation) error
	UpdateEquipments(ctx context.Context, id primitive.ObjectID, equipments []models.EquipmentUsage) error
}

type stsOperationRepository struct {
	collection *mongo.Collection
}

func NewStsOperationRepository(db *mongo.Database) StsOperationRepository {
	return &stsOperationRepository{
		collection: db.Collection("sts_operations"),
	}
}

func (r *stsOperationRepository) Insert(ctx context.Context, op *models.StsOperation) error {
	op.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, op)
	return err
}

func (r *stsOperationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.StsOperation, error) {
	var op models.StsOperation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&op)
	if err != nil {
		return nil, err
	}

	return &op, nil
}

func (r *stsOperationRepository) ListLatest(ctx context.Context) ([]models.StsOperation, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"isLatest": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ops []models.StsOperation
	if err = cursor.All(ctx, &ops); err != nil {
		return nil, err
	}

	return ops, nil
}

func (r *stsOperationRepository) ListByParent(ctx context.Context, parentID primitive.ObjectID) ([]models.StsOperation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "version", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"parentOperationId": parentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ops []models.StsOperation
	if err = cursor.All(ctx, &ops); err != nil {
		return nil, err
	}

	return ops, nil
}

// FindHead returns the highest-version document of a version group.
func (r *stsOperationRepository) FindHead(ctx context.Context, parentID primitive.ObjectID) (*models.StsOperation, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})

	var op models.StsOperation
	err := r.collection.FindOne(ctx, bson.M{"parentOperationId": parentID}, opts).Decode(&op)
	if err != nil {
		return nil, err
	}

	return &op, nil
}

// ReplaceHead retires the current head of a version group and inserts next
// as the new latest version. Unset-siblings plus insert must land together,
// otherwise a concurrent update can leave two documents flagged latest.
func (r *stsOperationRepository) ReplaceHead(ctx context.Context, parentID primitive.ObjectID, next *models.StsOperation) error {
	session, err := r.collection.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessionCtx mongo.SessionContext) (interface{}, error) {
		if err := r.unsetLatest(sessionCtx, parentID); err != nil {
			return nil, err
		}
		if err := r.Insert(sessionCtx, next); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

func (r *stsOperationRepository) unsetLatest(ctx context.Context, parentID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"parentOperationId": parentID},
		bson.M{"$set": bson.M{"isLatest": false}},
	)
	if err != nil {
		return fmt.Errorf("failed to unset latest flags for %s: %v", parentID.Hex(), err)
	}

	return nil
}

func (r *stsOperationRepository) UpdateEquipments(ctx context.Context, id primitive.ObjectID, equipments []models.EquipmentUsage) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"equipments": equipments}},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no operation found with id %s", id.Hex())
	}

	return nil
}
