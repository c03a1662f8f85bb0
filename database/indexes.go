package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes builds the indexes backing the uniqueness and lookup
// guarantees: unique equipment names, unique counter keys, version-group
// lookups for operations, unique form codes, and one record per plan item.
func CreateIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	type indexSet struct {
		collection string
		indexes    []mongo.IndexModel
	}

	sets := []indexSet{
		{
			collection: "equipment",
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "equipmentName", Value: 1}},
					Options: options.Index().SetName("idx_equipment_name_unique").SetUnique(true),
				},
			},
		},
		{
			collection: "counters",
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "key", Value: 1}},
					Options: options.Index().SetName("idx_counter_key_unique").SetUnique(true),
				},
			},
		},
		{
			collection: "sts_operations",
			indexes: []mongo.IndexModel{
				// VERSION LOOKUPS: head resolution and history listing
				{
					Keys: bson.D{
						{Key: "parentOperationId", Value: 1},
						{Key: "version", Value: -1},
					},
					Options: options.Index().SetName("idx_parent_version"),
				},
				// LATEST LISTING: dashboard and list views
				{
					Keys: bson.D{
						{Key: "isLatest", Value: 1},
					},
					Options: options.Index().SetName("idx_is_latest"),
				},
			},
		},
		{
			collection: "training_records",
			indexes: []mongo.IndexModel{
				// ONE RECORD PER PLAN ITEM
				{
					Keys: bson.D{
						{Key: "trainingPlanId", Value: 1},
						{Key: "plannedDate", Value: 1},
					},
					Options: options.Index().SetName("idx_plan_date_unique").SetUnique(true),
				},
			},
		},
		{
			collection: "drill_reports",
			indexes: []mongo.IndexModel{
				{
					Keys: bson.D{
						{Key: "drillPlanId", Value: 1},
						{Key: "plannedDate", Value: 1},
					},
					Options: options.Index().SetName("idx_plan_date_unique").SetUnique(true),
				},
			},
		},
		{
			collection: "users",
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "username", Value: 1}},
					Options: options.Index().SetName("idx_username_unique").SetUnique(true),
				},
			},
		},
	}

	for _, name := range []string{"subcontractor_audits", "supplier_due_diligence", "training_plans", "drill_plans", "equipment_defects"} {
		sets = append(sets, indexSet{
			collection: name,
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "formCode", Value: 1}},
					Options: options.Index().SetName("idx_form_code_unique").SetUnique(true).SetSparse(true),
				},
			},
		})
	}

	for _, set := range sets {
		if _, err := db.Collection(set.collection).Indexes().CreateMany(ctx, set.indexes); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %v", set.collection, err)
		}
	}

	fmt.Println("Database indexes created successfully")
	return nil
}
