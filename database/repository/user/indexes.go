package userRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes enforces one account per id, email and phone number.
// Accounts without a phone are left out of the phone index.
func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := repository.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	phoneIndex := options.Index().
		SetName("uniq_phone").
		SetUnique(true).
		SetPartialFilterExpression(bson.M{"phoneNumber": bson.M{"$type": "string", "$gt": ""}})

	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetName("uniq_id").SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("uniq_email").SetUnique(true)},
		{Keys: bson.D{{Key: "phoneNumber", Value: 1}}, Options: phoneIndex},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}
