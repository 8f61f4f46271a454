package chatRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/database/repository"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoChatRepo implements ChatRepository over the chats, messages and online_users collections.
type MongoChatRepo struct {
	chats    *mongo.Collection
	messages *mongo.Collection
	online   *mongo.Collection
}

func NewMongoChatRepo(db *mongo.Database) (*MongoChatRepo, error) {
	repo := &MongoChatRepo{
		chats:    db.Collection("chats"),
		messages: db.Collection("messages"),
		online:   db.Collection("online_users"),
	}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoChatRepo) ensureIndexes() error {
	ctx, cancel := repository.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.chats.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create chat indexes: %w", err)
	}
	if _, err := r.messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "chatId", Value: 1}, {Key: "timestamp", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}

// SeedIfEmpty loads the static conversations into an empty database.
func (r *MongoChatRepo) SeedIfEmpty(ctx context.Context, chats []models.Chat, messages map[string][]models.Message, online []models.OnlineUser) error {
	ctx, cancel := repository.NewContext(ctx, 15*time.Second)
	defer cancel()

	n, err := r.chats.EstimatedDocumentCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count chats: %w", err)
	}
	if n > 0 {
		return nil
	}
	var docs []interface{}
	for _, c := range chats {
		docs = append(docs, c)
	}
	if len(docs) > 0 {
		if _, err := r.chats.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to seed chats: %w", err)
		}
	}
	docs = docs[:0]
	for _, msgs := range messages {
		for _, m := range msgs {
			docs = append(docs, m)
		}
	}
	if len(docs) > 0 {
		if _, err := r.messages.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to seed messages: %w", err)
		}
	}
	docs = docs[:0]
	for _, u := range online {
		docs = append(docs, u)
	}
	if len(docs) > 0 {
		if _, err := r.online.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to seed online users: %w", err)
		}
	}
	return nil
}

func (r *MongoChatRepo) GetAll(ctx context.Context) ([]models.Chat, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "lastMessageTime", Value: -1}})
	cursor, err := r.chats.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve chats: %w", err)
	}
	defer cursor.Close(ctx)

	var chats []models.Chat
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, fmt.Errorf("failed to decode chats: %w", err)
	}
	return chats, nil
}

func (r *MongoChatRepo) GetByID(ctx context.Context, id string) (*models.Chat, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	var c models.Chat
	if err := r.chats.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch chat with id %s: %w", id, err)
	}
	return &c, nil
}

func (r *MongoChatRepo) GetMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"chatId": chatID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve messages for chat %s: %w", chatID, err)
	}
	defer cursor.Close(ctx)

	var msgs []models.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return msgs, nil
}

func (r *MongoChatRepo) GetOnlineUsers(ctx context.Context) ([]models.OnlineUser, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.online.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve online users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.OnlineUser
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode online users: %w", err)
	}
	return users, nil
}
