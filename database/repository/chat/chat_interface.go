package chatRepo

import (
	"context"

	"medibook/models"
)

// ChatRepository defines read access to conversations.
type ChatRepository interface {
	GetAll(ctx context.Context) ([]models.Chat, error)
	GetByID(ctx context.Context, id string) (*models.Chat, error)
	// GetMessages returns a chat's messages oldest first.
	GetMessages(ctx context.Context, chatID string) ([]models.Message, error)
	GetOnlineUsers(ctx context.Context) ([]models.OnlineUser, error)
}
