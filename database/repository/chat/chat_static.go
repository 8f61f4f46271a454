package chatRepo

import (
	"context"

	"medibook/database/repository"
	"medibook/models"
)

// StaticChatRepo serves fixed in-memory conversations.
type StaticChatRepo struct {
	chats    []models.Chat
	messages map[string][]models.Message
	online   []models.OnlineUser
}

func NewStaticChatRepo(chats []models.Chat, messages map[string][]models.Message, online []models.OnlineUser) *StaticChatRepo {
	return &StaticChatRepo{chats: chats, messages: messages, online: online}
}

func (r *StaticChatRepo) GetAll(_ context.Context) ([]models.Chat, error) {
	out := make([]models.Chat, len(r.chats))
	copy(out, r.chats)
	return out, nil
}

func (r *StaticChatRepo) GetByID(_ context.Context, id string) (*models.Chat, error) {
	for _, c := range r.chats {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *StaticChatRepo) GetMessages(_ context.Context, chatID string) ([]models.Message, error) {
	msgs := r.messages[chatID]
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (r *StaticChatRepo) GetOnlineUsers(_ context.Context) ([]models.OnlineUser, error) {
	out := make([]models.OnlineUser, len(r.online))
	copy(out, r.online)
	return out, nil
}
