package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medibook/database/repository"
	chatRepo "medibook/database/repository/chat"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrChatNotFound = errors.New("chat not found")
	ErrEmptyMessage = errors.New("message cannot be empty")
)

// ChatView is a chat list row with the avatar fallback resolved.
type ChatView struct {
	models.Chat
	Initials string `json:"initials"`
}

// ListView is the chat list screen.
type ListView struct {
	Query       string     `json:"query,omitempty"`
	Chats       []ChatView `json:"chats"`
	UnreadTotal int        `json:"unreadTotal"`
}

// Thread is one conversation with its messages, oldest first.
type Thread struct {
	Chat     ChatView         `json:"chat"`
	Messages []models.Message `json:"messages"`
}

// Service serves the messaging screens. Sending is logged, not saved.
type Service struct {
	Repo  chatRepo.ChatRepository
	Clock utils.Clock
}

func NewService(repo chatRepo.ChatRepository, clock utils.Clock) *Service {
	if clock == nil {
		clock = utils.SystemClock()
	}
	return &Service{Repo: repo, Clock: clock}
}

func toView(c models.Chat) ChatView {
	return ChatView{Chat: c, Initials: utils.Initials(c.Name)}
}

// Matches reports whether the chat's name or specialty contains query,
// ignoring case. An empty query matches everything.
func Matches(c models.Chat, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Specialty), q)
}

// List returns the chats matching query in their stored order. UnreadTotal
// counts every chat, not just the matches.
func (s *Service) List(ctx context.Context, query string) (*ListView, error) {
	all, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chats: %w", err)
	}
	view := &ListView{Query: strings.TrimSpace(query), Chats: make([]ChatView, 0, len(all))}
	for _, c := range all {
		view.UnreadTotal += c.UnreadCount
		if Matches(c, query) {
			view.Chats = append(view.Chats, toView(c))
		}
	}
	return view, nil
}

func (s *Service) Thread(ctx context.Context, id string) (*Thread, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	msgs, err := s.Repo.GetMessages(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	return &Thread{Chat: toView(*c), Messages: msgs}, nil
}

// Send builds the outgoing message. There is no transport, so the message is
// logged and returned without being stored.
func (s *Service) Send(ctx context.Context, chatID, senderID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if _, err := s.Repo.GetByID(ctx, chatID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	msg := &models.Message{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   content,
		Timestamp: s.Clock.Now(),
		IsFromMe:  true,
	}
	utils.GetLogger().Info("chat message send requested",
		zap.String("chatID", chatID),
		zap.String("messageID", msg.ID),
		zap.Int("length", len(content)),
	)
	return msg, nil
}

func (s *Service) OnlineUsers(ctx context.Context) ([]models.OnlineUser, error) {
	users, err := s.Repo.GetOnlineUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load online users: %w", err)
	}
	return users, nil
}
