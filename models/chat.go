package models

import "time"

// Chat is a conversation summarized by its latest message.
type Chat struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Avatar          string    `bson:"avatar" json:"avatar"`
	LastMessage     string    `bson:"lastMessage" json:"lastMessage"`
	LastMessageTime time.Time `bson:"lastMessageTime" json:"lastMessageTime"`
	UnreadCount     int       `bson:"unreadCount" json:"unreadCount"`
	IsOnline        bool      `bson:"isOnline" json:"isOnline"`
	Specialty       string    `bson:"specialty,omitempty" json:"specialty,omitempty"`
}

// Message belongs to the chat it is stored under.
type Message struct {
	ID        string    `bson:"id" json:"id"`
	ChatID    string    `bson:"chatId" json:"chatId"`
	SenderID  string    `bson:"senderId" json:"senderId"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	IsFromMe  bool      `bson:"isFromMe" json:"isFromMe"`
}

// OnlineUser is shown in the "online now" strip above the chat list.
type OnlineUser struct {
	ID     string `bson:"id" json:"id"`
	Name   string `bson:"name" json:"name"`
	Avatar string `bson:"avatar" json:"avatar"`
}
