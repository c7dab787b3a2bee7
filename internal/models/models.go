package models

import (
	"time"
)

type Event struct {
	EventID       string    `json:"eventId" db:"event_id"`
	Token         string    `json:"token" db:"token"`
	Title         string    `json:"title" db:"title"`
	EventDate     time.Time `json:"eventDate" db:"event_date"`
	HostID        string    `json:"hostId" db:"host_id"`
	AttendeeCount int       `json:"attendeeCount" db:"attendee_count"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

type Post struct {
	PostID       string      `json:"postId" db:"post_id"`
	EventID      string      `json:"eventId" db:"event_id"`
	AuthorID     string      `json:"authorId" db:"author_id"`
	AuthorName   string      `json:"authorName" db:"author_name"`
	Type         string      `json:"type" db:"type"`
	Content      string      `json:"content" db:"content"`
	StoragePath  string      `json:"storagePath" db:"storage_path"`
	LikeCount    int         `json:"likeCount" db:"like_count"`
	CommentCount int         `json:"commentCount" db:"comment_count"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	Media        []MediaItem `json:"media" db:"-"`
}

type MediaItem struct {
	MediaID      string    `json:"mediaId" db:"media_id"`
	PostID       string    `json:"postId" db:"post_id"`
	Type         string    `json:"type" db:"type"`
	StoragePath  string    `json:"storagePath" db:"storage_path"`
	DisplayOrder int       `json:"displayOrder" db:"display_order"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Like struct {
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type DMThread struct {
	ThreadID      string    `json:"threadId" db:"thread_id"`
	EventID       string    `json:"eventId" db:"event_id"`
	Participant1  string    `json:"participant1" db:"participant1"`
	Participant2  string    `json:"participant2" db:"participant2"`
	MessageCount  int       `json:"messageCount" db:"message_count"`
	LastMessageAt time.Time `json:"lastMessageAt" db:"last_message_at"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

type DMMessage struct {
	MessageID string    `json:"messageId" db:"message_id"`
	ThreadID  string    `json:"threadId" db:"thread_id"`
	SenderID  string    `json:"senderId" db:"sender_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type User struct {
	UserID      string    `json:"userId" db:"user_id"`
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"displayName" db:"display_name"`
	AvatarURL   string    `json:"avatarUrl" db:"avatar_url"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
