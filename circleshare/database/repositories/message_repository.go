package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/circleshare/circleshare/circleshare/database/models"
	"github.com/uptrace/bun"
)

// MessageRepository stores direct messages. It doubles as the notification
// backend: lifecycle notices arrive in the member's inbox as ordinary
// messages tied to the item.
type MessageRepository interface {
	Send(ctx context.Context, msg *models.Message) error
	Notify(ctx context.Context, senderID, recipientID, itemID int64, body string) error
	Inbox(ctx context.Context, memberID int64, limit int) ([]*models.Message, error)
	Conversation(ctx context.Context, memberA, memberB int64, limit int) ([]*models.Message, error)
}

type messageRepository struct {
	db *bun.DB
}

func NewMessageRepository(db *bun.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Send(ctx context.Context, msg *models.Message) error {
	msg.CreatedAt = time.Now()
	_, err := r.db.NewInsert().Model(msg).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (r *messageRepository) Notify(ctx context.Context, senderID, recipientID, itemID int64, body string) error {
	msg := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
	}
	if itemID != 0 {
		msg.ItemID = &itemID
	}
	return r.Send(ctx, msg)
}

func (r *messageRepository) Inbox(ctx context.Context, memberID int64, limit int) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.NewSelect().
		Model(&messages).
		Where("msg.recipient_id = ?", memberID).
		Order("msg.created_at DESC", "msg.id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inbox: %w", err)
	}
	return messages, nil
}

func (r *messageRepository) Conversation(ctx context.Context, memberA, memberB int64, limit int) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.NewSelect().
		Model(&messages).
		Where("(msg.sender_id = ? AND msg.recipient_id = ?) OR (msg.sender_id = ? AND msg.recipient_id = ?)",
			memberA, memberB, memberB, memberA).
		Order("msg.created_at ASC", "msg.id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return messages, nil
}
