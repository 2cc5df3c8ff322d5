package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/types"
	"gorm.io/gorm"
)

// ChatService stores direct messages. Delivery is by polling; nothing is pushed.
type ChatService struct {
	db    *gorm.DB
	users UserStore
}

var _ IChatService = (*ChatService)(nil)

func NewChatService(db *gorm.DB, users UserStore) *ChatService {
	return &ChatService{db: db, users: users}
}

func conversation(tx *gorm.DB, a, b uuid.UUID) *gorm.DB {
	return tx.Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", a, b, b, a)
}

// latestMessagesSQL picks, for every counterpart of a user, the newest message they
// exchanged. Rows tied on created_at all come back and are settled by the caller.
const latestMessagesSQL = `
SELECT m.* FROM messages m
JOIN (
	SELECT CASE WHEN sender_id = @user THEN recipient_id ELSE sender_id END AS counterpart,
		MAX(created_at) AS latest
	FROM messages
	WHERE sender_id = @user OR recipient_id = @user
	GROUP BY 1
) l ON m.created_at = l.latest
	AND ((m.sender_id = @user AND m.recipient_id = l.counterpart)
		OR (m.recipient_id = @user AND m.sender_id = l.counterpart))
ORDER BY m.id`

// ListContacts returns every other user whose name contains query, with the latest
// message exchanged with each
func (s *ChatService) ListContacts(ctx context.Context, userID uuid.UUID, query string) ([]types.ChatContact, error) {
	users, err := s.users.Search(ctx, userID, query)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	var latest []models.Message
	if err := s.db.WithContext(ctx).
		Raw(latestMessagesSQL, sql.Named("user", userID)).
		Scan(&latest).Error; err != nil {
		return nil, apperror.NewInternal(err)
	}

	byCounterpart := make(map[uuid.UUID]*models.Message, len(latest))
	for i := range latest {
		other := latest[i].SenderID
		if other == userID {
			other = latest[i].RecipientID
		}
		if _, seen := byCounterpart[other]; !seen {
			byCounterpart[other] = &latest[i]
		}
	}

	contacts := make([]types.ChatContact, 0, len(users))
	for _, u := range users {
		contact := types.ChatContact{ID: u.ID, Name: u.Name, Role: u.Role}
		if last, ok := byCounterpart[u.ID]; ok {
			contact.LastMessage = &last.Content
			contact.Timestamp = &last.CreatedAt
		}
		contacts = append(contacts, contact)
	}
	return contacts, nil
}

// ListMessages returns the conversation between userID and otherID, oldest first
func (s *ChatService) ListMessages(ctx context.Context, userID, otherID uuid.UUID) ([]types.MessageResponse, error) {
	if err := s.requireUser(ctx, otherID); err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := conversation(s.db.WithContext(ctx), userID, otherID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, apperror.NewInternal(err)
	}

	result := make([]types.MessageResponse, len(messages))
	for i := range messages {
		result[i] = types.MessageResponse{Message: messages[i], IsOwn: messages[i].SenderID == userID}
	}
	return result, nil
}

func (s *ChatService) SendMessage(ctx context.Context, senderID, recipientID uuid.UUID, req *types.SendMessageRequest) (*types.MessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperror.NewInvalidInput(apperror.CodeInvalidContent, "Message cannot be empty", nil)
	}
	if senderID == recipientID {
		return nil, apperror.NewInvalidInput(apperror.CodeInvalidInput, "Cannot send a message to yourself", nil)
	}
	if err := s.requireUser(ctx, recipientID); err != nil {
		return nil, err
	}

	msg := &models.Message{SenderID: senderID, RecipientID: recipientID, Content: content}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, apperror.NewInternal(err)
	}
	return &types.MessageResponse{Message: *msg, IsOwn: true}, nil
}

func (s *ChatService) requireUser(ctx context.Context, id uuid.UUID) error {
	return requireUser(ctx, s.users, id)
}
