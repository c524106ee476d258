package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/spendly/internal/models"
)

// AppendMessage persists a chat message.
func (s *SQLiteStore) AppendMessage(ctx context.Context, message *models.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt == 0 {
		message.CreatedAt = time.Now().Unix()
	}
	if message.Type == "" {
		message.Type = models.MessageTypeText
	}

	if err := s.groupExists(ctx, message.GroupID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, group_id, user_id, text, type, expense_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		message.ID, message.GroupID, message.UserID, message.Text, message.Type,
		sql.NullString{String: message.ExpenseID, Valid: message.ExpenseID != ""},
		message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	return nil
}

// ListMessagesByGroup retrieves the most recent messages of a group, newest first.
func (s *SQLiteStore) ListMessagesByGroup(ctx context.Context, groupID string, limit int) ([]*models.Message, error) {
	if err := s.groupExists(ctx, groupID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, user_id, text, type, expense_id, created_at
		 FROM messages WHERE group_id = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		groupID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages by group: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		message := &models.Message{}
		var expenseID sql.NullString
		if err := rows.Scan(&message.ID, &message.GroupID, &message.UserID, &message.Text,
			&message.Type, &expenseID, &message.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		message.ExpenseID = expenseID.String
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return messages, nil
}
