package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"connectrpc.com/connect"

	"github.com/mmynk/spendly/internal/models"
	"github.com/mmynk/spendly/internal/rpc"
	"github.com/mmynk/spendly/internal/storage"
)

const (
	// messageHistoryLimit is the default and maximum page of ListMessages.
	messageHistoryLimit = 50

	maxMessageLength = 2000
)

// MessageService implements the Connect MessageService
type MessageService struct {
	store storage.Store
}

// NewMessageService creates a new MessageService with the given storage backend.
func NewMessageService(store storage.Store) *MessageService {
	return &MessageService{store: store}
}

// SendMessage posts a text message to a group the caller belongs to.
func (s *MessageService) SendMessage(ctx context.Context, req *connect.Request[rpc.SendMessageRequest]) (*connect.Response[rpc.SendMessageResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	group, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Msg.Text)
	if text == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("message text required"))
	}
	if utf8.RuneCountInString(text) > maxMessageLength {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("message longer than %d characters", maxMessageLength))
	}

	message := &models.Message{
		GroupID: group.ID,
		UserID:  userID,
		Text:    text,
		Type:    models.MessageTypeText,
	}
	if err := s.store.AppendMessage(ctx, message); err != nil {
		slog.Error("SendMessage failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Debug("Message sent", "message_id", message.ID, "group_id", group.ID)
	return connect.NewResponse(&rpc.SendMessageResponse{Message: rpc.MessageFromModel(message, group)}), nil
}

// ListMessages returns a group's most recent messages, newest first.
func (s *MessageService) ListMessages(ctx context.Context, req *connect.Request[rpc.ListMessagesRequest]) (*connect.Response[rpc.ListMessagesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	group, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	limit := req.Msg.Limit
	switch {
	case limit < 0:
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("limit must not be negative"))
	case limit == 0 || limit > messageHistoryLimit:
		limit = messageHistoryLimit
	}

	messages, err := s.store.ListMessagesByGroup(ctx, group.ID, limit)
	if err != nil {
		slog.Error("ListMessages failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	resp := &rpc.ListMessagesResponse{Messages: make([]*rpc.Message, len(messages))}
	for i, m := range messages {
		resp.Messages[i] = rpc.MessageFromModel(m, group)
	}
	return connect.NewResponse(resp), nil
}

// announceExpense posts an expense message for a newly recorded expense.
// The expense is already committed, so a failure here is only logged.
func announceExpense(ctx context.Context, store storage.Store, group *models.Group, recordedBy string, expense *models.Expense) {
	var text string
	if expense.IsSettlement() {
		text = fmt.Sprintf("%s - %s", expense.Description, expense.Amount.StringFixed(2))
	} else {
		split := "split equally"
		if len(expense.SplitAmong) > 0 {
			names := make([]string, len(expense.SplitAmong))
			for i, id := range expense.SplitAmong {
				names[i] = group.MemberName(id)
			}
			split = "split among " + strings.Join(names, ", ")
		}
		text = fmt.Sprintf("Expense added: %s - %s paid by %s, %s",
			expense.Description, expense.Amount.StringFixed(2), group.MemberName(expense.PaidBy), split)
	}

	message := &models.Message{
		GroupID:   group.ID,
		UserID:    recordedBy,
		Text:      text,
		Type:      models.MessageTypeExpense,
		ExpenseID: expense.ID,
	}
	if err := store.AppendMessage(ctx, message); err != nil {
		slog.Warn("Failed to announce expense", "group_id", group.ID, "expense_id", expense.ID, "error", err)
	}
}
