package models

// Message types. Text messages are typed by members; expense messages are
// posted by the server when an expense or settlement is recorded.
const (
	MessageTypeText    = "text"
	MessageTypeExpense = "expense"
)

// Message is a chat entry in a group's conversation.
type Message struct {
	// ID is the unique identifier for the message (UUID format).
	ID string

	// GroupID is the group the message was posted in.
	GroupID string

	// UserID is the author. For expense messages it is the member who recorded the expense.
	UserID string

	// Text is the message body.
	Text string

	// Type is MessageTypeText or MessageTypeExpense.
	Type string

	// ExpenseID links an expense message to the expense it announces.
	ExpenseID string

	// CreatedAt is the Unix timestamp when the message was posted.
	CreatedAt int64
}
