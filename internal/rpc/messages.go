package rpc

import "github.com/shopspring/decimal"

// User is the public view of an account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// Member is a user as listed inside a group.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Group struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []Member `json:"members"`
	CreatedBy   string   `json:"created_by"`
	CreatedAt   int64    `json:"created_at"`
}

type CreateGroupRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	MemberEmails []string `json:"member_emails,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type AddMemberRequest struct {
	GroupID string `json:"group_id"`
	Email   string `json:"email"`
}

type AddMemberResponse struct {
	Group *Group `json:"group"`
}

type RemoveMemberRequest struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
}

type RemoveMemberResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"group_id"`
}

type DeleteGroupResponse struct{}

type Expense struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      string          `json:"paid_by"`
	Category    string          `json:"category"`
	SplitAmong  []string        `json:"split_among,omitempty"`
	CreatedAt   int64           `json:"created_at"`
}

type CreateExpenseRequest struct {
	GroupID     string          `json:"group_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      string          `json:"paid_by,omitempty"` // Defaults to the caller
	Category    string          `json:"category,omitempty"`
	SplitAmong  []string        `json:"split_among,omitempty"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	GroupID string `json:"group_id"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

// MemberBreakdown is one member's position in a group.
type MemberBreakdown struct {
	UserID    string          `json:"user_id"`
	UserName  string          `json:"user_name"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	TotalOwed decimal.Decimal `json:"total_owed"`
	Balance   decimal.Decimal `json:"balance"`
	Departed  bool            `json:"departed,omitempty"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type GroupBreakdown struct {
	GroupID        string             `json:"group_id"`
	GroupName      string             `json:"group_name"`
	TotalExpenses  decimal.Decimal    `json:"total_expenses"` // Excludes recorded settlements
	UserBreakdowns []*MemberBreakdown `json:"user_breakdowns"`
	Categories     []*CategoryTotal   `json:"categories"`

	// Inconsistencies lists IDs of expenses paid by former members.
	Inconsistencies []string `json:"inconsistencies,omitempty"`
}

type GetBreakdownRequest struct {
	GroupID string `json:"group_id"`
}

type GetBreakdownResponse struct {
	Breakdown *GroupBreakdown `json:"breakdown"`
}

type GetOverallBreakdownRequest struct{}

type GetOverallBreakdownResponse struct {
	Breakdowns []*GroupBreakdown `json:"breakdowns"`
}

type SettlementOption struct {
	UserID    string          `json:"user_id"`
	UserName  string          `json:"user_name"`
	Balance   decimal.Decimal `json:"balance"`
	CanSettle bool            `json:"can_settle"`
	Amount    decimal.Decimal `json:"amount"`
}

type GetSettlementOptionsRequest struct {
	GroupID string `json:"group_id"`
}

type GetSettlementOptionsResponse struct {
	Balance decimal.Decimal     `json:"balance"`
	Options []*SettlementOption `json:"options"`
}

type RecordSettlementRequest struct {
	GroupID string          `json:"group_id"`
	PayeeID string          `json:"payee_id"`
	Amount  decimal.Decimal `json:"amount"`
}

type RecordSettlementResponse struct {
	Expense *Expense `json:"expense"`
	Message string   `json:"message"`
}

// Message is a chat entry as shown to group members.
type Message struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Text      string `json:"text"`
	Type      string `json:"type"`
	ExpenseID string `json:"expense_id,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

type SendMessageRequest struct {
	GroupID string `json:"group_id"`
	Text    string `json:"text"`
}

type SendMessageResponse struct {
	Message *Message `json:"message"`
}

type ListMessagesRequest struct {
	GroupID string `json:"group_id"`
	Limit   int    `json:"limit,omitempty"` // Defaults to and is capped at 50
}

type ListMessagesResponse struct {
	Messages []*Message `json:"messages"` // Newest first
}
