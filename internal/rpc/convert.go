package rpc

import "github.com/mmynk/spendly/internal/models"

// UserFromModel converts a stored user to its public view.
func UserFromModel(u *models.User) *User {
	return &User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

// GroupFromModel converts a stored group to its wire form.
func GroupFromModel(g *models.Group) *Group {
	members := make([]Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = Member{ID: m.ID, Name: m.Name, Email: m.Email}
	}
	return &Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Members:     members,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
	}
}

// ToModel converts a wire group back to the domain model.
func (g *Group) ToModel() *models.Group {
	members := make([]models.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = models.Member{ID: m.ID, Name: m.Name, Email: m.Email}
	}
	return &models.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Members:     members,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
	}
}

// ExpenseFromModel converts a stored expense to its wire form.
func ExpenseFromModel(e *models.Expense) *Expense {
	return &Expense{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		Category:    e.Category,
		SplitAmong:  e.SplitAmong,
		CreatedAt:   e.CreatedAt,
	}
}

// ToModel converts a wire expense back to the domain model.
func (e *Expense) ToModel() *models.Expense {
	return &models.Expense{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		Category:    e.Category,
		SplitAmong:  e.SplitAmong,
		CreatedAt:   e.CreatedAt,
	}
}

// MessageFromModel converts a stored message to its wire form. The author's
// display name is resolved against the group's current members.
func MessageFromModel(m *models.Message, group *models.Group) *Message {
	return &Message{
		ID:        m.ID,
		GroupID:   m.GroupID,
		UserID:    m.UserID,
		UserName:  group.MemberName(m.UserID),
		Text:      m.Text,
		Type:      m.Type,
		ExpenseID: m.ExpenseID,
		CreatedAt: m.CreatedAt,
	}
}
