package models

// Member is a user as seen from inside a group.
type Member struct {
	// ID is the user ID of the member (UUID format).
	ID string

	// Name is the display name shown in breakdowns.
	Name string

	// Email is used to invite members into a group.
	Email string
}

// Group is a named collection of members sharing expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Trip to Lisbon").
	Name string

	// Description is optional free text.
	Description string

	// Members is the current member list, ordered by member ID.
	Members []Member

	// CreatedBy is the user ID of the group creator.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether userID is a current member of the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// MemberName returns the display name for userID, or userID itself when the
// user is not a current member.
func (g *Group) MemberName(userID string) string {
	for _, m := range g.Members {
		if m.ID == userID {
			return m.Name
		}
	}
	return userID
}
