package domain

// Household is a named group owning a member set of user identifiers.
// Members is a set: a user id appears at most once.
type Household struct {
	ID      string   `json:"id" bson:"_id"`
	Name    string   `json:"name" bson:"name"`
	Members []string `json:"members" bson:"members"`
}

// HasMember reports whether userID is in the member set.
func (h *Household) HasMember(userID string) bool {
	for _, m := range h.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// AddMember adds userID to the member set. Adding an existing member is a
// no-op, never a duplicate.
func (h *Household) AddMember(userID string) {
	if h.HasMember(userID) {
		return
	}
	h.Members = append(h.Members, userID)
}

// RemoveMember removes userID from the member set. Removing an absent member
// is a no-op, never an error.
func (h *Household) RemoveMember(userID string) {
	for i, m := range h.Members {
		if m == userID {
			h.Members = append(h.Members[:i], h.Members[i+1:]...)
			return
		}
	}
}
