package order

import "time"

// State tags where one buyer currently is in the intake conversation.
type State string

const (
	StateMainMenu    State = "main_menu"
	StateAskHandle   State = "ask_handle"
	StateAskName     State = "ask_name"
	StateAskAddress  State = "ask_address"
	StateAskReferral State = "ask_referral"
	StateChooseTier  State = "choose_tier"
	StateCompleted   State = "completed"
)

// Valid reports whether the tag is one the engine knows how to resume.
func (s State) Valid() bool {
	switch s {
	case StateMainMenu, StateAskHandle, StateAskName, StateAskAddress,
		StateAskReferral, StateChooseTier, StateCompleted:
		return true
	}
	return false
}

// Session accumulates one buyer's in-progress order across the conversation.
// Fields are filled strictly in declaration order; LoyaltyDiscount is derived
// from ReferralCode exactly once and never recomputed.
type Session struct {
	UserID          string    `json:"userId"`
	State           State     `json:"state"`
	ContactHandle   string    `json:"contactHandle,omitempty"`
	FullName        string    `json:"fullName,omitempty"`
	ShippingAddress string    `json:"shippingAddress,omitempty"`
	ReferralCode    string    `json:"referralCode,omitempty"`
	LoyaltyDiscount bool      `json:"loyaltyDiscount"`
	Tier            Tier      `json:"tier,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewSession returns an empty session positioned at the main menu.
func NewSession(userID string, now time.Time) Session {
	return Session{
		UserID:    userID,
		State:     StateMainMenu,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
