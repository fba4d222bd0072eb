package intake

import "github.com/solmerch/orderbot/internal/model/order"

// Action names the side effect a transition requires from the engine. Screen
// actions render static content; the Set/Resolve/Quote actions also write the
// session field owned by the state being left.
type Action int

const (
	ActionShowMenu Action = iota
	ActionShowReviews
	ActionShowOrderMenu
	ActionShowHowToPay
	ActionAskHandle
	ActionSetHandle
	ActionSetName
	ActionSetAddress
	ActionResolveReferral
	ActionQuoteTier
	ActionRepeatPrompt
)

// Transition is the pure state-machine step: no I/O, no store access. The
// returned state is where the session lands if the engine applies the action
// successfully; the engine keeps the session in place when a quote fails.
func Transition(state order.State, ev Event) (order.State, Action) {
	// A menu selection from anywhere re-enters the main menu.
	if ev.Kind == EventSelection && ev.Payload == SelectMenu {
		return order.StateMainMenu, ActionShowMenu
	}

	// Unknown or completed sessions are treated as fresh entries.
	if !state.Valid() || state == order.StateCompleted {
		state = order.StateMainMenu
	}

	switch state {
	case order.StateMainMenu:
		if ev.Kind == EventSelection {
			switch ev.Payload {
			case SelectReviews:
				return order.StateMainMenu, ActionShowReviews
			case SelectOrder:
				return order.StateMainMenu, ActionShowOrderMenu
			case SelectHowToPay:
				return order.StateMainMenu, ActionShowHowToPay
			case SelectShippingInfo:
				return order.StateAskHandle, ActionAskHandle
			}
		}
		return order.StateMainMenu, ActionShowMenu

	case order.StateAskHandle:
		if ev.Kind == EventText {
			return order.StateAskName, ActionSetHandle
		}
		return order.StateAskHandle, ActionRepeatPrompt

	case order.StateAskName:
		if ev.Kind == EventText {
			return order.StateAskAddress, ActionSetName
		}
		return order.StateAskName, ActionRepeatPrompt

	case order.StateAskAddress:
		if ev.Kind == EventText {
			return order.StateAskReferral, ActionSetAddress
		}
		return order.StateAskAddress, ActionRepeatPrompt

	case order.StateAskReferral:
		if ev.Kind == EventText {
			return order.StateChooseTier, ActionResolveReferral
		}
		return order.StateAskReferral, ActionRepeatPrompt

	case order.StateChooseTier:
		if ev.Kind == EventSelection && order.Tier(ev.Payload).Valid() {
			return order.StateCompleted, ActionQuoteTier
		}
		return order.StateChooseTier, ActionRepeatPrompt
	}

	return order.StateMainMenu, ActionShowMenu
}
