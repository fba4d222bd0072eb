package intake

import "github.com/solmerch/orderbot/internal/model/order"

// EventKind distinguishes free text from keyboard selections.
type EventKind string

const (
	EventText      EventKind = "text"
	EventSelection EventKind = "selection"
)

// Event is one inbound transport event for a single user.
type Event struct {
	UserID  string    `json:"userId"`
	Kind    EventKind `json:"kind"`
	Payload string    `json:"payload"`
}

// Selection payloads understood by the menu states.
const (
	SelectReviews      = "reviews"
	SelectOrder        = "order"
	SelectHowToPay     = "howtopay"
	SelectShippingInfo = "get_info"
	SelectMenu         = "menu"
)

// Button is one keyboard option offered with a reply.
type Button struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// Reply is a rendering instruction for the transport adapter. Edit asks the
// adapter to replace the currently displayed prompt instead of appending.
type Reply struct {
	Text     string       `json:"text"`
	Keyboard [][]Button   `json:"keyboard,omitempty"`
	Edit     bool         `json:"edit,omitempty"`
	Quote    *order.Quote `json:"quote,omitempty"`
}
