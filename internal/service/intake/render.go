package intake

import (
	"fmt"

	"github.com/solmerch/orderbot/internal/model/order"
)

const (
	welcomeText  = "Welcome to the Shop!"
	reviewsText  = "Here are our reviews:"
	submenuText  = "Select an option:"
	howToPayText = "After placing your order, we'll give you a Solana (SOL) address and the exact amount to send.\n\n" +
		"No crypto knowledge needed — just copy and paste. We'll handle the rest.\n\n" +
		"Need help? Here are step-by-step videos:\n" +
		"▶️ How to Buy Solana on Coinbase: https://www.youtube.com/watch?v=O4YzYAKrFME\n" +
		"▶️ How to Send Solana from Coinbase: https://www.youtube.com/watch?v=3sXN-ZJB-7U"

	askHandlePrompt   = "Please enter your Telegram handle:"
	askNamePrompt     = "Enter your full name for shipping:"
	askAddressPrompt  = "Enter your full shipping address:"
	askReferralPrompt = "Optional: Enter the Telegram handle of the person who referred you (or type 'none'):"
	chooseTierPrompt  = "Choose your order type:"

	referralFoundText = "Referral found! 🎉 You've earned a 10% loyalty bonus."
	rateFailedText    = "We couldn't fetch the current SOL price. Please choose your order type again."
)

func menuReply() Reply {
	return Reply{
		Text: welcomeText,
		Keyboard: [][]Button{{
			{Label: "📝 Reviews", Data: SelectReviews},
			{Label: "🛒 Order Now", Data: SelectOrder},
		}},
	}
}

func reviewsReply() Reply {
	return Reply{
		Text:     reviewsText,
		Keyboard: [][]Button{{{Label: "⬅️ Back to Menu", Data: SelectMenu}}},
		Edit:     true,
	}
}

func orderMenuReply() Reply {
	return Reply{
		Text: submenuText,
		Keyboard: [][]Button{
			{{Label: "💳 How to Pay using SOL", Data: SelectHowToPay}},
			{{Label: "📦 Enter Shipping Info", Data: SelectShippingInfo}},
		},
		Edit: true,
	}
}

func howToPayReply() Reply {
	return Reply{Text: howToPayText, Edit: true}
}

func tierMenuReply() Reply {
	rows := make([][]Button, 0, len(order.Tiers()))
	for _, t := range order.Tiers() {
		rows = append(rows, []Button{{Label: string(t), Data: string(t)}})
	}
	return Reply{Text: chooseTierPrompt, Keyboard: rows}
}

// promptFor re-issues the entry prompt of the given state.
func promptFor(state order.State) Reply {
	switch state {
	case order.StateAskHandle:
		return Reply{Text: askHandlePrompt, Edit: true}
	case order.StateAskName:
		return Reply{Text: askNamePrompt}
	case order.StateAskAddress:
		return Reply{Text: askAddressPrompt}
	case order.StateAskReferral:
		return Reply{Text: askReferralPrompt}
	case order.StateChooseTier:
		return tierMenuReply()
	}
	return menuReply()
}

func quoteReply(q order.Quote) Reply {
	text := fmt.Sprintf("%s — $%s total", q.Tier, q.USDTotal.StringFixed(2))
	if q.Discounted {
		text += " (10% loyalty discount applied)"
	}
	text += fmt.Sprintf("\nSend %s SOL to complete your order.\nQuote ID: %s", q.SOLAmount, q.ID)
	return Reply{Text: text, Quote: &q}
}
