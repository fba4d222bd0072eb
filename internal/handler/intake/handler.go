package intake

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/solmerch/orderbot/internal/model/order"
	intakeservice "github.com/solmerch/orderbot/internal/service/intake"
	"github.com/solmerch/orderbot/pkg/utils"
)

// Handler adapts inbound transport events to the conversation engine.
type Handler struct {
	engine *intakeservice.Engine
}

// New creates the intake HTTP handler.
func New(engine *intakeservice.Engine) *Handler {
	return &Handler{engine: engine}
}

// RegisterRoutes mounts the intake endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/events", h.handleEvent)
	r.Get("/catalog", h.handleCatalog)
}

func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID  string `json:"userId"`
		Kind    string `json:"kind"`
		Payload string `json:"payload"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.UserID == "" {
		utils.RespondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	kind := intakeservice.EventKind(payload.Kind)
	if kind != intakeservice.EventText && kind != intakeservice.EventSelection {
		utils.RespondError(w, http.StatusBadRequest, "kind must be \"text\" or \"selection\"")
		return
	}

	replies, err := h.engine.HandleEvent(r.Context(), intakeservice.Event{
		UserID:  payload.UserID,
		Kind:    kind,
		Payload: payload.Payload,
	})
	if err != nil {
		if errors.Is(err, intakeservice.ErrMissingUser) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[intake] event for %s failed: %v", payload.UserID, err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to process event")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"replies": replies})
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	type item struct {
		Tier     order.Tier      `json:"tier"`
		PriceUSD decimal.Decimal `json:"priceUsd"`
	}

	catalog := h.engine.Catalog()
	items := make([]item, 0, len(catalog))
	for _, t := range order.Tiers() {
		items = append(items, item{Tier: t, PriceUSD: catalog[t]})
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"tiers":       items,
		"shippingUsd": h.engine.ShippingUSD(),
	})
}
