package handlers

import (
	"errors"
	"net/http"

	"github.com/pol3d/cardmail"
	"github.com/pol3d/cardmail/pkg/card"
)

// Card endpoint paths. The Netlify path keeps existing front-ends working.
const (
	SendCardPath        = "/send-card"
	NetlifySendCardPath = "/.netlify/functions/send-card"
)

// SendResponse is the success body. ID is null when the provider returned none.
type SendResponse struct {
	ID *string `json:"id"`
	OK bool    `json:"ok"`
}

// Card serves the send-card endpoint.
// Implements cardmail.Handler.
type Card struct {
	svc *card.Service
}

// NewCard creates the card handler.
func NewCard(svc *card.Service) *Card {
	return &Card{svc: svc}
}

// Routes declares POST and OPTIONS on both endpoint paths.
func (h *Card) Routes(r cardmail.Router) {
	for _, path := range []string{SendCardPath, NetlifySendCardPath} {
		r.POST(path, h.send)
		r.OPTIONS(path, h.preflight)
	}
}

// preflight answers OPTIONS when no CORS middleware handled it first.
func (h *Card) preflight(c cardmail.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func (h *Card) send(c cardmail.Context) error {
	body, err := c.ReadBody(h.svc.Limits().MaxBodySize())
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return card.NewError(card.KindPayloadTooLarge, card.ErrPayloadTooLarge.Message, card.WithError(err))
		}
		return card.NewError(card.KindInvalidRequestBody, card.ErrInvalidRequestBody.Message, card.WithError(err))
	}

	raw, err := card.ParseRequest(body)
	if err != nil {
		return err
	}

	res, err := h.svc.Send(c, raw)
	if err != nil {
		return err
	}

	resp := SendResponse{OK: true}
	if res.ID != "" {
		resp.ID = &res.ID
	}
	return c.JSON(http.StatusOK, resp)
}
