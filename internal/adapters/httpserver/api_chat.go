package httpserver

import (
	"net/http"

	"github.com/phenrril/munek/internal/domain"
	"github.com/phenrril/munek/internal/usecase"
)

type chatResponse struct {
	Messages []domain.ChatEntry `json:"messages"`
	Busy     bool               `json:"busy"`
}

func (s *Server) apiChat(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Messages: sf.Assistant.Messages(), Busy: sf.Assistant.Busy()})
}

func (s *Server) apiChatSend(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	reply, err := sf.Assistant.Send(r.Context(), req.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		usecase.ChatReply
		Cart cartResponse `json:"cart"`
	}{reply, s.cartResponse(sf.Cart.Snapshot())})
}

func (s *Server) apiChatReset(w http.ResponseWriter, r *http.Request) {
	sf, ok := s.storefront(w, r)
	if !ok {
		return
	}
	sf.Assistant.Reset()
	writeJSON(w, http.StatusOK, chatResponse{Messages: sf.Assistant.Messages()})
}
