package httphandler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
)

type chatBot interface {
	Send(text string) (domain.ChatMessage, *service.Reply, error)
	Messages() []domain.ChatMessage
	Typing() bool
}

type noticeDrainer interface {
	Drain() []domain.Notice
}

type dashboardService interface {
	Dashboard(ctx context.Context) (service.Dashboard, error)
}

// GET v1/chat (200 OK)
// POST v1/chat JSON {"message"} (202 Accepted, 422)
// GET v1/notices (200 OK)
// GET v1/admin/dashboard (200 OK, 401 Unauthorized, 403 Forbidden)

type ShellHandler struct {
	chat    chatBot
	notices noticeDrainer
	admin   dashboardService
}

func RegisterShell(
	mux *http.ServeMux, c chatBot, n noticeDrainer, a dashboardService,
) {
	h := ShellHandler{chat: c, notices: n, admin: a}
	mux.HandleFunc("GET /v1/chat", h.GetChat)
	mux.HandleFunc("POST /v1/chat", h.PostChat)
	mux.HandleFunc("GET /v1/notices", h.GetNotices)
	mux.HandleFunc("GET /v1/admin/dashboard", h.GetDashboard)
}

func (h ShellHandler) chatView() Chat {
	return Chat{
		Messages:     h.chat.Messages(),
		Typing:       h.chat.Typing(),
		QuickReplies: service.QuickReplies,
	}
}

func (h ShellHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	const op = "ShellHandler.GetChat"
	writeJSON(w, slog.With("op", op), http.StatusOK, h.chatView())
}

// PostChat answers before the bot does; clients poll GET v1/chat.
func (h ShellHandler) PostChat(w http.ResponseWriter, r *http.Request) {
	const op = "ShellHandler.PostChat"
	log := slog.With("op", op)

	var req ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w, log, err)
		return
	}

	msg, _, err := h.chat.Send(req.Message)
	if err != nil {
		writeError(w, log, err)
		return
	}
	log.Debug("chat message accepted", "id", msg.ID)
	writeJSON(w, log, http.StatusAccepted, h.chatView())
}

func (h ShellHandler) GetNotices(w http.ResponseWriter, r *http.Request) {
	const op = "ShellHandler.GetNotices"
	notices := h.notices.Drain()
	if notices == nil {
		notices = []domain.Notice{}
	}
	writeJSON(w, slog.With("op", op), http.StatusOK, Notices{notices})
}

func (h ShellHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "ShellHandler.GetDashboard"
	log := slog.With("op", op)

	d, err := h.admin.Dashboard(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, d)
}
