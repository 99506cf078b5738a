package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/functions"
	"hotel_booking/internal/domain"
)

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

/********** functions **********/

func (h *Handlers) listFunctions(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, h.Funcs.Definitions())
}

// callFunction takes the raw argument object as the request body.
func (h *Handlers) callFunction(w http.ResponseWriter, r *http.Request) {
	args, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	res, err := h.Funcs.Call(r.Context(), chi.URLParam(r, "name"), args)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": res})
}

type batchBody struct {
	Calls []functions.Call `json:"calls"`
}

func (h *Handlers) callBatch(w http.ResponseWriter, r *http.Request) {
	var b batchBody
	if !decode(w, r, &b) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": h.Funcs.CallBatch(r.Context(), b.Calls)})
}

/********** chat sessions **********/

func (h *Handlers) createSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.Create(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/chat/sessions/"+sess.ID)
	writeJSON(w, http.StatusCreated, sess)
}

func (h *Handlers) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handlers) sessionHistory(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.Sessions.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

type messageBody struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (h *Handlers) appendMessage(w http.ResponseWriter, r *http.Request) {
	var b messageBody
	if !decode(w, r, &b) {
		return
	}
	switch b.Role {
	case domain.RoleUser, domain.RoleAssistant, domain.RoleSystem:
	default:
		writeProblem(w, http.StatusBadRequest, "Invalid Role", "role must be user, assistant or system")
		return
	}
	if b.Content == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "content is required")
		return
	}
	sess, err := h.Sessions.Append(r.Context(), chi.URLParam(r, "id"), domain.ChatMessage{Role: b.Role, Content: b.Content})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// chatCalls executes the orchestrator's function calls and records one tool message per result.
func (h *Handlers) chatCalls(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var b batchBody
	if !decode(w, r, &b) {
		return
	}
	if _, err := h.Sessions.Get(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	results := h.Funcs.CallBatch(r.Context(), b.Calls)
	msgs := make([]domain.ChatMessage, 0, len(results))
	for _, res := range results {
		content, err := json.Marshal(res)
		if err != nil {
			log.Error().Err(err).Str("function", res.Name).Msg("marshal tool result failed")
			continue
		}
		msgs = append(msgs, domain.ChatMessage{Role: domain.RoleTool, Name: res.Name, Content: string(content)})
	}
	sess, err := h.Sessions.Append(r.Context(), id, msgs...)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": sess, "results": results})
}
