package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/yonghwan1106/e-ansimcare/internal/chatbot"
)

type ChatSessionResponse struct {
	SessionID string            `json:"session_id"`
	Messages  []chatbot.Message `json:"messages"`
}

// ChatMessageRequest carries either free text or a quick-reply option value.
type ChatMessageRequest struct {
	Text   string          `json:"text,omitempty"`
	Option chatbot.NodeKey `json:"option,omitempty"`
}

type ChatFeedbackRequest struct {
	MessageID string `json:"message_id"`
	Feedback  string `json:"feedback"`
}

// maxChatBody caps chat request bodies.
const maxChatBody = 16 << 10

// decodeChatBody reads a JSON chat request. It writes the error response
// itself: 413 past maxChatBody, 400 for anything else.
func decodeChatBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBody)).Decode(v)
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		return true
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
	default:
		http.Error(w, "invalid JSON", http.StatusBadRequest)
	}
	return false
}

func sessionResponse(sess *chatbot.Session) ChatSessionResponse {
	return ChatSessionResponse{SessionID: sess.ID(), Messages: sess.History()}
}

func (s *Server) handleChatCreate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	sess := s.chats.Create()
	writeJSON(w, http.StatusCreated, sessionResponse(sess))
}

// handleChatSession serves /chat/sessions/{id} and its messages, reset and
// feedback sub-resources.
func (s *Server) handleChatSession(w http.ResponseWriter, r *http.Request) {
	id, sub := pathID(r.URL.Path, "/chat/sessions/")
	sess, err := s.chats.Get(id)
	if err != nil {
		writeNotFound(w)
		return
	}

	switch sub {
	case "":
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, sessionResponse(sess))
		case http.MethodDelete:
			s.chats.Delete(id)
			writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	case "messages":
		if allowMethod(w, r, http.MethodPost) {
			s.chatSend(w, r, sess)
		}
	case "reset":
		if allowMethod(w, r, http.MethodPost) {
			sess.Reset()
			writeJSON(w, http.StatusOK, sessionResponse(sess))
		}
	case "feedback":
		if allowMethod(w, r, http.MethodPost) {
			s.chatFeedback(w, r, sess)
		}
	default:
		writeNotFound(w)
	}
}

func (s *Server) chatSend(w http.ResponseWriter, r *http.Request, sess *chatbot.Session) {
	var req ChatMessageRequest
	if !decodeChatBody(w, r, &req) {
		return
	}

	if req.Option != "" {
		writeJSON(w, http.StatusOK, sess.Choose(req.Option))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text or option is required"})
		return
	}
	turn, err := sess.Send(req.Text)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, turn)
}

func (s *Server) chatFeedback(w http.ResponseWriter, r *http.Request, sess *chatbot.Session) {
	var req ChatFeedbackRequest
	if !decodeChatBody(w, r, &req) {
		return
	}
	f, err := chatbot.ParseFeedback(req.Feedback)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	msg, err := sess.Feedback(req.MessageID, f)
	switch {
	case errors.Is(err, chatbot.ErrMessageNotFound):
		writeNotFound(w)
	case err != nil:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusOK, msg)
	}
}
