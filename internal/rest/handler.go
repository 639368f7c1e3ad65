package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/conversation-service/internal/config"
	"github.com/s21platform/conversation-service/internal/model"
)

type Handler struct {
	service      ChatService
	jwtGenerator JWTGenerator
}

func New(service ChatService, jwtGenerator JWTGenerator) *Handler {
	return &Handler{
		service:      service,
		jwtGenerator: jwtGenerator,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/conversations", h.CreateConversation)
		r.Get("/conversations", h.GetConversations)
		r.Put("/conversations/{conversation_id}/title", h.SetConversationTitle)
		r.Post("/conversations/{conversation_id}/messages", h.SendMessage)
		r.Get("/conversations/{conversation_id}/messages", h.GetMessages)
		r.Put("/conversations/{conversation_id}/read", h.MarkConversationAsRead)
		r.Put("/messages/{message_id}/read", h.MarkMessageAsRead)
		r.Get("/unread/count", h.GetUnreadMessagesCount)
		r.Get("/unread", h.HasUnreadMessages)
		r.Get("/connect-token", h.GetConnectToken)
	})
}

func (h *Handler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("CreateConversation")

	userID, ok := r.Context().Value(config.KeyUserID).(int64)
	if !ok {
		logger.Error("failed to get user id")
		h.writeError(w, "failed to get user id", http.StatusInternalServerError)
		return
	}

	var req CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error(fmt.Sprintf("failed to decode request: %v", err))
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	conversation, err := h.service.CreateConversation(r.Context(), userID, req.PartnerIDs)
	if err != nil {
		h.writeServiceError(w, logger, "failed to create conversation", err)
		return
	}

	h.writeJSON(w, conversation, http.StatusCreated)
}

func (h *Handler) GetConversations(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetConversations")

	userID, ok := r.Context().Value(config.KeyUserID).(int64)
	if !ok {
		logger.Error("failed to get user id")
		h.writeError(w, "failed to get user id", http.StatusInternalServerError)
		return
	}

	conversations, err := h.service.GetConversationList(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, logger, "failed to get conversations", err)
		return
	}

	h.writeJSON(w, ConversationListResponse{Conversations: conversations}, http.StatusOK)
}

func (h *Handler) SetConversationTitle(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("SetConversationTitle")

	userID, ok := r.Context().Value(config.KeyUserID).(int64)
	if !ok {
		logger.Error("failed to get user id")
		h.writeError(w, "failed to get user id", http.StatusInternalServerError)
		return
	}

	conversationID, err := pathID(r, "conversation_id")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req SetTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error(fmt.Sprintf("failed to decode request: %v", err))
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	conversation, err := h.service.SetConversationTitle(r.Context(), userID, conversationID, req.Title)
	if err != nil {
		h.writeServiceError(w, logger, "failed to set conversation title", err)
		return
	}

	h.writeJSON(w, conversation, http.StatusOK)
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("SendMessage")

	userID, ok := r.Context().Value(config.KeyUserID).(int64)
	if !ok {
		logger.Error("failed to get user id")
		h.writeError(w, "failed to get user id", http.StatusInternalServerError)
		return
	}

	conversationID, err := pathID(r, "conversation_id")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error(fmt.Sprintf("failed to decode request: %v", err))
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	message, err := h.service.SendMessage(r.Context(), userID, conversationID, req.Content, req.ContentType)
	if err != nil {
		h.writeServiceError(w, logger, "failed to send message", err)
		return
	}

	h.writeJSON(w, message, http.StatusCreated)
}

func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetMessages")

	userID, ok := r.Context().Value(config.KeyUserID).(int64)
	if !ok {
		logger.Error("failed to get user id")
		h.writeError(w, "failed to get user id", http.StatusInternalServerError)
		return
	}

	conversationID, err := pathID(r, "conversation_id")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var since int64
	if raw := r.URL.Query().Get("since"); raw != "" {
		since, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || since < 0 {
			h.writeError(w, "invalid since parameter", http.StatusBadRequest)
			return
		}
	}

	conversation, err := h.service.GetMessages(r.Context(), userID, conversationID, since)
	if err != nil {
		h.writeServiceError(w, logger, "failed to get messages", err)
		return
	}

	messages := conversation.Messages
	if messages == nil {
		messages = model.MessageList{}
	}

	h.writeJSON(w, ConversationMessagesResponse{Conversation: conversation, Messages: messages}, http.StatusOK)
}

func (h *Handler) MarkConversationAsRead(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("MarkConversationAsRead")

	userID, ok := r.Context().Value(config.KeyUserID).(int64)
	if !ok {
		logger.Error("failed to get user id")
		h.writeError(w, "failed to get user id", http.StatusInternalServerError)
		return
	}

	conversationID, err := pathID(r, "conversation_id")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.MarkConversationAsRead(r.Context(), userID, conversationID); err != nil {
		h.writeServiceError(w, logger, "failed to mark conversation as read", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkMessageAsRead(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("MarkMessageAsRead")

	userID, ok := r.Context().Value(config.KeyUserID).(int64)
	if !ok {
		logger.Error("failed to get user id")
		h.writeError(w, "failed to get user id", http.StatusInternalServerError)
		return
	}

	messageID, err := pathID(r, "message_id")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.MarkMessageAsRead(r.Context(), userID, messageID); err != nil {
		h.writeServiceError(w, logger, "failed to mark message as read", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetUnreadMessagesCount(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetUnreadMessagesCount")

	userID, ok := r.Context().Value(config.KeyUserID).(int64)
	if !ok {
		logger.Error("failed to get user id")
		h.writeError(w, "failed to get user id", http.StatusInternalServerError)
		return
	}

	count, err := h.service.GetUnreadMessagesCount(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, logger, "failed to count unread messages", err)
		return
	}

	h.writeJSON(w, UnreadCountResponse{Count: count}, http.StatusOK)
}

func (h *Handler) HasUnreadMessages(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("HasUnreadMessages")

	userID, ok := r.Context().Value(config.KeyUserID).(int64)
	if !ok {
		logger.Error("failed to get user id")
		h.writeError(w, "failed to get user id", http.StatusInternalServerError)
		return
	}

	unread, err := h.service.HasUnreadMessages(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, logger, "failed to check unread messages", err)
		return
	}

	h.writeJSON(w, HasUnreadResponse{HasUnread: unread}, http.StatusOK)
}

func (h *Handler) GetConnectToken(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetConnectToken")

	userID, ok := r.Context().Value(config.KeyUserID).(int64)
	if !ok {
		logger.Error("failed to get user id")
		h.writeError(w, "failed to get user id", http.StatusInternalServerError)
		return
	}

	token, expiresAt, err := h.jwtGenerator.GenerateConnectToken(userID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to generate connect token: %v", err))
		h.writeError(w, "failed to generate connect token", http.StatusInternalServerError)
		return
	}

	logger.Info(fmt.Sprintf("generated connect token for user %d", userID))

	h.writeJSON(w, ConnectTokenResponse{Token: token, ExpiresAt: expiresAt}, http.StatusOK)
}

// ----------------------------- helpers -----------------------------

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeServiceError hides the cause of internal failures from the client.
func (h *Handler) writeServiceError(w http.ResponseWriter, logger logger_lib.LoggerInterface, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(fmt.Sprintf("%s: %v", message, err))
		h.writeError(w, message, status)
		return
	}

	logger.Warn(fmt.Sprintf("%s: %v", message, err))
	h.writeError(w, err.Error(), status)
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(Error{Error: message})
}
