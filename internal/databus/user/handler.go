package user

import (
	"context"
	"encoding/json"
	"fmt"

	logger_lib "github.com/s21platform/logger-lib"
	"github.com/s21platform/metrics-lib/pkg"

	"github.com/s21platform/conversation-service/internal/config"
	"github.com/s21platform/conversation-service/internal/model"
)

// UserUpdate is the user-service event carrying a user's public profile.
type UserUpdate struct {
	ID        int64  `json:"id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

type Handler struct {
	dbR DBRepo
}

func New(dbR DBRepo) *Handler {
	return &Handler{dbR: dbR}
}

// Handler stores the profile from one event. Malformed events are logged and skipped
// so a single bad record can't stall the partition.
func (h *Handler) Handler(ctx context.Context, in []byte) error {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("UserUpdateHandler")
	metrics := pkg.FromContext(ctx, config.KeyMetrics)

	var msg UserUpdate
	if err := json.Unmarshal(in, &msg); err != nil {
		logger.Warn(fmt.Sprintf("failed to unmarshal user event: %v", err))
		metrics.Increment("user_sync.skipped")
		return nil
	}

	if msg.ID <= 0 {
		logger.Warn(fmt.Sprintf("skipping user event with id %d", msg.ID))
		metrics.Increment("user_sync.skipped")
		return nil
	}

	err := h.dbR.UpsertUser(ctx, &model.User{
		ID:        msg.ID,
		Nickname:  msg.Nickname,
		AvatarURL: msg.AvatarURL,
	})
	if err != nil {
		logger.Error(fmt.Sprintf("failed to upsert user %d: %v", msg.ID, err))
		metrics.Increment("user_sync.error")
		return fmt.Errorf("failed to upsert user %d: %w", msg.ID, err)
	}
	metrics.Increment("user_sync.stored")

	return nil
}
