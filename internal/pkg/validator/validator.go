package validator

import (
	"fmt"
	"strings"

	"github.com/s21platform/conversation-service/internal/model"
)

var urlSchemePrefixes = []string{"http://", "https://"}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateCreateConversation(creatorID int64, partnerIDs []int64) error {
	if len(partnerIDs) == 0 {
		return fmt.Errorf("%w: partner list cannot be empty", model.ErrInvalidInput)
	}

	for _, id := range partnerIDs {
		if id == creatorID {
			return fmt.Errorf("%w: can't create conversation with self", model.ErrInvalidInput)
		}
	}

	return nil
}

func (v *Validator) ValidateSendMessage(content string, contentType model.ContentType) error {
	if !contentType.IsValid() {
		return fmt.Errorf("%w: content type '%s' is not supported", model.ErrInvalidInput, contentType)
	}

	if content == "" {
		return fmt.Errorf("%w: content cannot be empty", model.ErrInvalidInput)
	}

	if contentType.IsURL() && !isLink(content) {
		return fmt.Errorf("%w: content of type %s must start with http:// or https://", model.ErrInvalidInput, contentType)
	}

	return nil
}

func isLink(content string) bool {
	lower := strings.ToLower(content)
	for _, prefix := range urlSchemePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
