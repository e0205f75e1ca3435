package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ahsasnagar11/typeshit3/internal/domain/model"
	"github.com/ahsasnagar11/typeshit3/internal/pkg/validate"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrDependenciesNil = errors.New("chat dependencies are not configured")
)

// ValidationError names the missing or malformed request fields so the
// handler can echo them back.
type ValidationError struct {
	Fields []string
}

func (e ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Fields, ", ")
}

func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return "too fast"
}

func (e TooFastError) RetryAfter() int64 {
	if e.RetryAfterSec <= 0 {
		return 1
	}
	return e.RetryAfterSec
}

func IsTooFast(err error) (*TooFastError, bool) {
	var tf TooFastError
	if errors.As(err, &tf) {
		return &tf, true
	}
	return nil, false
}

type MessageStore interface {
	Insert(ctx context.Context, msg model.Message) (model.Message, error)
	ListConversation(ctx context.Context, userA, userB string) ([]model.Message, error)
}

type RateLimiter interface {
	AllowSend(ctx context.Context, userID string) (int64, bool, error)
}

type SendInput struct {
	SenderID    string
	ReceiverID  string
	Text        string
	ClientMsgID string
	// Timestamp is the client clock reading. Zero means the server
	// clock is used instead.
	Timestamp time.Time
}

type Dependencies struct {
	Messages MessageStore
	Limiter  RateLimiter
}

type Service struct {
	messages MessageStore
	limiter  RateLimiter
	now      func() time.Time
}

func NewService(deps Dependencies) *Service {
	return &Service{
		messages: deps.Messages,
		limiter:  deps.Limiter,
		now:      time.Now,
	}
}

// Send persists one message. The client timestamp is stored as-is when
// given; the seq column breaks ordering ties later.
func (s *Service) Send(ctx context.Context, in SendInput) (model.Message, error) {
	if s.messages == nil {
		return model.Message{}, ErrDependenciesNil
	}

	var missing []string
	if !validate.Required(in.SenderID) {
		missing = append(missing, "senderId")
	}
	if !validate.Required(in.ReceiverID) {
		missing = append(missing, "receiverId")
	}
	if !validate.Required(in.Text) {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return model.Message{}, ValidationError{Fields: missing}
	}

	if !validUserID(in.SenderID) {
		return model.Message{}, ValidationError{Fields: []string{"senderId"}}
	}
	if !validUserID(in.ReceiverID) {
		return model.Message{}, ValidationError{Fields: []string{"receiverId"}}
	}

	if s.limiter != nil {
		retryAfter, allowed, err := s.limiter.AllowSend(ctx, in.SenderID)
		if err != nil {
			return model.Message{}, fmt.Errorf("apply send rate limiter: %w", err)
		}
		if !allowed {
			return model.Message{}, TooFastError{RetryAfterSec: retryAfter}
		}
	}

	timestamp := in.Timestamp
	if timestamp.IsZero() {
		timestamp = s.now().UTC()
	}

	msg := model.Message{
		ID:          uuid.NewString(),
		ClientMsgID: strings.TrimSpace(in.ClientMsgID),
		SenderID:    strings.TrimSpace(in.SenderID),
		ReceiverID:  strings.TrimSpace(in.ReceiverID),
		Body:        in.Text,
		Timestamp:   timestamp,
	}

	stored, err := s.messages.Insert(ctx, msg)
	if err != nil {
		return model.Message{}, fmt.Errorf("store message: %w", err)
	}

	return stored, nil
}

// History returns the full conversation between two users, ascending by
// timestamp. An empty conversation is an empty slice, not an error.
func (s *Service) History(ctx context.Context, userA, userB string) ([]model.Message, error) {
	if s.messages == nil {
		return nil, ErrDependenciesNil
	}

	var missing []string
	if !validate.Required(userA) {
		missing = append(missing, "senderId")
	}
	if !validate.Required(userB) {
		missing = append(missing, "receiverId")
	}
	if len(missing) > 0 {
		return nil, ValidationError{Fields: missing}
	}
	if !validUserID(userA) {
		return nil, ValidationError{Fields: []string{"senderId"}}
	}
	if !validUserID(userB) {
		return nil, ValidationError{Fields: []string{"receiverId"}}
	}

	messages, err := s.messages.ListConversation(ctx, strings.TrimSpace(userA), strings.TrimSpace(userB))
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	if messages == nil {
		messages = []model.Message{}
	}

	return messages, nil
}

// Dummy identifiers are accepted so seeded demo conversations keep
// working against the same endpoints.
func validUserID(value string) bool {
	return validate.UserID(value) || validate.DummyID(value)
}
