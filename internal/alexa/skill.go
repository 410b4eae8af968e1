package alexa

import (
	"context"
	"errors"
	"fmt"

	"github.com/windoze95/cardapio-api/internal/logger"
	"go.uber.org/zap"
)

var (
	// ErrNoHandler is passed to the error handler when no handler accepts a request.
	ErrNoHandler = errors.New("no handler for request")
	// ErrWrongApplication is returned for envelopes addressed to another skill.
	ErrWrongApplication = errors.New("request addressed to another application")
)

// Handler answers one kind of request.
type Handler interface {
	CanHandle(req *RequestEnvelope) bool
	Handle(ctx context.Context, req *RequestEnvelope) (*ResponseEnvelope, error)
}

// ErrorHandler turns a handler failure into a spoken reply.
type ErrorHandler func(ctx context.Context, req *RequestEnvelope, err error) *ResponseEnvelope

// Skill dispatches each request to the first handler that accepts it.
type Skill struct {
	applicationID string
	handlers      []Handler
	onError       ErrorHandler
}

// SkillOption configures a Skill.
type SkillOption func(*Skill)

// WithApplicationID makes the skill reject envelopes addressed to any
// other application id. An empty id disables the check.
func WithApplicationID(id string) SkillOption {
	return func(s *Skill) {
		s.applicationID = id
	}
}

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) SkillOption {
	return func(s *Skill) {
		s.onError = h
	}
}

// NewSkill builds a Skill that tries handlers in the given order.
func NewSkill(handlers []Handler, opts ...SkillOption) *Skill {
	s := &Skill{
		handlers: handlers,
		onError:  DefaultErrorHandler,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Dispatch answers req. Only ErrWrongApplication is returned as an error;
// every other failure is rendered by the error handler.
func (s *Skill) Dispatch(ctx context.Context, req *RequestEnvelope) (*ResponseEnvelope, error) {
	if s.applicationID != "" && req.ApplicationID() != s.applicationID {
		return nil, fmt.Errorf("%w: %q", ErrWrongApplication, req.ApplicationID())
	}

	for _, h := range s.handlers {
		if !h.CanHandle(req) {
			continue
		}
		resp, err := h.Handle(ctx, req)
		if err != nil {
			return s.onError(ctx, req, err), nil
		}
		return resp, nil
	}

	return s.onError(ctx, req, fmt.Errorf("%w: type=%s intent=%s", ErrNoHandler, req.Request.Type, req.IntentName())), nil
}

// DefaultErrorHandler logs err and apologizes.
func DefaultErrorHandler(ctx context.Context, req *RequestEnvelope, err error) *ResponseEnvelope {
	logger.Get().Error("skill request failed",
		zap.String("request_type", req.Request.Type),
		zap.String("intent", req.IntentName()),
		zap.String("alexa_request_id", req.Request.RequestID),
		zap.Error(err),
	)
	return NewResponse().
		Speak(SpeechError).
		EndSession().
		Build()
}
