package alexa

import "context"

// Spoken texts.
const (
	SpeechWelcome = "Bem-vindo ao cardápio do trailer. Pergunte por um pedido, por exemplo: quanto fica 2 carne e 1 queijo?"
	SpeechHelp    = "Você pode dizer: quanto fica 2 carne e 1 pizza? Eu vou somar usando o cardápio."
	SpeechGoodbye = "Tudo bem. Até mais."
	SpeechUnknown = "Desculpe, não entendi. Pergunte quanto fica um pedido, por exemplo: quanto fica 2 carne e 1 queijo?"
	SpeechError   = "Desculpe, ocorreu um erro ao processar seu pedido. Tente novamente."

	RepromptWelcome = "Como posso ajudar com o pedido?"
	RepromptHelp    = "Como posso ajudar?"
	RepromptOrder   = "Deseja confirmar o pedido ou perguntar outro valor?"
	RepromptRepeat  = "Pode repetir, por favor?"
)

// OrderQuoter prices spoken order text and returns the sentence to read back.
type OrderQuoter interface {
	QuoteSpeech(ctx context.Context, text string) string
}

// DefaultHandlers returns the skill's handlers in dispatch order.
func DefaultHandlers(quoter OrderQuoter) []Handler {
	return []Handler{
		LaunchHandler{},
		CalculateOrderHandler{Quoter: quoter},
		HelpHandler{},
		CancelAndStopHandler{},
		FallbackHandler{},
		SessionEndedHandler{},
	}
}

// LaunchHandler greets the user when the skill is opened.
type LaunchHandler struct{}

func (LaunchHandler) CanHandle(req *RequestEnvelope) bool {
	return req.Request.Type == RequestTypeLaunch
}

func (LaunchHandler) Handle(ctx context.Context, req *RequestEnvelope) (*ResponseEnvelope, error) {
	return NewResponse().Speak(SpeechWelcome).Reprompt(RepromptWelcome).Build(), nil
}

// CalculateOrderHandler prices the order spoken in the OrderList slot.
type CalculateOrderHandler struct {
	Quoter OrderQuoter
}

func (CalculateOrderHandler) CanHandle(req *RequestEnvelope) bool {
	return req.IntentName() == IntentCalculateOrder
}

func (h CalculateOrderHandler) Handle(ctx context.Context, req *RequestEnvelope) (*ResponseEnvelope, error) {
	speech := h.Quoter.QuoteSpeech(ctx, ExtractOrderText(req))
	return NewResponse().Speak(speech).Reprompt(RepromptOrder).Build(), nil
}

// HelpHandler explains how to ask for a price.
type HelpHandler struct{}

func (HelpHandler) CanHandle(req *RequestEnvelope) bool {
	return req.IntentName() == IntentHelp
}

func (HelpHandler) Handle(ctx context.Context, req *RequestEnvelope) (*ResponseEnvelope, error) {
	return NewResponse().Speak(SpeechHelp).Reprompt(RepromptHelp).Build(), nil
}

// CancelAndStopHandler says goodbye.
type CancelAndStopHandler struct{}

func (CancelAndStopHandler) CanHandle(req *RequestEnvelope) bool {
	name := req.IntentName()
	return name == IntentCancel || name == IntentStop
}

func (CancelAndStopHandler) Handle(ctx context.Context, req *RequestEnvelope) (*ResponseEnvelope, error) {
	return NewResponse().Speak(SpeechGoodbye).EndSession().Build(), nil
}

// FallbackHandler answers utterances the platform could not map to an intent.
type FallbackHandler struct{}

func (FallbackHandler) CanHandle(req *RequestEnvelope) bool {
	return req.IntentName() == IntentFallback
}

func (FallbackHandler) Handle(ctx context.Context, req *RequestEnvelope) (*ResponseEnvelope, error) {
	return NewResponse().Speak(SpeechUnknown).Reprompt(RepromptRepeat).Build(), nil
}

// SessionEndedHandler acknowledges the end of a session. The platform
// ignores any speech in this response.
type SessionEndedHandler struct{}

func (SessionEndedHandler) CanHandle(req *RequestEnvelope) bool {
	return req.Request.Type == RequestTypeSessionEnded
}

func (SessionEndedHandler) Handle(ctx context.Context, req *RequestEnvelope) (*ResponseEnvelope, error) {
	return NewResponse().Build(), nil
}
