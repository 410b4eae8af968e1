package service

import (
	"context"

	goaway "github.com/TwiN/go-away"
	"github.com/windoze95/cardapio-api/internal/logger"
	"github.com/windoze95/cardapio-api/internal/menu"
	"github.com/windoze95/cardapio-api/internal/metrics"
	"github.com/windoze95/cardapio-api/internal/order"
	"go.uber.org/zap"
)

// Channels an order can arrive through, used as a metrics label.
const (
	ChannelSkill = "skill"
	ChannelREST  = "rest"
	ChannelVoice = "voice"
	ChannelLive  = "ws"
)

// OrderService prices order text against the loaded menu.
type OrderService struct {
	Interpreter *order.Interpreter
	Metrics     *metrics.OrderMetrics
	profanity   *goaway.ProfanityDetector
}

// Quote is a priced order together with the sentence read back to the caller.
type Quote struct {
	Items   []order.Item `json:"items"`
	Unknown []string     `json:"unknown"`
	Total   int          `json:"total"`
	Speech  string       `json:"speech"`
}

// NewOrderService creates a new OrderService. m may be nil.
func NewOrderService(interpreter *order.Interpreter, m *metrics.OrderMetrics) *OrderService {
	return &OrderService{
		Interpreter: interpreter,
		Metrics:     m,
		profanity:   newProfanityDetector(),
	}
}

// portugueseFalsePositives are common order words that contain an entry of
// the English profanity list ("analise", "massa", "sexta").
var portugueseFalsePositives = []string{
	"anali",
	"canal",
	"manus",
	"assad",
	"assar",
	"massa",
	"passa",
	"assim",
	"classe",
	"cumbuca",
	"acumul",
	"cumpr",
	"sexta",
	"muffin",
}

// newProfanityDetector checks words one at a time; joining across spaces
// turns harmless Portuguese pairs into matches.
func newProfanityDetector() *goaway.ProfanityDetector {
	falsePositives := append(append([]string{}, portugueseFalsePositives...), goaway.DefaultFalsePositives...)
	return goaway.NewProfanityDetector().
		WithSanitizeLeetSpeak(true).
		WithSanitizeSpecialCharacters(true).
		WithSanitizeAccents(false).
		WithSanitizeSpaces(false).
		WithCustomDictionary(goaway.DefaultProfanities, falsePositives, goaway.DefaultFalseNegatives)
}

// Catalog returns the menu orders are priced against.
func (s *OrderService) Catalog() *menu.Catalog {
	return s.Interpreter.Catalog()
}

// Quote parses text and prices it. Unknown phrases are echoed back in the
// speech, so they are censored first.
func (s *OrderService) Quote(ctx context.Context, channel, text string) Quote {
	result := s.Interpreter.Parse(text)

	unknown := make([]string, len(result.Unknown))
	for i, u := range result.Unknown {
		unknown[i] = s.profanity.Censor(u)
	}

	strategies := make([]string, len(result.Items))
	for i, it := range result.Items {
		strategies[i] = it.Strategy
	}
	s.Metrics.ObserveQuote(channel, strategies, len(unknown))

	q := Quote{
		Items:   result.Items,
		Unknown: unknown,
		Total:   order.Total(result.Items),
		Speech:  order.BuildResponse(result.Items, unknown),
	}

	logger.Get().Debug("order quoted",
		zap.String("channel", channel),
		zap.Int("items", len(q.Items)),
		zap.Int("unknown", len(q.Unknown)),
		zap.Int("total", q.Total),
	)
	return q
}

// QuoteSpeech prices text for the voice skill and returns only the speech.
func (s *OrderService) QuoteSpeech(ctx context.Context, text string) string {
	return s.Quote(ctx, ChannelSkill, text).Speech
}
