package alexa

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type quoterFunc func(ctx context.Context, text string) string

func (f quoterFunc) QuoteSpeech(ctx context.Context, text string) string {
	return f(ctx, text)
}

func intentRequest(name string, slots map[string]Slot) *RequestEnvelope {
	return &RequestEnvelope{
		Version: "1.0",
		Session: &Session{Application: Application{ApplicationID: "amzn1.ask.skill.test"}},
		Request: Request{
			Type:      RequestTypeIntent,
			RequestID: "req-1",
			Intent:    &Intent{Name: name, Slots: slots},
		},
	}
}

func newTestSkill(t *testing.T, opts ...SkillOption) (*Skill, *string) {
	t.Helper()
	var got string
	q := quoterFunc(func(ctx context.Context, text string) string {
		got = text
		return "O total do pedido é 42 reais."
	})
	return NewSkill(DefaultHandlers(q), opts...), &got
}

func speechOf(t *testing.T, resp *ResponseEnvelope) string {
	t.Helper()
	if resp == nil || resp.Response.OutputSpeech == nil {
		t.Fatal("response has no output speech")
	}
	return resp.Response.OutputSpeech.Text
}

func TestDispatch_Launch(t *testing.T) {
	s, _ := newTestSkill(t)
	resp, err := s.Dispatch(context.Background(), &RequestEnvelope{Request: Request{Type: RequestTypeLaunch}})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if got := speechOf(t, resp); got != SpeechWelcome {
		t.Errorf("speech = %q, want welcome", got)
	}
	if resp.Response.Reprompt == nil || resp.Response.Reprompt.OutputSpeech.Text != RepromptWelcome {
		t.Errorf("reprompt = %+v", resp.Response.Reprompt)
	}
	if resp.Response.ShouldEndSession == nil || *resp.Response.ShouldEndSession {
		t.Error("launch should keep the session open")
	}
}

func TestDispatch_CalculateOrder(t *testing.T) {
	s, got := newTestSkill(t)
	req := intentRequest(IntentCalculateOrder, map[string]Slot{
		SlotOrderList: {Name: SlotOrderList, Value: "2 carne e 1 queijo"},
	})
	resp, err := s.Dispatch(context.Background(), req)
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if *got != "2 carne e 1 queijo" {
		t.Errorf("quoter received %q", *got)
	}
	if speechOf(t, resp) != "O total do pedido é 42 reais." {
		t.Errorf("speech = %q", speechOf(t, resp))
	}
	if resp.Response.Reprompt.OutputSpeech.Text != RepromptOrder {
		t.Errorf("reprompt = %q", resp.Response.Reprompt.OutputSpeech.Text)
	}
}

func TestDispatch_CalculateOrderWithoutSlot(t *testing.T) {
	s, got := newTestSkill(t)
	*got = "unset"
	if _, err := s.Dispatch(context.Background(), intentRequest(IntentCalculateOrder, nil)); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if *got != "" {
		t.Errorf("quoter received %q, want empty text", *got)
	}
}

func TestDispatch_HelpCancelStopFallback(t *testing.T) {
	s, _ := newTestSkill(t)
	tests := map[string]string{
		IntentHelp:     SpeechHelp,
		IntentCancel:   SpeechGoodbye,
		IntentStop:     SpeechGoodbye,
		IntentFallback: SpeechUnknown,
	}
	for intent, want := range tests {
		resp, err := s.Dispatch(context.Background(), intentRequest(intent, nil))
		if err != nil {
			t.Fatalf("Dispatch(%s) error: %v", intent, err)
		}
		if got := speechOf(t, resp); got != want {
			t.Errorf("Dispatch(%s) speech = %q, want %q", intent, got, want)
		}
	}
}

func TestDispatch_StopEndsSession(t *testing.T) {
	s, _ := newTestSkill(t)
	resp, _ := s.Dispatch(context.Background(), intentRequest(IntentStop, nil))
	if resp.Response.ShouldEndSession == nil || !*resp.Response.ShouldEndSession {
		t.Error("stop should end the session")
	}
}

func TestDispatch_UnhandledIntent(t *testing.T) {
	s, _ := newTestSkill(t)
	resp, err := s.Dispatch(context.Background(), intentRequest("PizzaDeliveryIntent", nil))
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if got := speechOf(t, resp); got != SpeechError {
		t.Errorf("speech = %q, want error speech", got)
	}
}

type failingHandler struct{}

func (failingHandler) CanHandle(*RequestEnvelope) bool { return true }

func (failingHandler) Handle(context.Context, *RequestEnvelope) (*ResponseEnvelope, error) {
	return nil, errors.New("boom")
}

func TestDispatch_HandlerErrorUsesErrorHandler(t *testing.T) {
	var captured error
	s := NewSkill([]Handler{failingHandler{}}, WithErrorHandler(func(ctx context.Context, req *RequestEnvelope, err error) *ResponseEnvelope {
		captured = err
		return NewResponse().Speak("falhou").Build()
	}))
	resp, err := s.Dispatch(context.Background(), intentRequest(IntentHelp, nil))
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if captured == nil || captured.Error() != "boom" {
		t.Errorf("error handler got %v", captured)
	}
	if speechOf(t, resp) != "falhou" {
		t.Errorf("speech = %q", speechOf(t, resp))
	}
}

func TestDispatch_ApplicationID(t *testing.T) {
	s, _ := newTestSkill(t, WithApplicationID("amzn1.ask.skill.test"))
	if _, err := s.Dispatch(context.Background(), intentRequest(IntentHelp, nil)); err != nil {
		t.Errorf("matching application id rejected: %v", err)
	}

	other, _ := newTestSkill(t, WithApplicationID("amzn1.ask.skill.other"))
	_, err := other.Dispatch(context.Background(), intentRequest(IntentHelp, nil))
	if !errors.Is(err, ErrWrongApplication) {
		t.Errorf("error = %v, want ErrWrongApplication", err)
	}
}

func TestExtractOrderText(t *testing.T) {
	if got := ExtractOrderText(nil); got != "" {
		t.Errorf("ExtractOrderText(nil) = %q", got)
	}
	launch := &RequestEnvelope{Request: Request{Type: RequestTypeLaunch}}
	if got := ExtractOrderText(launch); got != "" {
		t.Errorf("ExtractOrderText(launch) = %q", got)
	}
	req := intentRequest(IntentCalculateOrder, map[string]Slot{SlotOrderList: {Value: "3 churros"}})
	if got := ExtractOrderText(req); got != "3 churros" {
		t.Errorf("ExtractOrderText = %q, want 3 churros", got)
	}
}

func TestRequestEnvelope_DecodesPlatformJSON(t *testing.T) {
	body := `{
		"version": "1.0",
		"session": {"new": true, "sessionId": "s1", "application": {"applicationId": "app-session"}},
		"context": {"System": {"application": {"applicationId": "app-context"}}},
		"request": {
			"type": "IntentRequest",
			"requestId": "r1",
			"timestamp": "2026-10-19T12:00:00Z",
			"locale": "pt-BR",
			"intent": {"name": "CalculateOrderIntent", "slots": {"OrderList": {"name": "OrderList", "value": "2 pizza"}}}
		}
	}`
	var env RequestEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.ApplicationID() != "app-context" {
		t.Errorf("ApplicationID = %q, want context id", env.ApplicationID())
	}
	if env.IntentName() != IntentCalculateOrder {
		t.Errorf("IntentName = %q", env.IntentName())
	}
	if ExtractOrderText(&env) != "2 pizza" {
		t.Errorf("ExtractOrderText = %q", ExtractOrderText(&env))
	}
}
