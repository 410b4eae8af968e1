// Package alexa implements the voice-skill side of the service: the JSON
// request/response envelopes sent by the voice platform and an ordered
// intent dispatcher.
package alexa

// Request types.
const (
	RequestTypeLaunch       = "LaunchRequest"
	RequestTypeIntent       = "IntentRequest"
	RequestTypeSessionEnded = "SessionEndedRequest"
)

// Intent names.
const (
	IntentCalculateOrder = "CalculateOrderIntent"
	IntentHelp           = "AMAZON.HelpIntent"
	IntentCancel         = "AMAZON.CancelIntent"
	IntentStop           = "AMAZON.StopIntent"
	IntentFallback       = "AMAZON.FallbackIntent"
)

// SlotOrderList carries the spoken order inside CalculateOrderIntent.
const SlotOrderList = "OrderList"

// RequestEnvelope is the body POSTed by the voice platform.
type RequestEnvelope struct {
	Version string   `json:"version"`
	Session *Session `json:"session,omitempty"`
	Context *Context `json:"context,omitempty"`
	Request Request  `json:"request"`
}

// Session describes the conversation the request belongs to.
type Session struct {
	New         bool                   `json:"new"`
	SessionID   string                 `json:"sessionId"`
	Application Application            `json:"application"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
	User        *User                  `json:"user,omitempty"`
}

// Application identifies the skill a request was sent to.
type Application struct {
	ApplicationID string `json:"applicationId"`
}

// User identifies the account talking to the skill.
type User struct {
	UserID string `json:"userId"`
}

// Context carries device state. Only the system application is read.
type Context struct {
	System System `json:"System"`
}

// System is the system section of Context.
type System struct {
	Application Application `json:"application"`
	User        *User       `json:"user,omitempty"`
}

// Request is the typed part of the envelope.
type Request struct {
	Type      string  `json:"type"`
	RequestID string  `json:"requestId"`
	Timestamp string  `json:"timestamp"`
	Locale    string  `json:"locale,omitempty"`
	Intent    *Intent `json:"intent,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// Intent is the recognized intent of an IntentRequest.
type Intent struct {
	Name               string          `json:"name"`
	ConfirmationStatus string          `json:"confirmationStatus,omitempty"`
	Slots              map[string]Slot `json:"slots,omitempty"`
}

// Slot is a named intent argument.
type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// ApplicationID returns the skill id the envelope was addressed to.
func (e *RequestEnvelope) ApplicationID() string {
	if e.Context != nil && e.Context.System.Application.ApplicationID != "" {
		return e.Context.System.Application.ApplicationID
	}
	if e.Session != nil {
		return e.Session.Application.ApplicationID
	}
	return ""
}

// IntentName returns the intent name, or "" for non-intent requests.
func (e *RequestEnvelope) IntentName() string {
	if e.Request.Type != RequestTypeIntent || e.Request.Intent == nil {
		return ""
	}
	return e.Request.Intent.Name
}

// ExtractOrderText returns the raw order text spoken in the OrderList slot,
// or "" when the slot is missing or empty.
func ExtractOrderText(e *RequestEnvelope) string {
	if e == nil || e.Request.Intent == nil {
		return ""
	}
	slot, ok := e.Request.Intent.Slots[SlotOrderList]
	if !ok {
		return ""
	}
	return slot.Value
}

// ResponseEnvelope is the body returned to the voice platform.
type ResponseEnvelope struct {
	Version           string                 `json:"version"`
	SessionAttributes map[string]interface{} `json:"sessionAttributes,omitempty"`
	Response          Response               `json:"response"`
}

// Response is the spoken part of ResponseEnvelope.
type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession *bool         `json:"shouldEndSession,omitempty"`
}

// OutputSpeech is plain text read back to the user.
type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Reprompt is spoken when the user stays silent.
type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}
