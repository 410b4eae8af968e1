package alexa

// ResponseBuilder assembles a ResponseEnvelope.
type ResponseBuilder struct {
	env ResponseEnvelope
}

// NewResponse starts an empty response.
func NewResponse() *ResponseBuilder {
	return &ResponseBuilder{env: ResponseEnvelope{Version: "1.0"}}
}

// Speak sets the text read to the user.
func (b *ResponseBuilder) Speak(text string) *ResponseBuilder {
	b.env.Response.OutputSpeech = &OutputSpeech{Type: "PlainText", Text: text}
	return b
}

// Reprompt sets the text read when the user does not answer. A response
// with a reprompt keeps the session open.
func (b *ResponseBuilder) Reprompt(text string) *ResponseBuilder {
	b.env.Response.Reprompt = &Reprompt{OutputSpeech: OutputSpeech{Type: "PlainText", Text: text}}
	end := false
	b.env.Response.ShouldEndSession = &end
	return b
}

// EndSession closes the session after speaking.
func (b *ResponseBuilder) EndSession() *ResponseBuilder {
	end := true
	b.env.Response.ShouldEndSession = &end
	return b
}

// Build returns the envelope.
func (b *ResponseBuilder) Build() *ResponseEnvelope {
	env := b.env
	return &env
}
