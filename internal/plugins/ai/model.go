package ai

// ChatPart is one fragment of a chat message. Gemini messages carry their
// text in parts rather than a flat string.
type ChatPart struct {
	Text string `json:"text"`
}

// ChatMessage is one turn of the conversation. Role is "user" or "model",
// matching the Gemini wire roles.
type ChatMessage struct {
	Role  string     `json:"role"`
	Parts []ChatPart `json:"parts"`
}

// ChatRequest is the inbound payload for the doubt-solving endpoint. The
// problem fields frame the tutor's context; only Messages and Title are
// required.
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	TestCases   string        `json:"testCases"`
	StartCode   string        `json:"startCode"`
}

// ChatResponse is the outbound payload. Message holds the generated answer
// on success and a generic failure notice otherwise.
type ChatResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
