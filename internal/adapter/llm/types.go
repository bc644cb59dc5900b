package llm

// ChatRequest is the provider-independent request submitted to an LLM
// collaborator: a system prompt, a user prompt, and sampling bounds.
type ChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// ChatResponse is the standardized response from any LLM provider client,
// eliminating duplicate response structs across providers.
type ChatResponse struct {
	Text         string
	Model        string
	TokensIn     int
	TokensOut    int
	FinishReason string
}
