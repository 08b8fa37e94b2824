package entity

// SchemaDescriptor is a JSON-schema-like shape declaration sent with a
// structured generation request. The backend is instructed to emit JSON
// conforming to it; the gateway performs only a best-effort parse.
type SchemaDescriptor struct {
	Type        string                      `json:"type"`
	Description string                      `json:"description,omitempty"`
	Enum        []string                    `json:"enum,omitempty"`
	Properties  map[string]SchemaDescriptor `json:"properties,omitempty"`
	Items       *SchemaDescriptor           `json:"items,omitempty"`
	Required    []string                    `json:"required,omitempty"`
}

type LLMGenerateRequest struct {
	Prompt            string            `json:"prompt"`
	SystemInstruction string            `json:"system_instruction,omitempty"`
	ResponseSchema    *SchemaDescriptor `json:"response_schema,omitempty"`
}

// LLMGenerateResponse carries the raw model output. Text is the JSON document
// to be decoded against the declared schema.
type LLMGenerateResponse struct {
	Text string `json:"text"`
}

type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

type ChatTurn struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// LLMChatRequest is a stateless chat-completion call: the full prior turn
// list travels with every request, so no hidden conversational state lives
// on the backend side.
type LLMChatRequest struct {
	SystemInstruction string     `json:"system_instruction"`
	Turns             []ChatTurn `json:"messages"`
}

type LLMChatResponse struct {
	Text string `json:"text"`
}

// GeneratedSurvey is the decoded payload of a survey generation call. Ids are
// absent on purpose: the gateway discards any backend-supplied identifiers
// and assigns fresh ones.
type GeneratedSurvey struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Questions   []GeneratedQuestion `json:"questions"`
}

type GeneratedQuestion struct {
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Rows     []string `json:"rows,omitempty"`
	MinLabel string   `json:"minLabel,omitempty"`
	MaxLabel string   `json:"maxLabel,omitempty"`
}
