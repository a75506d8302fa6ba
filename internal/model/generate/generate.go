// Package generate defines the request and response shapes of the diagram
// generation endpoints.
package generate

// Format selects the output the model is asked to produce.
const (
	FormatXML = "xml"
	FormatCSV = "csv"
)

// Request is the body of POST /api/generate and /api/generate-stream.
type Request struct {
	Prompt      string `json:"prompt"`
	Provider    string `json:"provider,omitempty"`
	Model       string `json:"model,omitempty"`
	APIKey      string `json:"apiKey,omitempty"`
	BaseURL     string `json:"baseUrl,omitempty"`
	Format      string `json:"format,omitempty"`
	DiagramID   string `json:"diagramId,omitempty"`
	CurrentXML  string `json:"currentXml,omitempty"`
	FileContext string `json:"fileContext,omitempty"`
}

// ToolCall reports one tool invocation the model made while generating.
type ToolCall struct {
	Tool    string `json:"tool"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Response is the final result of a generation run.
type Response struct {
	DiagramID string     `json:"diagramId,omitempty"`
	VersionID string     `json:"versionId,omitempty"`
	XML       string     `json:"xml,omitempty"`
	CSV       string     `json:"csv,omitempty"`
	Message   string     `json:"message,omitempty"`
	Provider  string     `json:"provider"`
	Model     string     `json:"model"`
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
}

// Stream event types emitted on /api/generate-stream and /api/ws.
const (
	EventStart   = "start"
	EventDelta   = "delta"
	EventTool    = "tool"
	EventDiagram = "diagram"
	EventError   = "error"
	EventEnd     = "end"
)

// Event is one server-sent event of a streaming generation run.
type Event struct {
	Type     string    `json:"type"`
	Delta    string    `json:"delta,omitempty"`
	Tool     *ToolCall `json:"tool,omitempty"`
	XML      string    `json:"xml,omitempty"`
	Error    string    `json:"error,omitempty"`
	Response *Response `json:"response,omitempty"`
}
