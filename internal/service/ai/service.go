// Package ai resolves LLM providers, drives tool-calling generation runs and
// applies the security rules for request-supplied endpoint overrides.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/arcgen/backend/internal/config"
	"github.com/arcgen/backend/internal/drawio"
	"github.com/arcgen/backend/internal/model/diagram"
	"github.com/arcgen/backend/internal/model/generate"
	"github.com/arcgen/backend/internal/model/provider"
	"github.com/arcgen/backend/internal/service/history"
	"github.com/arcgen/backend/internal/service/shapelib"
	"github.com/arcgen/backend/internal/service/tools"
)

var (
	// ErrNoCredentials means no usable API key was found for the resolved
	// provider. Handlers map it to 401.
	ErrNoCredentials = errors.New("missing provider credentials")
	// ErrUnknownProvider means the request named a provider that is not in
	// the catalog. Handlers map it to 400.
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrProviderAmbiguous means auto-detection found credentials for more
	// than one provider and the request must name one explicitly.
	ErrProviderAmbiguous = errors.New("multiple providers configured")
	// ErrProvider marks a failed call to an upstream LLM provider.
	// Handlers map it to 502.
	ErrProvider = errors.New("provider request failed")
)

func providerErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrProvider, op, err)
}

const azureAPIVersion = "2024-06-01"

// Selection is a fully resolved provider choice for one request.
type Selection struct {
	Provider provider.Info
	Model    string
	APIKey   string
	BaseURL  string

	// customKey marks a request-supplied API key, which bypasses the
	// client cache so one caller's key never serves another caller.
	customKey bool
}

// Service owns provider resolution and the generation loop.
type Service struct {
	registry provider.Registry
	shapeLib *shapelib.Manager
	history  *history.Service
	cfg      config.AIConfig

	mu      sync.Mutex
	clients map[string]model.ToolCallingChatModel
}

func NewService(registry provider.Registry, shapeLib *shapelib.Manager, hist *history.Service, cfg config.AIConfig) *Service {
	return &Service{
		registry: registry,
		shapeLib: shapeLib,
		history:  hist,
		cfg:      cfg,
		clients:  make(map[string]model.ToolCallingChatModel),
	}
}

// Resolve picks the provider for a request: an explicit request override
// wins, then the configured default, then auto-detection when exactly one
// provider has credentials.
func (s *Service) Resolve(req generate.Request) (Selection, error) {
	name := strings.ToLower(strings.TrimSpace(req.Provider))
	if name == "" {
		name = s.cfg.DefaultProvider
	}

	var info provider.Info
	if name != "" {
		var ok bool
		info, ok = s.registry.FindByName(provider.Name(name))
		if !ok {
			return Selection{}, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
		}
	} else {
		var configured []provider.Info
		for _, p := range s.registry.List() {
			if p.Configured() {
				configured = append(configured, p)
			}
		}
		switch len(configured) {
		case 1:
			info = configured[0]
		case 0:
			return Selection{}, fmt.Errorf("%w: no provider credentials found in the environment", ErrNoCredentials)
		default:
			names := make([]string, len(configured))
			for i, p := range configured {
				names[i] = string(p.Name)
			}
			return Selection{}, fmt.Errorf("%w: %s; specify one in the request", ErrProviderAmbiguous, strings.Join(names, ", "))
		}
	}

	sel := Selection{Provider: info}

	sel.APIKey = strings.TrimSpace(req.APIKey)
	sel.customKey = sel.APIKey != ""
	if sel.APIKey == "" && info.APIKeyEnv != "" {
		sel.APIKey = strings.TrimSpace(os.Getenv(info.APIKeyEnv))
	}

	if baseURL := strings.TrimSpace(req.BaseURL); baseURL != "" {
		if err := ValidateCustomEndpoint(baseURL, req.APIKey, string(info.Name)); err != nil {
			return Selection{}, err
		}
		if !ValidateURLSafety(baseURL) {
			return Selection{}, fmt.Errorf("%w: base URL %q is not allowed", ErrSecurity, baseURL)
		}
		sel.BaseURL = baseURL
	} else {
		if info.BaseURLEnv != "" {
			sel.BaseURL = strings.TrimSpace(os.Getenv(info.BaseURLEnv))
		}
		if sel.BaseURL == "" {
			sel.BaseURL = info.DefaultBaseURL
		}
	}

	if info.RequiresAPIKey && sel.APIKey == "" {
		return Selection{}, fmt.Errorf("%w: set %s or pass apiKey for provider %s", ErrNoCredentials, info.APIKeyEnv, info.Name)
	}
	if info.Name == provider.Azure && sel.BaseURL == "" {
		return Selection{}, fmt.Errorf("%w: set AZURE_BASE_URL to your Azure OpenAI endpoint", ErrNoCredentials)
	}

	sel.Model = strings.TrimSpace(req.Model)
	if sel.Model == "" {
		sel.Model = s.cfg.DefaultModel
	}
	if sel.Model == "" {
		sel.Model = info.DefaultModel
	}

	return sel, nil
}

// clientFor returns a chat model for the selection, reusing cached clients
// keyed by provider:model:baseURL. Selections carrying a request-supplied
// API key are built fresh and never cached.
func (s *Service) clientFor(ctx context.Context, sel Selection) (model.ToolCallingChatModel, error) {
	if sel.customKey {
		return s.newChatModel(ctx, sel)
	}

	key := fmt.Sprintf("%s:%s:%s", sel.Provider.Name, sel.Model, sel.BaseURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	if client, ok := s.clients[key]; ok {
		return client, nil
	}

	client, err := s.newChatModel(ctx, sel)
	if err != nil {
		return nil, err
	}
	s.clients[key] = client
	log.Printf("[ai] created chat model client provider=%s model=%s", sel.Provider.Name, sel.Model)
	return client, nil
}

func (s *Service) newChatModel(ctx context.Context, sel Selection) (model.ToolCallingChatModel, error) {
	var temperature *float32
	if s.cfg.Temperature != nil {
		val := float32(*s.cfg.Temperature)
		temperature = &val
	}

	switch sel.Provider.Name {
	case provider.Ark:
		return ark.NewChatModel(ctx, &ark.ChatModelConfig{
			BaseURL:     sel.BaseURL,
			APIKey:      sel.APIKey,
			Model:       sel.Model,
			MaxTokens:   s.cfg.MaxTokens,
			Temperature: temperature,
		})
	case provider.Ollama:
		return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: sel.BaseURL,
			Model:   sel.Model,
		})
	case provider.DeepSeek:
		cfg := &deepseek.ChatModelConfig{
			APIKey:  sel.APIKey,
			BaseURL: sel.BaseURL,
			Model:   sel.Model,
		}
		if s.cfg.MaxTokens != nil {
			cfg.MaxTokens = *s.cfg.MaxTokens
		}
		if temperature != nil {
			cfg.Temperature = *temperature
		}
		return deepseek.NewChatModel(ctx, cfg)
	case provider.OpenAI, provider.NVIDIA, provider.Custom:
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      sel.APIKey,
			BaseURL:     sel.BaseURL,
			Model:       sel.Model,
			MaxTokens:   s.cfg.MaxTokens,
			Temperature: temperature,
		})
	case provider.Azure:
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			ByAzure:     true,
			APIVersion:  azureAPIVersion,
			APIKey:      sel.APIKey,
			BaseURL:     sel.BaseURL,
			Model:       sel.Model,
			MaxTokens:   s.cfg.MaxTokens,
			Temperature: temperature,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, sel.Provider.Name)
	}
}

// Generate runs one blocking generation request, including the tool-calling
// loop, and records any produced diagram in the history.
func (s *Service) Generate(ctx context.Context, req generate.Request) (*generate.Response, error) {
	sel, err := s.Resolve(req)
	if err != nil {
		return nil, err
	}

	if req.Format == generate.FormatCSV {
		return s.generateCSV(ctx, sel, req)
	}

	client, err := s.clientFor(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}
	toolClient, err := client.WithTools(tools.Definitions())
	if err != nil {
		return nil, fmt.Errorf("bind diagram tools: %w", err)
	}

	exec := s.newExecutor(ctx, req)
	msgs := s.buildMessages(req)

	var calls []generate.ToolCall
	var finalText string
	for round := 0; round < s.cfg.MaxToolRounds; round++ {
		out, err := toolClient.Generate(ctx, msgs)
		if err != nil {
			return nil, providerErr("chat model generate", err)
		}
		if len(out.ToolCalls) == 0 {
			finalText = out.Content
			break
		}
		msgs = append(msgs, out)
		for _, tc := range out.ToolCalls {
			res := exec.Execute(tc.Function.Name, tc.Function.Arguments)
			calls = append(calls, toolCallSummary(res))
			payload, _ := json.Marshal(res)
			msgs = append(msgs, schema.ToolMessage(string(payload), tc.ID))
		}
	}

	resp := s.buildResponse(ctx, sel, req, exec, finalText, calls)
	return resp, nil
}

// Stream runs a generation request and forwards progress through emit: text
// deltas as they arrive, tool results as they execute, diagram snapshots
// after every successful tool call and a final end event with the full
// response. emit errors abort the run (client gone).
func (s *Service) Stream(ctx context.Context, req generate.Request, emit func(generate.Event) error) error {
	sel, err := s.Resolve(req)
	if err != nil {
		return err
	}

	if req.Format == generate.FormatCSV {
		resp, err := s.generateCSV(ctx, sel, req)
		if err != nil {
			return err
		}
		return emit(generate.Event{Type: generate.EventEnd, Response: resp})
	}

	client, err := s.clientFor(ctx, sel)
	if err != nil {
		return fmt.Errorf("create chat model: %w", err)
	}
	toolClient, err := client.WithTools(tools.Definitions())
	if err != nil {
		return fmt.Errorf("bind diagram tools: %w", err)
	}

	exec := s.newExecutor(ctx, req)
	msgs := s.buildMessages(req)

	if err := emit(generate.Event{Type: generate.EventStart}); err != nil {
		return err
	}

	var calls []generate.ToolCall
	var finalText string
	for round := 0; round < s.cfg.MaxToolRounds; round++ {
		out, err := s.streamTurn(ctx, toolClient, msgs, emit)
		if err != nil {
			return err
		}
		if len(out.ToolCalls) == 0 {
			finalText = out.Content
			break
		}
		msgs = append(msgs, out)
		for _, tc := range out.ToolCalls {
			res := exec.Execute(tc.Function.Name, tc.Function.Arguments)
			summary := toolCallSummary(res)
			calls = append(calls, summary)
			if err := emit(generate.Event{Type: generate.EventTool, Tool: &summary}); err != nil {
				return err
			}
			if res.Success && res.XML != "" {
				if err := emit(generate.Event{Type: generate.EventDiagram, XML: res.XML}); err != nil {
					return err
				}
			}
			payload, _ := json.Marshal(res)
			msgs = append(msgs, schema.ToolMessage(string(payload), tc.ID))
		}
	}

	resp := s.buildResponse(ctx, sel, req, exec, finalText, calls)
	return emit(generate.Event{Type: generate.EventEnd, Response: resp})
}

// streamTurn streams one model turn, forwarding content deltas, and returns
// the concatenated full message.
func (s *Service) streamTurn(ctx context.Context, client model.ToolCallingChatModel, msgs []*schema.Message, emit func(generate.Event) error) (*schema.Message, error) {
	stream, err := client.Stream(ctx, msgs)
	if err != nil {
		return nil, providerErr("chat model stream", err)
	}
	defer stream.Close()

	var chunks []*schema.Message
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, providerErr("receive stream chunk", err)
		}
		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			if err := emit(generate.Event{Type: generate.EventDelta, Delta: chunk.Content}); err != nil {
				return nil, err
			}
		}
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("chat model stream returned no chunks")
	}
	full, err := schema.ConcatMessages(chunks)
	if err != nil {
		return nil, fmt.Errorf("concat stream chunks: %w", err)
	}
	return full, nil
}

// TestProvider verifies that the selection can answer a trivial round trip.
func (s *Service) TestProvider(ctx context.Context, req generate.Request) (*generate.Response, error) {
	sel, err := s.Resolve(req)
	if err != nil {
		return nil, err
	}
	client, err := s.clientFor(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}

	out, err := client.Generate(ctx, []*schema.Message{
		schema.UserMessage("Reply with the single word: ok"),
	})
	if err != nil {
		return nil, providerErr("provider test", err)
	}

	return &generate.Response{
		Provider: string(sel.Provider.Name),
		Model:    sel.Model,
		Message:  strings.TrimSpace(out.Content),
	}, nil
}

func (s *Service) generateCSV(ctx context.Context, sel Selection, req generate.Request) (*generate.Response, error) {
	client, err := s.clientFor(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}

	out, err := client.Generate(ctx, []*schema.Message{
		schema.UserMessage(buildCSVPrompt(req.Prompt)),
	})
	if err != nil {
		return nil, providerErr("chat model generate", err)
	}

	csvText := extractCSV(out.Content)
	if err := drawio.ValidateCSV(csvText); err != nil {
		return nil, fmt.Errorf("model returned invalid CSV: %w", err)
	}

	return &generate.Response{
		CSV:      csvText,
		Provider: string(sel.Provider.Name),
		Model:    sel.Model,
	}, nil
}

// newExecutor seeds a per-request tool executor with the base diagram, from
// the request body or from stored history when only a diagram id is given.
func (s *Service) newExecutor(ctx context.Context, req generate.Request) *tools.Executor {
	exec := tools.NewExecutor(s.shapeLib)
	if req.CurrentXML != "" {
		exec.SetCurrent(req.CurrentXML)
		return exec
	}
	if req.DiagramID != "" {
		if xml, err := s.history.LatestXML(ctx, req.DiagramID); err == nil {
			exec.SetCurrent(xml)
		}
	}
	return exec
}

func (s *Service) buildMessages(req generate.Request) []*schema.Message {
	prompt := req.Prompt
	if req.FileContext != "" {
		prompt = req.FileContext + "\n\n" + prompt
	}
	msgs := []*schema.Message{
		schema.SystemMessage(diagramSystemPrompt),
	}
	if req.CurrentXML != "" || req.DiagramID != "" {
		msgs = append(msgs, schema.SystemMessage("A diagram already exists. Prefer edit_diagram for incremental changes; use display_diagram only for full redesigns."))
	}
	return append(msgs, schema.UserMessage(prompt))
}

// buildResponse assembles the final response, falling back to raw mxCell
// extraction from the model's text when no tool produced a document, and
// records the result in the diagram history.
func (s *Service) buildResponse(ctx context.Context, sel Selection, req generate.Request, exec *tools.Executor, finalText string, calls []generate.ToolCall) *generate.Response {
	doc := exec.Current()
	if doc == "" && finalText != "" {
		if fragment, ok := extractCellsFromText(finalText); ok {
			if fixed, err := drawio.ValidateAndFix(fragment); err == nil {
				doc = drawio.WrapDocument(fixed)
				log.Printf("[ai] recovered diagram from text fallback, %d bytes", len(doc))
			} else {
				log.Printf("[ai] text fallback produced invalid cells: %v", err)
			}
		}
	}

	resp := &generate.Response{
		XML:       doc,
		Message:   finalText,
		Provider:  string(sel.Provider.Name),
		Model:     sel.Model,
		ToolCalls: calls,
	}

	if doc == "" {
		return resp
	}

	version, err := s.recordVersion(ctx, req, doc, sel)
	if err != nil {
		log.Printf("[ai] failed to record diagram version: %v", err)
		return resp
	}
	resp.DiagramID = version.DiagramID
	resp.VersionID = version.ID
	return resp
}

func (s *Service) recordVersion(ctx context.Context, req generate.Request, doc string, sel Selection) (diagram.Version, error) {
	providerName := string(sel.Provider.Name)
	if req.DiagramID != "" {
		v, err := s.history.AddVersion(ctx, req.DiagramID, req.Prompt, doc, providerName, sel.Model, nil)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, history.ErrDiagramNotFound) {
			return v, err
		}
	}
	return s.history.CreateDiagram(ctx, req.Prompt, doc, providerName, sel.Model, nil)
}

func toolCallSummary(res tools.Result) generate.ToolCall {
	return generate.ToolCall{
		Tool:    res.Tool,
		Success: res.Success,
		Message: res.Message,
		Error:   res.Error,
	}
}
