package tools

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/arcgen/backend/internal/drawio"
	"github.com/arcgen/backend/internal/service/shapelib"
)

// Result is the outcome of a single tool call. XML, when set, is a complete
// wrapped draw.io document ready for the client to render.
type Result struct {
	Tool    string `json:"tool"`
	Success bool   `json:"success"`
	XML     string `json:"xml,omitempty"`
	Content string `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Executor dispatches tool calls from the model and tracks the current
// diagram so edit and append operations have a base document to work on.
type Executor struct {
	mu       sync.Mutex
	current  string
	shapeLib *shapelib.Manager
}

func NewExecutor(shapeLib *shapelib.Manager) *Executor {
	return &Executor{shapeLib: shapeLib}
}

// SetCurrent seeds the executor with an existing diagram document, e.g. when
// the client sends a follow-up edit request for a stored diagram.
func (e *Executor) SetCurrent(doc string) {
	e.mu.Lock()
	e.current = doc
	e.mu.Unlock()
}

// Current returns the latest diagram document produced by any tool call.
func (e *Executor) Current() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Execute runs the named tool with its raw JSON arguments. Failures are
// reported inside the Result so they can be fed back to the model as tool
// output rather than aborting the conversation.
func (e *Executor) Execute(name, arguments string) Result {
	switch name {
	case ToolDisplayDiagram:
		return e.displayDiagram(arguments)
	case ToolEditDiagram:
		return e.editDiagram(arguments)
	case ToolAppendDiagram:
		return e.appendDiagram(arguments)
	case ToolGetShapeLibrary:
		return e.getShapeLibrary(arguments)
	default:
		return Result{Tool: name, Error: fmt.Sprintf("unknown tool: %s", name)}
	}
}

type xmlArgs struct {
	XML string `json:"xml"`
}

type editArgs struct {
	Operations []drawio.EditOperation `json:"operations"`
}

type libraryArgs struct {
	Library string `json:"library"`
}

func (e *Executor) displayDiagram(arguments string) Result {
	var args xmlArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return Result{Tool: ToolDisplayDiagram, Error: fmt.Sprintf("invalid arguments: %v", err)}
	}
	fragment, err := drawio.ValidateAndFix(args.XML)
	if err != nil {
		return Result{Tool: ToolDisplayDiagram, Error: err.Error()}
	}
	doc := drawio.WrapDocument(fragment)
	e.SetCurrent(doc)
	return Result{
		Tool:    ToolDisplayDiagram,
		Success: true,
		XML:     doc,
		Message: "Diagram displayed successfully.",
	}
}

func (e *Executor) editDiagram(arguments string) Result {
	var args editArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return Result{Tool: ToolEditDiagram, Error: fmt.Sprintf("invalid arguments: %v", err)}
	}
	if len(args.Operations) == 0 {
		return Result{Tool: ToolEditDiagram, Error: "no operations provided"}
	}
	base := e.Current()
	if base == "" {
		return Result{Tool: ToolEditDiagram, Error: "no current diagram to edit; use display_diagram first"}
	}
	doc, err := drawio.ApplyOperations(base, args.Operations)
	if err != nil {
		return Result{Tool: ToolEditDiagram, Error: err.Error()}
	}
	e.SetCurrent(doc)
	return Result{
		Tool:    ToolEditDiagram,
		Success: true,
		XML:     doc,
		Message: fmt.Sprintf("Applied %d edit operation(s).", len(args.Operations)),
	}
}

func (e *Executor) appendDiagram(arguments string) Result {
	var args xmlArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return Result{Tool: ToolAppendDiagram, Error: fmt.Sprintf("invalid arguments: %v", err)}
	}
	base := e.Current()
	if base == "" {
		return Result{Tool: ToolAppendDiagram, Error: "no current diagram to append to; use display_diagram first"}
	}
	doc, err := drawio.AppendCells(base, args.XML)
	if err != nil {
		return Result{Tool: ToolAppendDiagram, Error: err.Error()}
	}
	e.SetCurrent(doc)
	return Result{
		Tool:    ToolAppendDiagram,
		Success: true,
		XML:     doc,
		Message: "Continuation appended to diagram.",
	}
}

func (e *Executor) getShapeLibrary(arguments string) Result {
	var args libraryArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return Result{Tool: ToolGetShapeLibrary, Error: fmt.Sprintf("invalid arguments: %v", err)}
	}
	name := strings.TrimSpace(args.Library)
	if name == "" {
		return Result{Tool: ToolGetShapeLibrary, Error: "library name is required"}
	}
	lib, err := e.shapeLib.Get(name)
	if err != nil {
		return Result{Tool: ToolGetShapeLibrary, Error: err.Error()}
	}
	return Result{
		Tool:    ToolGetShapeLibrary,
		Success: true,
		Content: lib.Content,
		Message: fmt.Sprintf("Loaded %s shape library documentation.", name),
	}
}
