// Package tools implements the diagram tool-calling protocol: the tool
// definitions bound to the chat model and the executor that dispatches the
// model's tool calls onto the XML layer.
package tools

import (
	"github.com/cloudwego/eino/schema"
)

// Tool names the model can call.
const (
	ToolDisplayDiagram  = "display_diagram"
	ToolEditDiagram     = "edit_diagram"
	ToolAppendDiagram   = "append_diagram"
	ToolGetShapeLibrary = "get_shape_library"
)

// Definitions returns the tool set bound to the chat model.
func Definitions() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolDisplayDiagram,
			Desc: "Display a NEW diagram on draw.io. Use this when creating a diagram from scratch or when major structural changes are needed. Pass ONLY mxCell elements - wrapper tags are added automatically. Do not include root cells (id 0 or 1), never nest mxCell elements, give every cell a unique id and a parent attribute, and give every vertex/edge an mxGeometry child.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"xml": {
					Type:     schema.String,
					Desc:     "XML string containing ONLY mxCell elements (no wrapper tags)",
					Required: true,
				},
			}),
		},
		{
			Name: ToolEditDiagram,
			Desc: "Edit the current diagram using ID-based operations. Use this for incremental changes instead of regenerating the entire diagram. Operations: 'add' a new cell, 'update' (replace) an existing cell by id, 'delete' a cell by id.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"operations": {
					Type:     schema.Array,
					Desc:     "List of edit operations to apply, in order",
					Required: true,
					ElemInfo: &schema.ParameterInfo{
						Type: schema.Object,
						SubParams: map[string]*schema.ParameterInfo{
							"operation": {
								Type:     schema.String,
								Desc:     "Operation type",
								Enum:     []string{"add", "update", "delete"},
								Required: true,
							},
							"cellId": {
								Type:     schema.String,
								Desc:     "ID of the cell to edit",
								Required: true,
							},
							"newXml": {
								Type: schema.String,
								Desc: "New mxCell XML (required for 'add' and 'update')",
							},
						},
					},
				},
			}),
		},
		{
			Name: ToolAppendDiagram,
			Desc: "Append additional mxCell elements to the current diagram. Only use this when a previous display_diagram response was truncated due to output length limits and you need to continue from where you stopped. New cell ids must not conflict with existing ones.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"xml": {
					Type:     schema.String,
					Desc:     "Continuation fragment containing ONLY mxCell elements (no wrapper tags)",
					Required: true,
				},
			}),
		},
		{
			Name: ToolGetShapeLibrary,
			Desc: "Get shape/icon library documentation. Use this to discover available icon shapes (AWS, Azure, GCP, Kubernetes, etc.) BEFORE creating diagrams with cloud/tech icons.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"library": {
					Type:     schema.String,
					Desc:     "Library name: aws4, azure2, gcp2, kubernetes, cisco19, flowchart",
					Required: true,
				},
			}),
		},
	}
}
