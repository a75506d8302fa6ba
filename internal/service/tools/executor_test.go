package tools_test

import (
	"strings"
	"testing"

	"github.com/arcgen/backend/internal/service/shapelib"
	"github.com/arcgen/backend/internal/service/tools"
)

func newExecutor() *tools.Executor {
	return tools.NewExecutor(shapelib.NewManager(""))
}

func TestExecuteDisplayDiagram(t *testing.T) {
	exec := newExecutor()

	args := `{"xml": "<mxCell id=\"2\" value=\"User\" vertex=\"1\" parent=\"1\"><mxGeometry x=\"40\" y=\"40\" width=\"120\" height=\"60\" as=\"geometry\"/></mxCell>"}`
	res := exec.Execute(tools.ToolDisplayDiagram, args)
	if !res.Success {
		t.Fatalf("display failed: %s", res.Error)
	}
	if !strings.Contains(res.XML, "<mxfile") || !strings.Contains(res.XML, `id="2"`) {
		t.Errorf("expected wrapped document with cell, got: %s", res.XML)
	}
	if exec.Current() != res.XML {
		t.Error("executor did not record the new diagram as current")
	}
}

func TestExecuteDisplayDiagramInvalidXML(t *testing.T) {
	exec := newExecutor()

	res := exec.Execute(tools.ToolDisplayDiagram, `{"xml": "<mxCell id=\"2\"><mxCell id=\"3\"/></mxCell>"}`)
	if res.Success {
		t.Fatal("expected nested mxCell to be rejected")
	}
	if res.Error == "" {
		t.Error("expected an error message")
	}
	if exec.Current() != "" {
		t.Error("failed display must not replace the current diagram")
	}
}

func TestExecuteEditDiagram(t *testing.T) {
	exec := newExecutor()
	exec.Execute(tools.ToolDisplayDiagram, `{"xml": "<mxCell id=\"2\" value=\"User\" vertex=\"1\" parent=\"1\"><mxGeometry x=\"40\" y=\"40\" width=\"120\" height=\"60\" as=\"geometry\"/></mxCell>"}`)

	res := exec.Execute(tools.ToolEditDiagram, `{"operations": [{"operation": "update", "cellId": "2", "newXml": "<mxCell id=\"2\" value=\"Admin\" vertex=\"1\" parent=\"1\"><mxGeometry x=\"40\" y=\"40\" width=\"120\" height=\"60\" as=\"geometry\"/></mxCell>"}]}`)
	if !res.Success {
		t.Fatalf("edit failed: %s", res.Error)
	}
	if !strings.Contains(res.XML, "Admin") {
		t.Errorf("expected updated cell value in document: %s", res.XML)
	}
}

func TestExecuteEditDiagramWithoutBase(t *testing.T) {
	exec := newExecutor()

	res := exec.Execute(tools.ToolEditDiagram, `{"operations": [{"operation": "delete", "cellId": "2"}]}`)
	if res.Success {
		t.Fatal("expected edit without a current diagram to fail")
	}
	if !strings.Contains(res.Error, "no current diagram") {
		t.Errorf("unexpected error: %s", res.Error)
	}
}

func TestExecuteAppendDiagram(t *testing.T) {
	exec := newExecutor()
	exec.Execute(tools.ToolDisplayDiagram, `{"xml": "<mxCell id=\"2\" value=\"User\" vertex=\"1\" parent=\"1\"><mxGeometry x=\"40\" y=\"40\" width=\"120\" height=\"60\" as=\"geometry\"/></mxCell>"}`)

	res := exec.Execute(tools.ToolAppendDiagram, `{"xml": "<mxCell id=\"3\" value=\"API\" vertex=\"1\" parent=\"1\"><mxGeometry x=\"240\" y=\"40\" width=\"120\" height=\"60\" as=\"geometry\"/></mxCell>"}`)
	if !res.Success {
		t.Fatalf("append failed: %s", res.Error)
	}
	if !strings.Contains(res.XML, `id="2"`) || !strings.Contains(res.XML, `id="3"`) {
		t.Errorf("expected both cells in document: %s", res.XML)
	}
}

func TestExecuteGetShapeLibrary(t *testing.T) {
	exec := newExecutor()

	res := exec.Execute(tools.ToolGetShapeLibrary, `{"library": "aws4"}`)
	if !res.Success {
		t.Fatalf("get_shape_library failed: %s", res.Error)
	}
	if !strings.Contains(res.Content, "aws4") {
		t.Errorf("expected library docs to mention aws4: %s", res.Content)
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	exec := newExecutor()

	res := exec.Execute("make_coffee", `{}`)
	if res.Success {
		t.Fatal("expected unknown tool to fail")
	}
	if !strings.Contains(res.Error, "unknown tool") {
		t.Errorf("unexpected error: %s", res.Error)
	}
}
