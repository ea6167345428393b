package render_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"jvmcg/internal/model"
	"jvmcg/internal/render"
)

func sampleResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		Classes: []model.ClassInfo{
			{FQN: "a.App", Kind: model.KindClass},
			{FQN: "a.Handler", Kind: model.KindInterface},
		},
		Methods: []model.MethodInfo{
			{OwnerFQN: "a.App", Name: "main", Descriptor: "([Ljava/lang/String;)V", Visibility: model.Public, IsStatic: true},
		},
		CallEdges: []model.CallEdge{
			{
				Source: model.MethodRef{OwnerFQN: "a.App", Name: "main", Descriptor: "([Ljava/lang/String;)V"},
				Target: model.MethodRef{OwnerFQN: "a.Handler", Name: "handle", Descriptor: "()V"},
			},
		},
	}
}

func TestRenderTextIncludesHeaderAndEdges(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Render(&buf, sampleResult(), render.FormatText, false); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Call Graph (1 edges):") {
		t.Errorf("missing edge count header: %s", out)
	}
	if !strings.Contains(out, "a.App.main -> a.Handler.handle") {
		t.Errorf("missing edge line: %s", out)
	}
	if strings.Contains(out, "Methods found:") {
		t.Errorf("non-verbose text should not list methods: %s", out)
	}
}

func TestRenderTextVerboseIncludesMethods(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Render(&buf, sampleResult(), render.FormatText, true); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "Methods found:") {
		t.Errorf("verbose text should list methods: %s", buf.String())
	}
}

func TestRenderCSVParsesBackToHeaderAndRow(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Render(&buf, sampleResult(), render.FormatCSV, false); err != nil {
		t.Fatalf("Render: %v", err)
	}
	r := csv.NewReader(&buf)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("csv parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %v, want header + 1 row", records)
	}
	if records[0][0] != "caller_class" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "a.App" || records[1][2] != "a.Handler" {
		t.Errorf("row = %v", records[1])
	}
}

func TestRenderJSONShape(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Render(&buf, sampleResult(), render.FormatJSON, true); err != nil {
		t.Fatalf("Render: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if _, ok := decoded["callEdges"]; !ok {
		t.Error("expected callEdges key")
	}
	if _, ok := decoded["classes"]; !ok {
		t.Error("expected classes key when verbose")
	}
}

func TestRenderJSONNonVerboseOmitsClasses(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Render(&buf, sampleResult(), render.FormatJSON, false); err != nil {
		t.Fatalf("Render: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if _, ok := decoded["classes"]; ok {
		t.Error("non-verbose JSON should omit classes")
	}
}

func TestRenderDOTContainsNodesAndEdge(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Render(&buf, sampleResult(), render.FormatDOT, false); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "a.App.main") || !strings.Contains(out, "a.Handler.handle") {
		t.Errorf("missing node labels: %s", out)
	}
	if !strings.Contains(out, "->") {
		t.Errorf("missing edge: %s", out)
	}
}
