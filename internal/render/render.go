// Package render turns an AnalysisResult into one of four output formats.
// These are presentation details only — the data shape guaranteed by the
// core is model.AnalysisResult itself.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/emicklei/dot"

	"jvmcg/internal/model"
)

// Format selects one output shape.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
)

// Render writes result to w in the given format. verbose adds class kinds
// and the methods listing to text output (which lists classes either way),
// and the classes and methods listings to csv/json output; dot ignores it.
func Render(w io.Writer, result *model.AnalysisResult, format Format, verbose bool) error {
	switch format {
	case FormatText:
		return renderText(w, result, verbose)
	case FormatCSV:
		return renderCSV(w, result, verbose)
	case FormatJSON:
		return renderJSON(w, result, verbose)
	case FormatDOT:
		return renderDOT(w, result)
	default:
		return fmt.Errorf("render: unknown format %q", format)
	}
}

func nodeLabel(ownerFQN, name string) string {
	return ownerFQN + "." + name
}

func renderText(w io.Writer, result *model.AnalysisResult, verbose bool) error {
	bw := &errWriter{w: w}
	bw.Printf("=== Call Graph Analysis Results ===\n\n")
	bw.Printf("Call Graph (%d edges):\n", len(result.CallEdges))
	for _, e := range result.CallEdges {
		bw.Printf("  %s -> %s\n", nodeLabel(e.Source.OwnerFQN, e.Source.Name), nodeLabel(e.Target.OwnerFQN, e.Target.Name))
	}

	if verbose {
		bw.Printf("\nClasses found:\n")
		for _, c := range result.Classes {
			bw.Printf("  %s (%s)\n", c.FQN, classKindLabel(c.Kind))
		}
		bw.Printf("\nMethods found:\n")
		for _, m := range result.Methods {
			bw.Printf("  %s.%s (%s %s)\n", m.OwnerFQN, m.Name, visibilityLabel(m.Visibility), staticLabel(m.IsStatic))
		}
	} else {
		bw.Printf("\nClasses (%d):\n", len(result.Classes))
		for _, c := range result.Classes {
			bw.Printf("  %s\n", c.FQN)
		}
	}
	return bw.err
}

func classKindLabel(k model.ClassKind) string {
	switch k {
	case model.KindInterface:
		return "interface"
	case model.KindAbstractClass:
		return "abstract class"
	default:
		return "class"
	}
}

func visibilityLabel(v model.Visibility) string {
	switch v {
	case model.Public:
		return "public"
	case model.Private:
		return "private"
	default:
		return "package"
	}
}

func staticLabel(isStatic bool) string {
	if isStatic {
		return "static"
	}
	return "instance"
}

// renderCSV writes call edges via encoding/csv, which handles RFC 4180
// quoting/escaping, then optionally a classes block and a methods block,
// each with its own header row, separated by a blank line.
func renderCSV(w io.Writer, result *model.AnalysisResult, verbose bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"caller_class", "caller_method", "target_class", "target_method"}); err != nil {
		return err
	}
	for _, e := range result.CallEdges {
		if err := cw.Write([]string{e.Source.OwnerFQN, e.Source.Name, e.Target.OwnerFQN, e.Target.Name}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	if !verbose {
		return nil
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	cw = csv.NewWriter(w)
	if err := cw.Write([]string{"class_name", "type", "is_interface", "is_abstract"}); err != nil {
		return err
	}
	for _, c := range result.Classes {
		if err := cw.Write([]string{
			c.FQN,
			classKindLabel(c.Kind),
			fmt.Sprintf("%t", c.Kind == model.KindInterface),
			fmt.Sprintf("%t", c.Kind == model.KindAbstractClass),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	cw = csv.NewWriter(w)
	if err := cw.Write([]string{"class_name", "method_name", "signature", "visibility", "modifier"}); err != nil {
		return err
	}
	for _, m := range result.Methods {
		if err := cw.Write([]string{
			m.OwnerFQN, m.Name, m.Descriptor, visibilityLabel(m.Visibility), staticLabel(m.IsStatic),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonCallEdge struct {
	SourceClass  string `json:"sourceClass"`
	SourceMethod string `json:"sourceMethod"`
	TargetClass  string `json:"targetClass"`
	TargetMethod string `json:"targetMethod"`
}

type jsonClassInfo struct {
	Name        string `json:"name"`
	IsInterface bool   `json:"isInterface"`
	IsAbstract  bool   `json:"isAbstract"`
}

type jsonMethodInfo struct {
	ClassName  string `json:"className"`
	MethodName string `json:"methodName"`
	Signature  string `json:"signature"`
	Visibility string `json:"visibility"`
	IsStatic   bool   `json:"isStatic"`
}

type jsonResult struct {
	CallEdges []jsonCallEdge   `json:"callEdges"`
	Classes   []jsonClassInfo  `json:"classes,omitempty"`
	Methods   []jsonMethodInfo `json:"methods,omitempty"`
}

func renderJSON(w io.Writer, result *model.AnalysisResult, verbose bool) error {
	out := jsonResult{CallEdges: make([]jsonCallEdge, 0, len(result.CallEdges))}
	for _, e := range result.CallEdges {
		out.CallEdges = append(out.CallEdges, jsonCallEdge{
			SourceClass: e.Source.OwnerFQN, SourceMethod: e.Source.Name,
			TargetClass: e.Target.OwnerFQN, TargetMethod: e.Target.Name,
		})
	}
	if verbose {
		out.Classes = make([]jsonClassInfo, 0, len(result.Classes))
		for _, c := range result.Classes {
			out.Classes = append(out.Classes, jsonClassInfo{
				Name: c.FQN, IsInterface: c.Kind == model.KindInterface, IsAbstract: c.Kind == model.KindAbstractClass,
			})
		}
		out.Methods = make([]jsonMethodInfo, 0, len(result.Methods))
		for _, m := range result.Methods {
			out.Methods = append(out.Methods, jsonMethodInfo{
				ClassName: m.OwnerFQN, MethodName: m.Name, Signature: m.Descriptor,
				Visibility: visibilityLabel(m.Visibility), IsStatic: m.IsStatic,
			})
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// renderDOT builds a directed graph via github.com/emicklei/dot, one node
// per unique owner.method appearing in a call edge, then one edge per
// CallEdge.
func renderDOT(w io.Writer, result *model.AnalysisResult) error {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")

	nodes := make(map[string]dot.Node)
	nodeFor := func(ownerFQN, name string) dot.Node {
		id := nodeLabel(ownerFQN, name)
		if n, ok := nodes[id]; ok {
			return n
		}
		n := g.Node(id).Attr("shape", "box").Attr("style", "rounded")
		nodes[id] = n
		return n
	}

	for _, e := range result.CallEdges {
		src := nodeFor(e.Source.OwnerFQN, e.Source.Name)
		dst := nodeFor(e.Target.OwnerFQN, e.Target.Name)
		g.Edge(src, dst)
	}

	_, err := io.WriteString(w, g.String())
	return err
}

// errWriter accumulates the first write error, letting renderText call
// Printf repeatedly without error-checking each line individually.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
