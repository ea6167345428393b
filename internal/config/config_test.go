package config_test

import (
	"io"
	"log/slog"
	"testing"

	"jvmcg/internal/analysis"
	"jvmcg/internal/config"
	"jvmcg/internal/render"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseAlgorithmKnownValues(t *testing.T) {
	l := discardLogger()
	if got := config.ParseAlgorithm(l, "cha"); got != analysis.CHA {
		t.Errorf("cha -> %v", got)
	}
	if got := config.ParseAlgorithm(l, "RTA"); got != analysis.RTA {
		t.Errorf("RTA -> %v", got)
	}
	if got := config.ParseAlgorithm(l, ""); got != analysis.CHA {
		t.Errorf("empty -> %v, want CHA default", got)
	}
}

func TestParseAlgorithmUnknownFallsBackToCHA(t *testing.T) {
	if got := config.ParseAlgorithm(discardLogger(), "bogus"); got != analysis.CHA {
		t.Errorf("bogus -> %v, want CHA fallback", got)
	}
}

func TestParseOutputFormatKnownValues(t *testing.T) {
	l := discardLogger()
	cases := map[string]render.Format{
		"text": render.FormatText,
		"txt":  render.FormatText,
		"csv":  render.FormatCSV,
		"json": render.FormatJSON,
		"dot":  render.FormatDOT,
	}
	for raw, want := range cases {
		if got := config.ParseOutputFormat(l, raw); got != want {
			t.Errorf("ParseOutputFormat(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestParseOutputFormatUnknownFallsBackToText(t *testing.T) {
	if got := config.ParseOutputFormat(discardLogger(), "xml"); got != render.FormatText {
		t.Errorf("xml -> %v, want text fallback", got)
	}
}

func TestSplitCommaList(t *testing.T) {
	got := config.SplitCommaList([]string{"a.B, c.D", " e.F "})
	want := []string{"a.B", "c.D", "e.F"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d]=%q want %q", i, got[i], want[i])
		}
	}
}

func TestOptionsToRequest(t *testing.T) {
	opts := config.Options{
		Paths:           []string{"/tmp/classes"},
		Algorithm:       "rta",
		EntrySpecs:      []string{"a.B,c.D"},
		IncludePrefixes: []string{"com.example"},
		ExcludeJDK:      true,
	}
	req := opts.ToRequest(discardLogger())
	if req.Algorithm != analysis.RTA {
		t.Errorf("Algorithm = %v", req.Algorithm)
	}
	if len(req.EntrySpecs) != 2 {
		t.Errorf("EntrySpecs = %v", req.EntrySpecs)
	}
	if !req.ExcludeJDK {
		t.Error("ExcludeJDK should be true")
	}
}
