package obslog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jvmcg/internal/obslog"
)

func TestSetupWritesJSONLToFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "nested", "jvmcg.log")

	logger, cleanup, err := obslog.Setup(logFile, true)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer cleanup()

	logger.Info("hello", "key", "value")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("log file missing expected record: %s", data)
	}
}

func TestSetupWithoutLogFileStillReturnsUsableLogger(t *testing.T) {
	logger, cleanup, err := obslog.Setup("", false)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer cleanup()
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}
