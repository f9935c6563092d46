package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSON_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer

	err := JSON(&buf, map[string]any{"folder_path": "Reports/2024", "file_count": 2})
	if err != nil {
		t.Fatalf("JSON() returned error: %v", err)
	}

	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		t.Error("output does not end with a newline")
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("non-terminal output contains ANSI escapes")
	}

	var back map[string]any
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if back["folder_path"] != "Reports/2024" {
		t.Errorf("folder_path = %v, want Reports/2024", back["folder_path"])
	}
}

func TestJSON_UnmarshalableValue(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, make(chan int)); err == nil {
		t.Error("JSON() with unmarshalable value returned nil error")
	}
}
