package main

import (
	"strings"
	"testing"
)

func TestWriteTablePadsShortRows(t *testing.T) {
	var buf strings.Builder
	writeTable(&buf, []string{"Name", "Count"}, [][]string{
		{"documents", "3"},
		{"images"},
	}, 1)

	out := buf.String()
	if !strings.Contains(out, "documents") || !strings.Contains(out, "images") {
		t.Fatalf("rows missing from rendered table:\n%s", out)
	}
	if !strings.Contains(out, "Count") {
		t.Errorf("header missing from rendered table:\n%s", out)
	}
}

func TestWriteTableEmptyHeadersWritesNothing(t *testing.T) {
	var buf strings.Builder
	writeTable(&buf, nil, [][]string{{"orphan"}})
	if buf.Len() != 0 {
		t.Errorf("expected no output, got:\n%s", buf.String())
	}
}

func TestWriteIndentedJSON(t *testing.T) {
	var buf strings.Builder
	if err := writeIndentedJSON(&buf, map[string]int{"moved": 2}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\"moved\": 2") {
		t.Errorf("unexpected JSON: %s", buf.String())
	}
}
