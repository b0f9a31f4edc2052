package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDeleteConfigShowsFallbackDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sauconv.yaml")
	if err := os.WriteFile(path, []byte("series:\n  first_year: 2020\n"), 0o600); err != nil {
		t.Fatalf("failed writing config: %v", err)
	}

	var out bytes.Buffer
	if err := deleteConfig(&out, path); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected config file to be removed, stat err: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"Configuration file deleted: " + path,
		"No config file in use, showing defaults.",
		"series.first_year: 2016",
		"saa.output: sau_by_department_year.json",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, text)
		}
	}
}

func TestDeleteConfigWithoutActiveFile(t *testing.T) {
	if err := deleteConfig(&bytes.Buffer{}, ""); err == nil {
		t.Fatalf("expected error without active config file")
	}
}
