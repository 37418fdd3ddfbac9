package main

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePackage(t *testing.T, path, text string) {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	f, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	fmt.Fprintf(f, `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`+
		`<w:body><w:p><w:r><w:t>%s</w:t></w:r></w:p></w:body></w:document>`, text)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	t.Setenv("INTM_CONFIG", "")
	t.Setenv("INTM_LOG_LEVEL", "off")

	dir := t.TempDir()
	writePackage(t, filepath.Join(dir, "a.docx"), "alpha")
	writePackage(t, filepath.Join(dir, "b.docx"), "beta")

	manifest := filepath.Join(dir, "jobs.yaml")
	content := fmt.Sprintf(`concurrency: 2
continue_on_error: true
jobs:
  - source: %[1]s/a.docx
    destination: %[1]s/a.txt
  - source: %[1]s/b.docx
    destination: %[1]s/b.txt
`, dir)
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{manifest}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "2 succeeded, 0 failed, 0 skipped") {
		t.Errorf("stdout = %q", stdout.String())
	}

	for name, want := range map[string]string{"a.txt": "<p>alpha", "b.txt": "<p>beta"} {
		got, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("%s missing: %v", name, err)
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestRunUsageAndFailures(t *testing.T) {
	t.Setenv("INTM_CONFIG", "")
	t.Setenv("INTM_LOG_LEVEL", "off")
	dir := t.TempDir()

	failing := filepath.Join(dir, "fail.yaml")
	os.WriteFile(failing, []byte(fmt.Sprintf("jobs:\n  - source: %s/none.docx\n    destination: %s/none.txt\n", dir, dir)), 0o644)

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"no arguments", nil, 2},
		{"two arguments", []string{"a", "b"}, 2},
		{"missing manifest", []string{filepath.Join(dir, "none.yaml")}, 1},
		{"failing job", []string{failing}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(context.Background(), tt.args, &stdout, &stderr); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
		})
	}
}
