package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeGo(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("package q\n\n"+body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunReportsViolations(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		want    int
		message string
	}{
		{
			name: "valid markers",
			files: map[string]string{
				"a.go": "const QA = `--sql 6f1c2a7e-3b1d-4e0a-9c55-0d7b9a1e2f33\nselect 1;`\n",
				"b.go": "const QB = `--sql 0a4d9e62-8c0b-4f57-b1a3-5e2f6c7d8e90\nupdate t set x = 1;`\n",
			},
			want: 0,
		},
		{
			name: "missing marker",
			files: map[string]string{
				"a.go": "const QA = `select id from posts;`\n",
			},
			want:    1,
			message: "missing or invalid --sql <uuid> marker (QA)",
		},
		{
			name: "upper case uuid rejected",
			files: map[string]string{
				"a.go": "const QA = `--sql 6F1C2A7E-3B1D-4E0A-9C55-0D7B9A1E2F33\nselect 1;`\n",
			},
			want:    1,
			message: "missing or invalid",
		},
		{
			name: "duplicate marker across files",
			files: map[string]string{
				"a.go": "const QA = `--sql 6f1c2a7e-3b1d-4e0a-9c55-0d7b9a1e2f33\nselect 1;`\n",
				"b.go": "const QB = `--sql 6f1c2a7e-3b1d-4e0a-9c55-0d7b9a1e2f33\ndelete from t;`\n",
			},
			want:    1,
			message: "marker already used by QA",
		},
		{
			name: "non sql strings ignored",
			files: map[string]string{
				"a.go": "const greeting = \"hello there\"\n",
			},
			want: 0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, body := range tc.files {
				writeGo(t, dir, name, body)
			}
			var stderr bytes.Buffer
			code := run([]string{dir}, &stderr)
			if tc.want == 0 {
				if code != 0 {
					t.Fatalf("exit = %d, output %s", code, stderr.String())
				}
				return
			}
			if code != 1 {
				t.Fatalf("exit = %d, want 1", code)
			}
			if !strings.Contains(stderr.String(), tc.message) {
				t.Fatalf("output %q does not mention %q", stderr.String(), tc.message)
			}
		})
	}
}

func TestRunSkipsTestFiles(t *testing.T) {
	dir := t.TempDir()
	writeGo(t, dir, "q_test.go", "const fixture = `select 1;`\n")
	var stderr bytes.Buffer
	if code := run([]string{dir}, &stderr); code != 0 {
		t.Fatalf("exit = %d, output %s", code, stderr.String())
	}
}

func TestInlineQueriesPass(t *testing.T) {
	var stderr bytes.Buffer
	if code := run([]string{"../../sqlinline"}, &stderr); code != 0 {
		t.Fatalf("sqlinline has violations:\n%s", stderr.String())
	}
}
