package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/intheon/xdf-tagger/internal/logger"
)

func TestMatchingPathnames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.xdf", "b.xdf", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	t.Run("glob matches sorted", func(t *testing.T) {
		got, err := matchingPathnames([]string{filepath.Join(dir, "*.xdf")})
		if err != nil {
			t.Fatalf("matchingPathnames returned error: %v", err)
		}
		want := []string{filepath.Join(dir, "a.xdf"), filepath.Join(dir, "b.xdf")}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("unexpected paths: got %v want %v", got, want)
		}
	})

	t.Run("overlapping patterns deduplicated", func(t *testing.T) {
		got, err := matchingPathnames([]string{
			filepath.Join(dir, "*.xdf"),
			filepath.Join(dir, "a.xdf"),
		})
		if err != nil {
			t.Fatalf("matchingPathnames returned error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 unique paths, got %v", got)
		}
	})

	t.Run("no matches is not an error", func(t *testing.T) {
		got, err := matchingPathnames([]string{filepath.Join(dir, "*.bin")})
		if err != nil {
			t.Fatalf("matchingPathnames returned error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected no matches, got %v", got)
		}
	})

	t.Run("bad pattern reported", func(t *testing.T) {
		if _, err := matchingPathnames([]string{"["}); err == nil {
			t.Fatalf("expected error for malformed pattern")
		}
	})
}

func TestDeriveOutPath(t *testing.T) {
	cases := []struct {
		in, suffix, want string
	}{
		{"rec.xdf", ".processed", "rec.processed.xdf"},
		{"dir/session 1.xdf", ".tagged", "dir/session 1.tagged.xdf"},
		{"rec.dat", ".processed", "rec.dat.processed"},
	}
	for _, c := range cases {
		if got := deriveOutPath(c.in, c.suffix); got != c.want {
			t.Errorf("deriveOutPath(%q, %q) = %q, want %q", c.in, c.suffix, got, c.want)
		}
	}
}

func TestBuildJobs(t *testing.T) {
	log := logger.Setup(os.Stderr, "error", "text")

	t.Run("suffixed files skipped by default", func(t *testing.T) {
		in := []string{"a.xdf", "a.processed.xdf"}
		jobs := buildJobs(in, true, ".processed", false, false, log)
		if len(jobs) != 1 || jobs[0].InPath != "a.xdf" {
			t.Fatalf("unexpected jobs: %v", jobs)
		}
		if want := "a.processed.xdf"; jobs[0].OutPath != want {
			t.Fatalf("unexpected out path: got %q want %q", jobs[0].OutPath, want)
		}
	})

	t.Run("process-suffixed keeps them", func(t *testing.T) {
		in := []string{"a.xdf", "a.processed.xdf"}
		jobs := buildJobs(in, true, ".processed", false, true, log)
		if len(jobs) != 2 {
			t.Fatalf("expected 2 jobs, got %v", jobs)
		}
	})

	t.Run("read-only run has no outputs", func(t *testing.T) {
		jobs := buildJobs([]string{"a.xdf"}, false, ".processed", false, false, log)
		if len(jobs) != 1 || jobs[0].OutPath != "" {
			t.Fatalf("expected empty out path, got %v", jobs)
		}
	})

	t.Run("inplace writes back to the input", func(t *testing.T) {
		jobs := buildJobs([]string{"a.xdf"}, true, ".processed", true, false, log)
		if len(jobs) != 1 || jobs[0].OutPath != "a.xdf" {
			t.Fatalf("expected in-place job, got %v", jobs)
		}
		if !jobs[0].InPlace() {
			t.Fatalf("expected job to report in-place")
		}
	})
}
