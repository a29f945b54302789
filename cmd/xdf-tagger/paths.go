package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/intheon/xdf-tagger/internal/logger"
	"github.com/intheon/xdf-tagger/internal/tagger"
)

const xdfExt = ".xdf"

// matchingPathnames expands the given glob patterns into a sorted,
// de-duplicated list of paths. A pattern that matches nothing is not an
// error; a literal path only matches if the file exists.
func matchingPathnames(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string
	for _, pat := range patterns {
		matches, err := filepath.Glob(pat)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pat, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// deriveOutPath splices the suffix in before the .xdf file ending, or
// appends it if the path has no such ending.
func deriveOutPath(inPath, suffix string) string {
	if strings.HasSuffix(inPath, xdfExt) {
		return inPath[:len(inPath)-len(xdfExt)] + suffix + xdfExt
	}
	return inPath + suffix
}

// hasOutputSuffix reports whether the path already names a previous run's
// output file.
func hasOutputSuffix(path, suffix string) bool {
	return suffix != "" && strings.HasSuffix(path, suffix+xdfExt)
}

// buildJobs derives the output destination for each input path. Files
// that already carry the output suffix are skipped unless requested,
// so repeated runs over the same glob do not chain outputs. A read-only
// run (no --set or --clear) leaves OutPath empty and writes nothing.
func buildJobs(inPaths []string, modifying bool, suffix string, inPlace, processSuffixed bool, log logger.Logger) []tagger.Job {
	jobs := make([]tagger.Job, 0, len(inPaths))
	for _, in := range inPaths {
		if !processSuffixed && hasOutputSuffix(in, suffix) {
			log.Debug("skipping already-suffixed file", "file", in)
			continue
		}
		job := tagger.Job{InPath: in}
		if modifying {
			if inPlace || suffix == "" {
				job.OutPath = in
			} else {
				job.OutPath = deriveOutPath(in, suffix)
			}
		}
		jobs = append(jobs, job)
	}
	return jobs
}
