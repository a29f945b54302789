// Package tagger runs the per-file locate / edit / splice pipeline and the
// worker pool that processes many files in one run.
package tagger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/intheon/xdf-tagger/internal/logger"
	"github.com/intheon/xdf-tagger/internal/metadata"
	"github.com/intheon/xdf-tagger/pkg/xdf"
)

// ErrOutputExists reports that writing would clobber an existing file and
// overwriting was not allowed.
var ErrOutputExists = errors.New("output file already exists")

// Transform rewrites a metadata document's text. It is called exactly
// once per file with the located content; returning the content unchanged
// selects the verbatim-copy path.
type Transform func(content string) (string, error)

// EditTransform adapts a metadata edit into the pipeline's transform.
// Show output is serialized so lines from concurrently processed files do
// not interleave.
func EditTransform(edit metadata.Edit, out io.Writer) Transform {
	var mu sync.Mutex
	return func(content string) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		return edit.Apply(content, out)
	}
}

// Job is one input file and where its result goes.
type Job struct {
	InPath string
	// OutPath is the final destination. Empty means a read-only run: the
	// file is located and the transform applied, but nothing is written.
	OutPath string
}

// InPlace reports whether the job rewrites its own input.
func (j Job) InPlace() bool { return j.OutPath == j.InPath }

// Options control how files are processed.
type Options struct {
	// Overwrite allows replacing existing output files.
	Overwrite bool
	// Jobs bounds how many files are processed concurrently.
	Jobs int
}

// ProcessFile runs the pipeline for a single file. The input is never
// touched until the output has been fully written, synced and closed;
// only then is it promoted into place with a rename. Any failure before
// that leaves the input intact and removes the partial output.
func ProcessFile(ctx context.Context, job Job, transform Transform, opts Options, log logger.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log = log.With("file", job.InPath)
	log.Info("processing file")

	st, err := os.Stat(job.InPath)
	if err != nil {
		return err
	}
	inf, err := xdf.Open(job.InPath)
	if err != nil {
		return err
	}
	defer inf.Close()

	loc, err := xdf.LocateMetadata(inf, inf.Size(), xdf.LocateOptions{
		IsMetadata: metadata.IsMetadataStream,
		DefaultDoc: metadata.DefaultDocument,
		Log:        log,
	})
	if err != nil {
		return err
	}

	newContent, err := transform(loc.Content)
	if err != nil {
		return err
	}

	if job.OutPath == "" {
		return nil
	}
	if !opts.Overwrite && !job.InPlace() {
		if _, err := os.Stat(job.OutPath); err == nil {
			return fmt.Errorf("%w: %s (use --overwrite to replace it)", ErrOutputExists, job.OutPath)
		}
	}

	outf, err := os.CreateTemp(filepath.Dir(job.OutPath), filepath.Base(job.OutPath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := outf.Name()
	defer func() {
		if outf != nil {
			outf.Close()
		}
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	if err := xdf.Splice(outf, inf, inf.Size(), loc, newContent); err != nil {
		return err
	}
	if err := outf.Sync(); err != nil {
		return err
	}
	if err := outf.Close(); err != nil {
		outf = nil
		return err
	}
	outf = nil

	if job.InPlace() {
		// Keep the original timestamps when rewriting in place.
		if err := os.Chtimes(tmpPath, st.ModTime(), st.ModTime()); err != nil {
			log.Debug("could not preserve file time", "error", err)
		}
	}
	if err := os.Rename(tmpPath, job.OutPath); err != nil {
		return err
	}
	tmpPath = ""
	log.Info("wrote output", "output", job.OutPath)
	return nil
}

// Run processes jobs with a bounded worker pool. Each file's pipeline is
// independent and shares no state with the others; one file failing does
// not stop the rest.
func Run(ctx context.Context, jobs []Job, transform Transform, opts Options, log logger.Logger) error {
	workers := opts.Jobs
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers == 0 {
		return nil
	}

	jobCh := make(chan Job)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				if err := ProcessFile(ctx, job, transform, opts, log); err != nil {
					log.Error("processing failed", "file", job.InPath, "error", err)
					mu.Lock()
					errs = append(errs, fmt.Errorf("%s: %w", job.InPath, err))
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			break feed
		case jobCh <- job:
		}
	}
	close(jobCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
