package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"sjavac/internal/pipeline"
	"sjavac/internal/source"
)

// target is one file to check; err is set when expansion already failed.
type target struct {
	path string
	err  error
}

// listSources expands paths into files: directories are walked for the
// given extensions in sorted order, other paths are taken as they are.
func listSources(paths []string, extensions []string) []target {
	var out []target
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			out = append(out, target{path: cleanPath(p), err: err})
			continue
		}
		var found []string
		walkErr := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && slices.Contains(extensions, filepath.Ext(path)) {
				found = append(found, path)
			}
			return nil
		})
		// Сортируем для детерминированного порядка
		slices.Sort(found)
		for _, f := range found {
			out = append(out, target{path: cleanPath(f)})
		}
		if walkErr != nil {
			out = append(out, target{path: cleanPath(p), err: walkErr})
		}
	}
	return out
}

// cleanPath matches the form FileSet stores, so progress events and
// reports name files the same way.
func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// CheckPaths verifies every file named by paths. Files are loaded
// sequentially and checked in parallel, each with its own session.
// The returned error is non-nil only when ctx is cancelled.
func CheckPaths(ctx context.Context, paths []string, opts Options) (*Batch, error) {
	targets := listSources(paths, opts.extensions())
	b := newBatch(opts)
	span, ctx := beginRun(ctx, b.RunID, len(targets))

	for _, t := range targets {
		pipeline.Emit(opts.Progress, pipeline.Event{File: t.path, Stage: pipeline.StageRead, Status: pipeline.StatusQueued})
	}

	// FileSet не потокобезопасен: загрузка только последовательная
	reports := make([]Report, len(targets))
	ids := make([]source.FileID, len(targets))
	reads := make([]time.Duration, len(targets))
	loaded := make([]bool, len(targets))
	for i, t := range targets {
		if t.err != nil {
			reports[i] = unreadable(b.FileSet, t.path, t.err, opts)
			continue
		}
		pipeline.Emit(opts.Progress, pipeline.Event{File: t.path, Stage: pipeline.StageRead, Status: pipeline.StatusWorking})
		start := time.Now()
		id, err := b.FileSet.Load(t.path)
		if err != nil {
			reports[i] = unreadable(b.FileSet, t.path, err, opts)
			continue
		}
		ids[i], reads[i], loaded[i] = id, time.Since(start), true
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(targets))))
	for i := range targets {
		if !loaded[i] {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// индексы уникальны для каждой горутины, мьютекс не нужен
			reports[i] = checkLoaded(gctx, b.FileSet, ids[i], reads[i], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End(err.Error())
		return nil, err
	}

	for _, r := range reports {
		b.add(r)
	}
	endRun(span, b)
	return b, nil
}

// Sources lists the files CheckPaths would visit, in the same order.
func Sources(paths []string, extensions []string) []string {
	if len(extensions) == 0 {
		extensions = defaultExtensions
	}
	targets := listSources(paths, extensions)
	out := make([]string, len(targets))
	for i, t := range targets {
		out[i] = t.path
	}
	return out
}
