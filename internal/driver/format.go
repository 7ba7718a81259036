package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"beanfmt/internal/backup"
	"beanfmt/internal/diag"
	"beanfmt/internal/format"
	"beanfmt/internal/observ"
	"beanfmt/internal/source"
	"beanfmt/internal/trace"
)

// Extensions collected when a directory is given.
var Extensions = []string{".bean", ".beancount"}

// Options configures a formatting run.
type Options struct {
	Format         format.Options
	Check          bool // report only, never write
	Stdout         bool // return formatted content instead of writing
	Backup         bool
	BackupSuffix   string
	Jobs           int
	MaxDiagnostics int
	Cache          *Cache        // may be nil
	Progress       Sink          // may be nil
	Timer          *observ.Timer // may be nil
}

// FileResult captures the result of formatting a single file.
type FileResult struct {
	Path      string
	Changed   bool
	Formatted []byte // set with Options.Stdout
	Backup    string // backup path when one was written
	Cached    bool   // skipped thanks to the cache
	Err       error
	// Diagnostics and FileSet are set when formatting failed.
	Diagnostics *diag.Bag
	FileSet     *source.FileSet
}

// FormatPaths formats files, and directories recursively. Results are in
// input order. A failing file is left untouched and does not stop the
// others; the returned error is only for cancellation or an empty input.
func FormatPaths(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := CollectFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no ledger files found")
	}

	ctx, span := trace.Start(ctx, trace.ScopeRun, "format")
	defer span.End(fmt.Sprintf("%d files", len(files)))

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatOne(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatOne(ctx context.Context, path string, opts Options) FileResult {
	ctx, span := trace.Start(ctx, trace.ScopeFile, path)
	started := time.Now()
	result := FileResult{Path: path}
	finish := func(status Status, stage Stage) FileResult {
		if result.Err != nil {
			span.Fail(result.Err)
		} else {
			span.End(string(status))
		}
		emit(opts.Progress, Event{File: path, Stage: stage, Status: status, Err: result.Err, Elapsed: time.Since(started)})
		return result
	}

	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	info, err := os.Stat(path)
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", path, err)
		return finish(StatusError, StageRead)
	}
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", path, err)
		return finish(StatusError, StageRead)
	}

	key := CacheKey(content, opts.Format)
	if _, hit, _ := opts.Cache.Get(key); hit && !opts.Stdout {
		result.Cached = true
		trace.Point(ctx, trace.ScopeFile, path, "cache hit")
		return finish(StatusUnchanged, StageFormat)
	}

	emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusWorking})
	fileSet := source.NewFileSet()
	file := fileSet.Get(fileSet.AddNormalized(path, content, 0))
	out, bag := format.FormatFile(ctx, file, format.Pipeline{
		Options: opts.Format,
		Timer:   opts.Timer,
		MaxDiag: opts.MaxDiagnostics,
	})
	if out == nil {
		bag.Sort()
		result.Err = diag.FirstError(bag, fileSet)
		result.Diagnostics = bag
		result.FileSet = fileSet
		return finish(StatusError, StageFormat)
	}

	result.Changed = !bytes.Equal(content, out)
	if opts.Stdout {
		result.Formatted = out
	}
	if !result.Changed {
		putCache(opts.Cache, key, path, len(out))
		return finish(StatusUnchanged, StageFormat)
	}
	if opts.Stdout || opts.Check {
		return finish(StatusDone, StageFormat)
	}

	emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
	if opts.Backup {
		done := opts.Timer.Track("backup")
		result.Backup, err = backup.Create(path, opts.BackupSuffix)
		done()
		if err != nil {
			result.Err = err
			return finish(StatusError, StageWrite)
		}
		trace.Point(ctx, trace.ScopeFile, path, "backup "+result.Backup)
	}
	if err := writeAtomic(path, out, info.Mode().Perm()); err != nil {
		result.Err = fmt.Errorf("%s: %w", path, err)
		return finish(StatusError, StageWrite)
	}
	putCache(opts.Cache, CacheKey(out, opts.Format), path, len(out))
	return finish(StatusDone, StageWrite)
}

func putCache(c *Cache, key Digest, path string, size int) {
	// кэш только ускоряет, ошибки записи не влияют на результат
	_ = c.Put(key, CacheEntry{Path: path, Size: size})
}

// writeAtomic replaces path through a temporary file in the same directory,
// so a crash never leaves a half-written ledger behind.
func writeAtomic(path string, content []byte, perm fs.FileMode) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	cleanup := func(err error) error {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if _, err := f.Write(content); err != nil {
		return cleanup(err)
	}
	if err := f.Chmod(perm); err != nil {
		return cleanup(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, path)
}

// FormatStdin formats r into w. Nothing is written to w when formatting
// fails; the failure is reported in the result.
func FormatStdin(ctx context.Context, r io.Reader, w io.Writer, opts Options) FileResult {
	result := FileResult{Path: "<stdin>"}
	content, err := io.ReadAll(r)
	if err != nil {
		result.Err = fmt.Errorf("read stdin: %w", err)
		return result
	}
	fileSet := source.NewFileSet()
	file := fileSet.Get(fileSet.AddVirtual(result.Path, content))
	out, bag := format.FormatFile(ctx, file, format.Pipeline{
		Options: opts.Format,
		Timer:   opts.Timer,
		MaxDiag: opts.MaxDiagnostics,
	})
	if out == nil {
		bag.Sort()
		result.Err = diag.FirstError(bag, fileSet)
		result.Diagnostics = bag
		result.FileSet = fileSet
		return result
	}
	result.Changed = !bytes.Equal(content, out)
	if opts.Check {
		return result
	}
	if _, err := w.Write(out); err != nil {
		result.Err = fmt.Errorf("write stdout: %w", err)
	}
	return result
}

// CollectFiles expands directories into the ledger files they contain,
// sorted, and drops duplicates. Explicit file arguments are kept whatever
// their extension.
func CollectFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if hasLedgerExt(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		for _, f := range found {
			addFile(f)
		}
	}
	return files, nil
}

func hasLedgerExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range Extensions {
		if ext == want {
			return true
		}
	}
	return false
}
