// Package enumerate walks the paths handed to one analysis invocation and
// yields the raw bytecode units they contain, in a stable order, tolerating
// bad paths by skipping them with a warning rather than failing the whole
// run.
//
// Each path is discovered and read to completion — including closing any
// archive handle it opened — before the next path is even looked at.
// Within one path, reading its discovered units is the expensive part, so
// it fans out over a bounded errgroup.Group while still landing each result
// at its pre-assigned slot, so concurrent and sequential runs produce
// byte-identical output; only that per-path read phase is parallel, never
// the handling of two different input paths.
package enumerate

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Unit is one bytecode unit paired with a monotonically increasing sequence
// number that reflects discovery order across all supplied paths. Later
// stages use Seq to make concurrent processing produce the same first-wins
// collision result as sequential processing would.
type Unit struct {
	Origin string
	Data   []byte
	Seq    int
}

const classSuffix = ".class"

var archiveSuffixes = []string{".jar", ".war", ".zip"}

func isArchive(name string) bool {
	lower := strings.ToLower(name)
	for _, suf := range archiveSuffixes {
		if strings.HasSuffix(lower, suf) {
			return true
		}
	}
	return false
}

func isClassFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), classSuffix)
}

// readTask produces the bytes for one already-discovered unit. A read
// failure never aborts the group — enumeratePath logs it at WARN with the
// task's origin and simply drops that one unit.
type readTask struct {
	origin string
	read   func() ([]byte, error)
}

// Enumerate walks paths in the order given. Each path is fully discovered
// and read — archive handles opened and closed — before the next path is
// touched; unreadable paths, missing files, and malformed archives are
// reported via logger at WARN and otherwise skipped rather than aborting
// the whole invocation.
func Enumerate(ctx context.Context, logger *slog.Logger, paths []string) ([]Unit, error) {
	var units []Unit
	for _, p := range paths {
		pathUnits, err := enumeratePath(ctx, logger, p)
		if err != nil {
			return nil, err
		}
		units = append(units, pathUnits...)
	}
	for i := range units {
		units[i].Seq = i
	}
	return units, nil
}

// enumeratePath discovers one input path and reads every unit it contains,
// closing any archive handle it opened before returning — so by the time
// Enumerate moves on to the next path, this one's resources are released.
func enumeratePath(ctx context.Context, logger *slog.Logger, path string) ([]Unit, error) {
	tasks, closer, err := discoverPath(path)
	if closer != nil {
		defer closer.Close()
	}
	if err != nil {
		logger.Warn("skipping input path", "path", path, "error", err)
		return nil, nil
	}
	if len(tasks) == 0 {
		return nil, nil
	}

	results := make([]*Unit, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency())

	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := t.read()
			if err != nil {
				logger.Warn("skipping unreadable unit", "origin", t.origin, "error", err)
				return nil
			}
			results[i] = &Unit{Origin: t.origin, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	units := make([]Unit, 0, len(results))
	for _, u := range results {
		if u != nil {
			units = append(units, *u)
		}
	}
	return units, nil
}

func readConcurrency() int {
	if n := runtime.GOMAXPROCS(0); n > 1 {
		return n
	}
	return 1
}

func discoverPath(path string) ([]readTask, io.Closer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}

	switch {
	case info.IsDir():
		tasks, err := discoverDir(path)
		return tasks, nil, err
	case isArchive(info.Name()):
		return discoverArchive(path)
	case isClassFile(info.Name()):
		path := path
		return []readTask{{origin: path, read: func() ([]byte, error) { return os.ReadFile(path) }}}, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported path kind: %s", path)
	}
}

func discoverDir(root string) ([]readTask, error) {
	var tasks []readTask
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isClassFile(d.Name()) {
			return nil
		}
		tasks = append(tasks, readTask{origin: p, read: func() ([]byte, error) { return os.ReadFile(p) }})
		return nil
	})
	return tasks, err
}

// onArchiveOpened/onArchiveClosed are test seams, nil in production: they
// let a white-box test observe exactly when an archive is opened and
// closed relative to the surrounding path loop, without adding any
// exported API surface.
var (
	onArchiveOpened func(path string)
	onArchiveClosed func(path string)
)

// archiveCloser wraps a *zip.ReadCloser so closing it also fires
// onArchiveClosed, letting tests observe the close happening before the
// next path's archive is opened.
type archiveCloser struct {
	*zip.ReadCloser
	path string
}

func (c archiveCloser) Close() error {
	err := c.ReadCloser.Close()
	if onArchiveClosed != nil {
		onArchiveClosed(c.path)
	}
	return err
}

// discoverArchive opens path as a ZIP-family container (the JAR and WAR
// formats are ZIP containers per the JDK spec) and returns one readTask per
// contained .class entry. The returned io.Closer must be closed once every
// task has run; zip.File.Open returns an independent reader per call so
// concurrent reads of distinct entries in the same archive are safe.
func discoverArchive(path string) ([]readTask, io.Closer, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	if onArchiveOpened != nil {
		onArchiveOpened(path)
	}

	var tasks []readTask
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isClassFile(f.Name) {
			continue
		}
		f := f
		origin := fmt.Sprintf("%s!%s", path, f.Name)
		tasks = append(tasks, readTask{origin: origin, read: func() ([]byte, error) { return readZipEntry(f) }})
	}
	return tasks, archiveCloser{ReadCloser: r, path: path}, nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
