// Package search implements the parallel filesystem walk and in-process
// line matching described in spec.md sections 4.1 and 5: a pool of
// worker goroutines drains a dynamically-growing queue of directory
// tasks, each worker reading one directory, recursing into
// subdirectories via the same queue, and running matched files through
// the shared matcher before handing completed model.File values to a
// single assembler goroutine that builds the result tree.
package search

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/jpl-au/tgrep/internal/matcher"
	"github.com/jpl-au/tgrep/internal/model"
	"github.com/jpl-au/tgrep/internal/options"
	"github.com/jpl-au/tgrep/internal/path"
)

// dirTask describes one directory a worker must list and process. It
// carries its own ignoreChain rather than referencing a shared mutable
// stack, so sibling branches of the walk never contend over, or
// observe, each other's ignore state - the adaptation the teacher's
// sequential gitignoreStack reference (mjkoo-boris) did not need, but a
// concurrent walker does.
type dirTask struct {
	path    string
	depth   int
	ignores ignoreChain
}

// fileResult is one matched (or, in FilesOnly mode, merely visited) file,
// produced by a worker and consumed by the assembler goroutine.
type fileResult struct {
	path       string // absolute
	parent     string // absolute path of the containing directory
	isLink     bool
	linkTarget string
	lines      []model.Line
	scanned    int // lines scanned; the assembler drops it, and model.Totals.Lines counts retained lines instead
}

// dirSeen lets the assembler record empty directories (for FilesOnly and
// Overview accounting) even when no file beneath them matched, and
// records followed directory symlinks as leaves.
type dirSeen struct {
	path       string // absolute
	parent     string // absolute path of the containing directory; "" for the root
	isLink     bool
	linkTarget string
}

// Run walks opts.Root, matches file contents against m, and returns the
// resulting tree per spec.md section 3's Matches/Arena model, together
// with aggregate Totals. A single root file (as opposed to a directory)
// is handled by scanning it directly and wrapping the result in a
// Matches{File: ...} value, per spec.md section 4.1's single-file-root
// case.
func Run(opts options.Options, m *matcher.Matcher) (model.Matches, model.Totals, error) {
	info, err := os.Lstat(opts.Root)
	if err != nil {
		return model.Matches{}, model.Totals{}, err
	}

	if !info.IsDir() {
		lines, _, err := scanFile(opts.Root, m, opts)
		if err != nil {
			return model.Matches{}, model.Totals{}, err
		}
		if len(lines) == 0 && !opts.FilesOnly {
			return model.Matches{}, model.Totals{}, nil
		}
		f := &model.File{Path: opts.Root, Lines: lines}
		matches := model.Matches{File: f}
		return matches, model.Summarise(matches), nil
	}

	results := make(chan fileResult, 64)
	seenDirs := make(chan dirSeen, 64)
	errs := make(chan error, 1)

	root, err := path.Canonicalize(opts.Root)
	if err != nil {
		root = opts.Root
	}

	queue := newDirQueue()
	rootIgnores := ignoreChain{}.extend(globOverrideLevel(root, opts.Globs))
	rootIgnores = rootIgnores.extend(loadIgnoreLevel(root, opts.NoIgnore))
	queue.push(dirTask{path: root, depth: 0, ignores: rootIgnores})

	var wg sync.WaitGroup
	threads := opts.ResolvedThreads()
	wg.Add(threads)
	for i := 0; i < threads; i++ {
		go func() {
			defer wg.Done()
			worker(opts, m, queue, results, seenDirs, errs)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	arena := assemble(root, results, seenDirs, done)
	select {
	case e := <-errs:
		return model.Matches{}, model.Totals{}, e
	default:
	}

	matches := model.Matches{Dirs: arena}
	return matches, model.Summarise(matches), nil
}

// worker repeatedly pops a dirTask, lists it, and either recurses
// (pushing subdirectory tasks before calling done, so the queue's
// pending counter never transiently reaches zero while work remains) or
// scans a file and emits its fileResult.
func worker(opts options.Options, m *matcher.Matcher, queue *dirQueue, results chan<- fileResult, seenDirs chan<- dirSeen, errs chan<- error) {
	for {
		task, ok := queue.pop()
		if !ok {
			return
		}
		processDir(opts, m, task, queue, results, seenDirs, errs)
		queue.done()
	}
}

func processDir(opts options.Options, m *matcher.Matcher, task dirTask, queue *dirQueue, results chan<- fileResult, seenDirs chan<- dirSeen, errs chan<- error) {
	entries, err := os.ReadDir(task.path)
	if err != nil {
		select {
		case errs <- err:
		default:
		}
		return
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	ignores := task.ignores.extend(loadIgnoreLevel(task.path, opts.NoIgnore))

	for _, e := range entries {
		name := e.Name()
		if !opts.Hidden && strings.HasPrefix(name, ".") {
			continue
		}
		childPath := filepath.Join(task.path, name)

		info, err := os.Lstat(childPath)
		if err != nil {
			continue
		}
		isLink := info.Mode()&os.ModeSymlink != 0

		var isDir bool
		linkTarget := ""
		if isLink {
			if !opts.Links {
				continue
			}
			target, err := filepath.EvalSymlinks(childPath)
			if err != nil {
				continue
			}
			linkTarget = FoldHome(target)
			targetInfo, err := os.Stat(childPath)
			if err != nil {
				continue
			}
			isDir = targetInfo.IsDir()
		} else {
			isDir = info.IsDir()
		}

		if ignores.isIgnored(childPath, isDir) {
			continue
		}

		if isDir {
			if opts.MaxDepth > 0 && task.depth+1 >= opts.MaxDepth {
				continue
			}
			if isLink {
				// A followed directory symlink is recorded as a leaf with
				// its target noted, not recursed into - spec.md section
				// 4.1 treats link targets as informational, not a second
				// walk root.
				seenDirs <- dirSeen{path: childPath, parent: task.path, isLink: true, linkTarget: linkTarget}
				continue
			}
			queue.push(dirTask{path: childPath, depth: task.depth + 1, ignores: ignores})
			continue
		}

		lines, scanned, err := scanFile(childPath, m, opts)
		if err != nil {
			if errors.Is(err, os.ErrPermission) {
				continue
			}
			select {
			case errs <- err:
			default:
			}
			continue
		}
		if len(lines) == 0 && !opts.FilesOnly {
			continue
		}
		results <- fileResult{path: childPath, parent: task.path, isLink: isLink, linkTarget: linkTarget, lines: lines, scanned: scanned}
	}

	seenDirs <- dirSeen{path: task.path, parent: parentOf(task.path)}
}

func parentOf(path string) string {
	p := filepath.Dir(path)
	if p == path {
		return ""
	}
	return p
}

// FoldHome rewrites an absolute path under the user's home directory to
// start with "~", for compact display of symlink targets (spec.md
// section 4.3's rendering of link targets).
func FoldHome(p string) string {
	return path.FoldHome(p)
}
