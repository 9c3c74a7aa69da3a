package search

import (
	"path/filepath"

	"github.com/jpl-au/tgrep/internal/model"
)

// assembler owns the arena under construction. It runs on a single
// goroutine (assemble's caller never calls its methods concurrently), so
// the path-to-index map needs no locking even though it is fed by many
// concurrent workers over channels.
type assembler struct {
	root        string
	arena       model.Arena
	pathToIndex map[string]int
}

// ensureDir returns the arena index for path, creating it - and any
// missing ancestors up to root - on demand. This is the "tree assembly"
// step of spec.md section 4.1: results arrive in arbitrary order from
// concurrently-running workers, so a directory's entry may need to be
// created the first time any of its descendants reports in, well before
// its own worker has finished listing it.
func (a *assembler) ensureDir(path string) int {
	if idx, ok := a.pathToIndex[path]; ok {
		return idx
	}
	if path == a.root {
		idx := len(a.arena)
		a.arena = append(a.arena, model.Directory{Path: path})
		a.pathToIndex[path] = idx
		return idx
	}
	parentIdx := a.ensureDir(filepath.Dir(path))
	idx := len(a.arena)
	a.arena = append(a.arena, model.Directory{Path: path})
	a.pathToIndex[path] = idx
	a.arena[parentIdx].Children = append(a.arena[parentIdx].Children, idx)
	return idx
}

func (a *assembler) addFile(r fileResult) {
	idx := a.ensureDir(r.parent)
	f := model.File{Path: r.path, Lines: r.lines}
	if r.isLink {
		f.LinkTarget = r.linkTarget
	}
	a.arena[idx].Files = append(a.arena[idx].Files, f)
}

func (a *assembler) addDir(d dirSeen) {
	idx := a.ensureDir(d.path)
	if d.isLink {
		a.arena[idx].LinkTarget = d.linkTarget
	}
}

// assemble drains results and seenDirs until done closes, then performs a
// final non-blocking drain to pick up anything buffered before the last
// worker returned, and returns the finished arena.
func assemble(root string, results <-chan fileResult, seenDirs <-chan dirSeen, done <-chan struct{}) model.Arena {
	a := &assembler{root: root, pathToIndex: make(map[string]int)}
	a.ensureDir(root)

	for {
		select {
		case r := <-results:
			a.addFile(r)
		case d := <-seenDirs:
			a.addDir(d)
		case <-done:
			for {
				select {
				case r := <-results:
					a.addFile(r)
				case d := <-seenDirs:
					a.addDir(d)
				default:
					return a.arena
				}
			}
		}
	}
}
