package search

import (
	"encoding/hex"
	"sort"

	"github.com/jpl-au/tgrep/internal/model"
	"golang.org/x/crypto/blake2b"
)

// ComputeDigests hashes the matched-line content of every File in m with
// BLAKE2b-256, storing each result via File.SetDigest (SPEC_FULL.md
// section 3's content-hashing expansion). It returns a single combined
// hex digest over all per-file digests, sorted by path for determinism,
// suitable for the history log (section 9) and the MCP tool result
// (section 10).
//
// Grounded on the teacher's internal/log project-hash function
// (log_storage.go), which hashes a stable identifier with blake2b; here
// the identifier is a result set's matched content rather than a
// filesystem path.
func ComputeDigests(m model.Matches) string {
	type digested struct {
		path   string
		digest []byte
	}
	var all []digested

	digestFile := func(f *model.File) {
		h, _ := blake2b.New256(nil)
		for _, line := range f.Lines {
			h.Write([]byte(line.Content))
			h.Write([]byte{'\n'})
		}
		sum := h.Sum(nil)
		f.SetDigest(sum)
		all = append(all, digested{path: f.Path, digest: sum})
	}

	if m.File != nil {
		digestFile(m.File)
	}
	for d := range m.Dirs {
		dir := &m.Dirs[d]
		for i := range dir.Files {
			digestFile(&dir.Files[i])
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].path < all[j].path })

	combined, _ := blake2b.New256(nil)
	for _, d := range all {
		combined.Write(d.digest)
	}
	return hex.EncodeToString(combined.Sum(nil))
}
