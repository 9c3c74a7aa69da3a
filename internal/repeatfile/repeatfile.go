// Package repeatfile reads and writes the binary repeat-file spec.md
// section 8 describes: a sequence of length-prefixed records, one per
// argument of the most recent invocation, so that --repeat can replay
// it without the shell's own history.
//
// The on-disk format has no teacher analogue (internal/store persists
// to SQLite, not flat files), so the record layout follows spec.md
// directly: each record is a little-endian uint32 byte count followed
// by that many raw bytes, one record per argument, OS-native encoding
// (UTF-8 on POSIX). Writes go through a temp-file-then-rename sequence
// in the same directory, the standard Go idiom for atomic replace,
// since no package in the corpus performs an equivalent flat-file swap.
package repeatfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Read parses path's contents into the ordered argument list it encodes.
// An empty or missing file yields (nil, nil): there is nothing to repeat.
func Read(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("repeatfile: read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses the binary record stream into its argument list.
func Decode(data []byte) ([]string, error) {
	var args []string
	r := bytes.NewReader(data)
	for {
		var n uint32
		err := binary.Read(r, binary.LittleEndian, &n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("repeatfile: read record length: %w", err)
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("repeatfile: read record body: %w", err)
		}
		args = append(args, string(buf))
	}
	return args, nil
}

// Encode serialises args into the binary record stream.
func Encode(args []string) []byte {
	var buf bytes.Buffer
	for _, a := range args {
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(a)))
		buf.Write(lenBuf[:])
		buf.WriteString(a)
	}
	return buf.Bytes()
}

// Write replaces path atomically with the encoded record stream for
// args, the rank-zero invocation's full argument list per spec.md
// section 8. Only the invocation that owns the repeat-file (no
// --repeat flag present) calls Write; replaying a past run must not
// overwrite the history it is replaying.
func Write(path string, args []string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tgrep-repeat-*")
	if err != nil {
		return fmt.Errorf("repeatfile: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(Encode(args)); err != nil {
		tmp.Close()
		return fmt.Errorf("repeatfile: write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("repeatfile: close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("repeatfile: replace %s: %w", path, err)
	}
	return nil
}
