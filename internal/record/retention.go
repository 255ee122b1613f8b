package record

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
)

type recording struct {
	path    string
	modTime int64
}

// Prune removes the oldest recordings in dir so that at most keep remain,
// returning the removed paths. Only files named like GenerateFilename output
// are considered. keep <= 0 disables pruning.
func Prune(dir string, keep int) ([]string, error) {
	if keep <= 0 {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read recordings directory %s: %w", dir, err)
	}

	recordings := lo.FilterMap(entries, func(e os.DirEntry, _ int) (recording, bool) {
		if e.IsDir() || !isRecordingName(e.Name()) {
			return recording{}, false
		}
		info, err := e.Info()
		if err != nil {
			return recording{}, false
		}
		return recording{path: filepath.Join(dir, e.Name()), modTime: info.ModTime().UnixNano()}, true
	})

	// Newest first; names embed the timestamp so they break mtime ties.
	sort.Slice(recordings, func(i, j int) bool {
		if recordings[i].modTime != recordings[j].modTime {
			return recordings[i].modTime > recordings[j].modTime
		}
		return recordings[i].path > recordings[j].path
	})

	var removed []string
	for _, r := range lo.Drop(recordings, keep) {
		if err := os.Remove(r.path); err != nil {
			return removed, err
		}
		removed = append(removed, r.path)
	}
	return removed, nil
}

func isRecordingName(name string) bool {
	return strings.HasPrefix(name, "recording-") && strings.ToLower(filepath.Ext(name)) == ".wav"
}
