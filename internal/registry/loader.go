package registry

import (
	"fmt"
	"path/filepath"
	"sort"

	"civitaid/internal/civitai"
	"civitaid/internal/common/fsutil"
)

// Downloaded is one locally present model version, known by its sidecar.
type Downloaded struct {
	VersionID int64
	InfoPath  string
	// ModelPath is the model file the sidecar belongs to, when one was found.
	ModelPath string
}

// Index maps a model id to its downloaded versions, ordered by sidecar path.
type Index map[int64][]Downloaded

// LoadDownloaded walks roots for version sidecars ("<stem><suffix><ext>") and
// indexes them by model id. Sidecars that are not version records are
// skipped. modelExts, when given, are tried to locate the model file beside
// each sidecar.
func LoadDownloaded(roots []string, suffix, ext string, modelExts []string) (Index, error) {
	if suffix+ext == "" {
		return nil, fmt.Errorf("empty sidecar name")
	}
	paths, err := fsutil.SearchFiles(roots, []string{suffix + ext})
	if err != nil {
		return nil, err
	}
	idx := Index{}
	for _, p := range paths {
		v, err := civitai.ReadVersionInfo(p)
		if err != nil || v.ID == 0 || v.ModelID == 0 {
			continue
		}
		idx[v.ModelID] = append(idx[v.ModelID], Downloaded{
			VersionID: v.ID,
			InfoPath:  p,
			ModelPath: modelBeside(p, suffix+ext, modelExts),
		})
	}
	return idx, nil
}

func modelBeside(infoPath, infoName string, exts []string) string {
	name := filepath.Base(infoPath)
	stem := name[:len(name)-len(infoName)]
	dir := filepath.Dir(infoPath)
	for _, e := range exts {
		p := filepath.Join(dir, stem+e)
		if fsutil.IsFile(p) {
			return p
		}
	}
	return ""
}

// Has reports whether any version of modelID is downloaded.
func (x Index) Has(modelID int64) bool { return len(x[modelID]) > 0 }

// HasVersion reports whether versionID of modelID is downloaded.
func (x Index) HasVersion(modelID, versionID int64) bool {
	for _, d := range x[modelID] {
		if d.VersionID == versionID {
			return true
		}
	}
	return false
}

// ModelIDs returns the indexed model ids in ascending order.
func (x Index) ModelIDs() []int64 {
	ids := make([]int64, 0, len(x))
	for id := range x {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
