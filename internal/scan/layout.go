package scan

import (
	"fmt"
	"path/filepath"

	"civitaid/internal/civitai"
	"civitaid/internal/common/fsutil"
	"civitaid/pkg/types"
)

// Layout names the sidecars of a model file.
type Layout struct {
	InfoSuffix    string
	InfoExt       string
	PreviewSuffix string
	PreviewExt    string
}

// InfoName is the trailing part of every info sidecar name, e.g. ".info.json".
func (l Layout) InfoName() string { return l.InfoSuffix + l.InfoExt }

// InfoFor returns the info sidecar path of a model file.
func (l Layout) InfoFor(modelPath string) string {
	return l.InfoIn(filepath.Dir(modelPath), modelPath)
}

// InfoIn returns the info sidecar path of modelPath as if it lived in dir.
func (l Layout) InfoIn(dir, modelPath string) string {
	stem, _ := fsutil.SplitName(modelPath)
	return filepath.Join(dir, stem+l.InfoSuffix+l.InfoExt)
}

// PreviewFor returns the preview image path of a model file.
func (l Layout) PreviewFor(modelPath string) string {
	return l.PreviewIn(filepath.Dir(modelPath), modelPath)
}

// PreviewIn returns the preview path of modelPath as if it lived in dir.
func (l Layout) PreviewIn(dir, modelPath string) string {
	stem, _ := fsutil.SplitName(modelPath)
	return filepath.Join(dir, stem+l.PreviewSuffix+l.PreviewExt)
}

// VersionFolderName is "<model>-<version>-<version id>".
func VersionFolderName(modelName, versionName string, versionID int64) string {
	return fmt.Sprintf("%s-%s-%d", modelName, versionName, versionID)
}

// modelName falls back to a generated name when the record carries none.
func modelName(v *types.VersionRecord) string {
	if v.Model.Name != "" {
		return v.Model.Name
	}
	return fmt.Sprintf("model-%d", v.ModelID)
}

// CanonicalBaseName is the name a model file and its sidecars should carry:
// the primary file name without extension, else the version folder name.
func CanonicalBaseName(v *types.VersionRecord) string {
	if pf := civitai.PrimaryFileOfVersion(v); pf != nil && pf.Name != "" {
		stem, _ := fsutil.SplitName(pf.Name)
		if stem != "" {
			return fsutil.ReplaceFilename(stem)
		}
	}
	return fsutil.ReplaceFilename(VersionFolderName(modelName(v), v.Name, v.ID))
}
