package civitai

import (
	"strconv"
	"strings"

	"civitaid/pkg/types"
)

// FilesOfVersion indexes the files of v by file id.
func FilesOfVersion(v *types.VersionRecord) map[int64]types.FileRecord {
	out := make(map[int64]types.FileRecord)
	if v == nil {
		return out
	}
	for _, f := range v.Files {
		out[f.ID] = f
	}
	return out
}

// PrimaryFileOfVersion returns the first file flagged primary, or nil.
func PrimaryFileOfVersion(v *types.VersionRecord) *types.FileRecord {
	if v == nil {
		return nil
	}
	for i := range v.Files {
		if v.Files[i].Primary {
			f := v.Files[i]
			return &f
		}
	}
	return nil
}

// ImagesOfVersion returns the images of v in listing order.
func ImagesOfVersion(v *types.VersionRecord) []types.ImageRecord {
	if v == nil {
		return nil
	}
	return v.Images
}

// TriggerWordsOfVersion joins the trained words with ", ". ok is false when
// the result would be blank.
func TriggerWordsOfVersion(v *types.VersionRecord) (words string, ok bool) {
	if v == nil {
		return "", false
	}
	words = strings.Join(v.TrainedWords, ", ")
	if strings.TrimSpace(words) == "" {
		return "", false
	}
	return words, true
}

// ChangeImageWidth rewrites the "width=N" path segment of a Civitai image
// URL so the CDN serves a resized variant. Other URLs are returned as is.
func ChangeImageWidth(imageURL string, width int) string {
	if width <= 0 {
		return imageURL
	}
	parts := strings.Split(imageURL, "/")
	for i, p := range parts {
		if strings.HasPrefix(p, "width=") {
			parts[i] = "width=" + strconv.Itoa(width)
			return strings.Join(parts, "/")
		}
	}
	return imageURL
}

// PreviewImageURL picks the preview of v: its first image, width adjusted.
// ok is false when v has no usable image.
func PreviewImageURL(v *types.VersionRecord) (string, bool) {
	if v == nil || len(v.Images) == 0 {
		return "", false
	}
	img := v.Images[0]
	if img.URL == "" {
		return "", false
	}
	return ChangeImageWidth(img.URL, img.Width), true
}
