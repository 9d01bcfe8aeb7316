package civitai

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"civitaid/pkg/types"
)

// nsfwNone is the label given to images Civitai did not classify.
const nsfwNone = "None"

type imagesPage struct {
	Items []types.ImageRecord `json:"items"`
}

// ImagesForModel searches the images endpoint. versionID and username are
// optional filters (0 / ""); the configured per-version cap becomes the limit
// parameter. Every image is annotated with its NSFW label. On failure the
// slice is empty and err says why.
func (c *Client) ImagesForModel(ctx context.Context, modelID, versionID int64, username string) ([]types.ImageRecord, error) {
	ref := strconv.FormatInt(modelID, 10)
	out := []types.ImageRecord{}
	if modelID <= 0 {
		return out, invalidRef(endpointImages, ref)
	}
	q := url.Values{}
	q.Set("modelId", ref)
	if versionID > 0 {
		q.Set("modelVersionId", strconv.FormatInt(versionID, 10))
	}
	if username != "" {
		q.Set("username", username)
	}
	if c.cfg.MaxImagesPerVersion > 0 {
		q.Set("limit", strconv.Itoa(c.cfg.MaxImagesPerVersion))
	}
	var page imagesPage
	if err := c.getJSON(ctx, endpointImages, ref, c.endpoint("/api/v1/images", q), &page); err != nil {
		return out, err
	}
	for _, img := range page.Items {
		img.NSFW = string(img.NSFWLevel)
		if img.NSFW == "" {
			img.NSFW = nsfwNone
		}
		out = append(out, img)
	}
	return out, nil
}

// DownloadImage streams the image at imageURL into w.
func (c *Client) DownloadImage(ctx context.Context, imageURL string, w io.Writer) (int64, error) {
	start := time.Now()
	n, err := c.downloadImage(ctx, imageURL, w)
	requestDuration.WithLabelValues(endpointImage).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(endpointImage, KindOf(err).String()).Inc()
		c.log.Debug().Str("url", imageURL).Str("kind", KindOf(err).String()).Err(err).Msg("image download failed")
		return n, err
	}
	requestsTotal.WithLabelValues(endpointImage, "ok").Inc()
	return n, nil
}

func (c *Client) downloadImage(ctx context.Context, imageURL string, w io.Writer) (int64, error) {
	fail := func(kind Kind, status int, err error) error {
		return &Error{Kind: kind, Endpoint: endpointImage, Ref: imageURL, Status: status, Err: err}
	}
	req, err := c.newRequest(ctx, imageURL)
	if err != nil {
		return 0, fail(KindRejected, 0, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fail(KindTransient, 0, err)
	}
	defer resp.Body.Close()
	if kind := statusKind(resp.StatusCode); kind != 0 {
		return 0, fail(kind, resp.StatusCode, nil)
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fail(KindTransient, resp.StatusCode, fmt.Errorf("copy body: %w", err))
	}
	return n, nil
}
