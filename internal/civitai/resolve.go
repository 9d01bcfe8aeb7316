package civitai

import (
	"context"
	"fmt"
	"strconv"

	"civitaid/pkg/types"
)

// Endpoint labels used in errors, logs and metrics.
const (
	endpointModel   = "model"
	endpointVersion = "version"
	endpointHash    = "hash"
	endpointImages  = "images"
	endpointImage   = "image"
)

// hashPrefixLen is how much of a content hash the by-hash endpoint is given.
const hashPrefixLen = 12

func invalidRef(endpoint, ref string) error {
	return &Error{Kind: KindRejected, Endpoint: endpoint, Ref: ref, Err: fmt.Errorf("empty or invalid identifier")}
}

// ModelByID fetches a model with all its versions.
func (c *Client) ModelByID(ctx context.Context, id int64) (*types.ModelRecord, error) {
	ref := strconv.FormatInt(id, 10)
	if id <= 0 {
		return nil, invalidRef(endpointModel, ref)
	}
	var m types.ModelRecord
	u := c.endpoint("/api/v1/models/"+ref, nil)
	if err := c.getJSON(ctx, endpointModel, ref, u, &m); err != nil {
		return nil, err
	}
	if m.ID == 0 {
		return nil, c.missingID(endpointModel, ref)
	}
	return &m, nil
}

// VersionByID fetches a single version with its files and images.
func (c *Client) VersionByID(ctx context.Context, versionID int64) (*types.VersionRecord, error) {
	ref := strconv.FormatInt(versionID, 10)
	if versionID <= 0 {
		return nil, invalidRef(endpointVersion, ref)
	}
	var v types.VersionRecord
	u := c.endpoint("/api/v1/model-versions/"+ref, nil)
	if err := c.getJSON(ctx, endpointVersion, ref, u, &v); err != nil {
		return nil, err
	}
	if v.ID == 0 {
		return nil, c.missingID(endpointVersion, ref)
	}
	return &v, nil
}

// VersionByModelID returns the default (first listed) version of a model.
// The version embedded in the model response lacks detail, so it is fetched
// again by id.
func (c *Client) VersionByModelID(ctx context.Context, modelID int64) (*types.VersionRecord, error) {
	m, err := c.ModelByID(ctx, modelID)
	if err != nil {
		return nil, err
	}
	ref := strconv.FormatInt(modelID, 10)
	if len(m.ModelVersions) == 0 {
		return nil, &Error{Kind: KindNotFound, Endpoint: endpointModel, Ref: ref, Err: fmt.Errorf("model has no versions")}
	}
	first := m.ModelVersions[0]
	if first.ID == 0 {
		return nil, c.missingID(endpointModel, ref)
	}
	return c.VersionByID(ctx, first.ID)
}

// VersionByHash looks a version up by the content hash of one of its files.
// Only the first 12 characters of hash are sent.
func (c *Client) VersionByHash(ctx context.Context, hash string) (*types.VersionRecord, error) {
	if hash == "" {
		return nil, invalidRef(endpointHash, hash)
	}
	short := hash
	if len(short) > hashPrefixLen {
		short = short[:hashPrefixLen]
	}
	var v types.VersionRecord
	u := c.endpoint("/api/v1/model-versions/by-hash/"+short, nil)
	if err := c.getJSON(ctx, endpointHash, short, u, &v); err != nil {
		return nil, err
	}
	if v.ID == 0 {
		return nil, c.missingID(endpointHash, short)
	}
	return &v, nil
}

// VersionIDByName scans the versions of a model for an exact name match.
// The first match in listing order wins.
func (c *Client) VersionIDByName(ctx context.Context, modelID int64, name string) (int64, error) {
	m, err := c.ModelByID(ctx, modelID)
	if err != nil {
		return 0, err
	}
	for _, v := range m.ModelVersions {
		if v.Name == name {
			return v.ID, nil
		}
	}
	return 0, &Error{Kind: KindNotFound, Endpoint: endpointModel, Ref: strconv.FormatInt(modelID, 10), Err: fmt.Errorf("no version named %q", name)}
}

// ModelByVersionID resolves the parent model of a version.
func (c *Client) ModelByVersionID(ctx context.Context, versionID int64) (*types.ModelRecord, error) {
	v, err := c.VersionByID(ctx, versionID)
	if err != nil {
		return nil, err
	}
	return c.ModelByID(ctx, v.ModelID)
}

// FilesByVersionID fetches a version and indexes its files by id.
func (c *Client) FilesByVersionID(ctx context.Context, versionID int64) (map[int64]types.FileRecord, error) {
	v, err := c.VersionByID(ctx, versionID)
	if err != nil {
		return nil, err
	}
	return FilesOfVersion(v), nil
}

// PrimaryFileByVersionID fetches a version and returns its primary file.
func (c *Client) PrimaryFileByVersionID(ctx context.Context, versionID int64) (*types.FileRecord, error) {
	v, err := c.VersionByID(ctx, versionID)
	if err != nil {
		return nil, err
	}
	f := PrimaryFileOfVersion(v)
	if f == nil {
		return nil, &Error{Kind: KindNotFound, Endpoint: endpointVersion, Ref: strconv.FormatInt(versionID, 10), Err: fmt.Errorf("no primary file")}
	}
	return f, nil
}

// ImagesByVersionID fetches a version and returns its images.
func (c *Client) ImagesByVersionID(ctx context.Context, versionID int64) ([]types.ImageRecord, error) {
	v, err := c.VersionByID(ctx, versionID)
	if err != nil {
		return nil, err
	}
	return ImagesOfVersion(v), nil
}

// TriggerWordsByVersionID fetches a version and joins its trained words.
func (c *Client) TriggerWordsByVersionID(ctx context.Context, versionID int64) (string, error) {
	v, err := c.VersionByID(ctx, versionID)
	if err != nil {
		return "", err
	}
	words, ok := TriggerWordsOfVersion(v)
	if !ok {
		return "", ErrNoTriggerWords
	}
	return words, nil
}

func (c *Client) missingID(endpoint, ref string) error {
	err := &Error{Kind: KindMalformed, Endpoint: endpoint, Ref: ref, Err: fmt.Errorf("response has no id")}
	c.log.Debug().Str("endpoint", endpoint).Str("ref", ref).Str("kind", err.Kind.String()).Msg("civitai lookup failed")
	return err
}
