package actions

import (
	"context"
	"io"
	"sync"

	"civitaid/internal/civitai"
	"civitaid/pkg/types"
)

// clientRef hands out the current client; settings changes swap it.
type clientRef struct {
	mu sync.RWMutex
	c  *civitai.Client
}

func (r *clientRef) get() *civitai.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.c
}

func (r *clientRef) set(c *civitai.Client) {
	r.mu.Lock()
	r.c = c
	r.mu.Unlock()
}

func (r *clientRef) VersionByHash(ctx context.Context, hash string) (*types.VersionRecord, error) {
	return r.get().VersionByHash(ctx, hash)
}

func (r *clientRef) DownloadImage(ctx context.Context, url string, w io.Writer) (int64, error) {
	return r.get().DownloadImage(ctx, url, w)
}

func (r *clientRef) ModelByID(ctx context.Context, id int64) (*types.ModelRecord, error) {
	return r.get().ModelByID(ctx, id)
}
