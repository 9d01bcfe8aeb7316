package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"civitaid/internal/actions"
	"civitaid/internal/civitai"
	"civitaid/internal/registry"
	"civitaid/internal/scan"
	"civitaid/internal/shortcut"
	"civitaid/pkg/types"
)

type teapotErr struct{}

func (teapotErr) Error() string   { return "teapot" }
func (teapotErr) StatusCode() int { return http.StatusTeapot }

type blockingSource struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSource) ModelByID(_ context.Context, id int64) (*types.ModelRecord, error) {
	select {
	case b.started <- struct{}{}:
	default:
	}
	<-b.release
	return &types.ModelRecord{ID: id, Name: "m"}, nil
}

// shortcutsBusy returns the error of an UpdateAll started while
// ScanDownloaded is still fetching.
func shortcutsBusy(t *testing.T) error {
	t.Helper()
	src := &blockingSource{started: make(chan struct{}, 1), release: make(chan struct{})}
	store, err := shortcut.Open(filepath.Join(t.TempDir(), shortcut.FileName), src)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = store.ScanDownloaded(context.Background(), registry.Index{1: {{VersionID: 11}}})
	}()
	<-src.started
	_, err = store.UpdateAll(context.Background())
	close(src.release)
	<-done
	return err
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"http error", teapotErr{}, http.StatusTeapot},
		{"busy", scan.ErrBusy("scan"), http.StatusConflict},
		{"wrapped busy", fmt.Errorf("run: %w", scan.ErrBusy("fix")), http.StatusConflict},
		{"shortcuts busy", shortcutsBusy(t), http.StatusConflict},
		{"bad input", actions.ErrBadInput("name is required"), http.StatusBadRequest},
		{"no trigger words", civitai.ErrNoTriggerWords, http.StatusNotFound},
		{"no record", civitai.ErrNoRecord, http.StatusNotFound},
		{"not found", &civitai.Error{Kind: civitai.KindNotFound, Status: 404}, http.StatusNotFound},
		{"rejected locally", &civitai.Error{Kind: civitai.KindRejected}, http.StatusBadRequest},
		{"rejected upstream", &civitai.Error{Kind: civitai.KindRejected, Status: 403}, http.StatusBadGateway},
		{"transient", &civitai.Error{Kind: civitai.KindTransient}, http.StatusBadGateway},
		{"malformed", &civitai.Error{Kind: civitai.KindMalformed, Status: 200}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Fatalf("%s: got %d want %d", tc.name, got, tc.want)
		}
	}
}

func TestWriteJSONError_Shape(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSONError(w, http.StatusNotFound, "version not found")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	if got := w.Body.String(); got != "{\"error\":\"version not found\",\"code\":404}\n" {
		t.Fatalf("body=%q", got)
	}
}
