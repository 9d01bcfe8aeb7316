package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"civitaid/internal/config"
	"civitaid/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ScanModels(ctx context.Context) ([]string, error)
	CreateModelsInformation(ctx context.Context, req types.CreateInfoRequest) ([]string, error)
	FixFilenames(ctx context.Context) (int, error)

	ScanToShortcut(ctx context.Context) (types.ShortcutBatchResponse, error)
	UpdateAllShortcuts(ctx context.Context) (types.ShortcutBatchResponse, error)
	Shortcuts() []types.Shortcut
	AddShortcut(ctx context.Context, modelID int64) error
	RemoveShortcut(modelID int64) (bool, error)

	Settings() config.Config
	SaveSettings(cfg config.Config) error
	CleanGallery() error

	Model(ctx context.Context, id int64) (*types.ModelRecord, error)
	LatestVersion(ctx context.Context, modelID int64) (*types.VersionRecord, error)
	VersionIDByName(ctx context.Context, modelID int64, name string) (int64, error)
	Version(ctx context.Context, versionID int64) (*types.VersionRecord, error)
	VersionByHash(ctx context.Context, hash string) (*types.VersionRecord, error)
	Files(ctx context.Context, versionID int64) (map[int64]types.FileRecord, error)
	PrimaryFile(ctx context.Context, versionID int64) (*types.FileRecord, error)
	VersionImages(ctx context.Context, versionID int64) ([]types.ImageRecord, error)
	TriggerWords(ctx context.Context, versionID int64) (string, error)
	SearchImages(ctx context.Context, modelID, versionID int64, username string) ([]types.ImageRecord, error)

	Events() (<-chan types.Event, func())
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(RequestLogger)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	if corsOpts != nil {
		r.Use(cors.Handler(*corsOpts))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	h := &handlers{svc: svc}

	r.Route("/api", func(r chi.Router) {
		r.Get("/models/{id}", h.getModel)
		r.Get("/models/{id}/latest", h.getLatestVersion)
		r.Get("/models/{id}/versions", h.getVersionIDByName)

		r.Get("/versions/by-hash/{hash}", h.getVersionByHash)
		r.Get("/versions/{id}", h.getVersion)
		r.Get("/versions/{id}/files", h.getFiles)
		r.Get("/versions/{id}/primary-file", h.getPrimaryFile)
		r.Get("/versions/{id}/images", h.getVersionImages)
		r.Get("/versions/{id}/trigger", h.getTriggerWords)

		r.Get("/images", h.searchImages)

		r.Post("/scan", h.scan)
		r.Post("/models-info", h.createModelsInfo)
		r.Post("/maintenance/fix-filenames", h.fixFilenames)

		r.Get("/shortcuts", h.listShortcuts)
		r.Post("/shortcuts/update-all", h.updateAllShortcuts)
		r.Post("/shortcuts/scan-downloaded", h.scanDownloaded)
		r.Post("/shortcuts/{id}", h.addShortcut)
		r.Delete("/shortcuts/{id}", h.removeShortcut)

		r.Get("/settings", h.getSettings)
		r.Put("/settings", h.putSettings)
		r.Delete("/gallery", h.cleanGallery)
	})

	r.Get("/events", h.events)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

type handlers struct{ svc Service }

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

// idParam parses a positive integer URL parameter, writing 400 otherwise.
func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeJSONError(w, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// optionalInt parses an optional query parameter; "" is 0.
func optionalInt(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		writeJSONError(w, http.StatusBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}

// decodeBody reads a JSON body into dst. An empty body leaves dst as is.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.ContentLength == 0 {
		return true
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	// Limit body size (configurable, default 1MiB)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// batchContext joins the server base context with the request context so
// shutdown and client disconnects both cancel a running batch.
func batchContext(r *http.Request) (context.Context, context.CancelFunc) {
	return joinContexts(serverBaseCtx, r.Context())
}
