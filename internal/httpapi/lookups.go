package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"civitaid/pkg/types"
)

// getModel godoc
// @Summary      Get a model
// @Tags         models
// @Produce      json
// @Param        id   path      int  true  "Civitai model id"
// @Success      200  {object}  types.ModelRecord
// @Failure      404  {object}  types.ErrorResponse
// @Failure      502  {object}  types.ErrorResponse
// @Router       /api/models/{id} [get]
func (h *handlers) getModel(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	m, err := h.svc.Model(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, m)
}

// getLatestVersion godoc
// @Summary      Get the default version of a model
// @Description  The first listed version, fetched again for full detail.
// @Tags         models
// @Produce      json
// @Param        id   path      int  true  "Civitai model id"
// @Success      200  {object}  types.VersionRecord
// @Failure      404  {object}  types.ErrorResponse
// @Router       /api/models/{id}/latest [get]
func (h *handlers) getLatestVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	v, err := h.svc.LatestVersion(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, v)
}

// getVersionIDByName godoc
// @Summary      Find a version id by exact name
// @Tags         models
// @Produce      json
// @Param        id    path      int     true  "Civitai model id"
// @Param        name  query     string  true  "version name"
// @Success      200   {object}  types.VersionIDResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      404   {object}  types.ErrorResponse
// @Router       /api/models/{id}/versions [get]
func (h *handlers) getVersionIDByName(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	vid, err := h.svc.VersionIDByName(r.Context(), id, r.URL.Query().Get("name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, types.VersionIDResponse{VersionID: vid})
}

// getVersion godoc
// @Summary      Get a model version
// @Tags         versions
// @Produce      json
// @Param        id   path      int  true  "Civitai version id"
// @Success      200  {object}  types.VersionRecord
// @Failure      404  {object}  types.ErrorResponse
// @Router       /api/versions/{id} [get]
func (h *handlers) getVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	v, err := h.svc.Version(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, v)
}

// getVersionByHash godoc
// @Summary      Find a version by file hash
// @Description  Only the first 12 characters of the hash are used.
// @Tags         versions
// @Produce      json
// @Param        hash  path      string  true  "SHA-256 of a model file"
// @Success      200   {object}  types.VersionRecord
// @Failure      404   {object}  types.ErrorResponse
// @Router       /api/versions/by-hash/{hash} [get]
func (h *handlers) getVersionByHash(w http.ResponseWriter, r *http.Request) {
	hash := strings.TrimSpace(chi.URLParam(r, "hash"))
	if hash == "" {
		writeJSONError(w, http.StatusBadRequest, "hash is required")
		return
	}
	v, err := h.svc.VersionByHash(r.Context(), hash)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, v)
}

// getFiles godoc
// @Summary      List the files of a version, keyed by file id
// @Tags         versions
// @Produce      json
// @Param        id   path      int  true  "Civitai version id"
// @Success      200  {object}  map[string]types.FileRecord
// @Router       /api/versions/{id}/files [get]
func (h *handlers) getFiles(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	files, err := h.svc.Files(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, files)
}

// getPrimaryFile godoc
// @Summary      Get the primary file of a version
// @Tags         versions
// @Produce      json
// @Param        id   path      int  true  "Civitai version id"
// @Success      200  {object}  types.FileRecord
// @Failure      404  {object}  types.ErrorResponse
// @Router       /api/versions/{id}/primary-file [get]
func (h *handlers) getPrimaryFile(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	f, err := h.svc.PrimaryFile(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, f)
}

// getVersionImages godoc
// @Summary      List the images of a version
// @Tags         versions
// @Produce      json
// @Param        id   path      int  true  "Civitai version id"
// @Success      200  {object}  types.ImagesResponse
// @Router       /api/versions/{id}/images [get]
func (h *handlers) getVersionImages(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	imgs, err := h.svc.VersionImages(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if imgs == nil {
		imgs = []types.ImageRecord{}
	}
	writeJSON(w, types.ImagesResponse{Images: imgs})
}

// getTriggerWords godoc
// @Summary      Get the trigger words of a version
// @Tags         versions
// @Produce      json
// @Param        id   path      int  true  "Civitai version id"
// @Success      200  {object}  types.TriggerResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /api/versions/{id}/trigger [get]
func (h *handlers) getTriggerWords(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	words, err := h.svc.TriggerWords(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, types.TriggerResponse{TriggerWords: words})
}

// searchImages godoc
// @Summary      Search images of a model
// @Description  Lookup failures yield an empty list.
// @Tags         images
// @Produce      json
// @Param        modelId         query     int     true   "Civitai model id"
// @Param        modelVersionId  query     int     false  "restrict to a version"
// @Param        username        query     string  false  "restrict to a user"
// @Success      200             {object}  types.ImagesResponse
// @Router       /api/images [get]
func (h *handlers) searchImages(w http.ResponseWriter, r *http.Request) {
	modelID, ok := optionalInt(w, r, "modelId")
	if !ok {
		return
	}
	if modelID == 0 {
		writeJSONError(w, http.StatusBadRequest, "modelId is required")
		return
	}
	versionID, ok := optionalInt(w, r, "modelVersionId")
	if !ok {
		return
	}
	imgs, err := h.svc.SearchImages(r.Context(), modelID, versionID, r.URL.Query().Get("username"))
	if err != nil && zlog != nil {
		zlog.Debug().Err(err).Int64("model_id", modelID).Msg("image search failed")
	}
	if imgs == nil {
		imgs = []types.ImageRecord{}
	}
	writeJSON(w, types.ImagesResponse{Images: imgs})
}
