package httpapi

import (
	"net/http"

	"civitaid/pkg/types"
)

// scan godoc
// @Summary      List model files without an info sidecar
// @Tags         scan
// @Produce      json
// @Success      200  {object}  types.ScanResponse
// @Failure      409  {object}  types.ErrorResponse
// @Router       /api/scan [post]
func (h *handlers) scan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := batchContext(r)
	defer cancel()
	files, err := h.svc.ScanModels(ctx)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, types.ScanResponse{Files: files})
}

// createModelsInfo godoc
// @Summary      Resolve files and write their sidecars
// @Description  Returns the files that still have no sidecar afterwards.
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        body  body      types.CreateInfoRequest  true  "files and options"
// @Success      200   {object}  types.CreateInfoResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      409   {object}  types.ErrorResponse
// @Router       /api/models-info [post]
func (h *handlers) createModelsInfo(w http.ResponseWriter, r *http.Request) {
	var req types.CreateInfoRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Files) == 0 {
		writeJSONError(w, http.StatusBadRequest, "files is required")
		return
	}
	ctx, cancel := batchContext(r)
	defer cancel()
	unresolved, err := h.svc.CreateModelsInformation(ctx, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, types.CreateInfoResponse{Unregistered: unresolved})
}

// fixFilenames godoc
// @Summary      Rename sidecars to their canonical names
// @Tags         scan
// @Produce      json
// @Success      200  {object}  types.FixFilenamesResponse
// @Failure      409  {object}  types.ErrorResponse
// @Router       /api/maintenance/fix-filenames [post]
func (h *handlers) fixFilenames(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := batchContext(r)
	defer cancel()
	n, err := h.svc.FixFilenames(ctx)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, types.FixFilenamesResponse{Renamed: n})
}

// listShortcuts godoc
// @Summary      List shortcuts
// @Tags         shortcuts
// @Produce      json
// @Success      200  {object}  types.ShortcutsResponse
// @Router       /api/shortcuts [get]
func (h *handlers) listShortcuts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, types.ShortcutsResponse{Shortcuts: h.svc.Shortcuts()})
}

// addShortcut godoc
// @Summary      Register or refresh a shortcut
// @Tags         shortcuts
// @Produce      json
// @Param        id   path      int  true  "Civitai model id"
// @Success      204
// @Failure      404  {object}  types.ErrorResponse
// @Router       /api/shortcuts/{id} [post]
func (h *handlers) addShortcut(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.AddShortcut(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// removeShortcut godoc
// @Summary      Delete a shortcut
// @Tags         shortcuts
// @Param        id   path      int  true  "Civitai model id"
// @Success      204
// @Failure      404  {object}  types.ErrorResponse
// @Router       /api/shortcuts/{id} [delete]
func (h *handlers) removeShortcut(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	found, err := h.svc.RemoveShortcut(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !found {
		writeJSONError(w, http.StatusNotFound, "shortcut not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// updateAllShortcuts godoc
// @Summary      Refresh every shortcut from Civitai
// @Tags         shortcuts
// @Produce      json
// @Success      200  {object}  types.ShortcutBatchResponse
// @Router       /api/shortcuts/update-all [post]
func (h *handlers) updateAllShortcuts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := batchContext(r)
	defer cancel()
	res, err := h.svc.UpdateAllShortcuts(ctx)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, res)
}

// scanDownloaded godoc
// @Summary      Register shortcuts for downloaded models
// @Tags         shortcuts
// @Produce      json
// @Success      200  {object}  types.ShortcutBatchResponse
// @Router       /api/shortcuts/scan-downloaded [post]
func (h *handlers) scanDownloaded(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := batchContext(r)
	defer cancel()
	res, err := h.svc.ScanToShortcut(ctx)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, res)
}

// getSettings godoc
// @Summary      Get the active settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  config.Config
// @Router       /api/settings [get]
func (h *handlers) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Settings())
}

// putSettings godoc
// @Summary      Update and save settings
// @Description  Fields absent from the body keep their current value.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      config.Config  true  "settings"
// @Success      200   {object}  config.Config
// @Failure      400   {object}  types.ErrorResponse
// @Failure      409   {object}  types.ErrorResponse
// @Router       /api/settings [put]
func (h *handlers) putSettings(w http.ResponseWriter, r *http.Request) {
	cfg := h.svc.Settings()
	if !decodeBody(w, r, &cfg) {
		return
	}
	if err := h.svc.SaveSettings(cfg); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, h.svc.Settings())
}

// cleanGallery godoc
// @Summary      Delete downloaded gallery images
// @Tags         settings
// @Success      204
// @Router       /api/gallery [delete]
func (h *handlers) cleanGallery(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.CleanGallery(); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
