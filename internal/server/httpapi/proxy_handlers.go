package httpapi

import "net/http"

// handleServeImage streams a stored image by id with its recorded
// content-type. Public, read-only.
func (a *API) handleServeImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}

	content, contentType, err := a.store.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	_, _ = w.Write(content)
}
