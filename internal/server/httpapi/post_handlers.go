package httpapi

import (
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/rustblog/rustblog/internal/server/auth"
	"github.com/rustblog/rustblog/internal/server/models"
)

// maxImageBytes bounds the multipart upload size.
const maxImageBytes = 32 << 20

func pathID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	return id, err == nil
}

func (a *API) handleGetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.postService.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponseList(posts))
}

func (a *API) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}

	post, err := a.postService.GetOne(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

func (a *API) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed payload.")
		return
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	post := &models.Post{Title: req.Title, Body: req.Body, UserID: userID}

	created, err := a.postService.Create(r.Context(), post)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(created))
}

func (a *API) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed payload.")
		return
	}

	post := &models.Post{ID: id, Title: req.Title, Body: req.Body}

	updated, err := a.postService.Update(r.Context(), post)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(updated))
}

func (a *API) handleAddImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed multipart payload.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file field.")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Malformed multipart payload.")
		return
	}

	contentType := header.Header.Get("Content-Type")

	updated, err := a.postService.AddImage(r.Context(), id, content, contentType)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(updated))
}

func (a *API) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}

	if err := a.postService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
