package httpapi

import (
	"net/http"

	"github.com/rustblog/rustblog/internal/server/auth"
	"github.com/rustblog/rustblog/internal/server/models"
)

func (a *API) handleGetComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}

	if _, err := a.postService.GetOne(r.Context(), postID); err != nil {
		writeServiceError(w, err)
		return
	}

	comments, err := a.commentService.GetAllForPost(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCommentResponseList(comments))
}

func (a *API) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}

	var req commentRequest
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

	comment := &models.Comment{Body: req.Body, UserID: userID, PostID: postID}

	created, err := a.commentService.Create(r.Context(), comment)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCommentResponse(created))
}

func (a *API) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed payload.")
		return
	}

	comment := &models.Comment{ID: id, Body: req.Body}

	updated, err := a.commentService.Update(r.Context(), comment)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCommentResponse(updated))
}
