package httpapi

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rustblog/rustblog/internal/server/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokensResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type postRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type postResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"imageUrl"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type commentRequest struct {
	Body   string    `json:"body"`
	PostID uuid.UUID `json:"postId"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	UserID    string    `json:"userId"`
	PostID    string    `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPostResponse(post *models.Post) postResponse {
	imageURL := ""
	if post.ImageID != uuid.Nil {
		imageURL = fmt.Sprintf("/assets/images/%s", post.ImageID)
	}

	return postResponse{
		ID:        post.ID.String(),
		Title:     post.Title,
		Body:      post.Body,
		ImageURL:  imageURL,
		UserID:    post.UserID.String(),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func toPostResponseList(posts []*models.Post) []postResponse {
	result := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		result = append(result, toPostResponse(post))
	}
	return result
}

func toCommentResponse(comment *models.Comment) commentResponse {
	return commentResponse{
		ID:        comment.ID.String(),
		Body:      comment.Body,
		UserID:    comment.UserID.String(),
		PostID:    comment.PostID.String(),
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

func toCommentResponseList(comments []*models.Comment) []commentResponse {
	result := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		result = append(result, toCommentResponse(comment))
	}
	return result
}
