package httpapi

import (
	"net/http"

	"github.com/rustblog/rustblog/internal/logging"
	"github.com/rustblog/rustblog/internal/server/services"
	"github.com/rustblog/rustblog/internal/server/storage"
)

// API wires the HTTP surface to the service layer.
type API struct {
	logger         logging.Logger
	authService    *services.AuthService
	postService    *services.PostService
	commentService *services.CommentService
	store          storage.Store
}

func NewAPI(
	logger logging.Logger,
	authService *services.AuthService,
	postService *services.PostService,
	commentService *services.CommentService,
	store storage.Store,
) *API {
	return &API{
		logger:         logger,
		authService:    authService,
		postService:    postService,
		commentService: commentService,
		store:          store,
	}
}

// Handler builds the route table. Everything under /api except login and
// refresh requires a verified bearer token; logout authenticates the
// presented token itself so an expired one can still end its session.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/auth/login", a.handleLogin)
	mux.HandleFunc("POST /api/auth/token/refresh", a.handleRefresh)
	mux.HandleFunc("POST /api/auth/logout", a.handleLogout)

	// Posts
	mux.HandleFunc("GET /api/posts", a.requireAuth(a.handleGetPosts))
	mux.HandleFunc("GET /api/posts/{id}", a.requireAuth(a.handleGetPost))
	mux.HandleFunc("POST /api/posts", a.requireAuth(a.handleCreatePost))
	mux.HandleFunc("PUT /api/posts/{id}", a.requireAuth(a.handleUpdatePost))
	mux.HandleFunc("PUT /api/posts/{id}/image", a.requireAuth(a.handleAddImage))
	mux.HandleFunc("DELETE /api/posts/{id}", a.requireAuth(a.handleDeletePost))

	// Comments
	mux.HandleFunc("GET /api/posts/{id}/comments", a.requireAuth(a.handleGetComments))
	mux.HandleFunc("POST /api/posts/{id}/comments", a.requireAuth(a.handleCreateComment))
	mux.HandleFunc("PUT /api/posts/{postId}/comments/{id}", a.requireAuth(a.handleUpdateComment))

	// Image proxy
	mux.HandleFunc("GET /assets/images/{id}", a.handleServeImage)

	return a.logRequests(mux)
}
