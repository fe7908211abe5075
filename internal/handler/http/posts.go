package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kjmin/go-board/internal/logger"
	"github.com/kjmin/go-board/internal/utils"
)

// listPosts answers the board's front page data: every post, newest first,
// as JSON. No session is required to read the board.
func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	posts, err := h.services.PostService.ListPosts(ctx)
	if err != nil {
		log.Err(err).Msg("error occurred during post listing")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if _, err := utils.WriteJSON(w, posts, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing posts to response")
	}
}

// writePost stores a new post authored by the session identity from form
// fields title/content and returns to the board. A blank submission is
// bounced back to the board with the reason in the `error` query parameter.
func (h *Handler) writePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := identityFromRequest(r)
	if !ok {
		log.Error().Msg("identity missing from request context")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	title := r.PostFormValue("title")
	content := r.PostFormValue("content")

	post, err := h.services.PostService.CreatePost(ctx, identity, title, content)
	if err != nil {
		h.handleOperationError(w, r, rootPath, err)
		return
	}

	log.Info().Int64("id", post.PostID).Str("author", post.Author).Msg("post created")

	http.Redirect(w, r, rootPath, http.StatusSeeOther)
}

// deletePost removes the post named in the URL on behalf of the session
// identity. Admins delete any post, users only their own; a missing post id
// is already the desired state and redirects like a success.
func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := identityFromRequest(r)
	if !ok {
		log.Error().Msg("identity missing from request context")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Err(err).Str("id", chi.URLParam(r, "id")).Msg("non-numeric post id")
		http.NotFound(w, r)
		return
	}

	if err := h.services.PostService.DeletePost(ctx, identity, postID); err != nil {
		h.handleOperationError(w, r, rootPath, err)
		return
	}

	http.Redirect(w, r, rootPath, http.StatusSeeOther)
}
