package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saandeep/portfolio-api/internal/services"
	"github.com/saandeep/portfolio-api/pkg/response"
)

// BlogHandler exposes blog post and comment routes.
type BlogHandler struct {
	blog *services.BlogService
}

// NewBlogHandler constructs a BlogHandler.
func NewBlogHandler(blog *services.BlogService) *BlogHandler {
	return &BlogHandler{blog: blog}
}

// List returns published posts. The admin surface passes drafts=true to see
// everything.
func (h *BlogHandler) List(c *gin.Context) {
	includeDrafts := false
	if v := parseBoolQuery(c, "drafts"); v != nil && isAdminRequest(c) {
		includeDrafts = *v
	}

	posts, err := h.blog.List(requestContext(c), services.ListPostsOptions{
		Category:      c.Query("category"),
		IncludeDrafts: includeDrafts,
		Limit:         parseIntQuery(c, "limit", 0),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, posts, &response.Meta{Total: int64(len(posts))})
}

// GetBySlug returns a published post and counts the read.
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	ctx := requestContext(c)

	post, err := h.blog.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.blog.View(ctx, post.ID); err == nil {
		post.Views++
	}

	comments, err := h.blog.Comments(ctx, post.ID, false)
	if err != nil {
		comments = nil
	}
	response.Success(c, http.StatusOK, gin.H{
		"post":     post,
		"comments": comments,
	})
}

// Create inserts a new post.
func (h *BlogHandler) Create(c *gin.Context) {
	var input services.CreatePostInput
	if !bindAndValidate(c, &input) {
		return
	}

	post, err := h.blog.Create(requestContext(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, post)
}

// Update applies a partial update.
func (h *BlogHandler) Update(c *gin.Context) {
	var changes map[string]any
	if err := c.ShouldBindJSON(&changes); err != nil {
		respondError(c, err)
		return
	}

	post, err := h.blog.Update(requestContext(c), c.Param("id"), changes)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// Delete removes a post and its comments.
func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.blog.Delete(requestContext(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Post deleted")
}

// Like counts a like and returns the new total.
func (h *BlogHandler) Like(c *gin.Context) {
	likes, err := h.blog.Like(requestContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"likes": likes})
}

// Comments lists a post's visible comments.
func (h *BlogHandler) Comments(c *gin.Context) {
	comments, err := h.blog.Comments(requestContext(c), c.Param("id"), isAdminRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comments)
}

// AddComment stores a visitor comment pending approval.
func (h *BlogHandler) AddComment(c *gin.Context) {
	var input services.CommentInput
	if !bindAndValidate(c, &input) {
		return
	}

	comment, err := h.blog.AddComment(requestContext(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"comment": comment,
		"message": "Comment submitted for review",
	})
}

// ApproveComment makes a comment publicly visible.
func (h *BlogHandler) ApproveComment(c *gin.Context) {
	comment, err := h.blog.ApproveComment(requestContext(c), c.Param("commentID"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comment)
}

// DeleteComment removes a comment.
func (h *BlogHandler) DeleteComment(c *gin.Context) {
	if err := h.blog.DeleteComment(requestContext(c), c.Param("commentID")); err != nil {
		respondError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Comment deleted")
}
