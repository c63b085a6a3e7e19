package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/Go-Blog-Platform/domain"
	"github.com/Guyuepp/Go-Blog-Platform/internal/rest/request"
	"github.com/Guyuepp/Go-Blog-Platform/internal/rest/response"
)

// BlogPostHandler represent the httphandler for blog posts
type BlogPostHandler struct {
	Service domain.BlogPostUsecase
}

func NewBlogPostHandler(svc domain.BlogPostUsecase) *BlogPostHandler {
	return &BlogPostHandler{
		Service: svc,
	}
}

// Fetch will fetch one listing page of posts
func (h *BlogPostHandler) Fetch(c *gin.Context) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	var authorID int64
	if raw := c.Query("authorId"); raw != "" {
		authorID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ResponseError{Message: domain.ErrBadParamInput.Error()})
			return
		}
	}

	res, err := h.Service.Fetch(c.Request.Context(), authorID, page)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewBlogPostPageFromDomain(res))
}

// GetBySlug will get the post for the given slug
func (h *BlogPostHandler) GetBySlug(c *gin.Context) {
	post, err := h.Service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewBlogPostFromDomain(&post))
}

// FetchSlugs lists the slugs of all posts
func (h *BlogPostHandler) FetchSlugs(c *gin.Context) {
	slugs, err := h.Service.FetchSlugs(c.Request.Context())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, slugs)
}

// Store will store the post by given request body
func (h *BlogPostHandler) Store(c *gin.Context) {
	var req request.BlogPost
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ResponseError{Message: domain.ErrUnauthorized.Error()})
		return
	}
	post := req.ToDomain()
	post.Author.ID = userID.(int64)

	if err := h.Service.Store(c.Request.Context(), &post); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewBlogPostFromDomain(&post))
}

// Update will update the post by given param and request body
func (h *BlogPostHandler) Update(c *gin.Context) {
	var req request.BlogPost
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	postID, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ResponseError{Message: domain.ErrUnauthorized.Error()})
		return
	}

	post := req.ToDomain()
	if err := h.Service.Update(c.Request.Context(), postID, userID.(int64), &post); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewBlogPostFromDomain(&post))
}

// Delete will delete the post and its comments by given param
func (h *BlogPostHandler) Delete(c *gin.Context) {
	postID, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ResponseError{Message: domain.ErrUnauthorized.Error()})
		return
	}

	if err := h.Service.Delete(c.Request.Context(), postID, userID.(int64)); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
