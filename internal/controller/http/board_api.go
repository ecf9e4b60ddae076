package http

import (
	"net/http"

	"board/internal/entity"

	"github.com/gin-gonic/gin"
)

// ListPosts godoc
// @Summary      List posts
// @Description  Get one page of posts, newest first by default. When searchKeyword is set only posts whose title contains it (ignoring case) are returned.
// @Tags         posts
// @Produce      json
// @Param        page query int false "Zero-based page index" default(0)
// @Param        size query int false "Page size (max 100)" default(10)
// @Param        sort query string false "Sort as field[,asc|desc]; field is id, title or content" default(id,desc)
// @Param        searchKeyword query string false "Title substring"
// @Success      200  {object}  entity.Page
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *BoardHandler) ListPosts(c *gin.Context) {
	req := parsePageRequest(c)
	keyword := c.Query("searchKeyword")

	var (
		page *entity.Page
		err  error
	)
	if keyword == "" {
		page, err = h.boardUseCase.BoardList(req)
	} else {
		page, err = h.boardUseCase.BoardSearchList(keyword, req)
	}
	if err != nil {
		h.renderJSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetPost godoc
// @Summary      Get post by ID
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *BoardHandler) GetPost(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.renderJSONError(c, err)
		return
	}

	post, err := h.boardUseCase.BoardView(id)
	if err != nil {
		h.renderJSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// CreatePost godoc
// @Summary      Create a new post
// @Description  Create a post with an optional attachment. The file is stored as <uuid>_<original name> and served under /files/.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Param        title formData string true "Post title"
// @Param        content formData string true "Post content"
// @Param        file formData file false "Attachment"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *BoardHandler) CreatePost(c *gin.Context) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := &entity.Post{Title: form.Title, Content: form.Content}
	if err := h.boardUseCase.Write(post, formFile(c)); err != nil {
		h.renderJSONError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary      Update post
// @Description  Replace title and content. A new attachment replaces the old one; without a file the current attachment is kept.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "Post ID"
// @Param        title formData string true "Post title"
// @Param        content formData string true "Post content"
// @Param        file formData file false "Attachment"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *BoardHandler) UpdatePost(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.renderJSONError(c, err)
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.boardUseCase.BoardView(id)
	if err != nil {
		h.renderJSONError(c, err)
		return
	}
	post.Title = form.Title
	post.Content = form.Content

	if err := h.boardUseCase.Write(post, formFile(c)); err != nil {
		h.renderJSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Delete a post and its attachment. Deleting an unknown id succeeds.
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *BoardHandler) DeletePost(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.renderJSONError(c, err)
		return
	}

	if err := h.boardUseCase.BoardDelete(id); err != nil {
		h.renderJSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func (h *BoardHandler) renderJSONError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": message})
}
