package http

import (
	"mime/multipart"
	"net/http"

	"board/internal/entity"
	"board/internal/usecase"
	"board/pkg/logger"

	"github.com/gin-gonic/gin"
)

const listURL = "/board/list"

type BoardHandler struct {
	boardUseCase usecase.BoardUseCase
	logger       *logger.Logger
}

func NewBoardHandler(boardUseCase usecase.BoardUseCase, logger *logger.Logger) *BoardHandler {
	return &BoardHandler{
		boardUseCase: boardUseCase,
		logger:       logger,
	}
}

type PostForm struct {
	Title   string `form:"title" json:"title" binding:"required"`
	Content string `form:"content" json:"content" binding:"required"`
}

// WriteForm renders the empty post form.
func (h *BoardHandler) WriteForm(c *gin.Context) {
	c.HTML(http.StatusOK, "boardwrite.html", nil)
}

// WritePro creates a post from the submitted form and its optional "file" part.
func (h *BoardHandler) WritePro(c *gin.Context) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderError(c, usecase.ErrInvalidPost)
		return
	}

	post := &entity.Post{Title: form.Title, Content: form.Content}
	if err := h.boardUseCase.Write(post, formFile(c)); err != nil {
		h.renderError(c, err)
		return
	}

	h.renderMessage(c, "Post has been written.")
}

// List renders one page of posts, filtered by searchKeyword when present.
func (h *BoardHandler) List(c *gin.Context) {
	req := parsePageRequest(c)
	keyword := c.Query("searchKeyword")

	var (
		list *entity.Page
		err  error
	)
	if keyword == "" {
		list, err = h.boardUseCase.BoardList(req)
	} else {
		list, err = h.boardUseCase.BoardSearchList(keyword, req)
	}
	if err != nil {
		h.renderError(c, err)
		return
	}

	nowPage, startPage, endPage := pageWindow(list.Number, list.TotalPages)

	c.HTML(http.StatusOK, "boardlist.html", gin.H{
		"list":          list,
		"nowPage":       nowPage,
		"startPage":     startPage,
		"endPage":       endPage,
		"pages":         pageLinks(nowPage, startPage, endPage),
		"searchKeyword": keyword,
		"size":          list.Size,
		"sort":          req.Sort + "," + string(req.Direction),
	})
}

// View renders a single post; ?id= is required.
func (h *BoardHandler) View(c *gin.Context) {
	id, err := parseID(c.Query("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	post, err := h.boardUseCase.BoardView(id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "boardview.html", gin.H{"board": post})
}

// Delete removes a post and redirects to the list. Accepts the id either as
// a query parameter (GET) or a form field (POST).
func (h *BoardHandler) Delete(c *gin.Context) {
	raw := c.Query("id")
	if raw == "" {
		raw = c.PostForm("id")
	}
	id, err := parseID(raw)
	if err != nil {
		h.renderError(c, err)
		return
	}

	if err := h.boardUseCase.BoardDelete(id); err != nil {
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, listURL)
}

// ModifyForm renders the edit form pre-filled with the stored post.
func (h *BoardHandler) ModifyForm(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	post, err := h.boardUseCase.BoardView(id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "boardmodify.html", gin.H{"board": post})
}

// Update overwrites title and content of an existing post and runs the write
// path again with the submitted file.
func (h *BoardHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderError(c, usecase.ErrInvalidPost)
		return
	}

	post, err := h.boardUseCase.BoardView(id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	post.Title = form.Title
	post.Content = form.Content

	if err := h.boardUseCase.Write(post, formFile(c)); err != nil {
		h.renderError(c, err)
		return
	}

	h.renderMessage(c, "Post has been updated.")
}

func (h *BoardHandler) renderMessage(c *gin.Context, message string) {
	c.HTML(http.StatusOK, "message.html", gin.H{
		"message":   message,
		"searchUrl": listURL,
	})
}

func (h *BoardHandler) renderError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.HTML(status, "error.html", gin.H{
		"status":  status,
		"message": message,
	})
}

// formFile returns the "file" part, or nil when none was sent.
func formFile(c *gin.Context) *multipart.FileHeader {
	file, err := c.FormFile("file")
	if err != nil {
		return nil
	}
	return file
}
