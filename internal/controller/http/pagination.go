package http

import (
	"strconv"
	"strings"

	"board/internal/entity"

	"github.com/gin-gonic/gin"
)

type pageLink struct {
	Number  int
	Index   int
	Current bool
}

// pageWindow returns the 1-based current page and the range of page numbers
// shown around it: four before and five after, clipped to [1, totalPages].
func pageWindow(pageIndex, totalPages int) (nowPage, startPage, endPage int) {
	nowPage = pageIndex + 1
	startPage = max(nowPage-4, 1)
	endPage = min(nowPage+5, totalPages)
	return nowPage, startPage, endPage
}

func pageLinks(nowPage, startPage, endPage int) []pageLink {
	var links []pageLink
	for n := startPage; n <= endPage; n++ {
		links = append(links, pageLink{Number: n, Index: n - 1, Current: n == nowPage})
	}
	return links
}

// parsePageRequest reads page, size and sort ("field" or "field,asc|desc").
// Without a sort parameter the list is ordered by id descending; a bare field
// sorts ascending.
func parsePageRequest(c *gin.Context) entity.PageRequest {
	page := queryInt(c, "page", 0)
	size := queryInt(c, "size", entity.DefaultPageSize)

	sort, direction := entity.DefaultSort, entity.SortDesc
	if raw := strings.TrimSpace(c.Query("sort")); raw != "" {
		field, dir, _ := strings.Cut(raw, ",")
		sort = strings.TrimSpace(field)
		direction = entity.SortAsc
		if strings.EqualFold(strings.TrimSpace(dir), string(entity.SortDesc)) {
			direction = entity.SortDesc
		}
	}

	return entity.NewPageRequest(page, size, sort, direction)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}
