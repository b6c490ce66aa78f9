package handlers

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"hydroponics/internal/models"
	"hydroponics/internal/repository"

	"github.com/gin-gonic/gin"
)

const errInvalidPage = "Invalid page."

// pageRequest is the page the client asked for.
type pageRequest struct {
	number int
	size   int
}

func (p pageRequest) repo() repository.Page {
	return repository.Page{Limit: p.size, Offset: (p.number - 1) * p.size}
}

// parsePage reads ?page and ?page_size. page_size is capped, not rejected.
func (h *Handler) parsePage(c *gin.Context) (pageRequest, bool) {
	p := pageRequest{number: 1, size: h.pageSize}
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			detail(c, http.StatusNotFound, errInvalidPage)
			return p, false
		}
		p.number = n
	}
	if raw := c.Query("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err == nil && n > 0 {
			p.size = min(n, h.maxPageSize)
		}
	}
	// number*size must fit an int for the offset and the next link.
	if p.number > math.MaxInt/p.size {
		detail(c, http.StatusNotFound, errInvalidPage)
		return p, false
	}
	return p, true
}

// pageOutOfRange reports a page past the last one; page 1 is always valid.
func pageOutOfRange(p pageRequest, count int) bool {
	return p.number > 1 && (p.number-1)*p.size >= count
}

// newPage builds the {count,next,previous,results} envelope with absolute links.
func newPage[T any](c *gin.Context, p pageRequest, count int, results []T) models.Page[T] {
	if results == nil {
		results = []T{}
	}
	out := models.Page[T]{Count: count, Results: results}
	if p.number*p.size < count {
		next := pageURL(c, p.number+1)
		out.Next = &next
	}
	if p.number > 1 {
		prev := pageURL(c, p.number-1)
		out.Previous = &prev
	}
	return out
}

// pageURL is the current request URL with page replaced; page 1 drops the parameter.
func pageURL(c *gin.Context, page int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if fwd := c.GetHeader("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	q := c.Request.URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u := url.URL{
		Scheme:   scheme,
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawQuery: q.Encode(),
	}
	return u.String()
}
