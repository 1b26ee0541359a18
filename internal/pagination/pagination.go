// Package pagination carries the page descriptor supplied by list
// requests and the paged result envelope, plus the response headers
// derived from it.
package pagination

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultSize = 20

	// TotalItemsHeader carries the full unpaged match count.
	TotalItemsHeader = "X-Total-Items"
)

// Pageable is a zero-based page/size descriptor.
type Pageable struct {
	Page int
	Size int
}

// FromRequest reads page and size query parameters, falling back to
// page 0 / DefaultSize for absent or unusable values.
func FromRequest(r *http.Request) Pageable {
	p := Pageable{Page: 0, Size: DefaultSize}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.Page = n
		}
	}
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Size = n
		}
	}
	return p
}

// Offset returns the row offset for this page.
func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// Page is one page of results together with the unpaged total.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
}

// TotalPages returns the number of pages the full result set spans.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

// WriteHeaders sets the total-count header and a Link header with
// next, prev, last and first page URIs on the response.
func WriteHeaders[T any](w http.ResponseWriter, page Page[T], baseURL string) {
	w.Header().Set(TotalItemsHeader, strconv.FormatInt(page.TotalElements, 10))

	totalPages := page.TotalPages()
	var links []string

	if page.Number+1 < totalPages {
		links = append(links, link(baseURL, page.Number+1, page.Size, "next"))
	}
	if page.Number > 0 {
		links = append(links, link(baseURL, page.Number-1, page.Size, "prev"))
	}

	lastPage := 0
	if totalPages > 0 {
		lastPage = totalPages - 1
	}
	links = append(links, link(baseURL, lastPage, page.Size, "last"))
	links = append(links, link(baseURL, 0, page.Size, "first"))

	w.Header().Set("Link", strings.Join(links, ","))
}

func link(baseURL string, page, size int, rel string) string {
	return fmt.Sprintf("<%s?page=%d&size=%d>; rel=\"%s\"", baseURL, page, size, rel)
}
