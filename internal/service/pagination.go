package service

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jjenkins/gabinete/internal/model"
)

// lastPageFromLinks extracts the page number of the upstream "last" link.
// ok is false when there is no usable "last" link.
func lastPageFromLinks(links []Link) (page int, ok bool) {
	for _, l := range links {
		if l.Rel != "last" {
			continue
		}

		rawQuery := l.Href
		if i := strings.Index(rawQuery, "?"); i >= 0 {
			rawQuery = rawQuery[i+1:]
		}
		values, err := url.ParseQuery(rawQuery)
		if err != nil {
			return 0, false
		}
		page, err := strconv.Atoi(values.Get("pagina"))
		if err != nil || page < 1 {
			return 0, false
		}
		return page, true
	}
	return 0, false
}

// totalPages is ceil(total/perPage) without overflowing for huge perPage
func totalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	return pages
}

// pageBounds returns the slice bounds of page within total items
func pageBounds(total, perPage, page int) (start, end int) {
	if perPage <= 0 || page <= 0 || page-1 >= totalPages(total, perPage) {
		return total, total
	}
	start = (page - 1) * perPage
	end = total
	if perPage < total-start {
		end = start + perPage
	}
	return start, end
}

func pageLinks(link func(page int) string, self, last int) model.PageLinks {
	return model.PageLinks{
		First: link(1),
		Self:  link(self),
		Last:  link(last),
	}
}
