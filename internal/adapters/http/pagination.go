package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Pagination describes an offset/limit window over a collection.
type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

// PaginatedResponse wraps a page of data with its pagination metadata.
type PaginatedResponse struct {
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// SetLinkHeaders adds RFC 8288 Link headers for the next and previous pages.
func SetLinkHeaders(c *fiber.Ctx, pg Pagination) {
	base := c.Path()
	var links string

	if pg.Offset+pg.Limit < pg.Total {
		links = fmt.Sprintf(`<%s?offset=%d&limit=%d>; rel="next"`, base, pg.Offset+pg.Limit, pg.Limit)
	}
	if pg.Offset > 0 {
		prev := pg.Offset - pg.Limit
		if prev < 0 {
			prev = 0
		}
		if links != "" {
			links += ", "
		}
		links += fmt.Sprintf(`<%s?offset=%d&limit=%d>; rel="prev"`, base, prev, pg.Limit)
	}

	if links != "" {
		c.Set("Link", links)
	}
}
