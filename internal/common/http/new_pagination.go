package http

import (
	"github.com/labstack/echo/v4"
)

type CursorPagination struct {
	Prev string `json:"prev,omitempty" example:"abc"`
	Next string `json:"next,omitempty" example:"cba"`
}

type PaginateableContent[ModelOut any] interface {
	GetCursor() string
	ToModelResponse() ModelOut
}

// NewCursorPagination only pages forward. Prev echoes the cursor the caller
// came from.
func NewCursorPagination[ModelOut any, S ~[]E, E PaginateableContent[ModelOut]](c echo.Context, collections S, hasMorePages bool) CursorPagination {
	var p CursorPagination

	p.Prev = c.QueryParam("cursor")
	if hasMorePages && len(collections) > 0 {
		p.Next = collections[len(collections)-1].GetCursor()
	}

	return p
}
