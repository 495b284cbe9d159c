package query

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Pagination struct {
	Page     int
	PageSize int
}

// GetPaginationFromQuery parses mandatory-with-defaults pagination from the
// request. There is no way to request an unbounded page.
func GetPaginationFromQuery(reqCtx *gin.Context) (*Pagination, error) {
	pageStr := reqCtx.DefaultQuery("page", "1")
	pageSizeStr := reqCtx.DefaultQuery("page_size", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return nil, fmt.Errorf("invalid page number")
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		return nil, fmt.Errorf("invalid page size")
	}

	return &Pagination{
		Page:     page,
		PageSize: pageSize,
	}, nil
}
