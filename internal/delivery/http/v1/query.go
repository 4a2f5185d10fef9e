package v1

import (
	"strconv"
	"strings"

	"job-board-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// listQuery describes how a collection's list endpoint reads its query string.
// Each selectable field is returned when its parameter is present with a
// non-empty value. A non-empty sortParam orders by sortField.
type listQuery struct {
	fields    []string
	sortParam string
	sortField string
}

var (
	userListQuery = listQuery{
		fields:    []string{"userName", "firstName", "lastName", "email", "gender"},
		sortParam: "sortByFirstName",
		sortField: "firstName",
	}
	recruiterListQuery = listQuery{
		fields:    []string{"companyName", "companyDescription", "address", "email"},
		sortParam: "sortByCompanyName",
		sortField: "companyName",
	}
	jobListQuery = listQuery{
		fields:    []string{"jobTitle", "jobDescription", "location", "salary"},
		sortParam: "sortByjobTitle",
		sortField: "jobTitle",
	}
)

func (q listQuery) parse(c *gin.Context) domain.ListOptions {
	var opts domain.ListOptions

	for _, f := range q.fields {
		if c.Query(f) != "" {
			opts.Fields = append(opts.Fields, f)
		}
	}

	if n, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && n > 0 {
		opts.Limit = n
	}

	if dir := c.Query(q.sortParam); dir != "" {
		opts.SortField = q.sortField
		opts.SortOrder = domain.SortDesc
		if strings.EqualFold(dir, "asc") {
			opts.SortOrder = domain.SortAsc
		}
	}

	return opts
}
