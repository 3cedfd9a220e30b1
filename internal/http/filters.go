package httpx

import (
	"net/url"
	"strings"

	"github.com/eduride/eduride-ui/internal/service"
)

// ParseViewQuery extracts the search/filter/sort triple from URL query
// parameters. All three are optional; blank values mean "no constraint".
func ParseViewQuery(q url.Values) service.Query {
	return service.Query{
		Search: strings.TrimSpace(q.Get("q")),
		Filter: strings.TrimSpace(q.Get("filter")),
		Sort:   strings.TrimSpace(q.Get("sort")),
	}
}
