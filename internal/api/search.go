package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/altinukshini/gif-ascii-tui/internal/model"
)

type SearchQuery struct {
	Term  string
	Limit int
}

func (q SearchQuery) QueryString() string {
	v := url.Values{}
	v.Set("query", q.Term)
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return "?" + v.Encode()
}

// Search lists GIPHY candidates for the query. An empty listing is not an
// error.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]model.SearchResult, error) {
	req, err := c.newRequest(ctx, http.MethodGet, searchPath+q.QueryString(), nil)
	if err != nil {
		return nil, err
	}

	var results []model.SearchResult
	if err := c.do(req, SearchFallback, &results); err != nil {
		return nil, fmt.Errorf("search %q: %w", q.Term, err)
	}
	return results, nil
}
