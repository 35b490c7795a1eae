package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

var _ ports.HealthAPI = (*Client)(nil)

// DatabaseHealth returns the health check result. The backend answers a failing
// check with a 5xx whose body still describes the failure; that body is
// returned as a DOWN result.
func (c *Client) DatabaseHealth(ctx context.Context) (domain.DatabaseHealth, error) {
	var out domain.DatabaseHealth
	err := c.getJSON(ctx, "health_database", c.apiURL+"/api/health/database", &out)
	if err == nil {
		return out, nil
	}

	var se *StatusError
	if errors.As(err, &se) && json.Unmarshal(se.Body, &out) == nil && out.Status != "" {
		return out, nil
	}
	return domain.DatabaseHealth{}, err
}

// DatabaseReport copies the PDF report into w.
func (c *Client) DatabaseReport(ctx context.Context, w io.Writer) (int64, error) {
	const endpoint = "health_report"
	resp, err := c.do(ctx, c.apiCB, request{
		endpoint: endpoint,
		method:   http.MethodGet,
		url:      c.apiURL + "/api/health/database/report",
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("%s: %w: %v", endpoint, domain.ErrUnavailable, err)
	}
	return n, nil
}
