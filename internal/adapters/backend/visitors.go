package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

var _ ports.VisitorAPI = (*Client)(nil)

func (c *Client) visitorsURL(suffix string) string {
	return c.apiURL + "/api/visitors" + suffix
}

func (c *Client) ListMeetings(ctx context.Context) ([]domain.Meeting, error) {
	var out []domain.Meeting
	if err := c.getJSON(ctx, "visitors_list", c.visitorsURL(""), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListToday(ctx context.Context) ([]domain.Meeting, error) {
	var out []domain.Meeting
	if err := c.getJSON(ctx, "visitors_today", c.visitorsURL("/today"), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListUpcoming(ctx context.Context) ([]domain.Meeting, error) {
	var out []domain.Meeting
	if err := c.getJSON(ctx, "visitors_upcoming", c.visitorsURL("/upcoming"), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListCompleted(ctx context.Context) ([]domain.CompletedVisit, error) {
	var out []domain.CompletedVisit
	if err := c.getJSON(ctx, "visitors_completed", c.visitorsURL("/completed"), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateMeeting(ctx context.Context, m domain.Meeting) (domain.Meeting, error) {
	var out domain.Meeting
	if err := c.sendJSON(ctx, "visitors_create", http.MethodPost, c.visitorsURL(""), m, &out); err != nil {
		return domain.Meeting{}, err
	}
	return out, nil
}

func (c *Client) UpdateMeeting(ctx context.Context, id int64, m domain.Meeting) (domain.Meeting, error) {
	var out domain.Meeting
	u := c.visitorsURL(fmt.Sprintf("/%d", id))
	if err := c.sendJSON(ctx, "visitors_update", http.MethodPut, u, m, &out); err != nil {
		return domain.Meeting{}, err
	}
	return out, nil
}

func (c *Client) DeleteMeeting(ctx context.Context, id int64) error {
	return c.send(ctx, "visitors_delete", http.MethodDelete, c.visitorsURL(fmt.Sprintf("/%d", id)))
}

// UpdateStatus always sends the canonical upper-case status.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	q := url.Values{"status": {string(status)}}
	u := c.visitorsURL(fmt.Sprintf("/%d/status", id)) + "?" + q.Encode()
	return c.send(ctx, "visitors_status", http.MethodPut, u)
}
