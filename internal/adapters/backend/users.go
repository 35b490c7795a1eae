package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

var _ ports.UserAPI = (*Client)(nil)

func (c *Client) usersURL(suffix string) string {
	return c.apiURL + "/api/users" + suffix
}

func (c *Client) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var out []domain.Account
	if err := c.getJSON(ctx, "users_list", c.usersURL(""), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CountAccounts(ctx context.Context) (domain.RoleCounts, error) {
	var out domain.RoleCounts
	if err := c.getJSON(ctx, "users_total", c.usersURL("/total"), &out); err != nil {
		return domain.RoleCounts{}, err
	}
	return out, nil
}

func (c *Client) UpdateRole(ctx context.Context, id int64, role domain.Role) error {
	q := url.Values{"role": {string(role)}}
	u := c.usersURL(fmt.Sprintf("/%d/role", id)) + "?" + q.Encode()
	return c.send(ctx, "users_role", http.MethodPut, u)
}

func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.send(ctx, "users_delete", http.MethodDelete, c.usersURL(fmt.Sprintf("/%d", id)))
}

type addAccountResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// AddAccount posts the multipart form the backend expects: photo, loginId,
// password, role and policeId.
func (c *Client) AddAccount(ctx context.Context, a domain.NewAccount) (int64, error) {
	const endpoint = "users_add"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	name := a.PhotoName
	if name == "" {
		name = "photo"
	}
	part, err := mw.CreateFormFile("photo", name)
	if err != nil {
		return 0, fmt.Errorf("%s: build form: %w", endpoint, err)
	}
	if _, err := part.Write(a.Photo); err != nil {
		return 0, fmt.Errorf("%s: build form: %w", endpoint, err)
	}
	fields := []struct{ key, value string }{
		{"loginId", a.LoginID},
		{"password", a.Password},
		{"role", string(a.Role)},
		{"policeId", a.PoliceID},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.key, f.value); err != nil {
			return 0, fmt.Errorf("%s: build form: %w", endpoint, err)
		}
	}
	if err := mw.Close(); err != nil {
		return 0, fmt.Errorf("%s: build form: %w", endpoint, err)
	}

	resp, err := c.do(ctx, c.apiCB, request{
		endpoint:    endpoint,
		method:      http.MethodPost,
		url:         c.usersURL("/add"),
		body:        &buf,
		contentType: mw.FormDataContentType(),
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var out addAccountResponse
	if err := decode(endpoint, resp.Body, &out); err != nil {
		return 0, err
	}
	return out.UserID, nil
}
