package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/intelicop/console/internal/core/ports"
)

var _ ports.AuthAPI = (*Client)(nil)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login posts credentials to /auth/login. A 401 carrying the usual
// {success:false} body is a normal negative answer, not an error.
func (c *Client) Login(ctx context.Context, username, password string) (ports.LoginResult, error) {
	const endpoint = "auth_login"

	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("%s: encode body: %w", endpoint, err)
	}

	resp, err := c.do(ctx, c.authCB, request{
		endpoint:    endpoint,
		method:      http.MethodPost,
		url:         c.authURL + "/auth/login",
		body:        bytes.NewReader(body),
		contentType: "application/json",
	})
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && (se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden) {
			res := ports.LoginResult{Message: se.Message}
			_ = json.Unmarshal(se.Body, &res)
			res.Success = false
			return res, nil
		}
		return ports.LoginResult{}, err
	}
	defer resp.Body.Close()

	var res ports.LoginResult
	if err := decode(endpoint, resp.Body, &res); err != nil {
		return ports.LoginResult{}, err
	}
	return res, nil
}
