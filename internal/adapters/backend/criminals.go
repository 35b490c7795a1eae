package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

var _ ports.CriminalAPI = (*Client)(nil)

func (c *Client) criminalsURL(suffix string) string {
	return c.apiURL + "/api/criminals" + suffix
}

func (c *Client) ListCriminals(ctx context.Context) ([]domain.Criminal, error) {
	var out []domain.Criminal
	if err := c.getJSON(ctx, "criminals_list", c.criminalsURL(""), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCriminal reports a 404 as domain.ErrNotFound.
func (c *Client) GetCriminal(ctx context.Context, id int64) (domain.Criminal, error) {
	var out domain.Criminal
	err := c.getJSON(ctx, "criminals_get", c.criminalsURL(fmt.Sprintf("/%d", id)), &out)
	var se *StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return domain.Criminal{}, fmt.Errorf("criminal %d: %w: %w", id, domain.ErrNotFound, se)
	}
	if err != nil {
		return domain.Criminal{}, err
	}
	return out, nil
}

func (c *Client) SearchCriminals(ctx context.Context, name string) ([]domain.Criminal, error) {
	q := url.Values{"name": {name}}
	var out []domain.Criminal
	if err := c.getJSON(ctx, "criminals_search", c.criminalsURL("/search")+"?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddCriminal(ctx context.Context, u domain.CriminalUpload) (domain.Criminal, error) {
	return c.sendCriminal(ctx, "criminals_add", http.MethodPost, c.criminalsURL(""), u)
}

func (c *Client) UpdateCriminal(ctx context.Context, id int64, u domain.CriminalUpload) (domain.Criminal, error) {
	u.Criminal.ID = id
	return c.sendCriminal(ctx, "criminals_update", http.MethodPut, c.criminalsURL(fmt.Sprintf("/%d", id)), u)
}

func (c *Client) DeleteCriminal(ctx context.Context, id int64) error {
	return c.send(ctx, "criminals_delete", http.MethodDelete, c.criminalsURL(fmt.Sprintf("/%d", id)))
}

// sendCriminal posts the record as a JSON part named "criminal" and the
// photo, when present, as a file part named "photoFile".
func (c *Client) sendCriminal(ctx context.Context, endpoint, method, u string, up domain.CriminalUpload) (domain.Criminal, error) {
	body, contentType, err := criminalForm(up)
	if err != nil {
		return domain.Criminal{}, fmt.Errorf("%s: build form: %w", endpoint, err)
	}

	resp, err := c.do(ctx, c.apiCB, request{
		endpoint:    endpoint,
		method:      method,
		url:         u,
		body:        body,
		contentType: contentType,
	})
	if err != nil {
		return domain.Criminal{}, err
	}
	defer resp.Body.Close()

	var out domain.Criminal
	if err := decode(endpoint, resp.Body, &out); err != nil {
		return domain.Criminal{}, err
	}
	return out, nil
}

func criminalForm(up domain.CriminalUpload) (*bytes.Buffer, string, error) {
	record, err := json.Marshal(up.Criminal)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="criminal"`)
	h.Set("Content-Type", "application/json")
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(record); err != nil {
		return nil, "", err
	}

	if len(up.Photo) > 0 {
		name := up.PhotoName
		if name == "" {
			name = "photo"
		}
		file, err := mw.CreateFormFile("photoFile", name)
		if err != nil {
			return nil, "", err
		}
		if _, err := file.Write(up.Photo); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
