package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

// statusSuccess is the value of the "status" field on successful API calls.
const statusSuccess = "success"

// adminUsername is the only account the password endpoint manages.
const adminUsername = "admin"

// TokenSource supplies the bearer token for authenticated requests.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

// Token implements TokenSource.
func (f TokenFunc) Token() string { return f() }

// Client is the village API client.
type Client struct {
	endpoints  Endpoints
	tokens     TokenSource
	httpClient *http.Client
}

// New creates a new API client. A nil TokenSource yields an anonymous client
// suitable for public pages.
func New(endpoints Endpoints, tokens TokenSource) *Client {
	return &Client{
		endpoints: endpoints,
		tokens:    tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Endpoints returns the configured endpoint set.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// statusBody is the envelope some endpoints use to report outcome.
type statusBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (b statusBody) err() error {
	if b.Status == statusSuccess {
		return nil
	}
	return &APIError{Status: b.Status, Message: b.Message}
}

// --- Auth ---

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, request{method: http.MethodPost, url: c.endpoints.Login, body: body, anonymous: true}, &out); err != nil {
		return "", fmt.Errorf("client.Login: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("client.Login: %w", ErrNoToken)
	}
	return out.Token, nil
}

// Logout tells the API the given token is no longer in use.
func (c *Client) Logout(ctx context.Context, token string) error {
	if err := c.do(ctx, request{method: http.MethodPost, url: c.endpoints.Logout, token: token}, nil); err != nil {
		return fmt.Errorf("client.Logout: %w", err)
	}
	return nil
}

// CheckToken verifies a token against the token-check endpoint. Any response
// other than {"status":"success"} is an error.
func (c *Client) CheckToken(ctx context.Context, token string) error {
	var out statusBody
	if err := c.do(ctx, request{method: http.MethodGet, url: c.endpoints.TokenCheck, token: token}, &out); err != nil {
		return fmt.Errorf("client.CheckToken: %w", err)
	}
	if err := out.err(); err != nil {
		return fmt.Errorf("client.CheckToken: %w", err)
	}
	return nil
}

// UpdatePassword changes the admin password.
func (c *Client) UpdatePassword(ctx context.Context, newPassword string) error {
	body := map[string]string{"username": adminUsername, "new_password": newPassword}
	if err := c.do(ctx, request{method: http.MethodPost, url: c.endpoints.UpdatePassword, body: body}, nil); err != nil {
		return fmt.Errorf("client.UpdatePassword: %w", err)
	}
	return nil
}

// --- Destinations ---

// ListDestinations returns every destination.
func (c *Client) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	var out []domain.Destination
	if err := c.get(ctx, c.endpoints.Destination, nil, &out); err != nil {
		return nil, fmt.Errorf("client.ListDestinations: %w", err)
	}
	return out, nil
}

// GetDestination fetches a single destination by ID.
func (c *Client) GetDestination(ctx context.Context, id int64) (*domain.Destination, error) {
	var raw json.RawMessage
	if err := c.get(ctx, c.endpoints.Destination, idQuery("id", id), &raw); err != nil {
		return nil, fmt.Errorf("client.GetDestination: %w", err)
	}
	if isEmptyJSON(raw) {
		return nil, nil
	}
	// Some deployments answer ?id= with a one-element list.
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		var list []domain.Destination
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("client.GetDestination: decode response: %w", err)
		}
		for i := range list {
			if int64(list[i].ID) == id {
				return &list[i], nil
			}
		}
		return nil, nil
	}
	var d domain.Destination
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("client.GetDestination: decode response: %w", err)
	}
	return &d, nil
}

// CreateDestination creates a destination and returns its new ID.
func (c *Client) CreateDestination(ctx context.Context, d domain.DestinationInput) (int64, error) {
	d.ID = 0
	var out struct {
		ID domain.FlexInt `json:"id"`
	}
	if err := c.post(ctx, c.endpoints.Destination, d, &out); err != nil {
		return 0, fmt.Errorf("client.CreateDestination: %w", err)
	}
	return int64(out.ID), nil
}

// UpdateDestination replaces a destination. The ID travels in both the query
// string and the body.
func (c *Client) UpdateDestination(ctx context.Context, id int64, d domain.DestinationInput) error {
	d.ID = id
	r := request{method: http.MethodPut, url: c.endpoints.Destination, query: idQuery("id", id), body: d}
	if err := c.do(ctx, r, nil); err != nil {
		return fmt.Errorf("client.UpdateDestination: %w", err)
	}
	return nil
}

// DeleteDestination deletes a destination. Delete its article first.
func (c *Client) DeleteDestination(ctx context.Context, id int64) error {
	if err := c.deleteResource(ctx, resDestination, "id", strconv.FormatInt(id, 10), nil); err != nil {
		return fmt.Errorf("client.DeleteDestination: %w", err)
	}
	return nil
}

// --- Articles ---

// GetArticle fetches the article of a destination. A destination without an
// article yields (nil, nil).
func (c *Client) GetArticle(ctx context.Context, wisataID int64) (*domain.Article, error) {
	var raw json.RawMessage
	err := c.get(ctx, c.endpoints.Article, idQuery("wisata_id", wisataID), &raw)
	if IsStatus(err, http.StatusNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("client.GetArticle: %w", err)
	}
	if isEmptyJSON(raw) || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return nil, nil
	}
	var a domain.Article
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("client.GetArticle: decode response: %w", err)
	}
	if a.ID == 0 && a.WisataID == 0 && a.Empty() {
		return nil, nil
	}
	return &a, nil
}

// CreateArticle creates the article of a destination.
func (c *Client) CreateArticle(ctx context.Context, a domain.Article) error {
	if err := c.post(ctx, c.endpoints.Article, a, nil); err != nil {
		return fmt.Errorf("client.CreateArticle: %w", err)
	}
	return nil
}

// UpdateArticle replaces the article of destination a.WisataID.
func (c *Client) UpdateArticle(ctx context.Context, a domain.Article) error {
	r := request{method: http.MethodPut, url: c.endpoints.Article, query: idQuery("id", int64(a.WisataID)), body: a}
	if err := c.do(ctx, r, nil); err != nil {
		return fmt.Errorf("client.UpdateArticle: %w", err)
	}
	return nil
}

// DeleteArticle deletes the article of the given destination.
func (c *Client) DeleteArticle(ctx context.Context, wisataID int64) error {
	if err := c.deleteResource(ctx, resArticle, "id", strconv.FormatInt(wisataID, 10), nil); err != nil {
		return fmt.Errorf("client.DeleteArticle: %w", err)
	}
	return nil
}

// --- Agenda ---

// ListAgenda returns every agenda item.
func (c *Client) ListAgenda(ctx context.Context) ([]domain.AgendaItem, error) {
	var out []domain.AgendaItem
	if err := c.get(ctx, c.endpoints.Agenda, nil, &out); err != nil {
		return nil, fmt.Errorf("client.ListAgenda: %w", err)
	}
	return out, nil
}

// CreateAgenda creates an agenda item. The endpoint accepts a batch.
func (c *Client) CreateAgenda(ctx context.Context, item domain.AgendaItem) error {
	item.ID = 0
	body := map[string][]domain.AgendaItem{"agendaList": {item}}
	if err := c.post(ctx, c.endpoints.Agenda, body, nil); err != nil {
		return fmt.Errorf("client.CreateAgenda: %w", err)
	}
	return nil
}

// UpdateAgenda replaces an agenda item; the ID travels in the body.
func (c *Client) UpdateAgenda(ctx context.Context, id int64, item domain.AgendaItem) error {
	item.ID = domain.FlexInt(id)
	if err := c.do(ctx, request{method: http.MethodPut, url: c.endpoints.Agenda, body: item}, nil); err != nil {
		return fmt.Errorf("client.UpdateAgenda: %w", err)
	}
	return nil
}

// DeleteAgenda deletes an agenda item.
func (c *Client) DeleteAgenda(ctx context.Context, id int64) error {
	if err := c.deleteResource(ctx, resAgenda, "id", strconv.FormatInt(id, 10), nil); err != nil {
		return fmt.Errorf("client.DeleteAgenda: %w", err)
	}
	return nil
}

// --- Gallery ---

// ListGallery returns every gallery item.
func (c *Client) ListGallery(ctx context.Context) ([]domain.GalleryItem, error) {
	var out []domain.GalleryItem
	if err := c.get(ctx, c.endpoints.Gallery, nil, &out); err != nil {
		return nil, fmt.Errorf("client.ListGallery: %w", err)
	}
	return out, nil
}

// CreateGallery creates a gallery item.
func (c *Client) CreateGallery(ctx context.Context, item domain.GalleryItem) error {
	item.ID = 0
	if err := c.post(ctx, c.endpoints.Gallery, item, nil); err != nil {
		return fmt.Errorf("client.CreateGallery: %w", err)
	}
	return nil
}

// UpdateGallery replaces a gallery item; the ID travels in the body.
func (c *Client) UpdateGallery(ctx context.Context, id int64, item domain.GalleryItem) error {
	item.ID = domain.FlexInt(id)
	if err := c.do(ctx, request{method: http.MethodPut, url: c.endpoints.Gallery, body: item}, nil); err != nil {
		return fmt.Errorf("client.UpdateGallery: %w", err)
	}
	return nil
}

// DeleteGallery deletes a gallery item.
func (c *Client) DeleteGallery(ctx context.Context, id int64) error {
	if err := c.deleteResource(ctx, resGallery, "id", strconv.FormatInt(id, 10), nil); err != nil {
		return fmt.Errorf("client.DeleteGallery: %w", err)
	}
	return nil
}

// --- Categories ---

// ListCategories returns every destination category name.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var raw json.RawMessage
	if err := c.get(ctx, c.endpoints.Category, nil, &raw); err != nil {
		return nil, fmt.Errorf("client.ListCategories: %w", err)
	}
	// Failures come back as a 200 status body such as
	// {"status":"error","message":...} instead of a list.
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		var sb statusBody
		if json.Unmarshal(raw, &sb) == nil && sb.Status != "" {
			return nil, fmt.Errorf("client.ListCategories: %w", sb.err())
		}
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("client.ListCategories: decode response: %w", err)
	}
	return out, nil
}

// CreateCategory creates a category. The name is sent lowercased; uniqueness
// is enforced by the API.
func (c *Client) CreateCategory(ctx context.Context, name string) error {
	var out statusBody
	body := map[string]string{"name": domain.NormalizeCategory(name)}
	if err := c.post(ctx, c.endpoints.Category, body, &out); err != nil {
		return fmt.Errorf("client.CreateCategory: %w", err)
	}
	if err := out.err(); err != nil {
		return fmt.Errorf("client.CreateCategory: %w", err)
	}
	return nil
}

// DeleteCategory deletes a category by name. Destinations still using it are
// not checked.
func (c *Client) DeleteCategory(ctx context.Context, name string) error {
	var out statusBody
	if err := c.deleteResource(ctx, resCategory, "name", name, &out); err != nil {
		return fmt.Errorf("client.DeleteCategory: %w", err)
	}
	if out.Status != "" {
		if err := out.err(); err != nil {
			return fmt.Errorf("client.DeleteCategory: %w", err)
		}
	}
	return nil
}

// --- Images ---

// ResolveImageURL turns a relative image path into an absolute URL under the
// public base. Absolute URLs are returned unchanged.
func (c *Client) ResolveImageURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := c.endpoints.PublicURL
	if strings.HasSuffix(base, "/") && strings.HasPrefix(path, "/") {
		path = strings.TrimPrefix(path, "/")
	}
	return base + path
}

// --- plumbing ---

// request describes a single API call.
type request struct {
	method    string
	url       string
	query     url.Values
	body      any
	token     string // explicit token; overrides the TokenSource
	anonymous bool   // never send a token
}

func idQuery(key string, id int64) url.Values {
	return url.Values{key: {strconv.FormatInt(id, 10)}}
}

func isEmptyJSON(raw json.RawMessage) bool {
	s := bytes.TrimSpace(raw)
	return len(s) == 0 || bytes.Equal(s, []byte("null")) || bytes.Equal(s, []byte("false"))
}

func (c *Client) bearer(r request) string {
	if r.anonymous {
		return ""
	}
	if r.token != "" {
		return r.token
	}
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

func (c *Client) deleteResource(ctx context.Context, res resource, key, value string, out any) error {
	r := request{method: http.MethodDelete, url: c.endpoints.url(res)}
	switch deleteStyles[res] {
	case deleteByBody:
		if id, err := strconv.ParseInt(value, 10, 64); err == nil {
			r.body = map[string]int64{key: id}
		} else {
			r.body = map[string]string{key: value}
		}
	default:
		r.query = url.Values{key: {value}}
	}
	return c.do(ctx, r, out)
}

func (c *Client) get(ctx context.Context, rawURL string, query url.Values, out any) error {
	return c.do(ctx, request{method: http.MethodGet, url: rawURL, query: query}, out)
}

func (c *Client) post(ctx context.Context, rawURL string, body any, out any) error {
	return c.do(ctx, request{method: http.MethodPost, url: rawURL, body: body}, out)
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	var reqBody io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	target, err := withQuery(r.url, r.query)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if tok := c.bearer(r); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Error != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
			}
			if apiErr.Message != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func withQuery(rawURL string, query url.Values) (string, error) {
	if len(query) == 0 {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
