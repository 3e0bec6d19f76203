package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/odysseyhq/odyssey-cli/internal/client/models"
	"github.com/odysseyhq/odyssey-cli/internal/logging"
)

// DefaultTimeout is the upper bound on any single API call.
const DefaultTimeout = 10 * time.Second

// RESTClient is the HTTP implementation of Client.
type RESTClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	mu    sync.RWMutex
	token string
}

var _ Client = (*RESTClient)(nil)

// NewRESTClient builds a client for the given base URL, e.g.
// "http://localhost:9090/api". A zero timeout falls back to DefaultTimeout.
func NewRESTClient(baseURL string, timeout time.Duration, log logging.Logger) *RESTClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "api"),
	}
}

// SetToken installs the bearer token used for subsequent requests.
// An empty string clears it.
func (c *RESTClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *RESTClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// errorBody is the remote error envelope; anything undecodable degrades to
// a generic message.
type errorBody struct {
	Message string `json:"message"`
}

// do performs one JSON round trip. in (when non-nil) is marshalled as the
// request body; out (when non-nil) receives the decoded response body.
func (c *RESTClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// send attaches common headers, executes the request, and decodes the
// response into out. Non-2xx responses are normalized to *Error.
func (c *RESTClient) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := classifyTransport(err)
		c.log.Warn(req.Context(), "request failed", "method", req.Method, "path", req.URL.Path, "kind", apiErr.Kind.String())
		return apiErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		apiErr := classifyStatus(resp.StatusCode, eb.Message)
		c.log.Warn(req.Context(), "request rejected", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode, "kind", apiErr.Kind.String())
		return apiErr
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Kind: KindUnknown, Status: resp.StatusCode, Message: "unexpected response body"}
		}
	}
	return nil
}

// ---- auth ----

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *RESTClient) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *RESTClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, "", err
	}
	return &resp.User, resp.Token, nil
}

func (c *RESTClient) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var u models.User
	req := registerRequest{Name: name, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *RESTClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *RESTClient) UserProfile(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/auth/users/"+id, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ---- journals ----

func (c *RESTClient) MyJournals(ctx context.Context) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	if err := c.do(ctx, http.MethodGet, "/journals/my", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// journalPage is the paginated shape some deployments return for the public
// listing. Normalized away right here; callers only ever see a slice.
type journalPage struct {
	Content []models.JournalEntry `json:"content"`
}

func (c *RESTClient) PublicJournals(ctx context.Context) ([]models.JournalEntry, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/journals/public", nil, &raw); err != nil {
		return nil, err
	}
	return normalizeJournalList(raw)
}

// normalizeJournalList accepts either a bare array or a paginated
// {content: [...]} object and returns the entries.
func normalizeJournalList(raw []byte) ([]models.JournalEntry, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var entries []models.JournalEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, &Error{Kind: KindUnknown, Message: "unexpected journal list shape"}
		}
		return entries, nil
	}
	var page journalPage
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, &Error{Kind: KindUnknown, Message: "unexpected journal list shape"}
	}
	return page.Content, nil
}

func (c *RESTClient) Journal(ctx context.Context, id string) (*models.JournalEntry, error) {
	var e models.JournalEntry
	if err := c.do(ctx, http.MethodGet, "/journals/"+id, nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *RESTClient) CreateJournal(ctx context.Context, draft models.JournalDraft) (*models.JournalEntry, error) {
	var e models.JournalEntry
	if err := c.do(ctx, http.MethodPost, "/journals", draft, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *RESTClient) UpdateJournal(ctx context.Context, id string, patch models.JournalPatch) (*models.JournalEntry, error) {
	var e models.JournalEntry
	if err := c.do(ctx, http.MethodPut, "/journals/"+id, patch, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *RESTClient) DeleteJournal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/journals/"+id, nil, nil)
}

// ---- storage ----

// UploadImages sends files as a multipart form under the "images" field and
// returns the uploaded URIs. Content types are sniffed from the data.
func (c *RESTClient) UploadImages(ctx context.Context, files []ImageFile) ([]string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, f.Name))
		hdr.Set("Content-Type", http.DetectContentType(f.Data))
		part, err := w.CreatePart(hdr)
		if err != nil {
			return nil, fmt.Errorf("build multipart: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("build multipart: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/storage/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var uris []string
	if err := c.send(req, &uris); err != nil {
		return nil, err
	}
	return uris, nil
}

// ---- social ----

type commentRequest struct {
	Content string `json:"content"`
}

type reactionRequest struct {
	Type models.ReactionKind `json:"type"`
}

func (c *RESTClient) AddComment(ctx context.Context, journalID, content string) (*models.Comment, error) {
	var cm models.Comment
	path := "/journals/" + journalID + "/comments"
	if err := c.do(ctx, http.MethodPost, path, commentRequest{Content: content}, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

func (c *RESTClient) DeleteComment(ctx context.Context, journalID, commentID string) error {
	return c.do(ctx, http.MethodDelete, "/journals/"+journalID+"/comments/"+commentID, nil, nil)
}

func (c *RESTClient) AddReaction(ctx context.Context, journalID string, kind models.ReactionKind) error {
	return c.do(ctx, http.MethodPost, "/journals/"+journalID+"/reactions", reactionRequest{Type: kind}, nil)
}

func (c *RESTClient) RemoveReaction(ctx context.Context, journalID string, kind models.ReactionKind) error {
	return c.do(ctx, http.MethodDelete, "/journals/"+journalID+"/reactions/"+string(kind), nil, nil)
}
