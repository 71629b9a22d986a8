package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

const (
	// AuthTokenHeader is response header carrying new or rotated session token.
	AuthTokenHeader = "vendure-auth-token"

	contentType = "Content-Type"
)

// Request is GraphQL request body.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []ErrorMessage  `json:"errors,omitempty"`
}

// File is file sent with multipart upload request.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Client posts GraphQL operations to single endpoint within shared Session.
type Client struct {
	endpoint   string
	httpClient *http.Client
	session    *Session
	userAgent  string
}

// NewClient returns new Client.
func NewClient(httpClient *http.Client, endpoint string, session *Session, userAgent string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		session:    session,
		userAgent:  userAgent,
	}
}

// Execute posts query with variables and decodes response data into out (if out is not nil).
// It returns *Error when response contains GraphQL errors.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(Request{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("can't marshal request: %w", err)
	}

	return c.do(ctx, bytes.NewReader(body), "application/json", out)
}

// Upload posts query as GraphQL multipart request with single file.
// Variable at filePath (e.g. "variables.input.0.file") must be nil in variables, it's replaced by server with file.
func (c *Client) Upload(
	ctx context.Context,
	query string,
	variables map[string]any,
	filePath string,
	file File,
	out any,
) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	operations, err := json.Marshal(Request{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("can't marshal operations: %w", err)
	}

	fileMap, err := json.Marshal(map[string][]string{"0": {filePath}})
	if err != nil {
		return fmt.Errorf("can't marshal file map: %w", err)
	}

	if err = writer.WriteField("operations", string(operations)); err != nil {
		return fmt.Errorf("can't write operations part: %w", err)
	}

	if err = writer.WriteField("map", string(fileMap)); err != nil {
		return fmt.Errorf("can't write map part: %w", err)
	}

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="0"; filename=%q`, file.Name))
	partHeader.Set(contentType, file.ContentType)

	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return fmt.Errorf("can't create file part: %w", err)
	}

	if _, err = part.Write(file.Data); err != nil {
		return fmt.Errorf("can't write file part: %w", err)
	}

	if err = writer.Close(); err != nil {
		return fmt.Errorf("can't close multipart writer: %w", err)
	}

	return c.do(ctx, &buf, writer.FormDataContentType(), out)
}

func (c *Client) do(ctx context.Context, body io.Reader, bodyType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Set(contentType, bodyType)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	// token may be rotated by any response, not only login
	if token := resp.Header.Get(AuthTokenHeader); token != "" {
		c.session.SetToken(token)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("can't read response: %w", err)
	}

	var gqlResp response
	if err = json.Unmarshal(respBody, &gqlResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: status %d", ErrStatusNotOK, resp.StatusCode)
		}
		return fmt.Errorf("can't unmarshal response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		return &Error{Errors: gqlResp.Errors}
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrStatusNotOK, resp.StatusCode)
	}

	if out == nil || len(gqlResp.Data) == 0 {
		return nil
	}

	if err = json.Unmarshal(gqlResp.Data, out); err != nil {
		return fmt.Errorf("can't unmarshal response data: %w", err)
	}

	return nil
}
