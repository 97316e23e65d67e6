package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// testClient drives the router in-process.
type testClient struct {
	router *gin.Engine
	token  string
	cookie *http.Cookie
}

func newTestClient(router *gin.Engine, token string) *testClient {
	return &testClient{router: router, token: token}
}

type testResponse struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
	Cookies    []*http.Cookie
}

func (c *testClient) do(method, path string, body any) (*testResponse, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	return &testResponse{
		StatusCode: w.Code,
		Body:       w.Body.Bytes(),
		Headers:    w.Header(),
		Cookies:    w.Result().Cookies(),
	}, nil
}

func (c *testClient) GET(path string) (*testResponse, error) {
	return c.do(http.MethodGet, path, nil)
}

func (c *testClient) POST(path string, body any) (*testResponse, error) {
	return c.do(http.MethodPost, path, body)
}

func (r *testResponse) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

func (r *testResponse) ErrorMessage() string {
	var errResp map[string]any
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return string(r.Body)
	}
	if msg, ok := errResp["error"].(string); ok {
		return msg
	}
	return string(r.Body)
}
