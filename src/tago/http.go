package tago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/maddiesch/serverless"
)

type httpStack struct {
	client *http.Client
	logger *log.Logger
}

func newHTTPStack(client *http.Client, timeout time.Duration) *httpStack {
	if client == nil {
		client = &http.Client{
			Timeout: timeout,
		}
	}
	return &httpStack{
		client: client,
		logger: serverless.GetLogger(),
	}
}

// APIError is returned when the platform rejects a request.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tago: request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("tago: %s (status %d)", e.Message, e.StatusCode)
}

// envelope is the wrapper every platform response comes in.
type envelope struct {
	Status  bool            `json:"status"`
	Result  json.RawMessage `json:"result"`
	Message string          `json:"message"`
}

func (s *httpStack) newRequest(ctx context.Context, method string, uri *url.URL, token string, body interface{}) (*http.Request, error) {
	var payload io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewBuffer(bodyBytes)
	}

	request, err := http.NewRequest(method, uri.String(), payload)
	if err != nil {
		return nil, err
	}
	request = request.WithContext(ctx)
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Authorization", token)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	return request, nil
}

// do sends the request and decodes the envelope's result into out (when not nil).
func (s *httpStack) do(r *http.Request, out interface{}) error {
	s.logger.Printf("SUB-REQUEST: [%s] %s", r.Method, r.URL.Path)

	response, err := s.client.Do(r)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return err
	}

	env := envelope{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &env); err != nil && response.StatusCode >= 200 && response.StatusCode < 300 {
			return err
		}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return &APIError{StatusCode: response.StatusCode, Message: env.Message}
	}
	if !env.Status {
		return &APIError{StatusCode: response.StatusCode, Message: env.Message}
	}

	if out == nil || len(env.Result) == 0 {
		return nil
	}
	return json.Unmarshal(env.Result, out)
}
