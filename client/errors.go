package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/marceloslacerda/glpigo/util"
)

// Sentinel errors for the session lifecycle.
var (
	// ErrNoSession is returned when a method needing a session token is called before
	// InitSession.
	ErrNoSession = errors.New("client: session was not initiated, call InitSession first")
	// ErrSessionAlreadyInit is returned when InitSession is called twice.
	ErrSessionAlreadyInit = errors.New("client: session already initialized")
	// ErrSessionExpired is returned when the server no longer recognizes the session
	// token.
	ErrSessionExpired = errors.New("client: session expired")
	// ErrNoRange is returned by ResponseRange when the previous call did not return a
	// pagination window.
	ErrNoRange = errors.New("client: the previous request did not return a range")
)

// RequestError is returned when the API answers with an HTTP error status. It keeps
// enough of the exchange for the caller to debug the failure.
type RequestError struct {
	// StatusCode is the HTTP response code.
	StatusCode int
	// Method is the HTTP method of the request.
	Method string
	// URL is the final request URL.
	URL string
	// Message is the response body, usually a JSON [code, description] pair.
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("glpi request %s %s failed with %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
}

// decodeJSONBody decodes resp.Body into out, consuming the body. Servers behind
// misconfigured proxies answer HTML error pages with a 200, so the content type is
// checked before decoding.
func decodeJSONBody(resp *http.Response, out interface{}) error {
	if ct := resp.Header.Get("Content-Type"); ct != "" && !util.IsApplicationJSON(ct) {
		return fmt.Errorf("expected a JSON response, got %s", ct)
	}
	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// errorFromResponse drains resp.Body into a RequestError.
func errorFromResponse(resp *http.Response) error {
	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return err
	}
	method := ""
	url := ""
	if resp.Request != nil {
		method = resp.Request.Method
		url = resp.Request.URL.String()
	}
	return &RequestError{
		StatusCode: resp.StatusCode,
		Method:     method,
		URL:        url,
		Message:    string(body),
	}
}
