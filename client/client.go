package client

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/karlseguin/ccache/v2"

	"github.com/marceloslacerda/glpigo/protocol"
)

// searchOptionsTTL bounds how long listSearchOptions responses are reused. Options only
// change when plugins are installed, so a generous window is safe.
const searchOptionsTTL = 15 * time.Minute

// GLPI defines operations for our client.
type GLPI interface {
	InitSession() error
	KillSession() error
	SessionToken() (string, error)
	GetMyProfiles() ([]protocol.Profile, error)
	GetActiveProfile() (protocol.Profile, error)
	ChangeActiveProfile(profileID int) error
	GetMyEntities(recursive bool) ([]protocol.Entity, error)
	GetActiveEntities() (protocol.ActiveEntities, error)
	ChangeActiveEntities(entityID int) error
	GetFullSession() (map[string]interface{}, error)
	GetGlpiConfig() (map[string]interface{}, error)
	GetItem(itemtype string, id int, req protocol.GetItemRequest) (protocol.Item, error)
	GetManyItems(itemtype string, req protocol.ListRequest) ([]protocol.Item, error)
	GetSubItems(itemtype string, id int, subItemtype string, req protocol.ListRequest) ([]protocol.Item, error)
	GetSearchOptions(itemtype string) (protocol.SearchOptions, error)
	SearchItems(itemtype string, req protocol.SearchRequest) (protocol.SearchResultset, error)
	AddItems(itemtype string, items ...protocol.Item) (protocol.ItemResults, error)
	UpdateItems(itemtype string, items ...protocol.Item) (protocol.ItemResults, error)
	DeleteItems(itemtype string, ids []int, purge bool, history bool) (protocol.ItemResults, error)
	UploadDocument(name string, filename string, r io.Reader) (protocol.ItemResult, error)
	DownloadDocument(id int) (io.ReadCloser, error)
	DownloadUserPicture(id int) ([]byte, error)
	ResponseRange() (protocol.ResponseRange, error)
}

// Client implements GLPI.
type Client struct {
	httpClient *http.Client
	url        string
	// Verbose will print extra debug information if true.
	Verbose bool
	Conf    Config

	sessionToken string
	lastHeader   http.Header
	options      *ccache.Cache
}

// Verify that Client implements GLPI.
var _ GLPI = (*Client)(nil)

// Config defines the bare minimum that must be statically configured for a Client.
type Config struct {
	// Remote is the URL of the GLPI instance: https://{host}/{path}. The REST entry
	// point apirest.php is appended to this string.
	Remote string `yaml:"remote"`
	// AppToken is the API client application token, sent as the App-Token header on
	// every request.
	AppToken string `yaml:"app_token"`
	// UserToken is the per-user API token used to open sessions.
	UserToken string `yaml:"user_token"`
	// Trust is an optional path to a PEM CA bundle for the server certificate.
	Trust string `yaml:"trust"`
	// SkipVerify disables server certificate verification. Prefer setting Trust.
	SkipVerify bool `yaml:"insecure_skip_verify"`
}

// NewClient instantiates a new Client that implements GLPI. This client can be used to
// perform CRUD and search operations on a running GLPI instance.
//
// The returned client has no session yet; call InitSession before other methods.
func NewClient(conf Config) (*Client, error) {
	if conf.Remote == "" {
		return nil, fmt.Errorf("client config must set Remote")
	}

	tlsConfig := &tls.Config{InsecureSkipVerify: conf.SkipVerify}
	if conf.Trust != "" {
		trust, err := ioutil.ReadFile(conf.Trust)
		if err != nil {
			return nil, fmt.Errorf("while opening trust file %s: %v", conf.Trust, err)
		}
		caPool := x509.NewCertPool()
		if !caPool.AppendCertsFromPEM(trust) {
			return nil, fmt.Errorf("no certificates listed in trust file %s", conf.Trust)
		}
		tlsConfig.RootCAs = caPool
	}

	var c http.Client
	c.Transport = &http.Transport{TLSClientConfig: tlsConfig}

	return &Client{
		httpClient: &c,
		url:        strings.TrimRight(conf.Remote, "/"),
		Conf:       conf,
		options:    ccache.New(ccache.Configure()),
	}, nil
}

// GetHttpClient exposes the underlying http.Client.
func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

// InitSession requests a session token to be used by the other methods.
func (c *Client) InitSession() error {
	if c.sessionToken != "" {
		return ErrSessionAlreadyInit
	}

	header := http.Header{}
	header.Set("Authorization", "user_token "+c.Conf.UserToken)
	resp, err := c.do("GET", "initSession", nil, nil, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errorFromResponse(resp)
	}

	var ret struct {
		SessionToken string `json:"session_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ret); err != nil {
		return fmt.Errorf("could not decode initSession response: %v", err)
	}
	if ret.SessionToken == "" {
		return fmt.Errorf("initSession returned an empty session token")
	}
	c.sessionToken = ret.SessionToken
	return nil
}

// KillSession destroys the session identified by the current session token.
func (c *Client) KillSession() error {
	if c.sessionToken == "" {
		return ErrNoSession
	}
	token := c.sessionToken
	c.sessionToken = ""

	header := http.Header{}
	header.Set("Session-Token", token)
	resp, err := c.do("GET", "killSession", nil, nil, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// The server names an expired token explicitly; anything else is a plain error.
		body, _ := ioutil.ReadAll(resp.Body)
		var msg []string
		if json.Unmarshal(body, &msg) == nil && len(msg) > 0 && msg[0] == "ERROR_SESSION_TOKEN_INVALID" {
			return ErrSessionExpired
		}
		return &RequestError{StatusCode: resp.StatusCode, Method: "GET", URL: c.methodURL("killSession"), Message: string(body)}
	}
	if resp.StatusCode != http.StatusOK {
		return errorFromResponse(resp)
	}
	return nil
}

// SessionToken returns the identification token of the current connection.
func (c *Client) SessionToken() (string, error) {
	if c.sessionToken == "" {
		return "", ErrNoSession
	}
	return c.sessionToken, nil
}

// ResponseRange returns the pagination window of the previous API call. It is set by
// methods that return multiple items.
func (c *Client) ResponseRange() (protocol.ResponseRange, error) {
	if c.lastHeader == nil {
		return protocol.ResponseRange{}, ErrNoRange
	}
	contentRange := c.lastHeader.Get("Content-Range")
	acceptRange := c.lastHeader.Get("Accept-Range")
	if contentRange == "" || acceptRange == "" {
		return protocol.ResponseRange{}, ErrNoRange
	}
	return protocol.ParseResponseRange(contentRange, acceptRange)
}

func (c *Client) methodURL(action string) string {
	return c.url + "/apirest.php/" + action
}

// do performs a request against an API action. A nil body sends no payload; otherwise
// body is marshalled as JSON. Extra headers are applied on top of the App-Token header.
// The response headers are recorded for ResponseRange.
func (c *Client) do(method string, action string, params url.Values, body interface{}, header http.Header) (*http.Response, error) {
	var req *http.Request
	var err error

	uri := c.methodURL(action)
	if len(params) > 0 {
		uri += "?" + params.Encode()
	}

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("could not marshal json body: %v", err)
		}
		req, err = http.NewRequest(method, uri, bytes.NewBuffer(jsonBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequest(method, uri, nil)
		if err != nil {
			return nil, err
		}
	}

	req.Header.Set("App-Token", c.Conf.AppToken)
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if c.Verbose {
		data, _ := httputil.DumpResponse(resp, true)
		fmt.Printf("%s", string(data))
	}
	c.lastHeader = resp.Header
	return resp, nil
}

// doSession performs a request that requires an open session.
func (c *Client) doSession(method string, action string, params url.Values, body interface{}) (*http.Response, error) {
	if c.sessionToken == "" {
		return nil, ErrNoSession
	}
	header := http.Header{}
	header.Set("Session-Token", c.sessionToken)
	return c.do(method, action, params, body, header)
}

// getJSON performs a session GET and decodes the JSON response into out.
func (c *Client) getJSON(action string, params url.Values, out interface{}) error {
	resp, err := c.doSession("GET", action, params, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Partial content is how the server reports a bounded range.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return errorFromResponse(resp)
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("glpi produced a blank response for %s", action)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("could not decode %s response: %v", action, err)
	}
	return nil
}
