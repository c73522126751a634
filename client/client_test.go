package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marceloslacerda/glpigo/protocol"
)

const (
	testAppToken  = "app-token-123"
	testUserToken = "user-token-456"
	testSession   = "session-789"
)

// jsonHandler marks responses as JSON. The real API sets the header on every
// answer, while the terse handlers in these tests would otherwise be sniffed
// as text/plain and rejected by the client.
func jsonHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(jsonHandler(handler))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		Remote:    srv.URL,
		AppToken:  testAppToken,
		UserToken: testUserToken,
	})
	require.NoError(t, err)
	return c
}

// sessionMux returns a mux preloaded with a working initSession handler.
func sessionMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/apirest.php/initSession", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("App-Token") != testAppToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("Authorization") != "user_token "+testUserToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprintf(w, `{"session_token": %q}`, testSession)
	})
	return mux
}

func initSession(t *testing.T, c *Client) {
	t.Helper()
	require.NoError(t, c.InitSession())
}

func TestInitAndKillSession(t *testing.T) {
	mux := sessionMux(t)
	mux.HandleFunc("/apirest.php/killSession", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Session-Token") != testSession {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `["ERROR_SESSION_TOKEN_INVALID", "session_token seems invalid"]`)
			return
		}
		fmt.Fprint(w, `[]`)
	})
	c := newTestClient(t, mux)

	_, err := c.SessionToken()
	assert.Equal(t, ErrNoSession, err)

	initSession(t, c)
	token, err := c.SessionToken()
	require.NoError(t, err)
	assert.Equal(t, testSession, token)

	assert.Equal(t, ErrSessionAlreadyInit, c.InitSession())

	require.NoError(t, c.KillSession())
	_, err = c.SessionToken()
	assert.Equal(t, ErrNoSession, err)
}

func TestKillSessionExpired(t *testing.T) {
	mux := sessionMux(t)
	mux.HandleFunc("/apirest.php/killSession", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `["ERROR_SESSION_TOKEN_INVALID", "session_token seems invalid"]`)
	})
	c := newTestClient(t, mux)
	initSession(t, c)

	assert.Equal(t, ErrSessionExpired, c.KillSession())
}

func TestGetItem(t *testing.T) {
	mux := sessionMux(t)
	mux.HandleFunc("/apirest.php/Computer/71", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testSession, r.Header.Get("Session-Token"))
		assert.Equal(t, "true", r.URL.Query().Get("with_softwares"))
		fmt.Fprint(w, `{"id": 71, "name": "adelaunay-ThinkPad-Edge-E320", "serial": "12345", "entities_id": 0}`)
	})
	mux.HandleFunc("/apirest.php/Computer/999", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `["ERROR_ITEM_NOT_FOUND", "item not found"]`)
	})
	c := newTestClient(t, mux)
	initSession(t, c)

	item, err := c.GetItem("Computer", 71, protocol.GetItemRequest{WithSoftwares: true})
	require.NoError(t, err)
	assert.Equal(t, 71, item.ID())
	assert.Equal(t, "adelaunay-ThinkPad-Edge-E320", item.Name())

	_, err = c.GetItem("Computer", 999, protocol.GetItemRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "was not found")
}

func TestGetManyItemsAndResponseRange(t *testing.T) {
	mux := sessionMux(t)
	mux.HandleFunc("/apirest.php/Computer/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0-10", r.URL.Query().Get("range"))
		w.Header().Set("Content-Range", "0-10/57")
		w.Header().Set("Accept-Range", "Computer 991")
		w.WriteHeader(http.StatusPartialContent)
		fmt.Fprint(w, `[{"id": 1, "name": "computer1"}, {"id": 2, "name": "computer2"}]`)
	})
	c := newTestClient(t, mux)
	initSession(t, c)

	_, err := c.ResponseRange()
	assert.Error(t, err)

	items, err := c.GetManyItems("Computer", protocol.ListRequest{Range: &protocol.ItemRange{Start: 0, End: 10}})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "computer1", items[0].Name())

	rr, err := c.ResponseRange()
	require.NoError(t, err)
	assert.Equal(t, 57, rr.Count)
	assert.Equal(t, 991, rr.Max)
}

func TestGetSubItems(t *testing.T) {
	mux := sessionMux(t)
	mux.HandleFunc("/apirest.php/User/2/Log", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 22117, "itemtype": "User"}]`)
	})
	c := newTestClient(t, mux)
	initSession(t, c)

	items, err := c.GetSubItems("User", 2, "Log", protocol.ListRequest{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 22117, items[0].ID())
}

func TestSearchItems(t *testing.T) {
	mux := sessionMux(t)
	mux.HandleFunc("/apirest.php/search/Monitor", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "31", q.Get("criteria[0][field]"))
		assert.Equal(t, "equals", q.Get("criteria[0][searchtype]"))
		assert.Equal(t, "1", q.Get("criteria[0][value]"))
		fmt.Fprint(w, `{"totalcount": "2", "count": 2, "data": [{"1": "W2242"}, {"1": "W2252"}]}`)
	})
	c := newTestClient(t, mux)
	initSession(t, c)

	rs, err := c.SearchItems("Monitor", protocol.SearchRequest{
		Criteria: []protocol.SearchCriterion{{Field: 31, SearchType: protocol.SearchEquals, Value: "1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rs.TotalCount.Int())
	require.Len(t, rs.Data, 2)
}

func TestGetSearchOptionsCached(t *testing.T) {
	fetches := 0
	mux := sessionMux(t)
	mux.HandleFunc("/apirest.php/listSearchOptions/Computer", func(w http.ResponseWriter, r *http.Request) {
		fetches++
		fmt.Fprint(w, `{
			"common": "Characteristics",
			"1": {"name": "Name", "table": "glpi_computers", "field": "name", "uid": "Computer.name"},
			"2": {"name": "ID", "table": "glpi_computers", "field": "id", "uid": "Computer.id"}
		}`)
	})
	c := newTestClient(t, mux)
	initSession(t, c)

	opts, err := c.GetSearchOptions("Computer")
	require.NoError(t, err)
	require.Len(t, opts, 2)
	assert.Equal(t, "Computer.name", opts[1].UID)

	_, err = c.GetSearchOptions("Computer")
	require.NoError(t, err)
	assert.Equal(t, 1, fetches, "second call should hit the cache")
}

func TestAddUpdateDeleteItems(t *testing.T) {
	mux := sessionMux(t)
	mux.HandleFunc("/apirest.php/Software", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		input, ok := body["input"]
		require.True(t, ok)

		switch r.Method {
		case "POST":
			// single input arrives as an object, not a list
			assert.Equal(t, byte('{'), input[0])
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id": 4, "message": "Item Successfully Added: my software"}`)
		case "PATCH":
			assert.Equal(t, byte('['), input[0])
			fmt.Fprint(w, `[{"id": 8, "message": ""}, {"id": 9, "message": ""}]`)
		case "DELETE":
			fmt.Fprint(w, `[{"42": true, "message": ""}]`)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	c := newTestClient(t, mux)
	initSession(t, c)

	added, err := c.AddItems("Software", protocol.Item{"name": "my software", "location": 1})
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, 4, added[0].ID)
	assert.True(t, added.AllOK())

	updated, err := c.UpdateItems("Software",
		protocol.Item{"id": 8, "comment": "a"},
		protocol.Item{"id": 9, "comment": "b"},
	)
	require.NoError(t, err)
	assert.Len(t, updated, 2)

	deleted, err := c.DeleteItems("Software", []int{42}, true, false)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, 42, deleted[0].ID)
	assert.True(t, deleted[0].OK)
}

func TestChangeActiveEntities(t *testing.T) {
	mux := sessionMux(t)
	mux.HandleFunc("/apirest.php/changeActiveEntities", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["entities_id"] != 1 {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `["ERROR", "Invalid entity"]`)
			return
		}
		fmt.Fprint(w, "true")
	})
	c := newTestClient(t, mux)
	initSession(t, c)

	require.NoError(t, c.ChangeActiveEntities(1))
	err := c.ChangeActiveEntities(999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid entity")
}

func TestGetMyProfilesAndEntities(t *testing.T) {
	mux := sessionMux(t)
	mux.HandleFunc("/apirest.php/getMyProfiles", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"myprofiles": [{"id": 4, "name": "Super-Admin", "entities": [{"id": 0, "is_recursive": true}]}]}`)
	})
	mux.HandleFunc("/apirest.php/getMyEntities", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("is_recursive"))
		fmt.Fprint(w, `{"myentities": [{"id": 71, "name": "my_entity"}]}`)
	})
	c := newTestClient(t, mux)
	initSession(t, c)

	profiles, err := c.GetMyProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Super-Admin", profiles[0].Name)
	require.Len(t, profiles[0].Entities, 1)
	assert.True(t, profiles[0].Entities[0].IsRecursive)

	entities, err := c.GetMyEntities(true)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, 71, entities[0].ID.Int())
}

func TestRequiresSession(t *testing.T) {
	c := newTestClient(t, sessionMux(t))

	_, err := c.GetItem("Computer", 1, protocol.GetItemRequest{})
	assert.Equal(t, ErrNoSession, err)
	_, err = c.DownloadDocument(1)
	assert.Equal(t, ErrNoSession, err)
	assert.Equal(t, ErrNoSession, c.KillSession())
}
