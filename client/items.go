package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"

	"github.com/marceloslacerda/glpigo/protocol"
)

// GetItem returns an instance of itemtype identified by id and its associated fields.
// Documents and user pictures are retrieved with their respective methods.
func (c *Client) GetItem(itemtype string, id int, req protocol.GetItemRequest) (protocol.Item, error) {
	params := url.Values{}
	req.EncodeParams(params)

	var item protocol.Item
	action := itemtype + "/" + strconv.Itoa(id)
	if err := c.getJSON(action, params, &item); err != nil {
		if reqErr, ok := err.(*RequestError); ok && reqErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s with id=%d was not found", itemtype, id)
		}
		return nil, err
	}
	return item, nil
}

// GetManyItems returns a set of items of the given itemtype. The pagination window of
// the response is available through ResponseRange.
func (c *Client) GetManyItems(itemtype string, req protocol.ListRequest) ([]protocol.Item, error) {
	params := url.Values{}
	req.EncodeParams(params)

	var items []protocol.Item
	if err := c.getJSON(itemtype+"/", params, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetSubItems returns items of subItemtype attached to the item identified by itemtype
// and id, e.g. the Logs of a User.
func (c *Client) GetSubItems(itemtype string, id int, subItemtype string, req protocol.ListRequest) ([]protocol.Item, error) {
	params := url.Values{}
	req.EncodeParams(params)

	var items []protocol.Item
	action := itemtype + "/" + strconv.Itoa(id) + "/" + subItemtype
	if err := c.getJSON(action, params, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddItems creates one or several items of the given itemtype. The server is highly
// permissive: references to rows that do not exist or unknown fields fail silently, so
// callers should check the per-item results.
func (c *Client) AddItems(itemtype string, items ...protocol.Item) (protocol.ItemResults, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("AddItems requires at least one item")
	}
	body := map[string]interface{}{"input": inputPayload(items)}

	resp, err := c.doSession("POST", itemtype, nil, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errorFromResponse(resp)
	}
	return decodeItemResults(resp)
}

// UpdateItems updates the attributes of several items. Each item must carry an id
// field; field names must be lowercase.
func (c *Client) UpdateItems(itemtype string, items ...protocol.Item) (protocol.ItemResults, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("UpdateItems requires at least one item")
	}
	body := map[string]interface{}{"input": inputPayload(items)}

	resp, err := c.doSession("PATCH", itemtype, nil, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp)
	}
	return decodeItemResults(resp)
}

// DeleteItems deletes the items identified by ids. With purge set, items skip the
// trash bin and are removed immediately. With history unset, the deletion is not
// recorded in the item history.
func (c *Client) DeleteItems(itemtype string, ids []int, purge bool, history bool) (protocol.ItemResults, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("DeleteItems requires at least one id")
	}
	input := make([]map[string]int, 0, len(ids))
	for _, id := range ids {
		input = append(input, map[string]int{"id": id})
	}
	body := map[string]interface{}{"input": input}
	if purge {
		body["force_purge"] = true
	}
	if !history {
		body["history"] = false
	}

	resp, err := c.doSession("DELETE", itemtype, nil, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// 207 signals partial success; per-item outcomes are in the body either way.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusMultiStatus {
		return nil, errorFromResponse(resp)
	}
	return decodeItemResults(resp)
}

// inputPayload unwraps a single-element batch, which the API answers with a single
// object instead of a list.
func inputPayload(items []protocol.Item) interface{} {
	if len(items) == 1 {
		return items[0]
	}
	return items
}

// decodeItemResults reads a response that is either a single result object or a list
// of them.
func decodeItemResults(resp *http.Response) (protocol.ItemResults, error) {
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("glpi produced a blank response")
	}

	if trimmed[0] == '[' {
		var results protocol.ItemResults
		if err := json.Unmarshal(trimmed, &results); err != nil {
			return nil, fmt.Errorf("could not decode results: %v", err)
		}
		return results, nil
	}
	var single protocol.ItemResult
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, fmt.Errorf("could not decode result: %v", err)
	}
	return protocol.ItemResults{single}, nil
}
