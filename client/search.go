package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/marceloslacerda/glpigo/protocol"
)

// GetSearchOptions lists the search options of the provided itemtype. These provide
// the field ids needed by SearchItems. Responses are cached per itemtype for a while,
// since the option table only changes when the server configuration does.
func (c *Client) GetSearchOptions(itemtype string) (protocol.SearchOptions, error) {
	item, err := c.options.Fetch("searchoptions/"+itemtype, searchOptionsTTL, func() (interface{}, error) {
		return c.fetchSearchOptions(itemtype)
	})
	if err != nil {
		return nil, err
	}
	return item.Value().(protocol.SearchOptions), nil
}

func (c *Client) fetchSearchOptions(itemtype string) (protocol.SearchOptions, error) {
	// The raw response mixes numeric option keys with group caption strings; only the
	// numeric keys describe options.
	var raw map[string]json.RawMessage
	if err := c.getJSON("listSearchOptions/"+itemtype, nil, &raw); err != nil {
		return nil, err
	}

	options := make(protocol.SearchOptions, len(raw))
	for key, val := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		var opt protocol.SearchOption
		if err := json.Unmarshal(val, &opt); err != nil {
			return nil, fmt.Errorf("could not decode search option %s of %s: %v", key, itemtype, err)
		}
		options[id] = opt
	}
	return options, nil
}

// SearchItems queries the GLPI search engine, combining the request criteria to
// retrieve rows of the specified itemtype. Use AllAssets as the itemtype to search
// every asset type at once.
func (c *Client) SearchItems(itemtype string, req protocol.SearchRequest) (protocol.SearchResultset, error) {
	params := url.Values{}
	req.EncodeParams(params)

	var ret protocol.SearchResultset
	if err := c.getJSON("search/"+itemtype, params, &ret); err != nil {
		return protocol.SearchResultset{}, err
	}
	return ret, nil
}
