package client

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/marceloslacerda/glpigo/protocol"
)

// GetMyProfiles returns all the profiles associated with the logged user.
func (c *Client) GetMyProfiles() ([]protocol.Profile, error) {
	var ret struct {
		MyProfiles []protocol.Profile `json:"myprofiles"`
	}
	if err := c.getJSON("getMyProfiles", nil, &ret); err != nil {
		return nil, err
	}
	return ret.MyProfiles, nil
}

// GetActiveProfile returns the profile the session currently operates under.
func (c *Client) GetActiveProfile() (protocol.Profile, error) {
	var ret struct {
		ActiveProfile protocol.Profile `json:"active_profile"`
	}
	if err := c.getJSON("getActiveProfile", nil, &ret); err != nil {
		return protocol.Profile{}, err
	}
	return ret.ActiveProfile, nil
}

// ChangeActiveProfile switches the session to the profile identified by profileID.
// Use GetMyProfiles to obtain the possible profiles.
func (c *Client) ChangeActiveProfile(profileID int) error {
	body := map[string]interface{}{"profiles_id": profileID}
	resp, err := c.doSession("POST", "changeActiveProfile", nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("profile %d not found", profileID)
	}
	if resp.StatusCode != http.StatusOK {
		return errorFromResponse(resp)
	}
	return nil
}

// GetMyEntities returns all the entities of the logged user. With recursive set, child
// entities of the granted ones are included.
func (c *Client) GetMyEntities(recursive bool) ([]protocol.Entity, error) {
	params := url.Values{}
	if recursive {
		params.Set("is_recursive", "true")
	}
	var ret struct {
		MyEntities []protocol.Entity `json:"myentities"`
	}
	if err := c.getJSON("getMyEntities", params, &ret); err != nil {
		return nil, err
	}
	return ret.MyEntities, nil
}

// GetActiveEntities returns the entity scope of the current session.
func (c *Client) GetActiveEntities() (protocol.ActiveEntities, error) {
	var ret struct {
		ActiveEntity protocol.ActiveEntities `json:"active_entity"`
	}
	if err := c.getJSON("getActiveEntities", nil, &ret); err != nil {
		return protocol.ActiveEntities{}, err
	}
	return ret.ActiveEntity, nil
}

// ChangeActiveEntities switches the session scope to entityID. Use GetMyEntities to
// know the viable entities.
func (c *Client) ChangeActiveEntities(entityID int) error {
	body := map[string]interface{}{"entities_id": entityID}
	resp, err := c.doSession("POST", "changeActiveEntities", nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// The server reports an unknown entity as a bad request with a message pair.
	if resp.StatusCode == http.StatusBadRequest {
		var msg []string
		if decodeErr := decodeJSONBody(resp, &msg); decodeErr == nil && len(msg) > 1 {
			return fmt.Errorf("changeActiveEntities: %s", msg[1])
		}
		return errorFromResponse(resp)
	}
	if resp.StatusCode != http.StatusOK {
		return errorFromResponse(resp)
	}
	return nil
}

// GetFullSession returns the server-side session state.
func (c *Client) GetFullSession() (map[string]interface{}, error) {
	var ret struct {
		Session map[string]interface{} `json:"session"`
	}
	if err := c.getJSON("getFullSession", nil, &ret); err != nil {
		return nil, err
	}
	return ret.Session, nil
}

// GetGlpiConfig returns the instance configuration.
func (c *Client) GetGlpiConfig() (map[string]interface{}, error) {
	var ret struct {
		CfgGlpi map[string]interface{} `json:"cfg_glpi"`
	}
	if err := c.getJSON("getGlpiConfig", nil, &ret); err != nil {
		return nil, err
	}
	return ret.CfgGlpi, nil
}
