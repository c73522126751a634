package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/marceloslacerda/glpigo/protocol"
)

// UploadDocument uploads a document to GLPI. name is the human readable document name
// and filename the name the stored file should carry; when name is empty it defaults
// to filename. The reader supplies the file contents.
func (c *Client) UploadDocument(name string, filename string, r io.Reader) (ret protocol.ItemResult, err error) {
	if c.sessionToken == "" {
		return ret, ErrNoSession
	}
	if r == nil {
		return ret, fmt.Errorf("you must provide an io.Reader")
	}
	if filename == "" {
		return ret, fmt.Errorf("you must provide a filename")
	}
	if name == "" {
		name = filename
	}

	manifest, err := json.Marshal(map[string]interface{}{
		"input": map[string]interface{}{
			"name":      name,
			"_filename": []string{filename},
		},
	})
	if err != nil {
		return ret, err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writePartField(writer, "uploadManifest", string(manifest), "application/json"); err != nil {
		return ret, err
	}
	part, err := writer.CreateFormFile("filename[0]", strings.TrimSpace(filename))
	if err != nil {
		return ret, err
	}
	if _, err = io.Copy(part, r); err != nil {
		return ret, err
	}
	if err := writer.Close(); err != nil {
		return ret, err
	}

	httpReq, err := http.NewRequest("POST", c.methodURL("Document"), &body)
	if err != nil {
		return ret, err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("App-Token", c.Conf.AppToken)
	httpReq.Header.Set("Session-Token", c.sessionToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ret, err
	}
	defer resp.Body.Close()
	c.lastHeader = resp.Header

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return ret, errorFromResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&ret); err != nil {
		return ret, fmt.Errorf("could not decode upload response: %v", err)
	}
	return ret, nil
}

// DownloadDocument returns the file stream of the Document identified by id. The
// caller must close the returned ReadCloser.
func (c *Client) DownloadDocument(id int) (io.ReadCloser, error) {
	if c.sessionToken == "" {
		return nil, ErrNoSession
	}

	uri := c.methodURL("Document/" + strconv.Itoa(id))
	req, err := http.NewRequest("GET", uri, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("App-Token", c.Conf.AppToken)
	req.Header.Set("Session-Token", c.sessionToken)
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	c.lastHeader = resp.Header

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, errorFromResponse(resp)
	}
	return resp.Body, nil
}

// DownloadUserPicture returns the profile picture of the User identified by id.
func (c *Client) DownloadUserPicture(id int) ([]byte, error) {
	resp, err := c.doSession("GET", "User/"+strconv.Itoa(id)+"/Picture", nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, fmt.Errorf("user %d doesn't have a profile picture", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp)
	}
	return ioutil.ReadAll(resp.Body)
}

// writePartField writes a MIME part with an explicit content type.
func writePartField(w *multipart.Writer, fieldname, value, contentType string) error {
	p, err := createFormField(w, fieldname, contentType)
	if err != nil {
		return err
	}
	_, err = p.Write([]byte(value))
	return err
}

// quoteEscaper replaces some special characters in a given string.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// createFormField creates the MIME field for a POST request.
func createFormField(w *multipart.Writer, fieldname, contentType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"`, quoteEscaper.Replace(fieldname)))
	h.Set("Content-Type", contentType)
	return w.CreatePart(h)
}
