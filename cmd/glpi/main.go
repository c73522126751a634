package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/marceloslacerda/glpigo/client"
	"github.com/marceloslacerda/glpigo/config"
	"github.com/marceloslacerda/glpigo/protocol"
)

var (
	conf     = flag.String("conf", "", "path to yaml config, GLPI_* env vars override")
	cmd      = flag.String("cmd", "session", "command to run: session, item, search, add, upload, download")
	itemType = flag.String("itemtype", "Computer", "GLPI item type to operate on")
	id       = flag.Int("id", 0, "item id for item/download commands")
	query    = flag.String("query", "", "field=value criterion for search (field is the numeric search option id), input JSON for add")
	input    = flag.String("input", "", "input file for upload")
	output   = flag.String("output", "", "output file for download, defaults to stdout")
	verbose  = flag.Bool("verbose", false, "log requests")
)

const (
	cmdSession  = "session"
	cmdItem     = "item"
	cmdSearch   = "search"
	cmdAdd      = "add"
	cmdUpload   = "upload"
	cmdDownload = "download"
)

func main() {
	flag.Parse()

	c, err := newSessionClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer c.KillSession()

	switch *cmd {
	case cmdSession:
		err = sessionRoutine(c)
	case cmdItem:
		err = itemRoutine(c)
	case cmdSearch:
		err = searchRoutine(c)
	case cmdAdd:
		err = addRoutine(c)
	case cmdUpload:
		err = uploadRoutine(c)
	case cmdDownload:
		err = downloadRoutine(c)
	default:
		err = fmt.Errorf("unrecognized command: %s", *cmd)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSessionClient() (*client.Client, error) {
	appConf, err := config.NewAppConfiguration(*conf)
	if err != nil {
		return nil, err
	}
	c, err := client.NewClient(appConf.API)
	if err != nil {
		return nil, err
	}
	c.Verbose = *verbose
	if err := c.InitSession(); err != nil {
		return nil, fmt.Errorf("could not open session: %v", err)
	}
	return c, nil
}

// sessionRoutine prints who the token authenticates as.
func sessionRoutine(c *client.Client) error {
	session, err := c.GetFullSession()
	if err != nil {
		return err
	}
	return printJSON(session)
}

func itemRoutine(c *client.Client) error {
	item, err := c.GetItem(*itemType, *id, protocol.GetItemRequest{})
	if err != nil {
		return err
	}
	return printJSON(item)
}

func searchRoutine(c *client.Client) error {
	req := protocol.SearchRequest{}
	if *query != "" {
		criterion, err := parseCriterion(*query)
		if err != nil {
			return err
		}
		req.Criteria = []protocol.SearchCriterion{criterion}
	}
	results, err := c.SearchItems(*itemType, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%d of %d results\n", results.Count.Int(), results.TotalCount.Int())
	return printJSON(results.Data)
}

// parseCriterion turns a field=value flag into a contains criterion. The field half
// is the numeric search option id of the itemtype, not a column name.
func parseCriterion(query string) (protocol.SearchCriterion, error) {
	field, value, found := strings.Cut(query, "=")
	if !found {
		return protocol.SearchCriterion{}, fmt.Errorf("query must look like field=value, got %q", query)
	}
	fieldID, err := strconv.Atoi(field)
	if err != nil {
		return protocol.SearchCriterion{}, fmt.Errorf("query field must be a numeric search option id, got %q", field)
	}
	return protocol.SearchCriterion{
		Field:      fieldID,
		SearchType: protocol.SearchContains,
		Value:      value,
	}, nil
}

func addRoutine(c *client.Client) error {
	if *query == "" {
		return fmt.Errorf("add requires -query with an input JSON object")
	}
	var item protocol.Item
	if err := json.Unmarshal([]byte(*query), &item); err != nil {
		return fmt.Errorf("parsing input JSON: %v", err)
	}
	results, err := c.AddItems(*itemType, item)
	if err != nil {
		return err
	}
	return printJSON(results)
}

func uploadRoutine(c *client.Client) error {
	if *input == "" {
		return fmt.Errorf("upload requires -input")
	}
	f, err := os.Open(*input)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := c.UploadDocument(documentName(*input), *input, f)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func downloadRoutine(c *client.Client) error {
	if *id == 0 {
		return fmt.Errorf("download requires -id")
	}
	body, err := c.DownloadDocument(*id)
	if err != nil {
		return err
	}
	defer body.Close()

	out := os.Stdout
	if *output != "" {
		out, err = os.Create(*output)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	n, err := io.Copy(out, body)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d bytes\n", n)
	return nil
}

func documentName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func printJSON(v interface{}) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
