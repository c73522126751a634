package protocol

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ResponseRange describes the pagination window of a list or search response, as
// reported by the Content-Range and Accept-Range response headers.
type ResponseRange struct {
	// Start is the index of the first item returned.
	Start int
	// End is the index of the last item returned.
	End int
	// Count is the total number of items available for the query.
	Count int
	// Max is the maximum page size the server accepts for this itemtype.
	Max int
}

func (r ResponseRange) String() string {
	return fmt.Sprintf("%d-%d/%d Max: %d", r.Start, r.End, r.Count, r.Max)
}

var contentRangeRx = regexp.MustCompile(`^(\d+)-(\d+)/(\d+)$`)

// ParseResponseRange builds a ResponseRange from the raw Content-Range and
// Accept-Range header values.
func ParseResponseRange(contentRange string, acceptRange string) (ResponseRange, error) {
	var r ResponseRange

	m := contentRangeRx.FindStringSubmatch(strings.TrimSpace(contentRange))
	if m == nil {
		return r, fmt.Errorf("malformed Content-Range header %q", contentRange)
	}
	r.Start, _ = strconv.Atoi(m[1])
	r.End, _ = strconv.Atoi(m[2])
	r.Count, _ = strconv.Atoi(m[3])

	// Accept-Range has the form "itemtype max".
	fields := strings.Fields(acceptRange)
	if len(fields) != 2 {
		return r, fmt.Errorf("malformed Accept-Range header %q", acceptRange)
	}
	max, err := strconv.Atoi(fields[1])
	if err != nil {
		return r, fmt.Errorf("malformed Accept-Range header %q: %v", acceptRange, err)
	}
	r.Max = max

	return r, nil
}
