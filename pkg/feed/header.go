package feed

import (
	"errors"
	"fmt"
	"strings"

	api "github.com/etesami/earthquake-feed/api"
)

// ErrMalformedHeader means the feed metadata lacks a required field. A
// feed in that state is not usable at all.
var ErrMalformedHeader = errors.New("malformed feed header")

// ExtractHeader projects the feed metadata onto a HeaderInfo.
func ExtractHeader(doc *api.FeedDocument) (api.HeaderInfo, error) {
	md := doc.Metadata
	var missing []string
	if md.Generated == nil {
		missing = append(missing, "generated")
	}
	if md.URL == nil {
		missing = append(missing, "url")
	}
	if md.Title == nil {
		missing = append(missing, "title")
	}
	if md.Count == nil {
		missing = append(missing, "count")
	}
	if len(missing) > 0 {
		return api.HeaderInfo{}, fmt.Errorf("%w: missing %s", ErrMalformedHeader, strings.Join(missing, ", "))
	}
	return api.HeaderInfo{
		TimeStamp: *md.Generated,
		URL:       *md.URL,
		Title:     *md.Title,
		Count:     *md.Count,
	}, nil
}
