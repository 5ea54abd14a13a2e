package catalog

import (
	"net/url"
	"strings"
)

// Location query parameters owned by the browser.
const (
	ParamQuery  = "q"
	ParamStatus = "status"
	ParamTag    = "tag"
	ParamPage   = "page"
	ParamOpen   = "p"
)

// Location is an app route plus its query string ("/projects?p=x&page=2").
type Location struct {
	Path  string
	Query url.Values
}

// ParseLocation accepts "/projects?p=x", "projects?p=x" or "?p=x".
func ParseLocation(s string) (Location, error) {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil {
		return Location{}, err
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return Location{Path: path, Query: u.Query()}, nil
}

func (l Location) String() string {
	path := l.Path
	if path == "" {
		path = "/"
	}
	if qs := l.Query.Encode(); qs != "" {
		return path + "?" + qs
	}
	return path
}

func (l Location) Get(key string) string {
	if l.Query == nil {
		return ""
	}
	return l.Query.Get(key)
}

// With returns a copy with key set to value; an empty value removes the key.
// Other parameters are kept as-is.
func (l Location) With(key, value string) Location {
	out := Location{Path: l.Path, Query: url.Values{}}
	for k, vs := range l.Query {
		out.Query[k] = append([]string(nil), vs...)
	}
	if value == "" {
		out.Query.Del(key)
	} else {
		out.Query.Set(key, value)
	}
	return out
}

func (l Location) Equal(o Location) bool {
	return l.String() == o.String()
}
