package render

import "net/url"

// QueryParam returns the first value of the named query parameter in rawURL.
// The second result is false when the parameter is absent or rawURL does not parse.
func QueryParam(rawURL, name string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	values, ok := u.Query()[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}
