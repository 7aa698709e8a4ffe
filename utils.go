package jsonschema

import (
	"net/url"
)

// getURLScheme extracts the scheme component of a URL string.
func getURLScheme(urlStr string) string {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return parsedURL.Scheme
}
