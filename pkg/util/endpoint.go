package util

import "strings"

// WrapEndpoint turns a bare host into a base URL. Values that already carry a
// scheme are returned unchanged, bare IPv4 hosts get "http://" and everything
// else "https://".
func WrapEndpoint(endpoint string) string {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	switch {
	case strings.HasPrefix(endpoint, "http://"), strings.HasPrefix(endpoint, "https://"):
		return endpoint
	case strings.HasPrefix(endpoint, "//"):
		return "https:" + endpoint
	case IsIP(endpoint):
		return "http://" + endpoint
	default:
		return "https://" + endpoint
	}
}
