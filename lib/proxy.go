package lib

import "net/url"

// ProxyStrategy wraps a target URL in a CORS-relay endpoint. Strategies
// are tried in slice order; the first 2xx response wins. The specific
// relays are replaceable configuration, not load-bearing design - the
// cors-anywhere demo instance in particular is not guaranteed to stay up.
type ProxyStrategy struct {
	Name string
	Wrap func(target string) string
}

// DefaultProxyStrategies returns the built-in relay chain in priority order
func DefaultProxyStrategies() []ProxyStrategy {
	return []ProxyStrategy{
		{
			Name: "corsproxy",
			Wrap: func(target string) string {
				return "https://corsproxy.io/?" + url.QueryEscape(target)
			},
		},
		{
			Name: "allorigins",
			Wrap: func(target string) string {
				return "https://api.allorigins.win/raw?url=" + url.QueryEscape(target)
			},
		},
		{
			Name: "cors-anywhere",
			Wrap: func(target string) string {
				return "https://cors-anywhere.herokuapp.com/" + target
			},
		},
	}
}
