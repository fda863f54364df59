// Package useragent provides the fixed preset User-Agent strings the
// dispatcher's handlers pick between, plus the service's own identifying
// default.
//
// Adapted from the teacher repo's internal/useragent (a single fixed-string
// wrapper around http.RoundTripper); generalized here to carry the three
// presets original_source/src/core/request.rs's UserAgentList enum names,
// since a handler chooses a UA per request rather than once per client.
// The header itself is applied per-request in client.go's applyHeaders,
// since the choice varies by call rather than by RoundTripper.
package useragent

import "runtime"

// Preset user agent strings selectable per-request by RequestOptions.
const (
	TwitterBot = "Twitterbot/1.0"
	Chrome     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// Default builds the service's own identifying UA string, matching spec
// §4.6: "Mozilla/5.0 (compatible; <os> <arch>) SummalyBot/1.0 <name>/<version>".
func Default(name, version string) string {
	return "Mozilla/5.0 (compatible; " + runtime.GOOS + " " + runtime.GOARCH + ") SummalyBot/1.0 " + name + "/" + version
}
