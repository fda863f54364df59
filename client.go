package nokogiri

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/net/publicsuffix"

	"github.com/hideki0403/nokogiri/internal/useragent"
)

// RequestOptions customizes a single GET/HEAD call, mirroring
// original_source/src/core/request.rs's RequestOptions.
type RequestOptions struct {
	// UserAgent selects a preset (useragent.TwitterBot, useragent.Chrome) or,
	// if it matches none of the presets, is used verbatim as a caller-supplied
	// override. Empty selects the service default.
	UserAgent string
	// AcceptLanguage overrides the configured default Accept-Language.
	AcceptLanguage string
	// Headers merge last, overriding any of the above.
	Headers map[string]string
}

// httpClient is the C6 singleton: shared cookie jar, shared *http.Client,
// a resolved+ACL-gated dialer, and a content-length cap.
type httpClient struct {
	client       *http.Client
	jar          *cookiejar.Jar
	contentCap   int64
	defaultUA    string
	defaultLang  string
	resolver     *customResolver
	blockPrivate bool
}

var globalClient *httpClient

// SetGlobalClient installs c as the process-lifetime HTTP client singleton.
func SetGlobalClient(c *httpClient) { globalClient = c }

func clientInstance() *httpClient { return globalClient }

// NewHTTPClient builds the singleton from the active configuration: the
// redirect limit, the overall request timeout (general.operation_timeout)
// and the content-length cap come from config; content_length_limit parse
// failures fall back to 10 MiB. general.response_timeout is not applied,
// and the dial and TLS handshake timeouts are fixed at 10 seconds.
func NewHTTPClient(cfg *Config, serviceName, serviceVersion string) (*httpClient, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("building cookie jar: %w", err)
	}

	capBytes, err := humanize.ParseBytes(cfg.General.ContentLengthLimit)
	if err != nil {
		capBytes = 10 * 1024 * 1024
	}

	hc := &httpClient{
		jar:          jar,
		contentCap:   int64(capBytes),
		defaultUA:    useragent.Default(serviceName, serviceVersion),
		defaultLang:  cfg.General.DefaultLang,
		resolver:     newCustomResolver(),
		blockPrivate: cfg.Security.BlockNonGlobalIPs,
	}
	setACLAllowlist(cfg.Security.AllowedPrivateIPs)

	transport := &http.Transport{
		DialContext:           hc.dialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	hc.client = &http.Client{
		Jar:       jar,
		Transport: transport,
		Timeout:   time.Duration(cfg.General.OperationTimeout) * time.Millisecond,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= int(cfg.General.MaxRedirectHops) {
				return fmt.Errorf("stopped after %d redirects", len(via))
			}
			return nil
		},
	}
	return hc, nil
}

// dialContext resolves host via the custom DNS resolver, enforces the
// egress ACL on every candidate address, and dials the first address that
// passes — matching spec §4.5's "enforced after DNS resolution and before
// TCP connect".
func (c *httpClient) dialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}

	ips, err := c.resolver.lookup(ctx, host)
	if err != nil {
		return nil, err
	}

	var lastErr error
	d := &net.Dialer{Timeout: 10 * time.Second}
	for _, ip := range ips {
		if err := checkEgress(host, ip, c.blockPrivate); err != nil {
			lastErr = err
			continue
		}
		conn, err := d.DialContext(ctx, network, net.JoinHostPort(ip.String(), port))
		if err != nil {
			lastErr = err
			continue
		}
		return conn, nil
	}
	if lastErr == nil {
		lastErr = &errHostBlocked{host: host}
	}
	return nil, lastErr
}

// resolveUA turns a RequestOptions.UserAgent into a concrete header value.
func (c *httpClient) resolveUA(preset string) string {
	switch preset {
	case "":
		return c.defaultUA
	case useragent.TwitterBot, useragent.Chrome:
		return preset
	default:
		return preset
	}
}

// Get issues a GET request with C6's header-merge rules and returns the
// UTF-8 decoded body, capped at contentCap bytes.
func (c *httpClient) Get(ctx context.Context, target string, opts RequestOptions) (*http.Response, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, "", err
	}
	c.applyHeaders(req, opts)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := c.readCapped(resp.Body)
	if err != nil {
		return resp, "", err
	}
	if !utf8.Valid(body) {
		return resp, "", fmt.Errorf("nokogiri: non-UTF-8 response body from %s", target)
	}
	return resp, string(body), nil
}

// Head issues a HEAD request and returns only the response headers/status.
func (c *httpClient) Head(ctx context.Context, target string, opts RequestOptions) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return nil, err
	}
	c.applyHeaders(req, opts)
	return c.client.Do(req)
}

func (c *httpClient) applyHeaders(req *http.Request, opts RequestOptions) {
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	lang := c.defaultLang
	if opts.AcceptLanguage != "" {
		lang = opts.AcceptLanguage
	}
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	req.Header.Set("User-Agent", c.resolveUA(opts.UserAgent))
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
}

// readCapped reads r in chunks, aborting once cumulative bytes exceed the
// cap (cap<=0 disables the check), matching spec §4.6's body-reading rule.
func (c *httpClient) readCapped(r io.Reader) ([]byte, error) {
	if c.contentCap <= 0 {
		return io.ReadAll(r)
	}
	limited := io.LimitReader(r, c.contentCap+1)
	buf, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}
	if int64(len(buf)) > c.contentCap {
		return nil, fmt.Errorf("nokogiri: response body exceeds %d byte cap", c.contentCap)
	}
	return buf, nil
}

// addCookie sets a raw "Name=Value" cookie string against target's origin,
// matching original_source's add_cookie (used by the skeb handler's
// captcha-cookie dance).
func (c *httpClient) addCookie(target string, cookieStr string) error {
	u, err := url.Parse(target)
	if err != nil {
		return err
	}
	name, value, ok := strings.Cut(cookieStr, "=")
	if !ok {
		return fmt.Errorf("nokogiri: malformed cookie string %q", cookieStr)
	}
	c.jar.SetCookies(u, []*http.Cookie{{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)}})
	return nil
}

// cacheControlMaxAge extracts max-age from a Cache-Control header value,
// returning 300 if absent or malformed (the default TTL generic handlers
// fall back to per spec §4.6).
func cacheControlMaxAge(header string) int64 {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, "max-age=") {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimPrefix(part, "max-age="), 10, 64)
		if err != nil || n < 0 {
			return 300
		}
		return n
	}
	return 300
}
