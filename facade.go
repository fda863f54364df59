package nokogiri

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

const serviceName = "nokogiri"

var serviceVersion = "dev" // set with -ldflags "-X github.com/hideki0403/nokogiri.serviceVersion=..."; cmd/nokogiri's main.version is a separate variable

// Mux builds the C12 HTTP façade: GET /url (the summarize endpoint), plus
// the thin GET / and GET /robots.txt routes supplemented from
// original_source/src/server/route/{index,robots}.rs.
func Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /url", handleURL)
	mux.HandleFunc("GET /", handleIndex)
	mux.HandleFunc("GET /robots.txt", handleRobotsTxt)
	return mux
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(serviceName + " " + serviceVersion + " - https://github.com/hideki0403/nokogiri"))
}

func handleRobotsTxt(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("User-agent: *\nDisallow: /"))
}

func handleURL(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rawURL := q.Get("url")
	if rawURL == "" {
		http.Error(w, "Missing 'url' parameter", http.StatusBadRequest)
		return
	}

	secretKey := config().Security.SecretKey
	if secretKey != "" {
		if provided := q.Get("secretKey"); provided != secretKey {
			http.Error(w, "Invalid secret key", http.StatusUnauthorized)
			return
		}
	}

	decoded, err := url.QueryUnescape(rawURL)
	if err != nil {
		http.Error(w, "URL Decode failed", http.StatusBadRequest)
		return
	}

	target, err := url.Parse(decoded)
	if err != nil {
		http.Error(w, "Invalid URL", http.StatusBadRequest)
		return
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		http.Error(w, "Only http and https are supported", http.StatusBadRequest)
		return
	}

	summary, ok := Summarize(r.Context(), target, q.Get("lang"), q.Get("userAgent"))
	if !ok {
		requestID := uuid.NewString()
		Logger().Error("failed to summarize url", "url", target.String(), "request_id", requestID)
		http.Error(w, "Internal Server Error (RequestID: "+requestID+")", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=604800")
	_ = json.NewEncoder(w).Encode(summary)
}
