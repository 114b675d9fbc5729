package methu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dkonya/methu-forecast/internal/domain"
)

const (
	settlementsPath  = "/idojaras/elorejelzes/magyarorszagi_telepulesek/"
	forecastPath     = settlementsPath + "main.php"
	autocompletePath = settlementsPath + "ac.php"

	// The endpoints serve the site's own AJAX widgets and reject requests
	// that do not look like a browser.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client talks to the met.hu settlement forecast endpoints: the autocomplete
// API that resolves settlement names and the main.php endpoint that returns
// the forecast HTML fragment.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a met.hu client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Resolve looks up a settlement via the autocomplete API. An exact
// (case-insensitive) label match wins; otherwise the first entry is taken as
// the site's own best guess. No usable entry at all is
// domain.ErrSettlementNotFound.
func (c *Client) Resolve(ctx context.Context, name string) (domain.Settlement, error) {
	u := c.baseURL + autocompletePath + "?" + url.Values{"term": {name}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Settlement{}, fmt.Errorf("create request: %w", err)
	}
	c.setBrowserHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Settlement{}, fmt.Errorf("settlement lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.Settlement{}, fmt.Errorf("met.hu autocomplete: status %d: %s", resp.StatusCode, body)
	}

	var entries []acEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return domain.Settlement{}, fmt.Errorf("decode autocomplete response: %w", err)
	}

	wanted := strings.ToLower(strings.TrimSpace(name))
	var first *domain.Settlement
	for _, e := range entries {
		s, ok := e.settlement()
		if !ok {
			c.logger.Warn("skipping malformed autocomplete entry", "entry", e.displayName())
			continue
		}
		if strings.ToLower(s.Name) == wanted {
			return s, nil
		}
		if first == nil {
			first = &s
		}
	}
	if first != nil {
		return *first, nil
	}
	return domain.Settlement{}, fmt.Errorf("%w: %q", domain.ErrSettlementNotFound, name)
}

// Fetch posts the settlement selection form to main.php and returns the raw
// forecast HTML fragment.
func (c *Client) Fetch(ctx context.Context, settlement domain.Settlement) (string, error) {
	form := url.Values{
		"srctext":     {""},
		"valtozatlan": {"true"},
		"kod":         {settlement.Code},
		"lt":          {strconv.FormatFloat(settlement.Lat, 'f', -1, 64)},
		"n":           {strconv.FormatFloat(settlement.Lon, 'f', -1, 64)},
		"tel":         {settlement.Name},
		"kepid":       {""},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+forecastPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	c.setBrowserHeaders(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch forecast for %s: %w", settlement.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("met.hu forecast: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read forecast response: %w", err)
	}

	c.logger.Debug("fetched forecast", "settlement", settlement.Name, "kod", settlement.Code, "bytes", len(body))
	return string(body), nil
}

func (c *Client) setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "hu-HU,hu;q=0.9,en;q=0.8")
	req.Header.Set("Referer", c.baseURL+settlementsPath)
	req.Header.Set("Origin", c.baseURL)
}

// acEntry is one autocomplete result. The endpoint has served both string and
// numeric values for the same fields over time, and field names vary between
// the jQuery UI conventions (label/value) and the site's own (tel/kod).
type acEntry struct {
	Label string     `json:"label"`
	Value string     `json:"value"`
	Tel   string     `json:"tel"`
	Kod   flexString `json:"kod"`
	ID    flexString `json:"id"`
	Lt    flexString `json:"lt"`
	Lat   flexString `json:"lat"`
	N     flexString `json:"n"`
	Lon   flexString `json:"lon"`
}

func (e acEntry) displayName() string {
	for _, s := range []string{e.Label, e.Value, e.Tel} {
		if s != "" {
			return s
		}
	}
	return ""
}

func (e acEntry) settlement() (domain.Settlement, bool) {
	code := string(e.Kod)
	if code == "" {
		code = string(e.ID)
	}
	if code == "" {
		return domain.Settlement{}, false
	}

	lat, _ := firstFloat(e.Lt, e.Lat)
	lon, _ := firstFloat(e.N, e.Lon)

	return domain.Settlement{
		Name: e.displayName(),
		Code: code,
		Lat:  lat,
		Lon:  lon,
	}, true
}

func firstFloat(values ...flexString) (float64, bool) {
	for _, v := range values {
		if v == "" {
			continue
		}
		if f, err := strconv.ParseFloat(string(v), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// flexString decodes a JSON string or number into a string.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
