package feargreed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"time"

	"SentiPnL/internal/domain/models"
	domrepo "SentiPnL/internal/domain/repository"
	xhttp "SentiPnL/pkg/http"
	applogger "SentiPnL/pkg/logger"
	"SentiPnL/pkg/util"
)

// Columns are the normalized headers produced for API-sourced points;
// they match the alternative.me CSV export.
var Columns = []string{"timestamp", "value", "classification", "date"}

// Client fetches the Fear & Greed Index from the alternative.me API.
type Client struct {
	baseURL string
	limit   int
	client  *xhttp.Client
	l       *applogger.Logger
}

const userAgent = "sentipnl-feargreed/1.0"

// New creates an API-backed SentimentSource. limit 0 means full history.
func New(baseURL string, limit int, timeout time.Duration, l *applogger.Logger) *Client {
	if l == nil {
		l = applogger.Nop()
	}
	return &Client{
		baseURL: baseURL,
		limit:   limit,
		client:  xhttp.NewClient(
			xhttp.WithTimeout(timeout),
			xhttp.WithRetry(3, 500*time.Millisecond),
			xhttp.WithUserAgent(userAgent),
		),
		l:       l,
	}
}

var _ domrepo.SentimentSource = (*Client)(nil)

type fngEntry struct {
	Value          string `json:"value"`
	Classification string `json:"value_classification"`
	Timestamp      string `json:"timestamp"`
}

type fngResponse struct {
	Name     string     `json:"name"`
	Data     []fngEntry `json:"data"`
	Metadata struct {
		Error *string `json:"error"`
	} `json:"metadata"`
}

// LoadSentiment returns the series ordered oldest first.
func (c *Client) LoadSentiment(ctx context.Context) (*models.SentimentSet, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(c.limit))
	q.Set("format", "json")

	var resp fngResponse
	if err := c.client.GetJSON(ctx, c.baseURL, q, &resp); err != nil {
		return nil, fmt.Errorf("fear & greed api: %w", err)
	}
	if resp.Metadata.Error != nil && *resp.Metadata.Error != "" {
		return nil, fmt.Errorf("fear & greed api: %s", *resp.Metadata.Error)
	}

	set := &models.SentimentSet{Source: c.baseURL, Columns: Columns, Points: make([]models.SentimentPoint, 0, len(resp.Data))}
	for _, e := range resp.Data {
		ts, ok := util.ParseTime(e.Timestamp)
		if !ok {
			set.Dropped++
			continue
		}
		key := util.DateKey(ts.UTC())
		set.Points = append(set.Points, models.SentimentPoint{
			DateKey: key,
			Row: map[string]string{
				"timestamp":      e.Timestamp,
				"value":          e.Value,
				"classification": e.Classification,
				"date":           key.Format(time.DateOnly),
			},
		})
	}
	sort.SliceStable(set.Points, func(i, j int) bool {
		return set.Points[i].DateKey.Before(set.Points[j].DateKey)
	})
	c.l.Info("fear & greed series fetched",
		applogger.Int("points", len(set.Points)),
		applogger.Int("dropped", set.Dropped),
	)
	return set, nil
}

// WriteCSV writes points in the alternative.me CSV layout.
func WriteCSV(w io.Writer, set *models.SentimentSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, p := range set.Points {
		rec := make([]string, len(Columns))
		for i, col := range Columns {
			rec[i] = p.Row[col]
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
