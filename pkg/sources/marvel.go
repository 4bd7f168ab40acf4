package sources

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kerbaras/jeffbot/pkg/data"
	"github.com/kerbaras/jeffbot/pkg/utils"
)

const (
	DefaultMarvelURL = "https://gateway.marvel.com"

	// dateLayout is the format of dates[].date in comic results.
	dateLayout = "2006-01-02T15:04:05-0700"
	// coverVariant selects the portrait image rendition.
	coverVariant = "portrait_uncanny"
)

// Sign computes the request hash the Marvel API expects:
// md5(ts + privateKey + publicKey), hex encoded.
func Sign(ts, privateKey, publicKey string) string {
	sum := md5.Sum([]byte(ts + privateKey + publicKey))
	return hex.EncodeToString(sum[:])
}

type Marvel struct {
	api        *utils.API
	publicKey  string
	privateKey string
	now        func() time.Time
}

func NewMarvel(baseURL, publicKey, privateKey string) *Marvel {
	if baseURL == "" {
		baseURL = DefaultMarvelURL
	}
	return &Marvel{
		api:        utils.NewAPI(baseURL),
		publicKey:  publicKey,
		privateKey: privateKey,
		now:        time.Now,
	}
}

func (m *Marvel) WithHTTPClient(client *http.Client) *Marvel {
	m.api.WithClient(client)
	return m
}

type envelope[T any] struct {
	Code   any    `json:"code"`
	Status string `json:"status"`
	Data   *struct {
		Count   *int `json:"count"`
		Results []T  `json:"results"`
	} `json:"data"`
}

type image struct {
	Path      string `json:"path"`
	Extension string `json:"extension"`
}

type Comic struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URLs        []struct {
		Type string `json:"type"`
		URL  string `json:"url"`
	} `json:"urls"`
	Dates []struct {
		Type string `json:"type"`
		Date string `json:"date"`
	} `json:"dates"`
	Creators struct {
		Items []struct {
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"items"`
	} `json:"creators"`
	Thumbnail *image `json:"thumbnail"`
}

// ToComic converts the wire shape. Only a missing title is fatal; a missing
// or unparseable on-sale date leaves OnSaleDate zero.
func (c *Comic) ToComic(seriesID int) (*data.Comic, error) {
	if c.Title == "" {
		return nil, errors.New("result has no title")
	}

	comic := &data.Comic{SeriesID: seriesID, Title: c.Title}
	if c.Description != nil {
		comic.Description = *c.Description
	}
	for _, u := range c.URLs {
		if u.Type == "detail" {
			comic.DetailURL = u.URL
			break
		}
	}
	for _, d := range c.Dates {
		if d.Type != "onsaleDate" {
			continue
		}
		if parsed, err := time.Parse(dateLayout, d.Date); err == nil {
			comic.OnSaleDate = parsed
		}
		break
	}
	for _, item := range c.Creators.Items {
		comic.Creators = append(comic.Creators, data.Creator{Role: item.Role, Name: item.Name})
	}
	if c.Thumbnail != nil && c.Thumbnail.Path != "" {
		comic.CoverURL = fmt.Sprintf("%s/%s.%s", c.Thumbnail.Path, coverVariant, c.Thumbnail.Extension)
	}
	return comic, nil
}

type Series struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	StartYear int    `json:"startYear"`
	EndYear   int    `json:"endYear"`
}

func (s *Series) ToSeriesInfo() *data.SeriesInfo {
	return &data.SeriesInfo{
		ID:        s.ID,
		Title:     s.Title,
		StartYear: s.StartYear,
		EndYear:   s.EndYear,
	}
}

func (m *Marvel) authParams() url.Values {
	ts := strconv.FormatInt(m.now().Unix(), 10)
	return url.Values{
		"ts":     {ts},
		"apikey": {m.publicKey},
		"hash":   {Sign(ts, m.privateKey, m.publicKey)},
	}
}

func (m *Marvel) get(ctx context.Context, seriesID int, path string, params url.Values, v any) error {
	err := m.api.Get(ctx, path, params, v)
	if err == nil {
		return nil
	}

	var statusErr *utils.StatusError
	var decodeErr *utils.DecodeError
	switch {
	case errors.As(err, &statusErr):
		if statusErr.StatusCode == http.StatusNotFound {
			return &CatalogError{SeriesID: seriesID, StatusCode: statusErr.StatusCode, Kind: ErrNotFound}
		}
		return &CatalogError{SeriesID: seriesID, StatusCode: statusErr.StatusCode, Kind: ErrCatalogUnavailable, Err: err}
	case errors.As(err, &decodeErr):
		return &CatalogError{SeriesID: seriesID, Kind: ErrCatalogResponseInvalid, Err: err}
	default:
		return &CatalogError{SeriesID: seriesID, Kind: ErrCatalogUnavailable, Err: err}
	}
}

func (m *Marvel) FetchSeriesWindow(ctx context.Context, seriesID int, window data.Window) (*data.Comic, error) {
	if !window.Valid() {
		return nil, fmt.Errorf("invalid window %q", window)
	}

	params := m.authParams()
	params.Set("dateDescriptor", string(window))

	var resp envelope[Comic]
	if err := m.get(ctx, seriesID, fmt.Sprintf("/v1/public/series/%d/comics", seriesID), params, &resp); err != nil {
		return nil, err
	}

	result, err := first(seriesID, &resp)
	if err != nil {
		return nil, err
	}
	comic, err := result.ToComic(seriesID)
	if err != nil {
		return nil, &CatalogError{SeriesID: seriesID, Kind: ErrCatalogResponseInvalid, Err: err}
	}
	return comic, nil
}

func (m *Marvel) FetchSeriesMetadata(ctx context.Context, seriesID int) (*data.SeriesInfo, error) {
	var resp envelope[Series]
	if err := m.get(ctx, seriesID, fmt.Sprintf("/v1/public/series/%d", seriesID), m.authParams(), &resp); err != nil {
		return nil, err
	}

	result, err := first(seriesID, &resp)
	if err != nil {
		return nil, err
	}
	return result.ToSeriesInfo(), nil
}

// first applies the selection policy: the first result in upstream order.
func first[T any](seriesID int, resp *envelope[T]) (*T, error) {
	if resp.Data == nil || resp.Data.Count == nil {
		return nil, &CatalogError{SeriesID: seriesID, Kind: ErrCatalogResponseInvalid, Err: errors.New("missing data.count")}
	}
	if *resp.Data.Count == 0 || len(resp.Data.Results) == 0 {
		return nil, &CatalogError{SeriesID: seriesID, Kind: ErrNotFound}
	}
	return &resp.Data.Results[0], nil
}
