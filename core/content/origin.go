// ABOUTME: Origin client builds content requests and decodes the origin's envelope
// ABOUTME: Hydrates raw records into articles with canonical ids and absolute image URLs

package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"newsdesk-api/core/domain"
	coreerrors "newsdesk-api/core/errors"
	"newsdesk-api/core/identity"
	"newsdesk-api/core/interfaces"
	htmlutil "newsdesk-api/pkg/utils/html"
	timeutil "newsdesk-api/pkg/utils/time"
)

const originAPI = "origin"

// maxBodySize bounds how much of an origin response is read
const maxBodySize = 10 << 20

// envelope is the response wrapper used by every origin endpoint
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Total   int             `json:"total"`
	Message string          `json:"message"`
}

// record is one article as sent by the origin
type record struct {
	MongoID json.RawMessage `json:"_id"`
	ID      json.RawMessage `json:"id"`

	Title                   string `json:"title"`
	TitleOriginalLanguage   string `json:"titleOriginalLanguage"`
	Excerpt                 string `json:"excerpt"`
	ExcerptOriginalLanguage string `json:"excerptOriginalLanguage"`
	Content                 string `json:"content"`
	ContentOriginalLanguage string `json:"contentOriginalLanguage"`

	Image    string `json:"image"`
	Category string `json:"category"`
	Language string `json:"language"`

	IsBreaking bool `json:"isBreaking"`
	IsFeatured bool `json:"isFeatured"`
	IsTrending bool `json:"isTrending"`

	TrendingTitle                 string `json:"trendingTitle"`
	TrendingTitleOriginalLanguage string `json:"trendingTitleOriginalLanguage"`

	PublishedAt json.RawMessage `json:"publishedAt"`
	CreatedAt   json.RawMessage `json:"createdAt"`
}

// origin talks to the remote content API
type origin struct {
	client   interfaces.HTTPClient
	endpoint string
	assets   *url.URL
}

func newOrigin(client interfaces.HTTPClient, baseURL string) (*origin, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid origin base URL %q", baseURL)
	}
	return &origin{
		client:   client,
		endpoint: base.String() + "/content",
		assets:   &url.URL{Scheme: base.Scheme, Host: base.Host},
	}, nil
}

// listURL builds the collection request for a selector
func (o *origin) listURL(sel domain.Selector, breaking domain.BreakingFilter, limit int) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("published", "true")

	switch sel.Kind {
	case domain.KindCategory:
		q.Set("category", sel.Value)
	case domain.KindPage:
		q.Set("page", sel.Value)
	}

	switch breaking {
	case domain.BreakingOnly:
		q.Set("breaking", "true")
	case domain.BreakingExclude:
		q.Set("breaking", "false")
	}

	return o.endpoint + "?" + q.Encode()
}

func (o *origin) detailURL(id string) string {
	return o.endpoint + "/" + url.PathEscape(id)
}

// list fetches a collection. An empty collection is ErrEmptyResult.
func (o *origin) list(ctx context.Context, u string) ([]record, error) {
	env, err := o.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var records []record
	if err := json.Unmarshal(env.Data, &records); err != nil {
		return nil, &coreerrors.MalformedResponseError{API: originAPI, Cause: err}
	}
	if len(records) == 0 {
		return nil, coreerrors.ErrEmptyResult
	}
	return records, nil
}

// detail fetches one record by id
func (o *origin) detail(ctx context.Context, id string) (record, error) {
	env, err := o.get(ctx, o.detailURL(id))
	if err != nil {
		return record{}, err
	}

	var rec record
	if err := json.Unmarshal(env.Data, &rec); err != nil {
		return record{}, &coreerrors.MalformedResponseError{API: originAPI, Cause: err}
	}
	if rec.Title == "" && len(rec.MongoID) == 0 && len(rec.ID) == 0 {
		return record{}, coreerrors.ErrEmptyResult
	}
	return rec, nil
}

func (o *origin) get(ctx context.Context, u string) (envelope, error) {
	if o.client == nil {
		return envelope{}, errors.New("HTTP client not configured")
	}

	resp, err := o.client.Get(ctx, u)
	if err != nil {
		return envelope{}, err
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() == http.StatusNotFound {
		return envelope{}, &coreerrors.NotFoundError{Resource: "content", ID: u}
	}
	if resp.StatusCode() != http.StatusOK {
		return envelope{}, &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    http.StatusText(resp.StatusCode()),
			API:        originAPI,
		}
	}

	data, err := io.ReadAll(io.LimitReader(body, maxBodySize))
	if err != nil {
		return envelope{}, err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return envelope{}, &coreerrors.MalformedResponseError{API: originAPI, Cause: err}
	}
	if env.Success != nil && !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = "success=false"
		}
		return envelope{}, &coreerrors.ExternalAPIError{StatusCode: http.StatusOK, Message: msg, API: originAPI}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return envelope{}, coreerrors.ErrEmptyResult
	}
	return env, nil
}

// resolveImage turns the origin's image reference into an absolute URL.
// Relative paths are served from the origin host root.
func (o *origin) resolveImage(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		if ref.Scheme != "http" && ref.Scheme != "https" {
			return ""
		}
		return ref.String()
	}
	if ref.Host == "" && !strings.HasPrefix(ref.Path, "/") {
		ref.Path = "/" + ref.Path
	}
	return o.assets.ResolveReference(ref).String()
}

// hydrate converts a record into an article. scope and index only matter
// when the record has no identifier and must get an ephemeral one.
func (o *origin) hydrate(rec record, scope string, index, excerptLength int) domain.Article {
	id, err := identity.Normalize(identity.Candidates{
		DatabaseID: identity.FromJSON(rec.MongoID),
		FallbackID: identity.FromJSON(rec.ID),
	})
	if err != nil {
		id = identity.Ephemeral(scope, index)
	}

	category, ok := domain.ParseCategory(rec.Category)
	if !ok {
		category = domain.CategoryNational
	}

	excerpt := strings.TrimSpace(rec.Excerpt)
	if excerpt == "" && rec.Content != "" {
		excerpt = htmlutil.Excerpt(rec.Content, excerptLength)
	}

	a := domain.Article{
		ID:                      id,
		DetailAvailable:         identity.IsDetailFetchable(id),
		Category:                category,
		Language:                strings.TrimSpace(rec.Language),
		Title:                   strings.TrimSpace(rec.Title),
		TitleOriginalLanguage:   strings.TrimSpace(rec.TitleOriginalLanguage),
		Excerpt:                 excerpt,
		ExcerptOriginalLanguage: strings.TrimSpace(rec.ExcerptOriginalLanguage),
		Content:                 rec.Content,
		ContentOriginalLanguage: rec.ContentOriginalLanguage,
		Image:                   o.resolveImage(rec.Image),
		ImagePending:            true,
		IsBreaking:              rec.IsBreaking,
		IsFeatured:              rec.IsFeatured,
		IsTrending:              rec.IsTrending,
	}
	if rec.IsTrending {
		a.TrendingTitle = strings.TrimSpace(rec.TrendingTitle)
		a.TrendingTitleOriginalLanguage = strings.TrimSpace(rec.TrendingTitleOriginalLanguage)
	}
	a.SetOriginals()

	published := timeutil.ParseWithDefault(rawString(rec.PublishedAt),
		timeutil.ParseFlexibleTime(rawString(rec.CreatedAt)))
	if !published.IsZero() {
		a.PublishedAt.Date = timeutil.FormatDisplayDate(published)
		a.PublishedAt.Unix = published.Unix()
	}

	return a
}

// rawString unquotes a JSON string, unwraps extended-JSON {"$date": ...}
// and passes other scalars through
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}
	var wrapped struct {
		Date json.RawMessage `json:"$date"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Date) > 0 {
		return rawString(wrapped.Date)
	}
	return string(raw)
}
