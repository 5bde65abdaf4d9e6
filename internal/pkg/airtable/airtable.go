package airtable

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"booking-portal/config"
	"booking-portal/internal/pkg/errors"

	"github.com/goccy/go-json"
)

// Doer is satisfied by *http.Client and *circuit.HTTPClient.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	doer     Doer
	endpoint string
	baseID   string
	apiKey   string
}

type Record struct {
	ID          string                 `json:"id,omitempty"`
	CreatedTime string                 `json:"createdTime,omitempty"`
	Fields      map[string]interface{} `json:"fields"`
}

type Sort struct {
	Field     string
	Direction string
}

type ListOptions struct {
	FilterByFormula string
	View            string
	Fields          []string
	Sort            []Sort
	MaxRecords      int
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

type recordsRequest struct {
	Records  []Record `json:"records"`
	Typecast bool     `json:"typecast,omitempty"`
}

func New(doer Doer, cfg *config.AirtableConfig) *Client {
	return &Client{
		doer:     doer,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		baseID:   cfg.BaseID,
		apiKey:   cfg.APIKey,
	}
}

type Table struct {
	client *Client
	name   string
}

func (c *Client) Table(name string) *Table {
	return &Table{client: c, name: name}
}

func (t *Table) Name() string {
	return t.name
}

// List returns every record matching opts, following pagination offsets.
func (t *Table) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	var records []Record
	offset := ""
	for {
		q := opts.query()
		if offset != "" {
			q.Set("offset", offset)
		}

		var page listResponse
		if err := t.client.do(ctx, http.MethodGet, t.path("")+"?"+q.Encode(), nil, &page); err != nil {
			return nil, err
		}
		records = append(records, page.Records...)

		if page.Offset == "" || (opts.MaxRecords > 0 && len(records) >= opts.MaxRecords) {
			return records, nil
		}
		offset = page.Offset
	}
}

func (t *Table) Find(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := t.client.do(ctx, http.MethodGet, t.path(id), nil, &rec)
	return rec, err
}

func (t *Table) Create(ctx context.Context, fields map[string]interface{}) (Record, error) {
	var resp listResponse
	err := t.client.do(ctx, http.MethodPost, t.path(""), recordsRequest{Records: []Record{{Fields: fields}}}, &resp)
	if err != nil {
		return Record{}, err
	}
	if len(resp.Records) == 0 {
		return Record{}, errors.InternalServerError("airtable returned no created record")
	}
	return resp.Records[0], nil
}

// Update patches only the given fields of one record.
func (t *Table) Update(ctx context.Context, id string, fields map[string]interface{}) (Record, error) {
	var rec Record
	err := t.client.do(ctx, http.MethodPatch, t.path(id), Record{Fields: fields}, &rec)
	return rec, err
}

func (t *Table) path(id string) string {
	p := fmt.Sprintf("%s/%s/%s", t.client.endpoint, url.PathEscape(t.client.baseID), url.PathEscape(t.name))
	if id != "" {
		p += "/" + url.PathEscape(id)
	}
	return p
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.FilterByFormula != "" {
		q.Set("filterByFormula", o.FilterByFormula)
	}
	if o.View != "" {
		q.Set("view", o.View)
	}
	for _, f := range o.Fields {
		q.Add("fields[]", f)
	}
	for i, s := range o.Sort {
		q.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
		if s.Direction != "" {
			q.Set(fmt.Sprintf("sort[%d][direction]", i), s.Direction)
		}
	}
	if o.MaxRecords > 0 {
		q.Set("maxRecords", strconv.Itoa(o.MaxRecords))
	}
	return q
}

func (c *Client) do(ctx context.Context, method, rawURL string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.KindValidation, err, "error encode airtable request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return errors.Wrap(errors.KindUnknown, err, "error build airtable request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return normalizeTransportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return normalizeTransportError(ctx, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return normalizeResponseError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(errors.KindServerError, err, "error decode airtable response")
	}
	return nil
}
