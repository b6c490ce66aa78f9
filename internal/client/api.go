package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"hydroponics/internal/measurement"
	"hydroponics/internal/models"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. It does not sign in.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register/", "", false, credentials{email, password}, nil)
}

// Login exchanges credentials for a token and stores it in the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login/", "", false, credentials{email, password}, &out); err != nil {
		return err
	}
	if out.Token == "" {
		return fmt.Errorf("login: server returned no token")
	}
	c.session.Login(email, out.Token)
	return nil
}

// Logout clears the session. The server keeps no session state.
func (c *Client) Logout() {
	c.session.Logout()
}

// SystemQuery narrows a system listing. Zero fields are omitted.
type SystemQuery struct {
	Name      string
	Location  string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

func (q SystemQuery) values() url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("name", q.Name)
	set("location", q.Location)
	set("sort_by", q.SortBy)
	set("sort_order", q.SortOrder)
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return v
}

type systemBody struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// ListSystems returns one page of the caller's systems.
func (c *Client) ListSystems(ctx context.Context, q SystemQuery) (models.Page[models.System], error) {
	var page models.Page[models.System]
	err := c.do(ctx, http.MethodGet, "/systems/", q.values().Encode(), true, nil, &page)
	return page, err
}

func (c *Client) CreateSystem(ctx context.Context, name, location string) (models.System, error) {
	var s models.System
	err := c.do(ctx, http.MethodPost, "/systems/", "", true, systemBody{name, location}, &s)
	return s, err
}

// GetSystem returns a system with its newest readings.
func (c *Client) GetSystem(ctx context.Context, id int) (models.SystemDetail, error) {
	var d models.SystemDetail
	err := c.do(ctx, http.MethodGet, systemPath(id), "", true, nil, &d)
	return d, err
}

func (c *Client) UpdateSystem(ctx context.Context, id int, name, location string) (models.System, error) {
	var s models.System
	err := c.do(ctx, http.MethodPut, systemPath(id), "", true, systemBody{name, location}, &s)
	return s, err
}

func (c *Client) DeleteSystem(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, systemPath(id), "", true, nil, nil)
}

// ListOptions orders and pages a measurement listing.
type ListOptions struct {
	SortBy    string
	SortOrder string
	PageSize  int
	MaxPages  int // 0 follows every page
}

// ListMeasurements fetches every reading of a system matching f, following
// the pagination links. A nil filter matches everything.
func (c *Client) ListMeasurements(ctx context.Context, systemID int, f *measurement.Filter, opts ListOptions) ([]models.Measurement, error) {
	target := c.endpoint(measurementsPath(systemID), measurementQuery(f, opts))

	var all []models.Measurement
	for pages := 0; target != ""; pages++ {
		if opts.MaxPages > 0 && pages == opts.MaxPages {
			break
		}
		var page models.Page[models.Measurement]
		if err := c.doURL(ctx, http.MethodGet, target, true, nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		target = ""
		if page.Next != nil {
			target = *page.Next
		}
	}
	if all == nil {
		all = []models.Measurement{}
	}
	return all, nil
}

// measurementQuery is the filter's query string followed by sort and page size.
func measurementQuery(f *measurement.Filter, opts ListOptions) string {
	q := ""
	if f != nil {
		q = f.QueryString()
	}
	extra := url.Values{}
	if opts.SortBy != "" {
		extra.Set("sort_by", opts.SortBy)
	}
	if opts.SortOrder != "" {
		extra.Set("sort_order", opts.SortOrder)
	}
	if opts.PageSize > 0 {
		extra.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	return q + extra.Encode()
}

// AddMeasurement validates raw form input and posts it. Invalid input is
// returned as a *measurement.ValidationError and never reaches the server.
func (c *Client) AddMeasurement(ctx context.Context, systemID int, ph, temperature, tds string) (models.Measurement, error) {
	sub, err := measurement.ValidateSubmission(ph, temperature, tds)
	if err != nil {
		return models.Measurement{}, err
	}
	var m models.Measurement
	err = c.do(ctx, http.MethodPost, measurementsPath(systemID), "", true, sub, &m)
	return m, err
}

// Chart fetches the readings matching f and assembles them locally.
// A nil bundle with a nil error means there is nothing to draw.
func (c *Client) Chart(ctx context.Context, systemID int, f *measurement.Filter, opts measurement.ChartOptions) (*measurement.ChartSeriesBundle, error) {
	ms, err := c.ListMeasurements(ctx, systemID, f, ListOptions{SortBy: "timestamp", SortOrder: "asc"})
	if err != nil {
		return nil, err
	}
	return measurement.Assemble(ms, opts), nil
}

// ServerChart asks the server to assemble the chart with the user's theme.
func (c *Client) ServerChart(ctx context.Context, systemID int, f *measurement.Filter) (*measurement.ChartSeriesBundle, error) {
	var out struct {
		Chart *measurement.ChartSeriesBundle `json:"chart"`
	}
	q := ""
	if f != nil {
		q = f.QueryString()
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/systems/%d/chart/", systemID), q, true, nil, &out)
	return out.Chart, err
}

func (c *Client) Preferences(ctx context.Context) (models.Preferences, error) {
	var p models.Preferences
	err := c.do(ctx, http.MethodGet, "/preferences/", "", true, nil, &p)
	return p, err
}

func (c *Client) SetDarkMode(ctx context.Context, dark bool) (models.Preferences, error) {
	var p models.Preferences
	body := struct {
		DarkMode bool `json:"dark_mode"`
	}{dark}
	err := c.do(ctx, http.MethodPut, "/preferences/", "", true, body, &p)
	return p, err
}

func systemPath(id int) string       { return fmt.Sprintf("/systems/%d/", id) }
func measurementsPath(id int) string { return fmt.Sprintf("/systems/%d/measurements/", id) }
