package pagination

import (
	"math"
	"net/url"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	// MaxPage keeps Offset well inside the range Postgres accepts.
	MaxPage = math.MaxInt32 / MaxLimit
)

// Params is a 1-based page request.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Meta describes the page returned alongside a listing.
type Meta struct {
	CurrentPage  int  `json:"currentPage"`
	PerPage      int  `json:"perPage"`
	TotalPages   int  `json:"totalPages"`
	TotalRecords int  `json:"totalRecords"`
	HasNext      bool `json:"hasNext"`
	HasPrevious  bool `json:"hasPrevious"`
}

// FromQuery returns nil when the query names neither page nor limit, so
// callers can keep the unpaginated listing. Unparseable or non-positive
// values fall back to the defaults; page is capped at MaxPage and limit at
// MaxLimit.
func FromQuery(query url.Values) *Params {
	if !query.Has("page") && !query.Has("limit") {
		return nil
	}

	p := &Params{
		Page:  positiveInt(query.Get("page"), DefaultPage),
		Limit: positiveInt(query.Get("limit"), DefaultLimit),
	}
	p.Normalize()
	return p
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Normalize clamps p into the accepted range.
func (p *Params) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

func (p *Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta builds the response metadata for a listing of totalRecords rows.
func (p *Params) Meta(totalRecords int) Meta {
	totalPages := (totalRecords + p.Limit - 1) / p.Limit
	if totalPages < 1 {
		totalPages = 1
	}

	return Meta{
		CurrentPage:  p.Page,
		PerPage:      p.Limit,
		TotalPages:   totalPages,
		TotalRecords: totalRecords,
		HasNext:      p.Page < totalPages,
		HasPrevious:  p.Page > 1,
	}
}
