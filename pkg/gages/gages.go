// Package gages reads rain-gage records from the GraphQL endpoint that
// backs the station map.
package gages

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"srer/pkg/errors"
	"srer/pkg/logger"
)

// Query is the fixed GraphQL query sent by FetchGages
const Query = `{ raingages { edges { node { id name code latitude longitude } } } }`

// Gage is one rain gage
type Gage struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	Latitude  Coordinate `json:"latitude"`
	Longitude Coordinate `json:"longitude"`
}

// Coordinate is a decimal degree value. It decodes from a JSON number or a
// numeric string; null decodes to zero.
type Coordinate float64

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*c = 0
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %s: %w", data, err)
	}
	*c = Coordinate(v)
	return nil
}

func (c Coordinate) String() string {
	return strconv.FormatFloat(float64(c), 'f', 6, 64)
}

type graphQLError struct {
	Message string `json:"message"`
}

type response struct {
	Data struct {
		Raingages struct {
			Edges []struct {
				Node Gage `json:"node"`
			} `json:"edges"`
		} `json:"raingages"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// Client queries the rain-gage endpoint
type Client struct {
	http     *resty.Client
	endpoint string
	logger   logger.Logger
}

// NewClient creates a client for the GraphQL endpoint
func NewClient(endpoint string, timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:     rc,
		endpoint: endpoint,
		logger:   log,
	}
}

// FetchGages issues one GET with the query in the query string and returns
// the gages in response order.
func (c *Client) FetchGages(ctx context.Context) ([]Gage, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("query", Query).
		Get(c.endpoint)
	if err != nil {
		return nil, errors.Network(c.endpoint, err)
	}
	logger.LogRequest(c.logger, "GET", c.endpoint, res.StatusCode(), res.Time())

	if !errors.IsSuccessStatus(res.StatusCode()) {
		return nil, errors.HTTPStatus(c.endpoint, res.StatusCode())
	}

	var body response
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return nil, errors.New(errors.ErrorTypeParsing, c.endpoint, "invalid GraphQL response", err)
	}

	if len(body.Errors) > 0 {
		messages := make([]string, len(body.Errors))
		for i, e := range body.Errors {
			messages[i] = e.Message
		}
		return nil, errors.New(errors.ErrorTypeParsing, c.endpoint, "GraphQL errors: "+strings.Join(messages, "; "), nil)
	}

	gages := make([]Gage, 0, len(body.Data.Raingages.Edges))
	for _, edge := range body.Data.Raingages.Edges {
		gages = append(gages, edge.Node)
	}

	c.logger.DebugWithFields("Fetched rain gages", map[string]interface{}{
		"count": len(gages),
	})

	return gages, nil
}
