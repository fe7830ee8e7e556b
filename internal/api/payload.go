package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// payload is a loosely typed JSON request body. Missing, empty or
// unparsable values fall back to the caller's default.
type payload map[string]any

// bindPayload decodes the request body. An empty body is an empty payload.
func bindPayload(c *gin.Context) (payload, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return payload{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var p payload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if p == nil {
		p = payload{}
	}
	return p, nil
}

func (p payload) number(key string, def decimal.Decimal) decimal.Decimal {
	switch v := p[key].(type) {
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return d
		}
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}

// integer truncates fractional JSON numbers; strings must hold an integer
func (p payload) integer(key string, def int) int {
	if i, ok := p.lookupInteger(key); ok {
		return i
	}
	return def
}

// lookupInteger reports whether key holds a parsable integer
func (p payload) lookupInteger(key string) (int, bool) {
	switch v := p[key].(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), true
		}
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return int(d.IntPart()), true
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func (p payload) text(key, def string) string {
	if v, ok := p[key].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}
