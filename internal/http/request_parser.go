package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"drivelog/internal/core"
)

// maxBodyBytes bounds a register request; a record is a few hundred bytes.
const maxBodyBytes = 64 << 10

// RequestBodyParser reads a form-encoded or JSON body once and exposes its
// fields by name. JSON lets scripts register days without the HTML form.
type RequestBodyParser struct {
	body     []byte
	jsonData map[string]any
	formData url.Values
	parsed   bool
	err      error
}

func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	return p
}

// Parse decodes the body. Bodies starting with '{' are treated as JSON.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}
	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}
	if p.body[0] == '{' {
		p.jsonData = make(map[string]any)
		p.err = json.Unmarshal(p.body, &p.jsonData)
		return p.err
	}
	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

// Get returns a sanitised value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// Has reports whether a JSON body carries key with a non-null value. Form
// bodies always report true: an unchecked checkbox is simply absent.
func (p *RequestBodyParser) Has(key string) bool {
	if p.jsonData == nil {
		return true
	}
	val, ok := p.jsonData[key]
	return ok && val != nil
}

func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// recordInput maps body fields onto a RecordInput. Field names follow the
// persisted header.
func recordInput(p *RequestBodyParser) core.RecordInput {
	return core.RecordInput{
		Date:                 p.Get("date"),
		Worked:               p.Get("worked"),
		Revenue:              p.Get("revenue"),
		DistanceKm:           p.Get("distanceKm"),
		FuelCost:             p.Get("fuelCost"),
		FoodCost:             p.Get("foodCost"),
		AttendantCost:        p.Get("attendantCost"),
		CarWashCost:          p.Get("carWashCost"),
		GarageCost:           p.Get("garageCost"),
		OtherCost:            p.Get("otherCost"),
		OtherCostDescription: p.Get("otherCostDescription"),
		HoursWorked:          p.Get("hoursWorked"),
		DailyTarget:          p.Get("dailyTarget"),
		Notes:                p.Get("notes"),
	}
}

// queryKey returns a trimmed query parameter, or fallback when it is absent.
func queryKey(r *http.Request, name, fallback string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(name)); v != "" {
		return v
	}
	return fallback
}
