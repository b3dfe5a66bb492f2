package advisor

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/yungbote/ecotrack-backend/internal/domain/advice"
)

// MaxInsights caps the persisted insights per generation.
const MaxInsights = 4

// ErrMalformedOutput marks model output that does not honor the JSON contract.
var ErrMalformedOutput = errors.New("advisor: malformed model output")

type rawRecommendation struct {
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	PotentialSavings json.RawMessage `json:"potentialSavings"`
	Priority         string          `json:"priority"`
}

// ParseRecommendations decodes {"recommendations": [...]}. A missing or
// non-array field, invalid JSON, or an entry without title or description is
// ErrMalformedOutput. An empty array is valid.
func ParseRecommendations(raw string) ([]RecommendationDraft, error) {
	var envelope struct {
		Recommendations json.RawMessage `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if !isJSONArray(envelope.Recommendations) {
		return nil, fmt.Errorf("%w: recommendations array missing", ErrMalformedOutput)
	}
	var items []rawRecommendation
	if err := json.Unmarshal(envelope.Recommendations, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	out := make([]RecommendationDraft, 0, len(items))
	for i, it := range items {
		title := strings.TrimSpace(it.Title)
		desc := strings.TrimSpace(it.Description)
		if title == "" || desc == "" {
			return nil, fmt.Errorf("%w: recommendation %d lacks title or description", ErrMalformedOutput, i)
		}
		amount, text := parseSavings(it.PotentialSavings)
		out = append(out, RecommendationDraft{
			Title:            title,
			Description:      desc,
			Category:         normalizeRecommendationCategory(it.Category),
			Priority:         advice.ParsePriority(strings.ToLower(strings.TrimSpace(it.Priority)), advice.PriorityMedium),
			PotentialSavings: amount,
			SavingsText:      text,
			Source:           advice.SourceAI,
		})
	}
	return out, nil
}

type rawInsight struct {
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	PotentialSavings json.RawMessage `json:"potentialSavings"`
	Priority         string          `json:"priority"`
}

// ParseInsights decodes {"insights": [...]}, keeping at most MaxInsights and
// filling blank fields with defaults. Only invalid JSON is an error; a missing
// or non-array field yields no insights.
func ParseInsights(raw string) ([]InsightDraft, error) {
	var envelope struct {
		Insights json.RawMessage `json:"insights"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if !isJSONArray(envelope.Insights) {
		return []InsightDraft{}, nil
	}
	var items []rawInsight
	if err := json.Unmarshal(envelope.Insights, &items); err != nil {
		return []InsightDraft{}, nil
	}
	if len(items) > MaxInsights {
		items = items[:MaxInsights]
	}

	out := make([]InsightDraft, 0, len(items))
	for _, it := range items {
		d := InsightDraft{
			Title:            defaultString(it.Title, "Environmental Insight"),
			Description:      defaultString(it.Description, "Analysis of your environmental impact."),
			Category:         normalizeInsightCategory(it.Category),
			Priority:         advice.ParsePriority(strings.ToLower(strings.TrimSpace(it.Priority)), advice.PriorityMedium),
			PotentialSavings: savingsText(it.PotentialSavings),
		}
		out = append(out, d)
	}
	return out, nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseLeadingFloat reads the longest numeric prefix of s: "15-25" is 15,
// "$20" and "" are 0.
func ParseLeadingFloat(s string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseSavings accepts a JSON number or string.
func parseSavings(raw json.RawMessage) (float64, string) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return 0, ""
	}
	var n float64
	if err := json.Unmarshal(trimmed, &n); err == nil {
		return n, string(trimmed)
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return ParseLeadingFloat(s), strings.TrimSpace(s)
	}
	return 0, ""
}

func savingsText(raw json.RawMessage) *string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		return &s
	}
	var n float64
	if err := json.Unmarshal(trimmed, &n); err == nil {
		txt := string(trimmed)
		return &txt
	}
	return nil
}

func normalizeRecommendationCategory(raw string) string {
	switch c := strings.ToLower(strings.TrimSpace(raw)); c {
	case advice.CategoryElectricity, advice.CategoryWater, advice.CategoryGas, advice.CategoryGeneral:
		return c
	case "energy":
		return advice.CategoryElectricity
	default:
		return advice.CategoryGeneral
	}
}

func normalizeInsightCategory(raw string) string {
	switch c := strings.ToLower(strings.TrimSpace(raw)); c {
	case advice.CategoryElectricity, advice.CategoryWater, advice.CategoryGas, advice.CategoryEnvironmental:
		return c
	default:
		return advice.CategoryEnvironmental
	}
}

func defaultString(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}
