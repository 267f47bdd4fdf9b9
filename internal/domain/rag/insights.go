// Admin analytics extraction: each rule is an independent pure function over
// the generated text, composed by ExtractInsights. Pattern matching is
// best-effort; a rule that matches nothing contributes nothing, and the
// result caps are applied as an explicit post-processing step.
package rag

import (
	"regexp"
	"strings"
)

const (
	insightTypeCount      = "count"
	insightTypeCurrency   = "currency"
	insightTypePercentage = "percentage"

	iconChart = "chart"
	iconRupee = "rupee"

	maxInsights    = 4
	maxActionItems = 3
)

const amountPattern = `\d[\d,]*(?:\.\d+)?`

var (
	orderCountRe = regexp.MustCompile(`(?i)(\d+)\s*orders?`)
	currencyRe   = regexp.MustCompile(`(₹|\$|[Rr]upees?\s*)(` + amountPattern + `)`)
	averageRe    = regexp.MustCompile(`(?i)average[^.%\n]*?(₹|\$)?(` + amountPattern + `)`)
	percentRe    = regexp.MustCompile(`\d+(?:\.\d+)?%`)
)

// ExtractInsights scans admin analytics text for up to four structured
// insights, in the fixed order count → currency → average → percentage.
// Each rule contributes at most one insight.
func ExtractInsights(text string, cur Currency) []Insight {
	var insights []Insight
	if in := extractOrderCount(text); in != nil {
		insights = append(insights, *in)
	}
	if in := extractRevenue(text, cur); in != nil {
		insights = append(insights, *in)
	}
	if in := extractAverage(text, cur); in != nil {
		insights = append(insights, *in)
	}
	if in := extractPercentage(text); in != nil {
		insights = append(insights, *in)
	}
	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

// extractOrderCount matches the first integer immediately followed by the
// word "order(s)".
func extractOrderCount(text string) *Insight {
	m := orderCountRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return &Insight{Type: insightTypeCount, Value: m[1], Title: "Total Orders", Icon: iconChart}
}

// extractRevenue matches the first currency amount, converting dollar
// amounts to the fixed currency.
func extractRevenue(text string, cur Currency) *Insight {
	m := currencyRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return &Insight{
		Type:  insightTypeCurrency,
		Value: cur.Normalize(m[2], m[1] == "$"),
		Title: "Total Revenue",
		Icon:  iconRupee,
	}
}

// extractAverage matches an "average ..." phrase followed by an amount, with
// the same dollar normalization as extractRevenue.
func extractAverage(text string, cur Currency) *Insight {
	m := averageRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return &Insight{
		Type:  insightTypeCurrency,
		Value: cur.Normalize(m[2], m[1] == "$"),
		Title: "Average Order Value",
		Icon:  iconRupee,
	}
}

// extractPercentage matches the first percentage token.
func extractPercentage(text string) *Insight {
	m := percentRe.FindString(text)
	if m == "" {
		return nil
	}
	return &Insight{Type: insightTypePercentage, Value: m, Title: "Growth Rate", Icon: iconChart}
}

// ExtractActionItems returns up to three sentences containing "should",
// "recommend" or "consider" (case-insensitive), in original order, trimmed.
func ExtractActionItems(text string) []string {
	var items []string
	for _, sentence := range strings.Split(text, ".") {
		lower := strings.ToLower(sentence)
		if !strings.Contains(lower, "should") &&
			!strings.Contains(lower, "recommend") &&
			!strings.Contains(lower, "consider") {
			continue
		}
		if trimmed := strings.TrimSpace(sentence); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) > maxActionItems {
		items = items[:maxActionItems]
	}
	return items
}
