package rag

import "testing"

func TestExtractInsights_FixedOrderAndTitles(t *testing.T) {
	t.Parallel()
	text := "We processed 150 orders generating ₹2,50,000 in revenue. " +
		"The average order value was ₹1,667 and growth was 12.5% month over month."

	insights := ExtractInsights(text, DefaultCurrency())
	if len(insights) != 4 {
		t.Fatalf("expected 4 insights, got %d: %+v", len(insights), insights)
	}

	want := []Insight{
		{Type: "count", Value: "150", Title: "Total Orders", Icon: "chart"},
		{Type: "currency", Value: "₹2,50,000", Title: "Total Revenue", Icon: "rupee"},
		{Type: "currency", Value: "₹1,667", Title: "Average Order Value", Icon: "rupee"},
		{Type: "percentage", Value: "12.5%", Title: "Growth Rate", Icon: "chart"},
	}
	for i, w := range want {
		if insights[i] != w {
			t.Errorf("insight %d: got %+v, want %+v", i, insights[i], w)
		}
	}
}

func TestExtractInsights_DollarAmountsConverted(t *testing.T) {
	t.Parallel()
	text := "Revenue reached $1,250 this quarter."

	insights := ExtractInsights(text, DefaultCurrency())
	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	if insights[0].Value != "₹1,03,750" {
		t.Errorf("expected converted value ₹1,03,750, got %q", insights[0].Value)
	}
}

func TestExtractInsights_RupeesWordForm(t *testing.T) {
	t.Parallel()
	text := "Total came to Rupees 5,000 across all stores."

	insights := ExtractInsights(text, DefaultCurrency())
	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	if insights[0].Value != "₹5,000" {
		t.Errorf("expected ₹5,000, got %q", insights[0].Value)
	}
}

func TestExtractInsights_NoMatches(t *testing.T) {
	t.Parallel()
	if got := ExtractInsights("Nothing quantitative here.", DefaultCurrency()); len(got) != 0 {
		t.Errorf("expected no insights, got %+v", got)
	}
}

func TestExtractInsights_EachRuleContributesOnce(t *testing.T) {
	t.Parallel()
	text := "First 10 orders then 20 orders. Growth 5% then 7%."

	insights := ExtractInsights(text, DefaultCurrency())
	if len(insights) != 2 {
		t.Fatalf("expected 2 insights (one per rule), got %d: %+v", len(insights), insights)
	}
	if insights[0].Value != "10" {
		t.Errorf("count rule must take the first match, got %q", insights[0].Value)
	}
	if insights[1].Value != "5%" {
		t.Errorf("percentage rule must take the first match, got %q", insights[1].Value)
	}
}

func TestExtractActionItems_KeywordsAndCap(t *testing.T) {
	t.Parallel()
	text := "You should restock the MT-270 filters. " +
		"We recommend contacting the distributor. " +
		"Consider expanding to the northern region. " +
		"You should also review pricing. " +
		"Sales were flat otherwise."

	items := ExtractActionItems(text)
	if len(items) != 3 {
		t.Fatalf("expected cap of 3 action items, got %d: %v", len(items), items)
	}
	if items[0] != "You should restock the MT-270 filters" {
		t.Errorf("unexpected first item %q", items[0])
	}
	if items[2] != "Consider expanding to the northern region" {
		t.Errorf("expected original order preserved, got %q", items[2])
	}
}

func TestExtractActionItems_CaseInsensitive(t *testing.T) {
	t.Parallel()
	items := ExtractActionItems("We RECOMMEND a full service.")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestExtractActionItems_NoKeywords(t *testing.T) {
	t.Parallel()
	if items := ExtractActionItems("The tractor is fine. No issues found."); len(items) != 0 {
		t.Errorf("expected no items, got %v", items)
	}
}
