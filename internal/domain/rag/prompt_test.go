package rag

import (
	"strings"
	"testing"
)

func TestComposer_Deterministic(t *testing.T) {
	t.Parallel()
	c := NewComposer(DefaultCurrency(), "")
	docs := []string{"doc one", "doc two"}

	a := c.Compose("How much?", RoleAdmin, docs, "extra")
	b := c.Compose("How much?", RoleAdmin, docs, "extra")
	if a != b {
		t.Error("identical inputs must produce an identical prompt")
	}
}

func TestComposer_AdminVariant(t *testing.T) {
	t.Parallel()
	c := NewComposer(DefaultCurrency(), "")

	prompt := c.Compose("Show revenue", RoleAdmin, []string{"sales data"}, "")
	for _, want := range []string{
		"Retrieved Information:\nsales data",
		"admin analytics assistant",
		"never use dollars",
		"User Question: Show revenue",
		"₹",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("admin prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, defaultPersona) {
		t.Error("admin prompt must not contain the support persona")
	}
}

func TestComposer_UserVariant(t *testing.T) {
	t.Parallel()
	c := NewComposer(DefaultCurrency(), "")

	prompt := c.Compose("My tiller won't start", RoleUser, []string{"manual excerpt"}, "")
	if !strings.Contains(prompt, defaultPersona) {
		t.Error("user prompt missing the support persona")
	}
	if strings.Contains(prompt, "admin analytics assistant") {
		t.Error("user prompt must not contain admin instructions")
	}
}

func TestComposer_CustomPersona(t *testing.T) {
	t.Parallel()
	c := NewComposer(DefaultCurrency(), "a field service engineer")

	prompt := c.Compose("q", RoleUser, nil, "")
	if !strings.Contains(prompt, "a field service engineer") {
		t.Error("custom persona not used")
	}
}

func TestComposer_DocsJoinedWithBlankLine(t *testing.T) {
	t.Parallel()
	c := NewComposer(DefaultCurrency(), "")

	prompt := c.Compose("q", RoleUser, []string{"first", "second"}, "")
	if !strings.Contains(prompt, "first\n\nsecond") {
		t.Error("documents must be joined with a blank line")
	}
}

func TestComposer_EmptyDocsStillWellFormed(t *testing.T) {
	t.Parallel()
	c := NewComposer(DefaultCurrency(), "")

	prompt := c.Compose("q", RoleUser, nil, "")
	if !strings.Contains(prompt, "Retrieved Information:") {
		t.Error("context block header missing")
	}
	if !strings.Contains(prompt, "User Question: q") {
		t.Error("question missing")
	}
}

func TestComposer_ExtraContextOptional(t *testing.T) {
	t.Parallel()
	c := NewComposer(DefaultCurrency(), "")

	with := c.Compose("q", RoleUser, nil, "ongoing ticket #42")
	if !strings.Contains(with, "Additional Context: ongoing ticket #42") {
		t.Error("extra context block missing")
	}

	without := c.Compose("q", RoleUser, nil, "")
	if strings.Contains(without, "Additional Context:") {
		t.Error("extra context block must be omitted when empty")
	}
}
