package rag

import "strings"

// Composer builds the deterministic role-aware prompt. No model call is
// involved: identical inputs always yield an identical prompt string.
type Composer struct {
	currency Currency
	// persona is the support assistant identity for the user variant,
	// a deployment-time choice (e.g. "a customer support assistant for an
	// Indian agricultural equipment platform").
	persona string
}

const defaultPersona = "a customer support assistant for an Indian agricultural equipment platform"

// NewComposer creates a Composer. An empty persona falls back to the default.
func NewComposer(currency Currency, persona string) Composer {
	if persona == "" {
		persona = defaultPersona
	}
	return Composer{currency: currency, persona: persona}
}

// Compose merges the retrieved context, the role instructions, the optional
// extra context and the question into one prompt string. Documents are
// joined with a blank line and inserted verbatim; with zero documents the
// context block is empty but the prompt stays well-formed. The question is
// inserted verbatim; injection hardening is out of scope at this layer.
func (c Composer) Compose(question string, role Role, docs []string, extra string) string {
	sym := c.currency.Symbol

	var b strings.Builder
	b.WriteString("You are a helpful AI assistant. Use the following retrieved information to answer the user's question accurately.\n\n")
	b.WriteString("Retrieved Information:\n")
	b.WriteString(strings.Join(docs, "\n\n"))
	b.WriteString("\n\n")

	if role == RoleAdmin {
		b.WriteString("You are acting as an admin analytics assistant for an Indian agricultural equipment business. ")
		b.WriteString("Provide detailed business insights and data analysis based on the retrieved information. ")
		b.WriteString("Focus on metrics, trends, and actionable recommendations.\n\n")
		b.WriteString("IMPORTANT: Always use Indian Rupees (" + sym + ") for all currency amounts, never use dollars ($). ")
		b.WriteString("Convert any amounts to Indian currency format with " + sym + " symbol. For example: " + sym + "1,250 instead of $15.")
	} else {
		b.WriteString("You are acting as " + c.persona + ". ")
		b.WriteString("Help the customer with their query using the retrieved information. ")
		b.WriteString("Use Indian Rupees (" + sym + ") for all price mentions.")
	}
	b.WriteString("\n\n")

	if extra != "" {
		b.WriteString("Additional Context: " + extra + "\n\n")
	}

	b.WriteString("User Question: " + question + "\n\n")
	b.WriteString("Answer based on the retrieved information above. Remember to use " + sym + " (Indian Rupees) for all monetary values:")
	return b.String()
}
