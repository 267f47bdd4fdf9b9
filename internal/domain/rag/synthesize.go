package rag

import (
	"time"

	"github.com/agritechlabs/sahayak/pkg/uuid"
)

// Synthesizer assembles the final ChatResponse from raw generated text.
// Extraction is best-effort and never fails the request: missing patterns
// simply leave the corresponding lists empty or shorter.
type Synthesizer struct {
	currency Currency
}

// NewSynthesizer creates a Synthesizer with the given currency normalization.
func NewSynthesizer(currency Currency) Synthesizer {
	return Synthesizer{currency: currency}
}

// Synthesize wraps rawText with session and provenance metadata, then
// branches on role to extract the role-specific structured fields.
// A missing sessionID is replaced with a generated one.
func (s Synthesizer) Synthesize(rawText string, role Role, sessionID, provider, model string) *ChatResponse {
	if sessionID == "" {
		sessionID = "session_" + uuid.NewV7().String()
	}

	resp := &ChatResponse{
		ResponseText: rawText,
		SessionID:    sessionID,
		Timestamp:    time.Now().UTC(),
		Provider:     provider,
		Model:        model,
	}

	if role == RoleAdmin {
		resp.Kind = KindAdminAnalytics
		resp.Insights = ExtractInsights(rawText, s.currency)
		resp.ActionItems = ExtractActionItems(rawText)
		return resp
	}

	resp.Kind = KindUserSupport
	resp.EquipmentRefs = ExtractEquipmentRefs(rawText)
	resp.Videos = ExtractVideoMentions(rawText)
	resp.SpareParts = ExtractSpareParts(rawText, s.currency)
	resp.Steps = ExtractTroubleshootingSteps(rawText)
	return resp
}
