// Package rag implements the retrieval-augmented chat core: role-aware
// prompt composition, generation with provider failover, and deterministic
// extraction of structured fields from the generated text.
package rag

import "time"

// Role selects the prompt variant and the response shape.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one of the two supported variants.
func (r Role) Valid() bool { return r == RoleAdmin || r == RoleUser }

// ResponseKind tags the structured payload shape of a ChatResponse.
type ResponseKind string

const (
	KindAdminAnalytics ResponseKind = "admin_analytics"
	KindUserSupport    ResponseKind = "user_support"
)

// ChatInput is one inbound chat request. Created per call; immutable.
type ChatInput struct {
	Message      string
	UserID       string
	SessionID    string
	ExtraContext string
	Role         Role
}

// Insight is a structured fact extracted from admin analytics text.
type Insight struct {
	Type  string `json:"type"` // count, currency, percentage
	Value string `json:"value"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// SparePart is a part reference extracted from support text. Price is in the
// fixed currency, empty when no price was mentioned near the part number.
type SparePart struct {
	PartNumber string `json:"partNumber"`
	Price      string `json:"price,omitempty"`
}

// TroubleshootingStep is one numbered instruction extracted from support text.
// Steps are renumbered sequentially in source order.
type TroubleshootingStep struct {
	Step        int    `json:"step"`
	Instruction string `json:"instruction"`
}

// ChatResponse is the assembled reply for one request. Not persisted by the
// core; sessionId is generated when the caller did not supply one.
type ChatResponse struct {
	ResponseText string       `json:"response"`
	SessionID    string       `json:"sessionId"`
	Timestamp    time.Time    `json:"timestamp"`
	Kind         ResponseKind `json:"type"`
	Provider     string       `json:"provider"`
	Model        string       `json:"model"`

	// admin_analytics fields
	Insights    []Insight `json:"insights,omitempty"`
	ActionItems []string  `json:"actionItems,omitempty"`

	// user_support fields
	EquipmentRefs []string              `json:"equipmentRefs,omitempty"`
	Videos        []string              `json:"videos,omitempty"`
	SpareParts    []SparePart           `json:"spareParts,omitempty"`
	Steps         []TroubleshootingStep `json:"troubleshootingSteps,omitempty"`
}
