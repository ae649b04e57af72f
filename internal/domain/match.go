package domain

// MatchResult is one scored catalog record. Results are built per request
// and never stored by the matcher.
type MatchResult struct {
	Foundation      FoundationRecord `json:"foundation"`
	MatchScore      int              `json:"matchScore"`      // 0-100
	ConfidenceScore int              `json:"confidenceScore"` // 0-100, accumulated separately
	Reasons         []string         `json:"reasons"`
	ShoppingURL     string           `json:"shoppingUrl,omitempty"`
}

// MatchRequest is the raw input for a recommendation
type MatchRequest struct {
	Undertone string `json:"undertone" binding:"required"`
	SkinTone  string `json:"skinTone" binding:"required"`
	Tier      string `json:"tier,omitempty"`
}

// Recommendation is the response for a MatchRequest
type Recommendation struct {
	Undertone Undertone        `json:"undertone"`
	SkinTone  SkinToneDepth    `json:"skinTone"`
	Tier      Tier             `json:"tier"`
	Selection CatalogSelection `json:"selection"`
	Matches   []MatchResult    `json:"matches"`
	Source    string           `json:"source"` // "matcher" or "cache"
}
