package domain

import (
	"fmt"
	"strings"
)

// Undertone is the coarse hue cast of the skin, independent of depth
type Undertone string

const (
	UndertoneWarm    Undertone = "warm"
	UndertoneCool    Undertone = "cool"
	UndertoneNeutral Undertone = "neutral"
	UndertoneOlive   Undertone = "olive"
)

// Undertones lists every valid undertone
var Undertones = []Undertone{UndertoneWarm, UndertoneCool, UndertoneNeutral, UndertoneOlive}

// IsValid reports whether u is one of the enumerated undertones
func (u Undertone) IsValid() bool {
	switch u {
	case UndertoneWarm, UndertoneCool, UndertoneNeutral, UndertoneOlive:
		return true
	}
	return false
}

// ParseUndertone normalizes s and returns the matching undertone.
// Returns ErrInvalidArgument when s is not an undertone.
func ParseUndertone(s string) (Undertone, error) {
	u := Undertone(strings.ToLower(strings.TrimSpace(s)))
	if !u.IsValid() {
		return "", fmt.Errorf("%w: undertone %q", ErrInvalidArgument, s)
	}
	return u, nil
}

// SkinToneDepth is a lightness bucket on an ordered five-point scale
type SkinToneDepth string

const (
	DepthLight       SkinToneDepth = "light"
	DepthLightMedium SkinToneDepth = "light-medium"
	DepthMedium      SkinToneDepth = "medium"
	DepthMediumDark  SkinToneDepth = "medium-dark"
	DepthDark        SkinToneDepth = "dark"
)

// Depths is the depth scale in order, lightest first. Index order is used
// for distance scoring.
var Depths = []SkinToneDepth{DepthLight, DepthLightMedium, DepthMedium, DepthMediumDark, DepthDark}

// Index returns the position of d on the depth scale, or -1 if d is invalid
func (d SkinToneDepth) Index() int {
	for i, depth := range Depths {
		if depth == d {
			return i
		}
	}
	return -1
}

// IsValid reports whether d is on the depth scale
func (d SkinToneDepth) IsValid() bool {
	return d.Index() >= 0
}

// Distance returns the absolute number of steps between d and other.
// Both must be valid.
func (d SkinToneDepth) Distance(other SkinToneDepth) int {
	diff := d.Index() - other.Index()
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// ParseSkinToneDepth accepts "light-medium", "Light Medium" and
// "light_medium" spellings.
func ParseSkinToneDepth(s string) (SkinToneDepth, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "-", "_", "-").Replace(normalized)
	d := SkinToneDepth(normalized)
	if !d.IsValid() {
		return "", fmt.Errorf("%w: skin tone depth %q", ErrInvalidArgument, s)
	}
	return d, nil
}

// Tier is the user's subscription level
type Tier string

const (
	TierFree     Tier = "free"
	TierPremium  Tier = "premium"
	TierLifetime Tier = "lifetime"
)

// IsValid reports whether t is a known tier
func (t Tier) IsValid() bool {
	return t == TierFree || t == TierPremium || t == TierLifetime
}

// IsPremium reports whether the tier unlocks the premium catalog and bonuses
func (t Tier) IsPremium() bool {
	return t == TierPremium || t == TierLifetime
}

// ParseTier maps s to a tier. An empty string is the free tier.
func ParseTier(s string) (Tier, error) {
	switch t := Tier(strings.ToLower(strings.TrimSpace(s))); t {
	case "", TierFree:
		return TierFree, nil
	case TierPremium, TierLifetime:
		return t, nil
	}
	return "", fmt.Errorf("%w: tier %q", ErrInvalidArgument, s)
}

// CatalogSelection decides which catalogs feed a match
type CatalogSelection string

const (
	SelectionBase            CatalogSelection = "base"
	SelectionBasePlusPremium CatalogSelection = "base+premium"
)

// SelectionFor resolves the catalog selection for a tier
func SelectionFor(t Tier) CatalogSelection {
	if t.IsPremium() {
		return SelectionBasePlusPremium
	}
	return SelectionBase
}

// FoundationRecord is one shade in the reference catalog
type FoundationRecord struct {
	ID             string        `json:"id"`
	Brand          string        `json:"brand"`
	ProductLine    string        `json:"productLine"`
	ShadeName      string        `json:"shadeName"`
	ColorSwatch    string        `json:"colorSwatch"`
	Undertone      Undertone     `json:"undertone"`
	SkinToneDepth  SkinToneDepth `json:"skinToneDepth"`
	CoverageLevel  string        `json:"coverageLevel,omitempty"`
	FinishType     string        `json:"finishType,omitempty"`
	PriceTier      string        `json:"priceTier,omitempty"`
	IsPremiumBrand bool          `json:"isPremiumBrand"`
}
