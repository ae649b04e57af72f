package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadematch/backend/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMatchCommand_JSON(t *testing.T) {
	out, err := execute(t, "match", "--undertone", "warm", "--depth", "light", "--format", "json")
	require.NoError(t, err)

	var recommendation domain.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recommendation))

	assert.Equal(t, domain.UndertoneWarm, recommendation.Undertone)
	assert.Equal(t, domain.TierFree, recommendation.Tier)
	require.NotEmpty(t, recommendation.Matches)
	assert.LessOrEqual(t, len(recommendation.Matches), 4)
	assert.Equal(t, "fenty-pfsm-150", recommendation.Matches[0].Foundation.ID)
	assert.Equal(t, "https://fentybeauty.com/search?q=150", recommendation.Matches[0].ShoppingURL)
}

func TestMatchCommand_PremiumTierIncludesPremiumCatalog(t *testing.T) {
	out, err := execute(t, "match", "-u", "neutral", "-d", "medium", "--tier", "premium", "-f", "json")
	require.NoError(t, err)

	var recommendation domain.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recommendation))

	assert.Equal(t, domain.SelectionBasePlusPremium, recommendation.Selection)
	assert.Greater(t, len(recommendation.Matches), 4)

	premium := 0
	for _, m := range recommendation.Matches {
		if m.Foundation.IsPremiumBrand {
			premium++
		}
	}
	assert.NotZero(t, premium)
}

func TestMatchCommand_Text(t *testing.T) {
	out, err := execute(t, "match", "--undertone", "Warm", "--depth", "Light")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "warm undertone, light depth (free tier): 4 match(es)", lines[0])
	assert.Contains(t, out, " 1. Fenty Beauty")
	assert.Contains(t, out, "Perfect warm undertone match")
	assert.Contains(t, out, "https://fentybeauty.com/search?q=150")
}

func TestMatchCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing depth", []string{"match", "--undertone", "warm"}, `required flag(s) "depth" not set`},
		{"invalid undertone", []string{"match", "-u", "pink", "-d", "light"}, "invalid argument"},
		{"invalid depth", []string{"match", "-u", "warm", "-d", "tan"}, "invalid argument"},
		{"invalid tier", []string{"match", "-u", "warm", "-d", "light", "-t", "gold"}, "invalid argument"},
		{"invalid format", []string{"match", "-u", "warm", "-d", "light", "-f", "xml"}, "unknown format"},
		{"missing catalog file", []string{"match", "-u", "warm", "-d", "light", "-c", "/nonexistent/catalog.yaml"}, "load catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMatchCommand_CustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `
version: custom
base:
  - id: indie-1
    brand: Indie Co
    shade_name: Warm 2
    undertone: warm
    skin_tone_depth: medium
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	out, err := execute(t, "match", "-u", "warm", "-d", "medium", "-c", path, "-f", "json")
	require.NoError(t, err)

	var recommendation domain.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recommendation))
	require.Len(t, recommendation.Matches, 1)
	assert.Equal(t, 75, recommendation.Matches[0].MatchScore)
	assert.Equal(t, "https://www.amazon.com/s?k=Indie+Co+Warm+2+foundation", recommendation.Matches[0].ShoppingURL)
}

func TestLinkCommand(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, err := execute(t, "link", "--brand", "Fenty Beauty", "--shade", "150")
		require.NoError(t, err)
		assert.Equal(t, "https://fentybeauty.com/search?q=150\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "link", "-b", "Dior", "-s", "4N", "-f", "json")
		require.NoError(t, err)

		var got map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "Dior", got["brand"])
		assert.Equal(t, "https://www.dior.com/en_us/beauty/search?query=4N", got["url"])
	})

	t.Run("blank shade", func(t *testing.T) {
		_, err := execute(t, "link", "-b", "Dior", "-s", "  ")
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("by catalog id", func(t *testing.T) {
		out, err := execute(t, "link", "--id", "fenty-pfsm-150")
		require.NoError(t, err)
		assert.Equal(t, "https://fentybeauty.com/search?q=150\n", out)
	})

	t.Run("unknown catalog id", func(t *testing.T) {
		_, err := execute(t, "link", "-i", "no-such-shade")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("id and brand are exclusive", func(t *testing.T) {
		_, err := execute(t, "link", "-i", "fenty-pfsm-150", "-b", "Dior", "-s", "4N")
		assert.Error(t, err)
	})

	t.Run("requires id or brand", func(t *testing.T) {
		_, err := execute(t, "link")
		assert.Error(t, err)
	})
}
