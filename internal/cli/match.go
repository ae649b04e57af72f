package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shadematch/backend/internal/domain"
	"github.com/shadematch/backend/internal/usecase"
)

func newMatchCmd(opts *options) *cobra.Command {
	var undertone, depth, tier string

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank shades for an undertone and skin tone depth",
		Example: `  shadematch match --undertone warm --depth medium
  shadematch match -u cool -d light-medium --tier premium --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd.OutOrStdout(), opts, undertone, depth, tier)
		},
	}

	cmd.Flags().StringVarP(&undertone, "undertone", "u", "", "Undertone: warm, cool, neutral or olive (required)")
	cmd.Flags().StringVarP(&depth, "depth", "d", "", "Skin tone depth: light, light-medium, medium, medium-dark or dark (required)")
	cmd.Flags().StringVarP(&tier, "tier", "t", string(domain.TierFree), "Subscription tier: free, premium or lifetime")

	cmd.MarkFlagRequired("undertone")
	cmd.MarkFlagRequired("depth")

	return cmd
}

func runMatch(out io.Writer, opts *options, undertoneArg, depthArg, tierArg string) error {
	undertone, err := domain.ParseUndertone(undertoneArg)
	if err != nil {
		return err
	}
	depth, err := domain.ParseSkinToneDepth(depthArg)
	if err != nil {
		return err
	}
	tier, err := domain.ParseTier(tierArg)
	if err != nil {
		return err
	}

	logger, err := opts.logger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cat, err := opts.loadCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	matcher := usecase.NewMatchingService(cat, usecase.MatchConfig{
		EnableDebugLogging: opts.verbose,
		Logger:             logger,
	})
	matches, err := matcher.Match(undertone, depth, tier)
	if err != nil {
		return err
	}

	resolver := usecase.NewShoppingLinkResolver()
	for i := range matches {
		matches[i].ShoppingURL = resolver.ResolveShoppingURL(matches[i].Foundation.Brand, matches[i].Foundation.ShadeName)
	}

	recommendation := domain.Recommendation{
		Undertone: undertone,
		SkinTone:  depth,
		Tier:      tier,
		Selection: domain.SelectionFor(tier),
		Matches:   matches,
		Source:    usecase.SourceMatcher,
	}

	if opts.format == formatJSON {
		return writeJSON(out, recommendation)
	}
	writeMatchesText(out, recommendation)
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeMatchesText(out io.Writer, r domain.Recommendation) {
	fmt.Fprintf(out, "%s undertone, %s depth (%s tier): %d match(es)\n", r.Undertone, r.SkinTone, r.Tier, len(r.Matches))
	for i, m := range r.Matches {
		f := m.Foundation
		fmt.Fprintf(out, "%2d. %s %s %s  match %d  confidence %d\n", i+1, f.Brand, f.ProductLine, f.ShadeName, m.MatchScore, m.ConfidenceScore)
		if len(m.Reasons) > 0 {
			fmt.Fprintf(out, "    %s\n", strings.Join(m.Reasons, "; "))
		}
		if m.ShoppingURL != "" {
			fmt.Fprintf(out, "    %s\n", m.ShoppingURL)
		}
	}
}
