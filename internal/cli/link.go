package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shadematch/backend/internal/domain"
	"github.com/shadematch/backend/internal/usecase"
)

func newLinkCmd(opts *options) *cobra.Command {
	var brand, shade, id string

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Print a shopping link for a brand and shade",
		Example: `  shadematch link --brand "Fenty Beauty" --shade 150
  shadematch link --id fenty-pfsm-150`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id != "" {
				record, err := lookupRecord(opts, id)
				if err != nil {
					return err
				}
				brand, shade = record.Brand, record.ShadeName
			}
			return runLink(cmd.OutOrStdout(), opts, brand, shade)
		},
	}

	cmd.Flags().StringVarP(&brand, "brand", "b", "", "Brand name")
	cmd.Flags().StringVarP(&shade, "shade", "s", "", "Shade name")
	cmd.Flags().StringVarP(&id, "id", "i", "", "Catalog record id, instead of --brand and --shade")

	cmd.MarkFlagsRequiredTogether("brand", "shade")
	cmd.MarkFlagsOneRequired("id", "brand")
	cmd.MarkFlagsMutuallyExclusive("id", "brand")
	cmd.MarkFlagsMutuallyExclusive("id", "shade")

	return cmd
}

func lookupRecord(opts *options, id string) (domain.FoundationRecord, error) {
	cat, err := opts.loadCatalog()
	if err != nil {
		return domain.FoundationRecord{}, err
	}
	record, ok := cat.Lookup(strings.TrimSpace(id))
	if !ok {
		return domain.FoundationRecord{}, fmt.Errorf("%w: no catalog record %q", domain.ErrNotFound, id)
	}
	return record, nil
}

func runLink(out io.Writer, opts *options, brand, shade string) error {
	brand = strings.TrimSpace(brand)
	shade = strings.TrimSpace(shade)
	if brand == "" || shade == "" {
		return fmt.Errorf("%w: brand and shade must not be blank", domain.ErrInvalidRequest)
	}

	url := usecase.NewShoppingLinkResolver().ResolveShoppingURL(brand, shade)
	if opts.format == formatJSON {
		return writeJSON(out, map[string]string{"brand": brand, "shade": shade, "url": url})
	}
	fmt.Fprintln(out, url)
	return nil
}
