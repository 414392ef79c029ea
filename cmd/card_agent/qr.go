package main

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/nextlevelcleaning/cards/internal/identity"
	"github.com/nextlevelcleaning/cards/internal/qr"
	"github.com/nextlevelcleaning/cards/internal/types"
)

var (
	qrOut      string
	qrSize     int
	qrDataURI  bool
	qrCategory string
)

var qrCmd = &cobra.Command{
	Use:   "qr <page-url | slug>",
	Short: "Print or write the QR code for a card",
	Long: `Builds the canonical production URL for a card and prints it. With --out the QR code
PNG is written to a file; with --data-uri the PNG is printed as a data: URI.

The argument is either a card page URL on any host or a bare slug combined with --category.`,
	Args: cobra.ExactArgs(1),
	RunE: runQR,
}

func init() {
	qrCmd.Flags().StringVarP(&qrOut, "out", "o", "", "Write the QR PNG to this file")
	qrCmd.Flags().IntVar(&qrSize, "size", qr.Size, "QR image size in pixels")
	qrCmd.Flags().BoolVar(&qrDataURI, "data-uri", false, "Print the QR PNG as a data URI")
	qrCmd.Flags().StringVar(&qrCategory, "category", string(types.CategoryDirector), "Category used with a bare slug")
	rootCmd.AddCommand(qrCmd)
}

func runQR(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	id, err := qrIdentity(args[0])
	if err != nil {
		return err
	}
	canonical, err := qr.CanonicalURL(cfg.ProductionDomain, id)
	if err != nil {
		return err
	}
	if err := qr.Validate(canonical, cfg.ProductionDomain); err != nil {
		return err
	}

	//nolint:errcheck // writing to stdout; errors are not recoverable
	fmt.Fprintln(out(cmd), canonical)

	if qrOut != "" {
		if err := qr.WriteFile(qrOut, canonical, qrSize); err != nil {
			return err
		}
		//nolint:errcheck // writing to stdout; errors are not recoverable
		fmt.Fprintf(out(cmd), "✓ QR code written to %s\n", qrOut)
	}
	if qrDataURI {
		png, err := qr.GoQR{}.PNG(canonical, qrSize)
		if err != nil {
			return err
		}
		//nolint:errcheck // writing to stdout; errors are not recoverable
		fmt.Fprintln(out(cmd), qr.DataURI(png))
	}
	return nil
}

func qrIdentity(arg string) (types.Identity, error) {
	if u, err := url.Parse(arg); err == nil && u.Scheme != "" {
		id, _, err := identity.Resolve(u)
		return id, err
	}
	cat, err := types.ParseCategory(qrCategory)
	if err != nil {
		return types.Identity{}, err
	}
	if arg == "" || arg == identity.TemplateSlug {
		return types.Identity{}, errors.New("a card slug is required")
	}
	return types.Identity{Slug: arg, Category: cat}, nil
}
