package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacedmonkey/blockpress/internal/assets"
	"github.com/spacedmonkey/blockpress/internal/styles"
	"github.com/spacedmonkey/blockpress/internal/themejson"
)

var stylesheetTypes []string

// stylesCmd represents the styles command group.
var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "Resolve and generate global styles",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help() // nolint:errcheck
	},
}

// newStylesResolver wires the merged-tree resolver for the active theme.
func newStylesResolver() (*styles.Resolver, error) {
	cfg, t, _, _, logger, err := loadEnvironment()
	if err != nil {
		return nil, err
	}
	merge := themejson.NewResolver()
	return styles.NewResolver(t, merge, styles.Options{
		Debug:               cfg.Development.Debug,
		AdminContext:        cfg.Development.AdminContext,
		SeparateBlockAssets: cfg.Development.SeparateBlockAssets,
	}, logger), nil
}

// stylesStylesheetCmd prints the generated global stylesheet.
var stylesStylesheetCmd = &cobra.Command{
	Use:   "stylesheet",
	Short: "Print the generated global stylesheet",
	Long: `Print the stylesheet generated from the merged configuration tree.

Without --types, the sections emitted depend on whether the active theme
ships a theme.json: variables, styles, and presets when it does; variables,
presets, and base layout styles when it does not.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := newStylesResolver()
		if err != nil {
			return err
		}

		requested := make([]styles.StylesheetType, 0, len(stylesheetTypes))
		for _, t := range stylesheetTypes {
			requested = append(requested, styles.StylesheetType(t))
		}

		fmt.Fprintln(cmd.OutOrStdout(), resolver.GetStylesheet(requested...))
		return nil
	},
}

// stylesSVGFiltersCmd prints the duotone SVG filter document.
var stylesSVGFiltersCmd = &cobra.Command{
	Use:   "svg-filters",
	Short: "Print the duotone SVG filter definitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := newStylesResolver()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), resolver.GetStylesSVGFilters())
		return nil
	},
}

// stylesBlocksCmd renders per-block styles and shows the handle each rule
// attaches to.
var stylesBlocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Render per-block global styles and their handles",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := newStylesResolver()
		if err != nil {
			return err
		}

		reg := assets.NewStyleRegistry()
		resolver.AddGlobalStylesForBlocks(reg)

		handles := reg.HandlesSorted()
		if len(handles) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No per-block styles declared")
			return nil
		}
		for _, handle := range handles {
			fmt.Fprintf(cmd.OutOrStdout(), "/* handle: %s */\n%s\n", handle, reg.Inline(handle))
		}
		return nil
	},
}

func init() {
	stylesStylesheetCmd.Flags().StringSliceVar(&stylesheetTypes, "types", nil,
		"stylesheet sections to emit (variables, styles, presets, base-layout-styles)")
	stylesCmd.AddCommand(stylesStylesheetCmd)
	stylesCmd.AddCommand(stylesSVGFiltersCmd)
	stylesCmd.AddCommand(stylesBlocksCmd)
	rootCmd.AddCommand(stylesCmd)
}
