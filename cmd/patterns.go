package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spacedmonkey/blockpress/internal/patterns"
)

var patternsJSON bool

// patternsCmd represents the patterns command group.
var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Work with the active theme's block patterns",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help() // nolint:errcheck
	},
}

// patternsListCmd lists the theme's discovered patterns.
var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered block patterns",
	Long: `List the block patterns discovered in the active theme's patterns
directory, served from the versioned cache when a valid entry exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, t, _, scanner, _, err := loadEnvironment()
		if err != nil {
			return err
		}

		found := scanner.GetPatterns(cmd.Context(), t)

		if patternsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(found)
		}

		if len(found) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No patterns found")
			return nil
		}

		paths := make([]string, 0, len(found))
		for path := range found {
			paths = append(paths, path)
		}
		sort.Strings(paths)

		titleCaser := cases.Title(language.English)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Patterns in %s (%d):\n", t.Stylesheet, len(found))
		for _, path := range paths {
			p := found[path]
			fmt.Fprintf(out, "\n%s (%s)\n", p.Title, p.Slug)
			fmt.Fprintf(out, "  File: %s\n", path)
			if p.Description != "" {
				fmt.Fprintf(out, "  Description: %s\n", p.Description)
			}
			if len(p.Categories) > 0 {
				pretty := make([]string, len(p.Categories))
				for i, c := range p.Categories {
					pretty[i] = titleCaser.String(strings.ReplaceAll(c, "-", " "))
				}
				fmt.Fprintf(out, "  Categories: %s\n", strings.Join(pretty, ", "))
			}
			if p.ViewportWidth > 0 {
				fmt.Fprintf(out, "  Viewport Width: %d\n", p.ViewportWidth)
			}
		}

		warnings := scanner.Warnings().Warnings()
		if len(warnings) > 0 {
			fmt.Fprintf(out, "\n%d file(s) had header problems:\n", len(warnings))
			for _, w := range warnings {
				fmt.Fprintf(out, "  %s: %s\n", w.File, w.Message)
			}
		}

		return nil
	},
}

// patternsRefreshCmd drops the cached entry and rescans.
var patternsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Invalidate the pattern cache and rescan",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, t, st, scanner, _, err := loadEnvironment()
		if err != nil {
			return err
		}

		if err := st.Delete(patterns.CacheKey(t)); err != nil {
			return err
		}
		found := scanner.GetPatterns(cmd.Context(), t)
		fmt.Fprintf(cmd.OutOrStdout(), "Rescanned %s: %d pattern(s)\n", t.Stylesheet, len(found))
		return nil
	},
}

func init() {
	patternsListCmd.Flags().BoolVar(&patternsJSON, "json", false, "output as JSON")
	patternsCmd.AddCommand(patternsListCmd)
	patternsCmd.AddCommand(patternsRefreshCmd)
	rootCmd.AddCommand(patternsCmd)
}
