package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/infopirate/gibson/pkg/colors"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the built-in color themes",
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		for _, name := range colors.ListThemes() {
			if plain {
				fmt.Fprintln(cmd.OutOrStdout(), name)
				continue
			}
			th, _ := colors.GetTheme(name)
			swatch := lipgloss.NewStyle().
				Background(lipgloss.Color(th.DesktopBg)).
				Foreground(lipgloss.Color(th.BrandFg)).
				Render(" GIBSON ")
			title := lipgloss.NewStyle().
				Background(lipgloss.Color(th.TitleActiveBg)).
				Foreground(lipgloss.Color(th.TitleActiveFg)).
				Render(" window ")
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s%s\n", name, swatch, title)
		}
	},
}

func init() {
	themesCmd.Flags().Bool("plain", false, "Names only")
	rootCmd.AddCommand(themesCmd)
}
