package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func (c *CLI) viewCommand() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse a document interactively",
		Long: `Open the document in a full-screen tree viewer. Use / to search, n and N
to jump between matches, enter to toggle a row and y to copy its path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			m := newTreeModel(s, displayName(args[0]))
			if search != "" {
				m.applySearch(search)
				m.input.SetValue(search)
			}

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "start with this search term")

	return cmd
}
