package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonscope/pkg/query"
)

func (c *CLI) queryCommand() *cobra.Command {
	var (
		count  bool
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "query [file] [expression]",
		Short: "Evaluate a JSONPath expression",
		Long: `Evaluate an RFC 9535 JSONPath expression and print every match as
its normalized path and compact JSON value, separated by a tab.`,
		Example: `  jsonscope query data.json '$.users[?@.age > 30].name'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := query.Compile(args[1])
			if err != nil {
				return err
			}
			s, err := c.openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			matches := q.Select(s.Document())
			c.Logger.Debug("query evaluated", "expr", q.String(), "matches", len(matches))

			out := cmd.OutOrStdout()
			if count {
				fmt.Fprintln(out, len(matches))
				return nil
			}
			if pretty {
				fmt.Fprintln(out, matchTable(matches))
				return nil
			}
			for _, m := range matches {
				val, err := m.Value.MarshalJSON()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\n", m.Path.QueryExpression(), val)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&count, "count", "c", false, "print only the number of matches")
	cmd.Flags().BoolVar(&pretty, "table", false, "print matches as a table")

	return cmd
}

// matchTable renders matches as a rounded table with a dim header.
func matchTable(matches []query.Match) string {
	rows := make([][]string, len(matches))
	for i, m := range matches {
		rows[i] = []string{m.Path.QueryExpression(), m.Value.Kind().String(), truncateCell(rowSummary(m.Value), 60)}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Path", "Type", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func truncateCell(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
