package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/p-blackswan/arkide-viewer/internal/guidelines"
)

var guidelinesHTML bool

var guidelinesCmd = &cobra.Command{
	Use:   "guidelines [key]",
	Short: "List guideline pages or print one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := guidelines.Embedded()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()

		if len(args) == 0 {
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tTITLE\tSUMMARY")
			for _, p := range bundle.List() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Key, p.Title, p.Summary)
			}
			return tw.Flush()
		}

		key := guidelines.Key(args[0])
		if guidelinesHTML {
			html, err := guidelines.NewRenderer(bundle).HTML(key)
			if err != nil {
				return err
			}
			fmt.Fprint(w, html)
			return nil
		}
		page, err := bundle.Page(key)
		if err != nil {
			return err
		}
		fmt.Fprint(w, page.Body)
		return nil
	},
}

func init() {
	guidelinesCmd.Flags().BoolVar(&guidelinesHTML, "html", false, "render the page as HTML")
}
