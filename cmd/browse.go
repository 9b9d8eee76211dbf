package cmd

import "github.com/spf13/cobra"

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Launch the interactive post browser",
	Long:  "Open the two-pane post browser. Same as running blogctl with no arguments.",
	RunE:  runTUI,
}

func init() {
	browseCmd.Flags().BoolVar(&flagOffline, "offline", false, "browse the local snapshot without contacting the backend")
	rootCmd.AddCommand(browseCmd)
}
