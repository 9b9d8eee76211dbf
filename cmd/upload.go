package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ahaampo5/blog/internal/format"
	"github.com/ahaampo5/blog/internal/output"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an image to the blog backend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		if err := e.requireAdmin(); err != nil {
			return err
		}

		name := filepath.Base(args[0])
		if !format.IsImageFile(name) {
			return fmt.Errorf("%s is not a supported image type", name)
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat %s: %w", args[0], err)
		}

		resp, err := e.client.Upload(cmd.Context(), name, f)
		if err != nil {
			return fmt.Errorf("uploading %s: %w", name, err)
		}

		output.Success(cmd.OutOrStdout(), "uploaded %s (%s)", resp.Filename, format.FileSize(info.Size()))
		fmt.Fprintln(cmd.OutOrStdout(), resp.URL)
		return nil
	},
}
