package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// MediaCmd returns the media command
func MediaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Store task images and classify media URLs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "upload [file]",
		Short: "Store an image and print its URL",
		Long: `Copy an image into the media directory and print the URL to use with
kanban task add --media or task update --media.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			svc, err := services()
			if err != nil {
				return err
			}
			url, err := svc.Media.UploadImage(NewContext(cmd.Context()), filepath.Base(args[0]), content)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Uploaded %s\n  %s\n", filepath.Base(args[0]), url)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "resolve [url]",
		Short: "Tell whether a URL is an image or a YouTube video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			ref, err := svc.Media.ResolveMedia(NewContext(cmd.Context()), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", ref.Kind, ref.URL)
			return nil
		},
	})

	return cmd
}
