package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"saarthi-backend/internal/extract"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		mimeType string
		fullText bool
	)
	cmd := &cobra.Command{
		Use:          "extract <file>",
		Short:        "Extract text from a PDF, DOCX, PPTX or TXT file and print the result as JSON",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := extract.Extract(context.Background(), args[0], mimeType)
			if !fullText {
				res.Text = ""
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
			if !res.Success {
				return fmt.Errorf("extraction failed: %s", res.Reason)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mimeType, "mime", "", "declared media type (defaults to extension sniffing)")
	cmd.Flags().BoolVar(&fullText, "text", false, "include the full extracted text")
	return cmd
}
