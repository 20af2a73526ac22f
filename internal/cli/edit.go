package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mooshieblob1/PWA-NanoBanana/internal/genai"
)

var flagImages []string

var editCmd = &cobra.Command{
	Use:   "edit [prompt]",
	Short: "Edit one or more images with an instruction",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(flagImages) == 0 {
			return fmt.Errorf("at least one --image is required")
		}
		if len(flagImages) > 3 {
			return fmt.Errorf("at most 3 source images are supported")
		}
		prompt, err := effectivePrompt(args)
		if err != nil {
			return err
		}
		sources := make([]genai.Blob, 0, len(flagImages))
		for _, path := range flagImages {
			blob, err := genai.BlobFromFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			sources = append(sources, blob)
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.EditImage(cmd.Context(), prompt, sources)
		if err != nil {
			return describeFailure(err)
		}
		return writeResult(cmd, result)
	},
}

func init() {
	editCmd.Flags().StringArrayVarP(&flagImages, "image", "i", nil, "source image file (repeatable, up to 3)")
	editCmd.Flags().StringVarP(&flagOutput, "output", "o", "out.png", "output file path")
}
