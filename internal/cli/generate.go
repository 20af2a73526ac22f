package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mooshieblob1/PWA-NanoBanana/internal/genai"
	"github.com/Mooshieblob1/PWA-NanoBanana/pkg/zip"
)

var generateCmd = &cobra.Command{
	Use:   "generate [prompt]",
	Short: "Generate an image from a text prompt",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, err := effectivePrompt(args)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.TextToImage(cmd.Context(), prompt)
		if err != nil {
			return describeFailure(err)
		}
		return writeResult(cmd, result)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&flagOutput, "output", "o", "out.png", "output file path")
}

// writeResult stores the artifact, fixing up the extension when it does not
// match the returned MIME type.
func writeResult(cmd *cobra.Command, result *genai.Result) error {
	path := outputPath(flagOutput, result.MIMEType)
	if err := os.WriteFile(path, result.Data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes, %s)\n", path, len(result.Data), result.MIMEType)
	if result.Text != "" {
		fmt.Fprintln(cmd.OutOrStdout(), result.Text)
	}
	return nil
}

func outputPath(path, mime string) string {
	want := zip.ExtensionForMIME(mime)
	ext := strings.ToLower(filepath.Ext(path))
	if ext == want || (want == ".jpg" && ext == ".jpeg") {
		return path
	}
	if ext == "" {
		return path + want
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + want
}

// describeFailure rewords classified generation failures for terminal users.
func describeFailure(err error) error {
	var genErr *genai.GenerationError
	if !errors.As(err, &genErr) {
		return err
	}
	switch genErr.Cause {
	case genai.CauseSafetyBlocked:
		return fmt.Errorf("the request was blocked by safety filters (%s); try a different prompt", genErr.Reason)
	case genai.CauseTextOnly:
		return fmt.Errorf("the model answered with text instead of an image:\n%s", genErr.Detail)
	case genai.CauseBadFinish:
		return fmt.Errorf("generation stopped early (%s); try again or simplify the prompt", genErr.Reason)
	default:
		return errors.New("the model returned no image; try again")
	}
}
