// Package cli implements the nanobanana command tree.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Mooshieblob1/PWA-NanoBanana/internal/genai"
)

var (
	flagModel   string
	flagBaseURL string
	flagTimeout time.Duration
	flagPreset  string
	flagOutput  string
)

var rootCmd = &cobra.Command{
	Use:   "nanobanana",
	Short: "Generate and edit images with the Gemini image model",
	Long: `nanobanana is a terminal front-end for the Gemini image model.

Generate images from a text prompt, or edit existing images with an
instruction. Results are written to a local file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "image model ID (default gemini-2.5-flash-image-preview)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "API base URL override")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 90*time.Second, "request timeout")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "prompt preset name from ~/.nanobanana/presets.yaml")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(editCmd)
}

// newClient builds a genai client from flags and environment, prompting for
// the API key on a terminal when it is not set.
func newClient() (*genai.Client, error) {
	key, err := resolveAPIKey()
	if err != nil {
		return nil, err
	}
	return genai.NewClient(genai.Options{
		APIKey:         key,
		BaseURL:        flagBaseURL,
		Model:          flagModel,
		RequestTimeout: flagTimeout,
	})
}

func resolveAPIKey() (string, error) {
	if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		return key, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("GEMINI_API_KEY is not set")
	}
	fmt.Fprint(os.Stderr, "Gemini API key: ")
	keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read api key: %w", err)
	}
	key := strings.TrimSpace(string(keyBytes))
	if key == "" {
		return "", errors.New("GEMINI_API_KEY is not set")
	}
	return key, nil
}

// effectivePrompt joins the positional prompt words and applies the selected
// preset, if any.
func effectivePrompt(args []string) (string, error) {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if flagPreset == "" {
		return prompt, nil
	}
	presets, err := LoadPresets(DefaultPresetsPath())
	if err != nil {
		return "", err
	}
	return presets.Apply(flagPreset, prompt)
}
