package handlers

import (
	"fmt"

	"tubepost/internal/acquire"
	"tubepost/internal/config"
	"tubepost/internal/core"
	"tubepost/internal/images"
	"tubepost/internal/llm"
	"tubepost/internal/pipeline"
	"tubepost/internal/store"

	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command for one-shot blog generation
func NewGenerateCmd() *cobra.Command {
	var (
		style    string
		audience string
		length   string
	)

	cmd := &cobra.Command{
		Use:   "generate [youtube-url]",
		Short: "Generate a blog post from a YouTube video",
		Long: `Run the full generation pipeline once from the command line.

The video's transcript and metadata are acquired, the blog post is written
by the configured Gemini model, and the result is stored in the local
database. The new blog's ID is printed on success.

Requires GEMINI_API_KEY (or gemini.api_key in the config file).

Examples:
  tubepost generate https://www.youtube.com/watch?v=dQw4w9WgXcQ
  tubepost generate --style casual --audience developers https://youtu.be/dQw4w9WgXcQ`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], core.GenerationOptions{
				Style:    style,
				Audience: audience,
				Length:   length,
			})
		},
	}

	cmd.Flags().StringVar(&style, "style", "informative", "Writing style for the blog post")
	cmd.Flags().StringVar(&audience, "audience", "general readers", "Target audience")
	cmd.Flags().StringVar(&length, "length", "medium", "Desired length: short, medium, long")

	return cmd
}

func runGenerate(cmd *cobra.Command, youtubeURL string, opts core.GenerationOptions) error {
	ctx := cmd.Context()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st, err := store.NewStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	client, err := llm.NewClient(ctx, "")
	if err != nil {
		return err
	}

	gen := pipeline.New(acquire.New(), client, images.NewResolver(), st, config.GeminiTimeout())

	fmt.Printf("Generating blog post from %s...\n", youtubeURL)

	blogID, err := gen.Generate(ctx, youtubeURL, opts)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	fmt.Printf("✅ Blog generated: %s\n", blogID)
	return nil
}
