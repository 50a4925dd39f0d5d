package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slashgen-ai/slashgen/internal/stream"
	"github.com/slashgen-ai/slashgen/pkg/types"
)

var (
	genPersona     string
	genTechStack   []string
	genPhase       string
	genMaxCommands int
	genStream      bool
	genJSON        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [prompt...]",
	Short: "Generate commands from a prompt",
	Long: `Generate slash commands for a prompt using the selected persona.

Examples:
  slashgen generate --persona frontend "set up a component library"
  slashgen generate --persona qa --stack React --stack Node.js "add e2e tests"
  slashgen generate --persona security --stream "audit the dependencies"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genPersona, "persona", "P", "", "Persona id (required)")
	generateCmd.Flags().StringArrayVar(&genTechStack, "stack", nil, "Tech stack entries")
	generateCmd.Flags().StringVar(&genPhase, "phase", "", "Project phase")
	generateCmd.Flags().IntVarP(&genMaxCommands, "max-commands", "n", 0, "Number of commands to generate (1-10)")
	generateCmd.Flags().BoolVar(&genStream, "stream", false, "Stream the raw response text")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "Print the full result as JSON")
	generateCmd.MarkFlagRequired("persona")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	req := &types.GenerationRequest{
		Prompt:       strings.Join(args, " "),
		Persona:      types.PersonaID(genPersona),
		TechStack:    genTechStack,
		ProjectPhase: genPhase,
		MaxCommands:  genMaxCommands,
	}

	if genStream {
		return streamGeneration(ctx, a, req)
	}

	result, err := a.generator.Generate(ctx, req)
	if err != nil {
		return err
	}

	if genJSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	for _, c := range result.Commands {
		fmt.Printf("%s\n    %s\n", c.Command, c.Description)
		if c.Explanation != "" {
			fmt.Printf("    %s\n", c.Explanation)
		}
	}
	return nil
}

// streamGeneration prints the response as it arrives, then the extracted
// commands.
func streamGeneration(ctx context.Context, a *app, req *types.GenerationRequest) error {
	bs, err := a.generator.GenerateStream(ctx, req)
	if err != nil {
		return err
	}

	var consumer *stream.Consumer
	consumer = stream.NewConsumer(stream.Callbacks{
		OnChunk: func(text string) {
			fmt.Print(text)
		},
		OnComplete: func() {
			fmt.Println()
			for _, command := range stream.ExtractCommands(consumer.Text()) {
				fmt.Println(command)
			}
		},
	})
	return consumer.Process(ctx, bs)
}
