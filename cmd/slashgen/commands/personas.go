package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slashgen-ai/slashgen/internal/persona"
	"github.com/slashgen-ai/slashgen/pkg/types"
)

var personasJSON bool

var personasCmd = &cobra.Command{
	Use:   "personas [id]",
	Short: "List personas or show one profile",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPersonas,
}

func init() {
	personasCmd.Flags().BoolVar(&personasJSON, "json", false, "Print as JSON")
}

func runPersonas(cmd *cobra.Command, args []string) error {
	// The catalog is static; no providers or config needed here.
	registry := persona.NewRegistry()

	if len(args) == 1 {
		profile, err := registry.Get(types.PersonaID(args[0]))
		if err != nil {
			return err
		}
		if personasJSON {
			return json.NewEncoder(os.Stdout).Encode(profile)
		}
		fmt.Printf("%s - %s\n%s\n", profile.ID, profile.Name, profile.Description)
		if len(profile.Expertise) > 0 {
			fmt.Printf("Expertise: %s\n", strings.Join(profile.Expertise, ", "))
		}
		for _, example := range profile.CommandExamples {
			fmt.Printf("  %s\n", example)
		}
		return nil
	}

	profiles := registry.List()
	if personasJSON {
		return json.NewEncoder(os.Stdout).Encode(profiles)
	}
	for _, p := range profiles {
		fmt.Printf("%-12s %s\n", p.ID, p.Description)
	}
	return nil
}
