package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baxromumarov/warlords/internal/schema"
	"github.com/baxromumarov/warlords/internal/store"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validates a saved document against the schema.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path := cfg.OutputPath
		if len(args) == 1 {
			path = args[0]
		}

		data, err := store.NewFileStore().Read(path)
		if err != nil {
			return err
		}
		if err := schema.NewGate().ValidateJSON(data, cfg.SchemaPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
		return nil
	},
}
