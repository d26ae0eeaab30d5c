package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"routine-tracker/internal/app"
	"routine-tracker/internal/service"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the weekly routine as JSON",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
		var data []byte
		if err := a.Do(func() error {
			var err error
			data, err = a.Routine.Export(ctx)
			return err
		}); err != nil {
			return err
		}
		if exportOut == "-" {
			_, err := cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Printf("Routine written to %s\n", exportOut)
		return nil
	}),
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the weekly routine with a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import: %w", err)
		}
		if err := a.Do(func() error {
			return a.Routine.Import(ctx, data)
		}); err != nil {
			return err
		}
		fmt.Printf("Routine imported from %s\n", args[0])
		return nil
	}),
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", service.ExportFilename, `output file, "-" for stdout`)
}
