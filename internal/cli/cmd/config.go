package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/sidebar/internal/cli/styles"
	"github.com/bnema/sidebar/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View the effective configuration and generate its JSON schema.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the config file path and effective values",
	RunE:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Write config.schema.json next to the config file",
	Long: `Generate the JSON schema for the config file so editors can offer
completion and validation. Without --print the schema is written next to
the config file.`,
	RunE: runConfigSchema,
}

var schemaPrint bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
	configSchemaCmd.Flags().BoolVarP(&schemaPrint, "print", "p", false, "print the schema instead of writing it")
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewConfigRenderer(app.Theme)
	fmt.Println(renderer.RenderConfig(app.Manager.GetConfigFile(), *app.Config))
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	if schemaPrint {
		data, err := config.GenerateSchema()
		if err != nil {
			fmt.Println(renderer.RenderError(err))
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	dir := filepath.Dir(app.Manager.GetConfigFile())
	if err := config.GenerateSchemaFile(dir); err != nil {
		fmt.Println(renderer.RenderError(err))
		return err
	}
	fmt.Println(renderer.RenderSchemaWritten(filepath.Join(dir, config.SchemaFileName)))
	return nil
}
