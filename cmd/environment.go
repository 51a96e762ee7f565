/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/moamenhredeen/swagger2postman/internal/convert"
	"github.com/spf13/cobra"
)

// environmentCmd represents the environment command
var environmentCmd = &cobra.Command{
	Use:   "environment [swagger-file-or-url]",
	Short: "Generate a Postman environment",
	Long: `Generate the Postman environment for the collection of a Swagger 2.0
specification. Every {{variable}} used by the collection gets an entry;
--var sets or overrides values.

Examples:
  s2p environment swagger.json --name "Petstore Local" --var apiKey=secret --pretty
  s2p environment swagger.json --template team.postman_environment.json -o env.json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := loadOptions()
		if err != nil {
			fail("loading configuration", err)
		}

		stop := startSpinner("Building environment for " + args[0])
		err = runEnvironment(cmd.Context(), args[0], opts)
		stop()
		if err != nil {
			fail("generating environment", err)
		}
	},
}

func runEnvironment(ctx context.Context, source string, opts convert.Options) error {
	swagger, err := convert.FromSource(ctx, source, opts.HTTPClient, opts.Logger)
	if err != nil {
		return err
	}

	if postURL != "" {
		result, err := swagger.ToPostmanEnvironmentPost(ctx, postURL, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%s environment posted to %s (%d)\n", green("✓"), postURL, result.StatusCode)
		return nil
	}

	if err := swagger.ToPostmanEnvironmentFile(outputFile, opts); err != nil {
		return err
	}
	if outputFile != "" {
		fmt.Fprintf(os.Stderr, "%s environment written to %s\n", green("✓"), outputFile)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(environmentCmd)
}
