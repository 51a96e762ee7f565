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

// collectionCmd represents the collection command
var collectionCmd = &cobra.Command{
	Use:   "collection [swagger-file-or-url]",
	Short: "Generate a Postman collection",
	Long: `Generate a Postman v1 collection from a Swagger 2.0 specification.

Examples:
  # Print the collection
  s2p collection swagger.json --pretty

  # Save it with an extra header on every request
  s2p collection https://petstore.swagger.io/v2/swagger.json -H "Authorization: Bearer {{token}}" -o petstore.postman_collection.json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := loadOptions()
		if err != nil {
			fail("loading configuration", err)
		}

		stop := startSpinner("Converting " + args[0])
		err = runCollection(cmd.Context(), args[0], opts)
		stop()
		if err != nil {
			fail("generating collection", err)
		}
	},
}

func runCollection(ctx context.Context, source string, opts convert.Options) error {
	swagger, err := convert.FromSource(ctx, source, opts.HTTPClient, opts.Logger)
	if err != nil {
		return err
	}

	if postURL != "" {
		result, err := swagger.ToPostmanCollectionPost(ctx, postURL, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%s collection posted to %s (%d)\n", green("✓"), postURL, result.StatusCode)
		return nil
	}

	if err := swagger.ToPostmanCollectionFile(outputFile, opts); err != nil {
		return err
	}
	if outputFile != "" {
		fmt.Fprintf(os.Stderr, "%s collection written to %s\n", green("✓"), outputFile)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(collectionCmd)
}
