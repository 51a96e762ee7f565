/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/moamenhredeen/swagger2postman/internal/config"
	"github.com/moamenhredeen/swagger2postman/internal/convert"
	"github.com/moamenhredeen/swagger2postman/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	cfgFile    string
	outputFile string
	postURL    string
	variables  []string

	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "s2p",
	Short: "Convert Swagger 2.0 specifications to Postman collections and environments",
	Long: `s2p converts a Swagger 2.0 specification into a Postman collection whose
request URLs use the {{scheme}}, {{host}} and {{port}} variables and whose
bodies are filled with generated examples.

It also builds the matching Postman environment listing every variable the
collection references.

Settings are read from s2p.yaml, s2p.toml or s2p.json in the working
directory (or --config), from S2P_ prefixed environment variables and from flags.`,
	SilenceUsage: true,
}

func Execute() {
	cobra.OnInitialize(initConfig)
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("s2p")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatalf("Error reading config file: %v", err)
		}
	}
}

// loadOptions resolves configuration, installs the logger and builds the
// conversion options shared by every command
func loadOptions() (convert.Options, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return convert.Options{}, err
	}

	for _, raw := range variables {
		v, err := config.ParseVariable(raw)
		if err != nil {
			return convert.Options{}, err
		}
		cfg.Environment.CustomVariables = append(cfg.Environment.CustomVariables, v)
	}

	opts := convert.DefaultOptions()
	opts.Config = cfg
	opts.Logger = logging.Setup(cfg.Log.Format, cfg.LogLevel())
	opts.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return opts, nil
}

// startSpinner shows progress on stderr when it is a terminal. The returned
// func stops it.
func startSpinner(suffix string) func() {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + suffix
	s.Start()
	return s.Stop
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s %s: %v\n", red("Error"), what, err)
	os.Exit(1)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./s2p.{yaml,toml,json})")
	flags.StringVarP(&outputFile, "output", "o", "", "Write the document to a file (default: stdout)")
	flags.StringVar(&postURL, "post-url", "", "POST the document to this URL instead of writing it")
	flags.StringArrayVar(&variables, "var", nil, "Custom environment variable as key=value (repeatable)")

	flags.Bool("pretty", false, "Indent JSON output with four spaces")
	flags.String("format", "", "Document layout: pretty or compact (overrides --pretty)")
	flags.Int("max-depth", 10, "Nesting depth after which sample body values are omitted")
	flags.Int("array-items", 1, "Number of items generated for sample body arrays")
	flags.Bool("debug", false, "Log progress at debug level")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-format", "text", "Log format: text, json")
	flags.StringArrayP("header", "H", nil, "Header line appended to every request (repeatable)")
	flags.String("name", "", "Environment name")
	flags.String("template", "", "Postman environment file used as the environment template")
	flags.Bool("strict", false, "Only accept plain identifiers as variable names")
	flags.Duration("timeout", 0, "Timeout for fetching the spec and posting documents (0 = none)")
	flags.Bool("validate", true, "Validate documents against the Postman schemas before writing")

	for key, flag := range map[string]string{
		"prettyPrint":              "pretty",
		"format":                   "format",
		"sample.maxDepth":          "max-depth",
		"sample.arrayItems":        "array-items",
		"debug":                    "debug",
		"log.level":                "log-level",
		"log.format":               "log-format",
		"globalHeaders":            "header",
		"environment.name":         "name",
		"environment.templateFile": "template",
		"environment.strictNames":  "strict",
		"timeout":                  "timeout",
		"validate":                 "validate",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			log.Fatalf("Error binding flag %s: %v", flag, err)
		}
	}
}
