package convert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/moamenhredeen/swagger2postman/internal/config"
	"github.com/moamenhredeen/swagger2postman/internal/converter"
	"github.com/moamenhredeen/swagger2postman/internal/environment"
	"github.com/moamenhredeen/swagger2postman/internal/generator"
	"github.com/moamenhredeen/swagger2postman/internal/models"
	"github.com/moamenhredeen/swagger2postman/internal/output"
	"github.com/moamenhredeen/swagger2postman/internal/parser"
	"github.com/moamenhredeen/swagger2postman/internal/processor"
)

// ErrConversionFailed is returned when the structural converter rejects a spec
var ErrConversionFailed = errors.New("postman conversion of swagger spec failed")

// StructuralConverter turns a spec into a collection with absolute URLs
type StructuralConverter interface {
	Convert(spec *parser.Parser) converter.Result
}

// Options combines loadable configuration with settings only available to
// Go callers
type Options struct {
	Config config.Options

	PreProcessor  processor.RequestHook
	PostProcessor processor.RequestHook

	// PostJSONBuilder transforms documents before they are posted
	PostJSONBuilder output.JSONBuilder

	// EnvironmentTemplate takes precedence over Config.Environment.TemplateFile
	EnvironmentTemplate *models.Environment

	Logger     *slog.Logger
	HTTPClient *http.Client
	Converter  StructuralConverter
	Sampler    processor.Sampler
}

// DefaultOptions returns Options carrying the default configuration
func DefaultOptions() Options {
	return Options{Config: config.Defaults()}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) converter() StructuralConverter {
	if o.Converter != nil {
		return o.Converter
	}
	return converter.New()
}

func (o Options) sampler() processor.Sampler {
	if o.Sampler != nil {
		return o.Sampler
	}
	return generator.NewGeneratorWithOptions(generator.Options{
		MaxDepth:   o.Config.Sample.MaxDepth,
		ArrayItems: o.Config.Sample.ArrayItems,
	})
}

// Swagger is a parsed Swagger 2.0 spec ready to be converted
type Swagger struct {
	spec *parser.Parser
	refs generator.RefsLookup
}

// FromSpec wraps an already parsed spec
func FromSpec(spec *parser.Parser) *Swagger {
	return &Swagger{
		spec: spec,
		refs: generator.BuildRefsLookup(spec.Model().Definitions),
	}
}

// FromFile reads and parses a spec file
func FromFile(path string, logger *slog.Logger) (*Swagger, error) {
	logger = orDefault(logger)
	logger.Debug("reading swagger spec", "file", path)

	spec, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed swagger spec", "title", spec.Title())
	return FromSpec(spec), nil
}

// FromURL downloads and parses a spec. A nil client uses http.DefaultClient.
func FromURL(ctx context.Context, url string, client *http.Client, logger *slog.Logger) (*Swagger, error) {
	logger = orDefault(logger)
	logger.Debug("fetching swagger spec", "url", url)

	spec, err := parser.ParseURL(ctx, parser.NewFetcherWithClient(client), url)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed swagger spec", "title", spec.Title())
	return FromSpec(spec), nil
}

// FromJSON parses spec text
func FromJSON(data []byte) (*Swagger, error) {
	spec, err := parser.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	return FromSpec(spec), nil
}

// FromSource reads a spec from a URL or a file depending on source
func FromSource(ctx context.Context, source string, client *http.Client, logger *slog.Logger) (*Swagger, error) {
	logger = orDefault(logger)
	logger.Debug("reading swagger spec", "source", source)

	spec, err := parser.ParseSource(ctx, parser.NewFetcherWithClient(client), source)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed swagger spec", "title", spec.Title())
	return FromSpec(spec), nil
}

// Spec returns the parsed spec
func (s *Swagger) Spec() *parser.Parser {
	return s.spec
}

// ToPostmanCollection converts the spec and post-processes every request
func (s *Swagger) ToPostmanCollection(opts Options) (*models.Collection, error) {
	logger := opts.logger()

	result := opts.converter().Convert(s.spec)
	if !result.OK() {
		resultJSON, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrConversionFailed, result.Message)
		}
		return nil, fmt.Errorf("%w: %s", ErrConversionFailed, resultJSON)
	}
	col := result.Collection
	logger.Debug("converted swagger spec", "collection", col.Name, "requests", len(col.Requests))

	p := processor.New(s.spec, s.refs, opts.sampler(), processor.Options{
		GlobalHeaders: opts.Config.GlobalHeaders,
		PreProcessor:  opts.PreProcessor,
		PostProcessor: opts.PostProcessor,
	}, logger)
	if err := p.ProcessCollection(col); err != nil {
		return nil, err
	}
	return col, nil
}

// ToPostmanCollectionJSON returns the serialized collection
func (s *Swagger) ToPostmanCollectionJSON(opts Options) ([]byte, error) {
	col, err := s.ToPostmanCollection(opts)
	if err != nil {
		return nil, err
	}
	format, err := opts.Config.OutputFormat()
	if err != nil {
		return nil, err
	}
	return output.Marshal(col, format)
}

// ToPostmanCollectionFile writes the serialized collection to path
func (s *Swagger) ToPostmanCollectionFile(path string, opts Options) error {
	data, err := s.ToPostmanCollectionJSON(opts)
	if err != nil {
		return err
	}
	if err := validateCollection(data, opts); err != nil {
		return err
	}
	return writeFile(data, path, "collection", opts.logger())
}

// ToPostmanCollectionPost posts the serialized collection to url
func (s *Swagger) ToPostmanCollectionPost(ctx context.Context, url string, opts Options) (*output.PostResult, error) {
	data, err := s.ToPostmanCollectionJSON(opts)
	if err != nil {
		return nil, err
	}
	if err := validateCollection(data, opts); err != nil {
		return nil, err
	}
	return post(ctx, data, url, "collection", opts)
}

// ToPostmanEnvironment builds the environment for the converted collection
func (s *Swagger) ToPostmanEnvironment(opts Options) (*models.Environment, error) {
	col, err := s.ToPostmanCollection(opts)
	if err != nil {
		return nil, err
	}
	colJSON, err := output.Marshal(col, output.FormatCompact)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize collection: %w", err)
	}

	template := opts.EnvironmentTemplate
	if template == nil && opts.Config.Environment.TemplateFile != "" {
		opts.logger().Debug("loading environment template", "file", opts.Config.Environment.TemplateFile)
		template, err = environment.LoadTemplate(opts.Config.Environment.TemplateFile)
		if err != nil {
			return nil, err
		}
	}

	env := environment.Build(colJSON, environment.Options{
		Name:             opts.Config.EnvironmentName(),
		CustomVariables:  opts.Config.CustomVariablesList(),
		Template:         template,
		IgnoredVariables: opts.Config.Environment.IgnoredVariables,
		Strict:           opts.Config.Environment.StrictNames,
	})
	opts.logger().Debug("built environment", "environment", env.Name, "variables", len(env.Values))
	return env, nil
}

// ToPostmanEnvironmentJSON returns the serialized environment
func (s *Swagger) ToPostmanEnvironmentJSON(opts Options) ([]byte, error) {
	env, err := s.ToPostmanEnvironment(opts)
	if err != nil {
		return nil, err
	}
	format, err := opts.Config.OutputFormat()
	if err != nil {
		return nil, err
	}
	return output.Marshal(env, format)
}

// ToPostmanEnvironmentFile writes the serialized environment to path
func (s *Swagger) ToPostmanEnvironmentFile(path string, opts Options) error {
	data, err := s.ToPostmanEnvironmentJSON(opts)
	if err != nil {
		return err
	}
	if err := validateEnvironment(data, opts); err != nil {
		return err
	}
	return writeFile(data, path, "environment", opts.logger())
}

// ToPostmanEnvironmentPost posts the serialized environment to url
func (s *Swagger) ToPostmanEnvironmentPost(ctx context.Context, url string, opts Options) (*output.PostResult, error) {
	data, err := s.ToPostmanEnvironmentJSON(opts)
	if err != nil {
		return nil, err
	}
	if err := validateEnvironment(data, opts); err != nil {
		return nil, err
	}
	return post(ctx, data, url, "environment", opts)
}

func validateCollection(data []byte, opts Options) error {
	if !opts.Config.Validate {
		return nil
	}
	return output.ValidateCollection(data)
}

func validateEnvironment(data []byte, opts Options) error {
	if !opts.Config.Validate {
		return nil
	}
	return output.ValidateEnvironment(data)
}

func writeFile(data []byte, path, kind string, logger *slog.Logger) error {
	logger.Debug("saving "+kind, "file", path)
	if err := output.WriteDocument(data, path); err != nil {
		return err
	}
	logger.Debug("saved "+kind, "file", path, "bytes", len(data))
	return nil
}

func post(ctx context.Context, data []byte, url, kind string, opts Options) (*output.PostResult, error) {
	logger := opts.logger()
	logger.Debug("posting "+kind, "url", url)

	result, err := output.NewPublisher(opts.HTTPClient).Post(ctx, url, data, opts.PostJSONBuilder)
	if err != nil {
		return result, err
	}
	logger.Debug("posted "+kind, "url", url, "status", result.StatusCode)
	return result, nil
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
