package processor

import (
	"fmt"
	"log/slog"

	"github.com/moamenhredeen/swagger2postman/internal/generator"
	"github.com/moamenhredeen/swagger2postman/internal/models"
	"github.com/moamenhredeen/swagger2postman/internal/parser"
)

// RequestHook inspects or mutates a request in place. A non nil error aborts
// the whole run.
type RequestHook func(req *models.Request, spec *parser.Parser, refs generator.RefsLookup) error

// Options configures the per request pipeline
type Options struct {
	// GlobalHeaders are appended verbatim, one per line, to every request
	GlobalHeaders []string

	// PreProcessor runs before any built-in transformation
	PreProcessor RequestHook

	// PostProcessor runs after every built-in transformation
	PostProcessor RequestHook
}

// Processor rewrites the requests of a converted collection
type Processor struct {
	spec    *parser.Parser
	refs    generator.RefsLookup
	sampler Sampler
	opts    Options
	logger  *slog.Logger
}

// New creates a processor for collections converted from spec. A nil sampler
// uses the default generator and a nil logger uses slog.Default.
func New(spec *parser.Parser, refs generator.RefsLookup, sampler Sampler, opts Options, logger *slog.Logger) *Processor {
	if sampler == nil {
		sampler = generator.NewGenerator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		spec:    spec,
		refs:    refs,
		sampler: sampler,
		opts:    opts,
		logger:  logger,
	}
}

// ProcessCollection processes every request of col in order. The first
// failing request stops the run.
func (p *Processor) ProcessCollection(col *models.Collection) error {
	for _, req := range col.Requests {
		if err := p.ProcessRequest(req); err != nil {
			return fmt.Errorf("process request %q: %w", req.Name, err)
		}
	}
	return nil
}

// ProcessRequest applies the pre hook, URL templating, body sampling, global
// headers and the post hook to req.
func (p *Processor) ProcessRequest(req *models.Request) error {
	if p.opts.PreProcessor != nil {
		if err := p.opts.PreProcessor(req, p.spec, p.refs); err != nil {
			return fmt.Errorf("pre processor: %w", err)
		}
	}

	req.URL = TemplateURL(req.URL)

	details, err := MatchOperation(p.spec, req.URL, req.Method)
	if err != nil {
		return err
	}
	if details == nil {
		p.logger.Debug("request does not match any operation", "method", req.Method, "url", req.URL)
	} else {
		attached, err := AttachBody(req, p.sampler, details.Operation, p.refs)
		if err != nil {
			return err
		}
		p.logger.Debug("request matched operation",
			"method", details.Method,
			"path", details.Path,
			"body", attached,
		)
	}

	for _, header := range p.opts.GlobalHeaders {
		req.AppendHeader(header)
	}

	if p.opts.PostProcessor != nil {
		if err := p.opts.PostProcessor(req, p.spec, p.refs); err != nil {
			return fmt.Errorf("post processor: %w", err)
		}
	}
	return nil
}
