// Package pipeline runs documents through extraction, classification, parsing and
// Gherkin generation.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/dgallion1/bddgen/internal/apperr"
	"github.com/dgallion1/bddgen/internal/catalog"
	"github.com/dgallion1/bddgen/internal/classify"
	"github.com/dgallion1/bddgen/internal/doctype"
	"github.com/dgallion1/bddgen/internal/extract"
	"github.com/dgallion1/bddgen/internal/gherkin"
	"github.com/dgallion1/bddgen/internal/parser"
	"github.com/dgallion1/bddgen/internal/segment"
	"github.com/dgallion1/bddgen/internal/stepdef"
)

// Options configure a Pipeline.
type Options struct {
	WorkerCount     int
	Extract         extract.Options
	DefaultLanguage string
	StatsWindow     time.Duration
}

// Pipeline wires the conversion stages together. It is safe for concurrent use.
type Pipeline struct {
	identifier *classify.Identifier
	parser     *parser.Parser
	generator  *gherkin.Generator
	stats      *Stats
	log        *slog.Logger

	extract         extract.Options
	workers         int
	defaultLanguage string
}

func New(cat *catalog.Catalog, seg *segment.Segmenter, opts Options, log *slog.Logger) *Pipeline {
	if opts.WorkerCount <= 0 {
		opts.WorkerCount = 4
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = "python"
	}
	return &Pipeline{
		identifier:      classify.New(cat, seg),
		parser:          parser.New(cat, seg),
		generator:       gherkin.New(cat),
		stats:           NewStats(opts.StatsWindow),
		log:             log,
		extract:         opts.Extract,
		workers:         opts.WorkerCount,
		defaultLanguage: opts.DefaultLanguage,
	}
}

// Analysis reports how an uploaded document scored against each type.
type Analysis struct {
	DocID         string          `json:"doc_id"`
	Filename      string          `json:"filename"`
	Title         string          `json:"title"`
	Format        string          `json:"format"`
	Scores        classify.Scores `json:"document_type_scores"`
	SuggestedType *doctype.Type   `json:"suggested_type"`
}

// Request is a single document to convert. An empty DocType asks for detection.
type Request struct {
	Filename    string
	Data        []byte
	DocType     string
	FeatureName string
}

// Conversion is the outcome of converting one document.
type Conversion struct {
	DocID       string           `json:"doc_id"`
	Filename    string           `json:"filename"`
	Title       string           `json:"title"`
	Format      string           `json:"format"`
	DocType     doctype.Type     `json:"doc_type"`
	Detected    bool             `json:"detected"`
	Scores      classify.Scores  `json:"document_type_scores,omitempty"`
	FeatureName string           `json:"feature_name"`
	FeatureFile string           `json:"feature_file"`
	Feature     string           `json:"feature_content"`
	Structure   parser.Structure `json:"structure"`
}

// Analyze extracts a document and scores it without converting it.
func (p *Pipeline) Analyze(filename string, data []byte) (*Analysis, error) {
	doc, err := p.extract.Text(data, filename)
	if err != nil {
		return nil, err
	}
	res := p.identifier.Analyze(doc.Text)
	return &Analysis{
		DocID:         docID(data),
		Filename:      filename,
		Title:         doc.Title,
		Format:        doc.Format,
		Scores:        res.Scores,
		SuggestedType: res.Best,
	}, nil
}

// Convert extracts, classifies when needed, parses and renders one document.
func (p *Pipeline) Convert(ctx context.Context, req Request) (*Conversion, error) {
	start := time.Now()
	conv, err := p.convert(ctx, req)

	var t doctype.Type
	if conv != nil {
		t = conv.DocType
	}
	p.stats.Record(t, time.Since(start), err != nil)
	return conv, err
}

func (p *Pipeline) convert(ctx context.Context, req Request) (*Conversion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := docID(req.Data)
	log := p.log.With("doc_id", id, "filename", req.Filename)

	doc, err := p.extract.Text(req.Data, req.Filename)
	if err != nil {
		log.Warn("extraction failed", "error", err)
		return nil, err
	}

	conv := &Conversion{
		DocID:    id,
		Filename: req.Filename,
		Title:    doc.Title,
		Format:   doc.Format,
	}

	if req.DocType != "" {
		t, err := doctype.Parse(req.DocType)
		if err != nil {
			return nil, err
		}
		conv.DocType = t
	} else {
		res := p.identifier.Analyze(doc.Text)
		conv.Scores = res.Scores
		if res.Best == nil {
			log.Info("document type undetermined", "scores", res.Scores)
			return nil, &apperr.InvalidArgumentError{
				Field:  "doc_type",
				Reason: "could not determine document type",
				Valid:  doctype.Literals(),
			}
		}
		conv.DocType = *res.Best
		conv.Detected = true
	}
	log = log.With("doc_type", conv.DocType.String())

	conv.Structure, err = p.parser.Parse(doc.Text, conv.DocType)
	if err != nil {
		return nil, err
	}

	conv.FeatureName = req.FeatureName
	if conv.FeatureName == "" {
		conv.FeatureName = gherkin.DefaultFeatureName(conv.DocType)
	}
	conv.Feature, err = p.generator.Generate(conv.Structure, conv.FeatureName)
	if err != nil {
		log.Error("feature generation failed", "error", err)
		return nil, err
	}
	conv.FeatureFile = gherkin.FileName(conv.FeatureName)

	log.Info("document converted", "detected", conv.Detected, "bytes", len(req.Data))
	return conv, nil
}

// Parse extracts a document and parses it as the given type.
func (p *Pipeline) Parse(filename string, data []byte, literal string) (parser.Structure, error) {
	t, err := doctype.Parse(literal)
	if err != nil {
		return nil, err
	}
	doc, err := p.extract.Text(data, filename)
	if err != nil {
		return nil, err
	}
	return p.parser.Parse(doc.Text, t)
}

// Validate extracts a document and parses it strictly as the given type.
func (p *Pipeline) Validate(filename string, data []byte, literal string) (parser.Structure, error) {
	t, err := doctype.Parse(literal)
	if err != nil {
		return nil, err
	}
	doc, err := p.extract.Text(data, filename)
	if err != nil {
		return nil, err
	}
	return p.parser.ParseStrict(doc.Text, t)
}

// GenerateFeature renders structural data supplied by a caller.
func (p *Pipeline) GenerateFeature(literal string, structure []byte, featureName string) (string, error) {
	t, err := doctype.Parse(literal)
	if err != nil {
		return "", err
	}
	s, err := gherkin.DecodeStructure(t, structure)
	if err != nil {
		return "", err
	}
	return p.generator.Generate(s, featureName)
}

// GenerateSteps renders step-definition stubs for a feature. An empty language
// selects the configured default.
func (p *Pipeline) GenerateSteps(feature, language, framework string) (*stepdef.Result, error) {
	if language == "" {
		language = p.defaultLanguage
	}
	return stepdef.Render(feature, language, framework)
}

// Stats returns aggregate conversion statistics for the current window.
func (p *Pipeline) Stats() StatsSnapshot {
	return p.stats.Snapshot()
}
