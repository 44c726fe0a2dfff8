package usecase

import (
	"context"
	"log"

	"github.com/puntoventa/backend/internal/domain"
)

// InterpreterConfig holds configuration for the interpreter service
type InterpreterConfig struct {
	EnableDebugLogging bool
}

// InterpreterService runs the interpretation pipeline: prompt building, model
// invocation, output sanitization, structured extraction and record
// validation. Infrastructure errors (model unreachable, timeout) propagate to
// the caller; data-quality problems in the model's reply are absorbed into
// fewer or zero results. No stage retries.
type InterpreterService struct {
	model     domain.ModelClient
	extractor domain.TextExtractor
	prompts   *PromptBuilder
	validator *RecordValidator
	debug     bool
}

// NewInterpreterService creates a new interpreter service with dependencies
func NewInterpreterService(
	model domain.ModelClient,
	extractor domain.TextExtractor,
	config InterpreterConfig,
) *InterpreterService {
	return &InterpreterService{
		model:     model,
		extractor: extractor,
		prompts:   NewPromptBuilder(),
		validator: NewRecordValidator(config.EnableDebugLogging),
		debug:     config.EnableDebugLogging,
	}
}

// InterpretDocument extracts candidate products from an uploaded document.
// Flow: extract text -> build prompt -> invoke model -> sanitize -> extract
// records -> validate each. Returns an empty (non-nil) slice when the reply
// holds nothing parseable.
func (s *InterpreterService) InterpretDocument(
	ctx context.Context,
	data []byte,
	mediaType string,
) ([]domain.CandidateProduct, error) {
	content, err := s.extractor.ExtractText(data, mediaType)
	if err != nil {
		return nil, err
	}

	prompt := s.prompts.BuildDocumentPrompt(content)
	reply, err := s.model.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	parsed := ExtractRecords(SanitizeModelOutput(reply))
	products := make([]domain.CandidateProduct, 0, len(parsed.Records))
	if !parsed.Found {
		log.Printf("[INTERPRET] no structured data found in model reply (%d bytes)", len(reply))
		return products, nil
	}

	for _, rec := range parsed.Records {
		if candidate, ok := s.validator.Validate(rec); ok {
			products = append(products, candidate)
		}
	}

	if rejected := len(parsed.Records) - len(products); rejected > 0 {
		log.Printf("[INTERPRET] document: %d of %d records rejected", rejected, len(parsed.Records))
	}

	return products, nil
}

// InterpretVoiceOrder matches a spoken-order transcript against the supplied
// catalog. Candidates referencing ids outside the catalog are dropped.
func (s *InterpreterService) InterpretVoiceOrder(
	ctx context.Context,
	transcript string,
	catalog []domain.CatalogEntry,
) (*domain.VoiceOrderResult, error) {
	byID := make(map[int64]domain.CatalogEntry, len(catalog))
	for _, entry := range catalog {
		byID[entry.ID] = entry
	}

	prompt := s.prompts.BuildVoicePrompt(transcript, catalog)
	reply, err := s.model.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	parsed := ExtractRecords(SanitizeModelOutput(reply))
	items := make([]domain.MatchedItem, 0, len(parsed.Records))
	if !parsed.Found {
		log.Printf("[INTERPRET] no structured data found in voice reply (%d bytes)", len(reply))
		return &domain.VoiceOrderResult{Products: items, OriginalTranscript: transcript}, nil
	}

	for _, rec := range parsed.Records {
		if item, ok := s.validator.ValidateVoiceItem(rec, byID); ok {
			items = append(items, item)
		}
	}

	if rejected := len(parsed.Records) - len(items); rejected > 0 {
		log.Printf("[INTERPRET] voice: %d of %d records rejected", rejected, len(parsed.Records))
	}

	return &domain.VoiceOrderResult{Products: items, OriginalTranscript: transcript}, nil
}
