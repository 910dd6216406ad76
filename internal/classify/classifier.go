package classify

import (
	"context"
	"io"
	"log/slog"
	"os"

	"curator/internal/logging"
)

// ContentClassifier is an optional capability consulted when the keyword
// heuristic is inconclusive: readable text with no recognizable signal.
// Implementations may be arbitrarily clever (a trained text model, an
// external service); the engine tolerates absence and failure equally, so
// correctness of the deterministic stages never depends on one.
type ContentClassifier interface {
	// Classify inspects a bounded sample of the file's content. ok=false
	// means no opinion.
	Classify(ctx context.Context, path string, sample []byte) (Result, bool, error)
}

// Classifier chains the classification stages over a file.
type Classifier struct {
	maxSampleBytes int64
	content        ContentClassifier
	logger         *slog.Logger
}

// Option customizes classifier construction.
type Option func(*Classifier)

// WithContentClassifier injects the optional content-classifier capability.
func WithContentClassifier(cc ContentClassifier) Option {
	return func(c *Classifier) { c.content = cc }
}

// WithLogger attaches a logger for debug-level stage tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) { c.logger = logging.NewComponentLogger(logger, "classifier") }
}

// New constructs a Classifier. maxSampleBytes bounds how much content the
// heuristic stages may read; files larger than this are classified by name
// and signature only.
func New(maxSampleBytes int64, opts ...Option) *Classifier {
	c := &Classifier{
		maxSampleBytes: maxSampleBytes,
		logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify runs the stage chain and returns the winning classification.
// It is a pure function of the file's name, size, and bytes: identical
// inputs always produce the identical Result. Errors are swallowed into
// the Unknown bucket because classification must never block the pipeline.
func (c *Classifier) Classify(ctx context.Context, path string, size int64) Result {
	result, ambiguous, ok := lookupExtension(path)
	if ok && !ambiguous {
		return result
	}

	sample, readErr := c.readSample(path, size)
	if readErr != nil {
		c.logger.Debug("content sample unavailable", logging.String(logging.FieldPath, path), logging.Error(readErr))
		if ok {
			// Ambiguous extension with unreadable content: the table
			// fallback beats Unknown.
			return result
		}
		return Unknown
	}

	// Stage 2: magic-byte sniff, only when the extension said nothing.
	if !ok {
		if sniffed, matched := sniff(sampleHeader(sample)); matched {
			return sniffed
		}
	}

	// Stage 3: keyword heuristic over bounded text content.
	if size <= c.maxSampleBytes {
		guess, outcome := heuristic(sample)
		switch outcome {
		case heuristicMatched:
			return guess
		case heuristicPlainText:
			// Stage 4: optional injected classifier breaks the tie.
			if c.content != nil {
				if refined, matched, err := c.content.Classify(ctx, path, sample); err != nil {
					c.logger.Debug("content classifier errored; using fallback", logging.Error(err))
				} else if matched {
					refined.Subcategory = NormalizeSubcategory(refined.Category, refined.Subcategory)
					return refined
				}
			}
			if ok {
				// Ambiguous extensions keep their table fallback when no
				// stage had a better answer (.log stays Temporary/Logs).
				return result
			}
			return guess
		}
	}

	if ok {
		// Binary or oversized content behind an ambiguous extension still
		// has a table answer.
		return result
	}
	return Unknown
}

// readSample reads up to maxSampleBytes of the file. For oversized files
// only the sniff header is read, so classification I/O stays bounded.
func (c *Classifier) readSample(path string, size int64) ([]byte, error) {
	limit := c.maxSampleBytes
	if size > c.maxSampleBytes {
		limit = sniffHeaderSize
	}
	if limit <= 0 {
		limit = sniffHeaderSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, limit)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

func sampleHeader(sample []byte) []byte {
	if len(sample) > sniffHeaderSize {
		return sample[:sniffHeaderSize]
	}
	return sample
}
