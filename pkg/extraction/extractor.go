package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cme-be/internal/entity"
	"cme-be/internal/pkg/logger"
	"cme-be/pkg/annotation"
	"cme-be/pkg/identity"
)

const (
	logModule = "EXTRACTION"
	createdBy = "extraction"
)

// PersonResolver finds or creates the canonical person for a parsed name.
type PersonResolver interface {
	FindOrCreate(ctx context.Context, req identity.MdbRequest) (*entity.Mdb, error)
}

// Extractor turns annotated speech paragraphs into interactions. It holds no
// state between calls; person identity lives in the resolver.
type Extractor struct {
	resolver PersonResolver
	logger   logger.ILogger
	addDebug bool
}

type Option func(*Extractor)

// WithDebugObjects attaches provenance to every interaction and to persons
// created from transcript text.
func WithDebugObjects(enabled bool) Option {
	return func(e *Extractor) {
		e.addDebug = enabled
	}
}

func NewExtractor(resolver PersonResolver, logger logger.ILogger, opts ...Option) *Extractor {
	e := &Extractor{
		resolver: resolver,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractCommunicationModel walks the candidates in document order and
// returns every interaction found in their annotations. Every returned
// interaction has a receiver. Heuristic misses are logged and skipped; an
// error is returned only when the person store fails, in which case no
// partial result is returned.
func (e *Extractor) ExtractCommunicationModel(ctx context.Context, candidates []entity.InteractionCandidate) ([]entity.Interaction, error) {
	interactions := make([]entity.Interaction, 0)
	var lastSpeaker *entity.Mdb

	for _, cand := range candidates {
		if cand.Speaker != nil {
			lastSpeaker = cand.Speaker
		}
		if cand.Comment == nil {
			continue
		}

		defaultReceiver := cand.Speaker
		if defaultReceiver == nil {
			defaultReceiver = lastSpeaker
		}

		fullText := strings.Trim(strings.TrimSpace(*cand.Comment), "()")
		for _, part := range annotation.Segment(*cand.Comment) {
			drafts, err := e.Extract(ctx, part)
			if err != nil {
				if errors.Is(err, ErrAmbiguousSender) {
					e.logger.Error(logModule, "Ambiguous sender, skipping fragment", map[string]interface{}{
						"part":  part,
						"error": err.Error(),
					})
					continue
				}
				return nil, err
			}

			for _, d := range drafts {
				inter, ok := e.finalize(d, defaultReceiver, part)
				if !ok {
					continue
				}
				if e.addDebug {
					inter.Debug = &entity.InteractionDebug{
						OrigSpeaker:     speakerID(cand.Speaker),
						OrigParagraph:   cand.Paragraph,
						FullCommentText: fullText,
						Part:            part,
					}
				}
				interactions = append(interactions, inter)
			}
		}
	}

	return interactions, nil
}

// finalize applies the default receiver and drops drafts with a malformed or
// missing party.
func (e *Extractor) finalize(d Draft, defaultReceiver *entity.Mdb, part string) (entity.Interaction, bool) {
	senderBroken := d.Sender.Kind == entity.ActorUnresolved
	receiverBroken := d.Receiver != nil && d.Receiver.Kind == entity.ActorUnresolved
	if senderBroken || receiverBroken {
		details := map[string]interface{}{
			"message": d.Message,
			"part":    part,
		}
		if senderBroken {
			details["sender"] = d.Sender.Text
		}
		if receiverBroken {
			details["receiver"] = d.Receiver.Text
		}
		e.logger.Error(logModule, "Malformed person in interaction, skipping it", details)
		return entity.Interaction{}, false
	}

	receiver := d.Receiver
	if receiver == nil && defaultReceiver != nil {
		r := entity.MdbActor(defaultReceiver)
		receiver = &r
	}
	if receiver == nil || receiver.IsEmpty() {
		e.logger.Warn(logModule, "No receiver for interaction", map[string]interface{}{
			"part": part,
		})
		return entity.Interaction{}, false
	}

	return entity.Interaction{
		Sender:   d.Sender,
		Receiver: *receiver,
		Message:  d.Message,
	}, true
}

func speakerID(m *entity.Mdb) string {
	if m == nil {
		return ""
	}
	return m.Id.String()
}

func ambiguous(matches []string, fragment string) error {
	return fmt.Errorf("%w: %q in %q", ErrAmbiguousSender, matches, fragment)
}
