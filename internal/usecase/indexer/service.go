package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/brandpulse/creatorsearch/internal/domain/creator"
)

// Service maintains the creator vector index. It is the administrative
// write path, separate from the read-only search pipeline.
type Service struct {
	index  Index
	embed  Embedder
	logger *zap.Logger
}

// New creates an index maintenance service.
func New(index Index, embed Embedder, logger *zap.Logger) *Service {
	return &Service{index: index, embed: embed, logger: logger}
}

// EnsureIndex creates the vector index schema if it does not exist yet.
func (s *Service) EnsureIndex(ctx context.Context) error {
	if err := s.index.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}
	return nil
}

// Upsert embeds the creator's profile text and writes the document to
// the index. An existing document for the same creator is replaced.
func (s *Service) Upsert(ctx context.Context, c *creator.Creator) error {
	embResult, err := s.embed.Embed(ctx, c.ProfileText())
	if err != nil {
		return fmt.Errorf("embed profile %s: %w", c.ID(), err)
	}

	if err := s.index.Upsert(ctx, c, embResult.Embedding); err != nil {
		return fmt.Errorf("upsert creator %s: %w", c.ID(), err)
	}

	s.logger.Info("Creator indexed",
		zap.String("creator_id", c.ID()),
		zap.Int("dimensions", len(embResult.Embedding)),
		zap.Int("total_tokens", embResult.TotalTokens),
	)
	return nil
}

// Delete removes a creator's document from the index. Deleting a
// creator that was never indexed is not an error.
func (s *Service) Delete(ctx context.Context, creatorID string) error {
	if err := s.index.Delete(ctx, creatorID); err != nil {
		return fmt.Errorf("delete creator %s: %w", creatorID, err)
	}
	s.logger.Info("Creator removed from index", zap.String("creator_id", creatorID))
	return nil
}
