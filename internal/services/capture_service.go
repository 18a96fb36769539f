package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"linkeep/internal/links"
	"linkeep/internal/models"
)

// SharedCategory is assigned to captures that arrive without one.
const SharedCategory = "공유"

// shared titles are trimmed to the same length the share sheet displays
const titleHintMaxRunes = 80

// CapturePipeline turns one external share event into a persisted memo:
// extract the first link, derive a favicon thumbnail, enrich, insert.
// Thumbnail and enrichment failures degrade gracefully; the only error a
// caller can see is a persistence failure (or cancellation before the
// insert committed).
type CapturePipeline interface {
	Capture(ctx context.Context, sharedText, category string) (*models.Memo, error)
}

type capturePipeline struct {
	memos  MemoService
	enrich EnrichmentService
	log    *zap.Logger
}

func NewCapturePipeline(memos MemoService, enrich EnrichmentService, log *zap.Logger) CapturePipeline {
	return &capturePipeline{memos: memos, enrich: enrich, log: log}
}

func (p *capturePipeline) Capture(ctx context.Context, sharedText, category string) (*models.Memo, error) {
	if sharedText == "" {
		return nil, errors.New("shared text is required")
	}
	if category == "" {
		category = SharedCategory
	}
	captureID := uuid.NewString()

	var link *string
	var thumbnail *string
	if found, ok := links.ExtractFirstURL(sharedText); ok {
		link = &found
		if favicon, ok := links.FaviconURL(found); ok {
			thumbnail = &favicon
		}
	}

	in := GenerateInput{Link: link, Category: &category}
	if hint := titleHint(sharedText); hint != "" {
		in.Title = &hint
	}
	result := p.enrich.Generate(ctx, in)

	// The insert is the durability boundary: cancellation is honored up to
	// here, and a cancellation arriving after the commit does not roll back.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	memo := &models.Memo{
		Title:        result.Title,
		Content:      result.Content,
		Link:         link,
		Category:     result.Category,
		ThumbnailURL: thumbnail,
	}
	if _, err := p.memos.Insert(ctx, memo); err != nil {
		return nil, fmt.Errorf("persist capture: %w", err)
	}

	p.log.Info("captured shared content",
		zap.String("capture_id", captureID),
		zap.Int64("memo_id", memo.ID),
		zap.String("category", memo.Category),
		zap.Bool("has_link", link != nil))
	return memo, nil
}

func titleHint(sharedText string) string {
	runes := []rune(sharedText)
	if len(runes) > titleHintMaxRunes {
		return string(runes[:titleHintMaxRunes])
	}
	return sharedText
}
