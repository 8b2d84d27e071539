package usecase

import (
	"context"
	"fmt"

	"github.com/ozanbudak/footsight/internal/platform/logging"
)

type PipelineResult struct {
	TotalIngested int            `json:"total_ingested"`
	TotalAnalyzed int            `json:"total_analyzed"`
	Message       string         `json:"message"`
	Sweep         SweepResult    `json:"sweep"`
	Analysis      AnalysisResult `json:"analysis"`
}

// PipelineService composes the sweep and the analysis dispatch into one
// refresh operation.
type PipelineService struct {
	sweep    *SweepService
	analysis *AnalysisService
	logger   *logging.Logger
}

func NewPipelineService(sweep *SweepService, analysis *AnalysisService, logger *logging.Logger) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PipelineService{
		sweep:    sweep,
		analysis: analysis,
		logger:   logger,
	}
}

// RefreshAndAnalyze sweeps all configured leagues, then dispatches
// analysis for pending matches. A systemic analysis failure still
// returns the ingestion counts already committed; per-attempt and
// per-match failures never surface as an error.
func (s *PipelineService) RefreshAndAnalyze(ctx context.Context) (PipelineResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.RefreshAndAnalyze")
	defer span.End()

	if s.sweep == nil || s.analysis == nil {
		return PipelineResult{}, fmt.Errorf("%w: pipeline services are not configured", ErrDependencyUnavailable)
	}

	sweepResult, err := s.sweep.Sweep(ctx)
	if err != nil {
		return PipelineResult{}, fmt.Errorf("sweep leagues: %w", err)
	}

	result := PipelineResult{
		TotalIngested: sweepResult.TotalProcessed,
		Sweep:         sweepResult,
	}

	analysisResult, err := s.analysis.AnalyzePending(ctx)
	if err != nil {
		result.Message = fmt.Sprintf("ingested %d matches; analysis dispatch failed: %v", result.TotalIngested, err)
		return result, fmt.Errorf("dispatch analysis: %w", err)
	}

	result.Analysis = analysisResult
	result.TotalAnalyzed = analysisResult.Analyzed
	result.Message = fmt.Sprintf("ingested %d matches, analyzed %d of %d pending", result.TotalIngested, analysisResult.Analyzed, analysisResult.Pending)

	s.logger.InfoContext(ctx, "pipeline refresh finished",
		"total_ingested", result.TotalIngested,
		"total_analyzed", result.TotalAnalyzed,
	)
	return result, nil
}
