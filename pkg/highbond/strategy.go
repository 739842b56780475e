package highbond

import (
	"context"
	"net/url"
)

// StrategyService covers strategy risks, segments and objectives.
type StrategyService service

// ListRisks returns strategy risks.
func (s *StrategyService) ListRisks(ctx context.Context, fields []string, page Page) (Document, error) {
	if err := page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "strategy_risks", fields)
	page.apply(q)
	return s.client.do(ctx, get("strategy_risks", q))
}

// ListSegments returns strategy segments.
func (s *StrategyService) ListSegments(ctx context.Context, page Page) (Document, error) {
	if err := page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	page.apply(q)
	return s.client.do(ctx, get("strategy_segments", q))
}

// ListRiskSegments returns the segments scored against a strategy risk.
func (s *StrategyService) ListRiskSegments(ctx context.Context, riskID string, page Page) (Document, error) {
	if err := requireID("strategy risk id", riskID); err != nil {
		return nil, err
	}
	if err := page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	page.apply(q)
	return s.client.do(ctx, get(joinPath("strategy_risks", riskID, "strategy_segments"), q))
}

// GetRiskSegment returns one segment of a strategy risk. segmentFields must
// name at least one field; factorFields is optional.
func (s *StrategyService) GetRiskSegment(ctx context.Context, riskID, segmentID string, segmentFields, factorFields []string) (Document, error) {
	if err := requireIDs("strategy risk id", riskID, "segment id", segmentID); err != nil {
		return nil, err
	}
	q := url.Values{}
	setFields(q, "strategy_segments", segmentFields)
	if q.Get("fields[strategy_segments]") == "" {
		return nil, invalid("segment fields", "at least one field is required")
	}
	setFields(q, "strategy_factors", factorFields)
	return s.client.do(ctx, get(joinPath("strategy_risks", riskID, "strategy_segments", segmentID), q))
}

// ListObjectives returns strategy objectives.
func (s *StrategyService) ListObjectives(ctx context.Context, page Page) (Document, error) {
	if err := page.validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	page.apply(q)
	return s.client.do(ctx, get("strategy_objectives", q))
}
