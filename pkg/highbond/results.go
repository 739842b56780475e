package highbond

import (
	"context"
	"net/http"
	"net/url"
)

// ResultsService covers Results collections, analyses, tables and records.
type ResultsService service

// RecordQueryParams filters GET tables/{id}/records.
type RecordQueryParams struct {
	// Statuses is sent as repeated filter[metadata.status][] values.
	Statuses []string
	Assignee string
}

// ListTables returns the tables of an analysis.
func (s *ResultsService) ListTables(ctx context.Context, analysisID string) (Document, error) {
	if err := requireID("analysis id", analysisID); err != nil {
		return nil, err
	}
	return s.client.do(ctx, get(joinPath("analyses", analysisID, "tables"), nil))
}

// ListCollections returns every Results collection.
func (s *ResultsService) ListCollections(ctx context.Context) (Document, error) {
	return s.client.do(ctx, get("collections", nil))
}

// ListAnalyses returns the analyses of a collection.
func (s *ResultsService) ListAnalyses(ctx context.Context, collectionID string) (Document, error) {
	if err := requireID("collection id", collectionID); err != nil {
		return nil, err
	}
	return s.client.do(ctx, get(joinPath("collections", collectionID, "analyses"), nil))
}

// GetRecords returns the records of a table.
func (s *ResultsService) GetRecords(ctx context.Context, tableID string, params RecordQueryParams) (Document, error) {
	if err := requireID("table id", tableID); err != nil {
		return nil, err
	}
	q := url.Values{}
	for _, st := range params.Statuses {
		if st != "" {
			q.Add("filter[metadata.status][]", st)
		}
	}
	setString(q, "filter[metadata.assignee]", params.Assignee)
	return s.client.do(ctx, get(joinPath("tables", tableID, "records"), q))
}

// UploadRecords appends rows to a table, or replaces its contents when
// Overwrite is set. Column types are inferred from the record values.
func (s *ResultsService) UploadRecords(ctx context.Context, tableID string, in RecordUpload) (Document, error) {
	if err := requireID("table id", tableID); err != nil {
		return nil, err
	}
	body, err := in.build()
	if err != nil {
		return nil, err
	}
	return s.client.do(ctx, request{method: http.MethodPost, path: joinPath("tables", tableID, "upload"), body: body})
}
