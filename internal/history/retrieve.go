// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/htmlize/pkg/types"
)

const conversionColumns = `c.source_path, c.output_path, c.title, c.status,
	c.source_mod_time, c.converted_at, c.html_bytes, c.error`

// QueryOptions holds parameters for history queries.
type QueryOptions struct {
	// Query is an FTS5 search over document titles and bodies.
	Query string

	// Status filters by conversion outcome.
	Status types.ConversionStatus

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Retrieve lists recorded conversions. A text query ranks matches by
// relevance; otherwise the most recent conversions come first.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.Conversion, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(`SELECT ` + conversionColumns + `
			FROM conversions_fts
			JOIN conversions c ON c.rowid = conversions_fts.rowid
			WHERE conversions_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(`SELECT ` + conversionColumns + `
			FROM conversions c
			WHERE 1=1`)
	}

	if opts.Status != "" {
		qb.WriteString(` AND c.status = ?`)
		args = append(args, string(opts.Status))
	}

	if useFTS {
		qb.WriteString(` ORDER BY conversions_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY c.converted_at DESC, c.source_path`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var results []types.Conversion
	for rows.Next() {
		conv, err := scanConversion(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, conv)
	}

	return results, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversion(row rowScanner) (types.Conversion, error) {
	var (
		conv        types.Conversion
		status      string
		outputPath  sql.NullString
		title       sql.NullString
		modTime     sql.NullString
		convertedAt sql.NullString
		htmlBytes   sql.NullInt64
		errText     sql.NullString
	)
	if err := row.Scan(
		&conv.SourcePath, &outputPath, &title, &status,
		&modTime, &convertedAt, &htmlBytes, &errText,
	); err != nil {
		return types.Conversion{}, err
	}

	conv.Status = types.ConversionStatus(status)
	conv.OutputPath = outputPath.String
	conv.Title = title.String
	conv.SourceModTime = parseTime(modTime)
	conv.ConvertedAt = parseTime(convertedAt)
	conv.HTMLBytes = int(htmlBytes.Int64)
	conv.Error = errText.String
	return conv, nil
}
