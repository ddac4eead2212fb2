package store

import "context"

// Table and column family layout. Qualifiers inside the families are
// free-form and owned by internal/records.
const (
	TABLE_QNA       = "stackoverflow_qna"
	TABLE_TRENDS    = "stackoverflow_trends"
	TABLE_TAG_INDEX = "stackoverflow_tag_index"

	FAMILY_QUESTION     = "question"
	FAMILY_ANSWERS      = "answers"
	FAMILY_TOP_ANSWERS  = "top_answers"
	FAMILY_TREND        = "trend"
	FAMILY_QUESTION_IDS = "question_ids"
)

// TableFamilies lists every table the schema needs together with its
// column families. EnsureTables creates whatever is missing.
var TableFamilies = map[string][]string{
	TABLE_QNA:       {FAMILY_QUESTION, FAMILY_ANSWERS, FAMILY_TOP_ANSWERS},
	TABLE_TRENDS:    {FAMILY_TREND},
	TABLE_TAG_INDEX: {FAMILY_QUESTION_IDS},
}

// Row is one scanned row: its key and the latest cell values keyed by
// "family:qualifier".
type Row struct {
	Key   string
	Cells map[string][]byte
}

// ScanOptions bounds a scan. Start is inclusive, Stop exclusive; when a
// Prefix is set it clamps both bounds to rows sharing the prefix.
type ScanOptions struct {
	Prefix string
	Start  string
	Stop   string
	Limit  int
}

// Gateway is the narrow wide-column store surface the rest of the module
// talks to. A Put is atomic for all cells it touches on one row; puts to
// the same key overwrite cell-by-cell with no merge semantics.
type Gateway interface {
	Put(ctx context.Context, table, key string, cells map[string][]byte) error
	Get(ctx context.Context, table, key string) (map[string][]byte, error)
	Scan(ctx context.Context, table string, opts ScanOptions) ([]Row, error)
	EnsureTables(ctx context.Context) error
	Close() error
}
