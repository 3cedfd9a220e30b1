package service

import (
	"sort"
	"strconv"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Record is one opaque row fetched from the backend. Field access goes
// through JMESPath selectors so views never depend on a fixed schema.
type Record = map[string]any

// Filter tags understood by every view. FilterAll is a passthrough; the
// WITHOUT_* tags select rows whose named field is absent or blank.
const (
	FilterAll           = "ALL"
	FilterWithoutDriver = "WITHOUT_DRIVER"
	FilterWithoutHelper = "WITHOUT_HELPER"
)

// SortKey describes one sortable column of a view.
type SortKey struct {
	Selector string // JMESPath expression into a Record
	Numeric  bool   // numeric keys sort descending (largest first)
}

// ViewSpec is the static description of a roster view: which fields search
// scans, which field the filter matches, and which keys sorting accepts.
type ViewSpec struct {
	SearchFields []string          // JMESPath expressions scanned by search
	FilterField  string            // JMESPath expression matched by filter tags
	AbsenceTags  map[string]string // filter tag -> field that must be blank
	SortKeys     map[string]SortKey
	DefaultSort  string
}

// Query is the user-held view state: all three are optional and the zero
// Query passes records through untouched (apart from the default sort).
type Query struct {
	Search string
	Filter string
	Sort   string
}

// ViewResult separates "the backend returned nothing" from "the query
// matched nothing"; the latter offers a clear-filters action in the UI.
type ViewResult struct {
	Records   []Record
	NoData    bool
	NoMatches bool
}

// Roster applies search, filter and sort over backend records as pure
// functions. The same inputs always yield the same output and the input
// slice is never mutated, so re-running a query is free of side effects.
type Roster struct {
	spec     ViewSpec
	collator *collate.Collator
}

// NewRoster validates every selector in the spec up front so a typo fails
// at construction, not per request.
func NewRoster(spec ViewSpec) (*Roster, error) {
	exprs := make([]string, 0, len(spec.SearchFields)+len(spec.SortKeys)+1)
	exprs = append(exprs, spec.SearchFields...)
	if spec.FilterField != "" {
		exprs = append(exprs, spec.FilterField)
	}
	for _, key := range spec.SortKeys {
		exprs = append(exprs, key.Selector)
	}
	for _, field := range spec.AbsenceTags {
		exprs = append(exprs, field)
	}
	for _, expr := range exprs {
		if _, err := jmespath.Compile(expr); err != nil {
			return nil, err
		}
	}
	return &Roster{
		spec:     spec,
		collator: collate.New(language.English, collate.IgnoreCase),
	}, nil
}

// Apply runs the full pipeline: search, then filter, then sort.
func (r *Roster) Apply(records []Record, q Query) ViewResult {
	if len(records) == 0 {
		return ViewResult{NoData: true}
	}

	out := r.applySearch(records, q.Search)
	out = r.applyFilter(out, q.Filter)
	out = r.applySort(out, q.Sort)

	if len(out) == 0 {
		return ViewResult{NoMatches: true}
	}
	return ViewResult{Records: out}
}

func (r *Roster) applySearch(records []Record, needle string) []Record {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return records
	}

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		for _, field := range r.spec.SearchFields {
			if strings.Contains(strings.ToLower(fieldString(field, rec)), needle) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

func (r *Roster) applyFilter(records []Record, tag string) []Record {
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == FilterAll {
		return records
	}

	if field, ok := r.spec.AbsenceTags[tag]; ok {
		out := make([]Record, 0, len(records))
		for _, rec := range records {
			if strings.TrimSpace(fieldString(field, rec)) == "" {
				out = append(out, rec)
			}
		}
		return out
	}

	if r.spec.FilterField == "" {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if fieldString(r.spec.FilterField, rec) == tag {
			out = append(out, rec)
		}
	}
	return out
}

func (r *Roster) applySort(records []Record, keyName string) []Record {
	if keyName == "" {
		keyName = r.spec.DefaultSort
	}
	key, ok := r.spec.SortKeys[keyName]
	if !ok {
		return records
	}

	out := make([]Record, len(records))
	copy(out, records)

	if key.Numeric {
		sort.SliceStable(out, func(i, j int) bool {
			return fieldNumber(key.Selector, out[i]) > fieldNumber(key.Selector, out[j])
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a := fieldString(key.Selector, out[i])
		b := fieldString(key.Selector, out[j])
		// Blank values sort after everything else.
		if a == "" || b == "" {
			return b == "" && a != ""
		}
		return r.collator.CompareString(a, b) < 0
	})
	return out
}

// fieldString evaluates a selector against a record and renders the result
// as text. JSON numbers arrive as float64; everything unknown is blank.
func fieldString(expr string, rec Record) string {
	val, err := jmespath.Search(expr, rec)
	if err != nil || val == nil {
		return ""
	}
	switch v := val.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func fieldNumber(expr string, rec Record) float64 {
	val, err := jmespath.Search(expr, rec)
	if err != nil || val == nil {
		return 0
	}
	switch v := val.(type) {
	case float64:
		return v
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// BusViewSpec covers the agency and school bus listings.
func BusViewSpec() ViewSpec {
	return ViewSpec{
		SearchFields: []string{"busNumber", "schoolName", "driverName"},
		AbsenceTags: map[string]string{
			FilterWithoutDriver: "driverName",
			FilterWithoutHelper: "helperName",
		},
		SortKeys: map[string]SortKey{
			"busNumber":  {Selector: "busNumber"},
			"schoolName": {Selector: "schoolName"},
			"capacity":   {Selector: "capacity", Numeric: true},
		},
		DefaultSort: "busNumber",
	}
}

// StudentViewSpec covers school student listings and the helper roster.
func StudentViewSpec() ViewSpec {
	return ViewSpec{
		SearchFields: []string{"name", "className", "rollNo", "email"},
		FilterField:  "passStatus",
		SortKeys: map[string]SortKey{
			"name":      {Selector: "name"},
			"className": {Selector: "className"},
		},
		DefaultSort: "name",
	}
}

// DriverViewSpec covers the agency driver listing.
func DriverViewSpec() ViewSpec {
	return ViewSpec{
		SearchFields: []string{"name", "licenseNumber", "email"},
		SortKeys: map[string]SortKey{
			"name": {Selector: "name"},
		},
		DefaultSort: "name",
	}
}

// HelperViewSpec covers school and agency helper listings.
func HelperViewSpec() ViewSpec {
	return ViewSpec{
		SearchFields: []string{"name", "email"},
		SortKeys: map[string]SortKey{
			"name": {Selector: "name"},
		},
		DefaultSort: "name",
	}
}

// SchoolViewSpec covers the agency school listing.
func SchoolViewSpec() ViewSpec {
	return ViewSpec{
		SearchFields: []string{"name", "email", "address"},
		SortKeys: map[string]SortKey{
			"name": {Selector: "name"},
		},
		DefaultSort: "name",
	}
}

// TodayViewSpec covers the present/absent roster built from today's
// pickup statuses.
func TodayViewSpec() ViewSpec {
	return ViewSpec{
		SearchFields: []string{"studentName", "className"},
		FilterField:  "pickupStatus",
		SortKeys: map[string]SortKey{
			"studentName": {Selector: "studentName"},
		},
		DefaultSort: "studentName",
	}
}
