package strapiclient

import (
	"net/url"
	"strconv"
	"strings"
)

type Operator string

const (
	OpEq Operator = "$eq"
	OpNe Operator = "$ne"
	OpIn Operator = "$in"
)

type filter struct {
	path   []string
	op     Operator
	values []string
}

type populate struct {
	field  string
	all    bool
	fields []string
}

type sortKey struct {
	field string
	desc  bool
}

// Query builds the filters/populate/sort/pagination part of a CMS request
// URL. Fields may be dotted paths ("categories.slug") to filter on a relation.
// Values are not validated.
type Query struct {
	filters  []filter
	populate []populate
	sort     []sortKey
	limit    int
}

func NewQuery() *Query {
	return &Query{}
}

// Eq adds filters[field][$eq]=value.
func (q *Query) Eq(field, value string) *Query {
	return q.addFilter(field, OpEq, value)
}

// Ne adds filters[field][$ne]=value.
func (q *Query) Ne(field, value string) *Query {
	return q.addFilter(field, OpNe, value)
}

// In adds filters[field][$in][i]=value for every value.
func (q *Query) In(field string, values ...string) *Query {
	return q.addFilter(field, OpIn, values...)
}

func (q *Query) addFilter(field string, op Operator, values ...string) *Query {
	q.filters = append(q.filters, filter{path: strings.Split(field, "."), op: op, values: values})
	return q
}

// Populate expands the named relations. "*" expands everything.
func (q *Query) Populate(fields ...string) *Query {
	for _, f := range fields {
		q.populate = append(q.populate, populate{field: f})
	}
	return q
}

// PopulateAll encodes populate[field]=*.
func (q *Query) PopulateAll(field string) *Query {
	q.populate = append(q.populate, populate{field: field, all: true})
	return q
}

// PopulateFields expands field but only selects the given sub-fields.
func (q *Query) PopulateFields(field string, fields ...string) *Query {
	q.populate = append(q.populate, populate{field: field, fields: fields})
	return q
}

func (q *Query) Sort(field string, desc bool) *Query {
	q.sort = append(q.sort, sortKey{field: field, desc: desc})
	return q
}

// Limit sets pagination[limit]. n <= 0 leaves the upstream default.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Encode renders the query in the upstream bracket grammar. Parameters keep
// insertion order within each group: filters, populate, sort, pagination.
func (q *Query) Encode() string {
	if q == nil {
		return ""
	}
	var parts []string
	add := func(key, value string) {
		parts = append(parts, key+"="+value)
	}

	for _, f := range q.filters {
		key := "filters" + brackets(f.path...) + brackets(string(f.op))
		if f.op == OpIn {
			for i, v := range f.values {
				add(key+brackets(strconv.Itoa(i)), url.QueryEscape(v))
			}
			continue
		}
		value := ""
		if len(f.values) > 0 {
			value = f.values[0]
		}
		add(key, url.QueryEscape(value))
	}

	q.encodePopulate(add)

	for i, s := range q.sort {
		dir := "asc"
		if s.desc {
			dir = "desc"
		}
		add("sort"+brackets(strconv.Itoa(i)), url.QueryEscape(s.field)+":"+dir)
	}

	if q.limit > 0 {
		add("pagination[limit]", strconv.Itoa(q.limit))
	}
	return strings.Join(parts, "&")
}

func (q *Query) encodePopulate(add func(key, value string)) {
	if len(q.populate) == 0 {
		return
	}

	nested := false
	for _, p := range q.populate {
		if p.all || len(p.fields) > 0 {
			nested = true
			break
		}
	}

	if !nested {
		if len(q.populate) == 1 {
			add("populate", escapeField(q.populate[0].field))
			return
		}
		for i, p := range q.populate {
			add("populate"+brackets(strconv.Itoa(i)), escapeField(p.field))
		}
		return
	}

	// object syntax; plain entries become populate[field]=true
	for _, p := range q.populate {
		switch {
		case p.all:
			add("populate"+brackets(p.field), "*")
		case len(p.fields) > 0:
			for i, f := range p.fields {
				add("populate"+brackets(p.field, "fields", strconv.Itoa(i)), url.QueryEscape(f))
			}
		default:
			add("populate"+brackets(p.field), "true")
		}
	}
}

func escapeField(field string) string {
	if field == "*" {
		return field
	}
	return url.QueryEscape(field)
}

func brackets(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('[')
		if strings.HasPrefix(s, "$") {
			b.WriteString(s)
		} else {
			b.WriteString(url.QueryEscape(s))
		}
		b.WriteByte(']')
	}
	return b.String()
}
