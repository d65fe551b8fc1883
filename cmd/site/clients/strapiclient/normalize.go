package strapiclient

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Records may arrive flat (v5) or wrapped in "attributes" (v4), and relations
// may be a bare array or a {"data": ...} wrapper. The decoders below try each
// shape in a fixed order and degrade to zero values instead of failing.

type rawObject map[string]json.RawMessage

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func decodeObject(raw json.RawMessage) (rawObject, bool) {
	if isNull(raw) {
		return nil, false
	}
	var obj rawObject
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func decodeArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	if isNull(raw) {
		return nil, false
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, false
	}
	return arr, true
}

// get looks key up exactly, then ignoring case.
func (o rawObject) get(key string) json.RawMessage {
	if v, ok := o[key]; ok {
		return v
	}
	for k, v := range o {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

func (o rawObject) has(key string) bool {
	return o.get(key) != nil
}

func (o rawObject) str(key string) string {
	raw := o.get(key)
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func (o rawObject) int(key string) int {
	raw := o.get(key)
	if isNull(raw) {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		return 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
	}
	return 0
}

func (o rawObject) time(key string) *time.Time {
	s := o.str(key)
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}

// flatten merges a nested "attributes" object with the record's id.
// Records without attributes are returned as-is.
func flatten(record rawObject) rawObject {
	attrs, ok := decodeObject(record.get("attributes"))
	if !ok {
		return record
	}
	merged := make(rawObject, len(attrs)+2)
	for k, v := range attrs {
		merged[k] = v
	}
	if id := record.get(FieldID); id != nil {
		merged[FieldID] = id
	}
	if !merged.has(FieldDocumentID) {
		if docID := record.get(FieldDocumentID); docID != nil {
			merged[FieldDocumentID] = docID
		}
	}
	return merged
}

// relationItems unwraps a to-many relation: a bare array first, then a
// {"data": [...]} or {"data": {...}} wrapper, else nothing.
func relationItems(raw json.RawMessage) []json.RawMessage {
	if arr, ok := decodeArray(raw); ok {
		return arr
	}
	obj, ok := decodeObject(raw)
	if !ok {
		return nil
	}
	data := obj.get("data")
	if arr, ok := decodeArray(data); ok {
		return arr
	}
	if _, ok := decodeObject(data); ok {
		return []json.RawMessage{data}
	}
	return nil
}

// NormalizePost maps one raw post record onto Post.
func NormalizePost(raw json.RawMessage) Post {
	record, ok := decodeObject(raw)
	if !ok {
		return Post{Categories: []Category{}}
	}
	fields := flatten(record)

	return Post{
		ID:          fields.int(FieldID),
		DocumentID:  fields.str(FieldDocumentID),
		Title:       fields.str(FieldTitle),
		Slug:        fields.str(FieldSlug),
		Content:     fields.str(FieldContent),
		Description: fields.str(FieldDescription),
		Cover:       NormalizeMedia(fields.get(FieldCover)),
		Categories:  NormalizeCategories(fields.get(FieldCategories)),
		CreatedAt:   fields.time(FieldCreatedAt),
		UpdatedAt:   fields.time(FieldUpdatedAt),
		PublishedAt: fields.time(FieldPublishedAt),
	}
}

// NormalizePosts maps the "data" member of a response. A single object is
// treated as a one-element list; null and garbage yield an empty slice.
func NormalizePosts(data json.RawMessage) []Post {
	items, ok := decodeArray(data)
	if !ok {
		if _, isObj := decodeObject(data); isObj {
			items = []json.RawMessage{data}
		}
	}
	out := make([]Post, 0, len(items))
	for _, item := range items {
		out = append(out, NormalizePost(item))
	}
	return out
}

func NormalizeCategory(raw json.RawMessage) Category {
	record, ok := decodeObject(raw)
	if !ok {
		return Category{}
	}
	fields := flatten(record)

	return Category{
		ID:          fields.int(FieldID),
		DocumentID:  fields.str(FieldDocumentID),
		Name:        fields.str(FieldCategoryName),
		Slug:        fields.str(FieldCategorySlug),
		Description: fields.str(FieldCategoryDescription),
	}
}

// NormalizeCategories accepts a bare array, a {"data": [...]} wrapper or
// nothing. It never returns nil.
func NormalizeCategories(raw json.RawMessage) []Category {
	items := relationItems(raw)
	out := make([]Category, 0, len(items))
	for _, item := range items {
		out = append(out, NormalizeCategory(item))
	}
	return out
}

// NormalizeMedia accepts flat media, {"data": media}, v4 {"data": {"id",
// "attributes"}} and multi-media arrays (first element wins).
func NormalizeMedia(raw json.RawMessage) *Media {
	if arr, ok := decodeArray(raw); ok {
		if len(arr) == 0 {
			return nil
		}
		return NormalizeMedia(arr[0])
	}
	obj, ok := decodeObject(raw)
	if !ok {
		return nil
	}
	if !obj.has("url") && !obj.has("formats") && obj.has("data") {
		return NormalizeMedia(obj.get("data"))
	}
	fields := flatten(obj)

	m := &Media{
		ID:              fields.int(FieldID),
		URL:             fields.str("url"),
		AlternativeText: fields.str("alternativeText"),
		Width:           fields.int("width"),
		Height:          fields.int("height"),
	}
	if formats, ok := decodeObject(fields.get("formats")); ok {
		m.Formats = make(map[string]MediaFormat, len(formats))
		for name, rawFormat := range formats {
			f, ok := decodeObject(rawFormat)
			if !ok {
				continue
			}
			m.Formats[name] = MediaFormat{
				URL:    f.str("url"),
				Width:  f.int("width"),
				Height: f.int("height"),
			}
		}
	}
	return m
}
