// Package record defines the persisted output of the extraction pipeline: a
// JSON object with fixed metadata keys followed by one or two section keys,
// each holding an ordered list of paragraph strings.
//
// Key order in storage is part of the contract: metadata first, then the
// Introduction section, then the Review section when present. Section keys
// are dynamic (they carry the titles found in the document), so records
// marshal through an order-preserving encoder rather than a Go map.
package record

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

// Metadata keys as they appear in stored records. The archive's consumers
// are Russian-language tools, so the keys are Russian.
const (
	KeyID        = "id"
	KeyTitle     = "заголовок"
	KeyYear      = "год"
	KeyTopic     = "тема"
	KeyTopicCode = "код_темы"
)

// ErrMalformed marks a persisted record that cannot be decoded.
var ErrMalformed = errors.New("record: malformed record")

// Metadata identifies the source document. ID and TopicCode are optional:
// archives keyed by external id carry ID and no topic code, faculty-crawled
// archives the reverse.
type Metadata struct {
	ID        string
	Title     string
	Year      string
	Topic     string
	TopicCode string
}

// Section is one named section with its paragraphs, in document order.
type Section struct {
	Key        string
	Paragraphs []string
}

// DocumentRecord is the structured output for one processed document.
// It is immutable once written.
type DocumentRecord struct {
	Meta     Metadata
	Sections []Section
}

// Filename returns the canonical storage name for a record with the given
// title and year: an md5 of their concatenation, so re-crawls of the same
// document land on the same file.
func Filename(title, year string) string {
	sum := md5.Sum([]byte(title + year))
	return hex.EncodeToString(sum[:]) + ".json"
}

// MarshalJSON encodes the record with deterministic key order: id (when
// present), заголовок, год, тема, код_темы (when present), then the section
// keys in document order.
func (r DocumentRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeField := func(key string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := sonic.Marshal(key)
		if err != nil {
			return err
		}
		v, err := sonic.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	if r.Meta.ID != "" {
		if err := writeField(KeyID, r.Meta.ID); err != nil {
			return nil, err
		}
	}
	if err := writeField(KeyTitle, r.Meta.Title); err != nil {
		return nil, err
	}
	if err := writeField(KeyYear, r.Meta.Year); err != nil {
		return nil, err
	}
	if err := writeField(KeyTopic, r.Meta.Topic); err != nil {
		return nil, err
	}
	if r.Meta.TopicCode != "" {
		if err := writeField(KeyTopicCode, r.Meta.TopicCode); err != nil {
			return nil, err
		}
	}
	for _, s := range r.Sections {
		if err := writeField(s.Key, s.Paragraphs); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a stored record, preserving the order of section
// keys. Any key that is not a known metadata key is a section; the first
// section is the Introduction, the second the Review.
func (r *DocumentRecord) UnmarshalJSON(data []byte) error {
	keys, raw, err := orderedKeys(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	rec := DocumentRecord{}
	for _, key := range keys {
		switch key {
		case KeyID:
			if err := sonic.Unmarshal(raw[key], &rec.Meta.ID); err != nil {
				return fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
			}
		case KeyTitle:
			if err := sonic.Unmarshal(raw[key], &rec.Meta.Title); err != nil {
				return fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
			}
		case KeyYear:
			if err := sonic.Unmarshal(raw[key], &rec.Meta.Year); err != nil {
				return fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
			}
		case KeyTopic:
			if err := sonic.Unmarshal(raw[key], &rec.Meta.Topic); err != nil {
				return fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
			}
		case KeyTopicCode:
			if err := sonic.Unmarshal(raw[key], &rec.Meta.TopicCode); err != nil {
				return fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
			}
		default:
			var paras []string
			if err := sonic.Unmarshal(raw[key], &paras); err != nil {
				return fmt.Errorf("%w: section %q: %v", ErrMalformed, key, err)
			}
			rec.Sections = append(rec.Sections, Section{Key: key, Paragraphs: paras})
		}
	}

	*r = rec
	return nil
}
