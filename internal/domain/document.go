package domain

import "time"

// DocumentKind identifies the aggregation axis of a document.
type DocumentKind string

const (
	// DocumentKindLetter aggregates all words ending in the document's letter.
	DocumentKindLetter DocumentKind = "letter"
	// DocumentKindTopic aggregates all words tagged with the document's topic.
	DocumentKindTopic DocumentKind = "topic"
)

func (k DocumentKind) String() string { return string(k) }

func (k DocumentKind) IsValid() bool {
	return k == DocumentKindLetter || k == DocumentKindTopic
}

// Document is an aggregation index node keyed by (Kind, Name). LastUpdate
// is refreshed whenever the document's membership changes; readers use it
// for cache-busting and ranking.
type Document struct {
	ID         int64
	Kind       DocumentKind
	Name       string
	LastUpdate time.Time
	CreatedAt  time.Time
}

// DocumentIndex holds name -> document lookups for both kinds, built once
// per operation from a full document listing.
type DocumentIndex struct {
	Letter map[string]int64
	Topic  map[string]int64
}

// BuildDocumentIndex splits documents into per-kind name lookups.
func BuildDocumentIndex(docs []Document) DocumentIndex {
	idx := DocumentIndex{
		Letter: make(map[string]int64),
		Topic:  make(map[string]int64),
	}
	for _, d := range docs {
		switch d.Kind {
		case DocumentKindLetter:
			idx.Letter[d.Name] = d.ID
		case DocumentKindTopic:
			idx.Topic[d.Name] = d.ID
		}
	}
	return idx
}

// Match returns the ids of the documents affected by a word with the given
// topic names: its last-letter document plus one per topic name. Names
// without a document are skipped.
func (idx DocumentIndex) Match(word string, topicNames []string) []int64 {
	var ids []int64
	if id, ok := idx.Letter[LastLetter(word)]; ok {
		ids = append(ids, id)
	}
	for _, name := range topicNames {
		if id, ok := idx.Topic[name]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// LastLetter returns the final rune of a word as a string, the key used to
// match letter documents. Empty input yields "".
func LastLetter(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[len(runes)-1])
}
