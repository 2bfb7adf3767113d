package vector

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/graphdex/internal/domain"
	"github.com/kailas-cloud/graphdex/internal/similarity"
)

// AddDocument stores a document hash with its embedding vector.
func (s *Store) AddDocument(ctx context.Context, doc domain.Document, vec []float32) error {
	if len(vec) != s.dim {
		return fmt.Errorf("%w: got %d, index expects %d",
			domain.ErrDimensionMismatch, len(vec), s.dim)
	}

	fields := map[string]string{
		"__content": doc.Content,
		"__vector":  vectorToBytes(vec),
	}
	if len(doc.Metadata) > 0 {
		meta, err := json.Marshal(doc.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
		fields["__metadata"] = string(meta)
	}

	cmd := s.client.B().Hset().Key(s.docKey(doc.ID)).FieldValue()
	for k, v := range fields {
		cmd = cmd.FieldValue(k, v)
	}
	if err := s.client.Do(ctx, cmd.Build()).Error(); err != nil {
		return storeErr("HSET", err)
	}
	return nil
}

// GetDocument fetches a document by id. The internal placeholder row is
// reported as not found.
func (s *Store) GetDocument(ctx context.Context, id string) (domain.Document, error) {
	if id == placeholderID {
		return domain.Document{}, domain.ErrDocumentNotFound
	}

	cmd := s.client.B().Hgetall().Key(s.docKey(id)).Build()
	m, err := s.client.Do(ctx, cmd).AsStrMap()
	if err != nil {
		return domain.Document{}, storeErr("HGETALL", err)
	}
	if len(m) == 0 {
		return domain.Document{}, domain.ErrDocumentNotFound
	}

	return docFromFields(id, m), nil
}

// UpdateDocument applies delete-then-recreate semantics, tolerant of a
// missing document on delete.
func (s *Store) UpdateDocument(ctx context.Context, doc domain.Document, vec []float32) error {
	if _, err := s.DeleteDocument(ctx, doc.ID); err != nil {
		return err
	}
	return s.AddDocument(ctx, doc, vec)
}

// DeleteDocument removes a document. Returns false when it did not exist.
func (s *Store) DeleteDocument(ctx context.Context, id string) (bool, error) {
	cmd := s.client.B().Del().Key(s.docKey(id)).Build()
	count, err := s.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return false, storeErr("DEL", err)
	}
	return count > 0, nil
}

// ListDocuments returns up to limit documents, excluding the placeholder.
func (s *Store) ListDocuments(ctx context.Context, limit int) ([]domain.Document, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []string{
		s.indexName(), "*",
		"LIMIT", "0", strconv.Itoa(limit + 1),
		"RETURN", "2", "__content", "__metadata",
	}
	cmd := s.client.B().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.client.Do(ctx, cmd).ToArray()
	if err != nil {
		return nil, storeErr("FT.SEARCH", err)
	}

	entries := parseEntries(raw, 2)
	docs := make([]domain.Document, 0, len(entries))
	for _, e := range entries {
		id := strings.TrimPrefix(e.key, s.prefix+"doc:")
		if id == placeholderID {
			continue
		}
		docs = append(docs, docFromFields(id, e.fields))
		if len(docs) == limit {
			break
		}
	}
	return docs, nil
}

// Search runs KNN similarity search and returns similarity-scored hits.
// The cosine distance reported by the index is converted to a similarity
// clamped to [0,1]. Placeholder rows are filtered out.
func (s *Store) Search(ctx context.Context, vec []float32, topK int) ([]domain.VectorHit, error) {
	if len(vec) != s.dim {
		return nil, fmt.Errorf("%w: got %d, index expects %d",
			domain.ErrDimensionMismatch, len(vec), s.dim)
	}
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive")
	}

	// Over-fetch by one to absorb the placeholder row.
	k := topK + 1
	cmd := s.client.B().Arbitrary("FT.SEARCH").Args(s.knnArgs(k, vectorToBytes(vec))...).Build()
	raw, err := s.client.Do(ctx, cmd).ToArray()
	if err != nil {
		return nil, storeErr("FT.SEARCH", err)
	}

	entries := parseEntries(raw, 2)
	hits := make([]domain.VectorHit, 0, len(entries))
	for _, e := range entries {
		id := strings.TrimPrefix(e.key, s.prefix+"doc:")
		if id == placeholderID {
			continue
		}

		var sim float64
		if scoreStr, ok := e.fields[knnScoreField]; ok {
			if d, perr := strconv.ParseFloat(scoreStr, 64); perr == nil {
				sim = max(0, 1.0-d) // cosine distance to similarity
			}
		} else if blob, ok := e.fields["__vector"]; ok {
			// Some server versions omit the score field; recompute from the
			// stored vector.
			if c, cerr := similarity.Cosine(vec, bytesToVector(blob)); cerr == nil {
				sim = max(0, c)
			}
		}

		doc := docFromFields(id, e.fields)
		hits = append(hits, domain.VectorHit{
			DocID:      id,
			Content:    doc.Content,
			Similarity: sim,
			Metadata:   doc.Metadata,
		})
		if len(hits) == topK {
			break
		}
	}
	return hits, nil
}

// knnScoreField names the KNN distance in the query so the response field is
// predictable regardless of the vector attribute name.
const knnScoreField = "score"

// knnArgs builds the FT.SEARCH argument list for a KNN query. The explicit
// LIMIT is required: without it the server cuts results to its default
// window of 10 rows no matter what K the KNN clause names.
func (s *Store) knnArgs(k int, blob string) []string {
	query := fmt.Sprintf("*=>[KNN %d @__vector $BLOB AS %s]", k, knnScoreField)
	return []string{
		s.indexName(), query,
		"RETURN", "4", "__content", "__metadata", knnScoreField, "__vector",
		"LIMIT", "0", strconv.Itoa(k),
		"PARAMS", "2", "BLOB", blob,
		"DIALECT", "2",
	}
}

// Stats reports document count and index dimension. The count excludes the
// placeholder row and may briefly lag writes.
func (s *Store) Stats(ctx context.Context) (domain.VectorStats, error) {
	cmd := s.client.B().Arbitrary("FT.SEARCH").
		Args(s.indexName(), "*", "LIMIT", "0", "0").Build()
	raw, err := s.client.Do(ctx, cmd).ToArray()
	if err != nil {
		return domain.VectorStats{Status: "error"}, storeErr("FT.SEARCH", err)
	}

	total := 0
	if len(raw) > 0 {
		if n, perr := raw[0].AsInt64(); perr == nil {
			total = int(n)
		}
	}
	if total > 0 {
		total-- // exclude the placeholder row
	}

	return domain.VectorStats{
		TotalDocuments: total,
		Dimension:      s.dim,
		Status:         "ok",
	}, nil
}

// --- parsing helpers ---

type entry struct {
	key    string
	fields map[string]string
}

// parseEntries walks an FT.SEARCH RESP2 reply of shape
// [total, key1, fields1, key2, fields2, ...].
func parseEntries(raw []rueidis.RedisMessage, stride int) []entry {
	if len(raw) == 0 {
		return nil
	}

	entries := make([]entry, 0, (len(raw)-1)/stride)
	for i := 1; i+1 < len(raw); i += stride {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}
		entries = append(entries, entry{key: key, fields: parseFieldPairs(fields)})
	}
	return entries
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

func docFromFields(id string, fields map[string]string) domain.Document {
	doc := domain.Document{ID: id, Content: fields["__content"]}
	if meta, ok := fields["__metadata"]; ok && meta != "" {
		var m map[string]string
		if json.Unmarshal([]byte(meta), &m) == nil {
			doc.Metadata = m
		}
	}
	return doc
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

func bytesToVector(s string) []float32 {
	out := make([]float32, len(s)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32([]byte(s[i*4 : i*4+4])))
	}
	return out
}
