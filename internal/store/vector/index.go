package vector

import (
	"context"
	"strconv"
)

// HNSWConfig holds index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// EnsureIndex creates the document FT index if it does not exist and seeds
// the internal placeholder row so searches work against an otherwise empty
// index. Idempotent.
func (s *Store) EnsureIndex(ctx context.Context, hnsw HNSWConfig) error {
	m := hnsw.M
	if m <= 0 {
		m = 16
	}
	ef := hnsw.EFConstruct
	if ef <= 0 {
		ef = 200
	}

	args := []string{
		s.indexName(),
		"ON", "HASH",
		"PREFIX", "1", s.prefix + "doc:",
		"SCHEMA",
		"__content", "TEXT",
		"__vector", "VECTOR", "HNSW", "10",
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(s.dim),
		"DISTANCE_METRIC", "COSINE",
		"M", strconv.Itoa(m),
		"EF_CONSTRUCTION", strconv.Itoa(ef),
	}

	cmd := s.client.B().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if !isRedisErr(err, "index already exists") {
			return storeErr("FT.CREATE", err)
		}
	}

	return s.seedPlaceholder(ctx)
}

// seedPlaceholder writes the internal bootstrap row unless it already exists.
func (s *Store) seedPlaceholder(ctx context.Context) error {
	key := s.docKey(placeholderID)

	existsCmd := s.client.B().Exists().Key(key).Build()
	count, err := s.client.Do(ctx, existsCmd).AsInt64()
	if err != nil {
		return storeErr("EXISTS", err)
	}
	if count > 0 {
		return nil
	}

	zero := make([]float32, s.dim)
	cmd := s.client.B().Hset().Key(key).FieldValue().
		FieldValue("__content", "index bootstrap placeholder").
		FieldValue("__internal", "1").
		FieldValue("__vector", vectorToBytes(zero)).
		Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return storeErr("HSET", err)
	}
	return nil
}
