package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/rueidis"

	"github.com/brandpulse/creatorsearch/internal/db"
)

// EnsureIndex creates the creator FT index if it does not exist yet.
func (s *Store) EnsureIndex(ctx context.Context, spec *db.IndexSpec) error {
	args := buildCreateArgs(spec)

	cmd := s.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return nil
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

func buildCreateArgs(spec *db.IndexSpec) []string {
	args := []string{spec.Name, "ON", "HASH", "PREFIX", "1", spec.KeyPrefix, "SCHEMA"}

	for _, f := range spec.TagFields {
		args = append(args, f, "TAG")
	}
	for _, f := range spec.NumFields {
		args = append(args, f, "NUMERIC")
	}

	m := spec.HNSWM
	if m <= 0 {
		m = 32
	}
	efc := spec.HNSWEFConstruct
	if efc <= 0 {
		efc = 400
	}

	args = append(args, "vector", "VECTOR", "HNSW", "10",
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(spec.VectorDim),
		"DISTANCE_METRIC", "COSINE",
		"M", strconv.Itoa(m),
		"EF_CONSTRUCTION", strconv.Itoa(efc),
	)
	return args
}

// SetFields sets document hash fields.
func (s *Store) SetFields(ctx context.Context, key string, fields map[string]string) error {
	cmd := s.b().Hset().Key(key).FieldValue()
	for k, v := range fields {
		cmd = cmd.FieldValue(k, v)
	}
	if err := s.do(ctx, cmd.Build()).Error(); err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}
	return nil
}

// FetchFields returns selected fields of a document hash.
// A missing document yields db.ErrKeyNotFound.
func (s *Store) FetchFields(ctx context.Context, key string, fields []string) (map[string]string, error) {
	if len(fields) == 0 {
		m, err := s.do(ctx, s.b().Hgetall().Key(key).Build()).AsStrMap()
		if err != nil {
			return nil, &db.Error{Op: db.OpHGetAll, Err: err}
		}
		if len(m) == 0 {
			return nil, db.ErrKeyNotFound
		}
		return m, nil
	}

	cmd := s.b().Hmget().Key(key).Field(fields...).Build()
	vals, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}

	out := make(map[string]string, len(fields))
	for i, v := range vals {
		if i >= len(fields) {
			break
		}
		str, err := v.ToString()
		if err != nil {
			continue // nil entry: field absent
		}
		out[fields[i]] = str
	}
	if len(out) == 0 {
		return nil, db.ErrKeyNotFound
	}
	return out, nil
}

// DeleteKey removes a document.
func (s *Store) DeleteKey(ctx context.Context, key string) error {
	if err := s.do(ctx, s.b().Del().Key(key).Build()).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.b().Get().Key(key).Build()
	data, err := s.do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// Set stores a value at the given key, with an optional expiration.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var cmd rueidis.Completed
	if ttl > 0 {
		cmd = s.b().Set().Key(key).Value(string(value)).Ex(ttl).Build()
	} else {
		cmd = s.b().Set().Key(key).Value(string(value)).Build()
	}
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}
