package postgres

import (
	"database/sql"
	"errors"
	"hash/fnv"

	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}
	return false
}

// advisoryLockKey maps a partition name onto the bigint key space of
// pg_advisory_xact_lock.
func advisoryLockKey(partition string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(partition))
	return int64(h.Sum64())
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

func int64SliceToAny(items []int64) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
