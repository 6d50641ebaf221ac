package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const pqUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// notFound maps sql.ErrNoRows to common.ErrDataNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", common.ErrDataNotFound, what)
	}
	return err
}

func checkRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrNoRowsAffected
	}
	return nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func toNullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// toJSON marshals v for a jsonb column; nil maps and pointers become NULL.
func toJSON(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(raw) == "null" {
		return nil, nil
	}
	return raw, nil
}

func fromJSON(raw []byte, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func decimalsToStrings(in []decimal.Decimal) []string {
	res := make([]string, 0, len(in))
	for _, d := range in {
		res = append(res, d.String())
	}
	return res
}

func stringsToDecimals(in []string) ([]decimal.Decimal, error) {
	res := make([]decimal.Decimal, 0, len(in))
	for _, s := range in {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, nil
}
