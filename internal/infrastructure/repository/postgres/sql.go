package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"

	"github.com/mikekeda/athletes/internal/domain/entity"
	qb "github.com/mikekeda/athletes/internal/platform/querybuilder"
)

const (
	sqlStateUniqueViolation = "23505"
	sqlClassDataException   = "22"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// classifyError maps driver errors onto the domain taxonomy: unique
// violations become entity.ErrDuplicateKey and data exceptions become
// *entity.FieldCoercionError. Anything else is returned unchanged.
func classifyError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch {
	case pqErr.Code == sqlStateUniqueViolation:
		return fmt.Errorf("%w: %s", entity.ErrDuplicateKey, pqErr.Constraint)
	case pqErr.Code.Class() == sqlClassDataException:
		return &entity.FieldCoercionError{Column: pqErr.Column, Err: err}
	default:
		return err
	}
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func nullableInt64(value int64) *int64 {
	if value == 0 {
		return nil
	}
	return &value
}

func nullableTime(value time.Time) *time.Time {
	if value.IsZero() {
		return nil
	}
	return &value
}

func nullInt64ToInt64(value sql.NullInt64) int64 {
	if !value.Valid {
		return 0
	}
	return value.Int64
}

func nullTimeToTime(value sql.NullTime) time.Time {
	if !value.Valid {
		return time.Time{}
	}
	return value.Time
}

func encodeFactSheet(sheet *entity.FactSheet) (string, error) {
	if sheet.IsEmpty() {
		return "{}", nil
	}
	raw, err := sheet.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeFactSheet(raw []byte) *entity.FactSheet {
	if len(raw) == 0 {
		return nil
	}
	sheet := entity.NewFactSheet()
	if err := sheet.UnmarshalJSON(raw); err != nil || sheet.IsEmpty() {
		return nil
	}
	return sheet
}

func encodeJSONMap(value map[string]any) (string, error) {
	if len(value) == 0 {
		return "{}", nil
	}
	raw, err := jsoniter.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeJSONMap(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]any
	if err := jsoniter.Unmarshal(raw, &out); err != nil || len(out) == 0 {
		return nil
	}
	return out
}

// The fill* helpers add guarded SET clauses so an UPDATE never replaces a
// value another writer stored after our read.

func fillString(b *qb.UpdateBuilder, column, value string) {
	b.SetExpr(column, "COALESCE(NULLIF("+column+", ''), ?)", value)
}

func fillNullable(b *qb.UpdateBuilder, column string, value any) {
	b.SetExpr(column, "COALESCE("+column+", ?)", value)
}

func fillFlag(b *qb.UpdateBuilder, column string, value bool) {
	b.SetExpr(column, column+" OR ?", value)
}

func fillJSON(b *qb.UpdateBuilder, column, value string) {
	b.SetExpr(column, "CASE WHEN "+column+" IS NULL OR "+column+" = '{}'::jsonb THEN ?::jsonb ELSE "+column+" END", value)
}
