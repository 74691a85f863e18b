// internals/helpers/pg_error.go
package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

/* =========================
   PG error mapping
   ========================= */

// 23505 unique_violation, 23503 foreign_key_violation
type pgSQLErr interface {
	SQLState() string
	Error() string
}

func pgSQLState(err error) string {
	var pqe *pq.Error
	if errors.As(err, &pqe) {
		return string(pqe.Code)
	}
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		return pgErr.SQLState()
	}
	return ""
}

// IsDuplicateKey: cek pelanggaran unique (SQLSTATE 23505).
// String fallback supaya kompatibel dengan driver yang dibungkus (termasuk sqlite saat test).
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if pgSQLState(err) == "23505" {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "unique failed") ||
		strings.Contains(s, "23505")
}

// IsForeignKeyViolation: cek pelanggaran referensi (SQLSTATE 23503).
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if pgSQLState(err) == "23503" {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "foreign key") || strings.Contains(s, "23503")
}

// MapDBError menerjemahkan error persistence ke fiber error ber-status.
// Constraint violation tidak pernah bocor sebagai kode mentah ke caller.
func MapDBError(err error, conflictMsg string) *fiber.Error {
	switch {
	case IsDuplicateKey(err):
		if strings.TrimSpace(conflictMsg) == "" {
			conflictMsg = "Data duplikat (unique violation)."
		}
		return fiber.NewError(fiber.StatusConflict, conflictMsg)
	case IsForeignKeyViolation(err):
		return fiber.NewError(fiber.StatusConflict, "Referensi tidak ditemukan (FK violation).")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Transaksi gagal, tidak ada perubahan tersimpan.")
	}
}
