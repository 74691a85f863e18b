// internals/features/academic/courses/service/audit_recorder.go
package service

import (
	"strings"

	"gorm.io/gorm"

	m "academix_backend/internals/features/academic/courses/model"
	helperAuth "academix_backend/internals/helpers/auth"
)

// BuildHistoryComment menyusun komentar audit:
// "{role} - {role description} - {action label}" + komentar caller (jika ada).
// Format ini urusan recorder, bukan control flow engine.
func BuildHistoryComment(actor helperAuth.ActorContext, label string, userComment *string) string {
	parts := []string{actor.RoleName, actor.RoleDescription, label}
	comment := strings.Join(parts, " - ")
	if userComment != nil && strings.TrimSpace(*userComment) != "" {
		comment += ": " + strings.TrimSpace(*userComment)
	}
	return comment
}

// AppendHistory menambah satu entri ledger. Entri immutable: tidak ada
// operasi update/delete terhadap course_approval_histories di mana pun.
func AppendHistory(tx *gorm.DB, entry *m.ApprovalHistoryModel) error {
	return tx.Create(entry).Error
}
