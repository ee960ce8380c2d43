package database

import "posobra-painel/internal/models"

// helper para gravar no jornal de auditoria das mutações de registro
func CreateAuditLog(userID uint, entity, recordID, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		RecordID: recordID,
		Action:   action,
		Details:  details,
	}
	_ = DB.Create(&record).Error
}
