package database

import "commentary/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Users come first so the comments foreign key has a target.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Comment{},
	}
}
