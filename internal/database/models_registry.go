package database

import "face2geek/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order follows foreign key dependencies.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Follow{},
		&models.Collection{},
		&models.Snippet{},
		&models.Like{},
		&models.Rating{},
		&models.Comment{},
		&models.Notification{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Conversation{},
		&models.ConversationParticipant{},
		&models.Message{},
	}
}
