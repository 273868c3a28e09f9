package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User        UserRepository
	Session     SessionRepository
	Project     ProjectRepository
	Material    MaterialRepository
	Document    DocumentRepository
	ActivityLog ActivityLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Session:     NewSessionRepository(db),
		Project:     NewProjectRepository(db),
		Material:    NewMaterialRepository(db),
		Document:    NewDocumentRepository(db),
		ActivityLog: NewActivityLogRepository(db),
	}
}
