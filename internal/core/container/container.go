package container

import (
	"database/sql"

	auditLogRepo "kjejekaj/internal/auditlog"
	"kjejekaj/internal/inventory/items"
	"kjejekaj/internal/inventory/takes"
	"kjejekaj/internal/locations"
	"kjejekaj/internal/repository"
	"kjejekaj/internal/users"
	"kjejekaj/pkg/auditlog"
	"kjejekaj/pkg/security"

	"go.uber.org/zap"
)

type Container struct {
	Repository      *repository.Repository
	AuditLog        *auditlog.Auditlog
	AuthHandler     *security.AuthHandler
	ItemHandler     *items.ItemHandler
	LocationHandler *locations.LocationHandler
	TakeHandler     *takes.TakeHandler
	Logger          *zap.Logger
}

func NewAppContainer(db *sql.DB, log *zap.Logger) *Container {
	repo := repository.NewRepository(db)
	auditLogRepository := auditLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(auditLogRepository, log)

	userRepo := users.NewRepository(repo)
	itemRepo := items.NewRepository(repo)
	locationRepo := locations.NewLocationRepository(repo)
	takeRepo := takes.NewRepository(repo)

	takeService := takes.NewService(takeRepo, itemRepo, locationRepo, auditLog)

	return &Container{
		Repository:      repo,
		AuditLog:        auditLog,
		AuthHandler:     security.NewAuthHandler(userRepo),
		ItemHandler:     items.NewItemHandler(itemRepo, auditLog, auditLogRepository),
		LocationHandler: locations.NewLocationHandler(locationRepo, auditLog, auditLogRepository),
		TakeHandler:     takes.NewTakeHandler(takeService, userRepo),
		Logger:          log,
	}
}
