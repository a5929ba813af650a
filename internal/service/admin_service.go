package service

import (
	"log"

	"go-commerce-api/internal/apperr"
	"go-commerce-api/internal/ws"
	"go-commerce-api/pkg/database"

	"gorm.io/gorm"
)

type AdminService interface {
	ResetAllData() error
}

type adminService struct {
	db  *gorm.DB
	hub *ws.Hub
}

func NewAdminService(db *gorm.DB, hub *ws.Hub) AdminService {
	return &adminService{db: db, hub: hub}
}

// ResetAllData irreversibly wipes every table and recreates the schema.
// The confirmation handshake lives at the handler boundary; by the time
// this runs the caller has already confirmed.
func (s *adminService) ResetAllData() error {
	log.Println("WARNING: wiping all persisted data")
	if err := database.Reset(s.db); err != nil {
		return apperr.Classify(err)
	}

	log.Println("Database re-initialized after full reset")
	if s.hub != nil {
		s.hub.Publish("data_reset", nil)
	}
	return nil
}
