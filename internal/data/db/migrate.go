package db

import (
	"fmt"

	types "github.com/yungbote/delibrium-backend/internal/domain"
)

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(
		&types.Comment{},
		&types.Dimension{},
		&types.StanceVector{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}
