package database

import (
	"time"

	"creatorfund/models"

	"gorm.io/gorm"
)

// Migrate runs AutoMigrate for every model plus the token revocation table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Channel{},
		&models.TeamMember{},
		&models.Investment{},
		&models.ProfitDistribution{},
		&models.DistributionLine{},
		&models.Transaction{},
	); err != nil {
		return err
	}
	type revokedToken struct {
		ID        string    `gorm:"primaryKey;type:char(67)"`
		RevokedAt time.Time `gorm:"index"`
	}
	return db.Table("revoked_tokens").AutoMigrate(&revokedToken{})
}
