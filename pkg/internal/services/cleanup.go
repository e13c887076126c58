package services

import (
	"os"
	"path/filepath"
	"time"

	"github.com/openbites/cookbook/pkg/internal/database"
	"github.com/openbites/cookbook/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// DoAutoDatabaseCleanup purges rows that were soft-deleted longer ago than
// the configured retention, and sweeps attachment files no recipe references.
func DoAutoDatabaseCleanup() {
	retention := viper.GetInt("cleanup.retention_days")
	if retention <= 0 {
		retention = 30
	}
	deadline := time.Now().AddDate(0, 0, -retention)

	log.Debug().Time("deadline", deadline).Msg("Now cleaning up entire database...")

	var count int64
	for _, model := range database.AutoMaintainRange {
		tx := database.C.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at <= ?", deadline).
			Delete(model)
		if tx.Error != nil {
			log.Error().Err(tx.Error).Msg("An error occurred when running auto cleanup...")
			continue
		}
		count += tx.RowsAffected
	}

	swept := sweepOrphanAttachments()

	log.Debug().Int64("affected", count).Int("attachments", swept).Msg("Clean up entire database accomplished.")
}

func sweepOrphanAttachments() int {
	basepath := viper.GetString("attachments.path")
	if len(basepath) == 0 {
		return 0
	}

	entries, err := os.ReadDir(basepath)
	if err != nil {
		return 0
	}

	var recipes []models.Recipe
	if err := database.C.Unscoped().Select("image", "gallery").Find(&recipes).Error; err != nil {
		log.Error().Err(err).Msg("An error occurred when listing recipe attachments...")
		return 0
	}

	referenced := make(map[string]bool)
	for _, recipe := range recipes {
		referenced[recipe.Image] = true
		for _, name := range recipe.Gallery {
			referenced[name] = true
		}
	}

	return lo.CountBy(entries, func(entry os.DirEntry) bool {
		if entry.IsDir() || referenced[entry.Name()] {
			return false
		}
		// Leave fresh files alone, their recipe write may still be in flight.
		if info, err := entry.Info(); err != nil || time.Since(info.ModTime()) < time.Hour {
			return false
		}
		return os.Remove(filepath.Join(basepath, entry.Name())) == nil
	})
}
