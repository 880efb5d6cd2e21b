package inventory

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"assetdesk/internal/domain/asset"
	"assetdesk/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

const seedYearsBack = 5

var (
	seedNamePrefix = map[asset.Category]string{
		asset.CategoryComputer:         "Computador",
		asset.CategoryPeripheral:       "Periférico",
		asset.CategoryNetworkEquipment: "Equipamento de rede",
		asset.CategoryServerInfra:      "Servidor",
		asset.CategoryMobileDevice:     "Dispositivo móvel",
	}
	seedCategoryCode = map[asset.Category]string{
		asset.CategoryComputer:         "COM",
		asset.CategoryPeripheral:       "PER",
		asset.CategoryNetworkEquipment: "NET",
		asset.CategoryServerInfra:      "SRV",
		asset.CategoryMobileDevice:     "MOB",
	}
	seedStatusCode = map[asset.Status]string{
		asset.StatusInUse:       "USE",
		asset.StatusInStock:     "STK",
		asset.StatusMaintenance: "MNT",
		asset.StatusRetired:     "RET",
	}
)

// Seed fills an empty store with count demo assets. It does nothing when the
// store already holds data and returns the number of assets inserted.
func Seed(ctx context.Context, repo repositories.AssetRepository, count int, now time.Time) (int, error) {
	existing, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count assets: %w", err)
	}
	if existing > 0 {
		log.Info().Int64("existing", existing).Msg("seed skipped: store not empty")
		return 0, nil
	}

	assets := GenerateSeed(count, now)
	if err := repo.SaveAll(ctx, assets); err != nil {
		return 0, fmt.Errorf("save seed: %w", err)
	}
	log.Info().Int("count", len(assets)).Msg("seed finished")
	return len(assets), nil
}

// GenerateSeed builds count deterministic assets cycling through every
// category/status combination, acquired within the last five years of now.
func GenerateSeed(count int, now time.Time) []*asset.Asset {
	combos := len(asset.Categories) * len(asset.Statuses)
	maxDaysBack := seedYearsBack * 365
	rng := rand.New(rand.NewPCG(42, 42))
	today := asset.NewDate(now)

	out := make([]*asset.Asset, 0, count)
	for i := 1; i <= count; i++ {
		combo := (i - 1) % combos
		category := asset.Categories[combo%len(asset.Categories)]
		status := asset.Statuses[(combo/len(asset.Categories))%len(asset.Statuses)]
		acquired := asset.NewDate(today.AddDate(0, 0, -rng.IntN(maxDaysBack+1)))

		out = append(out, asset.New(
			fmt.Sprintf("%s %03d", seedNamePrefix[category], i),
			fmt.Sprintf("GS-%s-%s-%04d", seedCategoryCode[category], seedStatusCode[status], i),
			category, status, acquired,
		))
	}
	return out
}
