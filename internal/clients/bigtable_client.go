package clients

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/sightstack/stackstream/internal/store"
)

var (
	bigtableInstance *store.BigtableGateway
	bigtableOnce     sync.Once
)

// InitBigtable connects the shared Bigtable gateway and creates any missing
// tables. Set BIGTABLE_EMULATOR_HOST to target the local emulator; the
// client library picks it up on its own.
func InitBigtable(ctx context.Context) *store.BigtableGateway {
	bigtableOnce.Do(func() {
		project := os.Getenv("BIGTABLE_PROJECT")
		if project == "" {
			project = "stackstream-local"
		}
		instance := os.Getenv("BIGTABLE_INSTANCE")
		if instance == "" {
			instance = "stackstream"
		}

		slog.Info("[BigtableClient] Initializing Bigtable gateway...",
			slog.String("project", project),
			slog.String("instance", instance))

		gateway, err := store.NewBigtableGateway(ctx, project, instance)
		if err != nil {
			panic(fmt.Errorf("[BigtableClient] failed to create gateway: %w", err))
		}
		if err := gateway.EnsureTables(ctx); err != nil {
			panic(fmt.Errorf("[BigtableClient] failed to ensure tables: %w", err))
		}

		slog.Info("[BigtableClient] Bigtable gateway initialized")
		bigtableInstance = gateway
	})
	return bigtableInstance
}

func GetBigtableGateway() *store.BigtableGateway {
	if bigtableInstance == nil {
		panic("[BigtableClient] Error: Bigtable gateway is not initialized")
	}
	return bigtableInstance
}

func CloseBigtable() {
	if bigtableInstance != nil {
		if err := bigtableInstance.Close(); err != nil {
			slog.Warn("[BigtableClient] Error closing gateway",
				slog.String("error", err.Error()))
		}
	}
}
