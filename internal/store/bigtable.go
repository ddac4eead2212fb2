package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/bigtable"
	"google.golang.org/api/option"
)

// BigtableGateway implements Gateway against a Bigtable instance (or the
// emulator, via BIGTABLE_EMULATOR_HOST).
type BigtableGateway struct {
	client *bigtable.Client
	admin  *bigtable.AdminClient
}

func NewBigtableGateway(ctx context.Context, project, instance string, opts ...option.ClientOption) (*BigtableGateway, error) {
	client, err := bigtable.NewClient(ctx, project, instance, opts...)
	if err != nil {
		return nil, fmt.Errorf("[BigtableGateway] failed to create data client: %w", err)
	}

	admin, err := bigtable.NewAdminClient(ctx, project, instance, opts...)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("[BigtableGateway] failed to create admin client: %w", err)
	}

	return &BigtableGateway{client: client, admin: admin}, nil
}

func (g *BigtableGateway) Put(ctx context.Context, table, key string, cells map[string][]byte) error {
	mut := bigtable.NewMutation()
	for cell, value := range cells {
		family, qualifier, ok := strings.Cut(cell, ":")
		if !ok {
			return fmt.Errorf("[BigtableGateway] cell %q is not family:qualifier", cell)
		}
		mut.Set(family, qualifier, bigtable.Now(), value)
	}

	if err := g.client.Open(table).Apply(ctx, key, mut); err != nil {
		return fmt.Errorf("[BigtableGateway] put to %s/%s failed: %w", table, key, err)
	}
	return nil
}

func (g *BigtableGateway) Get(ctx context.Context, table, key string) (map[string][]byte, error) {
	row, err := g.client.Open(table).ReadRow(ctx, key, bigtable.RowFilter(bigtable.LatestNFilter(1)))
	if err != nil {
		return nil, fmt.Errorf("[BigtableGateway] read of %s/%s failed: %w", table, key, err)
	}
	return flattenRow(row), nil
}

func (g *BigtableGateway) Scan(ctx context.Context, table string, opts ScanOptions) ([]Row, error) {
	start, stop := opts.Start, opts.Stop
	if opts.Prefix != "" {
		if start < opts.Prefix {
			start = opts.Prefix
		}
		if stop == "" {
			stop = prefixSuccessor(opts.Prefix)
		}
	}

	var rng bigtable.RowSet
	if stop == "" {
		rng = bigtable.InfiniteRange(start)
	} else {
		rng = bigtable.NewRange(start, stop)
	}

	readOpts := []bigtable.ReadOption{bigtable.RowFilter(bigtable.LatestNFilter(1))}
	if opts.Limit > 0 {
		readOpts = append(readOpts, bigtable.LimitRows(int64(opts.Limit)))
	}

	var rows []Row
	err := g.client.Open(table).ReadRows(ctx, rng, func(r bigtable.Row) bool {
		rows = append(rows, Row{Key: r.Key(), Cells: flattenRow(r)})
		return true
	}, readOpts...)
	if err != nil {
		return nil, fmt.Errorf("[BigtableGateway] scan of %s failed: %w", table, err)
	}
	return rows, nil
}

// EnsureTables creates every missing table and column family. Safe to call
// on every startup.
func (g *BigtableGateway) EnsureTables(ctx context.Context) error {
	existing, err := g.admin.Tables(ctx)
	if err != nil {
		return fmt.Errorf("[BigtableGateway] failed to list tables: %w", err)
	}
	existingSet := make(map[string]bool, len(existing))
	for _, name := range existing {
		existingSet[name] = true
	}

	for table, families := range TableFamilies {
		if !existingSet[table] {
			slog.Info("[BigtableGateway] Creating table...", slog.String("table", table))
			if err := g.admin.CreateTable(ctx, table); err != nil {
				return fmt.Errorf("[BigtableGateway] failed to create table %s: %w", table, err)
			}
		}

		info, err := g.admin.TableInfo(ctx, table)
		if err != nil {
			return fmt.Errorf("[BigtableGateway] failed to read table info for %s: %w", table, err)
		}
		have := make(map[string]bool, len(info.Families))
		for _, family := range info.Families {
			have[family] = true
		}

		for _, family := range families {
			if have[family] {
				continue
			}
			if err := g.admin.CreateColumnFamily(ctx, table, family); err != nil {
				return fmt.Errorf("[BigtableGateway] failed to create family %s on %s: %w", family, table, err)
			}
		}
	}
	return nil
}

func (g *BigtableGateway) Close() error {
	adminErr := g.admin.Close()
	if err := g.client.Close(); err != nil {
		return err
	}
	return adminErr
}

func flattenRow(row bigtable.Row) map[string][]byte {
	if len(row) == 0 {
		return nil
	}
	cells := make(map[string][]byte)
	for _, items := range row {
		for _, item := range items {
			cells[item.Column] = item.Value
		}
	}
	return cells
}

// prefixSuccessor is the smallest row key greater than every key with the
// given prefix, or "" when no such key exists (all 0xff).
func prefixSuccessor(prefix string) string {
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] != 0xff {
			return prefix[:i] + string([]byte{prefix[i] + 1})
		}
	}
	return ""
}
