package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/fieldserve/serviceops/internal/config"
	"github.com/fieldserve/serviceops/internal/domain"
	"github.com/fieldserve/serviceops/internal/repository/postgres"
	"github.com/fieldserve/serviceops/internal/storage"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newFixtureDirFlag(defaultDir string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "fixture-dir",
		Usage:   "Directory containing JSON fixture extracts",
		Value:   defaultDir,
		EnvVars: []string{"APP_FIXTURE_DIR"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	cfg := config.Load()
	fixtureDir := newFixtureDirFlag(cfg.App.FixtureDir)

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the warehouse database from fixture extracts",
		Commands: []*cli.Command{
			{
				Name:  "fetch",
				Usage: "Download fixture extracts from object storage",
				Flags: []cli.Flag{
					fixtureDir,
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Object key prefix to download",
						Value: "fixtures/",
					},
				},
				Action: fetchFixtures,
			},
			{
				Name:  "work-orders",
				Usage: "Seed work orders",
				Flags: []cli.Flag{
					newDBURLFlag(),
					fixtureDir,
				},
				Action: seedWorkOrders,
			},
			{
				Name:  "inventory",
				Usage: "Seed inventory positions, supply lines and demand lines",
				Flags: []cli.Flag{
					newDBURLFlag(),
					fixtureDir,
				},
				Action: seedInventory,
			},
			{
				Name:  "all",
				Usage: "Seed work orders and inventory data",
				Flags: []cli.Flag{
					newDBURLFlag(),
					fixtureDir,
				},
				Action: func(c *cli.Context) error {
					if err := seedWorkOrders(c); err != nil {
						return fmt.Errorf("error seeding work orders: %w", err)
					}
					if err := seedInventory(c); err != nil {
						return fmt.Errorf("error seeding inventory: %w", err)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func fetchFixtures(c *cli.Context) error {
	cfg := config.Load()

	client, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	ctx := c.Context
	prefix := c.String("prefix")
	destDir := c.String("fixture-dir")

	objects, err := client.ListObjects(ctx, prefix)
	if err != nil {
		return fmt.Errorf("failed to list fixture objects: %w", err)
	}
	if len(objects) == 0 {
		log.Printf("No objects found under prefix %q", prefix)
		return nil
	}

	for _, obj := range objects {
		dest := filepath.Join(destDir, filepath.Base(obj.Key))
		log.Printf("Downloading %s (%d bytes) to %s", obj.Key, obj.Size, dest)
		if err := client.DownloadObject(ctx, obj.Key, dest); err != nil {
			return fmt.Errorf("failed to download %s: %w", obj.Key, err)
		}
	}

	log.Printf("Downloaded %d fixture files", len(objects))
	return nil
}

func openDB(c *cli.Context) (*postgres.DB, error) {
	db, err := postgres.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func loadFixture(dir, name string, dest interface{}) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	return nil
}

func seedWorkOrders(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var orders []domain.WorkOrder
	if err := loadFixture(c.String("fixture-dir"), "work_orders.json", &orders); err != nil {
		return err
	}

	log.Printf("Seeding %d work orders...", len(orders))

	const query = `
        INSERT INTO work_orders (
            work_order_id, status, priority, service_type, site, technician,
            created_date, start_date, promised_date, closed_date,
            wip_value, total_parts_cost, total_labour_cost, gross_margin, total_amount
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        ON CONFLICT (work_order_id) DO UPDATE SET
            status = EXCLUDED.status,
            start_date = EXCLUDED.start_date,
            promised_date = EXCLUDED.promised_date,
            closed_date = EXCLUDED.closed_date,
            wip_value = EXCLUDED.wip_value,
            total_parts_cost = EXCLUDED.total_parts_cost,
            total_labour_cost = EXCLUDED.total_labour_cost,
            gross_margin = EXCLUDED.gross_margin,
            total_amount = EXCLUDED.total_amount`

	ctx := context.Background()
	err = db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, wo := range orders {
			if wo.WorkOrderID == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, query,
				wo.WorkOrderID, wo.Status, wo.Priority, wo.ServiceType, wo.Site, wo.Technician,
				wo.CreatedDate, wo.StartDate, wo.PromisedDate, wo.ClosedDate,
				wo.WIPValue, wo.TotalParts, wo.TotalLabour, wo.GrossMargin, wo.TotalAmount,
			); err != nil {
				return fmt.Errorf("failed to insert work order %s: %w", wo.WorkOrderID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Println("Work order seeding completed successfully!")
	return nil
}

func seedInventory(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	dir := c.String("fixture-dir")

	var positions []domain.RawSnapshotInput
	if err := loadFixture(dir, "inventory_positions.json", &positions); err != nil {
		return err
	}
	var supply []domain.SupplyLine
	if err := loadFixture(dir, "supply_lines.json", &supply); err != nil {
		return err
	}
	var demand []domain.DemandLine
	if err := loadFixture(dir, "demand_lines.json", &demand); err != nil {
		return err
	}

	const positionQuery = `
        INSERT INTO inventory_positions (
            item_id, site, warehouse, on_hand, available,
            safety_stock, min_on_hand, avg_daily_demand
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (item_id, site) DO UPDATE SET
            warehouse = EXCLUDED.warehouse,
            on_hand = EXCLUDED.on_hand,
            available = EXCLUDED.available,
            safety_stock = EXCLUDED.safety_stock,
            min_on_hand = EXCLUDED.min_on_hand,
            avg_daily_demand = EXCLUDED.avg_daily_demand`
	const supplyQuery = `
        INSERT INTO supply_lines (item_id, site, source, ref, qty, eta)
        VALUES ($1, $2, $3, $4, $5, $6)`
	const demandQuery = `
        INSERT INTO demand_lines (item_id, site, demand_type, ref, qty, need_by)
        VALUES ($1, $2, $3, $4, $5, $6)`

	ctx := context.Background()
	err = db.WithTx(ctx, func(tx *sql.Tx) error {
		log.Printf("Seeding %d inventory positions...", len(positions))
		for _, p := range positions {
			if p.ItemID == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, positionQuery,
				p.ItemID, p.Site, p.Warehouse, p.OnHand, p.Available,
				p.SafetyStock, p.MinOnHand, p.AvgDailyDemand,
			); err != nil {
				return fmt.Errorf("failed to insert position %s/%s: %w", p.ItemID, p.Site, err)
			}
		}

		// Lines are re-extracted whole each cycle, so replace rather
		// than upsert.
		if _, err := tx.ExecContext(ctx, "DELETE FROM supply_lines"); err != nil {
			return fmt.Errorf("failed to clear supply lines: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM demand_lines"); err != nil {
			return fmt.Errorf("failed to clear demand lines: %w", err)
		}

		log.Printf("Seeding %d supply lines...", len(supply))
		for _, s := range supply {
			if _, err := tx.ExecContext(ctx, supplyQuery,
				s.ItemID, s.Site, s.Source, s.Ref, s.Qty, s.ETA,
			); err != nil {
				return fmt.Errorf("failed to insert supply line %s: %w", s.Ref, err)
			}
		}

		log.Printf("Seeding %d demand lines...", len(demand))
		for _, d := range demand {
			if _, err := tx.ExecContext(ctx, demandQuery,
				d.ItemID, d.Site, d.DemandType, d.Ref, d.Qty, d.NeedBy,
			); err != nil {
				return fmt.Errorf("failed to insert demand line %s: %w", d.Ref, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Println("Inventory seeding completed successfully!")
	return nil
}
