package migrations

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/bulanstore/bulan-api/app/models"
)

// Versioned schema history. Every change ships as a new entry appended to the
// list; IDs are ordered timestamps so `migrate status` reads chronologically.
var list = []*gormigrate.Migration{
	{
		ID: "202401150001_initial_schema",
		Migrate: func(tx *gorm.DB) error {
			return tx.AutoMigrate(
				&models.User{},
				&models.Category{},
				&models.Product{},
				&models.Cart{},
				&models.CartItem{},
				&models.Order{},
				&models.OrderItem{},
			)
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(
				"order_items", "orders", "cart_items", "carts",
				"products", "categories", "users",
			)
		},
	},
	{
		ID: "202411210001_add_is_active_to_categories",
		Migrate: func(tx *gorm.DB) error {
			if tx.Migrator().HasColumn(&models.Category{}, "is_active") {
				return nil
			}
			return tx.Migrator().AddColumn(&models.Category{}, "is_active")
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropColumn(&models.Category{}, "is_active")
		},
	},
	{
		ID: "202411210002_add_is_available_to_products",
		Migrate: func(tx *gorm.DB) error {
			if tx.Migrator().HasColumn(&models.Product{}, "is_available") {
				return nil
			}
			return tx.Migrator().AddColumn(&models.Product{}, "is_available")
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropColumn(&models.Product{}, "is_available")
		},
	},
	{
		ID: "202412010001_add_addresses_table",
		Migrate: func(tx *gorm.DB) error {
			if tx.Migrator().HasTable(&models.Address{}) {
				return nil
			}
			return tx.AutoMigrate(&models.Address{})
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&models.Address{})
		},
	},
	{
		ID: "202412050001_add_order_address_columns",
		Migrate: func(tx *gorm.DB) error {
			for _, col := range []string{"shipping_address_id", "billing_address_id"} {
				if tx.Migrator().HasColumn(&models.Order{}, col) {
					continue
				}
				if err := tx.Migrator().AddColumn(&models.Order{}, col); err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			for _, col := range []string{"shipping_address_id", "billing_address_id"} {
				if err := tx.Migrator().DropColumn(&models.Order{}, col); err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		ID: "202501100001_add_reviews_table",
		Migrate: func(tx *gorm.DB) error {
			if tx.Migrator().HasTable(&models.Review{}) {
				return nil
			}
			return tx.AutoMigrate(&models.Review{})
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&models.Review{})
		},
	},
}

func New(db *gorm.DB) *gormigrate.Gormigrate {
	return gormigrate.New(db, gormigrate.DefaultOptions, list)
}

// Migrate applies all pending migrations.
func Migrate(db *gorm.DB) error {
	return New(db).Migrate()
}

// RollbackLast reverts the most recently applied migration.
func RollbackLast(db *gorm.DB) error {
	return New(db).RollbackLast()
}

// AppliedIDs returns the IDs recorded in the migrations table, in applied order.
func AppliedIDs(db *gorm.DB) ([]string, error) {
	if !db.Migrator().HasTable(gormigrate.DefaultOptions.TableName) {
		return nil, nil
	}
	var ids []string
	err := db.Table(gormigrate.DefaultOptions.TableName).
		Order(gormigrate.DefaultOptions.IDColumnName).
		Pluck(gormigrate.DefaultOptions.IDColumnName, &ids).Error
	return ids, err
}

// PendingIDs returns registered migrations that have not been applied yet.
func PendingIDs(db *gorm.DB) ([]string, error) {
	applied, err := AppliedIDs(db)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(applied))
	for _, id := range applied {
		seen[id] = true
	}
	var pending []string
	for _, m := range list {
		if !seen[m.ID] {
			pending = append(pending, m.ID)
		}
	}
	return pending, nil
}

// RegisteredIDs lists every known migration in order.
func RegisteredIDs() []string {
	ids := make([]string, 0, len(list))
	for _, m := range list {
		ids = append(ids, m.ID)
	}
	return ids
}

// Stamp records all registered migrations as applied without running them.
// Used to adopt a database whose schema was created out of band.
func Stamp(db *gorm.DB) (int, error) {
	pending, err := PendingIDs(db)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}
	if !db.Migrator().HasTable(gormigrate.DefaultOptions.TableName) {
		if err := db.Exec(fmt.Sprintf(
			"CREATE TABLE %s (%s VARCHAR(255) PRIMARY KEY)",
			gormigrate.DefaultOptions.TableName,
			gormigrate.DefaultOptions.IDColumnName,
		)).Error; err != nil {
			return 0, err
		}
	}
	for _, id := range pending {
		if err := db.Table(gormigrate.DefaultOptions.TableName).
			Create(map[string]interface{}{gormigrate.DefaultOptions.IDColumnName: id}).Error; err != nil {
			return 0, err
		}
	}
	return len(pending), nil
}
