package migrate

import (
	"context"

	"foodcart-service/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto
	CreateChecks           bool // CHECK-constraint для целостности
	CreateIndexes          bool // индексы и UNIQUE
	CreateFKsViaSQL        bool // FK через SQL (поверх GORM-constraint)
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

type statement struct {
	name string
	sql  string
}

func execAll(ctx context.Context, db *gorm.DB, log *zap.Logger, stmts []statement) error {
	for _, s := range stmts {
		if err := db.WithContext(ctx).Exec(s.sql).Error; err != nil {
			log.Error("Не удалось выполнить шаг миграции", zap.String("step", s.name), zap.Error(err))
			return err
		}
	}
	return nil
}

var updatedAtTables = []string{"restaurants", "products", "restaurant_menu_items", "orders"}

var checkStatements = []statement{
	{"chk_orders_status_allowed", `
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('not_processed','cooking','on_way','delivered'));
`},
	{"chk_orders_payment_allowed", `
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_payment_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_payment_allowed
  CHECK (payment IN ('cash','card','online'));
`},
	{"chk_order_items_quantity_gt_zero", `
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_quantity_gt_zero
  CHECK (quantity > 0);
`},
	{"chk_order_items_price_non_negative", `
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_price_non_negative;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_price_non_negative
  CHECK (unit_price >= 0);
`},
	{"chk_products_price_non_negative", `
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS chk_products_price_non_negative;
ALTER TABLE products
  ADD CONSTRAINT chk_products_price_non_negative
  CHECK (price >= 0);
`},
	{"chk_candidates_distance_non_negative", `
ALTER TABLE candidate_distances
  DROP CONSTRAINT IF EXISTS chk_candidates_distance_non_negative;
ALTER TABLE candidate_distances
  ADD CONSTRAINT chk_candidates_distance_non_negative
  CHECK (distance_meters IS NULL OR distance_meters >= 0);
`},
	// координаты задаются парой
	{"chk_restaurants_coordinates_pair", `
ALTER TABLE restaurants
  DROP CONSTRAINT IF EXISTS chk_restaurants_coordinates_pair;
ALTER TABLE restaurants
  ADD CONSTRAINT chk_restaurants_coordinates_pair
  CHECK ((lon IS NULL) = (lat IS NULL));
`},
}

var indexStatements = []statement{
	{"ux_menu_items_restaurant_product", `
CREATE UNIQUE INDEX IF NOT EXISTS ux_menu_items_restaurant_product
ON restaurant_menu_items (restaurant_id, product_id);
`},
	{"ux_order_items_order_product", `
CREATE UNIQUE INDEX IF NOT EXISTS ux_order_items_order_product
ON order_items (order_id, product_id);
`},
	{"ux_candidates_order_restaurant", `
CREATE UNIQUE INDEX IF NOT EXISTS ux_candidates_order_restaurant
ON candidate_distances (order_id, restaurant_id);
`},
	// покрытие меню: restaurant_id по доступным продуктам
	{"ix_menu_items_available_product", `
CREATE INDEX IF NOT EXISTS ix_menu_items_available_product
ON restaurant_menu_items (product_id, restaurant_id)
WHERE availability;
`},
	{"ix_orders_status_registered", `
CREATE INDEX IF NOT EXISTS ix_orders_status_registered
ON orders (status, registered_at DESC);
`},
	{"ix_candidates_order_distance", `
CREATE INDEX IF NOT EXISTS ix_candidates_order_distance
ON candidate_distances (order_id, distance_meters ASC NULLS LAST);
`},
}

var fkStatements = []statement{
	{"fk_menu_items_restaurant", `
ALTER TABLE restaurant_menu_items
  DROP CONSTRAINT IF EXISTS fk_menu_items_restaurant,
  ADD CONSTRAINT fk_menu_items_restaurant
    FOREIGN KEY (restaurant_id) REFERENCES restaurants(id) ON DELETE CASCADE;
`},
	{"fk_menu_items_product", `
ALTER TABLE restaurant_menu_items
  DROP CONSTRAINT IF EXISTS fk_menu_items_product,
  ADD CONSTRAINT fk_menu_items_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;
`},
	{"fk_products_category", `
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS fk_products_category,
  ADD CONSTRAINT fk_products_category
    FOREIGN KEY (category_id) REFERENCES product_categories(id) ON DELETE SET NULL;
`},
	{"fk_order_items_order", `
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_order,
  ADD CONSTRAINT fk_order_items_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;
`},
	{"fk_orders_preparing_restaurant", `
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS fk_orders_preparing_restaurant,
  ADD CONSTRAINT fk_orders_preparing_restaurant
    FOREIGN KEY (preparing_restaurant_id) REFERENCES restaurants(id) ON DELETE SET NULL;
`},
	{"fk_candidates_order", `
ALTER TABLE candidate_distances
  DROP CONSTRAINT IF EXISTS fk_candidates_order,
  ADD CONSTRAINT fk_candidates_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;
`},
	{"fk_candidates_restaurant", `
ALTER TABLE candidate_distances
  DROP CONSTRAINT IF EXISTS fk_candidates_restaurant,
  ADD CONSTRAINT fk_candidates_restaurant
    FOREIGN KEY (restaurant_id) REFERENCES restaurants(id) ON DELETE CASCADE;
`},
}

func MigrateFoodcartDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных foodcart")

	if opt.CreateExtensions {
		log.Info("Создание расширений PostgreSQL")
		if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("Не удалось включить расширение pgcrypto", zap.Error(err))
			return err
		}
		log.Info("Расширения PostgreSQL успешно созданы")
	}

	log.Info("Создание таблиц")
	if err := db.WithContext(ctx).AutoMigrate(
		&models.Restaurant{},
		&models.ProductCategory{},
		&models.Product{},
		&models.RestaurantMenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.CandidateDistance{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}
	log.Info("Таблицы успешно созданы")

	if opt.CreateUpdatedAtTrigger {
		log.Info("Создание триггеров updated_at")
		stmts := []statement{{"set_updated_at", `
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;
`}}
		for _, table := range updatedAtTables {
			stmts = append(stmts, statement{"trg_" + table + "_updated", `
DROP TRIGGER IF EXISTS trg_` + table + `_updated ON ` + table + `;
CREATE TRIGGER trg_` + table + `_updated
BEFORE UPDATE ON ` + table + `
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`})
		}
		if err := execAll(ctx, db, log, stmts); err != nil {
			return err
		}
		log.Info("Триггеры updated_at успешно созданы")
	}

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")
		if err := execAll(ctx, db, log, checkStatements); err != nil {
			return err
		}
		log.Info("CHECK-ограничения успешно созданы")
	}

	if opt.CreateIndexes {
		log.Info("Создание индексов")
		if err := execAll(ctx, db, log, indexStatements); err != nil {
			return err
		}
		log.Info("Индексы успешно созданы")
	}

	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")
		if err := execAll(ctx, db, log, fkStatements); err != nil {
			return err
		}
		log.Info("Внешние ключи успешно созданы")
	}

	log.Info("Миграция базы данных foodcart успешно завершена")
	return nil
}
