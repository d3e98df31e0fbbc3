package database

import (
	"fmt"

	"gorm.io/gorm"
)

const notifyFunction = `
CREATE OR REPLACE FUNCTION notify_promo_change() RETURNS trigger AS $$
DECLARE
  rec RECORD;
BEGIN
  IF TG_OP = 'DELETE' THEN
    rec := OLD;
  ELSE
    rec := NEW;
  END IF;
  PERFORM pg_notify('%s', json_build_object(
    'table', TG_TABLE_NAME,
    'op', TG_OP,
    'id', rec.id
  )::text);
  RETURN rec;
END;
$$ LANGUAGE plpgsql;`

// InstallChangeTriggers makes every row change on the given tables emit a
// {table, op, id} notification on channel. Safe to run on every boot.
func InstallChangeTriggers(db *gorm.DB, channel string, tables ...string) error {
	if err := db.Exec(fmt.Sprintf(notifyFunction, channel)).Error; err != nil {
		return fmt.Errorf("failed to create notify function: %w", err)
	}

	for _, table := range tables {
		trigger := table + "_notify_change"
		if err := db.Exec(fmt.Sprintf(`DROP TRIGGER IF EXISTS %s ON %s;`, trigger, table)).Error; err != nil {
			return fmt.Errorf("failed to drop trigger on %s: %w", table, err)
		}
		if err := db.Exec(fmt.Sprintf(`
CREATE TRIGGER %s
AFTER INSERT OR UPDATE OR DELETE ON %s
FOR EACH ROW EXECUTE FUNCTION notify_promo_change();`, trigger, table)).Error; err != nil {
			return fmt.Errorf("failed to create trigger on %s: %w", table, err)
		}
	}
	return nil
}
