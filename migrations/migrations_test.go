package migrations_test

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amirphl/Omoikane/migrations"
)

type columnInfo struct {
	Name      string  `gorm:"column:name"`
	Type      string  `gorm:"column:type"`
	NotNull   int     `gorm:"column:notnull"`
	DfltValue *string `gorm:"column:dflt_value"`
	PK        int     `gorm:"column:pk"`
}

type indexInfo struct {
	Name    string
	Unique  bool
	Columns []string
}

type tableSchema struct {
	Columns []columnInfo
	Indexes []indexInfo
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newRunner(t *testing.T, db *gorm.DB) *migrations.Runner {
	t.Helper()
	r, err := migrations.NewRunner(db, migrations.All())
	require.NoError(t, err)
	return r
}

// snapshotSchema captures every user table's columns and indexes, ignoring migration bookkeeping
func snapshotSchema(t *testing.T, db *gorm.DB) map[string]tableSchema {
	t.Helper()

	var tables []string
	require.NoError(t, db.Raw(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND name <> 'schema_migrations'",
	).Scan(&tables).Error)

	out := make(map[string]tableSchema, len(tables))
	for _, table := range tables {
		var ts tableSchema
		require.NoError(t, db.Raw(
			"SELECT name, type, \"notnull\", dflt_value, pk FROM pragma_table_info(?)", table,
		).Scan(&ts.Columns).Error)
		sort.Slice(ts.Columns, func(i, j int) bool { return ts.Columns[i].Name < ts.Columns[j].Name })

		var idxRows []struct {
			Name   string `gorm:"column:name"`
			Unique int    `gorm:"column:unique"`
		}
		require.NoError(t, db.Raw(
			"SELECT name, \"unique\" FROM pragma_index_list(?)", table,
		).Scan(&idxRows).Error)

		for _, row := range idxRows {
			var cols []string
			require.NoError(t, db.Raw(
				"SELECT name FROM pragma_index_info(?) ORDER BY seqno", row.Name,
			).Scan(&cols).Error)
			ts.Indexes = append(ts.Indexes, indexInfo{Name: row.Name, Unique: row.Unique == 1, Columns: cols})
		}
		sort.Slice(ts.Indexes, func(i, j int) bool { return ts.Indexes[i].Name < ts.Indexes[j].Name })

		out[table] = ts
	}
	return out
}

func TestValidate(t *testing.T) {
	noop := func(*gorm.DB) error { return nil }

	tests := []struct {
		name       string
		migrations []*migrations.Migration
		wantErr    bool
	}{
		{
			name:       "registered set",
			migrations: migrations.All(),
		},
		{
			name:       "empty set",
			migrations: nil,
		},
		{
			name:       "missing id",
			migrations: []*migrations.Migration{{Up: noop, Down: noop}},
			wantErr:    true,
		},
		{
			name:       "missing down",
			migrations: []*migrations.Migration{{ID: "1_a", Up: noop}},
			wantErr:    true,
		},
		{
			name: "out of order",
			migrations: []*migrations.Migration{
				{ID: "2_b", Up: noop, Down: noop},
				{ID: "1_a", Up: noop, Down: noop},
			},
			wantErr: true,
		},
		{
			name: "duplicate id",
			migrations: []*migrations.Migration{
				{ID: "1_a", Up: noop, Down: noop},
				{ID: "1_a", Up: noop, Down: noop},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := migrations.Validate(tt.migrations)
			if tt.wantErr {
				assert.ErrorIs(t, err, migrations.ErrInvalidMigrations)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRunner_UpCreatesSchema(t *testing.T) {
	db := openDB(t)
	r := newRunner(t, db)
	ctx := context.Background()

	applied, err := r.Up(ctx)
	require.NoError(t, err)
	assert.Len(t, applied, len(migrations.All()))

	for _, table := range []string{
		"services", "specializations", "payment_methods", "languages", "currencies", "units",
		"admin_auth", "admin_details", "roles", "client_contact_persons", "vendor_contact_persons",
		"email_payment_details", "admin_payment_methods",
	} {
		assert.True(t, db.Migrator().HasTable(table), "table %s", table)
	}

	assert.True(t, db.Migrator().HasColumn("specializations", "domain_name"))
	assert.False(t, db.Migrator().HasColumn("specializations", "name"))
	assert.True(t, db.Migrator().HasColumn("email_payment_details", "account_holder_name"))
	assert.True(t, db.Migrator().HasIndex("admin_auth", "uk_admin_auth_reset_token"))

	again, err := r.Up(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestRunner_EachMigrationReverses(t *testing.T) {
	db := openDB(t)
	r := newRunner(t, db)
	ctx := context.Background()

	for _, m := range migrations.All() {
		before := snapshotSchema(t, db)

		applied, err := r.UpTo(ctx, m.ID)
		require.NoError(t, err)
		require.Equal(t, []string{m.ID}, applied)

		reverted, err := r.Down(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, []string{m.ID}, reverted)

		assert.Equal(t, before, snapshotSchema(t, db), "schema after reverting %s", m.ID)

		_, err = r.UpTo(ctx, m.ID)
		require.NoError(t, err)
	}
}

func TestRunner_FullDownLeavesNoTables(t *testing.T) {
	db := openDB(t)
	r := newRunner(t, db)
	ctx := context.Background()

	_, err := r.Up(ctx)
	require.NoError(t, err)

	reverted, err := r.Down(ctx, len(migrations.All()))
	require.NoError(t, err)
	assert.Len(t, reverted, len(migrations.All()))
	assert.Empty(t, snapshotSchema(t, db))

	statuses, err := r.Status(ctx)
	require.NoError(t, err)
	for _, st := range statuses {
		assert.False(t, st.Applied, st.ID)
	}
}

func TestRunner_Status(t *testing.T) {
	db := openDB(t)
	r := newRunner(t, db)
	ctx := context.Background()

	all := migrations.All()
	_, err := r.UpTo(ctx, all[2].ID)
	require.NoError(t, err)

	statuses, err := r.Status(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, len(all))
	for i, st := range statuses {
		assert.Equal(t, all[i].ID, st.ID)
		assert.Equal(t, i <= 2, st.Applied, st.ID)
		assert.Equal(t, i <= 2, st.AppliedAt != nil, st.ID)
	}
}

func TestRunner_UpToUnknown(t *testing.T) {
	r := newRunner(t, openDB(t))

	_, err := r.UpTo(context.Background(), "19990101000000_nope")
	assert.ErrorIs(t, err, migrations.ErrUnknownMigration)
}

func TestRunner_AppliedButUnregistered(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	_, err := newRunner(t, db).Up(ctx)
	require.NoError(t, err)

	short, err := migrations.NewRunner(db, migrations.All()[:3])
	require.NoError(t, err)
	_, err = short.Status(ctx)
	assert.ErrorIs(t, err, migrations.ErrUnknownMigration)
}

func TestRunner_FailedMigrationRollsBack(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	broken := append(migrations.All()[:1], &migrations.Migration{
		ID:          "20240110090050_broken",
		Description: "fails after creating a table",
		Up: func(tx *gorm.DB) error {
			if err := tx.Exec("CREATE TABLE half_done (id integer)").Error; err != nil {
				return err
			}
			return fmt.Errorf("boom")
		},
		Down: func(tx *gorm.DB) error { return nil },
	})
	r, err := migrations.NewRunner(db, broken)
	require.NoError(t, err)

	applied, err := r.Up(ctx)
	assert.Error(t, err)
	assert.Equal(t, []string{"20240110090000_create_services"}, applied)
	assert.False(t, db.Migrator().HasTable("half_done"))

	statuses, err := r.Status(ctx)
	require.NoError(t, err)
	assert.True(t, statuses[0].Applied)
	assert.False(t, statuses[1].Applied)
}

func TestSchema_UniqueConstraints(t *testing.T) {
	db := openDB(t)
	_, err := newRunner(t, db).Up(context.Background())
	require.NoError(t, err)

	tests := []struct {
		name  string
		table string
		row   map[string]any
	}{
		{"service name", "services", map[string]any{"name": "Translation"}},
		{"language code", "languages", map[string]any{"name": "English", "code": "en"}},
		{"client contact email", "client_contact_persons", map[string]any{"client_name": "Acme", "full_name": "Jo Doe", "email": "jo@acme.test"}},
		{"vendor contact email", "vendor_contact_persons", map[string]any{"vendor_name": "Globex", "full_name": "Sam Roe", "email": "sam@globex.test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := func() map[string]any {
				m := map[string]any{"created_at": "2024-01-10 09:00:00", "updated_at": "2024-01-10 09:00:00"}
				for k, v := range tt.row {
					m[k] = v
				}
				return m
			}
			require.NoError(t, db.Table(tt.table).Create(row()).Error)
			assert.Error(t, db.Table(tt.table).Create(row()).Error)
		})
	}
}

func TestSchema_Defaults(t *testing.T) {
	db := openDB(t)
	_, err := newRunner(t, db).Up(context.Background())
	require.NoError(t, err)

	require.NoError(t, db.Exec(
		"INSERT INTO specializations (domain_name, created_at, updated_at) VALUES ('Legal', '2024-01-10', '2024-01-10')",
	).Error)

	var active bool
	require.NoError(t, db.Raw("SELECT active_flag FROM specializations WHERE domain_name = 'Legal'").Scan(&active).Error)
	assert.True(t, active)
}

func TestSchema_ForeignKeysEnforced(t *testing.T) {
	db := openDB(t)
	_, err := newRunner(t, db).Up(context.Background())
	require.NoError(t, err)

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	require.Equal(t, 1, enabled)

	err = db.Exec(
		"INSERT INTO admin_payment_methods (admin_auth_id, payment_method_id, created_at, updated_at) VALUES (999, 999, '2024-01-10', '2024-01-10')",
	).Error
	assert.Error(t, err)
}

func TestSchema_SingleDefaultPaymentMethod(t *testing.T) {
	db := openDB(t)
	_, err := newRunner(t, db).Up(context.Background())
	require.NoError(t, err)

	require.NoError(t, db.Exec(
		"INSERT INTO admin_auth (uuid, username, email, created_at, updated_at) VALUES (?, 'root', 'root@example.com', '2024-01-10', '2024-01-10')",
		uuid.NewString(),
	).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO payment_methods (name, created_at, updated_at) VALUES ('PayPal', '2024-01-10', '2024-01-10'), ('Wire', '2024-01-10', '2024-01-10')",
	).Error)

	insert := func(paymentMethodID int, isDefault bool) error {
		return db.Exec(
			"INSERT INTO admin_payment_methods (admin_auth_id, payment_method_id, is_default, created_at, updated_at) VALUES (1, ?, ?, '2024-01-10', '2024-01-10')",
			paymentMethodID, isDefault,
		).Error
	}

	require.NoError(t, insert(1, true))
	require.NoError(t, insert(2, false))
	require.NoError(t, insert(2, false))
	assert.Error(t, insert(2, true), "a second default for the same admin must be rejected")

	require.NoError(t, db.Exec("UPDATE admin_payment_methods SET is_default = false WHERE payment_method_id = 1").Error)
	assert.NoError(t, insert(2, true))
}
