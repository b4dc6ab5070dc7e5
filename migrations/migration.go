// Package migrations holds the ordered, reversible schema changes of the admin database and the runner applying them
package migrations

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/amirphl/Omoikane/models"
	"github.com/amirphl/Omoikane/utils"
	"gorm.io/gorm"
)

// Migration errors
var (
	ErrUnknownMigration  = errors.New("unknown migration")
	ErrInvalidMigrations = errors.New("invalid migration set")
)

// Migration is one forward structural change and its exact reverse.
// ID is a sortable timestamp followed by a short slug, e.g. 20240110090000_create_services.
type Migration struct {
	ID          string
	Description string
	Up          func(tx *gorm.DB) error
	Down        func(tx *gorm.DB) error
}

// Status reports whether a registered migration has been applied
type Status struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Applied     bool       `json:"applied"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
}

// Runner applies and reverts migrations, recording progress in schema_migrations
type Runner struct {
	db         *gorm.DB
	migrations []*Migration
}

// NewRunner creates a runner over an ordered migration list
func NewRunner(db *gorm.DB, migrations []*Migration) (*Runner, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: db is required", ErrInvalidMigrations)
	}
	if err := Validate(migrations); err != nil {
		return nil, err
	}
	return &Runner{db: db, migrations: migrations}, nil
}

// Validate checks that every migration is complete and that IDs are unique and strictly increasing
func Validate(migrations []*Migration) error {
	for i, m := range migrations {
		if m == nil || m.ID == "" {
			return fmt.Errorf("%w: migration at position %d has no ID", ErrInvalidMigrations, i)
		}
		if m.Up == nil || m.Down == nil {
			return fmt.Errorf("%w: migration %s must define both Up and Down", ErrInvalidMigrations, m.ID)
		}
		if i > 0 && migrations[i-1].ID >= m.ID {
			return fmt.Errorf("%w: migration %s must sort after %s", ErrInvalidMigrations, m.ID, migrations[i-1].ID)
		}
	}
	return nil
}

// Up applies every pending migration in order
func (r *Runner) Up(ctx context.Context) ([]string, error) {
	return r.UpTo(ctx, "")
}

// UpTo applies pending migrations up to and including target. An empty target means all.
func (r *Runner) UpTo(ctx context.Context, target string) ([]string, error) {
	if target != "" && r.find(target) == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMigration, target)
	}

	applied, err := r.appliedSet(ctx)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, m := range r.migrations {
		if _, ok := applied[m.ID]; !ok {
			if err := r.apply(ctx, m); err != nil {
				return done, err
			}
			done = append(done, m.ID)
			log.Printf("Applied migration: %s", m.ID)
		}
		if m.ID == target {
			break
		}
	}

	return done, nil
}

// Down reverts the last steps applied migrations, newest first
func (r *Runner) Down(ctx context.Context, steps int) ([]string, error) {
	if steps <= 0 {
		steps = 1
	}

	applied, err := r.appliedSet(ctx)
	if err != nil {
		return nil, err
	}

	var done []string
	for i := len(r.migrations) - 1; i >= 0 && len(done) < steps; i-- {
		m := r.migrations[i]
		if _, ok := applied[m.ID]; !ok {
			continue
		}
		if err := r.revert(ctx, m); err != nil {
			return done, err
		}
		done = append(done, m.ID)
		log.Printf("Reverted migration: %s", m.ID)
	}

	return done, nil
}

// Status lists every registered migration with its applied state
func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	applied, err := r.appliedSet(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(r.migrations))
	for _, m := range r.migrations {
		st := Status{ID: m.ID, Description: m.Description}
		if at, ok := applied[m.ID]; ok {
			st.Applied = true
			st.AppliedAt = utils.ToPtr(at)
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

func (r *Runner) apply(ctx context.Context, m *Migration) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := m.Up(tx); err != nil {
			return err
		}
		return tx.Create(&models.SchemaMigration{ID: m.ID, AppliedAt: utils.UTCNow()}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to apply migration %s: %w", m.ID, err)
	}
	return nil
}

func (r *Runner) revert(ctx context.Context, m *Migration) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := m.Down(tx); err != nil {
			return err
		}
		return tx.Where("id = ?", m.ID).Delete(&models.SchemaMigration{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to revert migration %s: %w", m.ID, err)
	}
	return nil
}

// appliedSet loads applied IDs. An applied ID missing from the registry is an error:
// the database is ahead of this binary.
func (r *Runner) appliedSet(ctx context.Context) (map[string]time.Time, error) {
	db := r.db.WithContext(ctx)
	if !db.Migrator().HasTable(&models.SchemaMigration{}) {
		if err := db.Migrator().CreateTable(&models.SchemaMigration{}); err != nil {
			return nil, fmt.Errorf("failed to create migration table: %w", err)
		}
	}

	var rows []models.SchemaMigration
	if err := db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load applied migrations: %w", err)
	}

	applied := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		if r.find(row.ID) == nil {
			return nil, fmt.Errorf("%w: %s is applied but not registered", ErrUnknownMigration, row.ID)
		}
		applied[row.ID] = row.AppliedAt
	}
	return applied, nil
}

func (r *Runner) find(id string) *Migration {
	for _, m := range r.migrations {
		if m.ID == id {
			return m
		}
	}
	return nil
}
