package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/fadilmartias/talent-vault/internal/model"
	"gorm.io/gorm"
)

var ErrCandidateNotFound = errors.New("candidate not found")

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// CandidateRepository stores candidate records in a single Postgres table
// whose name comes from configuration.
type CandidateRepository struct {
	db    *gorm.DB
	table string
}

func NewCandidateRepository(db *gorm.DB, table string) (*CandidateRepository, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid candidate collection name %q", table)
	}
	return &CandidateRepository{db: db, table: table}, nil
}

func (r *CandidateRepository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

// Migrate creates the table and the GIN index used by skill filtering.
func (r *CandidateRepository) Migrate(ctx context.Context) error {
	if err := r.scoped(ctx).AutoMigrate(&model.Candidate{}); err != nil {
		return fmt.Errorf("auto migrate %s: %w", r.table, err)
	}
	stmt := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_skills ON %q USING GIN (skills)`, r.table, r.table)
	if err := r.db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return fmt.Errorf("create skills index: %w", err)
	}
	return nil
}

func (r *CandidateRepository) Create(ctx context.Context, c *model.Candidate) error {
	return r.scoped(ctx).Create(c).Error
}

func (r *CandidateRepository) FindAll(ctx context.Context) ([]model.Candidate, error) {
	var candidates []model.Candidate
	err := r.scoped(ctx).Order("uploaded_at DESC").Find(&candidates).Error
	return candidates, err
}

// FindBySkill returns candidates whose skills array contains skill exactly.
func (r *CandidateRepository) FindBySkill(ctx context.Context, skill string) ([]model.Candidate, error) {
	needle, err := json.Marshal([]string{skill})
	if err != nil {
		return nil, err
	}
	var candidates []model.Candidate
	err = r.scoped(ctx).
		Where("skills @> ?::jsonb", string(needle)).
		Order("uploaded_at DESC").
		Find(&candidates).Error
	return candidates, err
}

func (r *CandidateRepository) FindByID(ctx context.Context, id string) (*model.Candidate, error) {
	var c model.Candidate
	err := r.scoped(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCandidateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Ping checks the underlying connection pool.
func (r *CandidateRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
