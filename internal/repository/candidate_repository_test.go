package repository

import (
	"context"
	"testing"

	"github.com/fadilmartias/talent-vault/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type captured struct {
	sql  string
	vars []any
}

// newDryRunRepo builds a repository whose statements are rendered but never
// sent to a server.
func newDryRunRepo(t *testing.T) (*CandidateRepository, *captured) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 user=test password=test dbname=test port=5432 sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, SkipDefaultTransaction: true})
	require.NoError(t, err)

	c := &captured{}
	capture := func(tx *gorm.DB) {
		c.sql = tx.Statement.SQL.String()
		c.vars = tx.Statement.Vars
	}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture_query", capture))
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:capture_create", capture))

	repo, err := NewCandidateRepository(db, "candidates")
	require.NoError(t, err)
	return repo, c
}

func TestFindBySkillUsesJSONBContainment(t *testing.T) {
	repo, c := newDryRunRepo(t)

	_, err := repo.FindBySkill(context.Background(), "Python")
	require.NoError(t, err)

	assert.Contains(t, c.sql, `FROM "candidates"`)
	assert.Contains(t, c.sql, "skills @> $1::jsonb")
	assert.Contains(t, c.sql, "ORDER BY uploaded_at DESC")
	require.Len(t, c.vars, 1)
	assert.Equal(t, `["Python"]`, c.vars[0])
}

func TestFindBySkillEscapesValue(t *testing.T) {
	repo, c := newDryRunRepo(t)

	_, err := repo.FindBySkill(context.Background(), `C"#`)
	require.NoError(t, err)
	assert.Equal(t, `["C\"#"]`, c.vars[0])
}

func TestFindAllHasNoFilter(t *testing.T) {
	repo, c := newDryRunRepo(t)

	_, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Contains(t, c.sql, `SELECT * FROM "candidates"`)
	assert.NotContains(t, c.sql, "WHERE")
}

func TestCreateTargetsConfiguredTable(t *testing.T) {
	repo, c := newDryRunRepo(t)

	cand := &model.Candidate{ID: "abc", Name: "Ada"}
	require.NoError(t, cand.SetSkills([]string{"Go"}))
	require.NoError(t, repo.Create(context.Background(), cand))

	assert.Contains(t, c.sql, `INSERT INTO "candidates"`)
}

func TestNewCandidateRepositoryRejectsUnsafeNames(t *testing.T) {
	for _, name := range []string{"", "candidates; DROP TABLE x", "1abc", `a"b`} {
		_, err := NewCandidateRepository(nil, name)
		assert.Error(t, err, name)
	}
}
