package sqlite

import (
	"context"
	"testing"

	"daily-planner-go/internal/db"
	prefsdomain "daily-planner-go/internal/domain/prefs"
	"daily-planner-go/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PrefsTestSuite struct {
	suite.Suite
	repo *PrefsRepository
	ctx  context.Context
}

func (s *PrefsTestSuite) SetupTest() {
	conn, err := db.NewSQLite(":memory:", logger.Nop())
	require.NoError(s.T(), err, "failed to create test database")
	s.T().Cleanup(func() { conn.Close() })

	s.repo = NewPrefsRepository(conn)
	s.ctx = context.Background()
}

func (s *PrefsTestSuite) TestGetMissingKey() {
	_, err := s.repo.Get(s.ctx, "jwt_token")
	assert.ErrorIs(s.T(), err, prefsdomain.ErrNotFound)
}

func (s *PrefsTestSuite) TestSetThenGet() {
	require.NoError(s.T(), s.repo.Set(s.ctx, "jwt_token", "t1"))

	value, err := s.repo.Get(s.ctx, "jwt_token")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "t1", value)
}

func (s *PrefsTestSuite) TestSetOverwrites() {
	require.NoError(s.T(), s.repo.Set(s.ctx, "water_daily_goal", "2000"))
	require.NoError(s.T(), s.repo.Set(s.ctx, "water_daily_goal", "2500"))

	goal, err := prefsdomain.GetInt(s.ctx, s.repo, "water_daily_goal")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2500, goal)
}

func (s *PrefsTestSuite) TestDeleteMany() {
	require.NoError(s.T(), s.repo.Set(s.ctx, "admin_token", "a"))
	require.NoError(s.T(), s.repo.Set(s.ctx, "admin_info", "{}"))
	require.NoError(s.T(), s.repo.Set(s.ctx, "jwt_token", "t"))

	require.NoError(s.T(), s.repo.Delete(s.ctx, "admin_token", "admin_info"))

	_, err := s.repo.Get(s.ctx, "admin_token")
	assert.ErrorIs(s.T(), err, prefsdomain.ErrNotFound)
	_, err = s.repo.Get(s.ctx, "admin_info")
	assert.ErrorIs(s.T(), err, prefsdomain.ErrNotFound)

	value, err := s.repo.Get(s.ctx, "jwt_token")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "t", value)
}

func (s *PrefsTestSuite) TestDeleteNothing() {
	assert.NoError(s.T(), s.repo.Delete(s.ctx))
}

func TestPrefsTestSuite(t *testing.T) {
	suite.Run(t, new(PrefsTestSuite))
}
