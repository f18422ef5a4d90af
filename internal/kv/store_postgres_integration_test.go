//go:build integration

package kv_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"curator/internal/kv"
	"curator/pkg/platform/sentinel"
)

type PostgresBackendSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *sql.DB
	backend   *kv.Postgres
}

func TestPostgresBackendSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresBackendSuite))
}

func (s *PostgresBackendSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("curator"),
		postgres.WithUsername("curator"),
		postgres.WithPassword("curator"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = sql.Open("pgx", dsn)
	s.Require().NoError(err)

	s.backend = kv.NewPostgres(s.db)
	s.Require().NoError(s.backend.Init(ctx))
}

func (s *PostgresBackendSuite) TearDownSuite() {
	ctx := context.Background()
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(ctx))
	}
}

func (s *PostgresBackendSuite) SetupTest() {
	_, err := s.db.ExecContext(context.Background(), `TRUNCATE curator_kv`)
	s.Require().NoError(err)
}

func (s *PostgresBackendSuite) TestGetMissingKey() {
	_, err := s.backend.Get(context.Background(), "missing")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresBackendSuite) TestSetGetRoundTrip() {
	ctx := context.Background()
	s.Require().NoError(s.backend.Set(ctx, "leadership", []byte(`{"academy":{"title":"PA"}}`)))

	raw, err := s.backend.Get(ctx, "leadership")
	s.Require().NoError(err)
	s.JSONEq(`{"academy":{"title":"PA"}}`, string(raw))
}

func (s *PostgresBackendSuite) TestSetOverwrites() {
	ctx := context.Background()
	s.Require().NoError(s.backend.Set(ctx, "edit-state", []byte(`{"/index.html":true}`)))
	s.Require().NoError(s.backend.Set(ctx, "edit-state", []byte(`{"/index.html":false}`)))

	raw, err := s.backend.Get(ctx, "edit-state")
	s.Require().NoError(err)
	s.JSONEq(`{"/index.html":false}`, string(raw))
}

func (s *PostgresBackendSuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.backend.Set(ctx, "page:/charter.html", []byte(`{}`)))
	s.Require().NoError(s.backend.Delete(ctx, "page:/charter.html"))

	_, err := s.backend.Get(ctx, "page:/charter.html")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresBackendSuite) TestInitIsIdempotent() {
	ctx := context.Background()
	s.Require().NoError(s.backend.Init(ctx))
	s.Require().NoError(s.backend.Init(ctx))
}
