//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"intake-gateway/internal/payment/store"
	"intake-gateway/pkg/platform/sentinel"
	"intake-gateway/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "payments")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestCreateThenExists() {
	ctx := context.Background()

	rec := &store.Record{Email: "user@example.com", Paid: true}
	s.Require().NoError(s.store.Create(ctx, rec))
	s.NotEmpty(rec.ID)
	s.False(rec.CreatedAt.IsZero())

	exists, err := s.store.ExistsByEmail(ctx, "user@example.com")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.store.ExistsByEmail(ctx, "USER@example.com")
	s.Require().NoError(err)
	s.False(exists, "keys match verbatim; normalization happens above the store")
}

// TestConcurrentWebhookDeliveries verifies the unique index makes racing
// deliveries of the same payment converge on a single record.
func (s *PostgresStoreSuite) TestConcurrentWebhookDeliveries() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var created atomic.Int32
	var conflicts atomic.Int32
	var otherErrors atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := s.store.Create(ctx, &store.Record{Email: "user@example.com", Paid: true})
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflicts.Add(1)
			default:
				otherErrors.Add(1)
			}
		}()
	}

	wg.Wait()

	s.Equal(int32(1), created.Load(), "exactly one delivery should insert")
	s.Equal(int32(goroutines-1), conflicts.Load(), "re-deliveries should conflict")
	s.Equal(int32(0), otherErrors.Load(), "no unexpected errors")

	exists, err := s.store.ExistsByEmail(ctx, "user@example.com")
	s.Require().NoError(err)
	s.True(exists)
}
