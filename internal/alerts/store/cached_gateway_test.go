package store_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockwatch-system/internal/alerts"
	"stockwatch-system/internal/alerts/store"
)

type stubGateway struct {
	alerts.Gateway
	company *alerts.CompanyRecord
	calls   int
}

func (s *stubGateway) GetCompany(ctx context.Context, companyID int64) (*alerts.CompanyRecord, error) {
	s.calls++
	if s.company == nil || s.company.ID != companyID {
		return nil, nil
	}
	return s.company, nil
}

func TestCachedGateway_GetCompany(t *testing.T) {
	record := &alerts.CompanyRecord{ID: 1, Name: "Acme Corp"}
	payload, err := json.Marshal(record)
	require.NoError(t, err)

	const cacheKey = "alerts:company:1"

	t.Run("miss reads through and fills the cache", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		underlying := &stubGateway{company: record}
		gw := store.NewCachedGateway(underlying, client)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSet(cacheKey, payload, 30*time.Minute).SetVal("OK")

		got, err := gw.GetCompany(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Acme Corp", got.Name)
		assert.Equal(t, 1, underlying.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hit skips the underlying gateway", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		underlying := &stubGateway{company: record}
		gw := store.NewCachedGateway(underlying, client)

		mock.ExpectGet(cacheKey).SetVal(string(payload))

		got, err := gw.GetCompany(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Acme Corp", got.Name)
		assert.Equal(t, 0, underlying.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown company is not cached", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		underlying := &stubGateway{}
		gw := store.NewCachedGateway(underlying, client)

		mock.ExpectGet(cacheKey).RedisNil()

		got, err := gw.GetCompany(context.Background(), 1)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Equal(t, 1, underlying.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
