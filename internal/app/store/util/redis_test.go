package util

import (
	"context"
	"testing"
	"time"

	"petstore/internal/app/store/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RedisClientTestSuite тестовый suite для Redis кеша
type RedisClientTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *RedisClient
}

func TestRedisClientSuite(t *testing.T) {
	suite.Run(t, new(RedisClientTestSuite))
}

func (s *RedisClientTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client, err = NewRedisClient(s.miniRedis.Addr(), "", 0)
	require.NoError(s.T(), err)
}

func (s *RedisClientTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *RedisClientTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

// ===================== TopSales Tests =====================

func (s *RedisClientTestSuite) TestTopSales_SetGet() {
	ctx := context.Background()

	report := entity.TopSalesReport{
		"Food": {
			{ItemName: "Premium Dog Food", TotalSales: 50},
			{ItemName: "Cat Snacks", TotalSales: 30},
		},
		"Toys": {
			{ItemName: "Squeaky Ball", TotalSales: 12},
		},
	}

	err := s.client.SetTopSales(ctx, report, 5*time.Minute)
	s.NoError(err)

	result, err := s.client.GetTopSales(ctx)
	s.NoError(err)
	s.Equal(report, result)
}

func (s *RedisClientTestSuite) TestTopSales_CacheMiss() {
	ctx := context.Background()

	// Промах кеша возвращает (nil, nil), не ошибку
	result, err := s.client.GetTopSales(ctx)
	s.NoError(err)
	s.Nil(result)
}

func (s *RedisClientTestSuite) TestTopSales_Delete() {
	ctx := context.Background()

	report := entity.TopSalesReport{
		"Food": {{ItemName: "Premium Dog Food", TotalSales: 50}},
	}
	s.NoError(s.client.SetTopSales(ctx, report, 5*time.Minute))

	s.NoError(s.client.DeleteTopSales(ctx))

	result, err := s.client.GetTopSales(ctx)
	s.NoError(err)
	s.Nil(result)
}

func (s *RedisClientTestSuite) TestTopSales_TTLExpires() {
	ctx := context.Background()

	report := entity.TopSalesReport{
		"Food": {{ItemName: "Premium Dog Food", TotalSales: 50}},
	}
	s.NoError(s.client.SetTopSales(ctx, report, 5*time.Minute))

	// miniredis позволяет промотать время вперед
	s.miniRedis.FastForward(6 * time.Minute)

	result, err := s.client.GetTopSales(ctx)
	s.NoError(err)
	s.Nil(result)
}

// ===================== CategoryNames Tests =====================

func (s *RedisClientTestSuite) TestCategoryNames_SetGet() {
	ctx := context.Background()

	names := []string{"Food", "Toys", "Accessories"}

	err := s.client.SetCategoryNames(ctx, names, time.Hour)
	s.NoError(err)

	result, err := s.client.GetCategoryNames(ctx)
	s.NoError(err)
	s.Equal(names, result)
}

func (s *RedisClientTestSuite) TestCategoryNames_CacheMiss() {
	ctx := context.Background()

	result, err := s.client.GetCategoryNames(ctx)
	s.NoError(err)
	s.Nil(result)
}

func (s *RedisClientTestSuite) TestCategoryNames_Delete() {
	ctx := context.Background()

	s.NoError(s.client.SetCategoryNames(ctx, []string{"Food"}, time.Hour))
	s.NoError(s.client.DeleteCategoryNames(ctx))

	result, err := s.client.GetCategoryNames(ctx)
	s.NoError(err)
	s.Nil(result)
}
