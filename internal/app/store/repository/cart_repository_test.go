package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"petstore/internal/app/store/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CartRepositoryTestSuite тестовый suite для PostgreSQL repository
type CartRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  CartRepository
	sqlDB *sql.DB
}

func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(CartRepositoryTestSuite))
}

func (s *CartRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{TranslateError: true})
	require.NoError(s.T(), err)

	s.repo = NewCartRepository(s.db)
}

func (s *CartRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

// ===================== CreateCart Tests =====================

func (s *CartRepositoryTestSuite) TestCreateCart_Success() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "shopping_carts"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.CreateCart(ctx, testClientID)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== CartExists Tests =====================

func (s *CartRepositoryTestSuite) TestCartExists_True() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(1)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "shopping_carts" WHERE client_id = $1`)).
		WithArgs(testClientID).
		WillReturnRows(rows)

	// Act
	exists, err := s.repo.CartExists(ctx, testClientID)

	// Assert
	s.NoError(err)
	s.True(exists)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *CartRepositoryTestSuite) TestCartExists_False() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(0)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "shopping_carts" WHERE client_id = $1`)).
		WithArgs("ghost").
		WillReturnRows(rows)

	// Act
	exists, err := s.repo.CartExists(ctx, "ghost")

	// Assert
	s.NoError(err)
	s.False(exists)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== AddItem Tests =====================

func (s *CartRepositoryTestSuite) TestAddItem_Success() {
	ctx := context.Background()

	item := &entity.CartItem{ClientID: testClientID, ItemID: 1, Quantity: 3}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "cart_items"`)).
		WithArgs(item.ClientID, item.ItemID, item.Quantity).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.AddItem(ctx, item)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *CartRepositoryTestSuite) TestAddItem_Duplicate() {
	// Повторное добавление той же пары нарушает составной первичный ключ
	ctx := context.Background()

	item := &entity.CartItem{ClientID: testClientID, ItemID: 1, Quantity: 3}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "cart_items"`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	s.mock.ExpectRollback()

	// Act
	err := s.repo.AddItem(ctx, item)

	// Assert
	s.ErrorIs(err, ErrDuplicateCartItem)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== RemoveItem Tests =====================

func (s *CartRepositoryTestSuite) TestRemoveItem_Success() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "cart_items" WHERE client_id = $1 AND item_id = $2`)).
		WithArgs(testClientID, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.RemoveItem(ctx, testClientID, 1)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *CartRepositoryTestSuite) TestRemoveItem_NotInCart() {
	// Удаление отсутствующей позиции: ноль затронутых строк
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "cart_items" WHERE client_id = $1 AND item_id = $2`)).
		WithArgs(testClientID, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.RemoveItem(ctx, testClientID, 42)

	// Assert
	s.ErrorIs(err, ErrCartItemNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== ItemInCart Tests =====================

func (s *CartRepositoryTestSuite) TestItemInCart_True() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(1)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "cart_items" WHERE client_id = $1 AND item_id = $2`)).
		WithArgs(testClientID, int64(1)).
		WillReturnRows(rows)

	// Act
	inCart, err := s.repo.ItemInCart(ctx, testClientID, 1)

	// Assert
	s.NoError(err)
	s.True(inCart)
	s.NoError(s.mock.ExpectationsWereMet())
}
