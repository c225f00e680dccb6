package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"petstore/internal/app/store/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const testClientID = "a7c2f9d0-1b34-4e8a-9f00-112233445566"

// ClientRepositoryTestSuite тестовый suite для PostgreSQL repository
type ClientRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  ClientRepository
	sqlDB *sql.DB
}

func TestClientRepositorySuite(t *testing.T) {
	suite.Run(t, new(ClientRepositoryTestSuite))
}

func (s *ClientRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{TranslateError: true})
	require.NoError(s.T(), err)

	s.repo = NewClientRepository(s.db)
}

func (s *ClientRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

// ===================== Create Tests =====================

func (s *ClientRepositoryTestSuite) TestCreate_Success() {
	ctx := context.Background()

	client := &entity.Client{
		ID:    testClientID,
		Name:  "Alice",
		Email: "alice@example.com",
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "clients"`)).
		WithArgs(client.ID, client.Name, client.Email, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Create(ctx, client)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ClientRepositoryTestSuite) TestCreate_DBError() {
	ctx := context.Background()

	client := &entity.Client{ID: testClientID, Name: "Alice", Email: "alice@example.com"}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "clients"`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	// Act
	err := s.repo.Create(ctx, client)

	// Assert
	s.Error(err)
	s.Contains(err.Error(), "failed to create client")
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetByID Tests =====================

func (s *ClientRepositoryTestSuite) TestGetByID_Success() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"client_id", "name", "email", "last_purchase_date", "last_item_bought"}).
		AddRow(testClientID, "Alice", "alice@example.com", nil, nil)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "clients" WHERE client_id = $1`)).
		WithArgs(testClientID, 1).
		WillReturnRows(rows)

	// Act
	client, err := s.repo.GetByID(ctx, testClientID)

	// Assert
	s.NoError(err)
	s.NotNil(client)
	s.Equal(testClientID, client.ID)
	s.Equal("Alice", client.Name)
	s.Equal("alice@example.com", client.Email)
	s.Nil(client.LastPurchaseDate)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ClientRepositoryTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "clients" WHERE client_id = $1`)).
		WithArgs("ghost", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	client, err := s.repo.GetByID(ctx, "ghost")

	// Assert
	s.Nil(client)
	s.ErrorIs(err, ErrClientNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Exists Tests =====================

func (s *ClientRepositoryTestSuite) TestExists_True() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(1)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "clients" WHERE client_id = $1`)).
		WithArgs(testClientID).
		WillReturnRows(rows)

	// Act
	exists, err := s.repo.Exists(ctx, testClientID)

	// Assert
	s.NoError(err)
	s.True(exists)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ClientRepositoryTestSuite) TestExists_False() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(0)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "clients" WHERE client_id = $1`)).
		WithArgs("ghost").
		WillReturnRows(rows)

	// Act
	exists, err := s.repo.Exists(ctx, "ghost")

	// Assert
	s.NoError(err)
	s.False(exists)
	s.NoError(s.mock.ExpectationsWereMet())
}
