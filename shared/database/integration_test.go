package database_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"treasure-server/pkg/migration"
	"treasure-server/shared/database"
	"treasure-server/shared/database/migrations"
	"treasure-server/shared/interfaces"
	"treasure-server/shared/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// RepositoryTestSuite поднимает реальные PostgreSQL и Redis в контейнерах
// и гоняет оба репозитория против них.
type RepositoryTestSuite struct {
	suite.Suite
	ctx             context.Context
	pgContainer     *postgres.PostgresContainer
	rdContainer     *tcredis.RedisContainer
	pgPool          *pgxpool.Pool
	redisClient     *redis.Client
	sessionRepo     interfaces.GameSessionRepository
	leaderboardRepo interfaces.LeaderboardRepository
	logger          *zap.Logger
}

func (s *RepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err, "Failed to create logger for tests")

	// Запускаем контейнер PostgreSQL
	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	pgConnStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get postgres connection string")

	s.pgPool, err = pgxpool.New(s.ctx, pgConnStr)
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	// Применяем миграции из встроенной ФС
	migrator := migration.NewMigrator(migration.Config{
		MigrationsPath: ".",
		MigrationsFS:   migrations.FS,
	}, s.pgPool)
	require.NoError(s.T(), migrator.Up(s.ctx), "Failed to run migrations")

	// Запускаем контейнер Redis
	s.rdContainer, err = tcredis.Run(s.ctx,
		"docker.io/redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("* Ready to accept connections").
				WithOccurrence(1).
				WithStartupTimeout(1*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start redis container")

	redisHost, err := s.rdContainer.Host(s.ctx)
	require.NoError(s.T(), err)
	redisPort, err := s.rdContainer.MappedPort(s.ctx, "6379/tcp")
	require.NoError(s.T(), err)

	s.redisClient = redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", redisHost, redisPort.Port())})
	_, err = s.redisClient.Ping(s.ctx).Result()
	require.NoError(s.T(), err, "Failed to connect to test redis")

	s.sessionRepo = database.NewPgGameSessionRepository(s.pgPool, s.logger)
	s.leaderboardRepo = database.NewRedisLeaderboardRepository(s.redisClient, s.logger)
}

func (s *RepositoryTestSuite) TearDownSuite() {
	if s.pgPool != nil {
		s.pgPool.Close()
	}
	if s.redisClient != nil {
		s.redisClient.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate postgres container", zap.Error(err))
		}
	}
	if s.rdContainer != nil {
		if err := s.rdContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate redis container", zap.Error(err))
		}
	}
}

// Перед каждым тестом очищаем таблицы и Redis
func (s *RepositoryTestSuite) SetupTest() {
	_, err := s.pgPool.Exec(s.ctx, "TRUNCATE TABLE game_sessions")
	require.NoError(s.T(), err, "Failed to truncate game_sessions table")
	require.NoError(s.T(), s.redisClient.FlushDB(s.ctx).Err(), "Failed to flush Redis DB")
}

func TestRepositoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(RepositoryTestSuite))
}

// --- GameSessionRepository ---

func (s *RepositoryTestSuite) TestSaveAndGetSession() {
	t := s.T()
	session := models.NewGameSession("player-1")
	session.AddChoice(models.StepWelcome, "l")
	session.CurrentStep = models.StepRiverside

	require.NoError(t, s.sessionRepo.Save(s.ctx, session))

	loaded, err := s.sessionRepo.GetBySessionID(s.ctx, session.SessionID)
	require.NoError(t, err)
	require.Equal(t, session.SessionID, loaded.SessionID)
	require.Equal(t, "player-1", loaded.UserID)
	require.Equal(t, models.StepRiverside, loaded.CurrentStep)
	require.Len(t, loaded.ChoicesMade, 1)
	require.Equal(t, models.StepWelcome, loaded.ChoicesMade[0].Step)
	require.Equal(t, "l", loaded.ChoicesMade[0].Choice)
	require.False(t, loaded.GameOver)
}

func (s *RepositoryTestSuite) TestSaveIsUpsert() {
	t := s.T()
	session := models.NewGameSession("player-1")
	require.NoError(t, s.sessionRepo.Save(s.ctx, session))

	session.AddChoice(models.StepWelcome, "r")
	session.GameOver = true
	require.NoError(t, s.sessionRepo.Save(s.ctx, session))

	loaded, err := s.sessionRepo.GetBySessionID(s.ctx, session.SessionID)
	require.NoError(t, err)
	require.True(t, loaded.GameOver)
	require.Len(t, loaded.ChoicesMade, 1)
}

func (s *RepositoryTestSuite) TestGetMissingSession() {
	t := s.T()
	missing := models.NewGameSession("player-1")

	_, err := s.sessionRepo.GetBySessionID(s.ctx, missing.SessionID)
	require.ErrorIs(t, err, interfaces.ErrNotFound)
}

func (s *RepositoryTestSuite) TestListRecentByUserID() {
	t := s.T()

	for i := 0; i < 3; i++ {
		session := models.NewGameSession("player-1")
		require.NoError(t, s.sessionRepo.Save(s.ctx, session))
	}
	other := models.NewGameSession("player-2")
	require.NoError(t, s.sessionRepo.Save(s.ctx, other))

	sessions, err := s.sessionRepo.ListRecentByUserID(s.ctx, "player-1", 2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	for _, session := range sessions {
		require.Equal(t, "player-1", session.UserID)
	}
}

// --- LeaderboardRepository ---

func (s *RepositoryTestSuite) TestLeaderboardRecordAndTop() {
	t := s.T()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, s.leaderboardRepo.RecordWin(s.ctx, "player-1", now))
	require.NoError(t, s.leaderboardRepo.RecordWin(s.ctx, "player-1", now.Add(time.Minute)))
	require.NoError(t, s.leaderboardRepo.RecordWin(s.ctx, "player-2", now))

	entries, err := s.leaderboardRepo.Top(s.ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Сортировка по числу побед, лидер первым
	require.Equal(t, "player-1", entries[0].UserID)
	require.EqualValues(t, 2, entries[0].Wins)
	require.WithinDuration(t, now.Add(time.Minute), entries[0].LastWin, time.Second)
	require.Equal(t, "player-2", entries[1].UserID)
	require.EqualValues(t, 1, entries[1].Wins)
}

func (s *RepositoryTestSuite) TestLeaderboardLimit() {
	t := s.T()
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.leaderboardRepo.RecordWin(s.ctx, fmt.Sprintf("player-%d", i), now))
	}

	entries, err := s.leaderboardRepo.Top(s.ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func (s *RepositoryTestSuite) TestLeaderboardEmpty() {
	t := s.T()

	entries, err := s.leaderboardRepo.Top(s.ctx, 10)
	require.NoError(t, err)
	require.Empty(t, entries)
}
