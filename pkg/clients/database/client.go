package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	foundation "github.com/estafette/estafette-foundation"
	_ "github.com/lib/pq" // use postgres client library to connect to cockroachdb
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // embedded database for local runs and tests
)

var (
	// ErrTestCostNotFound is returned if a query for a test cost returns no results
	ErrTestCostNotFound = fmt.Errorf("the test cost can't be found: %w", api.ErrNotFound)

	// ErrScheduleNotFound is returned if a query for a schedule returns no results
	ErrScheduleNotFound = fmt.Errorf("the schedule can't be found: %w", api.ErrNotFound)
)

// maximum number of test names in a single IN clause
const testCostsBatchSize = 500

// Client is the interface for communicating with the database
//
//go:generate mockgen -package=database -destination ./mock.go -source=client.go
type Client interface {
	Connect(ctx context.Context) (err error)
	ConnectWithDriverAndSource(ctx context.Context, driverName, dataSourceName string) (err error)
	AwaitDatabaseReadiness(ctx context.Context) (err error)
	MigrateSchema(ctx context.Context) (err error)

	UpsertTestRuntime(ctx context.Context, testName string, runtimeSeconds, alpha float64) (err error)
	GetTestCost(ctx context.Context, testName string) (testCost *TestCost, err error)
	GetTestCosts(ctx context.Context, testNames []string) (testCosts map[string]*TestCost, err error)

	GetSchedule(ctx context.Context, testRunID string, shardCount int) (schedule *Schedule, err error)
	InsertScheduleIfAbsent(ctx context.Context, schedule Schedule) (storedSchedule *Schedule, inserted bool, err error)
}

// NewClient returns a new database.Client
func NewClient(config *api.APIConfig) Client {
	return &client{
		databaseDriver: string(config.Database.Driver),
		config:         config,
	}
}

type client struct {
	databaseDriver     string
	config             *api.APIConfig
	databaseConnection *sql.DB
}

// Connect sets up a connection with CockroachDB, or opens the embedded sqlite database
func (c *client) Connect(ctx context.Context) (err error) {

	if c.config.Database.Driver == api.DatabaseDriverSqlite {
		return c.ConnectWithDriverAndSource(ctx, string(api.DatabaseDriverSqlite), c.config.Database.DataSource)
	}

	log.Debug().Msgf("Connecting to database %v on host %v...", c.config.Database.DatabaseName, c.config.Database.Host)

	userAndPassword := c.config.Database.User
	if c.config.Database.Password != "" {
		userAndPassword += ":" + c.config.Database.Password
	}

	dataSourceName := ""
	if c.config.Database.Insecure {
		dataSourceName = fmt.Sprintf("postgresql://%v@%v:%v/%v?sslmode=disable", userAndPassword, c.config.Database.Host, c.config.Database.Port, c.config.Database.DatabaseName)
	} else {
		dataSourceName = fmt.Sprintf("postgresql://%v@%v:%v/%v?sslmode=%v&sslrootcert=%v&sslcert=%v&sslkey=%v", userAndPassword, c.config.Database.Host, c.config.Database.Port, c.config.Database.DatabaseName, c.config.Database.SslMode, c.config.Database.CertificateAuthorityPath, c.config.Database.CertificatePath, c.config.Database.CertificateKeyPath)
	}

	return c.ConnectWithDriverAndSource(ctx, string(api.DatabaseDriverPostgres), dataSourceName)
}

// ConnectWithDriverAndSource set up a connection with any database
func (c *client) ConnectWithDriverAndSource(_ context.Context, driverName, dataSourceName string) (err error) {

	log.Debug().Msgf("Opening database connection with driver %v...", driverName)
	c.databaseConnection, err = sql.Open(driverName, dataSourceName)
	if err != nil {
		return
	}
	c.databaseDriver = driverName

	if c.config.Database.MaxOpenConns > 0 {
		log.Debug().Msgf("Setting max open connections to database to %v...", c.config.Database.MaxOpenConns)
		c.databaseConnection.SetMaxOpenConns(c.config.Database.MaxOpenConns)
	}

	if c.config.Database.MaxIdleConns > 0 {
		log.Debug().Msgf("Setting max idle connections to database to %v...", c.config.Database.MaxIdleConns)
		c.databaseConnection.SetMaxIdleConns(c.config.Database.MaxIdleConns)
	}

	if c.config.Database.ConnMaxLifetimeMinutes > 0 {
		log.Debug().Msgf("Setting max lifetime for connections to database to %v minutes...", c.config.Database.ConnMaxLifetimeMinutes)
		c.databaseConnection.SetConnMaxLifetime(time.Duration(c.config.Database.ConnMaxLifetimeMinutes) * time.Minute)
	}

	return
}

func (c *client) AwaitDatabaseReadiness(ctx context.Context) (err error) {
	return foundation.Retry(func() error {
		log.Debug().Msg("Checking if database is ready...")
		return c.databaseConnection.PingContext(ctx)
	}, foundation.Attempts(12), foundation.DelayMillisecond(5000), foundation.Fixed())
}

// MigrateSchema creates the tables if they don't exist yet
func (c *client) MigrateSchema(ctx context.Context) (err error) {

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS test_costs (
			test_name TEXT PRIMARY KEY,
			total_run_time FLOAT NOT NULL DEFAULT 0,
			total_runs INT NOT NULL DEFAULT 0,
			inserted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS schedules (
			test_run_id TEXT NOT NULL,
			shard_count INT NOT NULL,
			shards TEXT NOT NULL,
			inserted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (test_run_id, shard_count)
		)
		`,
	}

	for _, statement := range statements {
		if _, err = c.databaseConnection.ExecContext(ctx, statement); err != nil {
			return errors.Wrap(err, "migrating database schema failed")
		}
	}

	return nil
}

// UpsertTestRuntime folds a runtime observation into the test's moving average in a single statement, so concurrent reports for the same test serialize on its row
func (c *client) UpsertTestRuntime(ctx context.Context, testName string, runtimeSeconds, alpha float64) (err error) {

	// a new row starts from an average of 0, so its first value is runtime * alpha
	weightedRuntime := runtimeSeconds * alpha

	query := c.statementBuilder().
		Insert("test_costs").
		Columns("test_name", "total_run_time", "total_runs").
		Values(testName, weightedRuntime, 1).
		Suffix(`
		ON CONFLICT
		(
			test_name
		)
		DO UPDATE SET
			total_run_time = test_costs.total_run_time * ? + ?,
			total_runs = test_costs.total_runs + 1,
			updated_at = CURRENT_TIMESTAMP
		`, 1-alpha, weightedRuntime)

	_, err = query.RunWith(c.databaseConnection).ExecContext(ctx)
	if err != nil {
		return errors.Wrapf(err, "upserting runtime for test %v failed", testName)
	}

	return nil
}

func (c *client) GetTestCost(ctx context.Context, testName string) (testCost *TestCost, err error) {

	query := c.statementBuilder().
		Select("test_name, total_run_time, total_runs").
		From("test_costs").
		Where(sq.Eq{"test_name": testName}).
		Limit(uint64(1))

	row := query.RunWith(c.databaseConnection).QueryRowContext(ctx)

	testCost = &TestCost{}
	if err = row.Scan(&testCost.TestName, &testCost.EWMARuntime, &testCost.RunCount); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTestCostNotFound
		}
		return nil, errors.Wrapf(err, "retrieving cost for test %v failed", testName)
	}

	return testCost, nil
}

// GetTestCosts returns the stored costs for the given tests; tests without history are absent from the map
func (c *client) GetTestCosts(ctx context.Context, testNames []string) (testCosts map[string]*TestCost, err error) {

	testCosts = make(map[string]*TestCost, len(testNames))

	for start := 0; start < len(testNames); start += testCostsBatchSize {
		end := start + testCostsBatchSize
		if end > len(testNames) {
			end = len(testNames)
		}

		err = c.getTestCostsBatch(ctx, testNames[start:end], testCosts)
		if err != nil {
			return nil, err
		}
	}

	return testCosts, nil
}

func (c *client) getTestCostsBatch(ctx context.Context, testNames []string, testCosts map[string]*TestCost) (err error) {

	query := c.statementBuilder().
		Select("test_name, total_run_time, total_runs").
		From("test_costs").
		Where(sq.Eq{"test_name": testNames})

	rows, err := query.RunWith(c.databaseConnection).QueryContext(ctx)
	if err != nil {
		return errors.Wrapf(err, "retrieving costs for %v tests failed", len(testNames))
	}

	defer _CloseRows(rows)
	for rows.Next() {
		testCost := &TestCost{}
		if err = rows.Scan(&testCost.TestName, &testCost.EWMARuntime, &testCost.RunCount); err != nil {
			return
		}
		testCosts[testCost.TestName] = testCost
	}

	return rows.Err()
}

func (c *client) GetSchedule(ctx context.Context, testRunID string, shardCount int) (schedule *Schedule, err error) {

	query := c.statementBuilder().
		Select("test_run_id, shard_count, shards").
		From("schedules").
		Where(sq.Eq{"test_run_id": testRunID}).
		Where(sq.Eq{"shard_count": shardCount}).
		Limit(uint64(1))

	row := query.RunWith(c.databaseConnection).QueryRowContext(ctx)

	var shardsData string
	schedule = &Schedule{}
	if err = row.Scan(&schedule.TestRunID, &schedule.ShardCount, &shardsData); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrScheduleNotFound
		}
		return nil, errors.Wrapf(err, "retrieving schedule %v-%v failed", testRunID, shardCount)
	}

	// shard indexes are stored as stringified keys
	if err = json.Unmarshal([]byte(shardsData), &schedule.Shards); err != nil {
		return nil, errors.Wrapf(err, "unmarshalling shards of schedule %v-%v failed", testRunID, shardCount)
	}

	return schedule, nil
}

// InsertScheduleIfAbsent stores the schedule unless one already exists for its test run and shard count; it returns whichever schedule ends up stored
func (c *client) InsertScheduleIfAbsent(ctx context.Context, schedule Schedule) (storedSchedule *Schedule, inserted bool, err error) {

	shardsBytes, err := json.Marshal(schedule.Shards)
	if err != nil {
		return nil, false, err
	}

	query := c.statementBuilder().
		Insert("schedules").
		Columns("test_run_id", "shard_count", "shards").
		Values(schedule.TestRunID, schedule.ShardCount, string(shardsBytes)).
		Suffix(`
		ON CONFLICT
		(
			test_run_id,
			shard_count
		)
		DO NOTHING
		`)

	result, err := query.RunWith(c.databaseConnection).ExecContext(ctx)
	if err != nil {
		return nil, false, errors.Wrapf(err, "inserting schedule %v-%v failed", schedule.TestRunID, schedule.ShardCount)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, false, err
	}
	inserted = rowsAffected > 0

	// read back, on a lost race this is the schedule that got there first
	storedSchedule, err = c.GetSchedule(ctx, schedule.TestRunID, schedule.ShardCount)
	if err != nil {
		return nil, false, err
	}

	return storedSchedule, inserted, nil
}

func (c *client) statementBuilder() sq.StatementBuilderType {
	if c.databaseDriver == string(api.DatabaseDriverSqlite) {
		return sq.StatementBuilder.PlaceholderFormat(sq.Question)
	}

	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func _CloseRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed closing rows")
	}
}
