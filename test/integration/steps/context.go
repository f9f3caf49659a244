//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/cash-register/backend/config"
	"github.com/cash-register/backend/internal/infra/dependency"
	"github.com/cash-register/backend/internal/integration/persistence/model"
	"github.com/cash-register/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// suite holds what every scenario shares: one server over one database.
var suite struct {
	server   *httptest.Server
	injector *dependency.Injector
	db       *mock.Db
	redis    *redis.Client
	timeMock *mock.Time
}

// TestContext holds the test state for each scenario.
type TestContext struct {
	headers      map[string]string
	response     *response
	accessToken  string
	refreshToken string
	currentUser  uuid.UUID

	// placeholders resolved in paths and bodies, e.g. {{cash_id}}
	values map[string]string
}

type response struct {
	status  int
	headers map[string][]string
	raw     []byte
	body    any
}

type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Redis:  config.RedisConfig{LockTTL: 5 * time.Second},
		JWT: config.JWTConfig{
			Secret:             testJWTSecret,
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
			CleanupInterval:    time.Hour,
			BcryptCost:         4,
		},
		RateLimit: config.RateLimitConfig{
			LoginRPS:   5.0 / 60.0,
			LoginBurst: 5,
		},
		CashRegister: config.CashRegisterConfig{
			RequireBarberForSale: true,
			HistoryDefaultLimit:  10,
			HistoryMaxLimit:      100,
			Timezone:             "UTC",
		},
	}
}

// InitializeTestSuite starts the API once over in-memory SQLite and miniredis.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		suite.db = mock.NewDb(model.All())
		suite.redis = mock.NewRedis()
		suite.timeMock = mock.NewTime()
		suite.injector = dependency.NewInjector(testConfig(), suite.db.DbConn, suite.redis, suite.timeMock)
		suite.server = httptest.NewServer(suite.injector.Router.Setup("test"))
	})

	ctx.AfterSuite(func() {
		if suite.server != nil {
			suite.server.Close()
		}
	})
}

// InitializeScenario resets shared state and registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if err := suite.db.ClearDB(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(suite.redis); err != nil {
			return ctx, err
		}
		suite.timeMock.Reset()
		suite.injector.LoginRateLimiter.Reset()

		tc := &TestContext{
			headers: make(map[string]string),
			values:  make(map[string]string),
		}
		return SetTestContext(ctx, tc), nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerDatabaseSteps(ctx)
	registerCashRegisterSteps(ctx)
}

func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^the header is empty$`, theHeaderIsEmpty)
	ctx.Step(`^the header contains the key "([^"]*)" with "([^"]*)"$`, theHeaderContainsTheKeyWith)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I remember the response field "([^"]*)" as "([^"]*)"$`, iRememberTheResponseFieldAs)
}

func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^the response should have (\d+) items?$`, theResponseShouldHaveItems)
	ctx.Step(`^the response header "([^"]*)" should contain "([^"]*)"$`, theResponseHeaderShouldContain)
}

func registerDatabaseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the db should contain (\d+) objects in the "([^"]*)" table$`, theDbShouldContainObjectsInTheTable)
	ctx.Step(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, theDbShouldContainObjectsInWithTheValues)
}

func registerCashRegisterSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, aUserExistsWithEmailAndPassword)
	ctx.Step(`^I am logged in as "([^"]*)"$`, iAmLoggedInAs)
	ctx.Step(`^the default barbers exist$`, theDefaultBarbersExist)
	ctx.Step(`^the current time is "([^"]*)"$`, theCurrentTimeIs)
	ctx.Step(`^I have an open cash register with balance "([^"]*)"$`, iHaveAnOpenCashRegisterWithBalance)
	ctx.Step(`^I record a "([^"]*)" of "([^"]*)" paid by "([^"]*)" for barber "([^"]*)"$`, iRecordASaleForBarber)
	ctx.Step(`^I record an "EXPENSE" of "([^"]*)" paid by "([^"]*)"$`, iRecordAnExpense)
	ctx.Step(`^I close the cash register counting "([^"]*)"$`, iCloseTheCashRegisterCounting)
}
