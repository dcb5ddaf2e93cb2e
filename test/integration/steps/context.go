// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/wallet-api/config"
	"github.com/finance-tracker/wallet-api/internal/infra/dependency"
	"github.com/finance-tracker/wallet-api/internal/integration/cache"
	"github.com/finance-tracker/wallet-api/internal/integration/persistence/model"
	"github.com/finance-tracker/wallet-api/test/integration/mock"
)

// testContext holds the state of a single scenario.
type testContext struct {
	uri       string
	headers   map[string]string
	client    *http.Client
	response  *response
	db        *mock.Db
	redis     *redis.Client
	miniRedis *miniredis.Miniredis
	cacheDown bool

	categoryID        int64
	paymentMethodID   int64
	installmentID     int64
	lastTransactionID int64
}

type response struct {
	status  int
	headers http.Header
	body    any
}

var serverInit sync.Once
var server *httptest.Server

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		_ = os.Setenv("ENV", "test")
	})

	ctx.AfterSuite(func() {
		if server != nil {
			server.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	redisClient, miniRedis := mock.NewRedis()

	test := &testContext{
		client:    &http.Client{Timeout: 10 * time.Second},
		db:        mock.NewDb(model.AllModels()),
		redis:     redisClient,
		miniRedis: miniRedis,
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Setup steps
	ctx.Given(`^a category exists with name "([^"]*)" and type "([^"]*)"$`, test.aCategoryExistsWithNameAndType)
	ctx.Given(`^a payment method exists with name "([^"]*)" and type "([^"]*)"$`, test.aPaymentMethodExistsWithNameAndType)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)
	ctx.Given(`^the cache is unavailable$`, test.theCacheIsUnavailable)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should be "([^"]*)"$`, test.theResponseHeaderShouldBe)

	// Database and cache assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) active objects in the "([^"]*)" table$`, test.theDbShouldContainActiveObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^the stats cache should hold (\d+) entries$`, test.theStatsCacheShouldHoldEntries)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.categoryID = 0
	t.paymentMethodID = 0
	t.installmentID = 0
	t.lastTransactionID = 0

	if t.cacheDown {
		if err := t.miniRedis.Restart(); err != nil {
			return err
		}
		t.cacheDown = false
	}
	if err := mock.ClearRedis(t.redis); err != nil {
		return err
	}
	return t.db.ClearDB()
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Cache.Enabled = true

		statsCache := cache.NewRedisStatsCache(t.redis, time.Minute)
		injector := dependency.NewInjector(cfg, t.db.DbConn, func() bool { return true }, statsCache)

		server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	})

	t.uri = server.URL
}
