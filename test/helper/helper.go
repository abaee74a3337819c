package helper_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ghaniswara/medi-quest/internal"
	"github.com/ghaniswara/medi-quest/internal/datastore/postgres"
	redisClient "github.com/ghaniswara/medi-quest/internal/datastore/redis"
	"github.com/ghaniswara/medi-quest/internal/entity"
	"github.com/ghaniswara/medi-quest/pkg/http_util"
	"github.com/ghaniswara/medi-quest/pkg/jwt"
	"github.com/go-faker/faker/v4"
	"github.com/go-redis/redis"
	"github.com/ory/dockertest"
	"gorm.io/gorm"
)

const (
	postgresUser     = "medi"
	postgresPassword = "medi-secret"
	postgresDB       = "medi_quest_test"
)

var ErrDockerUnavailable = errors.New("docker is not available")

// TestServerResources holds resources needed for test server setup
type TestServerResources struct {
	Pool          *dockertest.Pool
	DBResource    *dockertest.Resource
	RedisResource *dockertest.Resource
	HTTPServer    *httptest.Server
	Address       string
	ORM           *gorm.DB
	Redis         *redis.Client
}

// SetupTestServer starts postgres and redis containers, migrates the schema and
// serves the full router on a local httptest server.
func SetupTestServer(ctx context.Context) (*TestServerResources, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDockerUnavailable, err)
	}
	if err := pool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDockerUnavailable, err)
	}

	resources := &TestServerResources{Pool: pool}

	resources.DBResource, err = pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "14",
		Env: []string{
			fmt.Sprintf("POSTGRES_USER=%s", postgresUser),
			fmt.Sprintf("POSTGRES_PASSWORD=%s", postgresPassword),
			fmt.Sprintf("POSTGRES_DB=%s", postgresDB),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not start postgres: %w", err)
	}

	resources.RedisResource, err = pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7",
	})
	if err != nil {
		resources.CleanupTestServer()
		return nil, fmt.Errorf("could not start redis: %w", err)
	}

	pool.MaxWait = 120 * time.Second
	if err := pool.Retry(func() error {
		resources.ORM, err = connectToPostgres(resources.DBResource)
		return err
	}); err != nil {
		resources.CleanupTestServer()
		return nil, fmt.Errorf("could not connect to postgres: %w", err)
	}

	fmt.Println("ℹ️ Database Connected")

	if err := pool.Retry(func() error {
		resources.Redis, err = redisClient.NewRedis("localhost", resources.RedisResource.GetPort("6379/tcp"))
		return err
	}); err != nil {
		resources.CleanupTestServer()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	fmt.Println("ℹ️ Redis Connected")

	if err := postgres.Migrate(resources.ORM); err != nil {
		resources.CleanupTestServer()
		return nil, err
	}

	useCases, err := internal.NewUseCases(resources.ORM, resources.Redis, jwt.NewIssuer("integration-secret", time.Hour), time.Minute, internal.NewLogger(os.Stdout))
	if err != nil {
		resources.CleanupTestServer()
		return nil, err
	}

	sqlDB, err := resources.ORM.DB()
	if err != nil {
		resources.CleanupTestServer()
		return nil, err
	}

	server := internal.NewServer(os.Stdout, ":0", sqlDB, useCases)
	resources.HTTPServer = httptest.NewServer(server.Handler())
	resources.Address = resources.HTTPServer.URL

	if !waitForServer(ctx, resources.Address) {
		resources.CleanupTestServer()
		return nil, fmt.Errorf("server did not start within timeout")
	}

	return resources, nil
}

// CleanupTestServer stops the http server and purges Docker resources
func (resources *TestServerResources) CleanupTestServer() {
	if resources == nil {
		return
	}

	if resources.HTTPServer != nil {
		resources.HTTPServer.Close()
	}

	if resources.Redis != nil {
		resources.Redis.Close()
	}

	if resources.Pool != nil {
		if resources.DBResource != nil {
			if err := resources.Pool.Purge(resources.DBResource); err != nil {
				log.Printf("Could not purge PostgreSQL: %s", err)
			}
		}

		if resources.RedisResource != nil {
			if err := resources.Pool.Purge(resources.RedisResource); err != nil {
				log.Printf("Could not purge Redis: %s", err)
			}
		}
	}
}

// RunMain is the body of a TestMain for packages that need the full stack.
func RunMain(m *testing.M) int {
	resources, err := SetupTestServer(context.Background())
	if errors.Is(err, ErrDockerUnavailable) {
		log.Printf("skipping integration tests: %s", err)
		return 0
	}
	if err != nil {
		log.Printf("Failed to set up test server: %s", err)
		return 1
	}
	defer resources.CleanupTestServer()

	Resources = resources
	return m.Run()
}

// Resources is set by RunMain before any test runs.
var Resources *TestServerResources

func connectToPostgres(dbResource *dockertest.Resource) (*gorm.DB, error) {
	hostPort := strings.Split(dbResource.GetHostPort("5432/tcp"), ":")
	db, err := postgres.InitializeDB(postgresUser, postgresPassword, postgresDB, hostPort[0], hostPort[1])
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	return db, sqlDB.Ping()
}

func waitForServer(ctx context.Context, address string) bool {
	loopContext, cancelLoopContext := context.WithTimeout(ctx, 30*time.Second)
	defer cancelLoopContext()

	for {
		select {
		case <-loopContext.Done():
			return false
		default:
			resp, err := http.Get(address + "/healthz")
			if err != nil {
				time.Sleep(time.Second)
				continue
			}
			resp.Body.Close()

			if resp.StatusCode == http.StatusOK {
				log.Println("✅ Server is ready")
				return true
			}
			time.Sleep(time.Second)
		}
	}
}

// DoJSON sends body as JSON and returns the status and raw response body.
func DoJSON(t *testing.T, method, path string, body interface{}, headers ...string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequest(method, Resources.Address+path, reader)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return resp.StatusCode, bodyBytes
}

func SignUpUser(t *testing.T, name, email, password string) {
	t.Helper()

	status, body := DoJSON(t, http.MethodPost, "/api/v1/register", entity.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if status != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusCreated, status, body)
	}
}

func SignInUser(t *testing.T, email, password string) string {
	t.Helper()

	status, body := DoJSON(t, http.MethodPost, "/api/v1/login", entity.SignInRequest{
		Email:    email,
		Password: password,
	})
	if status != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, status, body)
	}

	response, err := http_util.DecodeBody(body, entity.SignInResponse{})
	if err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return response.Token
}

// RandomUser returns a name, a unique email and a password.
func RandomUser() (name, email, password string) {
	return faker.Name(), fmt.Sprintf("%d.%s", time.Now().UnixNano(), faker.Email()), faker.Password()
}

// PopulateSupplies inserts count supplies in category straight through the ORM.
func PopulateSupplies(db *gorm.DB, category string, count int) ([]entity.Supply, error) {
	var supplies []entity.Supply
	for i := 0; i < count; i++ {
		supply := entity.Supply{
			Title:    faker.Word(),
			Category: category,
			Amount:   float64(i + 1),
		}
		if err := db.Create(&supply).Error; err != nil {
			return nil, err
		}
		supplies = append(supplies, supply)
	}
	return supplies, nil
}
