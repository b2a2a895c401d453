package main

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	requestlogger "github.com/gofiber/fiber/v2/middleware/logger"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-print"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	blog "github.com/ronnmabunga/blogging-website-app-api-demo"
	"github.com/ronnmabunga/blogging-website-app-api-demo/config"
)

//go:embed data/fixtures/*.yml
var fixturesFS embed.FS

type App struct {
	config *gconfig.Container[*config.BaseConfig]
	bunDB  *bun.DB
	repo   blog.RepositoryManager
	auther blog.Authenticator
	logger *glog.BaseLogger
}

func (a *App) Config() *config.BaseConfig {
	return a.config.Raw()
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

// loggerAdapter maps the glog surface onto the printf style logger the
// blog package consumes
type loggerAdapter struct {
	lgr glog.Logger
}

func (a loggerAdapter) Debug(format string, args ...any) {
	a.lgr.Debug(fmt.Sprintf(format, args...))
}

func (a loggerAdapter) Info(format string, args ...any) {
	a.lgr.Info(fmt.Sprintf(format, args...))
}

func (a loggerAdapter) Error(format string, args ...any) {
	a.lgr.Error(fmt.Sprintf(format, args...))
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("blog"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg := gconfig.New(&config.BaseConfig{}).
		WithLogger(lgr.GetLogger("config"))

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		panic(err)
	}

	if cfg.Raw().GetApp().GetDebug() {
		fmt.Println(print.MaybeHighlightJSON(cfg.Raw()))
	}

	app := &App{
		config: cfg,
		logger: lgr,
	}

	if err := WithPersistence(ctx, app); err != nil {
		panic(err)
	}

	if err := WithAuth(ctx, app); err != nil {
		panic(err)
	}

	srv := NewServer(app)

	go func() {
		if err := srv.Listen(app.Config().GetServer().GetAddress()); err != nil {
			log.Fatal(err)
		}
	}()

	WaitExitSignal()

	if err := srv.Shutdown(); err != nil {
		lgr.GetLogger("server").Error("shutdown failed", "error", err)
	}
}

func WithPersistence(ctx context.Context, app *App) error {
	pcfg := app.Config().GetPersistence()

	db, err := sql.Open(sqliteshim.ShimName, pcfg.GetDSN())
	if err != nil {
		return err
	}

	persistence.RegisterModel((*blog.User)(nil))
	persistence.RegisterModel((*blog.Post)(nil))
	persistence.RegisterModel((*blog.Comment)(nil))
	persistence.RegisterModel((*blog.ContactMessage)(nil))

	client, err := persistence.New(pcfg, db, sqlitedialect.New())
	if err != nil {
		return err
	}

	client.SetLogger(app.GetLogger("persistence"))

	migrationsFS, err := fs.Sub(blog.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}

	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)

	if err := client.ValidateDialects(ctx); err != nil {
		return err
	}

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	client.RegisterFixtures(fixturesFS).AddOptions(persistence.WithTrucateTables())

	if err := client.Seed(ctx); err != nil {
		return err
	}

	if report := client.Report(); report != nil && !report.IsZero() {
		fmt.Printf("report: %s\n", report.String())
	}

	app.bunDB = client.DB()
	app.repo = blog.NewRepositoryManager(client.DB())
	app.repo.MustValidate()

	return nil
}

// userTrackerAdapter narrows the repository surface to what the
// provider consumes, dropping the criteria variadics
type userTrackerAdapter struct {
	users blog.Users
}

func (a userTrackerAdapter) GetByIdentifier(ctx context.Context, identifier string) (*blog.User, error) {
	return a.users.GetByIdentifier(ctx, identifier)
}

func (a userTrackerAdapter) TrackAttemptedLogin(ctx context.Context, user *blog.User) error {
	return a.users.TrackAttemptedLogin(ctx, user)
}

func (a userTrackerAdapter) TrackSuccessfulLogin(ctx context.Context, user *blog.User) error {
	return a.users.TrackSuccessfulLogin(ctx, user)
}

func WithAuth(ctx context.Context, app *App) error {
	provider := blog.NewUserProvider(userTrackerAdapter{users: app.repo.Users()}).
		WithLogger(loggerAdapter{lgr: app.GetLogger("auth:prv")})

	auther := blog.NewAuthenticator(provider, app.Config().GetAuth()).
		WithLogger(loggerAdapter{lgr: app.GetLogger("auth")})

	app.auther = auther

	return nil
}

func NewServer(app *App) *fiber.App {
	acfg := app.Config().GetAuth()
	debug := app.Config().GetApp().GetDebug()

	srv := fiber.New(fiber.Config{
		AppName:      app.Config().GetApp().GetName(),
		ErrorHandler: blog.NewErrorHandler(loggerAdapter{lgr: app.GetLogger("http")}),
	})

	srv.Use(requestlogger.New())

	auther := app.auther.(*blog.Auther)

	provider := blog.NewUserProvider(userTrackerAdapter{users: app.repo.Users()}).
		WithLogger(loggerAdapter{lgr: app.GetLogger("auth:prv")})

	decode := blog.NewDecodeMiddleware(acfg, auther.TokenService(), provider)

	users := blog.NewUsersController(
		app.repo.Users(),
		blog.NewRegisterUserHandler(app.repo),
		app.auther,
		acfg.GetContextKey(),
	).WithLogger(loggerAdapter{lgr: app.GetLogger("ctrl:users")})
	users.Debug = debug

	blogs := blog.NewBlogsController(app.repo.Posts(), acfg.GetContextKey()).
		WithLogger(loggerAdapter{lgr: app.GetLogger("ctrl:blogs")})
	blogs.Debug = debug

	messages := blog.NewMessagesController(app.repo.Messages()).
		WithLogger(loggerAdapter{lgr: app.GetLogger("ctrl:messages")})
	messages.Debug = debug

	blog.RegisterRoutes(srv, acfg.GetContextKey(), decode, users, blogs, messages)

	return srv
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
