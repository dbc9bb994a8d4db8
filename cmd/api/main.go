package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Asistencia-api/internal/application/attendance"
	"github.com/jhoicas/Asistencia-api/internal/application/auth"
	"github.com/jhoicas/Asistencia-api/internal/application/leave"
	"github.com/jhoicas/Asistencia-api/internal/application/report"
	"github.com/jhoicas/Asistencia-api/internal/application/usecase"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Asistencia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Asistencia-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Asistencia-api/internal/interfaces/http"
	"github.com/jhoicas/Asistencia-api/internal/observability/metrics"
	"github.com/jhoicas/Asistencia-api/pkg/clock"
	"github.com/jhoicas/Asistencia-api/pkg/config"
	"github.com/jhoicas/Asistencia-api/pkg/logger"
)

// stores puertos de persistencia según APP_STORAGE.
type stores struct {
	users    repository.UserRepository
	records  repository.AttendanceRepository
	leaves   repository.LeaveRequestRepository
	tx       repository.LeaveTxRunner
	sessions repository.SessionRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Str("timezone", cfg.Org.Timezone).
		Msg("iniciando aplicación")

	loc, err := cfg.Org.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}
	clk := clock.New(loc)

	ctx := context.Background()
	var st stores
	switch cfg.App.Storage {
	case config.StorageMemory:
		mem := memory.NewStore()
		st = stores{users: mem.Users(), records: mem.Attendance(), leaves: mem.Leaves(), tx: mem, sessions: memory.NewSessionStore()}
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.Migrate {
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Strs("applied", applied).Msg("migraciones al día")
		}
		st = stores{
			users:   postgres.NewUserRepository(pool),
			records: postgres.NewAttendanceRepository(pool),
			leaves:  postgres.NewLeaveRequestRepository(pool),
			tx:      postgres.NewTxRunner(pool),
		}
	}

	// Sesiones revocables solo con Redis (o en memoria, proceso único).
	if cfg.Redis.Enabled() {
		redisStore, err := infraredis.NewSessionStore(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisStore.Close()
		st.sessions = redisStore
	}

	var (
		recorder     *metrics.Recorder
		clockMetrics attendance.Metrics
		leaveMetrics leave.Metrics
	)
	if cfg.Metrics.Enabled {
		recorder = metrics.New("asistencia")
		clockMetrics = recorder
		leaveMetrics = recorder
	}

	authUC := auth.NewAuthUseCase(st.users, st.sessions, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL(),
		Issuer: cfg.JWT.Issuer,
	}, log)
	attendanceUC := attendance.NewUseCase(st.users, st.records, clk, clockMetrics, log)
	leaveUC := leave.NewUseCase(st.users, st.leaves, st.tx, clk, leaveMetrics, log)
	userUC := usecase.NewUserUseCase(st.users, clk, log)
	reportUC := report.NewUseCase(st.users, st.records, st.leaves, clk, infrapdf.NewMarotoPDFGenerator(cfg.App.Name), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	if recorder != nil {
		app.Use(recorder.Middleware())
		app.Get("/metrics", recorder.Handler())
	}

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el swagger.json generado)
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Asistencia API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "time": clk.Now()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		AttendanceUC: attendanceUC,
		LeaveUC:      leaveUC,
		UserUC:       userUC,
		ReportUC:     reportUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
