package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/openplanhq/trackd/internal/application/identifier"
	"github.com/openplanhq/trackd/internal/application/invitation"
	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/application/project"
	"github.com/openplanhq/trackd/internal/application/ticket"
	"github.com/openplanhq/trackd/internal/application/user"
	"github.com/openplanhq/trackd/internal/config"
	httprouter "github.com/openplanhq/trackd/internal/infrastructure/http"
	"github.com/openplanhq/trackd/internal/infrastructure/http/handlers"
	"github.com/openplanhq/trackd/internal/infrastructure/http/middleware"
	"github.com/openplanhq/trackd/internal/infrastructure/mail"
	"github.com/openplanhq/trackd/internal/infrastructure/persistence/db"
	"github.com/openplanhq/trackd/internal/infrastructure/persistence/postgres"
	"github.com/openplanhq/trackd/internal/infrastructure/queue"
	"github.com/openplanhq/trackd/internal/infrastructure/token"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without background sends")
			redisClient = nil
		}
	}

	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	queries := db.New(pool)
	projectRepo := postgres.NewProjectRepository(queries)
	userRepo := postgres.NewUserRepository(queries)
	invitationRepo := postgres.NewInvitationRepository(queries)
	membershipRepo := postgres.NewMembershipRepository(queries)
	sequenceRepo := postgres.NewSequenceRepository(queries)
	ticketRepo := postgres.NewTicketRepository(queries)

	var taskEnqueuer ports.TaskEnqueuer
	var asynqWorker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqEnq, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer asynqEnq.Close()
		taskEnqueuer = asynqEnq

		var mailer queue.Mailer
		if cfg.Mail.SendGridAPIKey != "" {
			mailer = mail.NewSendGridClient(cfg.Mail.SendGridAPIKey, cfg.Mail.FromEmail, cfg.Mail.FromName)
		}
		asynqWorker = queue.NewWorker(asynqOpt, mailer, cfg.Invitation.AcceptBaseURL, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		taskEnqueuer = queue.NewNoopEnqueuer()
	}

	tokens := token.NewGenerator()
	allocator := identifier.NewAllocator(sequenceRepo, log)
	ttl := time.Duration(cfg.Invitation.ExpiryDays) * 24 * time.Hour

	createInvitationUC := invitation.NewCreate(invitationRepo, projectRepo, userRepo, membershipRepo, tokens, taskEnqueuer, ttl)
	resendUC := invitation.NewResend(invitationRepo, projectRepo, taskEnqueuer, ttl)
	getByTokenUC := invitation.NewGetByToken(invitationRepo)
	acceptUC := invitation.NewAccept(invitationRepo, userRepo, membershipRepo)
	declineUC := invitation.NewDecline(invitationRepo)
	listPendingUC := invitation.NewListPending(invitationRepo)
	createTaskUC := ticket.NewCreateTask(ticketRepo, projectRepo, allocator)
	createIncidentUC := ticket.NewCreateIncident(ticketRepo, projectRepo, allocator)
	listTicketsUC := ticket.NewListByProject(ticketRepo, projectRepo)
	createProjectUC := project.NewCreateProject(projectRepo)
	getProjectUC := project.NewGetProject(projectRepo)
	listMembersUC := project.NewListMembers(projectRepo, membershipRepo, userRepo)
	createUserUC := user.NewCreateUser(userRepo)

	invitationsHandler := handlers.NewInvitationsHandler(createInvitationUC, resendUC, getByTokenUC, acceptUC, declineUC, listPendingUC, log)
	ticketsHandler := handlers.NewTicketsHandler(createTaskUC, createIncidentUC, listTicketsUC, log)
	projectsHandler := handlers.NewProjectsHandler(getProjectUC, listMembersUC, log)
	adminHandler := handlers.NewAdminHandler(createProjectUC, createUserUC, log)
	requireAdmin := middleware.RequireAdminSecret(cfg.Admin.Secret)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))
	corsMiddleware := middleware.CORS(nil, nil, nil)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		InvitationsHandler: invitationsHandler,
		TicketsHandler:     ticketsHandler,
		ProjectsHandler:    projectsHandler,
		AdminHandler:       adminHandler,
		HealthHandler:      healthHandler,
		RequireAdmin:       requireAdmin,
		Log:                log,
		Secure:             secureMiddleware,
		CORS:               corsMiddleware,
		IPRateLimit:        ipLimit,
		Metrics:            true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
