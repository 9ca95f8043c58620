package main

import (
	"context"
	"net/http"
	"os"

	"pulse-core-targeting-api/internal/application"
	"pulse-core-targeting-api/internal/infrastructure/api"
	appmiddleware "pulse-core-targeting-api/internal/infrastructure/middleware"
	"pulse-core-targeting-api/internal/infrastructure/repository"
	"pulse-core-targeting-api/internal/infrastructure/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: .env file not found")
	}

	// Get configuration from environment
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(os.Getenv("MONGODB_DATABASE"))

	// Connect to Redis
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid REDIS_URL")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Initialize repositories
	companyRepo := repository.NewMongoCompanyRepository(db)
	personRepo := repository.NewMongoPersonRepository(db)
	pathRepo := repository.NewMongoIntegrationPathRepository(db)
	templateRepo := repository.NewMongoTemplateRepository(db)
	questionRepo := repository.NewMongoQuestionRepository(db)
	answerRepo := repository.NewMongoAnswerRepository(db)
	adRepo := repository.NewMongoAdRepository(db)
	adDataRepo := repository.NewMongoAdDataRepository(db)
	targetGroupRepo := repository.NewMongoTargetGroupRepository(db)
	analyticsRepo := repository.NewMongoAnalyticsRepository(db)
	analysisRepo := repository.NewMongoAnalysisRepository(db)

	sessionStore := session.NewRedisStore(redisClient)

	// Initialize application services
	personService := application.NewPersonService(personRepo, logger)
	companyService := application.NewCompanyService(companyRepo, logger)
	answerService := application.NewAnswerService(personRepo, questionRepo, templateRepo, answerRepo, logger)
	questionService := application.NewQuestionService(
		personRepo,
		companyRepo,
		pathRepo,
		questionRepo,
		templateRepo,
		answerRepo,
		answerService,
		logger,
	)
	targetGroupService := application.NewTargetGroupService(targetGroupRepo, answerRepo, logger)
	adService := application.NewAdService(personRepo, pathRepo, adRepo, adDataRepo, targetGroupService, logger)
	analyticsService := application.NewAnalyticsService(companyRepo, pathRepo, analyticsRepo, analysisRepo, logger)

	widgetHandler := api.NewWidgetHandler(
		personService,
		companyService,
		questionService,
		answerService,
		adService,
		analyticsService,
		logger,
	)

	// A development session lets the widget routes be exercised without the
	// domain-confirmation flow that normally mints sessions.
	if companyID := os.Getenv("DEV_COMPANY_ID"); companyID != "" {
		sessionID := uuid.NewString()
		if err := sessionStore.Set(context.Background(), sessionID, companyID, appmiddleware.SessionTTL); err != nil {
			logger.Fatal().Err(err).Msg("Failed to create development session")
		}
		logger.Info().Str("session_id", sessionID).Msg("Development session created")
	}

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appmiddleware.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(appmiddleware.SecurityHeaders())
	r.Use(appmiddleware.Metrics())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	// Widget routes, behind session resolution
	r.Group(func(r chi.Router) {
		r.Use(appmiddleware.Session(sessionStore, logger))
		widgetHandler.Register(r)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("Starting API server")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
