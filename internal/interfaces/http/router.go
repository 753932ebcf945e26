// Package http wires the number lifecycle service into a gin engine.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	auditusecases "numbers/internal/application/audit/usecases"
	"numbers/internal/application/number/services"
	"numbers/internal/application/number/usecases"
	"numbers/internal/infrastructure/auth"
	"numbers/internal/infrastructure/config"
	"numbers/internal/infrastructure/directory"
	"numbers/internal/infrastructure/notification"
	"numbers/internal/infrastructure/pubsub"
	"numbers/internal/infrastructure/repository"
	"numbers/internal/interfaces/http/handlers"
	"numbers/internal/interfaces/http/middleware"
	"numbers/internal/interfaces/http/routes"
	"numbers/internal/shared/db"
	"numbers/internal/shared/logger"
)

// Router owns the gin engine and the fully wired handler graph.
type Router struct {
	engine         *gin.Engine
	numberHandler  *handlers.NumberHandler
	auditHandler   *handlers.AuditHandler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(database *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	jwtService := auth.NewJWTService(cfg.Auth.JWT)

	numberRepo := repository.NewNumberRepository(database)
	assignmentRepo := repository.NewAssignmentRepository(database)
	revisionRepo := repository.NewRevisionRepository(database)
	txMgr := db.NewTransactionManager(database)

	accountDirectory := directory.NewHTTPDirectory(cfg.Directory, jwtService, log)
	authorizer := services.NewReassignAuthorizer(
		directory.NewCachedDirectory(accountDirectory, redisClient, cfg.Directory, log),
		nil,
		log,
	)
	graceChecker := services.NewGraceOwnerChecker(revisionRepo)

	publisher := pubsub.NewRedisLifecycleEventBus(redisClient, cfg.Notification.EventChannel, log)
	tollFree := notification.NewSlackTollFreeNotifier(cfg.Notification, log)

	gracePeriod := time.Duration(cfg.Numbers.GracePeriodDays) * 24 * time.Hour

	numberHandler := handlers.NewNumberHandler(
		usecases.NewRegisterNumberUseCase(numberRepo, log),
		usecases.NewGetNumberUseCase(numberRepo, assignmentRepo, log),
		usecases.NewListNumbersUseCase(numberRepo, assignmentRepo, log),
		usecases.NewUpdateNumberUseCase(numberRepo, assignmentRepo, tollFree, txMgr, log),
		usecases.NewDeleteNumberUseCase(numberRepo, assignmentRepo, txMgr, log),
		usecases.NewAssignNumberUseCase(numberRepo, assignmentRepo, graceChecker, publisher, tollFree, txMgr, log),
		usecases.NewReassignNumberUseCase(numberRepo, assignmentRepo, authorizer, publisher, txMgr, log),
		usecases.NewDisassociateNumberUseCase(numberRepo, assignmentRepo, publisher, txMgr, gracePeriod, log),
		usecases.NewGetAssignmentUseCase(numberRepo, assignmentRepo, log),
		usecases.NewUpdateAssignmentUseCase(numberRepo, assignmentRepo, txMgr, log),
		usecases.NewListNumberAssignmentsUseCase(numberRepo, assignmentRepo, log),
	)

	auditHandler := handlers.NewAuditHandler(
		auditusecases.NewListAssignmentAuditsUseCase(revisionRepo, log),
	)

	return &Router{
		engine:         engine,
		numberHandler:  numberHandler,
		auditHandler:   auditHandler,
		authMiddleware: middleware.NewAuthMiddleware(jwtService, log),
	}
}

func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(logger.NewLogger()))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.SetupNumberRoutes(r.engine, &routes.NumberRouteConfig{
		NumberHandler:  r.numberHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupAuditRoutes(r.engine, &routes.AuditRouteConfig{
		AuditHandler:   r.auditHandler,
		AuthMiddleware: r.authMiddleware,
	})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
