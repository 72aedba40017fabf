package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/labasis/labasis-api/docs"
	v1 "github.com/labasis/labasis-api/internal/api/handler/v1"
	"github.com/labasis/labasis-api/internal/api/middleware"
	"github.com/labasis/labasis-api/internal/config"
	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository"
	"github.com/labasis/labasis-api/internal/repository/dao"
	"github.com/labasis/labasis-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	reservationHandler := s.initReservationHandler(db)
	laboratoryHandler := s.initLaboratoryHandler(db)
	teacherHandler := s.initTeacherHandler(db)
	auxiliaryHandler := s.initAuxiliaryHandler(db)
	taskHandler := s.initTaskHandler(db)
	logbookHandler := s.initLogbookHandler(db)
	lostItemHandler := s.initLostItemHandler(db)

	s.MountHandlers(
		authHandler,
		reservationHandler,
		laboratoryHandler,
		teacherHandler,
		auxiliaryHandler,
		taskHandler,
		logbookHandler,
		lostItemHandler,
	)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	users := service.NewUserService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc, users)

	return handler
}

func (s *Server) initReservationHandler(db *gorm.DB) *v1.ReservationHandler {
	reservationRepo := repository.NewReservationRepository(dao.NewReservationDAO(db))
	labRepo := repository.NewLaboratoryRepository(dao.NewLaboratoryDAO(db))
	auxiliaryRepo := repository.NewAuxiliaryRepository(dao.NewAuxiliaryDAO(db))
	svc := service.NewReservationService(reservationRepo, labRepo, auxiliaryRepo)
	handler := v1.NewReservationHandler(svc)

	return handler
}

func (s *Server) initLaboratoryHandler(db *gorm.DB) *v1.LaboratoryHandler {
	labRepo := repository.NewLaboratoryRepository(dao.NewLaboratoryDAO(db))
	auxiliaryRepo := repository.NewAuxiliaryRepository(dao.NewAuxiliaryDAO(db))
	svc := service.NewLaboratoryService(labRepo, auxiliaryRepo)
	handler := v1.NewLaboratoryHandler(svc)

	return handler
}

func (s *Server) initTeacherHandler(db *gorm.DB) *v1.TeacherHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	reservationRepo := repository.NewReservationRepository(dao.NewReservationDAO(db))
	svc := service.NewTeacherService(userRepo, reservationRepo)
	handler := v1.NewTeacherHandler(svc)

	return handler
}

func (s *Server) initAuxiliaryHandler(db *gorm.DB) *v1.AuxiliaryHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	auxiliaryRepo := repository.NewAuxiliaryRepository(dao.NewAuxiliaryDAO(db))
	labRepo := repository.NewLaboratoryRepository(dao.NewLaboratoryDAO(db))
	svc := service.NewAuxiliaryService(userRepo, auxiliaryRepo, labRepo)
	handler := v1.NewAuxiliaryHandler(svc)

	return handler
}

func (s *Server) initTaskHandler(db *gorm.DB) *v1.TaskHandler {
	taskRepo := repository.NewTaskRepository(dao.NewTaskDAO(db))
	labRepo := repository.NewLaboratoryRepository(dao.NewLaboratoryDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewTaskService(taskRepo, labRepo, userRepo)
	handler := v1.NewTaskHandler(svc)

	return handler
}

func (s *Server) initLogbookHandler(db *gorm.DB) *v1.LogbookHandler {
	logbookRepo := repository.NewLogbookRepository(dao.NewLogbookDAO(db))
	labRepo := repository.NewLaboratoryRepository(dao.NewLaboratoryDAO(db))
	svc := service.NewLogbookService(logbookRepo, labRepo)
	handler := v1.NewLogbookHandler(svc)

	return handler
}

func (s *Server) initLostItemHandler(db *gorm.DB) *v1.LostItemHandler {
	lostItemRepo := repository.NewLostItemRepository(dao.NewLostItemDAO(db))
	labRepo := repository.NewLaboratoryRepository(dao.NewLaboratoryDAO(db))
	svc := service.NewLostItemService(lostItemRepo, labRepo)
	handler := v1.NewLostItemHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	reservationHandler *v1.ReservationHandler,
	laboratoryHandler *v1.LaboratoryHandler,
	teacherHandler *v1.TeacherHandler,
	auxiliaryHandler *v1.AuxiliaryHandler,
	taskHandler *v1.TaskHandler,
	logbookHandler *v1.LogbookHandler,
	lostItemHandler *v1.LostItemHandler,
) {
	const basePath = "/api/v1"

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	teacherOnly := middleware.RequireRoles(domain.RoleTeacher)
	adminOrAuxiliary := middleware.RequireRoles(domain.RoleAdmin, domain.RoleAuxiliary)

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/login", authHandler.HandleLogin)
		auth.POST("/auth/register", authHandler.HandleRegister)
		auth.GET("/auth/me", verifyJWT, authHandler.HandleGetMe)
	}

	reservations := s.Router.Group(basePath, verifyJWT)
	{
		reservations.GET("/reservations", reservationHandler.HandleListReservations)
		reservations.GET("/reservations/:reservationID", reservationHandler.HandleGetReservation)
		reservations.POST("/reservations", teacherOnly, reservationHandler.HandleCreateReservation)
		reservations.PATCH("/reservations/:reservationID/approve", adminOnly, reservationHandler.HandleApproveReservation)
		reservations.PATCH("/reservations/:reservationID/reject", adminOnly, reservationHandler.HandleRejectReservation)
		reservations.PATCH("/reservations/:reservationID/cancel", teacherOnly, reservationHandler.HandleCancelReservation)
		reservations.DELETE("/reservations/:reservationID", adminOnly, reservationHandler.HandleDeleteReservation)
	}

	laboratories := s.Router.Group(basePath, verifyJWT)
	{
		laboratories.GET("/laboratories", laboratoryHandler.HandleListLaboratories)
		laboratories.GET("/laboratories/:laboratoryID", laboratoryHandler.HandleGetLaboratory)
		laboratories.POST("/laboratories", adminOnly, laboratoryHandler.HandleCreateLaboratory)
		laboratories.PUT("/laboratories/:laboratoryID", adminOnly, laboratoryHandler.HandleUpdateLaboratory)
		laboratories.DELETE("/laboratories/:laboratoryID", adminOnly, laboratoryHandler.HandleDeleteLaboratory)
	}

	teachers := s.Router.Group(basePath, verifyJWT, adminOnly)
	{
		teachers.GET("/teachers", teacherHandler.HandleListTeachers)
		teachers.GET("/teachers/:teacherID", teacherHandler.HandleGetTeacher)
		teachers.POST("/teachers", teacherHandler.HandleCreateTeacher)
		teachers.PUT("/teachers/:teacherID", teacherHandler.HandleUpdateTeacher)
		teachers.PATCH("/teachers/:teacherID/status", teacherHandler.HandleChangeTeacherStatus)
		teachers.DELETE("/teachers/:teacherID", teacherHandler.HandleDeleteTeacher)
	}

	auxiliaries := s.Router.Group(basePath, verifyJWT, adminOnly)
	{
		auxiliaries.GET("/auxiliaries", auxiliaryHandler.HandleListAuxiliaries)
		auxiliaries.GET("/auxiliaries/:auxiliaryID", auxiliaryHandler.HandleGetAuxiliary)
		auxiliaries.POST("/auxiliaries", auxiliaryHandler.HandleCreateAuxiliary)
		auxiliaries.PUT("/auxiliaries/:auxiliaryID", auxiliaryHandler.HandleUpdateAuxiliary)
		auxiliaries.PATCH("/auxiliaries/:auxiliaryID/status", auxiliaryHandler.HandleChangeAuxiliaryStatus)
		auxiliaries.DELETE("/auxiliaries/:auxiliaryID", auxiliaryHandler.HandleDeleteAuxiliary)
		auxiliaries.PUT("/auxiliaries/:auxiliaryID/laboratories", auxiliaryHandler.HandleAssignLaboratories)
		auxiliaries.PUT("/auxiliaries/:auxiliaryID/schedules", auxiliaryHandler.HandleSetSchedule)
	}

	tasks := s.Router.Group(basePath, verifyJWT, adminOrAuxiliary)
	{
		tasks.GET("/tasks", taskHandler.HandleListTasks)
		tasks.GET("/tasks/:taskID", taskHandler.HandleGetTask)
		tasks.POST("/tasks", adminOnly, taskHandler.HandleCreateTask)
		tasks.PUT("/tasks/:taskID", adminOnly, taskHandler.HandleUpdateTask)
		tasks.PATCH("/tasks/:taskID/complete", taskHandler.HandleCompleteTask)
		tasks.DELETE("/tasks/:taskID", adminOnly, taskHandler.HandleDeleteTask)
	}

	logbooks := s.Router.Group(basePath, verifyJWT, adminOrAuxiliary)
	{
		logbooks.GET("/templates", logbookHandler.HandleListTemplates)
		logbooks.GET("/templates/:templateID", logbookHandler.HandleGetTemplate)
		logbooks.POST("/templates", adminOnly, logbookHandler.HandleCreateTemplate)
		logbooks.PUT("/templates/:templateID", adminOnly, logbookHandler.HandleUpdateTemplate)
		logbooks.DELETE("/templates/:templateID", adminOnly, logbookHandler.HandleDeleteTemplate)

		logbooks.GET("/logbooks", logbookHandler.HandleListLogbooks)
		logbooks.GET("/logbooks/:logbookID", logbookHandler.HandleGetLogbook)
		logbooks.POST("/logbooks", logbookHandler.HandleCreateLogbook)
		logbooks.PUT("/logbooks/:logbookID", logbookHandler.HandleUpdateLogbook)
		logbooks.PATCH("/logbooks/:logbookID/complete", logbookHandler.HandleCompleteLogbook)
		logbooks.DELETE("/logbooks/:logbookID", adminOnly, logbookHandler.HandleDeleteLogbook)
	}

	lostItems := s.Router.Group(basePath, verifyJWT, adminOrAuxiliary)
	{
		lostItems.GET("/lost-items", lostItemHandler.HandleListLostItems)
		lostItems.GET("/lost-items/:itemID", lostItemHandler.HandleGetLostItem)
		lostItems.POST("/lost-items", lostItemHandler.HandleCreateLostItem)
		lostItems.PUT("/lost-items/:itemID", lostItemHandler.HandleUpdateLostItem)
		lostItems.PATCH("/lost-items/:itemID/deliver", lostItemHandler.HandleDeliverLostItem)
		lostItems.DELETE("/lost-items/:itemID", adminOnly, lostItemHandler.HandleDeleteLostItem)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Laboratory Reservation API"
	docs.SwaggerInfo.Description = "Backend for university teaching-lab reservations and operations."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
