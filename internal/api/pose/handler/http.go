package poseHandler

import (
	poseService "PoseVision/internal/api/pose/service"
	"PoseVision/internal/middleware"
	"PoseVision/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type PoseHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	poseService poseService.IPoseService
	utils       utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ps poseService.IPoseService,
	utils utils.IUtils,
) *PoseHandler {
	return &PoseHandler{
		poseService: ps,
		log:         log,
		validator:   validator,
		middleware:  middleware,
		utils:       utils,
	}
}

func (h *PoseHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	pose := srv.Group("/pose")
	pose.Use("/ws", wsMiddleware)
	pose.Get("/ws", websocket.New(h.handlePoseWebSocket))
	pose.Post("/detect", h.middleware.NewRateLimiter, h.DetectPose)
}
