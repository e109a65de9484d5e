package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/api/handler"
)

// RegisterRoutes 注册所有API路由。
// authMiddleware 只作用于业务路由组，健康检查不需要鉴权。
func RegisterRoutes(h *server.Hertz, suggestionHandler *handler.SuggestionHandler, authMiddleware ...app.HandlerFunc) {
	// API v1 路由组
	v1 := h.Group("/api/v1", authMiddleware...)
	{
		// 岗位候选人推荐
		v1.GET("/organizations/:org_id/jobs/:job_id/suggestions", suggestionHandler.HandleGetSuggestions)
	}

	// 健康检查
	healthCheck := func(ctx context.Context, c *app.RequestContext) {
		c.JSON(consts.StatusOK, map[string]string{
			"status":  "ok",
			"service": "minterviewer-matcher",
		})
	}
	h.GET("/health", healthCheck)
	h.GET("/api/v1/health", healthCheck)
}
