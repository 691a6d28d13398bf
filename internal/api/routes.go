package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"stepResume/internal/api/middleware"
	"stepResume/internal/storage"
	"stepResume/internal/store"
	"stepResume/internal/workflow"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	blobs store.Store,
	asynqClient *asynq.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
	clamdAddr string,
	internalSecret string,
	allowedOrigins []string,
) {
	draftHandler := NewDraftHandler(blobs, asynqClient, storageClient)
	workflowHandler := NewWorkflowHandler(workflow.NewEngine(blobs))
	attachmentHandler := NewAttachmentHandler(storageClient, redisClient, logger, clamdAddr)
	wsHandler := NewWsHandler(redisClient, logger, allowedOrigins)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		draftGroup := v1.Group("/draft")
		{
			draftGroup.GET("", draftHandler.GetDraft)
			draftGroup.PUT("", draftHandler.PutDraft)
			draftGroup.POST("/sample", draftHandler.LoadSample)
			draftGroup.GET("/score", draftHandler.GetScore)
			draftGroup.GET("/export/text", draftHandler.ExportText)
			draftGroup.GET("/sections", draftHandler.GetSections)
			draftGroup.POST("/export", draftHandler.EnqueueExport)
			draftGroup.GET("/export/download", draftHandler.DownloadExport)
			draftGroup.GET("/export/download-link", draftHandler.GetDownloadLink)
		}

		stepGroup := v1.Group("/steps")
		{
			stepGroup.GET("", workflowHandler.ListSteps)
			stepGroup.GET("/active", workflowHandler.GetActive)
			stepGroup.GET("/:ordinal", workflowHandler.GetStep)
			stepGroup.PUT("/:ordinal/artifact", workflowHandler.CommitArtifact)
		}

		submissionGroup := v1.Group("/submission")
		{
			submissionGroup.GET("/links", workflowHandler.GetLinks)
			submissionGroup.PATCH("/links", workflowHandler.PatchLinks)
			submissionGroup.GET("/summary", workflowHandler.GetSummary)
		}

		v1.GET("/template", draftHandler.GetTemplate)
		v1.PUT("/template", draftHandler.PutTemplate)

		attachmentGroup := v1.Group("/attachments")
		{
			attachmentGroup.POST("", attachmentHandler.UploadAttachment)
			attachmentGroup.GET("", attachmentHandler.ListAttachments)
			attachmentGroup.GET("/view", attachmentHandler.GetAttachmentURL)
		}

		internalGroup := v1.Group("/internal")
		internalGroup.Use(middleware.InternalSecretMiddleware(internalSecret))
		{
			internalGroup.GET("/print-data", draftHandler.InternalPrintData)
		}
	}
}
