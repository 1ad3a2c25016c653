package router

import (
	"context"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/config"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, cfg *config.Config,
	scoreHandler *handler.ScoreHandler, parseHandler *handler.ParseHandler) {

	// 健康检查不走鉴权
	h.GET("/api/v1/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	api := h.Group("/api/v1")

	// API Key鉴权，未配置key时关闭
	if cfg.Auth.APIKey != "" {
		api.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:X-API-Key", ""),
			keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, key string) (bool, error) {
				return key == cfg.Auth.APIKey, nil
			}),
		))
	}

	api.POST("/ats/score", func(c context.Context, ctx *app.RequestContext) {
		resumeText, ok := readTextUpload(ctx, "resume")
		if !ok {
			return
		}
		jdText, ok := readTextUpload(ctx, "jd")
		if !ok {
			return
		}

		resp, err := scoreHandler.HandleScore(c, resumeText, jdText)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/resume/parse", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}
		if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "仅支持PDF文件"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "读取文件失败"})
			return
		}

		result, err := parseHandler.HandleParse(c, fileHeader.Filename, data)
		if err != nil {
			ctx.JSON(consts.StatusUnprocessableEntity, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, result)
	})

	api.GET("/evaluations", func(c context.Context, ctx *app.RequestContext) {
		limit, _ := strconv.Atoi(ctx.Query("limit"))
		offset, _ := strconv.Atoi(ctx.Query("offset"))

		resp, err := scoreHandler.ListEvaluations(c, limit, offset)
		if err != nil {
			if err == handler.ErrStoreUnavailable {
				ctx.JSON(consts.StatusServiceUnavailable, utils.H{"error": "评估存储未配置"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})
}

// readTextUpload 读取一个.txt的multipart上传字段，校验失败时直接写响应
func readTextUpload(ctx *app.RequestContext, field string) (string, bool) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "缺少上传字段: " + field})
		return "", false
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".txt") {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": field + " 仅支持.txt文件"})
		return "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
		return "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "读取文件失败"})
		return "", false
	}
	return string(data), true
}
