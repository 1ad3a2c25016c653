package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/api/router"
	"resume-match-go/internal/config"
	appCoreLogger "resume-match-go/internal/logger"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/nlp"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/scorer"
	"resume-match-go/internal/storage"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/spf13/pflag"

	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
)

// @title Resume Match API
// @version 1.0
// @description Resume-to-JD matching and parsing service.
// @BasePath /api/v1
func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("加载配置失败: %v", err)
	}

	initLogger(cfg)
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()
	glog.Info("存储服务初始化成功")

	// NLP组件，未配置API密钥时全部降级为nil
	var (
		tagger     nlp.Tagger
		similarity nlp.SimilarityProvider
		thesaurus  nlp.Thesaurus
	)
	if cfg.Aliyun.APIKey != "" {
		if t, err := nlp.NewAliyunNLUTagger(cfg.Aliyun.APIKey, cfg.Aliyun.NLU); err != nil {
			glog.Warnf("初始化NLU标注器失败，实体识别降级为纯规则: %v", err)
		} else {
			tagger = t
		}

		embedder, err := nlp.NewAliyunEmbedder(cfg.Aliyun.APIKey, cfg.Aliyun.Embedding)
		if err != nil {
			glog.Warnf("初始化Embedder失败，语义分降级为0: %v", err)
		} else if sim, err := nlp.NewEmbeddingSimilarity(embedder); err != nil {
			glog.Warnf("初始化语义相似度失败: %v", err)
		} else {
			similarity = sim
		}
	} else {
		glog.Info("未配置Aliyun API密钥，NER与语义相似度均关闭")
	}

	if cfg.Thesaurus.Enabled {
		if th, err := nlp.NewDatamuseThesaurus(cfg.Thesaurus); err != nil {
			glog.Warnf("初始化同义词服务失败: %v", err)
		} else {
			thesaurus = th
		}
	}

	// 文本处理流水线
	normalizer := parser.NewTextNormalizer(ctx, parser.DefaultSkillSynonyms(), thesaurus)
	keywordExtractor := matcher.NewKeywordExtractor(normalizer, tagger)
	atsScorer := scorer.NewATSScorer(similarity, keywordExtractor, cfg.Matcher.FuzzyThreshold, cfg.Scorer.CriticalSkills)

	pdfExtractor, err := parser.NewEinoPDFTextExtractor(ctx)
	if err != nil {
		glog.Fatalf("创建PDF提取器失败: %v", err)
	}

	procOpts := []processor.Option{
		processor.WithPDFExtractor(pdfExtractor),
		processor.WithCleaner(parser.NewTextCleaner(cfg.Cleaner.EnableOCRFixes)),
		processor.WithEntityExtractor(parser.NewEntityExtractor(tagger, nil)),
		processor.WithMaxFileSizeMB(cfg.Upload.MaxFileSizeMB),
		processor.WithBatchConcurrency(cfg.Processor.BatchConcurrency),
	}
	if storageManager.Redis != nil {
		procOpts = append(procOpts, processor.WithParseCache(storage.NewParseResultCache(storageManager.Redis)))
		glog.Info("解析结果缓存已启用 (Redis)")
	}
	resumeProcessor := processor.NewResumeProcessor(procOpts...)
	glog.Info("ResumeProcessor初始化成功")

	scoreHandler := handler.NewScoreHandler(atsScorer, storageManager)
	parseHandler := handler.NewParseHandler(resumeProcessor, storageManager)

	h := server.Default(
		server.WithHostPorts(cfg.Server.Address),
	)
	router.RegisterRoutes(h, cfg, scoreHandler, parseHandler)

	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()
	glog.Infof("服务已启动，监听 %s", cfg.Server.Address)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appCoreLogger.Info().Msg("接收到终止信号，正在优雅退出...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		appCoreLogger.Error().Err(err).Msg("服务器关闭失败")
	}
	appCoreLogger.Info().Msg("优雅退出完成")
}

// initLogger 初始化zerolog全局日志并接管Hertz的日志输出
func initLogger(cfg *config.Config) {
	logConfig := appCoreLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	}
	if logConfig.Level == "" {
		logConfig.Level = "info"
	}
	if logConfig.TimeFormat == "" {
		logConfig.TimeFormat = time.RFC3339
	}
	appCoreLogger.Init(logConfig)

	appCoreLogger.Logger = appCoreLogger.Logger.With().
		Str("app", "resume-match-go").
		Logger()

	// Hertz框架日志走同一个zerolog实例
	glog.SetLogger(hertzadapter.From(appCoreLogger.Logger))
}
