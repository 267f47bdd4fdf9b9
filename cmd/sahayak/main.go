// Sahayak - RAG assistant for an Indian agricultural equipment platform.
// Entry point: flag parsing, dependency wiring, graceful shutdown.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/agritechlabs/sahayak/internal/api"
	"github.com/agritechlabs/sahayak/internal/domain/rag"
	"github.com/agritechlabs/sahayak/internal/domain/retrieval"
	"github.com/agritechlabs/sahayak/internal/domain/session"
	"github.com/agritechlabs/sahayak/internal/infra/config"
	"github.com/agritechlabs/sahayak/internal/infra/docstore"
	"github.com/agritechlabs/sahayak/internal/infra/llm"
	"github.com/agritechlabs/sahayak/internal/infra/pinecone"
	"github.com/agritechlabs/sahayak/internal/infra/redisclient"
	"github.com/agritechlabs/sahayak/internal/server"
	"github.com/agritechlabs/sahayak/internal/version"
	pkgauth "github.com/agritechlabs/sahayak/pkg/auth"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("sahayak", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	configPath := fs.String("config", "config.yaml", "Path to the YAML config file")
	showVersion := fs.Bool("version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(out, "config error: %v\n", err) //nolint:errcheck
		return 1
	}

	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(out, "logger error: %v\n", err) //nolint:errcheck
		return 1
	}
	defer log.Sync() //nolint:errcheck

	if err := serve(cfg, log); err != nil {
		log.Error("fatal", zap.Error(err))
		return 1
	}
	return 0
}

// serve wires all dependencies and runs the HTTP server until SIGINT/SIGTERM.
func serve(cfg *config.Config, log *zap.Logger) error {
	tokens, err := pkgauth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.JWTExpiryHours)*time.Hour)
	if err != nil {
		return fmt.Errorf("auth setup: %w", err)
	}

	gemini := llm.NewGeminiProvider(cfg.LLM.Gemini.BaseURL, cfg.LLM.Gemini.APIKey,
		cfg.LLM.Gemini.Model, cfg.LLM.Gemini.EmbedModel, cfg.LLM.RequestTimeout())
	ollama := llm.NewOllamaProvider(cfg.LLM.Ollama.BaseURL, cfg.LLM.Ollama.Model, cfg.LLM.RequestTimeout())
	groq := llm.NewGroqProvider(cfg.LLM.Groq.BaseURL, cfg.LLM.Groq.APIKey,
		cfg.LLM.Groq.Model, cfg.LLM.RequestTimeout())

	registry := llm.NewRegistry(
		llm.Entry{
			Descriptor: llm.Descriptor{
				Name: "gemini", Rank: 0, Kind: llm.KindHostedCloud,
				Model:   cfg.LLM.Gemini.Model,
				Enabled: cfg.LLM.Gemini.Enabled && cfg.LLM.Gemini.APIKey != "",
			},
			Provider: gemini,
		},
		llm.Entry{
			Descriptor: llm.Descriptor{
				Name: "ollama", Rank: 1, Kind: llm.KindSelfHostedLocal,
				Model:   cfg.LLM.Ollama.Model,
				Enabled: cfg.LLM.Ollama.Enabled,
			},
			Provider: ollama,
		},
		llm.Entry{
			Descriptor: llm.Descriptor{
				Name: "groq", Rank: 2, Kind: llm.KindCloudFallback,
				Model:   cfg.LLM.Groq.Model,
				Enabled: cfg.LLM.Groq.Enabled && cfg.LLM.Groq.APIKey != "",
			},
			Provider: groq,
		},
	)
	selector := llm.NewSelector(registry, cfg.LLM.ProbeTimeout(), log)

	retriever, err := newRetriever(cfg, gemini, log)
	if err != nil {
		return fmt.Errorf("retrieval setup: %w", err)
	}

	var memory rag.SummaryMemory
	if cfg.Redis.Enabled {
		rdb, redisErr := redisclient.New(redisclient.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if redisErr != nil {
			return fmt.Errorf("redis setup: %w", redisErr)
		}
		defer rdb.Close() //nolint:errcheck
		memory = session.NewStore(session.RedisKV{Client: rdb}, 0)
		log.Info("session memory enabled", zap.String("addr", cfg.Redis.Addr))
	}

	currency := rag.Currency{Symbol: cfg.Chat.CurrencySymbol, ConversionRate: cfg.Chat.ConversionRate}
	chatSvc := rag.NewChatService(
		retriever,
		selector,
		rag.NewComposer(currency, cfg.Chat.SupportPersona),
		rag.NewSynthesizer(currency),
		memory,
		rag.GenerationParams{Temperature: cfg.LLM.Temperature, MaxTokens: cfg.LLM.MaxTokens},
		log,
	)

	var localModels llm.ModelManager
	if cfg.LLM.Ollama.Enabled {
		localModels = ollama
	}

	srvConfig := server.DefaultConfig()
	srvConfig.Host = cfg.Server.Host
	srvConfig.Port = cfg.Server.Port
	srv := server.NewServer(api.Deps{
		Log:         log,
		Tokens:      tokens,
		Users:       cfg.Auth.Users,
		Chat:        chatSvc,
		Selector:    selector,
		LocalModels: localModels,
	}, srvConfig)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if serveErr := srv.Start(ctx); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	select {
	case <-ctx.Done():
	case serveErr := <-errCh:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRetriever builds the configured retrieval backend.
func newRetriever(cfg *config.Config, embedder pinecone.Embedder, log *zap.Logger) (retrieval.Retriever, error) {
	switch cfg.Retrieval.Backend {
	case "pinecone":
		client, err := pinecone.New(pinecone.Config{APIKey: cfg.Retrieval.Pinecone.APIKey})
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return pinecone.NewRetriever(ctx, client, embedder, pinecone.RetrieverConfig{
			IndexName: cfg.Retrieval.Pinecone.IndexName,
			IndexHost: cfg.Retrieval.Pinecone.IndexHost,
			Namespace: cfg.Retrieval.Pinecone.Namespace,
			TopK:      cfg.Retrieval.TopK,
		})
	case "sqlite":
		return docstore.OpenSQLite(cfg.Retrieval.SQLitePath, cfg.Retrieval.TopK)
	case "memory":
		log.Warn("using in-memory retrieval backend; documents do not persist")
		return docstore.NewMemoryStore(cfg.Retrieval.TopK), nil
	default:
		return nil, fmt.Errorf("unknown retrieval backend %q", cfg.Retrieval.Backend)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
