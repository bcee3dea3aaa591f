package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/gorilla/mux"

	"github.com/inamate/canvas/internal/asset"
	"github.com/inamate/canvas/internal/auth"
	"github.com/inamate/canvas/internal/board"
	"github.com/inamate/canvas/internal/config"
	"github.com/inamate/canvas/internal/document"
	mw "github.com/inamate/canvas/internal/middleware"
	"github.com/inamate/canvas/internal/session"
	"github.com/inamate/canvas/internal/store"
	"github.com/inamate/canvas/internal/typeid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	authService := auth.NewService(cfg.JWTSecret)

	// Sessions load and save outside any request, so they use their own contexts.
	loader := func(ctx context.Context, boardID string) (*document.Envelope, error) {
		snap, err := st.LatestSnapshot(ctx, boardID)
		if err != nil {
			return nil, err
		}
		return &snap.Document, nil
	}
	hub := session.NewHub(loader, st.SaveSnapshot,
		session.WithAutosave(cfg.AutosaveInterval),
		session.WithEngineOptions(cfg.EngineOptions()...),
	)
	go hub.Run()

	boardHandler := board.NewHandler(board.NewService(st, hub))
	assetHandler := asset.NewHandler(cfg.AssetDir)

	r := mux.NewRouter()

	r.Use(mw.Recovery)
	r.Use(mw.Logger)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.PathPrefix("/assets/").Handler(assetHandler.Serve()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)
	boardHandler.Routes(api)
	api.HandleFunc("/assets", assetHandler.Upload).Methods("POST")

	acceptOpts := &websocket.AcceptOptions{OriginPatterns: originHosts(cfg.Origins())}
	r.HandleFunc("/ws/board/{boardId}", func(w http.ResponseWriter, r *http.Request) {
		// Browsers cannot set headers on websocket requests, so the token rides in the query.
		subject, err := authService.ValidateToken(r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		boardID := mux.Vars(r)["boardId"]
		if err := typeid.Validate(boardID, typeid.PrefixBoard); err != nil {
			http.Error(w, "board not found", http.StatusNotFound)
			return
		}
		hub.ServeBoard(w, r, boardID, subject, acceptOpts)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		// CORS wraps the router so preflight requests never reach route matching.
		Handler:      mw.CORS(cfg.Origins())(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Save dirty boards before connections drop.
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "database", redact(cfg.DatabaseURL))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// originHosts turns origins such as http://localhost:5173 into the host
// patterns the websocket handshake matches against.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			hosts = append(hosts, u.Host)
			continue
		}
		hosts = append(hosts, o)
	}
	return hosts
}

func redact(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}
