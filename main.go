package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	auth "Ferrex/internal/auth"
	batch "Ferrex/internal/calc/batch"
	importer "Ferrex/internal/calc/importer"
	optimize "Ferrex/internal/calc/optimize"
	recommend "Ferrex/internal/calc/recommend"
	report "Ferrex/internal/calc/report"
	selection "Ferrex/internal/calc/selection"
	separator "Ferrex/internal/calc/separator"
	tramp "Ferrex/internal/calc/tramp"
	quote "Ferrex/internal/quote"
	repo "Ferrex/internal/repo"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB) {
	pgRepo := repo.NewPostgresDB(db)
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: pgRepo}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	trampH := &tramp.Handler{}
	separatorH := &separator.Handler{}
	recommendH := &recommend.Handler{}
	optimizeH := &optimize.Handler{}
	batchH := &batch.Handler{}
	importerH := &importer.Handler{}
	reportH := &report.Handler{}
	selectionH := &selection.Handler{Repo: pgRepo}
	quoteH := &quote.Handler{Repo: pgRepo}

	secureApi.HandleFunc("/tools/pickup/calc", trampH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/pickup/batch", batchH.Pickup).Methods("POST")
	secureApi.HandleFunc("/tools/pickup/import", importerH.Pickup).Methods("POST")
	secureApi.HandleFunc("/tools/separator/calc", separatorH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/separator/enhanced", separatorH.CalcEnhanced).Methods("POST")
	secureApi.HandleFunc("/tools/separator/optimize", optimizeH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/recommend", recommendH.Pick).Methods("POST")
	secureApi.HandleFunc("/tools/selection", selectionH.Select).Methods("POST")
	secureApi.HandleFunc("/tools/report/datasheet", reportH.Datasheet).Methods("POST")

	secureApi.HandleFunc("/quotes", quoteH.Create).Methods("POST")
	secureApi.HandleFunc("/quotes", quoteH.List).Methods("GET")
	secureApi.HandleFunc("/quotes/{id:[0-9]+}", quoteH.Get).Methods("GET")
	secureApi.HandleFunc("/quotes/{id:[0-9]+}", quoteH.Delete).Methods("DELETE")

	secureApi.HandleFunc("/configs", quoteH.SaveConfig).Methods("POST")
	secureApi.HandleFunc("/configs", quoteH.ListConfigs).Methods("GET")
	secureApi.HandleFunc("/configs/{id:[0-9]+}", quoteH.GetConfig).Methods("GET")

	authFileServer := http.FileServer(http.Dir("./static/auth"))
	mux.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	mainFileServer := http.FileServer(http.Dir("./static/main"))
	mux.PathPrefix("/").
		Handler(mainFileServer)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db := auth.InitDB()
	defer db.Close()
	mux := mux.NewRouter()
	log.Println("Starting server on :443")
	HandleList(mux, db)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    ":443",
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS("server.crt", "server.key"); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Shutdown signal received!")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
