// Package main runs the trophy hub as an HTTP service: the host-facing
// command/query surface, the bootstrap reply channel, and fire-and-forget
// dispatch of mint instructions toward the NFT collaborator.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"trophy-hub/internal/domain"
	"trophy-hub/internal/hub"
	"trophy-hub/internal/nft"
	"trophy-hub/internal/observability"
	"trophy-hub/internal/storage"
	"trophy-hub/internal/storage/memory"
	"trophy-hub/internal/storage/migrations"
	pgstore "trophy-hub/internal/storage/postgres"
)

// Server wires the hub to its HTTP surface.
type Server struct {
	hub         *hub.Hub
	nftEndpoint string
	metrics     *observability.Metrics
	logger      *log.Logger
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	nftEndpoint := flag.String("nft-endpoint", "", "NFT collaborator endpoint for mint instructions (empty to log only)")
	genesisHeight := flag.Uint64("genesis-height", 0, "Chain height at process start")
	blockInterval := flag.Duration("block-interval", 5*time.Second, "Wall-clock duration of one chain height step")

	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		contractStore storage.ContractStore
		trophyStore   storage.TrophyStore
		claimStore    storage.ClaimStore
		legacyStore   storage.LegacyStore
	)
	if *useMemory {
		logger.Println("Using in-memory storage")
		contractStore = memory.NewContractStore()
		trophyStore = memory.NewTrophyStore()
		claimStore = memory.NewClaimStore()
		legacyStore = memory.NewLegacyStore()
	} else {
		if *postgresDSN == "" {
			logger.Fatal("either -postgres-dsn or -use-memory is required")
		}
		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Fatalf("Failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			logger.Fatalf("Failed to apply migrations: %v", err)
		}
		contractStore = pgstore.NewContractStore(pool)
		trophyStore = pgstore.NewTrophyStore(pool)
		claimStore = pgstore.NewClaimStore(pool)
		legacyStore = pgstore.NewLegacyStore(pool)
	}

	start := time.Now()
	height := func() uint64 {
		return *genesisHeight + uint64(time.Since(start) / *blockInterval)
	}

	srv := &Server{
		hub: hub.New(hub.Config{
			Contract: contractStore,
			Trophies: trophyStore,
			Claims:   claimStore,
			Legacy:   legacyStore,
			Height:   height,
			Logger:   log.New(os.Stdout, "[hub] ", log.LstdFlags),
		}),
		nftEndpoint: *nftEndpoint,
		metrics:     observability.NewMetrics(""),
		logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/instantiate", srv.timed("instantiate", srv.handleInstantiate))
	mux.HandleFunc("POST /v1/reply", srv.timed("reply", srv.handleReply))
	mux.HandleFunc("POST /v1/trophies", srv.timed("create", srv.handleCreate))
	mux.HandleFunc("POST /v1/trophies/{id}/metadata", srv.timed("edit", srv.handleEdit))
	mux.HandleFunc("POST /v1/trophies/{id}/mint/minter", srv.timed("mint_by_minter", srv.handleMintByMinter))
	mux.HandleFunc("POST /v1/trophies/{id}/mint/signature", srv.timed("mint_by_signature", srv.handleMintBySignature))
	mux.HandleFunc("POST /v1/migrate", srv.timed("migrate", srv.handleMigrate))
	mux.HandleFunc("GET /v1/contract", srv.timed("contract_info", srv.handleContractInfo))
	mux.HandleFunc("GET /v1/trophies/{id}", srv.timed("trophy_info", srv.handleTrophyInfo))
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	httpServer := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
	}()

	logger.Printf("Listening on %s", *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server error: %v", err)
	}
	logger.Println("Server stopped")
}

// timed wraps a handler with a request duration observation.
func (s *Server) timed(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.metrics.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}

type instantiateRequest struct {
	Sender    string `json:"sender"`
	NFTCodeID uint64 `json:"nft_code_id"`
}

func (s *Server) handleInstantiate(w http.ResponseWriter, r *http.Request) {
	var req instantiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	msg, err := s.hub.Instantiate(r.Context(), req.Sender, req.NFTCodeID)
	if err != nil {
		s.writeHubError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) handleReply(w http.ResponseWriter, r *http.Request) {
	var reply nft.Reply
	if err := json.NewDecoder(r.Body).Decode(&reply); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.hub.HandleReply(r.Context(), &reply); err != nil {
		s.writeHubError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createRequest struct {
	Sender    string          `json:"sender"`
	Rule      domain.MintRule `json:"rule"`
	Metadata  domain.Metadata `json:"metadata"`
	Expiry    *uint64         `json:"expiry,omitempty"`
	MaxSupply *uint64         `json:"max_supply,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id, err := s.hub.CreateTrophy(r.Context(), req.Sender, req.Rule, req.Metadata, req.Expiry, req.MaxSupply)
	if err != nil {
		s.writeHubError(w, err)
		return
	}
	s.metrics.TrophiesCreated.Inc()
	writeJSON(w, http.StatusOK, map[string]uint64{"trophy_id": id})
}

type editRequest struct {
	Sender   string          `json:"sender"`
	Metadata domain.Metadata `json:"metadata"`
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := trophyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.hub.EditTrophy(r.Context(), req.Sender, id, req.Metadata); err != nil {
		s.writeHubError(w, err)
		return
	}
	s.metrics.TrophiesEdited.Inc()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type mintByMinterRequest struct {
	Sender string   `json:"sender"`
	Owners []string `json:"owners"`
}

func (s *Server) handleMintByMinter(w http.ResponseWriter, r *http.Request) {
	id, err := trophyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req mintByMinterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	instr, err := s.hub.MintByMinter(r.Context(), req.Sender, id, req.Owners)
	if err != nil {
		s.metrics.MintsRejected.WithLabelValues(rejectionReason(err)).Inc()
		s.writeHubError(w, err)
		return
	}
	s.metrics.MintsAuthorized.WithLabelValues(string(domain.RuleByMinter)).Inc()
	s.metrics.TokensMinted.Add(float64(len(instr.Mint.Owners)))
	s.dispatch(instr)
	writeJSON(w, http.StatusOK, instr)
}

type mintBySignatureRequest struct {
	Sender    string `json:"sender"`
	Signature string `json:"signature"`
}

func (s *Server) handleMintBySignature(w http.ResponseWriter, r *http.Request) {
	id, err := trophyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req mintBySignatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	instr, err := s.hub.MintBySignature(r.Context(), req.Sender, id, req.Signature)
	if err != nil {
		s.metrics.MintsRejected.WithLabelValues(rejectionReason(err)).Inc()
		s.writeHubError(w, err)
		return
	}
	s.metrics.MintsAuthorized.WithLabelValues(string(domain.RuleBySignature)).Inc()
	s.metrics.TokensMinted.Inc()
	s.dispatch(instr)
	writeJSON(w, http.StatusOK, instr)
}

func (s *Server) handleMigrate(w http.ResponseWriter, r *http.Request) {
	migrated, err := s.hub.Migrate(r.Context())
	if err != nil {
		s.writeHubError(w, err)
		return
	}
	s.metrics.RecordsMigrated.Add(float64(migrated))
	writeJSON(w, http.StatusOK, map[string]int{"migrated": migrated})
}

func (s *Server) handleContractInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.hub.ContractInfo(r.Context())
	if err != nil {
		s.writeHubError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleTrophyInfo(w http.ResponseWriter, r *http.Request) {
	id, err := trophyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	trophy, err := s.hub.TrophyInfo(r.Context(), id)
	if err != nil {
		s.writeHubError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trophy)
}

// dispatch forwards a mint instruction to the collaborator endpoint.
// Fire-and-forget: failures are logged, never surfaced to the caller.
func (s *Server) dispatch(instr *nft.Instruction) {
	if s.nftEndpoint == "" {
		s.logger.Printf("Mint instruction for %s: trophy %d serial %d x%d (no nft endpoint configured)",
			instr.Contract, instr.Mint.TrophyID, instr.Mint.StartSerial, len(instr.Mint.Owners))
		return
	}
	go func() {
		body, err := json.Marshal(instr)
		if err != nil {
			s.logger.Printf("Marshal mint instruction: %v", err)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.nftEndpoint, bytes.NewReader(body))
		if err != nil {
			s.logger.Printf("Build mint dispatch request: %v", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			s.logger.Printf("Dispatch mint instruction: %v", err)
			return
		}
		resp.Body.Close()
	}()
}

func trophyID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid trophy id %q", r.PathValue("id"))
	}
	return id, nil
}

// rejectionReason maps a mint error to its metrics label.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, hub.ErrTrophyNotFound):
		return "not_found"
	case errors.Is(err, hub.ErrRuleMismatch):
		return "rule_mismatch"
	case errors.Is(err, hub.ErrExpired):
		return "expired"
	case errors.Is(err, hub.ErrSupplyExceeded):
		return "supply_exceeded"
	case errors.Is(err, hub.ErrAlreadyMinted):
		return "already_minted"
	case errors.Is(err, hub.ErrSignatureInvalid):
		return "signature_invalid"
	case errors.Is(err, hub.ErrBootstrapFailed):
		return "bootstrap_failed"
	case errors.Is(err, hub.ErrInvalidRequest):
		return "invalid_request"
	default:
		return "internal"
	}
}

// writeHubError maps hub error kinds to HTTP statuses.
func (s *Server) writeHubError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, hub.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, hub.ErrUnauthorized),
		errors.Is(err, hub.ErrRuleMismatch),
		errors.Is(err, hub.ErrSignatureInvalid):
		status = http.StatusForbidden
	case errors.Is(err, hub.ErrTrophyNotFound):
		status = http.StatusNotFound
	case errors.Is(err, hub.ErrAlreadyMinted),
		errors.Is(err, hub.ErrSupplyExceeded):
		status = http.StatusConflict
	case errors.Is(err, hub.ErrExpired):
		status = http.StatusGone
	case errors.Is(err, hub.ErrBootstrapFailed):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.logger.Printf("Internal error: %v", err)
	}
	writeError(w, status, err)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
