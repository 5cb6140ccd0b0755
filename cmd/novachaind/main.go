// Command novachaind runs the mempool admission daemon: it loads confirmed
// chain state from a chainstore database, accepts candidate transactions,
// and reports prometheus metrics for every admission verdict.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/novaguard/novachain/chainstore"
	"github.com/novaguard/novachain/consensus"
	"github.com/novaguard/novachain/crypto"
	"github.com/novaguard/novachain/mempool"
	"github.com/novaguard/novachain/node"
	"github.com/novaguard/novachain/script"
)

// errInternal labels a transport/storage failure that never reached rule
// evaluation, distinct from consensus.ErrorCode's closed enumeration of
// admission verdicts.
const errInternal consensus.ErrorCode = "internal_error"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("novachaind", pflag.ContinueOnError)
	node.BindFlags(fs)
	configFile := fs.String("config", "", "optional config file (yaml/json/toml)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := node.LoadConfig(fs, *configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		return 2
	}

	logger, err := node.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	runID := node.NewRunID()
	log := logger.Sugar()
	log.Infow("starting novachaind", "run_id", runID, "network", cfg.Network, "listen_addr", cfg.ListenAddr)

	chainIDHex := fmt.Sprintf("%x", crypto.DevProvider{}.SHA3_256([]byte(cfg.Network)))
	chain, err := chainstore.Open(cfg.DataDir, chainIDHex, consensus.ChainSettings{
		UseTestnetRules: cfg.Network != "mainnet",
	})
	if err != nil {
		log.Errorw("chainstore open failed", "err", err)
		return 2
	}
	defer func() { _ = chain.Close() }()

	pool := mempool.New()
	checker := script.KeyHashChecker{Provider: crypto.DevProvider{}, SighashFn: sighashStub}
	validator := consensus.NewValidator(chain, pool, checker, crypto.DevProvider{})
	admission := mempool.NewAdmission(pool, validator)
	hasher := crypto.DevProvider{}

	reg := prometheus.NewRegistry()
	metrics := node.NewMetrics(reg)
	metrics.PoolSize.Set(0)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("metrics server failed", "err", err)
		}
	}()

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/admit", admitHandler(admission, hasher, metrics, pool))
	apiServer := &http.Server{Addr: cfg.ListenAddr, Handler: apiMux}
	go func() {
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("admission API server failed", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infow("novachaind running", "run_id", runID)
	<-ctx.Done()
	log.Infow("novachaind stopping", "run_id", runID)
	_ = metricsServer.Close()
	_ = apiServer.Close()
	return 0
}

// admitHandler decodes a JSON-wrapped transaction from the request body,
// runs it through admission, and reports the verdict code.
func admitHandler(admission *mempool.Admission, hasher crypto.Provider, metrics *node.Metrics, pool *mempool.Pool) http.HandlerFunc {
	type reqBody struct {
		TxJSON json.RawMessage `json:"tx"`
	}
	type respBody struct {
		Code string `json:"code"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req reqBody
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("bad request: %v", err), http.StatusBadRequest)
			return
		}
		tx, err := chainstore.DecodeTx(req.TxJSON)
		if err != nil {
			http.Error(w, fmt.Sprintf("bad tx: %v", err), http.StatusBadRequest)
			return
		}

		start := time.Now()
		hash := consensus.TxHash(hasher, tx)
		verdict, err := admission.Admit(r.Context(), tx, hash)
		if err != nil {
			metrics.Observe(errInternal, time.Since(start).Seconds())
			http.Error(w, fmt.Sprintf("internal error: %v", err), http.StatusInternalServerError)
			return
		}
		metrics.Observe(verdict.Code, time.Since(start).Seconds())
		metrics.PoolSize.Set(float64(pool.Size()))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(respBody{Code: string(verdict.Code)})
	}
}

// sighashStub is a placeholder signature-digest function until a wire codec
// is wired in; it is never exercised by CheckTransactionBasic or any of the
// pure conservation checks, only by KeyHashChecker.CheckConsensus during
// script verification of a real spend.
func sighashStub(tx *consensus.Tx, inputIndex int) ([32]byte, error) {
	if inputIndex < 0 || inputIndex >= len(tx.Inputs) {
		return [32]byte{}, fmt.Errorf("novachaind: input index out of range")
	}
	return crypto.DevProvider{}.SHA3_256(tx.Inputs[inputIndex].Script), nil
}
