// Command admissiond is an example composition root wiring the
// transaction admission processor's collaborators: config, logging,
// storage, crypto, handlers and the fee classifier. It is not a full
// node -- it demonstrates ProcessorDeps construction the way a real
// node's startup sequence would build it.
package main

import (
	"fmt"
	"os"

	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dusk-network/tx-admission/pkg/core/config"
	"github.com/dusk-network/tx-admission/pkg/core/fees"
	"github.com/dusk-network/tx-admission/pkg/core/mempool"
	"github.com/dusk-network/tx-admission/pkg/core/mempool/cache"
	"github.com/dusk-network/tx-admission/pkg/core/mempool/forged"
	"github.com/dusk-network/tx-admission/pkg/core/mempool/pool"
	"github.com/dusk-network/tx-admission/pkg/core/slots"
	"github.com/dusk-network/tx-admission/pkg/core/transactions"
	"github.com/dusk-network/tx-admission/pkg/core/transactions/handlers"
	"github.com/dusk-network/tx-admission/pkg/crypto"
)

const defaultConfig = `
[network]
pubKeyHash = 23

[mempool]
maxTransactionBytes = 2048
maxTransactionAge = 2700
maxTransactionsPerSender = 50
maxPoolSize = 50000

[[milestones]]
height = 0
blockTime = 8
maxTransactionAge = 2700
`

var log = logger.WithFields(logger.Fields{"prefix": "admissiond"})

func main() {
	logger.SetFormatter(&prefixed.TextFormatter{})
	logger.SetOutput(&lumberjack.Logger{
		Filename:   "admissiond.log",
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     28,
	})

	cfg, err := config.Load([]byte(defaultConfig))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	deps, err := buildDeps(cfg)
	if err != nil {
		log.Fatalf("build processor dependencies: %v", err)
	}

	batch := []transactions.Transaction{}
	processor := mempool.NewProcessor(*deps)
	report, err := processor.Validate(batch)
	if err != nil {
		log.Fatalf("validate: %v", err)
	}

	fmt.Fprintf(os.Stdout, "accept=%d broadcast=%d excess=%d invalid=%d\n",
		len(report.Accept), len(report.Broadcast), len(report.Excess), len(report.Invalid))
}

// buildDeps wires every collaborator the processor needs for a batch,
// the way a node's startup sequence would: one instance shared
// across batches, matching the "ProcessorDeps struct constructed once
// per node" design note.
func buildDeps(cfg *config.Manager) (*mempool.ProcessorDeps, error) {
	verifier := crypto.NewSecp256k1Verifier()

	registry := handlers.NewRegistry()
	registry.Register(transactions.HandlerRef{Type: 0, TypeGroup: 1}, handlers.NewTransfer(verifier))
	registry.Register(transactions.HandlerRef{Type: 1, TypeGroup: 1}, handlers.NewVote(verifier))
	registry.Register(transactions.HandlerRef{Type: 2, TypeGroup: 1}, handlers.NewMultiSignature(verifier, 2))

	p, err := pool.NewLevelPool("admissiond-pool.db",
		cfg.Mempool.MaxTransactionsPerSender, cfg.Mempool.MaxPoolSize)
	if err != nil {
		return nil, err
	}

	forgedIndex, err := forged.NewLevelIndex("admissiond-forged.db")
	if err != nil {
		return nil, err
	}

	matcher := fees.NewStaticMatcher(100, 50)
	classifier := fees.NewClassifier(matcher)

	height := func() uint32 { return 0 }

	return &mempool.ProcessorDeps{
		Pool:                 p,
		State:                cache.NewEpochCache(),
		Forged:               forgedIndex,
		Registry:             registry,
		Wallets:              noopWallets{},
		Config:               cfg,
		Clock:                slots.SystemClock{},
		Classifier:           classifier,
		CurrentHeight:        height,
		ExpirationCalculator: mempool.DefaultExpirationCalculator,
		Logger:               log,
	}, nil
}

// noopWallets is a placeholder Wallets view for the example
// composition root; a real node supplies its wallet/state-store view.
type noopWallets struct{}

func (noopWallets) Balance(publicKey string) (uint64, bool) { return 0, false }
func (noopWallets) Nonce(publicKey string) (uint64, bool)   { return 0, false }
