package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/infrastructure/configloader"
)

// Base58 strings that decode to the right byte lengths: 32 zero bytes for the
// pubkey, 64 bytes for the signatures.
var (
	solTestPubKey  = strings.Repeat("1", 32)
	solTestSigOK   = strings.Repeat("1", 64)
	solTestSigFail = strings.Repeat("1", 63) + "2"
)

func newSolanaRPCFake(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		var req struct {
			ID     any    `json:"id"`
			Method string `json:"method"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("malformed JSON-RPC request: %v", err)
		}

		var result string
		switch req.Method {
		case "getBalance":
			result = `{"context":{"slot":240000001},"value":2500000000}`
		case "getSignaturesForAddress":
			result = `[
				{"signature":"` + solTestSigOK + `","slot":240000000,"err":null,"blockTime":1716212345},
				{"signature":"` + solTestSigFail + `","slot":239999990,"err":{"InstructionError":[0,{"Custom":6000}]},"blockTime":null}
			]`
		default:
			t.Errorf("unexpected RPC method %q", req.Method)
			result = "null"
		}

		id, _ := json.Marshal(req.ID)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, id, result)
	}))
}

func TestSolanaRPCBalance(t *testing.T) {
	t.Parallel()

	srv := newSolanaRPCFake(t)
	defer srv.Close()

	provider := NewSolanaRPCClient(configloader.SolanaProviderConfig{
		RPCURL:               srv.URL,
		RequestTimeoutMillis: 2000,
	}, zap.NewNop())

	lamports, err := provider.Balance(context.Background(), solTestPubKey)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}

	if lamports != 2500000000 {
		t.Fatalf("lamports = %d, want 2500000000", lamports)
	}
}

func TestSolanaRPCRecentSignatures(t *testing.T) {
	t.Parallel()

	srv := newSolanaRPCFake(t)
	defer srv.Close()

	provider := NewSolanaRPCClient(configloader.SolanaProviderConfig{
		RPCURL:               srv.URL,
		RequestTimeoutMillis: 2000,
	}, zap.NewNop())

	signatures, err := provider.RecentSignatures(context.Background(), solTestPubKey, 5)
	if err != nil {
		t.Fatalf("RecentSignatures: %v", err)
	}

	if len(signatures) != 2 {
		t.Fatalf("len(signatures) = %d, want 2", len(signatures))
	}

	if signatures[0].Failed || signatures[0].BlockTime != 1716212345 {
		t.Fatalf("signatures[0] = %+v, want a successful signature with a block time", signatures[0])
	}

	if !signatures[1].Failed || signatures[1].BlockTime != 0 {
		t.Fatalf("signatures[1] = %+v, want a failed signature without a block time", signatures[1])
	}
}

func TestSolanaRPCRejectsBadPubKey(t *testing.T) {
	t.Parallel()

	provider := NewSolanaRPCClient(configloader.SolanaProviderConfig{
		RPCURL:               "http://127.0.0.1:0",
		RequestTimeoutMillis: 2000,
	}, zap.NewNop())

	if _, err := provider.Balance(context.Background(), "not-base58-%%%"); err == nil {
		t.Fatal("expected an error for an unparseable public key")
	}
}
