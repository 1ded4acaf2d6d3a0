package solana

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
)

// lamportsPerSol is the scale between the RPC's integer balances and SOL.
const lamportsSolExponent = 9

// feeReserveLamports stays behind on the profile wallet to cover the sweep
// transaction fee.
const feeReserveLamports = 5000

// RPCError is a JSON-RPC level failure returned by the node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Client is the payment oracle: it inspects on-chain balances and sweeps
// collected funds to the master wallet over Solana JSON-RPC.
type Client struct {
	endpoint   string
	master     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an oracle client against the given JSON-RPC endpoint.
func NewClient(endpoint, masterWallet string, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse solana rpc url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("solana rpc url must be absolute")
	}
	if _, err := parsePublicKey(masterWallet); err != nil {
		return nil, fmt.Errorf("master wallet: %w", err)
	}
	return &Client{
		endpoint: endpoint,
		master:   masterWallet,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

func (c *Client) call(ctx context.Context, method string, params []any, out any) error {
	payload, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", domainErrors.ErrOracleUnavailable, method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("solana rpc request failed", slog.String("method", method), slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return fmt.Errorf("%w: %s: %s", domainErrors.ErrOracleUnavailable, method, resp.Status)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("%w: %s: %s", domainErrors.ErrOracleUnavailable, method, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("%w: %s: %s", domainErrors.ErrOracleUnavailable, method, rpcResp.Error)
	}
	return json.Unmarshal(rpcResp.Result, out)
}

func (c *Client) getBalance(ctx context.Context, address string) (uint64, error) {
	var result struct {
		Value uint64 `json:"value"`
	}
	if err := c.call(ctx, "getBalance", []any{address}, &result); err != nil {
		return 0, err
	}
	return result.Value, nil
}

func (c *Client) getLatestBlockhash(ctx context.Context) (string, error) {
	var result struct {
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	}
	if err := c.call(ctx, "getLatestBlockhash", []any{map[string]string{"commitment": "finalized"}}, &result); err != nil {
		return "", err
	}
	return result.Value.Blockhash, nil
}

func (c *Client) sendTransaction(ctx context.Context, serialized []byte) (string, error) {
	var signature string
	encoded := base64.StdEncoding.EncodeToString(serialized)
	if err := c.call(ctx, "sendTransaction", []any{encoded, map[string]string{"encoding": "base64"}}, &signature); err != nil {
		return "", err
	}
	return signature, nil
}

// CreateWallet mints a fresh custodial keypair used as a payment address.
func (c *Client) CreateWallet() (publicKey, privateKey string, err error) {
	return NewWallet()
}

// CheckPayment reports whether the address holds at least the due amount,
// together with the observed balance in SOL.
func (c *Client) CheckPayment(ctx context.Context, address string, due decimal.Decimal) (bool, decimal.Decimal, error) {
	lamports, err := c.getBalance(ctx, address)
	if err != nil {
		return false, decimal.Zero, err
	}
	observed := decimal.NewFromUint64(lamports).Shift(-lamportsSolExponent)
	return observed.Cmp(due) >= 0, observed, nil
}

// Sweep transfers the given SOL amount from the profile wallet to the master
// wallet and returns the transaction signature.
func (c *Client) Sweep(ctx context.Context, privateKey string, amount decimal.Decimal) (string, error) {
	key, err := parsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	lamports := amount.Shift(lamportsSolExponent).IntPart()
	if lamports <= feeReserveLamports {
		return "", fmt.Errorf("sweep amount %s SOL does not cover the fee reserve", amount)
	}

	master, err := parsePublicKey(c.master)
	if err != nil {
		return "", err
	}

	blockhash, err := c.getLatestBlockhash(ctx)
	if err != nil {
		return "", err
	}
	recent, err := decodeBlockhash(blockhash)
	if err != nil {
		return "", err
	}

	tx, err := buildTransferTx(key, master, uint64(lamports-feeReserveLamports), recent)
	if err != nil {
		return "", err
	}
	return c.sendTransaction(ctx, tx)
}
