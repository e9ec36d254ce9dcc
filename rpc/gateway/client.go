// Package gateway implements rpc.Chain against the HTTP+JSON transaction gateway of an
// IBC enabled chain.
//
// Every transaction body is wrapped in an envelope carrying the chain's fee and the
// signer's public key and signature. Transient failures (transport errors, 429 and
// 5xx responses) are retried with exponential backoff; repeated failures open a
// circuit breaker so that later calls fail fast.
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/solo-machine/solo-machine/crypto"
	"github.com/solo-machine/solo-machine/model/ibc"
	"github.com/solo-machine/solo-machine/module"
	"github.com/solo-machine/solo-machine/module/metrics"
	"github.com/solo-machine/solo-machine/rpc"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	apiPrefix = "/solo-machine/v1"

	// RequestIDHeader carries an identifier that stays the same across the retries of
	// one call, so that the gateway can deduplicate submissions.
	RequestIDHeader = "X-Request-ID"

	DefaultMaxRetries      = 3
	DefaultRetryBase       = 200 * time.Millisecond
	DefaultRequestsPerSec  = 10
	DefaultBreakerFailures = 5
	DefaultBreakerTimeout  = 30 * time.Second
)

// Gateway methods, also used as metric labels.
const (
	MethodLatestHeader            = "header/latest"
	MethodCreateSoloMachineClient = "client/create"
	MethodConnectionOpenTry       = "connection/open-try"
	MethodConnectionOpenConfirm   = "connection/open-confirm"
	MethodChannelOpenInit         = "channel/open-init"
	MethodChannelOpenAck          = "channel/open-ack"
	MethodRecvPacket              = "packet/recv"
	MethodTransfer                = "transfer"
	MethodUpdateSoloMachineClient = "client/update"
)

// Envelope is the body of every transaction submitted to the gateway.
type Envelope struct {
	ChainID   ibc.ChainID         `json:"chain_id"`
	Memo      string              `json:"memo"`
	Fee       Fee                 `json:"fee"`
	Signer    string              `json:"signer"`
	PublicKey crypto.PublicKey    `json:"public_key"`
	Body      jsoniter.RawMessage `json:"body"`
	// Signature covers Body.
	Signature []byte `json:"signature"`
}

type Fee struct {
	Amount   uint64         `json:"amount"`
	Denom    ibc.Identifier `json:"denom"`
	GasLimit uint64         `json:"gas_limit"`
}

// TxResponse is the gateway's answer to a successful transaction.
type TxResponse struct {
	TxHash       string         `json:"tx_hash"`
	ClientID     ibc.Identifier `json:"client_id,omitempty"`
	ConnectionID ibc.Identifier `json:"connection_id,omitempty"`
	ChannelID    ibc.Identifier `json:"channel_id,omitempty"`
}

// ErrorResponse is the gateway's answer to a failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Client is a gateway client bound to one chain and one signer.
type Client struct {
	log        zerolog.Logger
	chain      *ibc.Chain
	baseURL    string
	signer     crypto.Signer
	httpClient *http.Client
	metrics    module.GatewayMetrics
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	maxRetries uint64
	retryBase  time.Duration
}

var _ rpc.Chain = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithMetrics(collector module.GatewayMetrics) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithRetries sets the number of retries after the first attempt and the base delay
// of the exponential backoff between attempts.
func WithRetries(maxRetries uint64, base time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryBase = base
	}
}

// WithRateLimit bounds the number of requests per second sent to the gateway.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithBreakerSettings replaces the circuit breaker, e.g. to shorten its timeout in tests.
func WithBreakerSettings(failures uint32, timeout time.Duration) Option {
	return func(c *Client) {
		c.breaker = newBreaker(c.chain.ID, failures, timeout)
	}
}

// NewClient creates a client submitting transactions for `chain`, signed by `signer`.
func NewClient(log zerolog.Logger, chain *ibc.Chain, signer crypto.Signer, opts ...Option) (*Client, error) {
	if chain.Config.GatewayAddr == "" {
		return nil, fmt.Errorf("chain %s has no gateway address", chain.ID)
	}
	c := &Client{
		log:        log.With().Str("component", "gateway").Str("chain_id", chain.ID.String()).Logger(),
		chain:      chain,
		baseURL:    strings.TrimSuffix(chain.Config.GatewayAddr, "/") + apiPrefix,
		signer:     signer,
		httpClient: &http.Client{},
		metrics:    metrics.NewNoopCollector(),
		breaker:    newBreaker(chain.ID, DefaultBreakerFailures, DefaultBreakerTimeout),
		limiter:    rate.NewLimiter(rate.Limit(DefaultRequestsPerSec), 1),
		maxRetries: DefaultMaxRetries,
		retryBase:  DefaultRetryBase,
	}
	for _, apply := range opts {
		apply(c)
	}
	return c, nil
}

func newBreaker(chainID ibc.ChainID, failures uint32, timeout time.Duration) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gateway-" + chainID.String(),
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			// a rejected transaction says nothing about the gateway's health
			var reqErr RequestError
			return err == nil || (errors.As(err, &reqErr) && !reqErr.Retryable())
		},
	})
}

func (c *Client) LatestHeader(ctx context.Context) (*ibc.Header, error) {
	var header ibc.Header
	err := c.call(ctx, http.MethodGet, MethodLatestHeader, nil, &header)
	if err != nil {
		return nil, err
	}
	if header.ChainID != c.chain.ID {
		return nil, fmt.Errorf("gateway returned header of chain %s, expected %s", header.ChainID, c.chain.ID)
	}
	return &header, nil
}

func (c *Client) CreateSoloMachineClient(ctx context.Context, req *rpc.CreateSoloMachineClientRequest) (ibc.Identifier, error) {
	resp, err := c.submit(ctx, MethodCreateSoloMachineClient, req.Memo, req)
	if err != nil {
		return "", err
	}
	return validID(MethodCreateSoloMachineClient, resp.ClientID)
}

func (c *Client) ConnectionOpenTry(ctx context.Context, req *rpc.ConnectionOpenTryRequest) (ibc.Identifier, error) {
	resp, err := c.submit(ctx, MethodConnectionOpenTry, req.Memo, req)
	if err != nil {
		return "", err
	}
	return validID(MethodConnectionOpenTry, resp.ConnectionID)
}

func (c *Client) ConnectionOpenConfirm(ctx context.Context, req *rpc.ConnectionOpenConfirmRequest) error {
	_, err := c.submit(ctx, MethodConnectionOpenConfirm, req.Memo, req)
	return err
}

func (c *Client) ChannelOpenInit(ctx context.Context, req *rpc.ChannelOpenInitRequest) (ibc.Identifier, error) {
	resp, err := c.submit(ctx, MethodChannelOpenInit, req.Memo, req)
	if err != nil {
		return "", err
	}
	return validID(MethodChannelOpenInit, resp.ChannelID)
}

func (c *Client) ChannelOpenAck(ctx context.Context, req *rpc.ChannelOpenAckRequest) error {
	_, err := c.submit(ctx, MethodChannelOpenAck, req.Memo, req)
	return err
}

func (c *Client) RecvPacket(ctx context.Context, req *rpc.RecvPacketRequest) error {
	_, err := c.submit(ctx, MethodRecvPacket, req.Memo, req)
	return err
}

func (c *Client) Transfer(ctx context.Context, req *rpc.TransferRequest) error {
	_, err := c.submit(ctx, MethodTransfer, req.Memo, req)
	return err
}

func (c *Client) UpdateSoloMachineClient(ctx context.Context, req *rpc.UpdateSoloMachineClientRequest) error {
	_, err := c.submit(ctx, MethodUpdateSoloMachineClient, req.Memo, req)
	return err
}

func validID(method string, id ibc.Identifier) (ibc.Identifier, error) {
	valid, err := ibc.NewIdentifier(id.String())
	if err != nil {
		return "", fmt.Errorf("gateway returned an invalid identifier for %s: %w", method, err)
	}
	return valid, nil
}

// submit signs the body and posts it within an envelope.
func (c *Client) submit(ctx context.Context, method string, memo string, body interface{}) (*TxResponse, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("could not encode %s body: %w", method, err)
	}
	signature, err := c.signer.Sign(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("could not sign %s body: %w", method, err)
	}
	publicKey, err := c.signer.PublicKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get signer public key: %w", err)
	}
	address, err := c.signer.Address(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get signer address: %w", err)
	}

	envelope := Envelope{
		ChainID:   c.chain.ID,
		Memo:      memo,
		Fee:       Fee(c.chain.Config.Fee),
		Signer:    address,
		PublicKey: publicKey,
		Body:      raw,
		Signature: signature,
	}
	var resp TxResponse
	err = c.call(ctx, http.MethodPost, method, &envelope, &resp)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("method", method).Str("tx_hash", resp.TxHash).Msg("transaction included")
	return &resp, nil
}

// call performs the request with retries. The whole call, retries included, is bound
// by the chain's RPC timeout.
func (c *Client) call(ctx context.Context, httpMethod string, method string, in interface{}, out interface{}) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("could not encode %s request: %w", method, err)
		}
	}

	if timeout := c.chain.Config.RPCTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	backoff, err := retry.NewExponential(c.retryBase)
	if err != nil {
		return fmt.Errorf("could not create backoff: %w", err)
	}
	backoff = retry.WithMaxRetries(c.maxRetries, backoff)

	requestID := uuid.New().String()
	attempt := 0
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := c.limiter.Wait(ctx)
		if err != nil {
			return err
		}
		_, err = c.breaker.Execute(func() (interface{}, error) {
			return nil, c.attempt(ctx, httpMethod, method, requestID, payload, out)
		})
		if err != nil && retryable(err) {
			c.log.Warn().Err(err).Str("method", method).Int("attempt", attempt).Msg("gateway request failed, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("gateway call %s failed after %d attempt(s): %w", method, attempt, err)
	}
	return nil
}

func (c *Client) attempt(ctx context.Context, httpMethod string, method string, requestID string, payload []byte, out interface{}) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, httpMethod, c.baseURL+"/"+method, body)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.GatewayRequest(method, 0, time.Since(start))
		return err
	}
	defer resp.Body.Close()
	c.metrics.GatewayRequest(method, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp ErrorResponse
		if jsonErr := json.Unmarshal(data, &errResp); jsonErr != nil || errResp.Message == "" {
			errResp.Message = strings.TrimSpace(string(data))
		}
		return RequestError{Method: method, StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	err = json.Unmarshal(data, out)
	if err != nil {
		return fmt.Errorf("could not decode %s response: %w", method, err)
	}
	return nil
}

// retryable returns true for transient failures. An open circuit breaker is not
// retried: the call fails fast until the breaker lets requests through again.
func retryable(err error) bool {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	var reqErr RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Retryable()
	}
	// context errors are final
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
