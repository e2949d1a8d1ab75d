// Package archive is the HTTP client for the viewer's REST API: the
// challenge/verify authentication exchange and the authenticated historical
// wallet queries. Requests go through a retrying HTTP client; errors the
// caller can act on (expired challenge, rejected signature) are mapped to
// the walletauth sentinels.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	httptransport "github.com/adawatch/adawatch/internal/pkg/transport/http"
	"github.com/adawatch/adawatch/internal/walletauth"
	"github.com/adawatch/adawatch/internal/wallethistory"

	"github.com/hashicorp/go-retryablehttp"
)

type client struct {
	baseURL    string
	httpClient *retryablehttp.Client
}

var (
	_ walletauth.Exchanger  = (*client)(nil)
	_ wallethistory.Archive = (*client)(nil)
)

// errorResponse is the API's error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// CreateChallenge implements walletauth.Exchanger.
func (c *client) CreateChallenge(ctx context.Context, address string) (walletauth.Challenge, error) {
	body, err := json.Marshal(map[string]string{
		"address": address,
	})
	if err != nil {
		return walletauth.Challenge{}, err
	}

	res, err := c.post(ctx, "/api/auth/challenge", "", body)
	if err != nil {
		return walletauth.Challenge{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return walletauth.Challenge{}, apiError(res)
	}

	var data struct {
		Message string `json:"message"`
		Nonce   string `json:"nonce"`
	}
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return walletauth.Challenge{}, err
	}

	return walletauth.Challenge{
		Message: data.Message,
		Nonce:   data.Nonce,
	}, nil
}

// VerifySignature implements walletauth.Exchanger.
func (c *client) VerifySignature(ctx context.Context, req walletauth.VerifyRequest) (string, error) {
	body, err := json.Marshal(map[string]string{
		"address":       req.Address,
		"stake_address": req.StakeAddress,
		"signature":     req.Signature,
		"key":           req.Key,
	})
	if err != nil {
		return "", err
	}

	res, err := c.post(ctx, "/api/auth/verify", "", body)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		var data errorResponse
		json.NewDecoder(res.Body).Decode(&data)

		if strings.Contains(strings.ToLower(data.Error), "expired") {
			return "", walletauth.ErrChallengeExpired
		}

		return "", walletauth.ErrSignatureRejected
	}
	if res.StatusCode != http.StatusOK {
		return "", apiError(res)
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return "", err
	}

	return data.Token, nil
}

// transactionPayload mirrors one transaction as served by the API.
type transactionPayload struct {
	TxHash      string `json:"tx_hash"`
	Block       string `json:"block"`
	BlockHeight uint64 `json:"block_height"`
	BlockTime   uint64 `json:"block_time"`
	Slot        uint64 `json:"slot"`
	Index       uint32 `json:"index"`
	Fees        string `json:"fees"`
}

// Transactions implements wallethistory.Archive.
func (c *client) Transactions(ctx context.Context, cred walletauth.Credential, address string, page, size int) ([]wallethistory.Transaction, error) {
	query := url.Values{
		"page":  []string{strconv.Itoa(page)},
		"count": []string{strconv.Itoa(size)},
	}
	path := fmt.Sprintf("/api/wallet/%s/transactions?%s", url.PathEscape(address), query.Encode())

	res, err := c.get(ctx, path, cred.Token)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, apiError(res)
	}

	var payload []transactionPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}

	transactions := make([]wallethistory.Transaction, len(payload))
	for i, tx := range payload {
		transactions[i] = wallethistory.Transaction{
			TxHash:      tx.TxHash,
			Block:       tx.Block,
			BlockHeight: tx.BlockHeight,
			BlockTime:   tx.BlockTime,
			Slot:        tx.Slot,
			Index:       tx.Index,
			Fees:        tx.Fees,
		}
	}

	return transactions, nil
}

// Summary implements wallethistory.Archive.
func (c *client) Summary(ctx context.Context, cred walletauth.Credential, address string) (wallethistory.Summary, error) {
	path := fmt.Sprintf("/api/wallet/%s/summary", url.PathEscape(address))

	res, err := c.get(ctx, path, cred.Token)
	if err != nil {
		return wallethistory.Summary{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return wallethistory.Summary{}, apiError(res)
	}

	var data struct {
		Address          string `json:"address"`
		StakeAddress     string `json:"stake_address"`
		Balance          string `json:"balance"`
		TransactionCount int    `json:"tx_count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return wallethistory.Summary{}, err
	}

	return wallethistory.Summary{
		Address:          data.Address,
		StakeAddress:     data.StakeAddress,
		Balance:          data.Balance,
		TransactionCount: data.TransactionCount,
	}, nil
}

func (c *client) post(ctx context.Context, path, token string, body []byte) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(req)
}

func (c *client) get(ctx context.Context, path, token string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(req)
}

// apiError turns an unexpected response into an error carrying the API's
// message when it sent one.
func apiError(res *http.Response) error {
	var data errorResponse
	json.NewDecoder(res.Body).Decode(&data)

	if data.Error != "" {
		return fmt.Errorf("archive responded %d: %s", res.StatusCode, data.Error)
	}

	return fmt.Errorf("archive responded %d", res.StatusCode)
}

// NewClient builds the archive client for the given API base URL, e.g.
// "https://viewer.example.com". Extra options tune the underlying retrying
// HTTP client.
func NewClient(baseURL string, opts ...httptransport.Option) *client {
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httptransport.NewClient(opts...),
	}
}
