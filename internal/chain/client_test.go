package chain_test

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/easyeth/internal/chain"
	"github.com/Mohsinsiddi/easyeth/internal/chain/chaintest"
	"github.com/Mohsinsiddi/easyeth/internal/config"
	"github.com/Mohsinsiddi/easyeth/internal/wallet"
)

var (
	gwei100    = big.NewInt(100_000_000_000)
	answerSel  = crypto.Keccak256([]byte("answer()"))[:4]
	fortyTwo   = common.LeftPadBytes([]byte{42}, 32)
	oneEther   = big.NewInt(1_000_000_000_000_000_000)
	someone    = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	hardhatNet = config.Profile{Name: config.NetworkHardhat, Simulated: true, GasPrice: 100_000_000_000}
)

func devSigner(t *testing.T) *wallet.Signer {
	t.Helper()
	s, err := wallet.FromHex(config.DevPrivateKey)
	require.NoError(t, err)
	return s
}

func simulatedClient(t *testing.T, opts ...chain.Option) *chain.Client {
	t.Helper()
	opts = append([]chain.Option{chain.WithPollInterval(5 * time.Millisecond)}, opts...)
	c, err := chain.Connect(context.Background(), hardhatNet, opts...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func deploy(t *testing.T, c *chain.Client, code []byte) common.Address {
	t.Helper()
	ctx := context.Background()
	p, err := c.Deploy(ctx, chain.Msg{Data: code, GasLimit: config.DefaultGasLimit})
	require.NoError(t, err)
	receipt, err := c.Wait(ctx, p, 5*time.Second)
	require.NoError(t, err)
	require.NotEqual(t, common.Address{}, receipt.ContractAddress)
	return receipt.ContractAddress
}

// ---------------------------------------------------------------------------
// Simulated chain
// ---------------------------------------------------------------------------

func TestSimulatedPrefundsSigner(t *testing.T) {
	s := devSigner(t)
	c := simulatedClient(t, chain.WithSigner(s))

	bal, err := c.Balance(context.Background(), s.Address())
	require.NoError(t, err)
	assert.Zero(t, chain.DevFunds.Cmp(bal), "got %s", bal)
	assert.Equal(t, []common.Address{s.Address()}, c.Accounts())

	id, err := c.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1337), id.Int64())
}

func TestSimulatedDeployAndRead(t *testing.T) {
	c := simulatedClient(t, chain.WithSigner(devSigner(t)))
	addr := deploy(t, c, chaintest.AnswerInitCode())

	inv, err := c.Invoke(context.Background(), chain.Msg{To: &addr, Data: answerSel, ReadOnly: true})
	require.NoError(t, err)

	ret, ok := inv.(chain.Returned)
	require.True(t, ok, "read-only call returns data, got %T", inv)
	assert.Equal(t, fortyTwo, ret.Data)
}

func TestSimulatedWriteReturnsPending(t *testing.T) {
	ctx := context.Background()
	c := simulatedClient(t, chain.WithSigner(devSigner(t)))
	addr := deploy(t, c, chaintest.EmitterInitCode())

	inv, err := c.Invoke(ctx, chain.Msg{To: &addr, Data: answerSel, GasLimit: config.DefaultGasLimit})
	require.NoError(t, err)

	p, ok := inv.(*chain.Pending)
	require.True(t, ok, "state-changing call is submitted, got %T", inv)
	assert.Equal(t, fortyTwo, p.Returned, "static call result is kept")

	receipt, err := c.Wait(ctx, p, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
	require.Len(t, receipt.Logs, 1)
	assert.Equal(t, crypto.Keccak256Hash([]byte(chaintest.PokedEvent)), receipt.Logs[0].Topics[0])
	assert.Equal(t, 0, gwei100.Cmp(receipt.EffectiveGasPrice))
}

func TestSimulatedTransfer(t *testing.T) {
	ctx := context.Background()
	c := simulatedClient(t, chain.WithSigner(devSigner(t)))

	p, err := c.Transfer(ctx, someone, oneEther, config.DefaultGasLimit)
	require.NoError(t, err)
	receipt, err := c.Wait(ctx, p, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint64(21_000), receipt.GasUsed)

	bal, err := c.Balance(ctx, someone)
	require.NoError(t, err)
	assert.Equal(t, oneEther, bal)
}

func TestSimulatedTransferEstimatesWhenNoLimit(t *testing.T) {
	ctx := context.Background()
	c := simulatedClient(t, chain.WithSigner(devSigner(t)))

	p, err := c.Transfer(ctx, someone, oneEther, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(21_000), p.Tx.Gas())
}

func TestSimulatedRevertSurfacesBeforeSend(t *testing.T) {
	ctx := context.Background()
	s := devSigner(t)
	c := simulatedClient(t, chain.WithSigner(s))
	addr := deploy(t, c, chaintest.ReverterInitCode())

	nonceBefore, err := c.Backend().PendingNonceAt(ctx, s.Address())
	require.NoError(t, err)

	_, err = c.Invoke(ctx, chain.Msg{To: &addr, Data: answerSel, GasLimit: config.DefaultGasLimit})
	assert.ErrorIs(t, err, chain.ErrReverted)

	nonceAfter, err := c.Backend().PendingNonceAt(ctx, s.Address())
	require.NoError(t, err)
	assert.Equal(t, nonceBefore, nonceAfter, "nothing was submitted")
}

func TestSimulatedFailedDeployReverts(t *testing.T) {
	ctx := context.Background()
	c := simulatedClient(t, chain.WithSigner(devSigner(t)))

	p, err := c.Deploy(ctx, chain.Msg{Data: chaintest.ConstructorReverterInitCode(), GasLimit: config.DefaultGasLimit})
	require.NoError(t, err)

	receipt, err := c.Wait(ctx, p, 5*time.Second)
	assert.ErrorIs(t, err, chain.ErrReverted)
	require.NotNil(t, receipt)
	assert.Equal(t, types.ReceiptStatusFailed, receipt.Status)
}

func TestSimulatedEstimate(t *testing.T) {
	c := simulatedClient(t, chain.WithSigner(devSigner(t)))

	gas, price, err := c.Estimate(context.Background(), chain.Msg{To: &someone, Value: oneEther})
	require.NoError(t, err)
	assert.Equal(t, uint64(21_000), gas)
	assert.Equal(t, gwei100, price)
}

func TestNoSignerReadsOnly(t *testing.T) {
	ctx := context.Background()
	signed := simulatedClient(t, chain.WithSigner(devSigner(t)))
	addr := deploy(t, signed, chaintest.AnswerInitCode())

	readOnly := chain.New(signed.Backend())
	assert.False(t, readOnly.CanSign())
	assert.Empty(t, readOnly.Accounts())

	inv, err := readOnly.Invoke(ctx, chain.Msg{To: &addr, Data: answerSel, ReadOnly: true})
	require.NoError(t, err)
	assert.IsType(t, chain.Returned{}, inv)

	_, err = readOnly.Invoke(ctx, chain.Msg{To: &addr, Data: answerSel})
	assert.ErrorIs(t, err, chain.ErrNoSigner)

	_, err = readOnly.Deploy(ctx, chain.Msg{Data: chaintest.AnswerInitCode()})
	assert.ErrorIs(t, err, chain.ErrNoSigner)
	_, err = readOnly.Transfer(ctx, someone, oneEther, 0)
	assert.ErrorIs(t, err, chain.ErrNoSigner)
}

func TestInvokeWriteWithoutSignerSkipsBackend(t *testing.T) {
	b := &chaintest.Backend{}
	c := chain.New(b)
	addr := someone
	_, err := c.Invoke(context.Background(), chain.Msg{To: &addr, Data: answerSel})
	assert.ErrorIs(t, err, chain.ErrNoSigner)
	assert.Empty(t, b.Calls)
}

func TestInvokeNeedsTarget(t *testing.T) {
	c := chain.New(&chaintest.Backend{})
	_, err := c.Invoke(context.Background(), chain.Msg{Data: answerSel})
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// Wait
// ---------------------------------------------------------------------------

func pending() *chain.Pending {
	return &chain.Pending{Tx: types.NewTx(&types.LegacyTx{Nonce: 7, Gas: 21_000, GasPrice: gwei100})}
}

func TestWaitPollsUntilMined(t *testing.T) {
	b := &chaintest.Backend{}
	p := pending()
	b.On("TransactionReceipt", mock.Anything, p.Hash()).Return(nil, ethereum.NotFound).Twice()
	b.On("TransactionReceipt", mock.Anything, p.Hash()).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, GasUsed: 21_000}, nil).Once()

	c := chain.New(b, chain.WithPollInterval(time.Millisecond))
	receipt, err := c.Wait(context.Background(), p, time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint64(21_000), receipt.GasUsed)
	b.AssertNumberOfCalls(t, "TransactionReceipt", 3)
}

func TestWaitRevertedKeepsReceipt(t *testing.T) {
	b := &chaintest.Backend{}
	p := pending()
	b.On("TransactionReceipt", mock.Anything, p.Hash()).Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil)

	receipt, err := chain.New(b).Wait(context.Background(), p, time.Second)
	assert.ErrorIs(t, err, chain.ErrReverted)
	assert.NotNil(t, receipt)
}

func TestWaitTimesOut(t *testing.T) {
	b := &chaintest.Backend{}
	p := pending()
	b.On("TransactionReceipt", mock.Anything, p.Hash()).Return(nil, ethereum.NotFound)

	c := chain.New(b, chain.WithPollInterval(2*time.Millisecond))
	_, err := c.Wait(context.Background(), p, 20*time.Millisecond)
	assert.ErrorIs(t, err, chain.ErrNoReceipt)
}

func TestWaitNothingSubmitted(t *testing.T) {
	_, err := chain.New(&chaintest.Backend{}).Wait(context.Background(), nil, time.Second)
	assert.ErrorIs(t, err, chain.ErrNoReceipt)
}

func TestWaitPropagatesNodeErrors(t *testing.T) {
	b := &chaintest.Backend{}
	p := pending()
	boom := errors.New("connection refused")
	b.On("TransactionReceipt", mock.Anything, p.Hash()).Return(nil, boom)

	_, err := chain.New(b).Wait(context.Background(), p, time.Second)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, chain.ErrNoReceipt)
}

// ---------------------------------------------------------------------------
// Gas price / chain id
// ---------------------------------------------------------------------------

func TestGasPricePinnedSkipsNode(t *testing.T) {
	b := &chaintest.Backend{}
	c := chain.New(b, chain.WithGasPrice(gwei100))

	price, err := c.GasPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, gwei100, price)
	b.AssertNotCalled(t, "SuggestGasPrice", mock.Anything)
}

func TestGasPriceAsksNode(t *testing.T) {
	b := &chaintest.Backend{}
	b.On("SuggestGasPrice", mock.Anything).Return(big.NewInt(7), nil)

	price, err := chain.New(b).GasPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(7), price)
}

func TestChainIDFetchedOnce(t *testing.T) {
	b := &chaintest.Backend{}
	b.On("ChainID", mock.Anything).Return(big.NewInt(56), nil).Once()

	c := chain.New(b)
	for range 3 {
		id, err := c.ChainID(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(56), id.Int64())
	}
	b.AssertExpectations(t)
}

// ---------------------------------------------------------------------------
// Dial
// ---------------------------------------------------------------------------

// rpcMock answers JSON-RPC requests from a method → result table.
func rpcMock(t *testing.T, responses map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string          `json:"method"`
			ID     json.RawMessage `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if result, ok := responses[req.Method]; ok {
			resp["result"] = result
		} else {
			resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
		}
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
}

func TestConnectDialsRemoteProfile(t *testing.T) {
	srv := rpcMock(t, map[string]any{
		"eth_getBalance": "0xde0b6b3a7640000",
	})
	defer srv.Close()

	p := config.Profile{Name: "bnb_test", URL: srv.URL, ChainID: 97, GasPrice: 5, Timeout: time.Second}
	c, err := chain.Connect(context.Background(), p)
	require.NoError(t, err)
	defer c.Close()

	bal, err := c.Balance(context.Background(), someone)
	require.NoError(t, err)
	assert.Equal(t, oneEther, bal)

	id, err := c.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(97), id.Int64(), "profile chain id is used without asking")

	price, err := c.GasPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5), price)
}

func TestConnectRemoteErrorsPropagate(t *testing.T) {
	srv := rpcMock(t, map[string]any{})
	defer srv.Close()

	c, err := chain.Connect(context.Background(), config.Profile{Name: "x", URL: srv.URL})
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Balance(context.Background(), someone)
	assert.Error(t, err)
}

func TestDialNeedsURL(t *testing.T) {
	_, err := chain.Dial(context.Background(), config.Profile{Name: "empty"})
	assert.Error(t, err)
}
