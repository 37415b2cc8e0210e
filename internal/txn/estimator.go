package txn

import (
	"context"

	"github.com/Mohsinsiddi/easyeth/internal/chain"
	"github.com/Mohsinsiddi/easyeth/internal/contract"
)

// Estimator predicts the cost of deploy and execute requests without
// submitting anything.
type Estimator struct {
	client  *chain.Client
	builder Builder
}

// NewEstimator returns an Estimator building calls with builder.
func NewEstimator(client *chain.Client, builder Builder) *Estimator {
	return &Estimator{client: client, builder: builder}
}

// EstimateDeploy predicts the cost of deploying b.
func (e *Estimator) EstimateDeploy(ctx context.Context, b *contract.Binding, args []string, value string) (*Estimate, error) {
	call, err := e.builder.Deploy(b, args, value)
	if err != nil {
		return nil, err
	}
	return e.estimate(ctx, call)
}

// EstimateExecute predicts the cost of calling method on b.
func (e *Estimator) EstimateExecute(ctx context.Context, b *contract.Binding, method string, args []string, value string) (*Estimate, error) {
	call, err := e.builder.Execute(b, method, args, value)
	if err != nil {
		return nil, err
	}
	return e.estimate(ctx, call)
}

func (e *Estimator) estimate(ctx context.Context, call Call) (*Estimate, error) {
	gas, price, err := e.client.Estimate(ctx, call.Msg())
	if err != nil {
		return nil, err
	}
	return &Estimate{GasUsed: gas, GasPrice: price, Fee: fee(gas, price)}, nil
}
