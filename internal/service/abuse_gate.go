package service

import "context"

// GateRequest describes one anonymous write to be checked.
type GateRequest struct {
	SurveyID uint
	Token    string
	ClientIP string
}

// AbuseGate decides whether an anonymous write may proceed. Implementations
// fail closed: any internal error is reported as a rejection with a reason.
type AbuseGate interface {
	Verify(ctx context.Context, req GateRequest) (ok bool, reason string)
}

// AbuseGateFunc adapts a plain function to AbuseGate.
type AbuseGateFunc func(ctx context.Context, req GateRequest) (bool, string)

func (f AbuseGateFunc) Verify(ctx context.Context, req GateRequest) (bool, string) {
	return f(ctx, req)
}

// AllowAll is used where no gate is configured.
var AllowAll AbuseGate = AbuseGateFunc(func(context.Context, GateRequest) (bool, string) {
	return true, ""
})

type chainGate struct {
	gates []AbuseGate
}

// NewChainGate runs gates in order and stops at the first rejection.
func NewChainGate(gates ...AbuseGate) AbuseGate {
	return &chainGate{gates: gates}
}

func (c *chainGate) Verify(ctx context.Context, req GateRequest) (bool, string) {
	for _, g := range c.gates {
		if ok, reason := g.Verify(ctx, req); !ok {
			return false, reason
		}
	}
	return true, ""
}
