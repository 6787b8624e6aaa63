// Package router exposes the resolution service over HTTP: a Connect unary
// procedure and a plain JSON POST endpoint.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bufbuild/connect-go"
	"github.com/google/uuid"

	"github.com/bolt-foundry/gambit/internal/model"
	"github.com/bolt-foundry/gambit/internal/observability"
	"github.com/bolt-foundry/gambit/internal/rpc"
	"github.com/bolt-foundry/gambit/internal/rpc/connectjson"
)

const ConnectResolveModelProcedure = "/gambit.router.v1.RouterService/ResolveModel"

// Resolver runs one resolution request. Implemented by the service adapter in
// internal/daemon.
type Resolver interface {
	ResolveModel(ctx context.Context, req rpc.ResolveModelRequest) (rpc.ResolveModelResponse, error)
}

// validate normalizes a request and reports caller errors before the resolver
// runs.
func validate(req *rpc.ResolveModelRequest) error {
	if strings.TrimSpace(req.Model) == "" {
		return errors.New("model is required")
	}
	if _, ok := model.ParseProviderKey(req.FallbackProvider); !ok {
		return fmt.Errorf("unknown fallback provider %q", req.FallbackProvider)
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	return nil
}

// NewConnectHandler builds the Connect unary handler for ResolveModel.
func NewConnectHandler(resolver Resolver, metrics *observability.Metrics) (string, http.Handler) {
	h := connect.NewUnaryHandler(
		ConnectResolveModelProcedure,
		func(ctx context.Context, creq *connect.Request[rpc.ResolveModelRequest]) (*connect.Response[rpc.ResolveModelResponse], error) {
			req := *creq.Msg
			if err := validate(&req); err != nil {
				metrics.RecordTransportError("connect", "invalid_request")
				return nil, connect.NewError(connect.CodeInvalidArgument, err)
			}

			resp, err := resolver.ResolveModel(ctx, req)
			if err != nil {
				metrics.RecordTransportError("connect", "resolver_error")
				return nil, connect.NewError(connect.CodeInternal, err)
			}
			return connect.NewResponse(&resp), nil
		},
		connect.WithCodec(connectjson.Codec{}),
	)
	return ConnectResolveModelProcedure, h
}

// Handler serves POST /router/resolve with a single JSON response.
type Handler struct {
	resolver Resolver
	metrics  *observability.Metrics
}

// NewHandler constructs the plain-JSON handler.
func NewHandler(resolver Resolver, metrics *observability.Metrics) *Handler {
	return &Handler{resolver: resolver, metrics: metrics}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.metrics.RecordTransportError("http", "method_not_allowed")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req rpc.ResolveModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.RecordTransportError("http", "decode")
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}
	if err := validate(&req); err != nil {
		h.metrics.RecordTransportError("http", "invalid_request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.resolver.ResolveModel(r.Context(), req)
	if err != nil {
		h.metrics.RecordTransportError("http", "resolver_error")
		http.Error(w, fmt.Sprintf("resolve failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.metrics.RecordTransportError("http", "encode")
	}
}
