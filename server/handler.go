package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/goccy/tablenum/internal/logger"
	"github.com/goccy/tablenum/internal/tabledata"
	"github.com/goccy/tablenum/numbers"
	"github.com/goccy/tablenum/types"
)

type handler struct {
	Path       string
	HTTPMethod string
	Handler    http.Handler
}

var handlers = []*handler{
	{
		Path:       "/parse",
		HTTPMethod: "POST",
		Handler:    &parseHandler{},
	},
	{
		Path:       "/tables",
		HTTPMethod: "GET",
		Handler:    &tablesListHandler{},
	},
	{
		Path:       "/tables",
		HTTPMethod: "POST",
		Handler:    &tablesInsertHandler{},
	},
	{
		Path:       "/tables/{tableId}",
		HTTPMethod: "GET",
		Handler:    &tablesGetHandler{},
	},
	{
		Path:       "/tables/{tableId}",
		HTTPMethod: "DELETE",
		Handler:    &tablesDeleteHandler{},
	},
}

func encodeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		errorResponse(ctx, w, errInternalError(err.Error()))
	}
}

// scalarValue turns a decoded cell into a value the JSON encoder understands.
func scalarValue(v interface{}) interface{} {
	if n, ok := v.(numbers.Number); ok {
		return n.Value()
	}
	return v
}

type defaultHandler struct{}

func (h *defaultHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	errorResponse(r.Context(), w, errNotFound(fmt.Sprintf("%s %s is not found", r.Method, r.URL.Path)))
}

type parseHandler struct{}

type ParseRequest struct {
	Tokens []types.Token `json:"tokens"`
	Type   types.Type    `json:"type,omitempty"`
}

type ParseResult struct {
	Token string      `json:"token"`
	Kind  string      `json:"kind,omitempty"`
	Value interface{} `json:"value"`
	Error string      `json:"error,omitempty"`
}

type ParseResponse struct {
	Results []*ParseResult `json:"results"`
}

func (h *parseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(ctx, w, errInvalid(fmt.Sprintf("failed to decode request: %s", err)))
		return
	}
	kind, err := req.Type.Kind()
	if err != nil {
		errorResponse(ctx, w, errInvalid(err.Error()))
		return
	}
	encodeResponse(ctx, w, h.Handle(ctx, req.Tokens, kind))
}

func (h *parseHandler) Handle(ctx context.Context, tokens []types.Token, kind numbers.Kind) *ParseResponse {
	results := make([]*ParseResult, 0, len(tokens))
	for _, token := range tokens {
		results = append(results, ParseToken(ctx, string(token), kind))
	}
	return &ParseResponse{Results: results}
}

// ParseToken parses a single literal. Malformed and overflowing literals are
// reported through the Error field.
func ParseToken(ctx context.Context, token string, kind numbers.Kind) *ParseResult {
	n, ok, err := numbers.ParseAs(token, kind)
	if err != nil {
		logger.Logger(ctx).Warn("number overflow", zap.String("token", token), zap.Error(err))
		return &ParseResult{Token: token, Error: err.Error()}
	}
	if !ok {
		logger.Logger(ctx).Debug("malformed number", zap.String("token", token))
		return &ParseResult{Token: token, Error: fmt.Sprintf("%q is not a number", token)}
	}
	return &ParseResult{
		Token: token,
		Kind:  n.Kind().String(),
		Value: n.Value(),
	}
}

// TableResponse is a decoded table with its cells rendered as JSON values.
type TableResponse struct {
	ID      string          `json:"id"`
	Columns []*types.Column `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

func newTableResponse(table *tabledata.Table) *TableResponse {
	rows := make([][]interface{}, 0, len(table.Rows))
	for _, row := range table.Rows {
		values := make([]interface{}, 0, len(row))
		for _, v := range row {
			values = append(values, scalarValue(v))
		}
		rows = append(rows, values)
	}
	return &TableResponse{
		ID:      table.ID,
		Columns: table.Columns,
		Rows:    rows,
	}
}

type tablesListHandler struct{}

type TablesListResponse struct {
	Tables []string `json:"tables"`
}

func (h *tablesListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	server := serverFromContext(ctx)
	encodeResponse(ctx, w, &TablesListResponse{Tables: server.repo.TableIDs()})
}

type tablesGetHandler struct{}

func (h *tablesGetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	table := tableFromContext(ctx)
	encodeResponse(ctx, w, newTableResponse(table))
}

type tablesInsertHandler struct{}

func (h *tablesInsertHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	server := serverFromContext(ctx)
	var table types.Table
	if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
		errorResponse(ctx, w, errInvalid(fmt.Sprintf("failed to decode table: %s", err)))
		return
	}
	if err := newValidator().Struct(&table); err != nil {
		errorResponse(ctx, w, errInvalid(err.Error()))
		return
	}
	decoded, err := h.Handle(ctx, server, &table)
	if err != nil {
		errorResponse(ctx, w, errFromTableData(err))
		return
	}
	encodeResponse(ctx, w, newTableResponse(decoded))
}

func (h *tablesInsertHandler) Handle(ctx context.Context, server *Server, table *types.Table) (*tabledata.Table, error) {
	decoded, err := server.repo.AddTable(ctx, table)
	if err != nil {
		var overflow *numbers.OverflowError
		if errors.As(err, &overflow) {
			logger.Logger(ctx).Warn("number overflow", zap.String("tableId", table.ID), zap.Error(err))
		}
		return nil, err
	}
	return decoded, nil
}

type tablesDeleteHandler struct{}

func (h *tablesDeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	server := serverFromContext(ctx)
	table := tableFromContext(ctx)
	if err := server.repo.DeleteTable(ctx, table.ID); err != nil {
		errorResponse(ctx, w, errFromTableData(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
