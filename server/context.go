package server

import (
	"context"

	"github.com/goccy/tablenum/internal/tabledata"
)

type (
	serverKey struct{}
	tableKey  struct{}
)

func withServer(ctx context.Context, server *Server) context.Context {
	return context.WithValue(ctx, serverKey{}, server)
}

func serverFromContext(ctx context.Context) *Server {
	return ctx.Value(serverKey{}).(*Server)
}

func withTable(ctx context.Context, table *tabledata.Table) context.Context {
	return context.WithValue(ctx, tableKey{}, table)
}

func tableFromContext(ctx context.Context) *tabledata.Table {
	return ctx.Value(tableKey{}).(*tabledata.Table)
}
