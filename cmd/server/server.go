package main

import (
	"context"
	"net"
	"net/http"
	"time"
)

// newHTTPServer 请求上下文派生自同一个 base，Shutdown 开始时取消，事件流等长连接随之退出。
func newHTTPServer(addr string, handler http.Handler) *http.Server {
	base, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
	srv.RegisterOnShutdown(cancel)
	return srv
}
