// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package handler - HTTP endpoints in front of the JSON-RPC server
package handler

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/kittiesd/counter"
)

// access control keys
const (
	AllowDetails = "details"
	AllowMetrics = "metrics"
)

// Handler - the endpoints served by the https listener
type Handler interface {
	Root(http.ResponseWriter, *http.Request)
	RPC(http.ResponseWriter, *http.Request)
	Details(http.ResponseWriter, *http.Request)
	Metrics(http.ResponseWriter, *http.Request)
	SetAllow(map[string][]*net.IPNet)
}

// KittyCount - number of kitties minted so far
type KittyCount func() uint64

type handler struct {
	sync.RWMutex

	log                *logger.L
	server             *rpc.Server
	start              time.Time
	version            string
	count              counter.Counter
	maximumConnections uint64
	kitties            KittyCount
	metrics            http.Handler
	allow              map[string][]*net.IPNet
}

// New - create a handler, nil gatherer or count are allowed
func New(log *logger.L, server *rpc.Server, start time.Time, version string, maximumConnections uint64, kitties KittyCount, gatherer prometheus.Gatherer) Handler {
	h := &handler{
		log:                log,
		server:             server,
		start:              start,
		version:            version,
		maximumConnections: maximumConnections,
		kitties:            kitties,
		allow:              make(map[string][]*net.IPNet),
	}
	if nil != gatherer {
		h.metrics = promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	}
	return h
}

// SetAllow - replace the access control lists
func (h *handler) SetAllow(allow map[string][]*net.IPNet) {
	h.Lock()
	h.allow = allow
	h.Unlock()
}

// connection for the rpc codec over one http request
type internalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *internalConnection) Read(p []byte) (int, error) {
	return c.in.Read(p)
}

func (c *internalConnection) Write(d []byte) (int, error) {
	return c.out.Write(d)
}

func (c *internalConnection) Close() error {
	return nil
}

// Root - this matches anything not matched and returns error
func (h *handler) Root(w http.ResponseWriter, _ *http.Request) {
	sendNotFound(w)
}

// RPC - performs a call to any normal RPC
func (h *handler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if h.count.Increment() > h.maximumConnections {
		h.count.Decrement()
		sendTooManyRequests(w)
		return
	}
	defer h.count.Decrement()

	if nil == r.Body {
		sendInternalServerError(w)
		return
	}

	// net/rpc only writes after decoding the request header
	buffer := &responseBuffer{}
	codec := jsonrpc.NewServerCodec(&internalConnection{in: r.Body, out: buffer})
	err := h.server.ServeRequest(codec)
	if nil != err {
		h.log.Debugf("rpc request error: %s", err)
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buffer.data)
}

type responseBuffer struct {
	data []byte
}

func (b *responseBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// DetailsReply - results of a details request
type DetailsReply struct {
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Kitties uint64 `json:"kitties"`
	RPCs    uint64 `json:"rpcs"`
}

// Details - GET a summary of the daemon state
func (h *handler) Details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}
	if !h.allowed(AllowDetails, r) {
		sendForbidden(w)
		return
	}

	if h.count.Increment() > h.maximumConnections {
		h.count.Decrement()
		sendTooManyRequests(w)
		return
	}
	defer h.count.Decrement()

	reply := DetailsReply{
		Version: h.version,
		Uptime:  time.Since(h.start).String(),
		RPCs:    h.count.Uint64(),
	}
	if nil != h.kitties {
		reply.Kitties = h.kitties()
	}

	sendReply(w, reply)
}

// Metrics - prometheus exposition
func (h *handler) Metrics(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}
	if !h.allowed(AllowMetrics, r) {
		sendForbidden(w)
		return
	}
	if nil == h.metrics {
		sendNotFound(w)
		return
	}
	h.metrics.ServeHTTP(w, r)
}

func (h *handler) allowed(name string, r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if nil != err {
		host = r.RemoteAddr
	}
	ip := net.ParseIP(host)
	if nil != ip {
		h.RLock()
		defer h.RUnlock()
		for _, cidr := range h.allow[name] {
			if cidr.Contains(ip) {
				return true
			}
		}
	}
	h.log.Warnf("deny access: %q  path: %s", r.RemoteAddr, name)
	return false
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}

func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}

func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}

func sendTooManyRequests(w http.ResponseWriter) {
	sendError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
}

func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

type errorReply struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(errorReply{
		Code:  code,
		Error: message,
	})
	if nil != err {
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}
