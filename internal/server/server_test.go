package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

func TestServeUntilContextEnds(t *testing.T) {
	ln := fasthttputil.NewInmemoryListener()
	srv := New(func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString("hello")
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ctx, ln) }()

	client := &fasthttp.Client{
		Dial: func(string) (net.Conn, error) { return ln.Dial() },
	}
	status, body, err := client.Get(nil, "http://dashboard/")
	require.NoError(t, err)
	assert.Equal(t, fasthttp.StatusOK, status)
	assert.Equal(t, "hello", string(body))

	cancel()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListenAndServeBadAddress(t *testing.T) {
	srv := New(func(*fasthttp.RequestCtx) {}, nil)
	err := srv.ListenAndServe(context.Background(), "not-an-address")
	require.Error(t, err)
}
