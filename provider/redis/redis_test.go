package redis

import (
	"context"
	"errors"
	"net"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	if err != nil {
		t.Fatal(err)
	}
	pn, _ := strconv.Atoi(port)
	p := Dial(DialConfig{Host: host, Port: pn})
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p, mr
}

func TestGetMissAndHit(t *testing.T) {
	ctx := context.Background()
	p, mr := newTestRedis(t)

	if v, ok, err := p.Get(ctx, "k"); err != nil || ok || v != nil {
		t.Fatalf("miss: v=%q ok=%v err=%v", v, ok, err)
	}
	if err := mr.Set("k", "HELLOWORLD"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := p.Get(ctx, "k")
	if err != nil || !ok || string(v) != "HELLOWORLD" {
		t.Fatalf("hit: v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestAppendReportsLength(t *testing.T) {
	ctx := context.Background()
	p, mr := newTestRedis(t)

	n, err := p.Append(ctx, "k", []byte("abc"))
	if err != nil || n != 3 {
		t.Fatalf("first append n=%d err=%v", n, err)
	}
	n, err = p.Append(ctx, "k", []byte{0, 'x', 0xff})
	if err != nil || n != 6 {
		t.Fatalf("second append n=%d err=%v", n, err)
	}
	got, _ := mr.Get("k")
	if got != "abc\x00x\xff" {
		t.Fatalf("stored %q", got)
	}
}

func TestExistsAndDel(t *testing.T) {
	ctx := context.Background()
	p, mr := newTestRedis(t)
	_ = mr.Set("k", "v")

	if ok, err := p.Exists(ctx, "k"); err != nil || !ok {
		t.Fatalf("exists: ok=%v err=%v", ok, err)
	}
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if ok, err := p.Exists(ctx, "k"); err != nil || ok {
		t.Fatalf("after del: ok=%v err=%v", ok, err)
	}
	if err := p.Del(ctx, "never-set"); err != nil {
		t.Fatalf("del of absent key: %v", err)
	}
}

func TestPingFailsWhenServerDown(t *testing.T) {
	ctx := context.Background()
	p, mr := newTestRedis(t)
	if err := p.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	mr.Close()
	if err := p.Ping(ctx); err == nil {
		t.Fatalf("expected ping error after server shutdown")
	}
}

func TestServerErrorsSurface(t *testing.T) {
	ctx := context.Background()
	p, mr := newTestRedis(t)
	if err := p.Ping(ctx); err != nil {
		t.Fatal(err)
	}
	mr.SetError("LOADING server is loading")
	if _, _, err := p.Get(ctx, "k"); err == nil {
		t.Fatalf("expected get error")
	}
	if _, err := p.Append(ctx, "k", []byte("v")); err == nil {
		t.Fatalf("expected append error")
	}
}

func TestNewRequiresClient(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNilClient) {
		t.Fatalf("err=%v want ErrNilClient", err)
	}
}

func TestCloseRespectsOwnership(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	p, err := New(Config{Client: rdb})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Fatalf("borrowed client must stay open: %v", err)
	}

	owned, _ := New(Config{Client: goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), CloseClient: true})
	if err := owned.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if err := owned.Close(ctx); err != nil {
		t.Fatalf("repeated close: %v", err)
	}
}

func TestDialDefaults(t *testing.T) {
	p := Dial(DialConfig{})
	defer p.Close(context.Background())
	opts := p.rdb.(*goredis.Client).Options()
	if opts.Addr != "127.0.0.1:6379" || opts.DialTimeout != defaultTimeout || opts.PoolSize != 1 {
		t.Fatalf("unexpected options: addr=%s timeout=%s pool=%d", opts.Addr, opts.DialTimeout, opts.PoolSize)
	}
}
